package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/uzideath/motofacil-engine/internal/domain"
	"github.com/uzideath/motofacil-engine/internal/service"
	"github.com/uzideath/motofacil-engine/pkg/response"
)

type PaymentHandler struct {
	service   *service.PaymentService
	validator *validator.Validate
}

func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterPayment handles POST /api/v1/loans/{loanId}/payments
func (h *PaymentHandler) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	var request domain.RegisterPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	request.LoanID = mux.Vars(r)["loanId"]

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	result, err := h.service.RegisterPayment(r.Context(), &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, result)
}

// DeletePayment handles DELETE /api/v1/payments/{paymentId}
func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := uuid.Parse(mux.Vars(r)["paymentId"])
	if err != nil {
		response.BadRequest(w, "Invalid payment ID", err)
		return
	}

	if err := h.service.DeletePayment(r.Context(), paymentID); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.NoContent(w)
}
