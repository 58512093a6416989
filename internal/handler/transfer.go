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

type TransferHandler struct {
	service   *service.TransferService
	validator *validator.Validate
}

func NewTransferHandler(service *service.TransferService) *TransferHandler {
	return &TransferHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateTransfer handles POST /api/v1/transfers
func (h *TransferHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	transfer, err := h.service.CreateTransfer(r.Context(), &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, transfer)
}

// DeleteTransfer handles DELETE /api/v1/transfers/{transferId}
func (h *TransferHandler) DeleteTransfer(w http.ResponseWriter, r *http.Request) {
	transferID, err := uuid.Parse(mux.Vars(r)["transferId"])
	if err != nil {
		response.BadRequest(w, "Invalid transfer ID", err)
		return
	}

	if err := h.service.DeleteTransfer(r.Context(), transferID); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.NoContent(w)
}
