package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/uzideath/motofacil-engine/internal/config"
	"github.com/uzideath/motofacil-engine/internal/domain"
	"github.com/uzideath/motofacil-engine/internal/service"
	"github.com/uzideath/motofacil-engine/pkg/response"
)

type LoanHandler struct {
	service   *service.LoanService
	validator *validator.Validate
	config    *config.Config
}

func NewLoanHandler(service *service.LoanService, config *config.Config) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: validator.New(),
		config:    config,
	}
}

// CreateLoan handles POST /api/v1/loans
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, domain.CreateLoanResponse{Loan: loan})
}

// GetArrears handles GET /api/v1/loans/{loanId}/arrears. An optional as_of
// query parameter (YYYY-MM-DD) pins "today" for reproducible reads.
func (h *LoanHandler) GetArrears(w http.ResponseWriter, r *http.Request) {
	loanID := mux.Vars(r)["loanId"]

	today := time.Now().In(h.config.BusinessLocation())
	if asOf := r.URL.Query().Get("as_of"); asOf != "" {
		parsed, err := time.ParseInLocation("2006-01-02", asOf, h.config.BusinessLocation())
		if err != nil {
			response.BadRequest(w, "as_of must be YYYY-MM-DD", err)
			return
		}
		today = parsed
	}

	report, err := h.service.GetArrears(r.Context(), loanID, today)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, domain.ArrearsResponse{LoanID: loanID, Report: *report})
}

// GetDebtBreakdown handles GET /api/v1/loans/{loanId}/debt
func (h *LoanHandler) GetDebtBreakdown(w http.ResponseWriter, r *http.Request) {
	loanID := mux.Vars(r)["loanId"]

	breakdown, err := h.service.GetDebtBreakdown(r.Context(), loanID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, breakdown)
}
