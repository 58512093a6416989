package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCash        = "CASH"
	PaymentMethodCard        = "CARD"
	PaymentMethodTransaction = "TRANSACTION"
)

// Payment is one recorded installment payment against a loan. Records are
// immutable once created except for corrective edits; deleting one must
// reverse the loan's counters first.
type Payment struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	LoanID          string          `json:"loan_id" db:"loan_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	SurchargeAmount decimal.Decimal `json:"surcharge_amount" db:"surcharge_amount"`
	PrincipalAmount decimal.Decimal `json:"principal_amount" db:"principal_amount"`
	InterestAmount  decimal.Decimal `json:"interest_amount" db:"interest_amount"`
	PaymentMethod   string          `json:"payment_method" db:"payment_method"`
	PaymentDate     time.Time       `json:"payment_date" db:"payment_date"`
	IsLate          bool            `json:"is_late" db:"is_late"`
	LateDueDate     *time.Time      `json:"late_due_date,omitempty" db:"late_due_date"`
	Notes           string          `json:"notes,omitempty" db:"notes"`
	AttachmentURL   string          `json:"attachment_url,omitempty" db:"attachment_url"`
	IdempotencyKey  string          `json:"idempotency_key" db:"idempotency_key"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

type RegisterPaymentRequest struct {
	LoanID          string          `json:"loan_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	SurchargeAmount decimal.Decimal `json:"surcharge_amount"`
	PaymentMethod   string          `json:"payment_method" validate:"required,oneof=CASH CARD TRANSACTION"`
	PaymentDate     time.Time       `json:"payment_date" validate:"required"`
	IsLate          bool            `json:"is_late"`
	LateDueDate     *time.Time      `json:"late_due_date,omitempty"`
	IdempotencyKey  string          `json:"idempotency_key"`
	Notes           string          `json:"notes,omitempty"`
	AttachmentURL   string          `json:"attachment_url,omitempty"`
}

type RegisterPaymentResponse struct {
	Payment *Payment `json:"payment"`
	Loan    *Loan    `json:"loan"`
}
