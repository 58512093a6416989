package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/uzideath/motofacil-engine/internal/engine"
)

const (
	LoanStatusActive    = "active"
	LoanStatusClosed    = "closed"
	LoanStatusDefaulted = "defaulted"
)

// Loan represents one vehicle financing contract.
type Loan struct {
	ID                         uuid.UUID           `json:"id" db:"id"`
	LoanID                     string              `json:"loan_id" db:"loan_id"`
	TotalAmount                decimal.Decimal     `json:"total_amount" db:"total_amount"`
	DownPayment                decimal.Decimal     `json:"down_payment" db:"down_payment"`
	InterestRate               decimal.Decimal     `json:"interest_rate" db:"interest_rate"` // annual, percent
	InterestType               engine.InterestType `json:"interest_type" db:"interest_type"`
	PaymentFrequency           engine.Frequency    `json:"payment_frequency" db:"payment_frequency"`
	TermMonths                 int                 `json:"term_months" db:"term_months"`
	Installments               int                 `json:"installments" db:"installments"`
	PaidInstallments           int                 `json:"paid_installments" db:"paid_installments"`
	InstallmentPaymentAmount   decimal.Decimal     `json:"installment_payment_amount" db:"installment_payment_amount"`
	SurchargeInstallmentAmount decimal.Decimal     `json:"surcharge_installment_amount" db:"surcharge_installment_amount"`
	StartDate                  time.Time           `json:"start_date" db:"start_date"`
	EndDate                    *time.Time          `json:"end_date,omitempty" db:"end_date"`
	CapitalPaid                decimal.Decimal     `json:"capital_paid" db:"capital_paid"`
	DebtRemaining              decimal.Decimal     `json:"debt_remaining" db:"debt_remaining"`
	Status                     string              `json:"status" db:"status"`
	CreatedAt                  time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt                  time.Time           `json:"updated_at" db:"updated_at"`
}

// FinancedAmount is the principal subject to interest: the vehicle price
// minus the down payment.
func (l *Loan) FinancedAmount() decimal.Decimal {
	return l.TotalAmount.Sub(l.DownPayment)
}

// RemainingInstallments is installments minus paid, floored at zero.
func (l *Loan) RemainingInstallments() int {
	remaining := l.Installments - l.PaidInstallments
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	LoanID                     string          `json:"loan_id" validate:"required"`
	TotalAmount                decimal.Decimal `json:"total_amount" validate:"required"`
	DownPayment                decimal.Decimal `json:"down_payment"`
	InterestRate               decimal.Decimal `json:"interest_rate" validate:"required"`
	InterestType               string          `json:"interest_type" validate:"required,oneof=FIXED COMPOUND"`
	PaymentFrequency           string          `json:"payment_frequency" validate:"required,oneof=DAILY WEEKLY BIWEEKLY MONTHLY"`
	TermMonths                 int             `json:"term_months" validate:"gte=0"`
	StartDate                  time.Time       `json:"start_date" validate:"required"`
	EndDate                    *time.Time      `json:"end_date,omitempty"`
	InstallmentPaymentAmount   decimal.Decimal `json:"installment_payment_amount" validate:"required"`
	SurchargeInstallmentAmount decimal.Decimal `json:"surcharge_installment_amount"`
}

type CreateLoanResponse struct {
	Loan *Loan `json:"loan"`
}

type ArrearsResponse struct {
	LoanID string               `json:"loan_id"`
	Report engine.ArrearsReport `json:"report"`
}

type DebtBreakdownResponse struct {
	LoanID                string             `json:"loan_id"`
	RemainingInstallments decimal.Decimal    `json:"remaining_installments"`
	Breakdown             engine.PartialDebt `json:"breakdown"`
}
