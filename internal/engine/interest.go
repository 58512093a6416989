package engine

import (
	"github.com/shopspring/decimal"

	customError "github.com/uzideath/motofacil-engine/pkg/errors"
)

// InterestType selects how interest is charged over the life of a loan.
type InterestType string

const (
	// InterestFixed is simple interest computed once over the loan term and
	// spread evenly across installments.
	InterestFixed InterestType = "FIXED"
	// InterestCompound recomputes interest each period on the remaining
	// principal.
	InterestCompound InterestType = "COMPOUND"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// AllocationInput carries everything needed to split a single payment into
// principal and interest. Amounts are decimals; the rate is an annual
// percentage (12 means 12%).
type AllocationInput struct {
	PaymentAmount      decimal.Decimal
	SurchargeAmount    decimal.Decimal // flat add-on fee (e.g. GPS), never principal or interest
	InterestType       InterestType
	AnnualRatePercent  decimal.Decimal
	TermMonths         int
	TotalInstallments  int
	FinancedAmount     decimal.Decimal
	RemainingPrincipal decimal.Decimal
}

// Allocation is the breakdown of one payment. PrincipalAmount plus
// InterestAmount never exceeds the payment amount; TotalAmount is what the
// payer is charged including the surcharge.
type Allocation struct {
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	InterestAmount  decimal.Decimal `json:"interest_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// AllocatePayment splits a payment under the loan's interest model.
//
// FIXED pre-allocates per-period interest as
// financed * rate% * (termMonths/12) / installments and takes at most the
// payment amount of it. COMPOUND charges remainingPrincipal * rate%/12,
// again capped by the payment amount.
func AllocatePayment(in AllocationInput) (Allocation, error) {
	if in.PaymentAmount.IsNegative() {
		return Allocation{}, customError.WrapInvalidAmount(in.PaymentAmount.String())
	}
	if in.SurchargeAmount.IsNegative() {
		return Allocation{}, customError.WrapInvalidAmount(in.SurchargeAmount.String())
	}
	if in.AnnualRatePercent.IsNegative() {
		return Allocation{}, customError.WrapInvalidRate(in.AnnualRatePercent.String())
	}

	var interest decimal.Decimal
	switch in.InterestType {
	case InterestFixed:
		if in.TotalInstallments > 0 {
			years := decimal.NewFromInt(int64(in.TermMonths)).Div(twelve)
			totalInterest := in.FinancedAmount.Mul(in.AnnualRatePercent.Div(hundred)).Mul(years)
			perPeriod := totalInterest.Div(decimal.NewFromInt(int64(in.TotalInstallments)))
			interest = decimal.Min(in.PaymentAmount, perPeriod)
		}
	case InterestCompound:
		monthlyRate := in.AnnualRatePercent.Div(hundred).Div(twelve)
		interest = decimal.Min(in.PaymentAmount, in.RemainingPrincipal.Mul(monthlyRate))
	default:
		return Allocation{}, customError.WrapInvalidInterestType(string(in.InterestType))
	}

	if interest.IsNegative() {
		interest = decimal.Zero
	}

	principal := in.PaymentAmount.Sub(interest)
	if principal.IsNegative() {
		principal = decimal.Zero
	}

	return Allocation{
		PrincipalAmount: principal,
		InterestAmount:  interest,
		TotalAmount:     in.PaymentAmount.Add(in.SurchargeAmount),
	}, nil
}
