package engine

import (
	"github.com/shopspring/decimal"

	customError "github.com/uzideath/motofacil-engine/pkg/errors"
)

// PartialDebt breaks a possibly fractional remaining-installments figure
// into whole installments plus the money value of the fraction. The
// identity fullInstallments * flatAmount + partialAmount reconstructs the
// total remaining debt.
type PartialDebt struct {
	FullInstallments         int64           `json:"full_installments"`
	PartialInstallmentAmount decimal.Decimal `json:"partial_installment_amount"`
	PartialInstallmentPct    decimal.Decimal `json:"partial_installment_percentage"`
}

// CalculatePartialDebt converts remaining installments and the flat
// per-installment amount into an accounting breakdown.
func CalculatePartialDebt(remainingInstallments, flatInstallmentAmount decimal.Decimal) (PartialDebt, error) {
	if remainingInstallments.IsNegative() {
		return PartialDebt{}, customError.WrapInvalidAmount(remainingInstallments.String())
	}
	if !flatInstallmentAmount.IsPositive() {
		return PartialDebt{}, customError.WrapInvalidAmount(flatInstallmentAmount.String())
	}

	full := remainingInstallments.Floor()
	fraction := remainingInstallments.Sub(full)

	return PartialDebt{
		FullInstallments:         full.IntPart(),
		PartialInstallmentAmount: fraction.Mul(flatInstallmentAmount),
		PartialInstallmentPct:    fraction.Mul(hundred),
	}, nil
}
