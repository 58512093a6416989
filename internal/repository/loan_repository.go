package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/uzideath/motofacil-engine/internal/domain"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (
			id, loan_id, total_amount, down_payment, interest_rate, interest_type,
			payment_frequency, term_months, installments, paid_installments,
			installment_payment_amount, surcharge_installment_amount,
			start_date, end_date, capital_paid, debt_remaining, status,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.LoanID,
		loan.TotalAmount,
		loan.DownPayment,
		loan.InterestRate,
		loan.InterestType,
		loan.PaymentFrequency,
		loan.TermMonths,
		loan.Installments,
		loan.PaidInstallments,
		loan.InstallmentPaymentAmount,
		loan.SurchargeInstallmentAmount,
		loan.StartDate,
		loan.EndDate,
		loan.CapitalPaid,
		loan.DebtRemaining,
		loan.Status,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `
		SELECT id, loan_id, total_amount, down_payment, interest_rate, interest_type,
		       payment_frequency, term_months, installments, paid_installments,
		       installment_payment_amount, surcharge_installment_amount,
		       start_date, end_date, capital_paid, debt_remaining, status,
		       created_at, updated_at
		FROM loans
		WHERE loan_id = $1
	`

	var loan domain.Loan
	err := r.db.GetContext(ctx, &loan, query, loanID)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	query := `
		UPDATE loans
		SET paid_installments = $2, capital_paid = $3, debt_remaining = $4,
		    installment_payment_amount = $5, surcharge_installment_amount = $6,
		    end_date = $7, status = $8, updated_at = $9
		WHERE loan_id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.LoanID,
		loan.PaidInstallments,
		loan.CapitalPaid,
		loan.DebtRemaining,
		loan.InstallmentPaymentAmount,
		loan.SurchargeInstallmentAmount,
		loan.EndDate,
		loan.Status,
		time.Now(),
	)

	return err
}

func (r *loanRepository) ListActive(ctx context.Context) ([]*domain.Loan, error) {
	query := `
		SELECT id, loan_id, total_amount, down_payment, interest_rate, interest_type,
		       payment_frequency, term_months, installments, paid_installments,
		       installment_payment_amount, surcharge_installment_amount,
		       start_date, end_date, capital_paid, debt_remaining, status,
		       created_at, updated_at
		FROM loans
		WHERE status IN ($1, $2)
		ORDER BY start_date
	`

	var loans []*domain.Loan
	err := r.db.SelectContext(ctx, &loans, query, domain.LoanStatusActive, domain.LoanStatusDefaulted)
	if err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) UpdateStatus(ctx context.Context, loanID string, status string) error {
	query := `
		UPDATE loans
		SET status = $2, updated_at = $3
		WHERE loan_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, loanID, status, time.Now())
	return err
}
