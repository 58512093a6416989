package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/uzideath/motofacil-engine/internal/domain"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, loan_id, amount, surcharge_amount, principal_amount, interest_amount,
			payment_method, payment_date, is_late, late_due_date, notes,
			attachment_url, idempotency_key, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.LoanID,
		payment.Amount,
		payment.SurchargeAmount,
		payment.PrincipalAmount,
		payment.InterestAmount,
		payment.PaymentMethod,
		payment.PaymentDate,
		payment.IsLate,
		payment.LateDueDate,
		payment.Notes,
		payment.AttachmentURL,
		payment.IdempotencyKey,
		payment.CreatedAt,
	)

	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `
		SELECT id, loan_id, amount, surcharge_amount, principal_amount, interest_amount,
		       payment_method, payment_date, is_late, late_due_date, notes,
		       attachment_url, idempotency_key, created_at
		FROM payments
		WHERE id = $1
	`

	var payment domain.Payment
	err := r.db.GetContext(ctx, &payment, query, id)
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepository) GetByLoanID(ctx context.Context, loanID string) ([]*domain.Payment, error) {
	query := `
		SELECT id, loan_id, amount, surcharge_amount, principal_amount, interest_amount,
		       payment_method, payment_date, is_late, late_due_date, notes,
		       attachment_url, idempotency_key, created_at
		FROM payments
		WHERE loan_id = $1
		ORDER BY payment_date
	`

	var payments []*domain.Payment
	err := r.db.SelectContext(ctx, &payments, query, loanID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	query := `
		SELECT id, loan_id, amount, surcharge_amount, principal_amount, interest_amount,
		       payment_method, payment_date, is_late, late_due_date, notes,
		       attachment_url, idempotency_key, created_at
		FROM payments
		WHERE idempotency_key = $1
	`

	var payment domain.Payment
	err := r.db.GetContext(ctx, &payment, query, key)
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM payments WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
