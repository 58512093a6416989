package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/uzideath/motofacil-engine/internal/domain"
)

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// Create creates a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByLoanID retrieves a loan by its loan ID
	GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error)

	// Update updates a loan's counters, amounts and status
	Update(ctx context.Context, loan *domain.Loan) error

	// ListActive retrieves all loans that can still accrue arrears
	ListActive(ctx context.Context) ([]*domain.Loan, error)

	// UpdateStatus updates only the status of a loan
	UpdateStatus(ctx context.Context, loanID string, status string) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create creates a new payment record
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a single payment
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)

	// GetByLoanID retrieves all payments for a loan, oldest first
	GetByLoanID(ctx context.Context, loanID string) ([]*domain.Payment, error)

	// GetByIdempotencyKey retrieves the payment recorded under a key, if any
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error)

	// Delete removes a payment record. Callers must reverse the loan's
	// counters first.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CashFlowRepository defines the interface for account, transaction and
// transfer data operations
type CashFlowRepository interface {
	// CreateAccount creates a bookkeeping account
	CreateAccount(ctx context.Context, account *domain.CashFlowAccount) error

	// GetAccount retrieves an account by ID
	GetAccount(ctx context.Context, id uuid.UUID) (*domain.CashFlowAccount, error)

	// GetTransfer retrieves a transfer by ID
	GetTransfer(ctx context.Context, id uuid.UUID) (*domain.Transfer, error)

	// GetTransferByIdempotencyKey retrieves the transfer recorded under a key, if any
	GetTransferByIdempotencyKey(ctx context.Context, key string) (*domain.Transfer, error)

	// CreateTransfer atomically stores the transfer, its two generated
	// transactions and the balance movements on both accounts
	CreateTransfer(ctx context.Context, transfer *domain.Transfer, out, in *domain.CashTransaction) error

	// DeleteTransfer atomically removes the transfer, both of its generated
	// transactions and reverses the balance movements
	DeleteTransfer(ctx context.Context, id uuid.UUID) error
}
