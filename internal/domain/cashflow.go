package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransactionTypeInflow  = "inflow"
	TransactionTypeOutflow = "outflow"
)

// CashFlowAccount is one bookkeeping account (a till, a bank account).
type CashFlowAccount struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// CashTransaction is a single inflow or outflow on an account. Transactions
// generated by a transfer carry its ID so they live and die with it.
type CashTransaction struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	AccountID   uuid.UUID       `json:"account_id" db:"account_id"`
	Type        string          `json:"type" db:"type"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Description string          `json:"description,omitempty" db:"description"`
	TransferID  *uuid.UUID      `json:"transfer_id,omitempty" db:"transfer_id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// Transfer moves money between two accounts by generating an outflow and an
// inflow transaction. Deleting a transfer deletes both transactions so the
// ledger stays balanced.
type Transfer struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	FromAccountID    uuid.UUID       `json:"from_account_id" db:"from_account_id"`
	ToAccountID      uuid.UUID       `json:"to_account_id" db:"to_account_id"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	OutTransactionID uuid.UUID       `json:"out_transaction_id" db:"out_transaction_id"`
	InTransactionID  uuid.UUID       `json:"in_transaction_id" db:"in_transaction_id"`
	IdempotencyKey   string          `json:"idempotency_key" db:"idempotency_key"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

type CreateTransferRequest struct {
	FromAccountID  uuid.UUID       `json:"from_account_id" validate:"required"`
	ToAccountID    uuid.UUID       `json:"to_account_id" validate:"required"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	Description    string          `json:"description,omitempty"`
	IdempotencyKey string          `json:"idempotency_key"`
}
