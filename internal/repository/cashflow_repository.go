package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/uzideath/motofacil-engine/internal/domain"
)

type cashFlowRepository struct {
	db *sqlx.DB
}

func NewCashFlowRepository(db *sqlx.DB) CashFlowRepository {
	return &cashFlowRepository{db: db}
}

func (r *cashFlowRepository) CreateAccount(ctx context.Context, account *domain.CashFlowAccount) error {
	query := `
		INSERT INTO cashflow_accounts (id, name, balance, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.Balance,
		account.CreatedAt,
	)

	return err
}

func (r *cashFlowRepository) GetAccount(ctx context.Context, id uuid.UUID) (*domain.CashFlowAccount, error) {
	query := `
		SELECT id, name, balance, created_at
		FROM cashflow_accounts
		WHERE id = $1
	`

	var account domain.CashFlowAccount
	err := r.db.GetContext(ctx, &account, query, id)
	if err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *cashFlowRepository) GetTransfer(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	query := `
		SELECT id, from_account_id, to_account_id, amount,
		       out_transaction_id, in_transaction_id, idempotency_key, created_at
		FROM transfers
		WHERE id = $1
	`

	var transfer domain.Transfer
	err := r.db.GetContext(ctx, &transfer, query, id)
	if err != nil {
		return nil, err
	}

	return &transfer, nil
}

func (r *cashFlowRepository) GetTransferByIdempotencyKey(ctx context.Context, key string) (*domain.Transfer, error) {
	query := `
		SELECT id, from_account_id, to_account_id, amount,
		       out_transaction_id, in_transaction_id, idempotency_key, created_at
		FROM transfers
		WHERE idempotency_key = $1
	`

	var transfer domain.Transfer
	err := r.db.GetContext(ctx, &transfer, query, key)
	if err != nil {
		return nil, err
	}

	return &transfer, nil
}

// CreateTransfer writes the transfer, both generated transactions and the
// balance movements in one database transaction so the ledger never sees a
// half-applied transfer.
func (r *cashFlowRepository) CreateTransfer(ctx context.Context, transfer *domain.Transfer, out, in *domain.CashTransaction) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	transactionQuery := `
		INSERT INTO cash_transactions (id, account_id, type, amount, description, transfer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, txn := range []*domain.CashTransaction{out, in} {
		_, err = tx.ExecContext(ctx, transactionQuery,
			txn.ID,
			txn.AccountID,
			txn.Type,
			txn.Amount,
			txn.Description,
			txn.TransferID,
			txn.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transfers (id, from_account_id, to_account_id, amount,
		                       out_transaction_id, in_transaction_id, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		transfer.ID,
		transfer.FromAccountID,
		transfer.ToAccountID,
		transfer.Amount,
		transfer.OutTransactionID,
		transfer.InTransactionID,
		transfer.IdempotencyKey,
		transfer.CreatedAt,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE cashflow_accounts SET balance = balance - $2 WHERE id = $1`,
		transfer.FromAccountID, transfer.Amount,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE cashflow_accounts SET balance = balance + $2 WHERE id = $1`,
		transfer.ToAccountID, transfer.Amount,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteTransfer removes the transfer together with both of its generated
// transactions and reverses the balance movements, keeping the ledger
// balanced.
func (r *cashFlowRepository) DeleteTransfer(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var transfer domain.Transfer
	err = tx.GetContext(ctx, &transfer, `
		SELECT id, from_account_id, to_account_id, amount,
		       out_transaction_id, in_transaction_id, idempotency_key, created_at
		FROM transfers
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM cash_transactions WHERE transfer_id = $1`, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM transfers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE cashflow_accounts SET balance = balance + $2 WHERE id = $1`,
		transfer.FromAccountID, transfer.Amount,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE cashflow_accounts SET balance = balance - $2 WHERE id = $1`,
		transfer.ToAccountID, transfer.Amount,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}
