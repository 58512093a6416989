package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/uzideath/motofacil-engine/internal/domain"
	"github.com/uzideath/motofacil-engine/internal/service"
	"github.com/uzideath/motofacil-engine/tests/mocks"
)

func TestCreateTransfer(t *testing.T) {
	fromAccount := uuid.New()
	toAccount := uuid.New()

	tests := []struct {
		name          string
		request       *domain.CreateTransferRequest
		setupMocks    func(*mocks.MockCashFlowRepository)
		expectedError bool
		errorContains string
	}{
		{
			name: "Success - transfer links both generated transactions",
			request: &domain.CreateTransferRequest{
				FromAccountID: fromAccount,
				ToAccountID:   toAccount,
				Amount:        decimal.NewFromInt(250000),
				Description:   "weekly collection deposit",
			},
			setupMocks: func(repo *mocks.MockCashFlowRepository) {
				repo.On("GetTransferByIdempotencyKey", mock.Anything, mock.AnythingOfType("string")).Return(nil, sql.ErrNoRows)
				repo.On("CreateTransfer", mock.Anything,
					mock.MatchedBy(func(tr *domain.Transfer) bool {
						return tr.FromAccountID == fromAccount && tr.ToAccountID == toAccount
					}),
					mock.MatchedBy(func(out *domain.CashTransaction) bool {
						return out.Type == domain.TransactionTypeOutflow && out.AccountID == fromAccount
					}),
					mock.MatchedBy(func(in *domain.CashTransaction) bool {
						return in.Type == domain.TransactionTypeInflow && in.AccountID == toAccount
					}),
				).Return(nil)
			},
			expectedError: false,
		},
		{
			name: "Failure - same account on both sides",
			request: &domain.CreateTransferRequest{
				FromAccountID: fromAccount,
				ToAccountID:   fromAccount,
				Amount:        decimal.NewFromInt(250000),
			},
			setupMocks:    func(repo *mocks.MockCashFlowRepository) {},
			expectedError: true,
			errorContains: "SAME_ACCOUNT_TRANSFER",
		},
		{
			name: "Failure - duplicate idempotency key",
			request: &domain.CreateTransferRequest{
				FromAccountID:  fromAccount,
				ToAccountID:    toAccount,
				Amount:         decimal.NewFromInt(250000),
				IdempotencyKey: "1704067200000-xyz",
			},
			setupMocks: func(repo *mocks.MockCashFlowRepository) {
				repo.On("GetTransferByIdempotencyKey", mock.Anything, "1704067200000-xyz").Return(&domain.Transfer{
					ID:             uuid.New(),
					IdempotencyKey: "1704067200000-xyz",
				}, nil)
			},
			expectedError: true,
			errorContains: "DUPLICATE_SUBMISSION",
		},
		{
			name: "Failure - non-positive amount",
			request: &domain.CreateTransferRequest{
				FromAccountID: fromAccount,
				ToAccountID:   toAccount,
				Amount:        decimal.Zero,
			},
			setupMocks:    func(repo *mocks.MockCashFlowRepository) {},
			expectedError: true,
			errorContains: "INVALID_AMOUNT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockCashFlowRepository{}
			svc := service.NewTransferService(repo, nil, nil)

			tt.setupMocks(repo)

			transfer, err := svc.CreateTransfer(context.Background(), tt.request)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, transfer)
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, transfer.ID)
				assert.NotEqual(t, transfer.OutTransactionID, transfer.InTransactionID)
				assert.NotEmpty(t, transfer.IdempotencyKey)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestDeleteTransfer(t *testing.T) {
	transferID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := &mocks.MockCashFlowRepository{}
		repo.On("GetTransfer", mock.Anything, transferID).Return(&domain.Transfer{ID: transferID}, nil)
		repo.On("DeleteTransfer", mock.Anything, transferID).Return(nil)

		svc := service.NewTransferService(repo, nil, nil)
		assert.NoError(t, svc.DeleteTransfer(context.Background(), transferID))
		repo.AssertExpectations(t)
	})

	t.Run("Failure - transfer not found", func(t *testing.T) {
		repo := &mocks.MockCashFlowRepository{}
		repo.On("GetTransfer", mock.Anything, transferID).Return(nil, sql.ErrNoRows)

		svc := service.NewTransferService(repo, nil, nil)
		err := svc.DeleteTransfer(context.Background(), transferID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "TRANSFER_NOT_FOUND")
		repo.AssertExpectations(t)
	})
}
