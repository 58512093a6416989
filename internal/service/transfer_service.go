package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/uzideath/motofacil-engine/internal/config"
	"github.com/uzideath/motofacil-engine/internal/domain"
	"github.com/uzideath/motofacil-engine/internal/engine"
	"github.com/uzideath/motofacil-engine/internal/repository"
	customError "github.com/uzideath/motofacil-engine/pkg/errors"
)

type TransferService struct {
	CashFlowRepo repository.CashFlowRepository
	redis        *redis.Client
	config       *config.Config
}

func NewTransferService(
	cashFlowRepo repository.CashFlowRepository,
	redis *redis.Client,
	config *config.Config,
) *TransferService {
	return &TransferService{
		CashFlowRepo: cashFlowRepo,
		redis:        redis,
		config:       config,
	}
}

// CreateTransfer moves money between two accounts by generating an outflow
// and an inflow transaction, all stored atomically. Retried submissions
// with the same idempotency key are rejected.
func (s *TransferService) CreateTransfer(ctx context.Context, request *domain.CreateTransferRequest) (*domain.Transfer, error) {
	if !request.Amount.IsPositive() {
		return nil, customError.WrapInvalidAmount(request.Amount.String())
	}
	if request.FromAccountID == request.ToAccountID {
		return nil, customError.WrapSameAccountTransfer(request.FromAccountID.String())
	}

	key := request.IdempotencyKey
	if key == "" {
		key = engine.NewIdempotencyKey()
	}

	existing, err := s.CashFlowRepo.GetTransferByIdempotencyKey(ctx, key)
	if err == nil && existing != nil {
		return nil, customError.WrapDuplicateSubmission(key)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	if s.redis != nil {
		reserved, err := s.redis.SetNX(ctx, "idempotency:transfer:"+key, request.FromAccountID.String(), s.config.Business.IdempotencyTTL).Result()
		if err == nil && !reserved {
			return nil, customError.WrapDuplicateSubmission(key)
		}
	}

	transferID := uuid.New()
	now := time.Now()

	out := &domain.CashTransaction{
		ID:          uuid.New(),
		AccountID:   request.FromAccountID,
		Type:        domain.TransactionTypeOutflow,
		Amount:      request.Amount,
		Description: request.Description,
		TransferID:  &transferID,
		CreatedAt:   now,
	}
	in := &domain.CashTransaction{
		ID:          uuid.New(),
		AccountID:   request.ToAccountID,
		Type:        domain.TransactionTypeInflow,
		Amount:      request.Amount,
		Description: request.Description,
		TransferID:  &transferID,
		CreatedAt:   now,
	}
	transfer := &domain.Transfer{
		ID:               transferID,
		FromAccountID:    request.FromAccountID,
		ToAccountID:      request.ToAccountID,
		Amount:           request.Amount,
		OutTransactionID: out.ID,
		InTransactionID:  in.ID,
		IdempotencyKey:   key,
		CreatedAt:        now,
	}

	if err = s.CashFlowRepo.CreateTransfer(ctx, transfer, out, in); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return transfer, nil
}

// DeleteTransfer removes a transfer and both of its generated transactions,
// reversing the balance movements so the ledger stays balanced.
func (s *TransferService) DeleteTransfer(ctx context.Context, transferID uuid.UUID) error {
	_, err := s.CashFlowRepo.GetTransfer(ctx, transferID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapTransferNotFound(transferID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if err = s.CashFlowRepo.DeleteTransfer(ctx, transferID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}
