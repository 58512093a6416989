package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/uzideath/motofacil-engine/internal/config"
	"github.com/uzideath/motofacil-engine/internal/domain"
	"github.com/uzideath/motofacil-engine/internal/engine"
	"github.com/uzideath/motofacil-engine/internal/repository"
	customError "github.com/uzideath/motofacil-engine/pkg/errors"
)

type PaymentService struct {
	LoanRepo    repository.LoanRepository
	PaymentRepo repository.PaymentRepository
	redis       *redis.Client
	config      *config.Config
}

func NewPaymentService(
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	redis *redis.Client,
	config *config.Config,
) *PaymentService {
	return &PaymentService{
		LoanRepo:    loanRepo,
		PaymentRepo: paymentRepo,
		redis:       redis,
		config:      config,
	}
}

// RegisterPayment records one installment payment. The payment is split into
// principal and interest under the loan's interest model, the loan counters
// advance by the principal portion, and the loan closes when the debt hits
// zero. Retried submissions bearing the same idempotency key are rejected:
// the payment table is the authoritative record, Redis is a fast-path guard.
func (s *PaymentService) RegisterPayment(ctx context.Context, request *domain.RegisterPaymentRequest) (*domain.RegisterPaymentResponse, error) {
	if !request.Amount.IsPositive() {
		return nil, customError.WrapInvalidAmount(request.Amount.String())
	}
	if request.SurchargeAmount.IsNegative() {
		return nil, customError.WrapInvalidAmount(request.SurchargeAmount.String())
	}

	key := request.IdempotencyKey
	if key == "" {
		key = engine.NewIdempotencyKey()
	}

	existing, err := s.PaymentRepo.GetByIdempotencyKey(ctx, key)
	if err == nil && existing != nil {
		return nil, customError.WrapDuplicateSubmission(key)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	if s.redis != nil {
		reserved, err := s.redis.SetNX(ctx, "idempotency:payment:"+key, request.LoanID, s.config.Business.IdempotencyTTL).Result()
		if err == nil && !reserved {
			return nil, customError.WrapDuplicateSubmission(key)
		}
	}

	loan, err := s.LoanRepo.GetByLoanID(ctx, request.LoanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(request.LoanID)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	if loan.Status == domain.LoanStatusClosed {
		return nil, customError.WrapLoanAlreadyClosed(request.LoanID)
	}

	allocation, err := engine.AllocatePayment(engine.AllocationInput{
		PaymentAmount:      request.Amount,
		SurchargeAmount:    request.SurchargeAmount,
		InterestType:       loan.InterestType,
		AnnualRatePercent:  loan.InterestRate,
		TermMonths:         loan.TermMonths,
		TotalInstallments:  loan.Installments,
		FinancedAmount:     loan.FinancedAmount(),
		RemainingPrincipal: loan.DebtRemaining,
	})
	if err != nil {
		return nil, err
	}

	// A recorded due date earlier than the payment date marks the payment
	// late even when the caller did not flag it.
	isLate := request.IsLate
	if request.LateDueDate != nil && request.LateDueDate.Before(request.PaymentDate) {
		isLate = true
	}

	payment := &domain.Payment{
		ID:              uuid.New(),
		LoanID:          request.LoanID,
		Amount:          request.Amount,
		SurchargeAmount: request.SurchargeAmount,
		PrincipalAmount: allocation.PrincipalAmount,
		InterestAmount:  allocation.InterestAmount,
		PaymentMethod:   request.PaymentMethod,
		PaymentDate:     request.PaymentDate,
		IsLate:          isLate,
		LateDueDate:     request.LateDueDate,
		Notes:           request.Notes,
		AttachmentURL:   request.AttachmentURL,
		IdempotencyKey:  key,
		CreatedAt:       time.Now(),
	}

	if err = s.PaymentRepo.Create(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	loan.PaidInstallments++
	loan.CapitalPaid = loan.CapitalPaid.Add(allocation.PrincipalAmount)
	loan.DebtRemaining = loan.DebtRemaining.Sub(allocation.PrincipalAmount)
	if loan.DebtRemaining.IsNegative() {
		loan.DebtRemaining = decimal.Zero
	}
	if loan.DebtRemaining.IsZero() || loan.PaidInstallments >= loan.Installments {
		loan.Status = domain.LoanStatusClosed
	}

	if err = s.LoanRepo.Update(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.RegisterPaymentResponse{Payment: payment, Loan: loan}, nil
}

// DeletePayment removes a recorded payment, reversing the loan's counters
// first so the contract's paid/remaining figures stay consistent. A closed
// loan reopens when debt comes back.
func (s *PaymentService) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	payment, err := s.PaymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapPaymentNotFound(paymentID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	loan, err := s.LoanRepo.GetByLoanID(ctx, payment.LoanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapLoanNotFound(payment.LoanID)
		}
		return customError.WrapDatabaseError(err)
	}

	if loan.PaidInstallments > 0 {
		loan.PaidInstallments--
	}
	loan.CapitalPaid = loan.CapitalPaid.Sub(payment.PrincipalAmount)
	if loan.CapitalPaid.IsNegative() {
		loan.CapitalPaid = decimal.Zero
	}
	loan.DebtRemaining = loan.DebtRemaining.Add(payment.PrincipalAmount)
	if loan.Status == domain.LoanStatusClosed && loan.DebtRemaining.IsPositive() {
		loan.Status = domain.LoanStatusActive
	}

	if err = s.LoanRepo.Update(ctx, loan); err != nil {
		return customError.WrapDatabaseError(err)
	}

	if err = s.PaymentRepo.Delete(ctx, paymentID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}
