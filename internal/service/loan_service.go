package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
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

type LoanService struct {
	LoanRepo    repository.LoanRepository
	PaymentRepo repository.PaymentRepository
	redis       *redis.Client
	scheduler   engine.Scheduler
	tracker     engine.Tracker
	config      *config.Config
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	redis *redis.Client,
	cal engine.Calendar,
	config *config.Config,
) *LoanService {
	return &LoanService{
		LoanRepo:    loanRepo,
		PaymentRepo: paymentRepo,
		redis:       redis,
		scheduler:   engine.NewScheduler(cal),
		tracker:     engine.NewTracker(cal),
		config:      config,
	}
}

// CreateLoan creates a new financing contract. The installment count comes
// from the date pair when an end date is supplied and from the term in
// months otherwise; in the latter case the matching end date is derived and
// stored so later reads can always go through the date-driven path.
func (s *LoanService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	existingLoan, err := s.LoanRepo.GetByLoanID(ctx, request.LoanID)
	if err == nil && existingLoan != nil {
		return nil, customError.WrapLoanAlreadyExists(request.LoanID)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	if request.TotalAmount.IsNegative() || request.DownPayment.IsNegative() {
		return nil, customError.WrapInvalidAmount(request.TotalAmount.String())
	}
	financed := request.TotalAmount.Sub(request.DownPayment)
	if financed.IsNegative() {
		return nil, customError.WrapInvalidAmount(financed.String())
	}
	if request.InterestRate.IsNegative() {
		return nil, customError.WrapInvalidRate(request.InterestRate.String())
	}
	if !request.InstallmentPaymentAmount.IsPositive() {
		return nil, customError.WrapInvalidAmount(request.InstallmentPaymentAmount.String())
	}
	if request.SurchargeInstallmentAmount.IsNegative() {
		return nil, customError.WrapInvalidAmount(request.SurchargeInstallmentAmount.String())
	}

	frequency := engine.Frequency(request.PaymentFrequency)

	// The count source is chosen once, here, and handed to the engine as an
	// explicit enum.
	input := engine.ScheduleInput{
		Source:     engine.CountByTerm,
		Start:      request.StartDate,
		TermMonths: request.TermMonths,
		Frequency:  frequency,
	}
	endDate := request.EndDate
	if endDate != nil {
		input.Source = engine.CountByDates
		input.End = *endDate
	}

	installments, err := s.scheduler.Installments(input)
	if err != nil {
		return nil, err
	}
	if endDate == nil {
		derived, err := s.scheduler.DeriveEndDate(request.StartDate, frequency, request.TermMonths)
		if err != nil {
			return nil, err
		}
		endDate = &derived
	}

	loan := &domain.Loan{
		ID:                         uuid.New(),
		LoanID:                     request.LoanID,
		TotalAmount:                request.TotalAmount,
		DownPayment:                request.DownPayment,
		InterestRate:               request.InterestRate,
		InterestType:               engine.InterestType(request.InterestType),
		PaymentFrequency:           frequency,
		TermMonths:                 request.TermMonths,
		Installments:               installments,
		PaidInstallments:           0,
		InstallmentPaymentAmount:   request.InstallmentPaymentAmount,
		SurchargeInstallmentAmount: request.SurchargeInstallmentAmount,
		StartDate:                  request.StartDate,
		EndDate:                    endDate,
		CapitalPaid:                decimal.Zero,
		DebtRemaining:              financed,
		Status:                     domain.LoanStatusActive,
		CreatedAt:                  time.Now(),
		UpdatedAt:                  time.Now(),
	}

	if err = s.LoanRepo.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return loan, nil
}

// GetArrears computes how far behind a loan is as of today. Reports are
// cached per loan and day; the engine call is cheap, the payment-history
// read is not.
func (s *LoanService) GetArrears(ctx context.Context, loanID string, today time.Time) (*engine.ArrearsReport, error) {
	cacheKey := fmt.Sprintf("arrears:%s:%s", loanID, today.Format("2006-01-02"))
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var report engine.ArrearsReport
			if json.Unmarshal([]byte(cached), &report) == nil {
				return &report, nil
			}
		}
	}

	loan, err := s.LoanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(loanID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	payments, err := s.PaymentRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	records := make([]engine.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		records = append(records, engine.PaymentRecord{
			PaymentDate: p.PaymentDate,
			IsLate:      p.IsLate,
			LateDueDate: p.LateDueDate,
		})
	}

	report, err := s.tracker.Track(loan.StartDate, records, today)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(report); err == nil {
			s.redis.Set(ctx, cacheKey, encoded, s.config.Business.ArrearsCacheTTL)
		}
	}

	return &report, nil
}

// GetDebtBreakdown reports the outstanding debt as full installments plus a
// fractional tail. The fractional remaining-installments figure falls out of
// dividing the remaining debt by the flat installment amount, so partial
// payments show up as a fraction.
func (s *LoanService) GetDebtBreakdown(ctx context.Context, loanID string) (*domain.DebtBreakdownResponse, error) {
	loan, err := s.LoanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(loanID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if !loan.InstallmentPaymentAmount.IsPositive() {
		return nil, customError.WrapInvalidAmount(loan.InstallmentPaymentAmount.String())
	}

	remaining := loan.DebtRemaining.Div(loan.InstallmentPaymentAmount)
	breakdown, err := engine.CalculatePartialDebt(remaining, loan.InstallmentPaymentAmount)
	if err != nil {
		return nil, err
	}

	return &domain.DebtBreakdownResponse{
		LoanID:                loanID,
		RemainingInstallments: remaining,
		Breakdown:             breakdown,
	}, nil
}
