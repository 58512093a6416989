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
	"github.com/uzideath/motofacil-engine/internal/engine"
	"github.com/uzideath/motofacil-engine/internal/service"
	"github.com/uzideath/motofacil-engine/tests/mocks"
)

func activeCompoundLoan(loanID string) *domain.Loan {
	return &domain.Loan{
		ID:                       uuid.New(),
		LoanID:                   loanID,
		TotalAmount:              decimal.NewFromInt(600000),
		DownPayment:              decimal.NewFromInt(100000),
		InterestRate:             decimal.NewFromInt(12),
		InterestType:             engine.InterestCompound,
		PaymentFrequency:         engine.FrequencyMonthly,
		TermMonths:               12,
		Installments:             12,
		PaidInstallments:         0,
		InstallmentPaymentAmount: decimal.NewFromInt(45000),
		StartDate:                startDate,
		CapitalPaid:              decimal.Zero,
		DebtRemaining:            decimal.NewFromInt(500000),
		Status:                   domain.LoanStatusActive,
	}
}

func TestRegisterPayment(t *testing.T) {
	tests := []struct {
		name           string
		request        *domain.RegisterPaymentRequest
		setupMocks     func(*mocks.MockLoanRepository, *mocks.MockPaymentRepository)
		expectedError  bool
		errorContains  string
		validateResult func(*testing.T, *domain.RegisterPaymentResponse)
	}{
		{
			name: "Success - compound interest allocation advances the loan",
			request: &domain.RegisterPaymentRequest{
				LoanID:        "LOAN123",
				Amount:        decimal.NewFromInt(45000),
				PaymentMethod: domain.PaymentMethodCash,
				PaymentDate:   startDate.AddDate(0, 0, 30),
			},
			setupMocks: func(loanRepo *mocks.MockLoanRepository, paymentRepo *mocks.MockPaymentRepository) {
				paymentRepo.On("GetByIdempotencyKey", mock.Anything, mock.AnythingOfType("string")).Return(nil, sql.ErrNoRows)
				loanRepo.On("GetByLoanID", mock.Anything, "LOAN123").Return(activeCompoundLoan("LOAN123"), nil)
				paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
					// 500,000 * 12% / 12 = 5,000 interest, the rest is principal.
					return p.InterestAmount.Equal(decimal.NewFromInt(5000)) &&
						p.PrincipalAmount.Equal(decimal.NewFromInt(40000)) &&
						p.IdempotencyKey != ""
				})).Return(nil)
				loanRepo.On("Update", mock.Anything, mock.MatchedBy(func(l *domain.Loan) bool {
					return l.PaidInstallments == 1 &&
						l.CapitalPaid.Equal(decimal.NewFromInt(40000)) &&
						l.DebtRemaining.Equal(decimal.NewFromInt(460000)) &&
						l.Status == domain.LoanStatusActive
				})).Return(nil)
			},
			expectedError: false,
			validateResult: func(t *testing.T, response *domain.RegisterPaymentResponse) {
				assert.True(t, response.Payment.PrincipalAmount.Equal(decimal.NewFromInt(40000)))
				assert.True(t, response.Payment.InterestAmount.Equal(decimal.NewFromInt(5000)))
				assert.NotEmpty(t, response.Payment.IdempotencyKey)
				assert.Equal(t, 1, response.Loan.PaidInstallments)
			},
		},
		{
			name: "Success - final payment closes the loan",
			request: &domain.RegisterPaymentRequest{
				LoanID:        "LOAN124",
				Amount:        decimal.NewFromInt(50000),
				PaymentMethod: domain.PaymentMethodTransaction,
				PaymentDate:   startDate.AddDate(0, 0, 30),
			},
			setupMocks: func(loanRepo *mocks.MockLoanRepository, paymentRepo *mocks.MockPaymentRepository) {
				loan := activeCompoundLoan("LOAN124")
				loan.InterestType = engine.InterestFixed
				loan.InterestRate = decimal.Zero
				loan.DebtRemaining = decimal.NewFromInt(50000)
				loan.PaidInstallments = 11
				paymentRepo.On("GetByIdempotencyKey", mock.Anything, mock.AnythingOfType("string")).Return(nil, sql.ErrNoRows)
				loanRepo.On("GetByLoanID", mock.Anything, "LOAN124").Return(loan, nil)
				paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
				loanRepo.On("Update", mock.Anything, mock.MatchedBy(func(l *domain.Loan) bool {
					return l.Status == domain.LoanStatusClosed && l.DebtRemaining.IsZero()
				})).Return(nil)
			},
			expectedError: false,
			validateResult: func(t *testing.T, response *domain.RegisterPaymentResponse) {
				assert.Equal(t, domain.LoanStatusClosed, response.Loan.Status)
			},
		},
		{
			name: "Success - overdue due date marks the payment late",
			request: &domain.RegisterPaymentRequest{
				LoanID:        "LOAN128",
				Amount:        decimal.NewFromInt(45000),
				PaymentMethod: domain.PaymentMethodCash,
				PaymentDate:   startDate.AddDate(0, 0, 10),
				LateDueDate:   datePtr(startDate.AddDate(0, 0, 7)),
			},
			setupMocks: func(loanRepo *mocks.MockLoanRepository, paymentRepo *mocks.MockPaymentRepository) {
				paymentRepo.On("GetByIdempotencyKey", mock.Anything, mock.AnythingOfType("string")).Return(nil, sql.ErrNoRows)
				loanRepo.On("GetByLoanID", mock.Anything, "LOAN128").Return(activeCompoundLoan("LOAN128"), nil)
				paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
					return p.IsLate && p.LateDueDate != nil
				})).Return(nil)
				loanRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
			},
			expectedError: false,
			validateResult: func(t *testing.T, response *domain.RegisterPaymentResponse) {
				assert.True(t, response.Payment.IsLate)
			},
		},
		{
			name: "Failure - duplicate idempotency key",
			request: &domain.RegisterPaymentRequest{
				LoanID:         "LOAN125",
				Amount:         decimal.NewFromInt(45000),
				PaymentMethod:  domain.PaymentMethodCash,
				PaymentDate:    startDate,
				IdempotencyKey: "1704067200000-abc",
			},
			setupMocks: func(loanRepo *mocks.MockLoanRepository, paymentRepo *mocks.MockPaymentRepository) {
				paymentRepo.On("GetByIdempotencyKey", mock.Anything, "1704067200000-abc").Return(&domain.Payment{
					ID:             uuid.New(),
					LoanID:         "LOAN125",
					IdempotencyKey: "1704067200000-abc",
				}, nil)
			},
			expectedError: true,
			errorContains: "DUPLICATE_SUBMISSION",
		},
		{
			name: "Failure - loan already closed",
			request: &domain.RegisterPaymentRequest{
				LoanID:        "LOAN126",
				Amount:        decimal.NewFromInt(45000),
				PaymentMethod: domain.PaymentMethodCash,
				PaymentDate:   startDate,
			},
			setupMocks: func(loanRepo *mocks.MockLoanRepository, paymentRepo *mocks.MockPaymentRepository) {
				loan := activeCompoundLoan("LOAN126")
				loan.Status = domain.LoanStatusClosed
				paymentRepo.On("GetByIdempotencyKey", mock.Anything, mock.AnythingOfType("string")).Return(nil, sql.ErrNoRows)
				loanRepo.On("GetByLoanID", mock.Anything, "LOAN126").Return(loan, nil)
			},
			expectedError: true,
			errorContains: "already closed",
		},
		{
			name: "Failure - non-positive amount",
			request: &domain.RegisterPaymentRequest{
				LoanID:        "LOAN127",
				Amount:        decimal.Zero,
				PaymentMethod: domain.PaymentMethodCash,
				PaymentDate:   startDate,
			},
			setupMocks:    func(loanRepo *mocks.MockLoanRepository, paymentRepo *mocks.MockPaymentRepository) {},
			expectedError: true,
			errorContains: "INVALID_AMOUNT",
		},
		{
			name: "Failure - loan not found",
			request: &domain.RegisterPaymentRequest{
				LoanID:        "NONEXISTENT",
				Amount:        decimal.NewFromInt(45000),
				PaymentMethod: domain.PaymentMethodCash,
				PaymentDate:   startDate,
			},
			setupMocks: func(loanRepo *mocks.MockLoanRepository, paymentRepo *mocks.MockPaymentRepository) {
				paymentRepo.On("GetByIdempotencyKey", mock.Anything, mock.AnythingOfType("string")).Return(nil, sql.ErrNoRows)
				loanRepo.On("GetByLoanID", mock.Anything, "NONEXISTENT").Return(nil, sql.ErrNoRows)
			},
			expectedError: true,
			errorContains: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loanRepo := &mocks.MockLoanRepository{}
			paymentRepo := &mocks.MockPaymentRepository{}
			svc := service.NewPaymentService(loanRepo, paymentRepo, nil, nil)

			tt.setupMocks(loanRepo, paymentRepo)

			response, err := svc.RegisterPayment(context.Background(), tt.request)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, response)
			} else {
				require.NoError(t, err)
				tt.validateResult(t, response)
			}

			loanRepo.AssertExpectations(t)
			paymentRepo.AssertExpectations(t)
		})
	}
}

func TestDeletePayment(t *testing.T) {
	paymentID := uuid.New()

	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockLoanRepository, *mocks.MockPaymentRepository)
		expectedError bool
		errorContains string
	}{
		{
			name: "Success - counters reverse and closed loan reopens",
			setupMocks: func(loanRepo *mocks.MockLoanRepository, paymentRepo *mocks.MockPaymentRepository) {
				loan := activeCompoundLoan("LOAN123")
				loan.PaidInstallments = 12
				loan.CapitalPaid = decimal.NewFromInt(500000)
				loan.DebtRemaining = decimal.Zero
				loan.Status = domain.LoanStatusClosed
				paymentRepo.On("GetByID", mock.Anything, paymentID).Return(&domain.Payment{
					ID:              paymentID,
					LoanID:          "LOAN123",
					Amount:          decimal.NewFromInt(45000),
					PrincipalAmount: decimal.NewFromInt(40000),
					InterestAmount:  decimal.NewFromInt(5000),
					PaymentDate:     startDate.AddDate(0, 0, 30),
				}, nil)
				loanRepo.On("GetByLoanID", mock.Anything, "LOAN123").Return(loan, nil)
				loanRepo.On("Update", mock.Anything, mock.MatchedBy(func(l *domain.Loan) bool {
					return l.PaidInstallments == 11 &&
						l.CapitalPaid.Equal(decimal.NewFromInt(460000)) &&
						l.DebtRemaining.Equal(decimal.NewFromInt(40000)) &&
						l.Status == domain.LoanStatusActive
				})).Return(nil)
				paymentRepo.On("Delete", mock.Anything, paymentID).Return(nil)
			},
			expectedError: false,
		},
		{
			name: "Failure - payment not found",
			setupMocks: func(loanRepo *mocks.MockLoanRepository, paymentRepo *mocks.MockPaymentRepository) {
				paymentRepo.On("GetByID", mock.Anything, paymentID).Return(nil, sql.ErrNoRows)
			},
			expectedError: true,
			errorContains: "PAYMENT_NOT_FOUND",
		},
		{
			name: "Failure - owning loan not found",
			setupMocks: func(loanRepo *mocks.MockLoanRepository, paymentRepo *mocks.MockPaymentRepository) {
				paymentRepo.On("GetByID", mock.Anything, paymentID).Return(&domain.Payment{
					ID:     paymentID,
					LoanID: "GONE",
				}, nil)
				loanRepo.On("GetByLoanID", mock.Anything, "GONE").Return(nil, sql.ErrNoRows)
			},
			expectedError: true,
			errorContains: "LOAN_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loanRepo := &mocks.MockLoanRepository{}
			paymentRepo := &mocks.MockPaymentRepository{}
			svc := service.NewPaymentService(loanRepo, paymentRepo, nil, nil)

			tt.setupMocks(loanRepo, paymentRepo)

			err := svc.DeletePayment(context.Background(), paymentID)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
			}

			loanRepo.AssertExpectations(t)
			paymentRepo.AssertExpectations(t)
		})
	}
}
