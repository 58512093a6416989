package errors

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors
var (
	ErrInvalidDateRange     = errors.New("end date must be after start date")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidRate          = errors.New("invalid interest rate")
	ErrInvalidFrequency     = errors.New("invalid payment frequency")
	ErrInvalidInterestType  = errors.New("invalid interest type")
	ErrInvalidTerm          = errors.New("invalid loan term")
	ErrInvalidCountSource   = errors.New("invalid installment count source")
	ErrMissingReferenceData = errors.New("no payments and no start date to measure arrears from")
	ErrFutureReferenceDate  = errors.New("reference date is after the supplied today")
	ErrLoanNotFound         = errors.New("loan not found")
	ErrLoanAlreadyExists    = errors.New("loan already exists")
	ErrLoanAlreadyClosed    = errors.New("loan is already closed")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrTransferNotFound     = errors.New("transfer not found")
	ErrSameAccountTransfer  = errors.New("transfer source and destination are the same account")
	ErrDuplicateSubmission  = errors.New("duplicate submission for idempotency key")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidDateRange     = "INVALID_DATE_RANGE"
	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
	ErrCodeInvalidRate          = "INVALID_RATE"
	ErrCodeInvalidFrequency     = "INVALID_FREQUENCY"
	ErrCodeInvalidInterestType  = "INVALID_INTEREST_TYPE"
	ErrCodeInvalidTerm          = "INVALID_TERM"
	ErrCodeInvalidCountSource   = "INVALID_COUNT_SOURCE"
	ErrCodeMissingReferenceData = "MISSING_REFERENCE_DATA"
	ErrCodeFutureReferenceDate  = "FUTURE_REFERENCE_DATE"
	ErrCodeLoanNotFound         = "LOAN_NOT_FOUND"
	ErrCodeLoanAlreadyExists    = "LOAN_ALREADY_EXISTS"
	ErrCodeLoanAlreadyClosed    = "LOAN_ALREADY_CLOSED"
	ErrCodePaymentNotFound      = "PAYMENT_NOT_FOUND"
	ErrCodeTransferNotFound     = "TRANSFER_NOT_FOUND"
	ErrCodeSameAccountTransfer  = "SAME_ACCOUNT_TRANSFER"
	ErrCodeDuplicateSubmission  = "DUPLICATE_SUBMISSION"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeCacheError           = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapInvalidDateRange(start, end time.Time) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDateRange,
		fmt.Sprintf("End date %s must be after start date %s", end.Format("2006-01-02"), start.Format("2006-01-02")),
		ErrInvalidDateRange,
	)
}

func WrapInvalidAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		fmt.Sprintf("Invalid amount: %s", amount),
		ErrInvalidAmount,
	)
}

func WrapInvalidRate(rate string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRate,
		fmt.Sprintf("Invalid interest rate: %s", rate),
		ErrInvalidRate,
	)
}

func WrapInvalidFrequency(frequency string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidFrequency,
		fmt.Sprintf("Unknown payment frequency %q", frequency),
		ErrInvalidFrequency,
	)
}

func WrapInvalidInterestType(interestType string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInterestType,
		fmt.Sprintf("Unknown interest type %q", interestType),
		ErrInvalidInterestType,
	)
}

func WrapInvalidTerm(months int) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTerm,
		fmt.Sprintf("Loan term must be at least one month, got %d", months),
		ErrInvalidTerm,
	)
}

func WrapInvalidCountSource(source string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCountSource,
		fmt.Sprintf("Unknown installment count source %q", source),
		ErrInvalidCountSource,
	)
}

func WrapMissingReferenceData() *BusinessError {
	return NewBusinessError(
		ErrCodeMissingReferenceData,
		"Arrears tracking needs at least a loan start date or one payment",
		ErrMissingReferenceData,
	)
}

func WrapFutureReferenceDate(reference, today time.Time) *BusinessError {
	return NewBusinessError(
		ErrCodeFutureReferenceDate,
		fmt.Sprintf("Reference date %s is after today %s", reference.Format("2006-01-02"), today.Format("2006-01-02")),
		ErrFutureReferenceDate,
	)
}

func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapLoanAlreadyExists(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanAlreadyExists,
		fmt.Sprintf("Loan with ID %s already exists", loanID),
		ErrLoanAlreadyExists,
	)
}

func WrapLoanAlreadyClosed(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanAlreadyClosed,
		fmt.Sprintf("Loan with ID %s is already closed", loanID),
		ErrLoanAlreadyClosed,
	)
}

func WrapPaymentNotFound(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment with ID %s not found", paymentID),
		ErrPaymentNotFound,
	)
}

func WrapTransferNotFound(transferID string) *BusinessError {
	return NewBusinessError(
		ErrCodeTransferNotFound,
		fmt.Sprintf("Transfer with ID %s not found", transferID),
		ErrTransferNotFound,
	)
}

func WrapSameAccountTransfer(accountID string) *BusinessError {
	return NewBusinessError(
		ErrCodeSameAccountTransfer,
		fmt.Sprintf("Cannot transfer from account %s to itself", accountID),
		ErrSameAccountTransfer,
	)
}

func WrapDuplicateSubmission(key string) *BusinessError {
	return NewBusinessError(
		ErrCodeDuplicateSubmission,
		fmt.Sprintf("A submission with idempotency key %s was already processed", key),
		ErrDuplicateSubmission,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
