package handler

import (
	"errors"
	"net/http"

	customError "github.com/uzideath/motofacil-engine/pkg/errors"
	"github.com/uzideath/motofacil-engine/pkg/response"
)

// writeBusinessError maps a BusinessError code to an HTTP status. Unknown
// errors fall through as 500s.
func writeBusinessError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		response.InternalServerError(w, "Unexpected error", err)
		return
	}

	switch businessErr.Code {
	case customError.ErrCodeLoanNotFound,
		customError.ErrCodePaymentNotFound,
		customError.ErrCodeTransferNotFound:
		response.NotFound(w, businessErr.Message)
	case customError.ErrCodeLoanAlreadyExists,
		customError.ErrCodeDuplicateSubmission,
		customError.ErrCodeLoanAlreadyClosed:
		response.Conflict(w, businessErr.Message, businessErr.Err)
	case customError.ErrCodeDatabaseError, customError.ErrCodeCacheError:
		response.InternalServerError(w, businessErr.Message, businessErr.Err)
	default:
		// Validation failures: invalid dates, amounts, rates, frequencies.
		response.BadRequest(w, businessErr.Message, businessErr.Err)
	}
}
