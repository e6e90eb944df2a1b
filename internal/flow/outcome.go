package flow

import (
	"errors"

	"github.com/nfrund/goby-auth/internal/domain/auth_errors"
	"github.com/nfrund/goby-auth/internal/metrics"
	"github.com/nfrund/goby-auth/internal/validation"
)

// Outcome maps the error returned by Submit to a metrics outcome label.
func Outcome(err error) string {
	var fieldErrs validation.FieldErrors
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &fieldErrs):
		return metrics.OutcomeValidationError
	case errors.Is(err, auth_errors.ErrTokenMissing):
		return metrics.OutcomeTokenMissing
	case errors.Is(err, ErrSubmitInFlight):
		return metrics.OutcomeInFlight
	case errors.Is(err, ErrFlowClosed):
		return metrics.OutcomeClosed
	default:
		return metrics.OutcomeServiceError
	}
}
