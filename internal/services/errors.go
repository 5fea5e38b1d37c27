package services

import "errors"

var (
	// ErrModelUnavailable means no (encoder, classifier) pair has been
	// published yet. Retryable after an admin retrains; not a client error.
	ErrModelUnavailable = errors.New("model not trained yet")

	// ErrInsufficientData means retrain was attempted over an empty dataset.
	ErrInsufficientData = errors.New("no training data found to retrain")

	// ErrTrainingFailed wraps any failure during fitting or persisting; the
	// previously published model pair stays live.
	ErrTrainingFailed = errors.New("training failed")
)

// A ValidationError is caller-fixable bad input: missing fields, a GPA out
// of range, or a profile no role could be matched against.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func newValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidationError reports whether err is caller-fixable.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
