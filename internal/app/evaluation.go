package app

import (
	"time"

	"github.com/alexanderramin/evaluador/internal/domain"
)

// EvaluationSummary is one row of the stored-evaluations listing.
type EvaluationSummary struct {
	EvaluationID     int
	Reference        string
	ExperienceID     int
	ExperienceName   string
	EvaluatorUserID  int
	TotalScore       int
	EvaluationResult domain.Tier
	CreatedAt        time.Time
}

type SubmitErrorCode string

const (
	SubmitErrInvalidRecord     SubmitErrorCode = "INVALID_RECORD"
	SubmitErrUnknownExperience SubmitErrorCode = "UNKNOWN_EXPERIENCE"
	SubmitErrUnauthorized      SubmitErrorCode = "UNAUTHORIZED"
	SubmitErrUnavailable       SubmitErrorCode = "UNAVAILABLE"
	SubmitErrInternal          SubmitErrorCode = "INTERNAL_ERROR"
)

// SubmitError is returned by submitters when the record is refused.
// Fields holds per-field messages when the refusal is a validation failure.
type SubmitError struct {
	Code    SubmitErrorCode
	Message string
	Fields  map[string]string
	Err     error
}

func (e *SubmitError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *SubmitError) Unwrap() error { return e.Err }
