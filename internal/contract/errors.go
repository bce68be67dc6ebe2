package contract

import "github.com/alexanderramin/evaluador/internal/app"

type SubmitErrorCode = app.SubmitErrorCode

const (
	SubmitErrInvalidRecord     SubmitErrorCode = app.SubmitErrInvalidRecord
	SubmitErrUnknownExperience SubmitErrorCode = app.SubmitErrUnknownExperience
	SubmitErrUnauthorized      SubmitErrorCode = app.SubmitErrUnauthorized
	SubmitErrUnavailable       SubmitErrorCode = app.SubmitErrUnavailable
	SubmitErrInternal          SubmitErrorCode = app.SubmitErrInternal
)

type SubmitError = app.SubmitError

type SubmitResult = app.SubmitResult

type EvaluationSummary = app.EvaluationSummary
