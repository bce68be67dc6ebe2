package workflow

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidScore indicates a score outside the criterion's allowed set.
	ErrInvalidScore = errors.New("score not allowed for criterion")

	// ErrUnknownCriterion indicates a criteria id absent from the catalog.
	ErrUnknownCriterion = errors.New("unknown criterion")

	// ErrStepValidationFailed indicates the active step blocked forward navigation.
	ErrStepValidationFailed = errors.New("step validation failed")

	// ErrIncompleteWorkflow indicates a submission attempted before the
	// evaluation was complete. The collaborator is not called.
	ErrIncompleteWorkflow = errors.New("evaluation is incomplete")

	// ErrSubmissionFailed wraps a collaborator failure. Answers are kept.
	ErrSubmissionFailed = errors.New("submission failed")

	// ErrSubmissionInFlight is returned when Submit is called while a
	// previous call has not returned.
	ErrSubmissionInFlight = errors.New("submission already in progress")

	// ErrWorkflowClosed is returned by a workflow whose evaluation was
	// already submitted or abandoned.
	ErrWorkflowClosed = errors.New("workflow closed")

	errEmptyResponse = errors.New("collaborator returned no result")
)

type InvalidScoreError struct {
	CriteriaID int
	Score      int
	Allowed    []int
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("criterion %d: score %d not in %v", e.CriteriaID, e.Score, e.Allowed)
}

func (e *InvalidScoreError) Unwrap() error { return ErrInvalidScore }

// StepValidationError carries the field-keyed messages of a rejected step.
type StepValidationError struct {
	Step   int
	Fields map[string]string
}

func (e *StepValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("step %d: invalid fields %s", e.Step, strings.Join(keys, ", "))
}

func (e *StepValidationError) Unwrap() error { return ErrStepValidationFailed }

// IncompleteWorkflowError lists why a submission was refused.
type IncompleteWorkflowError struct {
	ActiveStep      int
	MissingCriteria []int
}

func (e *IncompleteWorkflowError) Error() string {
	if e.ActiveStep != LastStep {
		return fmt.Sprintf("on step %d of %d", e.ActiveStep, LastStep)
	}
	return fmt.Sprintf("criteria without justification: %v", e.MissingCriteria)
}

func (e *IncompleteWorkflowError) Unwrap() error { return ErrIncompleteWorkflow }
