package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/evaluador/internal/app"
	"github.com/alexanderramin/evaluador/internal/scoring"
)

type SubmissionState int

const (
	SubmissionIdle SubmissionState = iota
	SubmissionSubmitting
	SubmissionSucceeded
	SubmissionFailed
)

func (s SubmissionState) String() string {
	switch s {
	case SubmissionIdle:
		return "idle"
	case SubmissionSubmitting:
		return "submitting"
	case SubmissionSucceeded:
		return "succeeded"
	case SubmissionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FailureMessage is shown to the evaluator when the collaborator refuses or
// cannot be reached.
const FailureMessage = "Error al guardar la evaluación"

// Session is the explicit context an evaluation runs in: who is evaluating
// and where finished evaluations go.
type Session struct {
	Identity  app.Identity
	Submitter app.EvaluationSubmitter
}

// Coordinator hands a finished evaluation to the persistence collaborator.
type Coordinator struct {
	session  Session
	observer SubmissionObserver

	state   SubmissionState
	result  *app.SubmitResult
	message string
}

func NewCoordinator(session Session, observers ...SubmissionObserver) *Coordinator {
	return &Coordinator{
		session:  session,
		observer: submissionObserverOrNoop(observers),
	}
}

func (c *Coordinator) State() SubmissionState { return c.state }

// Result is the collaborator's answer after a successful submit.
func (c *Coordinator) Result() *app.SubmitResult { return c.result }

// Message is the failure text after a failed submit.
func (c *Coordinator) Message() string { return c.message }

// Submit sends the stepper's evaluation once. It refuses unless the stepper
// is on the final step and every criterion has a justification. On failure
// the answers are left untouched and a later Submit retries.
func (c *Coordinator) Submit(ctx context.Context, st *Stepper) (*app.SubmitResult, error) {
	if c.state == SubmissionSubmitting {
		return nil, ErrSubmissionInFlight
	}
	ev := st.Evaluation()
	missing := ev.CriteriaEvaluations.Missing()
	if !st.AtFinal() || len(missing) > 0 {
		return nil, &IncompleteWorkflowError{ActiveStep: st.ActiveStep(), MissingCriteria: missing}
	}

	if c.session.Identity != nil {
		ev.EvaluatorUserID = c.session.Identity.CurrentUserID()
	}
	total := scoring.TotalScore(ev.CriteriaEvaluations)
	local := scoring.ResolveTier(total)
	ev.EvaluationResult = local

	c.state = SubmissionSubmitting
	c.message = ""
	c.result = nil
	start := time.Now()

	res, err := c.session.Submitter.SubmitEvaluation(ctx, ev)
	event := SubmissionEvent{
		ExperienceID: ev.ExperienceID,
		UserID:       ev.EvaluatorUserID,
		TotalScore:   total,
		LocalTier:    local,
		Duration:     time.Since(start),
	}
	if err == nil && res == nil {
		err = errEmptyResponse
	}
	if err != nil {
		c.state = SubmissionFailed
		c.message = FailureMessage
		event.Err = err
		c.observer.ObserveSubmission(ctx, event)
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	if res.EvaluationResult == "" {
		res.EvaluationResult = local
	}
	event.Success = true
	event.RemoteTier = res.EvaluationResult
	event.RemoteTotal = res.TotalScore
	event.RemoteTotalReported = res.TotalReported
	c.observer.ObserveSubmission(ctx, event)

	ev.EvaluationResult = res.EvaluationResult
	c.state = SubmissionSucceeded
	c.result = res
	return res, nil
}
