package workflow

import (
	"context"

	"github.com/alexanderramin/evaluador/internal/app"
	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/scoring"
)

// Workflow owns one in-memory evaluation together with its score store,
// stepper and coordinator. The evaluation is discarded after a successful
// submit or on Abandon; it is never partially persisted.
type Workflow struct {
	ev      *domain.Evaluation
	store   *Store
	stepper *Stepper
	coord   *Coordinator
	closed  bool
}

// Open starts a workflow. When exp is non-nil the experience fields are
// prefilled from it.
func Open(session Session, exp *domain.Experience, observers ...SubmissionObserver) *Workflow {
	ev := domain.NewEvaluation()
	if exp != nil {
		// A fresh evaluation has no experience yet, so Prefill cannot fail.
		_ = ev.Prefill(*exp)
	}
	return &Workflow{
		ev:      ev,
		store:   NewStore(ev.CriteriaEvaluations),
		stepper: NewStepper(ev),
		coord:   NewCoordinator(session, observers...),
	}
}

// Evaluation returns the live evaluation, or nil once closed.
func (w *Workflow) Evaluation() *domain.Evaluation {
	if w.closed {
		return nil
	}
	return w.ev
}

func (w *Workflow) Closed() bool { return w.closed }

func (w *Workflow) State() State { return w.stepper.State() }

func (w *Workflow) CurrentStep() Step { return w.stepper.Current() }

func (w *Workflow) SubmissionState() SubmissionState { return w.coord.State() }

func (w *Workflow) FailureMessage() string { return w.coord.Message() }

func (w *Workflow) Criterion(id int) domain.CriterionEvaluation { return w.store.Get(id) }

func (w *Workflow) SetEvaluator(role, typeEvaluation, comments string) error {
	if w.closed {
		return ErrWorkflowClosed
	}
	w.ev.AccompanimentRole = role
	w.ev.TypeEvaluation = typeEvaluation
	w.ev.Comments = comments
	return nil
}

func (w *Workflow) SetExperienceInfo(name, institution string, stateID int) error {
	if w.closed {
		return ErrWorkflowClosed
	}
	w.ev.ExperienceName = name
	w.ev.InstitutionName = institution
	w.ev.StateID = stateID
	return nil
}

func (w *Workflow) SetThematicLines(names []string) error {
	if w.closed {
		return ErrWorkflowClosed
	}
	w.ev.ThematicLineNames = append([]string(nil), names...)
	return nil
}

// AssignExperience binds the evaluation to an experience id.
func (w *Workflow) AssignExperience(id int) error {
	if w.closed {
		return ErrWorkflowClosed
	}
	return w.ev.AssignExperience(id)
}

func (w *Workflow) SetScore(criteriaID, score int) error {
	if w.closed {
		return ErrWorkflowClosed
	}
	return w.store.SetScore(criteriaID, score)
}

func (w *Workflow) SetJustification(criteriaID int, text string) error {
	if w.closed {
		return ErrWorkflowClosed
	}
	return w.store.SetJustification(criteriaID, text)
}

func (w *Workflow) Next() error {
	if w.closed {
		return ErrWorkflowClosed
	}
	return w.stepper.Next()
}

func (w *Workflow) Back() {
	if !w.closed {
		w.stepper.Back()
	}
}

// Preview is the live local score summary.
func (w *Workflow) Preview() scoring.Summary {
	if w.closed {
		return scoring.Summarize(domain.CriteriaSet{})
	}
	return scoring.Summarize(w.ev.CriteriaEvaluations)
}

// Submit hands the evaluation to the collaborator. Success closes the
// workflow; failure keeps every answer for a retry.
func (w *Workflow) Submit(ctx context.Context) (*app.SubmitResult, error) {
	if w.closed {
		return nil, ErrWorkflowClosed
	}
	res, err := w.coord.Submit(ctx, w.stepper)
	if err != nil {
		return nil, err
	}
	w.discard()
	return res, nil
}

// Abandon drops the evaluation without side effects.
func (w *Workflow) Abandon() {
	w.discard()
}

func (w *Workflow) discard() {
	w.closed = true
	w.ev = nil
	w.store = NewStore(domain.CriteriaSet{})
	w.stepper = NewStepper(nil)
}
