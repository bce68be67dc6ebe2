package workflow

import "github.com/alexanderramin/evaluador/internal/domain"

// State is the stepper's position plus the messages of the last rejected
// advance.
type State struct {
	ActiveStep  int
	FieldErrors map[string]string
}

type Action int

const (
	ActionNext Action = iota
	ActionBack
)

// Transition is the pure navigation function. Next validates the active
// step and advances only when it passes; Back never validates. There is no
// jump action.
func Transition(s State, a Action, ev *domain.Evaluation) State {
	switch a {
	case ActionNext:
		r := StepAt(s.ActiveStep).Validate(ev)
		if !r.Valid() {
			return State{ActiveStep: s.ActiveStep, FieldErrors: r.Errors}
		}
		return State{ActiveStep: clamp(s.ActiveStep + 1)}
	case ActionBack:
		return State{ActiveStep: clamp(s.ActiveStep - 1), FieldErrors: s.FieldErrors}
	default:
		return s
	}
}

func clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > LastStep {
		return LastStep
	}
	return i
}

// Stepper drives one evaluation through the step table. It is not safe for
// concurrent use.
type Stepper struct {
	state State
	ev    *domain.Evaluation
}

func NewStepper(ev *domain.Evaluation) *Stepper {
	return &Stepper{ev: ev}
}

func (s *Stepper) State() State {
	return s.state
}

func (s *Stepper) ActiveStep() int { return s.state.ActiveStep }

func (s *Stepper) Current() Step { return StepAt(s.state.ActiveStep) }

func (s *Stepper) Evaluation() *domain.Evaluation { return s.ev }

func (s *Stepper) FieldErrors() map[string]string { return s.state.FieldErrors }

func (s *Stepper) AtFinal() bool { return s.state.ActiveStep == LastStep }

// Next advances when the active step validates; otherwise it records the
// field errors and returns a *StepValidationError.
func (s *Stepper) Next() error {
	s.state = Transition(s.state, ActionNext, s.ev)
	if len(s.state.FieldErrors) > 0 {
		return &StepValidationError{Step: s.state.ActiveStep, Fields: s.state.FieldErrors}
	}
	return nil
}

func (s *Stepper) Back() {
	s.state = Transition(s.state, ActionBack, s.ev)
}
