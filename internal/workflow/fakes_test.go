package workflow

import (
	"context"
	"errors"

	"github.com/alexanderramin/evaluador/internal/app"
	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/scoring"
)

// fakeSubmitter records calls and answers with the local tier unless told
// to fail or to return a fixed tier.
type fakeSubmitter struct {
	calls    int
	last     *domain.Evaluation
	err      error
	tier     domain.Tier
	inFlight func()
	// total overrides the reported total; noTotal omits it.
	total   *int
	noTotal bool
}

func (f *fakeSubmitter) SubmitEvaluation(_ context.Context, ev *domain.Evaluation) (*app.SubmitResult, error) {
	f.calls++
	f.last = ev
	if f.inFlight != nil {
		f.inFlight()
	}
	if f.err != nil {
		return nil, f.err
	}
	total := scoring.TotalScore(ev.CriteriaEvaluations)
	tier := f.tier
	if tier == "" {
		tier = scoring.ResolveTier(total)
	}
	res := &app.SubmitResult{EvaluationID: 41, Reference: "ref-41", EvaluationResult: tier, TotalScore: total, TotalReported: true}
	switch {
	case f.noTotal:
		res.TotalScore, res.TotalReported = 0, false
	case f.total != nil:
		res.TotalScore = *f.total
	}
	return res, nil
}

var errBackendDown = errors.New("backend down")

type recordingObserver struct {
	events []SubmissionEvent
}

func (r *recordingObserver) ObserveSubmission(_ context.Context, e SubmissionEvent) {
	r.events = append(r.events, e)
}

// fillEvaluator completes step 0.
func fillEvaluator(ev *domain.Evaluation) {
	ev.AccompanimentRole = "Acompañante"
	ev.TypeEvaluation = "Interna"
	ev.Comments = "Jane Doe"
}

// fillExperience completes step 1.
func fillExperience(ev *domain.Evaluation) {
	ev.ExperienceID = 3
	ev.ExperienceName = "Huerta escolar"
	ev.InstitutionName = "IE La Esperanza"
}

// walkToFinal fills every step with justification text and a zero score,
// advancing to the final step.
func walkToFinal(s *Stepper, store *Store, text string) error {
	fillEvaluator(s.Evaluation())
	fillExperience(s.Evaluation())
	for !s.AtFinal() {
		step := s.Current()
		if step.Kind == StepCriterion {
			if err := store.SetScore(step.CriteriaID, 0); err != nil {
				return err
			}
			if err := store.SetJustification(step.CriteriaID, text); err != nil {
				return err
			}
		}
		if err := s.Next(); err != nil {
			return err
		}
	}
	return nil
}
