package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/google/uuid"
)

var testExperienceCounter atomic.Int64

// Experience options
type ExperienceOption func(*domain.Experience)

func WithExperienceID(id int) ExperienceOption {
	return func(x *domain.Experience) {
		x.ID = id
	}
}

func WithInstitution(name string) ExperienceOption {
	return func(x *domain.Experience) {
		x.Institution = domain.Institution{Name: name}
	}
}

func WithThematicLines(ids []int, names []string) ExperienceOption {
	return func(x *domain.Experience) {
		x.ThematicLineIDs = ids
		x.ThematicLineNames = names
	}
}

func WithStateID(id int) ExperienceOption {
	return func(x *domain.Experience) {
		x.StateID = id
	}
}

func NewTestExperience(name string, opts ...ExperienceOption) *domain.Experience {
	n := int(testExperienceCounter.Add(1))
	x := &domain.Experience{
		ID:          1000 + n,
		Name:        name,
		Code:        fmt.Sprintf("EXP-%03d", n),
		Institution: domain.Institution{Name: "IE " + uuid.New().String()[:8]},
		StateID:     1,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Evaluation options
type EvaluationOption func(*domain.Evaluation)

// ForExperience prefills the evaluation from x.
func ForExperience(x *domain.Experience) EvaluationOption {
	return func(ev *domain.Evaluation) {
		ev.ExperienceID = 0
		_ = ev.Prefill(*x)
	}
}

// WithScore sets one criterion's score. The value is not checked against
// the catalog so tests can build invalid records.
func WithScore(criteriaID, score int) EvaluationOption {
	return func(ev *domain.Evaluation) {
		ce, ok := ev.CriteriaEvaluations[criteriaID]
		if !ok {
			ce = domain.NewCriterionEvaluation(criteriaID)
		}
		ce.Score = score
		ev.CriteriaEvaluations[criteriaID] = ce
	}
}

func WithJustification(criteriaID int, text string) EvaluationOption {
	return func(ev *domain.Evaluation) {
		ce, ok := ev.CriteriaEvaluations[criteriaID]
		if !ok {
			ce = domain.NewCriterionEvaluation(criteriaID)
		}
		ce.Justification = text
		ev.CriteriaEvaluations[criteriaID] = ce
	}
}

func WithEvaluator(userID int) EvaluationOption {
	return func(ev *domain.Evaluation) {
		ev.EvaluatorUserID = userID
	}
}

// NewCompleteEvaluation returns an evaluation with every step filled: all
// nine criteria scored 0 with the justification "NO APLICA".
func NewCompleteEvaluation(opts ...EvaluationOption) *domain.Evaluation {
	ev := domain.NewEvaluation()
	ev.ExperienceID = 1
	ev.EvaluatorUserID = 1
	ev.AccompanimentRole = "Acompañante"
	ev.TypeEvaluation = "Interna"
	ev.Comments = "Jane Doe"
	ev.ExperienceName = "Huerta escolar"
	ev.InstitutionName = "IE La Esperanza"
	ev.StateID = 1
	for _, c := range domain.Catalog() {
		ce := domain.NewCriterionEvaluation(c.ID)
		ce.Justification = "NO APLICA"
		ev.CriteriaEvaluations[c.ID] = ce
	}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}
