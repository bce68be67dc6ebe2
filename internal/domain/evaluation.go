package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrExperienceReassigned is returned when an evaluation already bound to one
// experience is pointed at a different one.
var ErrExperienceReassigned = errors.New("evaluation already assigned to another experience")

// CriterionEvaluation is the evaluator's answer for one criterion.
// A zero Score with an empty Justification means "not yet answered".
type CriterionEvaluation struct {
	ID            int
	CriteriaID    int
	EvaluationID  int
	Score         int
	Justification string
	State         bool
	CreatedAt     *time.Time
	DeletedAt     *time.Time
}

// NewCriterionEvaluation returns the default entry for a criterion.
func NewCriterionEvaluation(criteriaID int) CriterionEvaluation {
	return CriterionEvaluation{CriteriaID: criteriaID, State: true}
}

// Answered reports whether the entry counts toward a complete evaluation.
func (ce CriterionEvaluation) Answered() bool {
	return trimmedNonEmpty(ce.Justification)
}

// CriteriaSet holds at most one entry per criteria id.
type CriteriaSet map[int]CriterionEvaluation

// Sorted returns the entries ordered by catalog position. Entries for ids
// outside the catalog sort last by id.
func (cs CriteriaSet) Sorted() []CriterionEvaluation {
	out := make([]CriterionEvaluation, 0, len(cs))
	for _, ce := range cs {
		out = append(out, ce)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := catalogPosition(out[i].CriteriaID), catalogPosition(out[j].CriteriaID)
		if pi != pj {
			return pi < pj
		}
		return out[i].CriteriaID < out[j].CriteriaID
	})
	return out
}

// Missing returns the catalog ids with no entry or a blank justification.
func (cs CriteriaSet) Missing() []int {
	var missing []int
	for _, c := range catalog {
		ce, ok := cs[c.ID]
		if !ok || !ce.Answered() {
			missing = append(missing, c.ID)
		}
	}
	return missing
}

func catalogPosition(id int) int {
	for i, c := range catalog {
		if c.ID == id {
			return i
		}
	}
	return len(catalog)
}

// Evaluation is one evaluator's assessment of one experience.
type Evaluation struct {
	EvaluationID      int
	ExperienceID      int
	EvaluatorUserID   int
	TypeEvaluation    string
	AccompanimentRole string
	Comments          string
	ExperienceName    string
	InstitutionName   string
	StateID           int
	ThematicLineNames []string

	CriteriaEvaluations CriteriaSet
	EvaluationResult    Tier
}

// NewEvaluation returns an empty evaluation ready for answers.
func NewEvaluation() *Evaluation {
	return &Evaluation{CriteriaEvaluations: CriteriaSet{}}
}

// AssignExperience binds the evaluation to an experience. Assigning the same
// id again is a no-op; a different id is rejected.
func (e *Evaluation) AssignExperience(id int) error {
	if e.ExperienceID != 0 && e.ExperienceID != id {
		return fmt.Errorf("experience %d: %w", e.ExperienceID, ErrExperienceReassigned)
	}
	e.ExperienceID = id
	return nil
}

// Prefill copies the descriptive fields of an experience into the
// evaluation. Thematic line ids stand in for names when names are absent.
func (e *Evaluation) Prefill(exp Experience) error {
	if err := e.AssignExperience(exp.ID); err != nil {
		return err
	}
	e.ExperienceName = exp.Name
	e.InstitutionName = exp.Institution.Name
	e.StateID = exp.StateID
	e.ThematicLineNames = exp.ThematicLineLabels()
	return nil
}
