package workflow

import (
	"strings"

	"github.com/alexanderramin/evaluador/internal/domain"
)

type StepKind int

const (
	StepEvaluator StepKind = iota
	StepExperienceInfo
	StepCriterion
	StepFinalConcept
)

func (k StepKind) String() string {
	switch k {
	case StepEvaluator:
		return "evaluator"
	case StepExperienceInfo:
		return "experience"
	case StepCriterion:
		return "criterion"
	case StepFinalConcept:
		return "final_concept"
	default:
		return "unknown"
	}
}

// StepCount is the number of steps; LastStep is the terminal index.
const (
	StepCount = 2 + domain.CriterionCount + 1
	LastStep  = StepCount - 1
)

// Field keys and messages reported by step validation.
const (
	FieldAccompanimentRole = "accompanimentRole"
	FieldTypeEvaluation    = "typeEvaluation"
	FieldComments          = "comments"
	FieldExperienceName    = "experienceName"
	FieldInstitutionName   = "institutionName"

	MsgAccompanimentRole = "El rol en el acompañamiento es obligatorio."
	MsgTypeEvaluation    = "El tipo de evaluación es obligatorio."
	MsgComments          = "El comentario es obligatorio."
	MsgExperienceName    = "El nombre de la experiencia es obligatorio."
	MsgInstitutionName   = "El nombre de la institución es obligatorio."
	MsgJustification     = "El campo de aportes es obligatorio."
)

// Step is one page of the evaluation form. CriteriaID is set only for
// criterion steps.
type Step struct {
	Index      int
	Kind       StepKind
	Title      string
	CriteriaID int
}

var steps = buildSteps()

func buildSteps() []Step {
	out := []Step{
		{Index: 0, Kind: StepEvaluator, Title: "Datos del evaluador"},
		{Index: 1, Kind: StepExperienceInfo, Title: "Información de la experiencia"},
	}
	for _, c := range domain.Catalog() {
		out = append(out, Step{Index: len(out), Kind: StepCriterion, Title: c.Name, CriteriaID: c.ID})
	}
	out = append(out, Step{Index: len(out), Kind: StepFinalConcept, Title: "Concepto final"})
	return out
}

// Steps returns the step table in order.
func Steps() []Step {
	return append([]Step(nil), steps...)
}

// StepAt returns the step at index i, clamped into range.
func StepAt(i int) Step {
	return steps[clamp(i)]
}

// ValidationResult holds field-keyed messages; empty means valid.
type ValidationResult struct {
	Errors map[string]string
}

func (r ValidationResult) Valid() bool { return len(r.Errors) == 0 }

func (r *ValidationResult) add(field, msg string) {
	if r.Errors == nil {
		r.Errors = map[string]string{}
	}
	r.Errors[field] = msg
}

// Validate checks the fields this step owns. Criterion scores are not
// gated: the default score passes as long as a justification exists.
func (s Step) Validate(ev *domain.Evaluation) ValidationResult {
	var r ValidationResult
	switch s.Kind {
	case StepEvaluator:
		if blank(ev.AccompanimentRole) {
			r.add(FieldAccompanimentRole, MsgAccompanimentRole)
		}
		if blank(ev.TypeEvaluation) {
			r.add(FieldTypeEvaluation, MsgTypeEvaluation)
		}
		if blank(ev.Comments) {
			r.add(FieldComments, MsgComments)
		}
	case StepExperienceInfo:
		if blank(ev.ExperienceName) {
			r.add(FieldExperienceName, MsgExperienceName)
		}
		if blank(ev.InstitutionName) {
			r.add(FieldInstitutionName, MsgInstitutionName)
		}
	case StepCriterion:
		c, _ := domain.CriterionByID(s.CriteriaID)
		ce, ok := ev.CriteriaEvaluations[s.CriteriaID]
		if !ok || blank(ce.Justification) {
			r.add(c.ErrorKey(), MsgJustification)
		}
	}
	return r
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
