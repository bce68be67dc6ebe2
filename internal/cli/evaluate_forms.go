package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/evaluador/internal/cli/formatter"
	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/workflow"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// evaluadorHuhTheme returns a huh theme matching the formatter palette.
func evaluadorHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// stepValues holds what the current step's form edits. It is rebuilt from
// the workflow every time the active step changes.
type stepValues struct {
	role           string
	typeEvaluation string
	comments       string

	experienceName  string
	institutionName string
	stateID         int

	score         int
	justification string

	confirm bool
}

func valuesFor(wf *workflow.Workflow) *stepValues {
	ev := wf.Evaluation()
	v := &stepValues{}
	if ev == nil {
		return v
	}
	v.role = ev.AccompanimentRole
	v.typeEvaluation = ev.TypeEvaluation
	v.comments = ev.Comments
	v.experienceName = ev.ExperienceName
	v.institutionName = ev.InstitutionName
	v.stateID = ev.StateID
	if step := wf.CurrentStep(); step.Kind == workflow.StepCriterion {
		ce := wf.Criterion(step.CriteriaID)
		v.score = ce.Score
		v.justification = ce.Justification
	}
	v.confirm = true
	return v
}

func enumSelectOptions(opts []domain.EnumOption, current string) []huh.Option[string] {
	out := make([]huh.Option[string], 0, len(opts)+1)
	found := current == ""
	for _, o := range opts {
		out = append(out, huh.NewOption(o.DisplayText, o.DisplayText))
		if o.DisplayText == current {
			found = true
		}
	}
	if !found {
		out = append(out, huh.NewOption(current, current))
	}
	return out
}

func scoreSelectOptions(c domain.Criterion) []huh.Option[int] {
	var out []huh.Option[int]
	for i, b := range c.Bands {
		for _, s := range b.Scores {
			label := fmt.Sprintf("%2d  %s", s, formatter.Dim(fmt.Sprintf("nivel %d", i+1)))
			if s == domain.NotApplicable {
				label = "No aplica"
			}
			out = append(out, huh.NewOption(label, s))
		}
	}
	return out
}

func stateSelectOptions() []huh.Option[int] {
	return []huh.Option[int]{
		huh.NewOption("Sin definir", 0),
		huh.NewOption(string(domain.TierNaciente), 1),
		huh.NewOption(string(domain.TierCreciente), 2),
		huh.NewOption(string(domain.TierInspiradora), 3),
	}
}

// buildStepForm creates the form for the workflow's active step, bound to v.
func buildStepForm(wf *workflow.Workflow, v *stepValues, roles, types []domain.EnumOption) *huh.Form {
	step := wf.CurrentStep()
	var group *huh.Group

	switch step.Kind {
	case workflow.StepEvaluator:
		group = huh.NewGroup(
			huh.NewSelect[string]().
				Title("Rol en el acompañamiento").
				Options(enumSelectOptions(roles, v.role)...).
				Value(&v.role),
			huh.NewSelect[string]().
				Title("Tipo de evaluación").
				Options(enumSelectOptions(types, v.typeEvaluation)...).
				Value(&v.typeEvaluation),
			huh.NewText().
				Title("Comentarios").
				Description("Nombre del evaluador y observaciones generales").
				Value(&v.comments),
		)

	case workflow.StepExperienceInfo:
		lines := "--"
		if ev := wf.Evaluation(); ev != nil && len(ev.ThematicLineNames) > 0 {
			lines = strings.Join(ev.ThematicLineNames, ", ")
		}
		group = huh.NewGroup(
			huh.NewInput().Title("Nombre de la experiencia").Value(&v.experienceName),
			huh.NewInput().Title("Institución educativa").Value(&v.institutionName),
			huh.NewSelect[int]().
				Title("Estado de desarrollo declarado").
				Options(stateSelectOptions()...).
				Value(&v.stateID),
			huh.NewNote().Title("Líneas temáticas").Description(lines),
		)

	case workflow.StepCriterion:
		c, _ := domain.CriterionByID(step.CriteriaID)
		group = huh.NewGroup(
			huh.NewNote().
				Title(fmt.Sprintf("%d. %s", c.ID, c.Name)).
				Description(domain.CriterionDescription(c.ID)),
			huh.NewSelect[int]().
				Title("Puntaje").
				Options(scoreSelectOptions(c)...).
				Value(&v.score),
			huh.NewText().
				Title("Aportes").
				Description(fmt.Sprintf("Sugerido: hasta %d caracteres. Escriba NO APLICA si corresponde.", domain.JustificationHint)).
				Value(&v.justification),
		)

	case workflow.StepFinalConcept:
		group = huh.NewGroup(
			huh.NewNote().
				Title("Concepto final").
				Description(formatter.FormatSummary(wf.Preview())),
			huh.NewConfirm().
				Title("¿Guardar la evaluación?").
				Affirmative("Guardar").
				Negative("Volver").
				Value(&v.confirm),
		)
	}

	return huh.NewForm(group).WithTheme(evaluadorHuhTheme()).WithShowHelp(false)
}
