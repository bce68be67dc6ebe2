package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/evaluador/internal/cli/formatter"
	"github.com/alexanderramin/evaluador/internal/contract"
	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/workflow"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type evaluateKeys struct {
	Back key.Binding
	Quit key.Binding
}

func defaultEvaluateKeys() evaluateKeys {
	return evaluateKeys{
		Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "paso anterior")),
		Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "descartar y salir")),
	}
}

func (k evaluateKeys) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "siguiente")),
		k.Back,
		k.Quit,
	}
}

func (k evaluateKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// stepDoneMsg is sent when the active step's form completes.
type stepDoneMsg struct{}

type submitDoneMsg struct {
	res *contract.SubmitResult
	err error
}

// evaluateModel is the interactive evaluation wizard: one huh form per
// workflow step, with submission running in a command so the spinner
// keeps turning.
type evaluateModel struct {
	ctx   context.Context
	wf    *workflow.Workflow
	roles []domain.EnumOption
	types []domain.EnumOption

	values  *stepValues
	form    *huh.Form
	pending bool

	spinner spinner.Model
	help    help.Model
	keys    evaluateKeys

	submitting    bool
	failure       string
	failureFields map[string]string
	result        *contract.SubmitResult
	aborted       bool
}

func newEvaluateModel(ctx context.Context, wf *workflow.Workflow, roles, types []domain.EnumOption) *evaluateModel {
	m := &evaluateModel{
		ctx:     ctx,
		wf:      wf,
		roles:   roles,
		types:   types,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple)),
		help:    help.New(),
		keys:    defaultEvaluateKeys(),
	}
	m.resetForm()
	return m
}

func (m *evaluateModel) resetForm() {
	m.pending = false
	m.values = valuesFor(m.wf)
	m.form = buildStepForm(m.wf, m.values, m.roles, m.types)
}

func (m *evaluateModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *evaluateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			if !m.submitting {
				m.wf.Abandon()
			}
			m.aborted = true
			return m, tea.Quit
		}
		if m.submitting || m.finished() {
			return m, nil
		}
		if key.Matches(msg, m.keys.Back) {
			if m.wf.State().ActiveStep == 0 {
				return m, nil
			}
			m.wf.Back()
			m.clearFailure()
			m.resetForm()
			return m, m.form.Init()
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case stepDoneMsg:
		return m, m.applyStep()

	case submitDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.failure = m.wf.FailureMessage()
			m.failureFields = nil
			var se *contract.SubmitError
			if errors.As(msg.err, &se) {
				m.failure += ": " + se.Message
				m.failureFields = se.Fields
			} else {
				m.failure += ": " + msg.err.Error()
			}
			m.resetForm()
			return m, m.form.Init()
		}
		m.result = msg.res
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.submitting || m.pending || m.finished() {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.pending = true
		return m, tea.Batch(cmd, func() tea.Msg { return stepDoneMsg{} })
	}
	return m, cmd
}

func (m *evaluateModel) finished() bool {
	return m.aborted || m.result != nil
}

func (m *evaluateModel) clearFailure() {
	m.failure = ""
	m.failureFields = nil
}

// applyStep copies the form values into the workflow and advances. A
// rejected step stays active with its field errors shown.
func (m *evaluateModel) applyStep() tea.Cmd {
	step := m.wf.CurrentStep()
	v := m.values

	var err error
	switch step.Kind {
	case workflow.StepEvaluator:
		err = m.wf.SetEvaluator(v.role, v.typeEvaluation, v.comments)
	case workflow.StepExperienceInfo:
		err = m.wf.SetExperienceInfo(v.experienceName, v.institutionName, v.stateID)
	case workflow.StepCriterion:
		if err = m.wf.SetScore(step.CriteriaID, v.score); err == nil {
			err = m.wf.SetJustification(step.CriteriaID, v.justification)
		}
	case workflow.StepFinalConcept:
		if !v.confirm {
			m.wf.Back()
			m.clearFailure()
			m.resetForm()
			return m.form.Init()
		}
		m.clearFailure()
		m.submitting = true
		return tea.Batch(m.spinner.Tick, m.submitCmd())
	}
	if err != nil {
		m.failure = err.Error()
		m.resetForm()
		return m.form.Init()
	}

	m.clearFailure()
	// A validation failure is recorded in the workflow's field errors.
	_ = m.wf.Next()
	m.resetForm()
	return m.form.Init()
}

func (m *evaluateModel) submitCmd() tea.Cmd {
	ctx, wf := m.ctx, m.wf
	return func() tea.Msg {
		res, err := wf.Submit(ctx)
		return submitDoneMsg{res: res, err: err}
	}
}

func (m *evaluateModel) View() string {
	var b strings.Builder

	switch {
	case m.result != nil:
		b.WriteString(formatter.FormatSubmitResult(m.result))
		return b.String()
	case m.aborted:
		b.WriteString(formatter.Dim("Evaluación descartada.") + "\n")
		return b.String()
	}

	st := m.wf.State()
	step := workflow.StepAt(st.ActiveStep)
	b.WriteString(formatter.Header("Evaluación de experiencia significativa"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s  %s\n\n", progressDots(st.ActiveStep), formatter.Dim(fmt.Sprintf("Paso %d de %d", st.ActiveStep+1, workflow.StepCount)), formatter.Bold(step.Title))

	if m.submitting {
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), formatter.Dim("Guardando evaluación…"))
		return b.String()
	}

	if len(st.FieldErrors) > 0 {
		b.WriteString(formatter.FormatFieldErrors(st.FieldErrors))
		b.WriteString("\n")
	}
	if m.failure != "" {
		b.WriteString(formatter.Failure(m.failure) + "\n")
		if len(m.failureFields) > 0 {
			b.WriteString(formatter.FormatFieldErrors(m.failureFields))
		}
		b.WriteString("\n")
	}

	if step.Kind == workflow.StepCriterion {
		p := m.wf.Preview()
		fmt.Fprintf(&b, "%s %d / %d  %s\n\n", formatter.Dim("Puntaje parcial:"), p.Total, p.MaxTotal, formatter.TierIndicator(p.Tier))
	}

	b.WriteString(m.form.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func progressDots(active int) string {
	var b strings.Builder
	for i := 0; i < workflow.StepCount; i++ {
		switch {
		case i < active:
			b.WriteString(formatter.StyleGreen.Render("●"))
		case i == active:
			b.WriteString(formatter.StyleHeader.Render("●"))
		default:
			b.WriteString(formatter.Dim("○"))
		}
	}
	return b.String()
}
