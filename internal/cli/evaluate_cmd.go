package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/evaluador/internal/cli/formatter"
	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("evaluate needs an interactive terminal; use 'evaluador evaluation submit FILE' instead")

func newEvaluateCmd(app *App) *cobra.Command {
	var experienceID int

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate an experience interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			if err := app.requireIdentity(); err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if experienceID == 0 {
				id, err := selectExperience(ctx, app)
				if err != nil {
					return err
				}
				experienceID = id
			}
			exp, err := lookupExperience(ctx, app, experienceID)
			if err != nil {
				return err
			}

			roles := loadEnum(ctx, app, domain.EnumAccompanimentRole)
			types := loadEnum(ctx, app, domain.EnumTypeEvaluation)

			wf := workflow.Open(app.session(), exp, app.SubmissionObservers...)
			model := newEvaluateModel(ctx, wf, roles, types)

			opts := []tea.ProgramOption{tea.WithContext(ctx)}
			if app.Input != nil {
				opts = append(opts, tea.WithInput(app.Input))
			}
			if app.Output != nil {
				opts = append(opts, tea.WithOutput(app.Output))
			}
			final, err := tea.NewProgram(model, opts...).Run()
			if err != nil {
				return fmt.Errorf("running evaluation form: %w", err)
			}

			m, ok := final.(*evaluateModel)
			switch {
			case !ok:
				return nil
			case m.result != nil:
				fmt.Fprint(out, formatter.FormatSubmitResult(m.result))
			case m.aborted:
				fmt.Fprintln(out, formatter.Dim("Evaluación descartada; no se guardó nada."))
			}
			return nil
		},
	}

	addExperienceFlag(cmd.Flags(), &experienceID, "Experience to evaluate (prompted when omitted)")
	return cmd
}

// selectExperience asks the evaluator to pick one of the listed experiences.
func selectExperience(ctx context.Context, app *App) (int, error) {
	list, err := app.Experiences.ListExperiences(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing experiences: %w", err)
	}
	if len(list) == 0 {
		return 0, errors.New("no experiences available; import some with 'evaluador experience import FILE'")
	}

	options := make([]huh.Option[int], 0, len(list))
	for _, x := range list {
		label := x.Name
		if x.Institution.Name != "" {
			label += formatter.Dim(" · " + x.Institution.Name)
		}
		options = append(options, huh.NewOption(strconv.Itoa(x.ID)+"  "+label, x.ID))
	}

	id := list[0].ID
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Experiencia a evaluar").
			Options(options...).
			Value(&id),
	)).WithTheme(evaluadorHuhTheme())
	if err := form.RunWithContext(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// loadEnum fetches enum options, falling back to the built-in defaults.
func loadEnum(ctx context.Context, app *App, name string) []domain.EnumOption {
	if app.Enums != nil {
		if opts, err := app.Enums.ListEnum(ctx, name); err == nil && len(opts) > 0 {
			return opts
		}
	}
	opts, _ := domain.DefaultEnumOptions(name)
	return opts
}
