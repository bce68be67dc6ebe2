package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/evaluador/internal/cli/formatter"
	"github.com/alexanderramin/evaluador/internal/contract"
	"github.com/alexanderramin/evaluador/internal/workflow"
	"github.com/spf13/cobra"
)

func newEvaluationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "evaluation",
		Aliases: []string{"eval"},
		Short:   "Submit and inspect evaluations",
	}
	cmd.AddCommand(
		newEvaluationSubmitCmd(app),
		newEvaluationListCmd(app),
		newEvaluationShowCmd(app),
	)
	return cmd
}

func newEvaluationSubmitCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "submit FILE",
		Short: "Submit an evaluation from a JSON answers file",
		Long: `Submit an evaluation from a JSON answers file.

The file uses the same camelCase fields as the evaluation API. Every step is
validated in order exactly as in the interactive form; the first invalid
step stops the submission.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !dryRun {
				if err := app.requireIdentity(); err != nil {
					return err
				}
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			req, err := loadAnswers(args[0])
			if err != nil {
				return err
			}
			exp, err := lookupExperience(ctx, app, req.ExperienceID)
			if err != nil {
				return err
			}

			wf := workflow.Open(app.session(), exp, app.SubmissionObservers...)
			if err := applyAnswers(wf, req); err != nil {
				var sv *workflow.StepValidationError
				if errors.As(err, &sv) {
					fmt.Fprintf(out, "%s %s\n", formatter.Failure("Paso incompleto:"), workflow.StepAt(sv.Step).Title)
					fmt.Fprint(out, formatter.FormatFieldErrors(sv.Fields))
				}
				return err
			}

			if dryRun {
				fmt.Fprint(out, formatter.FormatSummary(wf.Preview()))
				return nil
			}

			res, err := wf.Submit(ctx)
			if err != nil {
				fmt.Fprintln(out, formatter.Failure(wf.FailureMessage()))
				var se *contract.SubmitError
				if errors.As(err, &se) && len(se.Fields) > 0 {
					fmt.Fprint(out, formatter.FormatFieldErrors(se.Fields))
				}
				return err
			}
			fmt.Fprint(out, formatter.FormatSubmitResult(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate every step and show the summary without submitting")
	return cmd
}

func newEvaluationListCmd(app *App) *cobra.Command {
	var experienceID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored evaluations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return errLocalOnly
			}
			list, err := app.History.ListEvaluations(cmd.Context(), experienceID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No hay evaluaciones registradas.")
				return nil
			}
			fmt.Fprint(out, formatter.FormatEvaluationList(list, time.Now()))
			return nil
		},
	}

	addExperienceFlag(cmd.Flags(), &experienceID, "Only list evaluations of this experience")
	return cmd
}

func newEvaluationShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a stored evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return errLocalOnly
			}
			id, err := parseID("evaluation", args[0])
			if err != nil {
				return err
			}
			ev, err := app.History.GetEvaluation(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEvaluation(ev))
			return nil
		},
	}
}
