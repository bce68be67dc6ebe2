package cli

import (
	"errors"
	"io"
	"os"

	"github.com/alexanderramin/evaluador/internal/app"
	"github.com/alexanderramin/evaluador/internal/workflow"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var errNoIdentity = errors.New("no evaluator identity configured; set EVALUADOR_USER_ID")

// App holds the collaborators used by CLI commands. History and Importer
// are nil when evaluations are stored remotely.
type App struct {
	Experiences app.ExperienceSource
	Enums       app.EnumSource
	Submitter   app.EvaluationSubmitter
	History     app.EvaluationHistoryUseCase
	Importer    app.ImportExperiencesUseCase
	Identity    app.Identity

	// SubmissionObservers are handed to every workflow the CLI opens.
	SubmissionObservers []workflow.SubmissionObserver

	// Interactive reports whether the wizard may take over the terminal.
	// Defaults to checking stdin and stdout for a TTY.
	Interactive func() bool

	// Input and Output override the wizard's terminal streams in tests.
	Input  io.Reader
	Output io.Writer
}

func (a *App) session() workflow.Session {
	return workflow.Session{Identity: a.Identity, Submitter: a.Submitter}
}

// requireIdentity fails when no evaluator id is configured, before any
// answers are collected.
func (a *App) requireIdentity() error {
	if a.Identity == nil || a.Identity.CurrentUserID() <= 0 {
		return errNoIdentity
	}
	return nil
}

func (a *App) interactive() bool {
	if a.Interactive != nil {
		return a.Interactive()
	}
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewRootCmd creates the top-level "evaluador" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "evaluador",
		Short:         "Evaluación de experiencias educativas significativas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEvaluateCmd(app),
		newEvaluationCmd(app),
		newExperienceCmd(app),
		newCriteriaCmd(),
		newTierCmd(),
	)

	return root
}
