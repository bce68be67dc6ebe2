package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/evaluador/internal/cli/formatter"
	"github.com/spf13/cobra"
)

var errLocalOnly = errors.New("not available when evaluations are stored remotely (EVALUADOR_API_URL is set)")

func newExperienceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "experience",
		Aliases: []string{"exp"},
		Short:   "List and import experiences",
	}
	cmd.AddCommand(
		newExperienceListCmd(app),
		newExperienceImportCmd(app),
	)
	return cmd
}

func newExperienceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List experiences available for evaluation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Experiences.ListExperiences(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No hay experiencias registradas.")
				return nil
			}
			fmt.Fprint(out, formatter.FormatExperienceList(list))
			return nil
		},
	}
}

func newExperienceImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import experiences from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Importer == nil {
				return errLocalOnly
			}
			res, err := app.Importer.ImportExperiences(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf(
				"Importadas %d experiencias (%d instituciones, %d líneas temáticas)",
				res.ExperienceCount, res.InstitutionCount, res.ThematicLineCount)))
			return nil
		},
	}
}
