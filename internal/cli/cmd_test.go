package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/alexanderramin/evaluador/internal/app"
	"github.com/alexanderramin/evaluador/internal/contract"
	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/repository"
	"github.com/alexanderramin/evaluador/internal/service"
	"github.com/alexanderramin/evaluador/internal/testutil"
	"github.com/alexanderramin/evaluador/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func plain(s string) string { return ansiPattern.ReplaceAllString(s, "") }

// testApp wires a full App backed by an in-memory DB.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(db)
	evaluations := service.NewEvaluationService(repository.NewSQLiteEvaluationRepo(db), uow)

	return &App{
		Experiences: service.NewExperienceService(repository.NewSQLiteExperienceRepo(db)),
		Enums:       service.NewFallbackEnumSource(nil),
		Submitter:   evaluations,
		History:     evaluations,
		Importer:    service.NewImportService(uow),
		Identity:    app.StaticIdentity(7),
		Interactive: func() bool { return false },
	}
}

func seedExperience(t *testing.T, a *App) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	seed := `{"experiences":[{"id":3,"name":"Huerta escolar","institution":"IE La Esperanza","state_id":2,
		"thematic_lines":[{"id":1,"name":"Ambiental"}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))
	_, err := a.Importer.ImportExperiences(context.Background(), path)
	require.NoError(t, err)
}

// writeAnswers writes a complete answers file for experience 3 with the
// given score overrides.
func writeAnswers(t *testing.T, mutate func(*contract.EvaluationRequest)) string {
	t.Helper()
	req := contract.EvaluationRequest{
		ExperienceID:      3,
		AccompanimentRole: "Acompañante",
		TypeEvaluation:    "Interna",
		Comments:          "Jane Doe",
	}
	for _, c := range domain.Catalog() {
		req.CriteriaEvaluations = append(req.CriteriaEvaluations, contract.CriteriaEvaluation{
			CriteriaID: c.ID, DescriptionContribution: "NO APLICA", State: true,
		})
	}
	if mutate != nil {
		mutate(&req)
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return plain(buf.String()), err
}

func TestCriteriaCmd(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "criteria")
	require.NoError(t, err)
	assert.Contains(t, out, "Empoderamiento")
	assert.Contains(t, out, "0–2 | 6–10")
}

func TestTierCmd(t *testing.T) {
	a := testApp(t)
	out, err := executeCmd(t, a, "tier", "80")
	require.NoError(t, err)
	assert.Contains(t, out, "● Inspiradora")

	_, err = executeCmd(t, a, "tier", "101")
	assert.Error(t, err)
	_, err = executeCmd(t, a, "tier", "abc")
	assert.Error(t, err)
}

func TestExperienceImportAndList(t *testing.T) {
	a := testApp(t)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("experiences:\n  - id: 9\n    name: Radio escolar\n    institution: IE San José\n"), 0o644))

	out, err := executeCmd(t, a, "experience", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Importadas 1 experiencias")

	out, err = executeCmd(t, a, "exp", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Radio escolar")
	assert.Contains(t, out, "IE San José")
}

func TestExperienceList_Empty(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "experience", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No hay experiencias registradas.")
}

func TestEvaluationSubmit_StoresAndShows(t *testing.T) {
	a := testApp(t)
	seedExperience(t, a)
	path := writeAnswers(t, func(r *contract.EvaluationRequest) {
		r.CriteriaEvaluations[1].Score = 5
		r.CriteriaEvaluations[2].Score = 15
		r.CriteriaEvaluations[4].Score = 10
		r.CriteriaEvaluations[5].Score = 10
		r.CriteriaEvaluations[8].Score = 10
		r.CriteriaEvaluations[0].Score = domain.NotApplicable
	})

	out, err := executeCmd(t, a, "evaluation", "submit", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Evaluación guardada #1")
	assert.Contains(t, out, "● Creciente")
	assert.Contains(t, out, "50 / 100")

	list, err := a.History.ListEvaluations(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 7, list[0].EvaluatorUserID, "user id comes from the identity")
	assert.Equal(t, "Huerta escolar", list[0].ExperienceName, "name is prefilled from the experience")

	out, err = executeCmd(t, a, "evaluation", "list", "--experience", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Huerta escolar")

	out, err = executeCmd(t, a, "evaluation", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "IE La Esperanza")
	assert.Contains(t, out, "Ambiental")
	assert.Contains(t, out, "No aplica")
}

func TestEvaluationSubmit_StepValidationStops(t *testing.T) {
	a := testApp(t)
	seedExperience(t, a)
	path := writeAnswers(t, func(r *contract.EvaluationRequest) {
		r.CriteriaEvaluations[3].DescriptionContribution = "  "
	})

	out, err := executeCmd(t, a, "evaluation", "submit", path)
	require.ErrorIs(t, err, workflow.ErrStepValidationFailed)
	assert.Contains(t, out, "Paso incompleto: Resultados")
	assert.Contains(t, out, workflow.MsgJustification)

	list, err := a.History.ListEvaluations(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEvaluationSubmit_InvalidScore(t *testing.T) {
	a := testApp(t)
	seedExperience(t, a)
	path := writeAnswers(t, func(r *contract.EvaluationRequest) {
		r.CriteriaEvaluations[4].Score = 4
	})

	_, err := executeCmd(t, a, "evaluation", "submit", path)
	require.ErrorIs(t, err, workflow.ErrInvalidScore)
}

func TestEvaluationSubmit_DryRunStoresNothing(t *testing.T) {
	a := testApp(t)
	seedExperience(t, a)

	out, err := executeCmd(t, a, "evaluation", "submit", "--dry-run", writeAnswers(t, nil))
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 0 / 100")

	list, err := a.History.ListEvaluations(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEvaluationSubmit_UnmatchedExperienceOpensWithoutPrefill(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "evaluation", "submit", writeAnswers(t, nil))
	require.ErrorIs(t, err, workflow.ErrStepValidationFailed)
	assert.Contains(t, out, "Paso incompleto: "+workflow.StepAt(1).Title)
	assert.Contains(t, out, workflow.FieldExperienceName)
}

func TestEvaluationSubmit_UnmatchedExperienceUsesFileValues(t *testing.T) {
	a := testApp(t)
	path := writeAnswers(t, func(r *contract.EvaluationRequest) {
		r.ExperienceID = 99
		r.ExperienceName = "Radio escolar"
		r.InstitutionName = "IE San José"
	})

	out, err := executeCmd(t, a, "evaluation", "submit", "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 0 / 100")

	// the local store only accepts known experiences
	_, err = executeCmd(t, a, "evaluation", "submit", path)
	require.Error(t, err)
	var se *contract.SubmitError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, contract.SubmitErrUnknownExperience, se.Code)
}

func TestEvaluationSubmit_RequiresIdentity(t *testing.T) {
	a := testApp(t)
	a.Identity = app.StaticIdentity(0)
	seedExperience(t, a)
	path := writeAnswers(t, nil)

	_, err := executeCmd(t, a, "evaluation", "submit", path)
	require.ErrorIs(t, err, errNoIdentity)
	assert.Contains(t, err.Error(), "EVALUADOR_USER_ID")

	_, err = executeCmd(t, a, "evaluation", "submit", "--dry-run", path)
	require.NoError(t, err)

	list, err := a.History.ListEvaluations(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEvaluationShow_InvalidID(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "evaluation", "show", "zero")
	assert.Error(t, err)
}

func TestRemoteMode_LocalOnlyCommands(t *testing.T) {
	a := testApp(t)
	a.History = nil
	a.Importer = nil

	_, err := executeCmd(t, a, "evaluation", "list")
	assert.ErrorIs(t, err, errLocalOnly)
	_, err = executeCmd(t, a, "experience", "import", "x.json")
	assert.ErrorIs(t, err, errLocalOnly)
}

func TestEvaluateCmd_RequiresIdentityBeforeWizard(t *testing.T) {
	a := testApp(t)
	a.Identity = nil
	a.Interactive = func() bool { return true }

	_, err := executeCmd(t, a, "evaluate", "--experience", "3")
	assert.ErrorIs(t, err, errNoIdentity)
}

func TestEvaluateCmd_RefusesNonInteractive(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "evaluate", "--experience", "3")
	assert.ErrorIs(t, err, errNotInteractive)
}
