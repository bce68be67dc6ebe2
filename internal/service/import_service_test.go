package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/evaluador/internal/importer"
	"github.com/alexanderramin/evaluador/internal/repository"
	"github.com/alexanderramin/evaluador/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validImportSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Experiences: []importer.ExperienceImport{
			{
				ID: 10, Name: "Huerta escolar", Institution: "IE La Esperanza", StateID: 2,
				ThematicLines: []importer.ThematicLineImport{{ID: 1, Name: "Ambiental"}, {ID: 2, Name: "Convivencia"}},
			},
			{ID: 11, Name: "Radio escolar", Institution: "IE San José"},
			{ID: 12, Name: "Club de lectura", Institution: "IE La Esperanza", ThematicLines: []importer.ThematicLineImport{{ID: 2}}},
		},
	}
}

func TestImportExperiences_FromSchema(t *testing.T) {
	experiences, _, uow := setupRepos(t)
	ctx := context.Background()

	res, err := NewImportService(uow).ImportExperiencesFromSchema(ctx, validImportSchema())
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExperienceCount)
	assert.Equal(t, 2, res.InstitutionCount)
	assert.Equal(t, 2, res.ThematicLineCount)

	got, err := experiences.GetByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "IE La Esperanza", got.Institution.Name)
	assert.Equal(t, []string{"Ambiental", "Convivencia"}, got.ThematicLineNames)
	assert.Equal(t, 2, got.StateID)

	list, err := NewExperienceService(experiences).ListExperiences(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestImportExperiences_ReimportIsIdempotent(t *testing.T) {
	experiences, _, uow := setupRepos(t)
	ctx := context.Background()
	svc := NewImportService(uow)

	_, err := svc.ImportExperiencesFromSchema(ctx, validImportSchema())
	require.NoError(t, err)
	_, err = svc.ImportExperiencesFromSchema(ctx, validImportSchema())
	require.NoError(t, err)

	list, err := experiences.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestImportExperiences_ValidationFailureStoresNothing(t *testing.T) {
	experiences, _, uow := setupRepos(t)
	ctx := context.Background()

	schema := validImportSchema()
	schema.Experiences[1].Name = " "
	schema.Experiences[2].ID = 10

	_, err := NewImportService(uow).ImportExperiencesFromSchema(ctx, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "experiences[1].name")
	assert.Contains(t, err.Error(), "duplicate id 10")

	list, err := experiences.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestImportExperiences_RollbackOnUpsertFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	experiences := repository.NewSQLiteExperienceRepo(database)
	ctx := context.Background()

	schema := &importer.ImportSchema{
		Experiences: []importer.ExperienceImport{
			{ID: 1, Name: "A", Institution: "IE Uno"},
			{ID: 2, Name: "B", Institution: "IE Dos"},
		},
	}

	// Exec calls: #1 = institution "IE Uno", #2 = experience A, #3 = clear lines A,
	// #4 = institution "IE Dos", #5 = experience B. Fail on #5.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 5,
		Err:    fmt.Errorf("injected experience upsert failure"),
	}

	_, err := NewImportService(failUoW).ImportExperiencesFromSchema(ctx, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected experience upsert failure")

	list, err := experiences.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "no experiences should exist after rollback")
}

func TestImportExperiences_YAMLFile(t *testing.T) {
	experiences, _, uow := setupRepos(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := `experiences:
  - id: 5
    name: Radio escolar
    institution: IE San José
    state_id: 3
    thematic_lines:
      - id: 7
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	res, err := NewImportService(uow).ImportExperiences(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExperienceCount)

	got, err := NewExperienceService(experiences).GetExperience(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, got.ThematicLineLabels())
}

func TestImportExperiences_MissingFile(t *testing.T) {
	_, _, uow := setupRepos(t)
	_, err := NewImportService(uow).ImportExperiences(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading import file")
}
