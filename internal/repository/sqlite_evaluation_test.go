package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedExperience(t *testing.T, db *sql.DB) *domain.Experience {
	t.Helper()
	x := testutil.NewTestExperience("Huerta escolar")
	require.NoError(t, NewSQLiteExperienceRepo(db).Upsert(context.Background(), x))
	return x
}

func storedFor(ev *domain.Evaluation, total int, at time.Time) *StoredEvaluation {
	ev.EvaluationResult = domain.TierNaciente
	return &StoredEvaluation{Evaluation: ev, Reference: uuid.New().String(), TotalScore: total, CreatedAt: at}
}

func TestEvaluationRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	x := seedExperience(t, db)
	repo := NewSQLiteEvaluationRepo(db)
	ctx := context.Background()

	ev := testutil.NewCompleteEvaluation(
		testutil.ForExperience(x),
		testutil.WithScore(3, 12),
		testutil.WithScore(4, domain.NotApplicable),
		testutil.WithJustification(3, "Propuesta novedosa"),
	)
	ev.ThematicLineNames = []string{"Ambiental"}
	stored := storedFor(ev, 12, time.Now())
	id, err := repo.Create(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, id, ev.EvaluationID)
	assert.NotZero(t, ev.CriteriaEvaluations[3].ID)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, stored.Reference, got.Reference)
	assert.Equal(t, 12, got.TotalScore)
	assert.Equal(t, domain.TierNaciente, got.Evaluation.EvaluationResult)
	assert.Equal(t, []string{"Ambiental"}, got.Evaluation.ThematicLineNames)
	require.Len(t, got.Evaluation.CriteriaEvaluations, domain.CriterionCount)
	assert.Equal(t, 12, got.Evaluation.CriteriaEvaluations[3].Score)
	assert.Equal(t, "Propuesta novedosa", got.Evaluation.CriteriaEvaluations[3].Justification)
	assert.Equal(t, domain.NotApplicable, got.Evaluation.CriteriaEvaluations[4].Score)
	assert.True(t, got.Evaluation.CriteriaEvaluations[1].State)
	assert.NotNil(t, got.Evaluation.CriteriaEvaluations[1].CreatedAt)
}

func TestEvaluationRepo_List_FilterAndOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	x := seedExperience(t, db)
	y := seedExperience(t, db)
	repo := NewSQLiteEvaluationRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, storedFor(testutil.NewCompleteEvaluation(testutil.ForExperience(x)), 0, base))
	require.NoError(t, err)
	_, err = repo.Create(ctx, storedFor(testutil.NewCompleteEvaluation(testutil.ForExperience(y)), 0, base.Add(time.Hour)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, storedFor(testutil.NewCompleteEvaluation(testutil.ForExperience(x)), 0, base.Add(2*time.Hour)))
	require.NoError(t, err)

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.After(all[1].CreatedAt))

	onlyX, err := repo.List(ctx, x.ID)
	require.NoError(t, err)
	require.Len(t, onlyX, 2)
	for _, s := range onlyX {
		assert.Equal(t, x.ID, s.Evaluation.ExperienceID)
	}
}

func TestEvaluationRepo_UnknownExperienceRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEvaluationRepo(db)

	ev := testutil.NewCompleteEvaluation()
	ev.ExperienceID = 999
	_, err := repo.Create(context.Background(), storedFor(ev, 0, time.Now()))
	assert.Error(t, err)
}

func TestEvaluationRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := NewSQLiteEvaluationRepo(db).GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
