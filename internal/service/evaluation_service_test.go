package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/evaluador/internal/app"
	"github.com/alexanderramin/evaluador/internal/db"
	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/repository"
	"github.com/alexanderramin/evaluador/internal/testutil"
	"github.com/alexanderramin/evaluador/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (repository.ExperienceRepo, repository.EvaluationRepo, db.UnitOfWork) {
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteExperienceRepo(database),
		repository.NewSQLiteEvaluationRepo(database),
		testutil.NewTestUoW(database)
}

func seedExperience(t *testing.T, experiences repository.ExperienceRepo) *domain.Experience {
	t.Helper()
	x := testutil.NewTestExperience("Huerta escolar",
		testutil.WithInstitution("IE La Esperanza"),
		testutil.WithThematicLines([]int{3}, []string{"Ambiental"}),
	)
	require.NoError(t, experiences.Upsert(context.Background(), x))
	return x
}

func TestSubmitEvaluation_StoresRecordAndComputesTier(t *testing.T) {
	experiences, evaluations, uow := setupRepos(t)
	ctx := context.Background()
	x := seedExperience(t, experiences)

	ev := testutil.NewCompleteEvaluation(
		testutil.ForExperience(x),
		testutil.WithEvaluator(42),
		testutil.WithScore(1, 5), testutil.WithScore(2, 10), testutil.WithScore(3, 15),
		testutil.WithScore(5, 10), testutil.WithScore(6, 10), testutil.WithScore(4, domain.NotApplicable),
	)
	ev.EvaluationResult = domain.TierInspiradora

	svc := NewEvaluationService(evaluations, uow)
	res, err := svc.SubmitEvaluation(ctx, ev)
	require.NoError(t, err)

	assert.Positive(t, res.EvaluationID)
	assert.NotEmpty(t, res.Reference)
	assert.Equal(t, 50, res.TotalScore)
	assert.Equal(t, domain.TierCreciente, res.EvaluationResult, "stored tier comes from the total, not the request")
	assert.Zero(t, ev.EvaluationID, "caller's evaluation is left untouched")

	stored, err := svc.GetEvaluation(ctx, res.EvaluationID)
	require.NoError(t, err)
	assert.Equal(t, 42, stored.EvaluatorUserID)
	assert.Equal(t, domain.TierCreciente, stored.EvaluationResult)
	assert.Equal(t, []string{"Ambiental"}, stored.ThematicLineNames)
	require.Len(t, stored.CriteriaEvaluations, domain.CriterionCount)
	assert.Equal(t, domain.NotApplicable, stored.CriteriaEvaluations[4].Score)
	assert.Equal(t, "NO APLICA", stored.CriteriaEvaluations[4].Justification)
}

func TestSubmitEvaluation_InvalidRecord(t *testing.T) {
	experiences, evaluations, uow := setupRepos(t)
	ctx := context.Background()
	x := seedExperience(t, experiences)

	ev := testutil.NewCompleteEvaluation(
		testutil.ForExperience(x),
		testutil.WithScore(5, 4),
		testutil.WithJustification(2, "   "),
	)
	ev.Comments = ""
	delete(ev.CriteriaEvaluations, 9)

	svc := NewEvaluationService(evaluations, uow)
	_, err := svc.SubmitEvaluation(ctx, ev)
	require.Error(t, err)

	var se *app.SubmitError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, app.SubmitErrInvalidRecord, se.Code)
	assert.Equal(t, workflow.MsgComments, se.Fields[workflow.FieldComments])
	assert.Equal(t, workflow.MsgJustification, se.Fields["descriptionContributionFoundation"])
	assert.Equal(t, workflow.MsgJustification, se.Fields["descriptionContributionTransfer"])
	assert.Contains(t, se.Fields["criteriaEvaluations[4].score"], "Empoderamiento")
	assert.Len(t, se.Fields, 4)

	list, err := evaluations.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSubmitEvaluation_MissingUserAndExperience(t *testing.T) {
	_, evaluations, uow := setupRepos(t)
	ev := testutil.NewCompleteEvaluation(testutil.WithEvaluator(0))
	ev.ExperienceID = 0

	_, err := NewEvaluationService(evaluations, uow).SubmitEvaluation(context.Background(), ev)
	var se *app.SubmitError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Fields, "userId")
	assert.Contains(t, se.Fields, "experienceId")
}

func TestSubmitEvaluation_UnknownExperience(t *testing.T) {
	_, evaluations, uow := setupRepos(t)
	ev := testutil.NewCompleteEvaluation()
	ev.ExperienceID = 999

	_, err := NewEvaluationService(evaluations, uow).SubmitEvaluation(context.Background(), ev)
	var se *app.SubmitError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, app.SubmitErrUnknownExperience, se.Code)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubmitEvaluation_RollbackOnCriterionInsertFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	experiences := repository.NewSQLiteExperienceRepo(database)
	evaluations := repository.NewSQLiteEvaluationRepo(database)
	ctx := context.Background()
	x := seedExperience(t, experiences)

	// Exec calls: #1 = evaluation row, #2..#10 = criteria rows. Fail on the fifth criterion.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 6,
		Err:    fmt.Errorf("injected criterion insert failure"),
	}

	svc := NewEvaluationService(evaluations, failUoW)
	_, err := svc.SubmitEvaluation(ctx, testutil.NewCompleteEvaluation(testutil.ForExperience(x)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INTERNAL_ERROR")

	var se *app.SubmitError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Err.Error(), "injected criterion insert failure")
	assert.Equal(t, 6, failUoW.Execs, "no write after the failing one")

	list, err := evaluations.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "no evaluation should exist after rollback")
}

func TestListEvaluations_FilterByExperience(t *testing.T) {
	experiences, evaluations, uow := setupRepos(t)
	ctx := context.Background()
	a := seedExperience(t, experiences)
	b := seedExperience(t, experiences)

	svc := NewEvaluationService(evaluations, uow)
	for _, x := range []*domain.Experience{a, a, b} {
		_, err := svc.SubmitEvaluation(ctx, testutil.NewCompleteEvaluation(testutil.ForExperience(x)))
		require.NoError(t, err)
	}

	all, err := svc.ListEvaluations(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onlyA, err := svc.ListEvaluations(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, onlyA, 2)
	for _, s := range onlyA {
		assert.Equal(t, a.ID, s.ExperienceID)
		assert.Equal(t, domain.TierNaciente, s.EvaluationResult)
		assert.Zero(t, s.TotalScore)
		assert.NotEmpty(t, s.Reference)
	}
}

func TestGetEvaluation_NotFound(t *testing.T) {
	_, evaluations, uow := setupRepos(t)
	_, err := NewEvaluationService(evaluations, uow).GetEvaluation(context.Background(), 77)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubmitEvaluation_ObservesUseCase(t *testing.T) {
	experiences, evaluations, uow := setupRepos(t)
	x := seedExperience(t, experiences)
	obs := &recordingObserver{}

	_, err := NewEvaluationService(evaluations, uow, obs).
		SubmitEvaluation(context.Background(), testutil.NewCompleteEvaluation(testutil.ForExperience(x)))
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	e := obs.events[0]
	assert.Equal(t, "evaluation.submit", e.Name)
	assert.True(t, e.Success())
	assert.Equal(t, string(domain.TierNaciente), e.Fields["evaluation_result"])
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}
