package workflow

import (
	"context"
	"testing"

	"github.com/alexanderramin/evaluador/internal/app"
	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_EndToEnd_NoAplicaYieldsNaciente(t *testing.T) {
	sub := &fakeSubmitter{}
	exp := domain.Experience{
		ID:              3,
		Name:            "Huerta escolar",
		Institution:     domain.Institution{Name: "IE La Esperanza"},
		ThematicLineIDs: []int{2},
		StateID:         1,
	}
	w := Open(Session{Identity: app.StaticIdentity(9), Submitter: sub}, &exp)

	require.NoError(t, w.SetEvaluator("Acompañante", "Interna", "Jane Doe"))
	require.NoError(t, w.Next())
	require.NoError(t, w.Next(), "experience step is prefilled")
	for i := 2; i <= 10; i++ {
		step := w.CurrentStep()
		require.Equal(t, StepCriterion, step.Kind)
		require.NoError(t, w.SetScore(step.CriteriaID, 0))
		require.NoError(t, w.SetJustification(step.CriteriaID, "NO APLICA"))
		require.NoError(t, w.Next())
	}
	require.Equal(t, LastStep, w.State().ActiveStep)

	preview := w.Preview()
	assert.Equal(t, 0, preview.Total)

	res, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.TierNaciente, res.EvaluationResult)
	assert.Equal(t, preview.Tier, res.EvaluationResult)
	assert.Equal(t, scoring.ResolveTier(0), res.EvaluationResult)
	assert.Equal(t, SubmissionSucceeded, w.SubmissionState())

	require.NotNil(t, sub.last)
	assert.Equal(t, 3, sub.last.ExperienceID)
	assert.Equal(t, []string{"2"}, sub.last.ThematicLineNames)
	assert.Len(t, sub.last.CriteriaEvaluations, domain.CriterionCount)
}

func TestWorkflow_DiscardedAfterSuccess(t *testing.T) {
	sub := &fakeSubmitter{}
	w := Open(Session{Identity: app.StaticIdentity(1), Submitter: sub}, nil)
	require.NoError(t, walkToFinal(w.stepper, w.store, "ok"))

	_, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, w.Closed())
	assert.Nil(t, w.Evaluation())
	assert.ErrorIs(t, w.SetScore(1, 1), ErrWorkflowClosed)
	_, err = w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrWorkflowClosed)
	assert.Equal(t, 1, sub.calls)
}

func TestWorkflow_Abandon_NoSideEffects(t *testing.T) {
	sub := &fakeSubmitter{}
	w := Open(Session{Identity: app.StaticIdentity(1), Submitter: sub}, nil)
	require.NoError(t, w.SetJustification(1, "x"))
	w.Abandon()

	assert.True(t, w.Closed())
	assert.Equal(t, 0, sub.calls)
	assert.Equal(t, 0, w.Preview().Total)
}

func TestWorkflow_AssignExperienceOnce(t *testing.T) {
	exp := domain.Experience{ID: 5, Name: "x", Institution: domain.Institution{Name: "y"}}
	w := Open(Session{Submitter: &fakeSubmitter{}}, &exp)
	assert.NoError(t, w.AssignExperience(5))
	assert.ErrorIs(t, w.AssignExperience(6), domain.ErrExperienceReassigned)
}

func TestWorkflow_SubmitEarly(t *testing.T) {
	sub := &fakeSubmitter{}
	w := Open(Session{Identity: app.StaticIdentity(1), Submitter: sub}, nil)
	require.NoError(t, w.SetEvaluator("Acompañante", "Interna", "Jane Doe"))
	require.NoError(t, w.Next())

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrIncompleteWorkflow)
	assert.Equal(t, 0, sub.calls)
	assert.False(t, w.Closed())
}
