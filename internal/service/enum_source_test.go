package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEnumSource struct {
	opts []domain.EnumOption
	err  error
}

func (s stubEnumSource) ListEnum(context.Context, string) ([]domain.EnumOption, error) {
	return s.opts, s.err
}

func TestFallbackEnumSource_NoPrimaryUsesDefaults(t *testing.T) {
	src := NewFallbackEnumSource(nil)
	roles, err := src.ListEnum(context.Background(), domain.EnumAccompanimentRole)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAccompanimentRoles, roles)

	_, err = src.ListEnum(context.Background(), "Colour")
	assert.ErrorIs(t, err, ErrUnknownEnum)
}

func TestFallbackEnumSource_PrimaryWins(t *testing.T) {
	remote := []domain.EnumOption{{ID: 9, DisplayText: "Mixta"}}
	src := NewFallbackEnumSource(stubEnumSource{opts: remote})

	got, err := src.ListEnum(context.Background(), domain.EnumTypeEvaluation)
	require.NoError(t, err)
	assert.Equal(t, remote, got)
}

func TestFallbackEnumSource_PrimaryFailureFallsBack(t *testing.T) {
	obs := &recordingObserver{}
	src := NewFallbackEnumSource(stubEnumSource{err: errors.New("boom")}, obs)

	got, err := src.ListEnum(context.Background(), domain.EnumTypeEvaluation)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultEvaluationTypes, got)

	require.Len(t, obs.events, 1)
	assert.Equal(t, true, obs.events[0].Fields["fallback"])
	assert.False(t, obs.events[0].Success())
}

func TestFallbackEnumSource_UnknownNamePropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewFallbackEnumSource(stubEnumSource{err: boom}).ListEnum(context.Background(), "Colour")
	assert.ErrorIs(t, err, boom)
}
