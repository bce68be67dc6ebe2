package app

import (
	"context"

	"github.com/alexanderramin/evaluador/internal/domain"
)

// ExperienceSource lists the experiences an evaluator can pick from.
type ExperienceSource interface {
	ListExperiences(ctx context.Context) ([]domain.Experience, error)
}

// EnumSource provides the selectable values for evaluator fields.
type EnumSource interface {
	ListEnum(ctx context.Context, name string) ([]domain.EnumOption, error)
}

// EvaluationSubmitter persists a finished evaluation and returns the
// authoritative outcome.
type EvaluationSubmitter interface {
	SubmitEvaluation(ctx context.Context, ev *domain.Evaluation) (*SubmitResult, error)
}

// Identity yields the current evaluator's user id.
type Identity interface {
	CurrentUserID() int
}

// StaticIdentity is an Identity with a fixed user id.
type StaticIdentity int

func (s StaticIdentity) CurrentUserID() int { return int(s) }

type SubmitResult struct {
	EvaluationID     int
	Reference        string
	EvaluationResult domain.Tier
	TotalScore       int
	// TotalReported is false when the collaborator sent no total.
	TotalReported bool
}

// EvaluationHistoryUseCase reads back stored evaluations.
type EvaluationHistoryUseCase interface {
	ListEvaluations(ctx context.Context, experienceID int) ([]EvaluationSummary, error)
	GetEvaluation(ctx context.Context, id int) (*domain.Evaluation, error)
}

type ImportResult struct {
	ExperienceCount   int
	InstitutionCount  int
	ThematicLineCount int
}

// ImportExperiencesUseCase loads experiences from a seed file.
type ImportExperiencesUseCase interface {
	ImportExperiences(ctx context.Context, filePath string) (*ImportResult, error)
}
