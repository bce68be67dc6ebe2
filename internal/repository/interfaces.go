package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/evaluador/internal/domain"
)

type ExperienceRepo interface {
	Upsert(ctx context.Context, x *domain.Experience) error
	GetByID(ctx context.Context, id int) (*domain.Experience, error)
	List(ctx context.Context) ([]domain.Experience, error)
}

// StoredEvaluation is an evaluation row with its persistence metadata.
type StoredEvaluation struct {
	Evaluation *domain.Evaluation
	Reference  string
	TotalScore int
	CreatedAt  time.Time
}

type EvaluationRepo interface {
	Create(ctx context.Context, s *StoredEvaluation) (int, error)
	GetByID(ctx context.Context, id int) (*StoredEvaluation, error)
	List(ctx context.Context, experienceID int) ([]StoredEvaluation, error)
}
