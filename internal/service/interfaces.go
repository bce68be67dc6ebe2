package service

import (
	"context"

	"github.com/alexanderramin/evaluador/internal/app"
	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/importer"
)

// EvaluationService is the local persistence collaborator: it accepts
// finished evaluations and reads them back.
type EvaluationService interface {
	app.EvaluationSubmitter
	app.EvaluationHistoryUseCase
}

type ExperienceService interface {
	app.ExperienceSource
	GetExperience(ctx context.Context, id int) (*domain.Experience, error)
}

type ImportService interface {
	app.ImportExperiencesUseCase
	ImportExperiencesFromSchema(ctx context.Context, schema *importer.ImportSchema) (*app.ImportResult, error)
}
