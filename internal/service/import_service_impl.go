package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/evaluador/internal/app"
	"github.com/alexanderramin/evaluador/internal/db"
	"github.com/alexanderramin/evaluador/internal/importer"
	"github.com/alexanderramin/evaluador/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: joinObservers(observers)}
}

func (s *importService) ImportExperiences(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportExperiencesFromSchema(ctx, schema)
}

// ImportExperiencesFromSchema validates the schema and upserts every
// experience in one transaction. Nothing is stored if any write fails.
func (s *importService) ImportExperiencesFromSchema(ctx context.Context, schema *importer.ImportSchema) (result *app.ImportResult, err error) {
	start := time.Now()
	defer func() {
		fields := map[string]any{}
		if result != nil {
			fields["experiences"] = result.ExperienceCount
		}
		observe(ctx, s.observer, "experience.import", start, err, fields)
	}()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	experiences := importer.Convert(schema)
	institutions := map[string]bool{}
	lines := map[int]bool{}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteExperienceRepo(tx)
		for _, x := range experiences {
			if err := repo.Upsert(ctx, x); err != nil {
				return fmt.Errorf("importing experience %d %q: %w", x.ID, x.Name, err)
			}
			institutions[x.Institution.Name] = true
			for _, id := range x.ThematicLineIDs {
				lines[id] = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &app.ImportResult{
		ExperienceCount:   len(experiences),
		InstitutionCount:  len(institutions),
		ThematicLineCount: len(lines),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
