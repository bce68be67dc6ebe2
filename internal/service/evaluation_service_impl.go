package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/evaluador/internal/app"
	"github.com/alexanderramin/evaluador/internal/contract"
	"github.com/alexanderramin/evaluador/internal/db"
	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/repository"
	"github.com/alexanderramin/evaluador/internal/scoring"
	"github.com/google/uuid"
)

type evaluationService struct {
	evaluations repository.EvaluationRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
	now         func() time.Time
}

func NewEvaluationService(evaluations repository.EvaluationRepo, uow db.UnitOfWork, observers ...UseCaseObserver) EvaluationService {
	return &evaluationService{
		evaluations: evaluations,
		uow:         uow,
		observer:    joinObservers(observers),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SubmitEvaluation validates and stores ev. The caller's evaluation is not
// modified; the stored copy gets the tier computed here, which is the
// authoritative one.
func (s *evaluationService) SubmitEvaluation(ctx context.Context, ev *domain.Evaluation) (result *app.SubmitResult, err error) {
	start := time.Now()
	fields := map[string]any{"experience_id": ev.ExperienceID}
	defer func() {
		if result != nil {
			fields["evaluation_id"] = result.EvaluationID
			fields["total_score"] = result.TotalScore
			fields["evaluation_result"] = string(result.EvaluationResult)
		}
		observe(ctx, s.observer, "evaluation.submit", start, err, fields)
	}()

	req := contract.NewEvaluationRequest(ev)
	if msgs := validateRecord(req); msgs != nil {
		return nil, &app.SubmitError{
			Code:    app.SubmitErrInvalidRecord,
			Message: fmt.Sprintf("la evaluación tiene %d campos inválidos", len(msgs)),
			Fields:  msgs,
		}
	}

	record := req.ToDomain()
	total := scoring.TotalScore(record.CriteriaEvaluations)
	record.EvaluationResult = scoring.ResolveTier(total)
	stored := &repository.StoredEvaluation{
		Evaluation: record,
		Reference:  uuid.New().String(),
		TotalScore: total,
		CreatedAt:  s.now(),
	}

	var id int
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteExperienceRepo(tx).GetByID(ctx, record.ExperienceID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &app.SubmitError{
					Code:    app.SubmitErrUnknownExperience,
					Message: fmt.Sprintf("la experiencia %d no existe", record.ExperienceID),
					Err:     err,
				}
			}
			return err
		}
		created, err := repository.NewSQLiteEvaluationRepo(tx).Create(ctx, stored)
		if err != nil {
			return err
		}
		id = created
		return nil
	})
	if err != nil {
		var se *app.SubmitError
		if errors.As(err, &se) {
			return nil, err
		}
		return nil, &app.SubmitError{
			Code:    app.SubmitErrInternal,
			Message: "no se pudo guardar la evaluación",
			Err:     fmt.Errorf("storing evaluation: %w", err),
		}
	}

	return &app.SubmitResult{
		EvaluationID:     id,
		Reference:        stored.Reference,
		EvaluationResult: record.EvaluationResult,
		TotalScore:       total,
		TotalReported:    true,
	}, nil
}

func (s *evaluationService) ListEvaluations(ctx context.Context, experienceID int) ([]app.EvaluationSummary, error) {
	start := time.Now()
	stored, err := s.evaluations.List(ctx, experienceID)
	observe(ctx, s.observer, "evaluation.list", start, err, map[string]any{"experience_id": experienceID, "count": len(stored)})
	if err != nil {
		return nil, err
	}

	out := make([]app.EvaluationSummary, 0, len(stored))
	for _, st := range stored {
		out = append(out, summarize(st))
	}
	return out, nil
}

func (s *evaluationService) GetEvaluation(ctx context.Context, id int) (*domain.Evaluation, error) {
	stored, err := s.evaluations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return stored.Evaluation, nil
}

func summarize(st repository.StoredEvaluation) app.EvaluationSummary {
	ev := st.Evaluation
	return app.EvaluationSummary{
		EvaluationID:     ev.EvaluationID,
		Reference:        st.Reference,
		ExperienceID:     ev.ExperienceID,
		ExperienceName:   ev.ExperienceName,
		EvaluatorUserID:  ev.EvaluatorUserID,
		TotalScore:       st.TotalScore,
		EvaluationResult: ev.EvaluationResult,
		CreatedAt:        st.CreatedAt,
	}
}
