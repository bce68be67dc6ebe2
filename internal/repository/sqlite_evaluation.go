package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/evaluador/internal/db"
	"github.com/alexanderramin/evaluador/internal/domain"
)

// SQLiteEvaluationRepo implements EvaluationRepo. Criterion answers live in
// criteria_evaluations, one row per criterion.
type SQLiteEvaluationRepo struct {
	db db.DBTX
}

func NewSQLiteEvaluationRepo(conn db.DBTX) *SQLiteEvaluationRepo {
	return &SQLiteEvaluationRepo{db: conn}
}

// Create inserts the evaluation and its criteria rows and returns the new
// evaluation id. The evaluation and its criteria entries are updated with
// the assigned ids. Callers should pass a transaction-scoped DBTX.
func (r *SQLiteEvaluationRepo) Create(ctx context.Context, s *StoredEvaluation) (int, error) {
	ev := s.Evaluation
	lines, err := encodeNames(ev.ThematicLineNames)
	if err != nil {
		return 0, err
	}
	createdAt := formatTimestamp(s.CreatedAt)

	query := `INSERT INTO evaluations (reference, experience_id, evaluator_user_id, type_evaluation,
		accompaniment_role, comments, experience_name, institution_name, state_id,
		thematic_line_names, total_score, evaluation_result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		s.Reference,
		ev.ExperienceID,
		ev.EvaluatorUserID,
		ev.TypeEvaluation,
		ev.AccompanimentRole,
		ev.Comments,
		ev.ExperienceName,
		ev.InstitutionName,
		ev.StateID,
		lines,
		s.TotalScore,
		string(ev.EvaluationResult),
		createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting evaluation: %w", err)
	}
	id64, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading evaluation id: %w", err)
	}
	id := int(id64)
	ev.EvaluationID = id

	for _, ce := range ev.CriteriaEvaluations.Sorted() {
		ceCreated := createdAt
		if ce.CreatedAt != nil {
			ceCreated = formatTimestamp(*ce.CreatedAt)
		}
		cq := `INSERT INTO criteria_evaluations (evaluation_id, criteria_id, score, description_contribution, state, created_at, deleted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
		cres, err := r.db.ExecContext(ctx, cq, id, ce.CriteriaID, ce.Score, ce.Justification,
			ce.State, ceCreated, optionalTimestamp(ce.DeletedAt))
		if err != nil {
			return 0, fmt.Errorf("inserting criterion %d: %w", ce.CriteriaID, err)
		}
		ceID, err := cres.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading criterion id: %w", err)
		}
		ce.ID = int(ceID)
		ce.EvaluationID = id
		ev.CriteriaEvaluations[ce.CriteriaID] = ce
	}
	return id, nil
}

const evaluationColumns = `id, COALESCE(reference, ''), experience_id, evaluator_user_id, type_evaluation,
	accompaniment_role, comments, experience_name, institution_name, state_id,
	thematic_line_names, total_score, evaluation_result, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStoredEvaluation(row rowScanner) (*StoredEvaluation, error) {
	ev := domain.NewEvaluation()
	s := &StoredEvaluation{Evaluation: ev}
	var lines, result, createdAt string
	err := row.Scan(
		&ev.EvaluationID,
		&s.Reference,
		&ev.ExperienceID,
		&ev.EvaluatorUserID,
		&ev.TypeEvaluation,
		&ev.AccompanimentRole,
		&ev.Comments,
		&ev.ExperienceName,
		&ev.InstitutionName,
		&ev.StateID,
		&lines,
		&s.TotalScore,
		&result,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	ev.EvaluationResult = domain.Tier(result)
	if ev.ThematicLineNames, err = decodeNames(lines); err != nil {
		return nil, err
	}
	if t, err := time.Parse(timestampLayout, createdAt); err == nil {
		s.CreatedAt = t
	}
	return s, nil
}

func (r *SQLiteEvaluationRepo) GetByID(ctx context.Context, id int) (*StoredEvaluation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+evaluationColumns+` FROM evaluations WHERE id = ?`, id)
	s, err := scanStoredEvaluation(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("evaluation: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning evaluation: %w", err)
	}
	if err := r.loadCriteria(ctx, s.Evaluation); err != nil {
		return nil, err
	}
	return s, nil
}

// List returns evaluations newest first. experienceID 0 lists all.
// Criteria rows are not loaded.
func (r *SQLiteEvaluationRepo) List(ctx context.Context, experienceID int) ([]StoredEvaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM evaluations`
	var args []any
	if experienceID > 0 {
		query += ` WHERE experience_id = ?`
		args = append(args, experienceID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing evaluations: %w", err)
	}
	defer rows.Close()

	var out []StoredEvaluation
	for rows.Next() {
		s, err := scanStoredEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning evaluation: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating evaluations: %w", err)
	}
	return out, nil
}

func (r *SQLiteEvaluationRepo) loadCriteria(ctx context.Context, ev *domain.Evaluation) error {
	query := `SELECT id, criteria_id, score, description_contribution, state, created_at, deleted_at
		FROM criteria_evaluations WHERE evaluation_id = ? ORDER BY criteria_id`
	rows, err := r.db.QueryContext(ctx, query, ev.EvaluationID)
	if err != nil {
		return fmt.Errorf("listing criteria evaluations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ce domain.CriterionEvaluation
		var createdAt, deletedAt sql.NullString
		if err := rows.Scan(&ce.ID, &ce.CriteriaID, &ce.Score, &ce.Justification, &ce.State, &createdAt, &deletedAt); err != nil {
			return fmt.Errorf("scanning criterion evaluation: %w", err)
		}
		ce.EvaluationID = ev.EvaluationID
		ce.CreatedAt = parseOptionalTimestamp(createdAt)
		ce.DeletedAt = parseOptionalTimestamp(deletedAt)
		ev.CriteriaEvaluations[ce.CriteriaID] = ce
	}
	return rows.Err()
}
