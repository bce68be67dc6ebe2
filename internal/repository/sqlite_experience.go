package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/evaluador/internal/db"
	"github.com/alexanderramin/evaluador/internal/domain"
)

// SQLiteExperienceRepo implements ExperienceRepo. Institutions and thematic
// lines are stored alongside the experience that references them.
type SQLiteExperienceRepo struct {
	db db.DBTX
}

func NewSQLiteExperienceRepo(conn db.DBTX) *SQLiteExperienceRepo {
	return &SQLiteExperienceRepo{db: conn}
}

// Upsert inserts or replaces the experience, its institution and its
// thematic line links. Several statements run, so callers should pass a
// transaction-scoped DBTX.
func (r *SQLiteExperienceRepo) Upsert(ctx context.Context, x *domain.Experience) error {
	now := formatTimestamp(time.Now())

	var institutionID any
	if name := strings.TrimSpace(x.Institution.Name); name != "" {
		id, err := r.upsertInstitution(ctx, x.Institution.ID, name, now)
		if err != nil {
			return err
		}
		x.Institution.ID = id
		institutionID = id
	}

	query := `INSERT INTO experiences (id, name, code, institution_id, state_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, code = excluded.code,
			institution_id = excluded.institution_id, state_id = excluded.state_id,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, x.ID, x.Name, x.Code, institutionID, x.StateID, now, now); err != nil {
		return fmt.Errorf("upserting experience: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM experience_thematic_lines WHERE experience_id = ?`, x.ID); err != nil {
		return fmt.Errorf("clearing thematic lines: %w", err)
	}
	for i, lineID := range x.ThematicLineIDs {
		name := ""
		if i < len(x.ThematicLineNames) {
			name = x.ThematicLineNames[i]
		}
		lineQuery := `INSERT INTO thematic_lines (id, name) VALUES (?, ?)
			ON CONFLICT(id) DO UPDATE SET name = CASE WHEN excluded.name = '' THEN thematic_lines.name ELSE excluded.name END`
		if _, err := r.db.ExecContext(ctx, lineQuery, lineID, name); err != nil {
			return fmt.Errorf("upserting thematic line %d: %w", lineID, err)
		}
		linkQuery := `INSERT OR REPLACE INTO experience_thematic_lines (experience_id, thematic_line_id, position) VALUES (?, ?, ?)`
		if _, err := r.db.ExecContext(ctx, linkQuery, x.ID, lineID, i); err != nil {
			return fmt.Errorf("linking thematic line %d: %w", lineID, err)
		}
	}
	return nil
}

func (r *SQLiteExperienceRepo) upsertInstitution(ctx context.Context, id int, name, now string) (int, error) {
	var existing int
	err := r.db.QueryRowContext(ctx, `SELECT id FROM institutions WHERE name = ?`, name).Scan(&existing)
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up institution: %w", err)
	}

	var res sql.Result
	if id > 0 {
		res, err = r.db.ExecContext(ctx, `INSERT INTO institutions (id, name, created_at) VALUES (?, ?, ?)`, id, name, now)
	} else {
		res, err = r.db.ExecContext(ctx, `INSERT INTO institutions (name, created_at) VALUES (?, ?)`, name, now)
	}
	if err != nil {
		return 0, fmt.Errorf("inserting institution: %w", err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading institution id: %w", err)
	}
	return int(newID), nil
}

const experienceColumns = `e.id, e.name, e.code, e.state_id, COALESCE(i.id, 0), COALESCE(i.name, '')`

func (r *SQLiteExperienceRepo) GetByID(ctx context.Context, id int) (*domain.Experience, error) {
	query := `SELECT ` + experienceColumns + `
		FROM experiences e LEFT JOIN institutions i ON e.institution_id = i.id
		WHERE e.id = ?`
	var x domain.Experience
	err := r.db.QueryRowContext(ctx, query, id).Scan(&x.ID, &x.Name, &x.Code, &x.StateID, &x.Institution.ID, &x.Institution.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("experience: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning experience: %w", err)
	}
	if err := r.loadThematicLines(ctx, &x); err != nil {
		return nil, err
	}
	return &x, nil
}

func (r *SQLiteExperienceRepo) List(ctx context.Context) ([]domain.Experience, error) {
	query := `SELECT ` + experienceColumns + `
		FROM experiences e LEFT JOIN institutions i ON e.institution_id = i.id
		ORDER BY e.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing experiences: %w", err)
	}
	var out []domain.Experience
	for rows.Next() {
		var x domain.Experience
		if err := rows.Scan(&x.ID, &x.Name, &x.Code, &x.StateID, &x.Institution.ID, &x.Institution.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning experience: %w", err)
		}
		out = append(out, x)
	}
	// Close before the per-row queries below; an in-memory database has a
	// single connection.
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating experiences: %w", err)
	}

	for i := range out {
		if err := r.loadThematicLines(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteExperienceRepo) loadThematicLines(ctx context.Context, x *domain.Experience) error {
	query := `SELECT t.id, t.name FROM experience_thematic_lines l
		JOIN thematic_lines t ON l.thematic_line_id = t.id
		WHERE l.experience_id = ? ORDER BY l.position`
	rows, err := r.db.QueryContext(ctx, query, x.ID)
	if err != nil {
		return fmt.Errorf("listing thematic lines: %w", err)
	}
	defer rows.Close()

	var names []string
	named := true
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return fmt.Errorf("scanning thematic line: %w", err)
		}
		x.ThematicLineIDs = append(x.ThematicLineIDs, id)
		names = append(names, name)
		if name == "" {
			named = false
		}
	}
	if named {
		x.ThematicLineNames = names
	}
	return rows.Err()
}
