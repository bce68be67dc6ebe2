package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillReferences(db); err != nil {
		return fmt.Errorf("backfilling evaluation references: %w", err)
	}
	return nil
}

// migrateBackfillReferences gives every evaluation stored before the
// reference column existed a receipt of its own.
func migrateBackfillReferences(db *sql.DB) error {
	ctx := context.Background()
	rows, err := db.QueryContext(ctx, `SELECT id FROM evaluations WHERE reference IS NULL OR reference = ''`)
	if err != nil {
		return fmt.Errorf("finding evaluations without reference: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning evaluation id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting backfill transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE evaluations SET reference = ? WHERE id = ?`, uuid.New().String(), id); err != nil {
			return fmt.Errorf("backfilling evaluation %d: %w", id, err)
		}
	}
	return tx.Commit()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS institutions (
		id         INTEGER PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS thematic_lines (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS experiences (
		id             INTEGER PRIMARY KEY,
		name           TEXT NOT NULL,
		code           TEXT NOT NULL DEFAULT '',
		institution_id INTEGER REFERENCES institutions(id) ON DELETE SET NULL,
		state_id       INTEGER NOT NULL DEFAULT 0
		               CHECK(state_id IN (0,1,2,3)),
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_experiences_institution ON experiences(institution_id)`,

	`CREATE TABLE IF NOT EXISTS experience_thematic_lines (
		experience_id    INTEGER NOT NULL REFERENCES experiences(id) ON DELETE CASCADE,
		thematic_line_id INTEGER NOT NULL REFERENCES thematic_lines(id) ON DELETE CASCADE,
		position         INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (experience_id, thematic_line_id)
	)`,

	`CREATE TABLE IF NOT EXISTS evaluations (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		experience_id       INTEGER NOT NULL REFERENCES experiences(id),
		evaluator_user_id   INTEGER NOT NULL,
		type_evaluation     TEXT NOT NULL,
		accompaniment_role  TEXT NOT NULL,
		comments            TEXT NOT NULL,
		experience_name     TEXT NOT NULL,
		institution_name    TEXT NOT NULL,
		state_id            INTEGER NOT NULL DEFAULT 0,
		thematic_line_names TEXT NOT NULL DEFAULT '[]',
		total_score         INTEGER NOT NULL DEFAULT 0,
		evaluation_result   TEXT NOT NULL
		                    CHECK(evaluation_result IN ('Naciente','Creciente','Inspiradora')),
		created_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_evaluations_experience ON evaluations(experience_id)`,

	`CREATE TABLE IF NOT EXISTS criteria_evaluations (
		id                       INTEGER PRIMARY KEY AUTOINCREMENT,
		evaluation_id            INTEGER NOT NULL REFERENCES evaluations(id) ON DELETE CASCADE,
		criteria_id              INTEGER NOT NULL CHECK(criteria_id BETWEEN 1 AND 9),
		score                    INTEGER NOT NULL CHECK(score BETWEEN -1 AND 15),
		description_contribution TEXT NOT NULL,
		state                    INTEGER NOT NULL DEFAULT 1,
		created_at               TEXT NOT NULL,
		deleted_at               TEXT,
		UNIQUE(evaluation_id, criteria_id)
	)`,

	// Receipts were added after the first release.
	`ALTER TABLE evaluations ADD COLUMN reference TEXT`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_evaluations_reference ON evaluations(reference)`,
}
