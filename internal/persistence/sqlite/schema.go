package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// migrationStep is one versioned schema change. Steps run in order inside a
// transaction and are recorded in schema_migrations, so reopening an existing
// store only applies what is missing.
type migrationStep struct {
	version     int
	description string
	statements  []string
}

func migrationSteps() []migrationStep {
	return []migrationStep{
		{
			version:     1,
			description: "create collections document table",
			statements: []string{
				`CREATE TABLE IF NOT EXISTS collections (
					key TEXT PRIMARY KEY,
					value TEXT NOT NULL,
					updated_at TEXT NOT NULL
				)`,
			},
		},
	}
}

// Migrate brings the database schema up to the current version.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.DB().ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}

	applied, err := s.appliedVersions(ctx)
	if err != nil {
		return err
	}

	for _, step := range migrationSteps() {
		if _, ok := applied[step.version]; ok {
			continue
		}
		if err := s.applyStep(ctx, step); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", step.version, step.description, err)
		}
	}
	return nil
}

func (s *Store) appliedVersions(ctx context.Context) (map[int]struct{}, error) {
	rows, err := s.pool.DB().QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]struct{})
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate migrations: %w", err)
	}
	return applied, nil
}

func (s *Store) applyStep(ctx context.Context, step migrationStep) error {
	return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range step.statements {
			if _, err := tx.Exec(stmt); err != nil {
				return err
			}
		}
		_, err := tx.Exec(
			"INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)",
			step.version, step.description, s.now().UTC().Format(time.RFC3339),
		)
		return err
	})
}
