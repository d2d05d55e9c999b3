package queue

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is kept in the database header (PRAGMA user_version).
const schemaVersion = 1

// ErrSchemaMismatch is returned by Open for a queue written by another
// schema version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

func (s *Store) migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read queue version: %w", err)
	}

	switch version {
	case schemaVersion:
		return nil
	case 0:
		// Fresh file: tables and version land in one transaction.
		return s.inTx(ctx, func(exec func(string, ...any) error) error {
			if err := exec(schemaSQL); err != nil {
				return fmt.Errorf("create tables: %w", err)
			}
			return exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
		})
	default:
		return fmt.Errorf("%w: %s is at version %d, logentry expects %d; flush or remove it",
			ErrSchemaMismatch, s.path, version, schemaVersion)
	}
}

func (s *Store) inTx(ctx context.Context, fn func(exec func(string, ...any) error) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	exec := func(query string, args ...any) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	}
	if err := fn(exec); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
