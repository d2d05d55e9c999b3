package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const itemColumns = `id, entry_key, title, logbooks, cert_path, payload,
    created_at, attempts, last_attempt_at, last_error`

// Enqueue stores a deferred entry and returns the persisted item.
func (s *Store) Enqueue(ctx context.Context, in NewItem) (*Item, error) {
	if strings.TrimSpace(in.Payload) == "" {
		return nil, errors.New("enqueue: empty payload")
	}
	key := strings.TrimSpace(in.Key)
	if key == "" {
		key = uuid.NewString()
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.exec(
		ctx,
		`INSERT INTO deferred_entries (
            entry_key, title, logbooks, cert_path, payload, created_at
        ) VALUES (?, ?, ?, ?, ?, ?)`,
		key,
		in.Title,
		in.Logbooks,
		nullableString(in.CertPath),
		in.Payload,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert deferred entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.Get(ctx, id)
}

// Get fetches a deferred entry by identifier. It returns nil, nil when the
// entry does not exist.
func (s *Store) Get(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM deferred_entries WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get deferred entry: %w", err)
	}
	return item, nil
}

// List returns every deferred entry, oldest first.
func (s *Store) List(ctx context.Context) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM deferred_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list deferred entries: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deferred entry: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Count returns the number of deferred entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM deferred_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count deferred entries: %w", err)
	}
	return count, nil
}

// Remove deletes a deferred entry. It reports whether a row was removed.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	res, err := s.exec(ctx, `DELETE FROM deferred_entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("remove deferred entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// RecordAttempt notes a failed delivery attempt.
func (s *Store) RecordAttempt(ctx context.Context, id int64, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	_, err := s.exec(
		ctx,
		`UPDATE deferred_entries
            SET attempts = attempts + 1, last_attempt_at = ?, last_error = ?
          WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		nullableString(message),
		id,
	)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
		item           Item
		certPath       sql.NullString
		createdRaw     string
		lastAttemptRaw sql.NullString
		lastError      sql.NullString
	)
	if err := scanner.Scan(
		&item.ID,
		&item.Key,
		&item.Title,
		&item.Logbooks,
		&certPath,
		&item.Payload,
		&createdRaw,
		&item.Attempts,
		&lastAttemptRaw,
		&lastError,
	); err != nil {
		return nil, err
	}
	item.CertPath = certPath.String
	item.LastError = lastError.String
	item.CreatedAt = parseTime(createdRaw)
	if lastAttemptRaw.Valid {
		item.LastAttemptAt = parseTime(lastAttemptRaw.String)
	}
	return &item, nil
}

func parseTime(raw string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
