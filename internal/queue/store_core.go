package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DatabaseName is the file created inside the queue directory.
const DatabaseName = "queue.db"

// Store manages deferred entries backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	busy busyPolicy
}

// busyPolicy retries statements that lost a lock race with another
// logentry process, doubling the wait up to max.
type busyPolicy struct {
	attempts  int
	initial   time.Duration
	max       time.Duration
	retryable func(error) bool
}

var defaultBusyPolicy = busyPolicy{
	attempts:  5,
	initial:   10 * time.Millisecond,
	max:       200 * time.Millisecond,
	retryable: isLocked,
}

func (p busyPolicy) run(ctx context.Context, op func() error) error {
	wait := p.initial
	for attempt := 1; ; attempt++ {
		err := op()
		if err == nil || attempt >= p.attempts || !p.retryable(err) {
			return err
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait = min(wait*2, p.max)
	}
}

func isLocked(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	err := s.busy.run(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	return res, err
}

// Open connects to the queue database inside dir, creating the directory and
// tables on first use.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("queue directory is not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure queue directory: %w", err)
	}

	dbPath := filepath.Join(dir, DatabaseName)
	// Pragmas in the DSN apply to every pooled connection.
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db, path: dbPath, busy: defaultBusyPolicy}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
