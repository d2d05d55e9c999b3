package testsupport

import (
	"context"
	"testing"

	"logentry/internal/config"
	"logentry/internal/queue"
)

// MustOpenStore opens a queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg.Queue.Dir)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Enqueue stores a deferred entry for tests using the provided store.
func Enqueue(t testing.TB, store *queue.Store, title, payload string) *queue.Item {
	t.Helper()

	item, err := store.Enqueue(context.Background(), queue.NewItem{
		Title:    title,
		Logbooks: "TLOG",
		Payload:  payload,
	})
	if err != nil {
		t.Fatalf("store.Enqueue: %v", err)
	}
	return item
}
