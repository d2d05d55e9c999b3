package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"logentry/internal/testsupport"
)

func TestUnreachableServerQueuesThenFlushDelivers(t *testing.T) {
	var up atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !up.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `<Response stat="ok"><lognumber>77</lognumber></Response>`)
	}))
	defer server.Close()

	env := newCLIEnv(t, testsupport.WithServerURL(server.URL+"/incoming"), testsupport.WithDefaultCert())

	res := env.run(t, nil, "body text", "-t", "Deferred entry", "-l", "TLOG", "-b", "-")
	if res.code != 0 {
		t.Fatalf("submit exit code = %d, stderr: %s", res.code, res.stderr)
	}
	requireContains(t, res.stdout, "The Entry was placed in the entry queue")

	res = env.run(t, nil, "", "queue", "list")
	if res.code != 0 {
		t.Fatalf("queue list exit code = %d, stderr: %s", res.code, res.stderr)
	}
	requireContains(t, res.stdout, "Deferred entry")
	requireContains(t, res.stdout, "TLOG")

	res = env.run(t, nil, "", "queue", "flush")
	if res.code != 1 {
		t.Fatalf("flush against a down server should fail, got %d", res.code)
	}
	requireContains(t, res.stdout, "remains queued")

	up.Store(true)
	res = env.run(t, nil, "", "queue", "flush")
	if res.code != 0 {
		t.Fatalf("queue flush exit code = %d, stderr: %s", res.code, res.stderr)
	}
	requireContains(t, res.stdout, "was saved with lognumber 77")

	res = env.run(t, nil, "", "queue", "list")
	requireContains(t, res.stdout, "Queue is empty")
}

func TestImmediateSubmitWithRealTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "<title>Test</title>") {
			t.Errorf("unexpected payload: %s", body)
		}
		_, _ = io.WriteString(w, `<Response stat="ok"><lognumber>42</lognumber></Response>`)
	}))
	defer server.Close()

	env := newCLIEnv(t, testsupport.WithServerURL(server.URL+"/incoming"), testsupport.WithDefaultCert())
	res := env.run(t, nil, "hello", "-t", "Test", "-l", "TLOG", "-b", "-", "--noqueue")
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", res.code, res.stderr)
	}
	if res.stdout != "The Entry was saved with lognumber 42\n" {
		t.Fatalf("stdout = %q", res.stdout)
	}
}

func TestNoQueueFailsWhenServerDown(t *testing.T) {
	env := newCLIEnv(t, testsupport.WithDefaultCert())
	res := env.run(t, nil, "", "-t", "Test", "-l", "TLOG", "--noqueue")
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	requireContains(t, res.stderr, "logbook server unavailable")

	list := env.run(t, nil, "", "queue", "list")
	requireContains(t, list.stdout, "Queue is empty")
}

func TestQueueRemove(t *testing.T) {
	env := newCLIEnv(t)
	store := testsupport.MustOpenStore(t, env.cfg)
	item := testsupport.Enqueue(t, store, "Stale entry", "<Logentry/>")
	id := strconv.FormatInt(item.ID, 10)

	res := env.run(t, nil, "", "queue", "remove", id)
	if res.code != 0 {
		t.Fatalf("queue remove exit code = %d, stderr: %s", res.code, res.stderr)
	}
	requireContains(t, res.stdout, "Removed queued entry "+id)

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d after remove", count)
	}

	res = env.run(t, nil, "", "queue", "remove", id)
	if res.code != 1 {
		t.Fatalf("removing a missing entry should fail, got %d", res.code)
	}
	requireContains(t, res.stderr, "not found")

	res = env.run(t, nil, "", "queue", "remove", "abc")
	if res.code != 1 {
		t.Fatalf("invalid id should fail, got %d", res.code)
	}
	requireContains(t, res.stderr, `invalid queue id "abc"`)
}
