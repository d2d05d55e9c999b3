package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"logentry/internal/config"
	"logentry/internal/entry"
	"logentry/internal/queue"
	"logentry/internal/submit"
	"logentry/internal/testsupport"
)

type recordingTransport struct {
	result int64
	err    error

	methods  []string
	requests []*entry.Request
	creds    []submit.Credential
	store    *queue.Store
	built    int
}

func (r *recordingTransport) factory(_ *config.Config, store *queue.Store, _ *slog.Logger) submit.Transport {
	r.built++
	r.store = store
	return r
}

func (r *recordingTransport) Submit(_ context.Context, req *entry.Request, cred submit.Credential) (int64, error) {
	r.record("Submit", req, cred)
	return r.result, r.err
}

func (r *recordingTransport) SubmitNow(_ context.Context, req *entry.Request, cred submit.Credential) (int64, error) {
	r.record("SubmitNow", req, cred)
	return r.result, r.err
}

func (r *recordingTransport) record(method string, req *entry.Request, cred submit.Credential) {
	r.methods = append(r.methods, method)
	r.requests = append(r.requests, req)
	r.creds = append(r.creds, cred)
}

type cliResult struct {
	code   int
	stdout string
	stderr string
}

type cliEnv struct {
	cfg        *config.Config
	configPath string
}

func newCLIEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliEnv {
	t.Helper()
	t.Setenv("LOGENTRY_SERVER_URL", "")
	t.Setenv("LOGENTRY_CERT", "")
	cfg := testsupport.NewConfig(t, opts...)
	return &cliEnv{cfg: cfg, configPath: testsupport.WriteConfigFile(t, cfg)}
}

func (e *cliEnv) run(t *testing.T, factory transportFactory, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	all := append([]string{"--config", e.configPath}, args...)
	code := run(context.Background(), all, strings.NewReader(stdin), &stdout, &stderr, factory)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}
