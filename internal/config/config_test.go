package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"logentry/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("LOGENTRY_SERVER_URL", "")
	t.Setenv("LOGENTRY_CERT", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Credentials.DefaultCert != filepath.Join(tempHome, ".elogcert") {
		t.Fatalf("unexpected default cert: %q", cfg.Credentials.DefaultCert)
	}
	wantQueue := filepath.Join(tempHome, ".local", "share", "logentry", "queue")
	if cfg.Queue.Dir != wantQueue {
		t.Fatalf("unexpected queue dir: got %q want %q", cfg.Queue.Dir, wantQueue)
	}
	if cfg.Server.URL != "https://logbooks.jlab.org/incoming" {
		t.Fatalf("unexpected server url: %q", cfg.Server.URL)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Timeout())
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.CLI.OptionSet != "current" {
		t.Fatalf("unexpected option set: %q", cfg.CLI.OptionSet)
	}

	if err := cfg.EnsureQueueDir(); err != nil {
		t.Fatalf("EnsureQueueDir failed: %v", err)
	}
	if info, err := os.Stat(cfg.Queue.Dir); err != nil || !info.IsDir() {
		t.Fatalf("expected queue dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "logentry.toml")

	type payload struct {
		Server struct {
			URL            string `toml:"url"`
			TimeoutSeconds int    `toml:"timeout_seconds"`
		} `toml:"server"`
		Queue struct {
			Dir string `toml:"dir"`
		} `toml:"queue"`
		CLI struct {
			OptionSet string `toml:"option_set"`
		} `toml:"cli"`
	}
	custom := payload{}
	custom.Server.URL = "https://logbooks.example.org/incoming/"
	custom.Server.TimeoutSeconds = 5
	custom.Queue.Dir = filepath.Join(tempDir, "q")
	custom.CLI.OptionSet = "Legacy"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}
	t.Setenv("LOGENTRY_SERVER_URL", "")

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Server.URL != "https://logbooks.example.org/incoming" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Server.URL)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Timeout())
	}
	if cfg.Queue.Dir != custom.Queue.Dir {
		t.Fatalf("unexpected queue dir: %q", cfg.Queue.Dir)
	}
	if cfg.CLI.OptionSet != "legacy" {
		t.Fatalf("expected option set lowercased, got %q", cfg.CLI.OptionSet)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("LOGENTRY_SERVER_URL", "http://127.0.0.1:8080/incoming")
	t.Setenv("LOGENTRY_CERT", "~/certs/ops.pem")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.URL != "http://127.0.0.1:8080/incoming" {
		t.Fatalf("server url = %q", cfg.Server.URL)
	}
	if cfg.Credentials.DefaultCert != filepath.Join(tempHome, "certs", "ops.pem") {
		t.Fatalf("default cert = %q", cfg.Credentials.DefaultCert)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("LOGENTRY_SERVER_URL", "")
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad scheme", content: "[server]\nurl = \"ftp://host/x\"\n", wantErr: "server.url"},
		{name: "bad format", content: "[logging]\nformat = \"xml\"\n", wantErr: "logging.format"},
		{name: "bad level", content: "[logging]\nlevel = \"loud\"\n", wantErr: "logging.level"},
		{name: "bad option set", content: "[cli]\noption_set = \"future\"\n", wantErr: "cli.option_set"},
		{name: "negative timeout", content: "[server]\ntimeout_seconds = -5\n", wantErr: "server.timeout_seconds"},
		{name: "unknown key", content: "[server]\nhost = \"x\"\n", wantErr: "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "logentry.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LOGENTRY_SERVER_URL", "")
	t.Setenv("LOGENTRY_CERT", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config should load: exists=%v err=%v", exists, err)
	}
}

func TestValidateRejectsZeroTimeout(t *testing.T) {
	cfg := config.Default()
	cfg.Server.TimeoutSeconds = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "server.timeout_seconds") {
		t.Fatalf("expected timeout error, got %v", err)
	}
}
