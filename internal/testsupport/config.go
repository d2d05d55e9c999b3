package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"logentry/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The default certificate path points into the temp tree but no file is
// written unless WithDefaultCert is used.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Server.URL = "http://127.0.0.1:1/incoming"
	cfgVal.Server.TimeoutSeconds = 5
	cfgVal.Credentials.DefaultCert = filepath.Join(base, "certs", "default.pem")
	cfgVal.Queue.Dir = filepath.Join(base, "queue")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithServerURL points the config at a test server.
func WithServerURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Server.URL = url
	}
}

// WithDefaultCert writes a client certificate at the default credential path.
func WithDefaultCert() ConfigOption {
	return func(b *configBuilder) {
		WriteClientCert(b.t, b.cfg.Credentials.DefaultCert, "default")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Queue.Dir)
}

// WriteConfigFile persists cfg as TOML next to its temp tree and returns the
// file path, for commands that load configuration themselves.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
