package preflight

import (
	"context"

	"logentry/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check against cfg.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckCertificate("Default certificate", cfg.Credentials.DefaultCert, nowFunc()),
		CheckDirectoryAccess("Queue directory", cfg.Queue.Dir),
		CheckServer(ctx, cfg.Server.URL, cfg.Timeout()),
	}
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
