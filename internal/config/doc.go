// Package config loads, normalizes, and validates logentry configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts),
// reads TOML files, and honours environment fallbacks such as
// LOGENTRY_SERVER_URL and LOGENTRY_CERT. The Config type gathers the server
// endpoint, the default client certificate, the deferred queue location, and
// logging preferences so the CLI resolves them in one pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths and clear validation errors.
package config
