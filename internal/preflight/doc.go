// Package preflight provides readiness checks for the pieces logentry needs
// before an entry can reach the logbook: the default client certificate, the
// deferred queue directory, and the logbook server itself.
//
// The CLI "logentry config check" runs RunAll and renders the results. Each
// check reports a Result rather than an error so one failure never hides the
// others.
package preflight
