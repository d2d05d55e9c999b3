// Package logging builds the slog loggers used by logentry.
//
// Two formats are supported: a console handler that prints
// "timestamp LEVEL component: message key=value" lines, and a JSON handler
// with stable ts/level/msg keys. Output defaults to stderr so standard
// output stays free for the submission result and XML previews.
package logging
