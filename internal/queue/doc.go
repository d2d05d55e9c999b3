// Package queue persists logbook entries that could not be delivered
// immediately, so a later flush can submit them.
//
// The Store wraps a SQLite database (WAL mode, busy retries with backoff)
// holding one row per deferred entry: a stable key, the rendered Logentry
// XML, and the certificate it should be submitted with. Lock guards a flush
// so two processes never deliver the same entry twice.
//
// Schema changes bump schemaVersion in schema.go; Open refuses a database
// written at another version.
package queue
