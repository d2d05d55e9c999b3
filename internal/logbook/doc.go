// Package logbook delivers Logentry XML documents to the logbook server.
//
// Client implements the submit.Transport contract. SubmitNow performs one
// authenticated PUT and returns the assigned lognumber. Submit does the same
// but stores the entry in the local queue, returning 0, when the server is
// unreachable or answers with a server-side error. Rejections and
// certificate problems are never queued. Flush replays queued entries.
//
// Every request authenticates with a PEM client certificate holding both
// the certificate and its private key.
package logbook
