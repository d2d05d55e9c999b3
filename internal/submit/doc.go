// Package submit chooses how a built entry reaches the logbook server and
// turns the transport's numeric answer into an Outcome.
//
// Two switches pick one of four pathways: whether the request names an
// alternate client certificate, and whether queueing is forbidden. The
// transport returns a lognumber (> 0) for an immediate save or 0 when the
// entry was deferred to the local queue; every failure surfaces as a
// *SubmissionError.
package submit
