// Package entry turns a parsed logentry command line into a submission
// Request.
//
// Validate reports missing required options as a single ParseError,
// PairAttachments aligns attachment paths with captions by index, and
// Builder reads the body and assembles the Request. Encode renders a
// Request as the Logentry XML document the logbook server accepts.
//
// Nothing here touches the network; delivery lives in the submit and
// logbook packages.
package entry
