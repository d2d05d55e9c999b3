package submit

import "fmt"

// SubmissionError reports a failed delivery: transport or credential
// problems, or an entry that could not be saved immediately under --noqueue.
type SubmissionError struct {
	Op      string
	Pathway Pathway
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Op == "dispatch" {
		return fmt.Sprintf("dispatch entry: %v", e.Err)
	}
	return fmt.Sprintf("%s entry (%s): %v", e.Op, e.Pathway, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// ErrorKind classifies the error for exit handling.
func (e *SubmissionError) ErrorKind() string { return "submission" }
