package submit_test

import (
	"context"
	"errors"
	"testing"

	"logentry/internal/entry"
	"logentry/internal/submit"
)

type call struct {
	method string
	cred   submit.Credential
}

type stubTransport struct {
	result int64
	err    error
	calls  []call
}

func (s *stubTransport) Submit(_ context.Context, _ *entry.Request, cred submit.Credential) (int64, error) {
	s.calls = append(s.calls, call{method: "Submit", cred: cred})
	return s.result, s.err
}

func (s *stubTransport) SubmitNow(_ context.Context, _ *entry.Request, cred submit.Credential) (int64, error) {
	s.calls = append(s.calls, call{method: "SubmitNow", cred: cred})
	return s.result, s.err
}

func TestSelectPathwayTable(t *testing.T) {
	tests := []struct {
		alternate bool
		noQueue   bool
		want      submit.Pathway
	}{
		{false, false, submit.DefaultQueued},
		{false, true, submit.DefaultImmediate},
		{true, false, submit.AlternateQueued},
		{true, true, submit.AlternateImmediate},
	}
	seen := map[submit.Pathway]bool{}
	for _, tt := range tests {
		got := submit.SelectPathway(tt.alternate, tt.noQueue)
		if got != tt.want {
			t.Fatalf("SelectPathway(%v, %v) = %v, want %v", tt.alternate, tt.noQueue, got, tt.want)
		}
		if got.AllowsQueue() == tt.noQueue {
			t.Fatalf("%v: AllowsQueue = %v with noQueue %v", got, got.AllowsQueue(), tt.noQueue)
		}
		if got.UsesAlternate() != tt.alternate {
			t.Fatalf("%v: UsesAlternate = %v", got, got.UsesAlternate())
		}
		seen[got] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected four distinct pathways, got %d", len(seen))
	}
}

func TestDispatchRoutesEachPathway(t *testing.T) {
	tests := []struct {
		name       string
		credential string
		noQueue    bool
		wantMethod string
		wantCred   string
	}{
		{name: "default queued", wantMethod: "Submit"},
		{name: "default immediate", noQueue: true, wantMethod: "SubmitNow"},
		{name: "alternate queued", credential: "/certs/alt.pem", wantMethod: "Submit", wantCred: "/certs/alt.pem"},
		{name: "alternate immediate", credential: "/certs/alt.pem", noQueue: true, wantMethod: "SubmitNow", wantCred: "/certs/alt.pem"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubTransport{result: 150}
			d := &submit.Dispatcher{Transport: stub}
			req := &entry.Request{Title: "t", Logbook: "TLOG", CredentialPath: tt.credential}

			outcome, err := d.Dispatch(context.Background(), req, tt.noQueue)
			if err != nil {
				t.Fatalf("Dispatch: %v", err)
			}
			if outcome != (submit.Outcome{Mode: submit.Immediate, Number: 150}) {
				t.Fatalf("unexpected outcome %+v", outcome)
			}
			if len(stub.calls) != 1 {
				t.Fatalf("expected exactly one transport call, got %d", len(stub.calls))
			}
			got := stub.calls[0]
			if got.method != tt.wantMethod {
				t.Fatalf("method = %s, want %s", got.method, tt.wantMethod)
			}
			if got.cred.Path != tt.wantCred {
				t.Fatalf("credential = %q, want %q", got.cred.Path, tt.wantCred)
			}
			if got.cred.IsDefault() != (tt.wantCred == "") {
				t.Fatalf("IsDefault mismatch for %q", got.cred.Path)
			}
		})
	}
}

func TestDispatchInterpretsResultCodes(t *testing.T) {
	t.Run("positive is immediate", func(t *testing.T) {
		d := &submit.Dispatcher{Transport: &stubTransport{result: 150}}
		outcome, err := d.Dispatch(context.Background(), &entry.Request{Title: "t", Logbook: "L"}, false)
		if err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
		if outcome.Mode != submit.Immediate || outcome.Number != 150 {
			t.Fatalf("unexpected outcome %+v", outcome)
		}
		if outcome.Message() != "The Entry was saved with lognumber 150" {
			t.Fatalf("message = %q", outcome.Message())
		}
	})

	t.Run("zero is queued", func(t *testing.T) {
		d := &submit.Dispatcher{Transport: &stubTransport{result: 0}}
		outcome, err := d.Dispatch(context.Background(), &entry.Request{Title: "t", Logbook: "L"}, false)
		if err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
		if outcome.Mode != submit.Queued || outcome.Number != 0 {
			t.Fatalf("unexpected outcome %+v", outcome)
		}
		if outcome.Message() != "The Entry was placed in the entry queue" {
			t.Fatalf("message = %q", outcome.Message())
		}
	})

	t.Run("negative is a submission error", func(t *testing.T) {
		d := &submit.Dispatcher{Transport: &stubTransport{result: -3}}
		_, err := d.Dispatch(context.Background(), &entry.Request{Title: "t", Logbook: "L"}, false)
		var subErr *submit.SubmissionError
		if !errors.As(err, &subErr) {
			t.Fatalf("expected SubmissionError, got %v", err)
		}
		if !errors.Is(err, submit.ErrNegativeResult) {
			t.Fatalf("expected ErrNegativeResult, got %v", err)
		}
	})
}

func TestDispatchSurfacesTransportFailure(t *testing.T) {
	cause := errors.New("server unavailable")
	stub := &stubTransport{err: cause}
	d := &submit.Dispatcher{Transport: stub}

	outcome, err := d.Dispatch(context.Background(), &entry.Request{Title: "t", Logbook: "L"}, true)
	var subErr *submit.SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected SubmissionError, got %T (%v)", err, err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if subErr.Pathway != submit.DefaultImmediate {
		t.Fatalf("pathway = %v", subErr.Pathway)
	}
	if subErr.ErrorKind() != "submission" {
		t.Fatalf("kind = %q", subErr.ErrorKind())
	}
	if outcome != (submit.Outcome{}) {
		t.Fatalf("failed dispatch must not produce an outcome, got %+v", outcome)
	}
	if len(stub.calls) != 1 {
		t.Fatalf("dispatcher must not retry, saw %d calls", len(stub.calls))
	}
}

func TestDispatchWithoutTransport(t *testing.T) {
	var d submit.Dispatcher
	_, err := d.Dispatch(context.Background(), &entry.Request{Title: "t", Logbook: "L"}, false)
	var subErr *submit.SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}
}
