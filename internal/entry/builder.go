package entry

import (
	"io"
	"log/slog"
	"strings"

	"logentry/internal/fileutil"
	"logentry/internal/options"
)

// StdinPath is the body value that selects standard input.
const StdinPath = "-"

// Builder maps a validated command line onto a Request.
type Builder struct {
	Stdin  io.Reader
	Logger *slog.Logger
}

// Build assembles the Request. It performs no validation of required
// options; call Validate first. Unreadable body or attachment files yield an
// *IOError.
func (b *Builder) Build(line options.Line) (*Request, error) {
	logger := b.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	req := &Request{
		Title:   line.Value(options.Title),
		Logbook: joinLogbooks(line.Values(options.Logbook)),
	}

	if line.Has(options.HTML) {
		req.BodyFormat = HTML
	}
	if line.Has(options.Body) {
		body, err := b.readBody(line.Value(options.Body))
		if err != nil {
			return nil, err
		}
		req.Body = &body
	}

	var captions []string
	if line.Has(options.Caption) {
		captions = line.Values(options.Caption)
	}
	req.Attachments = PairAttachments(line.Values(options.Attach), captions)
	for _, att := range req.Attachments {
		if err := fileutil.RequireRegular(att.Path); err != nil {
			return nil, &IOError{Op: "attach", Path: att.Path, Err: err}
		}
	}
	if extra := len(captions) - len(req.Attachments); extra > 0 {
		logger.Debug("ignoring captions without attachments", slog.Int("count", extra))
	}

	req.Tags = line.Values(options.Tag)
	for _, target := range line.Values(options.Link) {
		req.References = append(req.References, Reference{Kind: ReferenceLogbook, Target: target})
	}
	req.Notify = line.Values(options.Notify)
	req.EntryMakers = line.Values(options.EntryMaker)

	if line.Has(options.Cert) {
		req.CredentialPath = line.Value(options.Cert)
	}

	logger.Debug("entry built",
		slog.String("title", req.Title),
		slog.String("logbook", req.Logbook),
		slog.Int("attachments", len(req.Attachments)),
		slog.String("format", req.BodyFormat.String()),
	)
	return req, nil
}

// joinLogbooks joins the non-blank logbook names with ", ".
func joinLogbooks(names []string) string {
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			kept = append(kept, name)
		}
	}
	return strings.Join(kept, ", ")
}

func (b *Builder) readBody(source string) (string, error) {
	if source == StdinPath {
		if b.Stdin == nil {
			return "", &IOError{Op: "read stdin", Err: io.ErrUnexpectedEOF}
		}
		body, err := fileutil.ReadAllText(b.Stdin)
		if err != nil {
			return "", &IOError{Op: "read stdin", Err: err}
		}
		return body, nil
	}
	body, err := fileutil.ReadText(source)
	if err != nil {
		return "", &IOError{Op: "read body", Path: source, Err: err}
	}
	return body, nil
}
