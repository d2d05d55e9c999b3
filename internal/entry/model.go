package entry

// BodyFormat selects how the logbook server renders the body.
type BodyFormat int

const (
	Text BodyFormat = iota
	HTML
)

// String returns the wire spelling of the format.
func (f BodyFormat) String() string {
	if f == HTML {
		return "html"
	}
	return "text"
}

// Caption is an attachment caption that distinguishes "not given" from an
// explicitly empty string.
type Caption struct {
	Text    string
	Present bool
}

// NoCaption is the omitted caption.
var NoCaption = Caption{}

// CaptionOf wraps an explicitly supplied caption, which may be empty.
func CaptionOf(text string) Caption {
	return Caption{Text: text, Present: true}
}

// Attachment pairs a file path with its caption.
type Attachment struct {
	Path    string
	Caption Caption
}

// ReferenceLogbook is the only reference kind the CLI produces.
const ReferenceLogbook = "logbook"

// Reference links the entry to an existing record.
type Reference struct {
	Kind   string
	Target string
}

// Request is the in-memory draft of a logbook entry.
type Request struct {
	Title   string
	Logbook string

	Body       *string
	BodyFormat BodyFormat

	Attachments []Attachment
	Tags        []string
	References  []Reference
	Notify      []string
	EntryMakers []string

	// CredentialPath is the alternate client certificate; empty selects the
	// configured default.
	CredentialPath string
}

// BodyText returns the body or "" when none was given.
func (r *Request) BodyText() string {
	if r == nil || r.Body == nil {
		return ""
	}
	return *r.Body
}

// HasAlternateCredential reports whether a certificate was named explicitly.
func (r *Request) HasAlternateCredential() bool {
	return r != nil && r.CredentialPath != ""
}
