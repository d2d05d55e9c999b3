package options

import (
	"fmt"
	"strings"
)

// Option names shared by the schema, the validator, and the entry builder.
const (
	Help       = "help"
	Title      = "title"
	Logbook    = "logbook"
	Body       = "body"
	HTML       = "html"
	Attach     = "attach"
	Caption    = "caption"
	Tag        = "tag"
	Link       = "link"
	Notify     = "notify"
	EntryMaker = "entrymaker"
	Cert       = "cert"
	NoQueue    = "noqueue"
	NoSubmit   = "nosubmit"
	XML        = "xml"
)

// Arity describes how many values an option accepts.
type Arity int

const (
	// Flag options take no value; presence is the signal.
	Flag Arity = iota
	// Single options take exactly one value.
	Single
	// Repeated options take one value per occurrence and keep every value.
	Repeated
)

// Version identifies a revision of the option set.
type Version int

const (
	// Legacy is the 1.x option set.
	Legacy Version = 1
	// Current adds client certificate selection.
	Current Version = 2
)

// String returns the config spelling of the version.
func (v Version) String() string {
	switch v {
	case Legacy:
		return "legacy"
	case Current:
		return "current"
	default:
		return fmt.Sprintf("version(%d)", int(v))
	}
}

// ParseVersion maps a config value to a schema version. Empty means Current.
func ParseVersion(value string) (Version, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "current", "2":
		return Current, nil
	case "legacy", "1":
		return Legacy, nil
	default:
		return 0, fmt.Errorf("unknown option set %q (want current or legacy)", value)
	}
}

// Option declares one recognized command-line option.
type Option struct {
	Name  string
	Short string
	Arity Arity
	Usage string
	Since Version
}

// Flag returns the human form used in diagnostics, e.g. "title (-t)".
func (o Option) Flag() string {
	if o.Short != "" {
		return fmt.Sprintf("%s (-%s)", o.Name, o.Short)
	}
	return fmt.Sprintf("%s (--%s)", o.Name, o.Name)
}

var catalog = []Option{
	{Name: Help, Short: "h", Arity: Flag, Usage: "Prints this message", Since: Legacy},
	{Name: Logbook, Short: "l", Arity: Repeated, Usage: "(required) A valid logbook name", Since: Legacy},
	{Name: Title, Short: "t", Arity: Single, Usage: "(required) The title/keywords for the entry (max 255 chars)", Since: Legacy},
	{Name: Attach, Short: "a", Arity: Repeated, Usage: "A /path/to/a/file to attach", Since: Legacy},
	{Name: Body, Short: "b", Arity: Single, Usage: "A /path/to/a/text/file or '-' to read StdIn", Since: Legacy},
	{Name: Tag, Short: "g", Arity: Repeated, Usage: "A valid tag", Since: Legacy},
	{Name: EntryMaker, Short: "e", Arity: Repeated, Usage: "Name(s) of person(s) making the entry", Since: Legacy},
	{Name: Notify, Short: "n", Arity: Repeated, Usage: "An email address", Since: Legacy},
	{Name: Caption, Short: "c", Arity: Repeated, Usage: "Caption(s) to go with attachment(s)", Since: Legacy},
	{Name: Link, Arity: Repeated, Usage: "Link to the specified existing lognumber", Since: Legacy},
	{Name: HTML, Arity: Flag, Usage: "Interpret body as HTML instead of text", Since: Legacy},
	{Name: XML, Arity: Flag, Usage: "Print XML version of logentry to StdOut", Since: Legacy},
	{Name: NoQueue, Arity: Flag, Usage: "Do not queue entry. Exit with error if immediate submit fails", Since: Legacy},
	{Name: NoSubmit, Arity: Flag, Usage: "Do not submit entry.", Since: Legacy},
	{Name: Cert, Arity: Single, Usage: "The path to a PEM format logbook SSL certificate file to use", Since: Current},
}

// Schema returns the options available in version v, in declaration order.
func Schema(v Version) []Option {
	out := make([]Option, 0, len(catalog))
	for _, opt := range catalog {
		if opt.Since <= v {
			out = append(out, opt)
		}
	}
	return out
}

// Lookup finds an option by long name in version v.
func Lookup(v Version, name string) (Option, bool) {
	for _, opt := range Schema(v) {
		if opt.Name == name {
			return opt, true
		}
	}
	return Option{}, false
}
