package entry

import (
	"strings"

	"logentry/internal/options"
)

var required = []string{options.Title, options.Logbook}

// Validate checks that every required option is present and reports all
// missing ones together, in title, logbook order. A blank value counts as
// missing. A --cert given with a blank path is rejected rather than read as
// the default certificate. Callers must honour a help request before calling
// Validate.
func Validate(line options.Line) error {
	var missing []string
	for _, name := range required {
		if line.Has(name) && strings.TrimSpace(strings.Join(line.Values(name), "")) != "" {
			continue
		}
		opt, _ := options.Lookup(options.Current, name)
		missing = append(missing, opt.Flag())
	}
	if len(missing) > 0 {
		return &ParseError{Msg: "Missing required option(s): " + strings.Join(missing, ", ")}
	}
	if line.Has(options.Cert) && strings.TrimSpace(line.Value(options.Cert)) == "" {
		opt, _ := options.Lookup(options.Current, options.Cert)
		return &ParseError{Msg: "Option " + opt.Flag() + " requires a certificate path"}
	}
	return nil
}
