package options

import (
	"github.com/spf13/pflag"
)

// Line is a parsed command line: option name to zero, one, or many values.
type Line interface {
	Has(name string) bool
	Value(name string) string
	Values(name string) []string
}

// Register binds every option in schema onto fs. Valued options use
// StringArray so values containing commas are kept whole and a repeated
// single-valued option keeps its first value.
func Register(fs *pflag.FlagSet, schema []Option) {
	for _, opt := range schema {
		switch opt.Arity {
		case Flag:
			fs.BoolP(opt.Name, opt.Short, false, opt.Usage)
		case Single, Repeated:
			fs.StringArrayP(opt.Name, opt.Short, nil, opt.Usage)
		}
	}
}

// FlagLine adapts a parsed pflag.FlagSet to Line.
type FlagLine struct {
	fs *pflag.FlagSet
}

// NewFlagLine wraps fs. The set must already be parsed.
func NewFlagLine(fs *pflag.FlagSet) *FlagLine {
	return &FlagLine{fs: fs}
}

// Has reports whether the option appeared on the command line.
func (l *FlagLine) Has(name string) bool {
	f := l.fs.Lookup(name)
	return f != nil && f.Changed
}

// Value returns the first value given for name. Flags and absent options
// yield "".
func (l *FlagLine) Value(name string) string {
	if !l.Has(name) {
		return ""
	}
	f := l.fs.Lookup(name)
	switch f.Value.Type() {
	case "bool":
		return ""
	case "stringArray":
		values := l.Values(name)
		if len(values) == 0 {
			return ""
		}
		return values[0]
	default:
		return f.Value.String()
	}
}

// Values returns every value given for name in command-line order.
func (l *FlagLine) Values(name string) []string {
	if !l.Has(name) {
		return nil
	}
	f := l.fs.Lookup(name)
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		return append([]string(nil), sv.GetSlice()...)
	}
	if f.Value.Type() == "bool" {
		return nil
	}
	return []string{f.Value.String()}
}

// StaticLine is a Line backed by a literal map. Flags are present with no
// values: StaticLine{"html": nil}.
type StaticLine map[string][]string

// Has reports whether name is a key.
func (l StaticLine) Has(name string) bool {
	_, ok := l[name]
	return ok
}

// Value returns the first value for name.
func (l StaticLine) Value(name string) string {
	if values := l[name]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// Values returns a copy of the values for name.
func (l StaticLine) Values(name string) []string {
	values, ok := l[name]
	if !ok || values == nil {
		return nil
	}
	return append([]string(nil), values...)
}
