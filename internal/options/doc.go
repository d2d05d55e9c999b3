// Package options declares the flags logentry understands and exposes parsed
// command lines through the read-only Line interface.
//
// The schema is plain data: every Option records its long and short names,
// whether it takes a value, whether it may repeat, and the schema version
// that introduced it. Register binds a schema onto a pflag.FlagSet; FlagLine
// and StaticLine then answer presence and value queries without callers
// caring where the values came from.
package options
