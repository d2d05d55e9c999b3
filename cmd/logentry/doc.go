// Package main hosts the logentry CLI entrypoint and command graph.
//
// The root command turns one invocation into one logbook entry: it validates
// the required options, builds the entry, optionally prints its XML, and
// hands it to the submission dispatcher. The queue and config subcommands
// maintain the local deferred-entry store and the configuration file.
package main
