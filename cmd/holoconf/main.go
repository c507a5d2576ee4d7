// Command holoconf is the CLI front end for the holoconf configuration
// engine (spec §6): validate, dump, get, and check subcommands over one or
// more YAML/JSON documents.
package main

import "os"

// Exit codes (spec §6: "0 ok, 1 invalid/validation-or-not-found, 2 load
// error").
const (
	ExitOK          = 0
	ExitInvalid     = 1
	ExitLoadFailure = 2
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(ExitLoadFailure)
	}
}
