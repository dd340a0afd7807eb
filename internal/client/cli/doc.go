// Package cli implements the interactive vibecart shell.
//
// NewApp wires configuration, durable storage, the broadcast relay, the API
// client and the stores; Run restores the session and starts the REPL.
// Commands are methods on App and print their own results. The error they
// return is the line shown to the user.
package cli
