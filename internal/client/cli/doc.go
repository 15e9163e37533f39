// Package cli provides the interactive gophguard terminal client.
//
// It wires configuration, the encrypted local store, the profile store
// client and the auth service, then runs a small REPL on top of them:
// register, login, logout, delete-account and status. A background watcher
// clears an elapsed login lockout.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See Bootstrap, App and runREPL for details.
package cli
