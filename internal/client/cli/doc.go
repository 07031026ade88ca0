// Package cli provides the interactive GophNotes command-line client.
//
// It wires configuration, the local session store, the HTTP API client and
// an interactive REPL. The access token obtained on register/login is kept
// in the local database, so a session survives restarts until logout or
// until the server stops accepting the token.
//
// Commands:
//   - register, login, logout
//   - list, show <id>
//   - add, edit <id>, delete <id>
//   - export [save]
//   - help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
