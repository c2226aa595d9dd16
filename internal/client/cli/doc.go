// Package cli provides the interactive babycare command-line client.
//
// It wires configuration, the local database, the session, the backend
// gateway and an interactive REPL. Typical flow: resolve the initial route
// from the stored token, start a background reachability watcher, then run
// user commands until exit.
//
// Key features:
//   - Login / Register / Logout, with onboarding after registration
//   - Immunization and milestone checklists (show, toggle, annotate)
//   - Growth log (show, add with local validation)
//   - Session status, including token expiry
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher and runREPL for details.
package cli
