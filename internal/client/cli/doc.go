// Package cli provides the interactive Portal command-line client.
//
// It wires configuration, the local profile database, the session, the
// remote character catalog, and a REPL. Every command that changes state
// re-renders the current location through the route guards, so the REPL
// behaves like a small single-page application:
//
//   - /                  redirects to the catalog or the login form
//   - /auth              login form; skipped when a profile exists
//   - /information/{n}   character catalog, page n
//   - /profile           the stored profile, editable
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
