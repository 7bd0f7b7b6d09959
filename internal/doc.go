// Package internal contains the implementation packages of lwcswitch.
//
// These packages follow Go's internal package convention and are not
// importable by other modules.
//
// # Package Organization
//
//   - types: related-file model, file kinds, labels, colors and priorities
//   - scanner: component membership, folder listing, filtering and ranking
//   - renderer: status text, code lens titles, hover markdown, the panel
//     page and terminal output
//   - watcher: fsnotify-based component folder watching with debouncing
//   - server: the panel HTTP server with WebSocket live updates
//   - config: viper-backed configuration and its validation
//   - validation: host and origin checks for the panel server
//   - errors: typed errors with codes and user-facing suggestions
//   - logging: slog-based structured logging
//   - version: build information
//
// # Data Flow
//
// Every surface starts from a scanner lookup on one file. The scanner reads
// the component folder afresh on each call and returns a ranked list; the
// renderer turns that list into surface output. The watcher and server
// re-run the lookup when a watched folder changes and push the new list to
// subscribed panels. No lookup result is cached between calls.
package internal
