// Package mpd maintains the connection to the music playback daemon and
// converts its line protocol into typed events.
//
// # Protocol
//
// The daemon speaks a line-oriented protocol: the client sends one
// command per line, the daemon answers with "key: value" lines ended by
// "OK", or by "ACK [code@index] {command} message" on rejection. On
// connect the daemon greets with "OK MPD <version>". Unknown response
// keys are ignored so newer daemons keep working.
//
// # One command in flight
//
// Change notification uses the daemon's idle command: the client sends
// "idle options player playlist" and the socket blocks until one of those
// subsystems changes. Because the connection then has an outstanding
// request, issuing anything else first requires "noidle", after which the
// daemon completes the idle request with whatever changes accumulated,
// possibly none. The client therefore cycles through three phases
// (idle, cancelling, awaiting a result) and never has more than one
// request outstanding. Changes returned by the cancellation are refetched
// before re-entering idle, so nothing observed during the race between a
// keypress and a daemon-side change is lost.
//
// # Failure model
//
// Rejections (ACK) are protocol-level errors: they surface as
// CommandErrorEvents and leave the connection alone. Everything else,
// from a failed dial to a malformed greeting, discards the connection.
// Run then reconnects forever with exponential backoff
// (1s, 2s, 4s, ... capped at 30s) and, once reconnected, refetches
// status, current song, and the full queue rather than trusting anything
// buffered before the drop.
//
// # Wiring
//
// Run owns the connection on its own goroutine. State flows out through
// Events as ConnectedEvent, DisconnectedEvent, StatusEvent, QueueEvent,
// and CommandErrorEvent values; commands flow in through Send and
// RefreshStatus. ExecRaw is a separate one-shot path for the raw command
// mode of the CLI and shares no connection with a running client.
package mpd
