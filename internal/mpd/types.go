package mpd

import (
	"fmt"
	"time"
)

// PlayState is the daemon's playback state.
type PlayState uint8

const (
	StateStopped PlayState = iota
	StatePlaying
	StatePaused
)

// String returns the state name as reported by the status command.
func (s PlayState) String() string {
	switch s {
	case StatePlaying:
		return "play"
	case StatePaused:
		return "pause"
	default:
		return "stop"
	}
}

// Status mirrors the fields of the daemon's status response that the
// dashboard consumes. Unknown keys on the wire are ignored.
type Status struct {
	Repeat  bool
	Random  bool
	Single  bool
	Oneshot bool
	Consume bool

	State PlayState

	// Song is the queue position of the playing song, or -1 when the
	// daemon reports no position. Elapsed and Duration are only
	// meaningful when Song >= 0.
	Song     int
	Elapsed  time.Duration
	Duration time.Duration

	QueueLen int
}

// Song is one queue entry. Every field except File is optional; absent
// tags are empty strings and an absent duration is zero.
type Song struct {
	File     string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

// DaemonError is a protocol-level command rejection (an ACK line). It
// carries the numeric error code, the index of the offending command in a
// command list, the command name, and the daemon's message.
type DaemonError struct {
	Code         int
	CommandIndex int
	Command      string
	Message      string
}

func (e *DaemonError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s: %s (error %d)", e.Command, e.Message, e.Code)
	}
	return fmt.Sprintf("%s (error %d)", e.Message, e.Code)
}

// Subsystems is the set of idle subsystems the client subscribes to.
type Subsystems struct {
	Options  bool
	Player   bool
	Playlist bool
}

func (s Subsystems) merge(other Subsystems) Subsystems {
	return Subsystems{
		Options:  s.Options || other.Options,
		Player:   s.Player || other.Player,
		Playlist: s.Playlist || other.Playlist,
	}
}

func (s Subsystems) any() bool {
	return s.Options || s.Player || s.Playlist
}

// Event is a notification delivered by the client to the event loop.
// The concrete types below form the closed set of notifications.
type Event interface {
	event()
}

// ConnectedEvent reports a completed handshake. A full resync follows
// before any other event for the new connection.
type ConnectedEvent struct {
	Version string
}

// DisconnectedEvent reports a failed dial or a dropped connection. The
// client keeps reconnecting; Err describes the most recent failure.
type DisconnectedEvent struct {
	Err error
}

// StatusEvent carries a fresh status snapshot paired with the current
// song. Song is nil when the daemon is stopped.
type StatusEvent struct {
	Status Status
	Song   *Song
}

// QueueEvent carries a full replacement of the queue contents.
type QueueEvent struct {
	Songs []Song
}

// CommandErrorEvent reports a daemon rejection of an issued command.
// The connection is unaffected.
type CommandErrorEvent struct {
	Err error
}

func (ConnectedEvent) event()    {}
func (DisconnectedEvent) event() {}
func (StatusEvent) event()       {}
func (QueueEvent) event()        {}
func (CommandErrorEvent) event() {}
