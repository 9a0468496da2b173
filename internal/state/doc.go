// Package state holds the data the screen is drawn from.
//
// # Overview
//
// The Store is the single place where daemon data (status, current
// song, queue) meets user state (search query, filtered view, cursor).
// Key handlers mutate it, daemon events refresh it, and the renderer
// reads an immutable-by-convention Snapshot of it each frame.
//
// # Ownership
//
// Unlike a poller/UI split, there is exactly one writer: the update
// loop. Daemon updates arrive as events delivered to that same loop,
// so the Store needs no locking.
//
//	Daemon events:                Key handlers:
//	┌───────────────┐            ┌──────────────────┐
//	│ ApplyStatus() │            │ MoveDown()       │
//	│ ApplyQueue()  │──→ Store ←─│ AppendQuery()    │
//	└───────────────┘     │      │ TogglePause() …  │
//	                      ↓      └──────────────────┘
//	                 Snapshot() ──→ render
//
// # Optimistic Commands
//
// Mutators that correspond to a daemon command (TogglePause, Next,
// SeekForward, PlaySelected, …) apply their effect to the Store
// immediately and return the command to send. The screen reacts on
// the same frame; the daemon's next status event confirms the change
// or corrects it. Nothing is ever rolled back locally.
//
// # Filtering and Selection
//
// The filtered view is a list of queue positions, ascending, computed
// from the query against the configured search fields. The cursor is
// an index into that list, -1 when the list is empty. Every queue or
// query change rebuilds the view and re-targets the cursor: it stays
// on the song it pointed at when that song survived, snaps to the
// playing song otherwise, and clamps into bounds as a last resort.
package state
