// Package app wires the daemon client, the queue store, and the
// terminal UI into a running dashboard.
//
// The client owns the connection to the music player daemon and feeds
// events to the UI through its event channel. The store holds the
// queue, selection, and search state that both the key handlers and
// the renderer read. Run ties their lifetimes together: when the UI
// exits, the client's context is cancelled and Run waits for its
// loop to drain before returning.
package app
