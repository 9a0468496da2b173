// Package ui renders the queue dashboard and routes input.
//
// The package has two halves. The pure half turns a layout tree and a
// state snapshot into a frame: Resolve splits an axis among size
// constraints, evalTexts folds text expressions into styled spans, and
// renderFrame assembles rows of spans sized exactly to the terminal.
// Nothing in it does I/O, so tests drive it with literal snapshots.
//
// The other half is the Bubble Tea model. Update owns all mutation: it
// feeds key presses to the state store, forwards the resulting daemon
// commands to the protocol client, applies incoming client events, and
// re-arms the tick that keeps elapsed time moving between idle
// notifications. View renders the current snapshot through the pure
// half and styles the spans with lipgloss.
//
// # Search prompt
//
// While the prompt is open, printable keys append to the query and the
// view refilters on every keystroke. Enter keeps the query and closes
// the prompt; Esc closes it and clears the query. All other bindings
// stay inactive until the prompt closes, except Ctrl+Q and Ctrl+C,
// which always quit.
//
// # Status line notices
//
// Daemon rejections and connection loss appear as a transient message
// on the last frame row for a few seconds. They never interrupt the
// session; optimistic state is left in place and the next status
// refresh reconciles it.
package ui
