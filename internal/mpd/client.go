package mpd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"
)

const (
	// cmdIdle subscribes to the subsystems the dashboard renders.
	cmdIdle   = "idle options player playlist"
	cmdNoidle = "noidle"

	backoffBase = time.Second
	backoffMax  = 30 * time.Second

	eventBuffer   = 32
	requestBuffer = 32
)

var (
	// ErrNotConnected is returned by Send and RefreshStatus while the
	// client is between connections.
	ErrNotConnected = errors.New("not connected to the daemon")

	// ErrBusy is returned when the request queue is full.
	ErrBusy = errors.New("command queue is full")
)

// phase is the connection's position in the idle protocol. Exactly one
// request is outstanding at any instant: either the idle wait itself, or
// the command that interrupted it.
type phase uint8

const (
	// phaseIdle: an idle request is outstanding and the socket is
	// blocked waiting for a changed-subsystem notification.
	phaseIdle phase = iota
	// phaseIssuing: noidle has been written; the pending (possibly
	// empty) notification is being consumed before the command goes out.
	phaseIssuing
	// phaseAwaiting: a command is in flight, response pending.
	phaseAwaiting
)

func (p phase) String() string {
	switch p {
	case phaseIssuing:
		return "cancelling idle"
	case phaseAwaiting:
		return "awaiting a result"
	default:
		return "idle"
	}
}

type request struct {
	cmd     *Command
	refresh Subsystems
}

type idleResult struct {
	lines []string
	err   error
}

// Client maintains the daemon connection. It dials, handshakes, resyncs,
// then alternates between idle waits and command round-trips, delivering
// typed events to the UI loop. On any I/O failure it discards the
// connection and reconnects with capped exponential backoff; buffered
// notifications are presumed lost, so every reconnect starts with a full
// resync instead of delta replay.
type Client struct {
	address   string
	events    chan Event
	requests  chan request
	connected atomic.Bool
	phase     phase
}

// New builds a client for the daemon at address (host:port, or a socket
// path containing a slash). Run starts the connection.
func New(address string) *Client {
	return &Client{
		address:  address,
		events:   make(chan Event, eventBuffer),
		requests: make(chan request, requestBuffer),
	}
}

// Events returns the notification channel. It is closed when Run
// returns, after the context is cancelled.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Send enqueues one command. The command is executed under the
// single-in-flight discipline: the idle wait is cancelled first and
// re-entered afterwards. Rejections surface as CommandErrorEvents, not
// as errors here.
func (c *Client) Send(cmd Command) error {
	if !c.connected.Load() {
		return ErrNotConnected
	}
	select {
	case c.requests <- request{cmd: &cmd}:
		return nil
	default:
		return ErrBusy
	}
}

// RefreshStatus enqueues a status and current-song refetch without a
// user command. The periodic tick uses it to keep elapsed time moving
// between notifications.
func (c *Client) RefreshStatus() error {
	if !c.connected.Load() {
		return ErrNotConnected
	}
	select {
	case c.requests <- request{refresh: Subsystems{Player: true}}:
		return nil
	default:
		return ErrBusy
	}
}

// Run owns the connection until ctx is cancelled. It never returns on
// daemon failure; connection errors are reported as events and retried
// forever.
func (c *Client) Run(ctx context.Context) error {
	defer close(c.events)
	failures := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		cn, err := dialConn(ctx, c.address)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failures++
			delay := backoffDelay(failures)
			log.Printf("mpd: connect to %s failed, retrying in %s: %v", c.address, delay, err)
			c.emit(ctx, DisconnectedEvent{Err: err})
			if !sleepCtx(ctx, delay) {
				return ctx.Err()
			}
			continue
		}
		synced, err := c.session(ctx, cn)
		cn.close()
		c.drainRequests()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if synced {
			failures = 0
		}
		failures++
		delay := backoffDelay(failures)
		log.Printf("mpd: connection lost, retrying in %s: %v", delay, err)
		c.emit(ctx, DisconnectedEvent{Err: err})
		if !sleepCtx(ctx, delay) {
			return ctx.Err()
		}
	}
}

// session drives one connection from handshake to failure. The returned
// bool reports whether the initial resync completed, which resets the
// backoff counter.
func (c *Client) session(ctx context.Context, cn *conn) (bool, error) {
	c.emit(ctx, ConnectedEvent{Version: cn.version})
	c.connected.Store(true)
	defer c.connected.Store(false)
	if err := c.refetch(ctx, cn, Subsystems{Options: true, Player: true, Playlist: true}); err != nil {
		return false, fmt.Errorf("resync: %w", err)
	}
	if err := c.loop(ctx, cn); err != nil {
		return true, fmt.Errorf("while %s: %w", c.phase, err)
	}
	return true, nil
}

// loop alternates between the idle wait and request handling. Cancelling
// the idle wait always consumes the returned notification before the
// command is written, so a change raced against a keypress is refetched,
// never dropped.
func (c *Client) loop(ctx context.Context, cn *conn) error {
	idlec := make(chan idleResult, 1)
	for {
		c.phase = phaseIdle
		if err := cn.send(cmdIdle); err != nil {
			return err
		}
		go func() {
			lines, err := cn.readResponse()
			idlec <- idleResult{lines: lines, err: err}
		}()
		select {
		case res := <-idlec:
			if res.err != nil {
				return res.err
			}
			if err := c.refetch(ctx, cn, parseChanged(res.lines)); err != nil {
				return err
			}
		case req := <-c.requests:
			c.phase = phaseIssuing
			if err := cn.send(cmdNoidle); err != nil {
				return err
			}
			res := <-idlec
			if res.err != nil {
				return res.err
			}
			pending := parseChanged(res.lines)
			if req.cmd != nil {
				c.phase = phaseAwaiting
				if _, err := cn.exec(*req.cmd); err != nil {
					var derr *DaemonError
					if !errors.As(err, &derr) {
						return err
					}
					c.emit(ctx, CommandErrorEvent{Err: derr})
				}
			}
			if err := c.refetch(ctx, cn, pending.merge(req.refresh)); err != nil {
				return err
			}
		case <-ctx.Done():
			// Run closes the connection, which unblocks the
			// pending idle read.
			return ctx.Err()
		}
	}
}

// refetch re-queries the state covered by the changed subsystems and
// emits the results. Options and player changes refresh the status and
// current song; playlist changes refresh the whole queue.
func (c *Client) refetch(ctx context.Context, cn *conn, subs Subsystems) error {
	if subs.Options || subs.Player {
		lines, ok, err := c.query(ctx, cn, Cmd("status"))
		if err != nil {
			return err
		}
		if ok {
			st := parseStatus(lines)
			var song *Song
			if st.State != StateStopped {
				lines, ok, err = c.query(ctx, cn, Cmd("currentsong"))
				if err != nil {
					return err
				}
				if ok {
					song = parseSong(lines)
				}
			}
			c.emit(ctx, StatusEvent{Status: st, Song: song})
		}
	}
	if subs.Playlist {
		lines, ok, err := c.query(ctx, cn, Cmd("playlistinfo"))
		if err != nil {
			return err
		}
		if ok {
			c.emit(ctx, QueueEvent{Songs: parseSongs(lines)})
		}
	}
	return nil
}

// query round-trips one read command. Rejections are surfaced as events
// and reported via ok=false; only I/O failures are returned as errors.
func (c *Client) query(ctx context.Context, cn *conn, cmd Command) (lines []string, ok bool, err error) {
	lines, err = cn.exec(cmd)
	if err == nil {
		return lines, true, nil
	}
	var derr *DaemonError
	if errors.As(err, &derr) {
		c.emit(ctx, CommandErrorEvent{Err: derr})
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("%s: %w", cmd.Name(), err)
}

func (c *Client) emit(ctx context.Context, ev Event) {
	select {
	case c.events <- ev:
	case <-ctx.Done():
	}
}

func (c *Client) drainRequests() {
	for {
		select {
		case <-c.requests:
		default:
			return
		}
	}
}

// backoffDelay returns the reconnect delay after the given number of
// consecutive failures: one second, doubled per failure, capped.
func backoffDelay(failures int) time.Duration {
	delay := backoffBase
	for i := 1; i < failures; i++ {
		delay *= 2
		if delay >= backoffMax {
			return backoffMax
		}
	}
	return delay
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// ExecRaw dials the daemon, sends each command line as typed, and writes
// every response line verbatim to out, terminators included. It backs
// the raw-command mode, which exits without entering the UI.
func ExecRaw(ctx context.Context, address string, commands []string, out io.Writer) error {
	cn, err := dialConn(ctx, address)
	if err != nil {
		return err
	}
	defer cn.close()
	for _, command := range commands {
		lines, err := cn.execRaw(command)
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", firstWord(command), err)
		}
	}
	return nil
}
