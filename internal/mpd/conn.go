package mpd

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	dialTimeout     = 5 * time.Second
	greetingPrefix  = "OK MPD "
	responseOK      = "OK"
	responseAck     = "ACK "
	maxResponseLine = 1 << 20
)

// conn is a handshaken protocol connection. It is owned by a single
// goroutine at a time; the only concurrent call allowed is Close, which
// unblocks a pending read.
type conn struct {
	nc      net.Conn
	r       *bufio.Reader
	version string
}

// dialConn connects, performs the greeting handshake, and returns the
// ready connection. The address is a host:port pair, or a socket path
// when it contains a slash.
func dialConn(ctx context.Context, address string) (*conn, error) {
	network := "tcp"
	if strings.ContainsRune(address, '/') {
		network = "unix"
	}
	d := net.Dialer{Timeout: dialTimeout}
	nc, err := d.DialContext(ctx, network, address)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	cn := &conn{nc: nc, r: bufio.NewReaderSize(nc, maxResponseLine)}
	greeting, err := cn.readLine()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("read greeting: %w", err)
	}
	if !strings.HasPrefix(greeting, greetingPrefix) {
		nc.Close()
		return nil, fmt.Errorf("unexpected greeting %q", greeting)
	}
	cn.version = strings.TrimPrefix(greeting, greetingPrefix)
	return cn, nil
}

func (cn *conn) close() error {
	return cn.nc.Close()
}

func (cn *conn) readLine() (string, error) {
	line, err := cn.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// send writes one command line without waiting for a response.
func (cn *conn) send(line string) error {
	if _, err := cn.nc.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("write %q: %w", firstWord(line), err)
	}
	return nil
}

// readResponse reads key/value lines until the success or rejection
// marker. A rejection is returned as a *DaemonError; the lines read
// before it are still returned. Any other error is an I/O failure.
func (cn *conn) readResponse() ([]string, error) {
	var lines []string
	for {
		line, err := cn.readLine()
		if err != nil {
			return lines, err
		}
		switch {
		case line == responseOK:
			return lines, nil
		case strings.HasPrefix(line, responseAck):
			return lines, parseAck(line)
		default:
			lines = append(lines, line)
		}
	}
}

// exec round-trips one command. Rejections come back as *DaemonError,
// I/O failures as plain errors.
func (cn *conn) exec(cmd Command) ([]string, error) {
	if err := cn.send(cmd.String()); err != nil {
		return nil, err
	}
	return cn.readResponse()
}

// execRaw round-trips one raw command line and returns every response
// line verbatim, terminator included. Only I/O failures are errors;
// rejections show up as the final ACK line.
func (cn *conn) execRaw(line string) ([]string, error) {
	if err := cn.send(line); err != nil {
		return nil, err
	}
	var lines []string
	for {
		l, err := cn.readLine()
		if err != nil {
			return lines, err
		}
		lines = append(lines, l)
		if l == responseOK || strings.HasPrefix(l, responseAck) {
			return lines, nil
		}
	}
}

// parseAck decodes a rejection line of the form
//
//	ACK [code@index] {command} message
//
// into a DaemonError. Malformed rejections keep the raw line as the
// message so nothing is silently dropped.
func parseAck(line string) *DaemonError {
	derr := &DaemonError{Message: strings.TrimPrefix(line, responseAck)}
	rest, ok := strings.CutPrefix(line, responseAck+"[")
	if !ok {
		return derr
	}
	codes, rest, ok := strings.Cut(rest, "] {")
	if !ok {
		return derr
	}
	cmd, msg, ok := strings.Cut(rest, "} ")
	if !ok {
		if cmd, msg, ok = strings.Cut(rest, "}"); !ok {
			return derr
		}
	}
	codeStr, idxStr, ok := strings.Cut(codes, "@")
	if !ok {
		return derr
	}
	code, err := strconv.Atoi(codeStr)
	if err != nil {
		return derr
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return derr
	}
	return &DaemonError{
		Code:         code,
		CommandIndex: idx,
		Command:      cmd,
		Message:      strings.TrimSpace(msg),
	}
}

func firstWord(line string) string {
	if i := strings.IndexByte(line, ' '); i >= 0 {
		return line[:i]
	}
	return line
}
