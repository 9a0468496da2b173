package mpd

import (
	"strconv"
	"strings"
)

// Command is a single protocol command with its arguments. Arguments are
// quoted on the wire when they contain characters the protocol treats
// specially.
type Command struct {
	name string
	args []string
}

// Cmd builds a command from a name and pre-rendered arguments.
func Cmd(name string, args ...string) Command {
	return Command{name: name, args: args}
}

// Name returns the command name without arguments.
func (c Command) Name() string {
	return c.name
}

// String renders the command as a single protocol line, without the
// trailing newline.
func (c Command) String() string {
	if len(c.args) == 0 {
		return c.name
	}
	parts := make([]string, 0, len(c.args)+1)
	parts = append(parts, c.name)
	for _, arg := range c.args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

// quoteArg wraps an argument in double quotes when needed, escaping
// backslashes and quotes per the protocol grammar.
func quoteArg(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\"'\\") {
		return arg
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(arg); i++ {
		if arg[i] == '"' || arg[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(arg[i])
	}
	b.WriteByte('"')
	return b.String()
}

// Commands the dashboard issues. Toggles take their argument from the
// store, which knows the state being toggled away from.

// PlayCmd starts playback of the song at a queue position.
func PlayCmd(pos int) Command {
	return Cmd("play", strconv.Itoa(pos))
}

// ResumeCmd resumes playback of the current song.
func ResumeCmd() Command { return Cmd("play") }

// PauseCmd toggles between playing and paused.
func PauseCmd() Command { return Cmd("pause") }

// StopCmd stops playback.
func StopCmd() Command { return Cmd("stop") }

// NextCmd skips to the next song.
func NextCmd() Command { return Cmd("next") }

// PreviousCmd skips to the previous song.
func PreviousCmd() Command { return Cmd("previous") }

// SeekCmd seeks within the current song, relative to the play position.
func SeekCmd(secs float64) Command {
	arg := strconv.FormatFloat(secs, 'f', -1, 64)
	if secs >= 0 {
		arg = "+" + arg
	}
	return Cmd("seekcur", arg)
}

// RepeatCmd sets repeat mode.
func RepeatCmd(on bool) Command { return Cmd("repeat", boolArg(on)) }

// RandomCmd sets random mode.
func RandomCmd(on bool) Command { return Cmd("random", boolArg(on)) }

// SingleCmd sets single mode.
func SingleCmd(on bool) Command { return Cmd("single", boolArg(on)) }

// OneshotCmd sets or clears single-oneshot mode.
func OneshotCmd(on bool) Command {
	if on {
		return Cmd("single", "oneshot")
	}
	return Cmd("single", "0")
}

// ConsumeCmd sets consume mode.
func ConsumeCmd(on bool) Command { return Cmd("consume", boolArg(on)) }

func boolArg(on bool) string {
	if on {
		return "1"
	}
	return "0"
}
