package mpd

import (
	"errors"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Status
	}{
		{
			name: "playing",
			lines: []string{
				"repeat: 1",
				"random: 0",
				"single: 0",
				"consume: 1",
				"playlistlength: 12",
				"state: play",
				"song: 3",
				"elapsed: 65.382",
				"duration: 241.011",
			},
			want: Status{
				Repeat:   true,
				Consume:  true,
				State:    StatePlaying,
				Song:     3,
				Elapsed:  65 * time.Second,
				Duration: 241 * time.Second,
				QueueLen: 12,
			},
		},
		{
			name: "paused oneshot",
			lines: []string{
				"single: oneshot",
				"state: pause",
				"song: 0",
				"elapsed: 1.7",
			},
			want: Status{
				Oneshot: true,
				State:   StatePaused,
				Song:    0,
				Elapsed: 2 * time.Second,
			},
		},
		{
			name: "stopped",
			lines: []string{
				"repeat: 0",
				"state: stop",
				"playlistlength: 4",
			},
			want: Status{State: StateStopped, Song: -1, QueueLen: 4},
		},
		{
			name: "song position without elapsed is ignored",
			lines: []string{
				"state: play",
				"song: 7",
			},
			want: Status{State: StatePlaying, Song: -1},
		},
		{
			name: "malformed values are skipped",
			lines: []string{
				"state: play",
				"song: eleven",
				"elapsed: soon",
				"playlistlength: many",
				"garbage line",
			},
			want: Status{State: StatePlaying, Song: -1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseStatus(tt.lines); got != tt.want {
				t.Fatalf("parseStatus = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseSongs(t *testing.T) {
	lines := []string{
		"file: music/a.flac",
		"Title: Alpha",
		"Artist: Ann",
		"Album: First",
		"Time: 181",
		"file: music/b.ogg",
		"duration: 92.41",
		"Title: Beta",
		"file: stream/no-tags",
	}
	songs := parseSongs(lines)
	want := []Song{
		{File: "music/a.flac", Title: "Alpha", Artist: "Ann", Album: "First", Duration: 181 * time.Second},
		{File: "music/b.ogg", Title: "Beta", Duration: 92 * time.Second},
		{File: "stream/no-tags"},
	}
	if len(songs) != len(want) {
		t.Fatalf("parseSongs returned %d songs, want %d", len(songs), len(want))
	}
	for i := range want {
		if songs[i] != want[i] {
			t.Fatalf("song %d = %+v, want %+v", i, songs[i], want[i])
		}
	}
}

func TestParseSongs_KeysBeforeFirstFileAreDropped(t *testing.T) {
	songs := parseSongs([]string{"Title: Orphan", "file: x"})
	if len(songs) != 1 || songs[0].Title != "" {
		t.Fatalf("parseSongs = %+v, want one untitled song", songs)
	}
}

func TestParseSong(t *testing.T) {
	if song := parseSong(nil); song != nil {
		t.Fatalf("parseSong(nil) = %+v, want nil", song)
	}
	song := parseSong([]string{"file: music/a.flac", "Title: Alpha"})
	if song == nil || song.Title != "Alpha" {
		t.Fatalf("parseSong = %+v, want Alpha", song)
	}
}

func TestParseChanged(t *testing.T) {
	subs := parseChanged([]string{"changed: player", "changed: playlist"})
	if !subs.Player || !subs.Playlist || subs.Options {
		t.Fatalf("parseChanged = %+v, want player+playlist", subs)
	}
	if parseChanged(nil).any() {
		t.Fatalf("parseChanged(nil) should report no subsystems")
	}
	if !parseChanged([]string{"changed: options"}).Options {
		t.Fatalf("parseChanged should report options")
	}
}

func TestParseAck(t *testing.T) {
	err := parseAck(`ACK [50@0] {play} Bad song index`)
	if err.Code != 50 || err.CommandIndex != 0 || err.Command != "play" || err.Message != "Bad song index" {
		t.Fatalf("parseAck = %+v", err)
	}
	if got := err.Error(); got != "play: Bad song index (error 50)" {
		t.Fatalf("Error() = %q", got)
	}

	var derr *DaemonError
	if !errors.As(error(err), &derr) {
		t.Fatalf("parseAck result should be a *DaemonError")
	}

	// Malformed rejections keep the raw text.
	err = parseAck("ACK something odd")
	if err.Message != "something odd" || err.Code != 0 {
		t.Fatalf("parseAck fallback = %+v", err)
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{PlayCmd(7), "play 7"},
		{ResumeCmd(), "play"},
		{PauseCmd(), "pause"},
		{StopCmd(), "stop"},
		{SeekCmd(5), "seekcur +5"},
		{SeekCmd(-5), "seekcur -5"},
		{SeekCmd(2.5), "seekcur +2.5"},
		{RepeatCmd(true), "repeat 1"},
		{RandomCmd(false), "random 0"},
		{SingleCmd(true), "single 1"},
		{OneshotCmd(true), "single oneshot"},
		{OneshotCmd(false), "single 0"},
		{ConsumeCmd(true), "consume 1"},
		{Cmd("find", "artist", "Ann Lee"), `find artist "Ann Lee"`},
		{Cmd("find", "title", `say "no"`), `find title "say \"no\""`},
		{Cmd("add", ""), `add ""`},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Fatalf("Command.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseSeconds(t *testing.T) {
	if d, ok := parseSeconds("180.578"); !ok || d != 181*time.Second {
		t.Fatalf("parseSeconds(180.578) = %v, %v", d, ok)
	}
	if _, ok := parseSeconds("-3"); ok {
		t.Fatalf("parseSeconds should reject negatives")
	}
	if _, ok := parseSeconds("later"); ok {
		t.Fatalf("parseSeconds should reject non-numbers")
	}
}

func TestBackoffDelay(t *testing.T) {
	want := []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}
	for i, w := range want {
		if got := backoffDelay(i + 1); got != w {
			t.Fatalf("backoffDelay(%d) = %s, want %s", i+1, got, w)
		}
	}
}
