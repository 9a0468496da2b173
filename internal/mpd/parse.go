package mpd

import (
	"strconv"
	"strings"
	"time"
)

// splitPair cuts a "key: value" response line. The protocol puts exactly
// one space after the colon; values may contain further colons.
func splitPair(line string) (key, value string, ok bool) {
	return strings.Cut(line, ": ")
}

// parseStatus builds a Status from the lines of a status response.
// Malformed values are skipped rather than failed: the daemon is free to
// grow new keys and value forms, and a dashboard has nothing useful to do
// with a parse error mid-session.
func parseStatus(lines []string) Status {
	st := Status{Song: -1}
	song := -1
	var elapsed time.Duration
	haveElapsed := false
	for _, line := range lines {
		key, value, ok := splitPair(line)
		if !ok {
			continue
		}
		switch key {
		case "repeat":
			st.Repeat = value == "1"
		case "random":
			st.Random = value == "1"
		case "single":
			st.Single = value == "1"
			st.Oneshot = value == "oneshot"
		case "consume":
			st.Consume = value == "1"
		case "state":
			switch value {
			case "play":
				st.State = StatePlaying
			case "pause":
				st.State = StatePaused
			default:
				st.State = StateStopped
			}
		case "song":
			if n, err := strconv.Atoi(value); err == nil {
				song = n
			}
		case "elapsed":
			if d, ok := parseSeconds(value); ok {
				elapsed = d
				haveElapsed = true
			}
		case "duration":
			if d, ok := parseSeconds(value); ok {
				st.Duration = d
			}
		case "playlistlength":
			if n, err := strconv.Atoi(value); err == nil {
				st.QueueLen = n
			}
		}
	}
	// A playing position is only trustworthy when the daemon reported
	// both the position and an elapsed time.
	if song >= 0 && haveElapsed {
		st.Song = song
		st.Elapsed = elapsed
	}
	return st
}

// parseSongs builds the queue from a playlistinfo response. Entries are
// delimited by their file key, which the daemon always sends first.
func parseSongs(lines []string) []Song {
	var songs []Song
	var cur *Song
	for _, line := range lines {
		key, value, ok := splitPair(line)
		if !ok {
			continue
		}
		if key == "file" {
			songs = append(songs, Song{File: value})
			cur = &songs[len(songs)-1]
			continue
		}
		if cur == nil {
			continue
		}
		switch key {
		case "Title":
			cur.Title = value
		case "Artist":
			cur.Artist = value
		case "Album":
			cur.Album = value
		case "Time":
			if n, err := strconv.Atoi(value); err == nil {
				cur.Duration = time.Duration(n) * time.Second
			}
		case "duration":
			if d, ok := parseSeconds(value); ok {
				cur.Duration = d
			}
		}
	}
	return songs
}

// parseSong builds the current song from a currentsong response, or nil
// when the response is empty.
func parseSong(lines []string) *Song {
	songs := parseSongs(lines)
	if len(songs) == 0 {
		return nil
	}
	return &songs[0]
}

// parseChanged collects the subsystem names of an idle response.
func parseChanged(lines []string) Subsystems {
	var subs Subsystems
	for _, line := range lines {
		key, value, ok := splitPair(line)
		if !ok || key != "changed" {
			continue
		}
		switch value {
		case "options":
			subs.Options = true
		case "player":
			subs.Player = true
		case "playlist":
			subs.Playlist = true
		}
	}
	return subs
}

// parseSeconds converts the daemon's fractional-seconds values, rounding
// to the nearest second the way the dashboard displays them.
func parseSeconds(value string) (time.Duration, bool) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return time.Duration(f * float64(time.Second)).Round(time.Second), true
}
