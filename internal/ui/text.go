package ui

import (
	"fmt"
	"time"

	"github.com/mpdash/mpdash/internal/config"
	"github.com/mpdash/mpdash/internal/mpd"
	"github.com/mpdash/mpdash/internal/state"
)

// span is a run of text rendered under one resolved style.
type span struct {
	text  string
	style styleState
}

// rowContext carries the per-row bindings available inside a Queue
// column. Outside a Queue it stays zero: queue accessors yield nothing
// and queue conditions are false, though validation rejects such
// layouts before they ever reach the renderer.
type rowContext struct {
	song       *mpd.Song
	isCurrent  bool
	isSelected bool
}

// evalTexts folds a text expression into spans under the given style.
// Accessors whose subject is missing contribute nothing.
func evalTexts(t *config.Texts, snap *state.Snapshot, row rowContext, st styleState, out []span) []span {
	switch t.Kind {
	case config.TextsEmpty:
	case config.TextsLiteral:
		out = appendSpan(out, t.Str, st)
	case config.TextsCurrentElapsed:
		if snap.Status.Song >= 0 {
			out = appendSpan(out, formatClock(snap.Status.Elapsed), st)
		}
	case config.TextsCurrentDuration:
		if snap.Song != nil {
			out = appendSpan(out, formatClock(snap.Song.Duration), st)
		}
	case config.TextsCurrentFile:
		if snap.Song != nil {
			out = appendSpan(out, snap.Song.File, st)
		}
	case config.TextsCurrentTitle:
		if snap.Song != nil {
			out = appendSpan(out, snap.Song.Title, st)
		}
	case config.TextsCurrentArtist:
		if snap.Song != nil {
			out = appendSpan(out, snap.Song.Artist, st)
		}
	case config.TextsCurrentAlbum:
		if snap.Song != nil {
			out = appendSpan(out, snap.Song.Album, st)
		}
	case config.TextsQueueDuration:
		if row.song != nil {
			out = appendSpan(out, formatClock(row.song.Duration), st)
		}
	case config.TextsQueueFile:
		if row.song != nil {
			out = appendSpan(out, row.song.File, st)
		}
	case config.TextsQueueTitle:
		if row.song != nil {
			out = appendSpan(out, row.song.Title, st)
		}
	case config.TextsQueueArtist:
		if row.song != nil {
			out = appendSpan(out, row.song.Artist, st)
		}
	case config.TextsQueueAlbum:
		if row.song != nil {
			out = appendSpan(out, row.song.Album, st)
		}
	case config.TextsQuery:
		out = appendSpan(out, snap.Query, st)
	case config.TextsStyled:
		out = evalTexts(t.Body, snap, row, st.apply(t.Styles), out)
	case config.TextsParts:
		for i := range t.List {
			out = evalTexts(&t.List[i], snap, row, st, out)
		}
	case config.TextsIf:
		if evalCondition(t.Cond, snap, row) {
			out = evalTexts(t.Then, snap, row, st, out)
		} else if t.Else != nil {
			out = evalTexts(t.Else, snap, row, st, out)
		}
	}
	return out
}

func appendSpan(out []span, text string, st styleState) []span {
	if text == "" {
		return out
	}
	return append(out, span{text: text, style: st})
}

// evalCondition evaluates a condition tree against the snapshot and row
// context. Combinators evaluate both operands; the predicates are pure,
// so there is nothing to short-circuit.
func evalCondition(c *config.Condition, snap *state.Snapshot, row rowContext) bool {
	switch c.Kind {
	case config.CondRepeat:
		return snap.Status.Repeat
	case config.CondRandom:
		return snap.Status.Random
	case config.CondSingle:
		return snap.Status.Single
	case config.CondOneshot:
		return snap.Status.Oneshot
	case config.CondConsume:
		return snap.Status.Consume
	case config.CondPlaying:
		return snap.Status.State == mpd.StatePlaying
	case config.CondPaused:
		return snap.Status.State == mpd.StatePaused
	case config.CondStopped:
		return snap.Status.State == mpd.StateStopped
	case config.CondTitleExist:
		return snap.Song != nil && snap.Song.Title != ""
	case config.CondArtistExist:
		return snap.Song != nil && snap.Song.Artist != ""
	case config.CondAlbumExist:
		return snap.Song != nil && snap.Song.Album != ""
	case config.CondQueueCurrent:
		return row.isCurrent
	case config.CondQueueTitleExist:
		return row.song != nil && row.song.Title != ""
	case config.CondSelected:
		return row.isSelected
	case config.CondSearching:
		return snap.Searching
	case config.CondFiltered:
		return snap.Query != ""
	case config.CondNot:
		return !evalCondition(c.L, snap, row)
	case config.CondAnd:
		l := evalCondition(c.L, snap, row)
		r := evalCondition(c.R, snap, row)
		return l && r
	case config.CondOr:
		l := evalCondition(c.L, snap, row)
		r := evalCondition(c.R, snap, row)
		return l || r
	case config.CondXor:
		return evalCondition(c.L, snap, row) != evalCondition(c.R, snap, row)
	}
	return false
}

// formatClock renders a duration as m:ss, rounded to whole seconds.
func formatClock(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
