package state

import (
	"slices"
	"time"
	"unicode/utf8"

	"github.com/mpdash/mpdash/internal/config"
	"github.com/mpdash/mpdash/internal/mpd"
	"github.com/mpdash/mpdash/internal/search"
)

// Snapshot is the view of the store a single render consumes.
type Snapshot struct {
	Status    mpd.Status
	Song      *mpd.Song // nil while stopped
	Queue     []mpd.Song
	Filtered  []int // queue positions surviving the query, ascending
	Selected  int   // index into Filtered, -1 when the view is empty
	Query     string
	Searching bool
}

// Store holds everything the screen is drawn from: the daemon's status
// and queue, the search query with its filtered view, and the cursor.
// It is owned by the update loop and must only be touched from there;
// daemon updates arrive as events, not as concurrent calls.
//
// Key handlers apply their effect locally and return the command to
// send, so the screen reacts immediately and the daemon's notification
// later confirms or corrects it.
type Store struct {
	status mpd.Status
	song   *mpd.Song
	queue  []mpd.Song
	docs   []search.Document

	query     string
	searching bool
	filtered  []int
	selected  int

	fields           search.Fields
	cycle            bool
	jumpLines        int
	seekSecs         float64
	clearQueryOnPlay bool
}

// New returns an empty store carrying the configured behavior knobs.
func New(cfg config.Config) *Store {
	return &Store{
		status:           mpd.Status{Song: -1},
		selected:         -1,
		fields:           cfg.SearchFields,
		cycle:            cfg.Cycle,
		jumpLines:        cfg.JumpLines,
		seekSecs:         cfg.SeekSecs,
		clearQueryOnPlay: cfg.ClearQueryOnPlay,
	}
}

// Snapshot returns the current view. The slices are shared with the
// store; the renderer only reads them.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Status:    s.status,
		Song:      s.song,
		Queue:     s.queue,
		Filtered:  s.filtered,
		Selected:  s.selected,
		Query:     s.query,
		Searching: s.searching,
	}
}

// ApplyStatus records a status fetched from the daemon. The current
// song is cleared whenever playback is stopped, whatever the daemon
// sent along.
func (s *Store) ApplyStatus(st mpd.Status, song *mpd.Song) {
	s.status = st
	if st.State == mpd.StateStopped {
		song = nil
	}
	s.song = song
}

// ApplyQueue replaces the queue and rebuilds the filtered view. The
// cursor stays on the song it pointed at when that song survived the
// update, snaps to the playing song otherwise, and clamps as a last
// resort.
func (s *Store) ApplyQueue(songs []mpd.Song) {
	prev := s.selectedPosition()
	s.queue = songs
	s.docs = search.NewDocuments(songs)
	s.refilter()
	s.reselect(prev)
}

// selectedPosition resolves the cursor to a queue position, -1 when
// nothing is selected.
func (s *Store) selectedPosition() int {
	if s.selected < 0 || s.selected >= len(s.filtered) {
		return -1
	}
	return s.filtered[s.selected]
}

func (s *Store) refilter() {
	s.filtered = search.FilterDocs(s.docs, s.query, s.fields)
}

func (s *Store) reselect(prev int) {
	if len(s.filtered) == 0 {
		s.selected = -1
		return
	}
	if prev >= 0 {
		if i := slices.Index(s.filtered, prev); i >= 0 {
			s.selected = i
			return
		}
	}
	if s.status.Song >= 0 {
		if i := slices.Index(s.filtered, s.status.Song); i >= 0 {
			s.selected = i
			return
		}
	}
	s.selected = clamp(s.selected, 0, len(s.filtered)-1)
}

// Cursor movement. Deltas wrap around when cycling is on and clamp to
// the ends otherwise.

func (s *Store) MoveDown() { s.move(1) }
func (s *Store) MoveUp()   { s.move(-1) }
func (s *Store) JumpDown() { s.move(s.jumpLines) }
func (s *Store) JumpUp()   { s.move(-s.jumpLines) }

func (s *Store) MoveTop() {
	if len(s.filtered) > 0 {
		s.selected = 0
	}
}

func (s *Store) MoveBottom() {
	if len(s.filtered) > 0 {
		s.selected = len(s.filtered) - 1
	}
}

func (s *Store) move(delta int) {
	n := len(s.filtered)
	if n == 0 {
		s.selected = -1
		return
	}
	if s.selected < 0 {
		s.selected = 0
		return
	}
	if s.cycle {
		s.selected = ((s.selected+delta)%n + n) % n
		return
	}
	s.selected = clamp(s.selected+delta, 0, n-1)
}

// SelectPlaying snaps the cursor to the playing song if it is visible
// in the filtered view.
func (s *Store) SelectPlaying() {
	if s.status.Song < 0 {
		return
	}
	if i := slices.Index(s.filtered, s.status.Song); i >= 0 {
		s.selected = i
	}
}

// Search editing. Every query change rebuilds the filtered view and
// re-targets the cursor the same way a queue update does.

func (s *Store) StartSearch() { s.searching = true }

// ConfirmSearch leaves search mode keeping the query and its filter.
func (s *Store) ConfirmSearch() { s.searching = false }

// CancelSearch leaves search mode and drops the query.
func (s *Store) CancelSearch() {
	s.searching = false
	s.setQuery("")
}

func (s *Store) AppendQuery(r rune) {
	s.setQuery(s.query + string(r))
}

func (s *Store) BackspaceQuery() {
	if s.query == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.query)
	s.setQuery(s.query[:len(s.query)-size])
}

func (s *Store) ClearQuery() { s.setQuery("") }

func (s *Store) setQuery(q string) {
	if s.query == q {
		return
	}
	prev := s.selectedPosition()
	s.query = q
	s.refilter()
	s.reselect(prev)
}

// Playback controls. Each applies the expected outcome locally and
// returns the command to send.

func (s *Store) ToggleRepeat() mpd.Command {
	s.status.Repeat = !s.status.Repeat
	return mpd.RepeatCmd(s.status.Repeat)
}

func (s *Store) ToggleRandom() mpd.Command {
	s.status.Random = !s.status.Random
	return mpd.RandomCmd(s.status.Random)
}

func (s *Store) ToggleSingle() mpd.Command {
	s.status.Single = !s.status.Single
	if s.status.Single {
		s.status.Oneshot = false
	}
	return mpd.SingleCmd(s.status.Single)
}

// ToggleOneshot switches between oneshot and off; leaving single mode
// entirely goes through ToggleSingle.
func (s *Store) ToggleOneshot() mpd.Command {
	s.status.Oneshot = !s.status.Oneshot
	if s.status.Oneshot {
		s.status.Single = false
	}
	return mpd.OneshotCmd(s.status.Oneshot)
}

func (s *Store) ToggleConsume() mpd.Command {
	s.status.Consume = !s.status.Consume
	return mpd.ConsumeCmd(s.status.Consume)
}

// TogglePause resumes playback when stopped. The local state only flips
// between playing and paused; starting from stop waits for the daemon
// to report which song it picked.
func (s *Store) TogglePause() mpd.Command {
	switch s.status.State {
	case mpd.StateStopped:
		return mpd.ResumeCmd()
	case mpd.StatePlaying:
		s.status.State = mpd.StatePaused
	case mpd.StatePaused:
		s.status.State = mpd.StatePlaying
	}
	return mpd.PauseCmd()
}

func (s *Store) Stop() mpd.Command {
	s.status.State = mpd.StateStopped
	s.status.Song = -1
	s.status.Elapsed = 0
	s.status.Duration = 0
	s.song = nil
	return mpd.StopCmd()
}

func (s *Store) Next() mpd.Command     { return mpd.NextCmd() }
func (s *Store) Previous() mpd.Command { return mpd.PreviousCmd() }

func (s *Store) SeekForward() mpd.Command {
	s.nudgeElapsed(s.seekSecs)
	return mpd.SeekCmd(s.seekSecs)
}

func (s *Store) SeekBackward() mpd.Command {
	s.nudgeElapsed(-s.seekSecs)
	return mpd.SeekCmd(-s.seekSecs)
}

func (s *Store) nudgeElapsed(secs float64) {
	if s.song == nil {
		return
	}
	elapsed := s.status.Elapsed + time.Duration(secs*float64(time.Second))
	if elapsed < 0 {
		elapsed = 0
	}
	if s.status.Duration > 0 && elapsed > s.status.Duration {
		elapsed = s.status.Duration
	}
	s.status.Elapsed = elapsed
}

// PlaySelected resolves the cursor to a queue position and returns the
// play command for it. With clear_query_on_play set the query is
// dropped afterwards, leaving the cursor on the song just played.
func (s *Store) PlaySelected() (mpd.Command, bool) {
	pos := s.selectedPosition()
	if pos < 0 {
		return mpd.Command{}, false
	}
	if s.clearQueryOnPlay && s.query != "" {
		s.query = ""
		s.refilter()
		s.reselect(pos)
	}
	return mpd.PlayCmd(pos), true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
