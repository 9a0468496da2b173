package state

import (
	"reflect"
	"testing"
	"time"

	"github.com/mpdash/mpdash/internal/config"
	"github.com/mpdash/mpdash/internal/mpd"
)

func testStore(opts ...func(*config.Config)) *Store {
	cfg := config.Default()
	cfg.JumpLines = 3
	cfg.SeekSecs = 5
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(cfg)
}

func withCycle(c *config.Config)      { c.Cycle = true }
func withClearQuery(c *config.Config) { c.ClearQueryOnPlay = true }

func threeSongs() []mpd.Song {
	return []mpd.Song{
		{File: "alpha.flac", Title: "Alpha", Artist: "Ann", Duration: 3 * time.Minute},
		{File: "beta.flac", Title: "Beta", Artist: "Bob", Duration: 2 * time.Minute},
		{File: "gamma.flac", Title: "Gamma", Artist: "Gil", Duration: 4 * time.Minute},
	}
}

func playingAt(pos int) mpd.Status {
	return mpd.Status{
		State:    mpd.StatePlaying,
		Song:     pos,
		Elapsed:  30 * time.Second,
		Duration: 3 * time.Minute,
		QueueLen: 3,
	}
}

func TestStore_ApplyStatusClearsSongWhenStopped(t *testing.T) {
	s := testStore()
	song := &mpd.Song{File: "alpha.flac"}

	s.ApplyStatus(playingAt(0), song)
	if s.Snapshot().Song != song {
		t.Fatal("Song = nil, want the playing song")
	}

	s.ApplyStatus(mpd.Status{State: mpd.StateStopped, Song: -1}, song)
	if s.Snapshot().Song != nil {
		t.Fatalf("Song = %+v, want nil after stop", s.Snapshot().Song)
	}
}

func TestStore_ApplyQueueSelectsPlayingSong(t *testing.T) {
	s := testStore()
	s.ApplyStatus(playingAt(1), &mpd.Song{File: "beta.flac"})
	s.ApplyQueue(threeSongs())

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Filtered, []int{0, 1, 2}) {
		t.Fatalf("Filtered = %v, want [0 1 2]", snap.Filtered)
	}
	if snap.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", snap.Selected)
	}
}

func TestStore_CursorClampsAtEnds(t *testing.T) {
	s := testStore()
	s.ApplyQueue(threeSongs())

	s.MoveTop()
	s.MoveUp()
	if got := s.Snapshot().Selected; got != 0 {
		t.Fatalf("Selected = %d, want 0 after moving up at the top", got)
	}

	s.MoveBottom()
	s.MoveDown()
	if got := s.Snapshot().Selected; got != 2 {
		t.Fatalf("Selected = %d, want 2 after moving down at the bottom", got)
	}

	s.JumpDown()
	if got := s.Snapshot().Selected; got != 2 {
		t.Fatalf("Selected = %d, want 2 after jumping past the end", got)
	}
	s.MoveTop()
	s.JumpUp()
	if got := s.Snapshot().Selected; got != 0 {
		t.Fatalf("Selected = %d, want 0 after jumping past the start", got)
	}
}

func TestStore_CursorWrapsWhenCycling(t *testing.T) {
	s := testStore(withCycle)
	s.ApplyQueue(threeSongs())

	s.MoveBottom()
	s.MoveDown()
	if got := s.Snapshot().Selected; got != 0 {
		t.Fatalf("Selected = %d, want 0 after wrapping forward", got)
	}

	s.MoveUp()
	if got := s.Snapshot().Selected; got != 2 {
		t.Fatalf("Selected = %d, want 2 after wrapping backward", got)
	}

	// Jumps wrap too: a jump of 3 in a queue of 3 lands where it started.
	s.MoveTop()
	s.JumpDown()
	if got := s.Snapshot().Selected; got != 0 {
		t.Fatalf("Selected = %d, want 0 after a full-cycle jump", got)
	}
}

func TestStore_FilterNarrowsView(t *testing.T) {
	s := testStore()
	s.ApplyQueue(threeSongs())

	s.StartSearch()
	for _, r := range "bet" {
		s.AppendQuery(r)
	}

	snap := s.Snapshot()
	if !snap.Searching {
		t.Fatal("Searching = false, want true")
	}
	if !reflect.DeepEqual(snap.Filtered, []int{1}) {
		t.Fatalf("Filtered = %v, want [1]", snap.Filtered)
	}
	if snap.Selected != 0 {
		t.Fatalf("Selected = %d, want 0 (the only row)", snap.Selected)
	}
	if pos := snap.Filtered[snap.Selected]; pos != 1 {
		t.Fatalf("cursor points at queue position %d, want 1", pos)
	}
}

func TestStore_QueryEditingKeepsCursorOnSong(t *testing.T) {
	s := testStore()
	s.ApplyQueue(threeSongs())
	s.MoveBottom() // Gamma, queue position 2

	s.StartSearch()
	s.AppendQuery('a') // Alpha, Beta, Gamma all match "a"
	snap := s.Snapshot()
	if pos := snap.Filtered[snap.Selected]; pos != 2 {
		t.Fatalf("cursor points at queue position %d, want still 2", pos)
	}

	s.AppendQuery('m') // only Gamma matches "am"
	snap = s.Snapshot()
	if !reflect.DeepEqual(snap.Filtered, []int{2}) {
		t.Fatalf("Filtered = %v, want [2]", snap.Filtered)
	}
	if snap.Selected != 0 {
		t.Fatalf("Selected = %d, want 0", snap.Selected)
	}

	s.BackspaceQuery() // back to "a"
	snap = s.Snapshot()
	if pos := snap.Filtered[snap.Selected]; pos != 2 {
		t.Fatalf("cursor points at queue position %d, want still 2", pos)
	}
}

func TestStore_BackspaceRemovesWholeRune(t *testing.T) {
	s := testStore()
	s.ApplyQueue(threeSongs())
	s.StartSearch()
	s.AppendQuery('b')
	s.AppendQuery('é')
	s.BackspaceQuery()
	if got := s.Snapshot().Query; got != "b" {
		t.Fatalf("Query = %q, want %q", got, "b")
	}
}

func TestStore_SearchModeTransitions(t *testing.T) {
	s := testStore()
	s.ApplyQueue(threeSongs())

	s.StartSearch()
	s.AppendQuery('b')
	s.ConfirmSearch()
	snap := s.Snapshot()
	if snap.Searching {
		t.Fatal("Searching = true, want false after confirm")
	}
	if snap.Query != "b" {
		t.Fatalf("Query = %q, want it kept after confirm", snap.Query)
	}

	s.StartSearch()
	s.CancelSearch()
	snap = s.Snapshot()
	if snap.Searching {
		t.Fatal("Searching = true, want false after cancel")
	}
	if snap.Query != "" {
		t.Fatalf("Query = %q, want it dropped after cancel", snap.Query)
	}
	if !reflect.DeepEqual(snap.Filtered, []int{0, 1, 2}) {
		t.Fatalf("Filtered = %v, want the full queue back", snap.Filtered)
	}

	s.StartSearch()
	s.AppendQuery('x')
	s.ClearQuery()
	snap = s.Snapshot()
	if snap.Query != "" || !snap.Searching {
		t.Fatalf("Query = %q Searching = %v, want empty query still searching", snap.Query, snap.Searching)
	}
}

func TestStore_QueueUpdateRetargetsCursor(t *testing.T) {
	s := testStore()
	s.ApplyStatus(playingAt(0), &mpd.Song{File: "alpha.flac"})
	s.ApplyQueue(threeSongs())
	s.MoveBottom() // position 2

	// The selected position survives the update.
	s.ApplyQueue(threeSongs())
	if pos := s.Snapshot().Filtered[s.Snapshot().Selected]; pos != 2 {
		t.Fatalf("cursor points at queue position %d, want 2", pos)
	}

	// It does not survive a shrink; the cursor snaps to the playing song.
	s.ApplyQueue(threeSongs()[:2])
	snap := s.Snapshot()
	if pos := snap.Filtered[snap.Selected]; pos != 0 {
		t.Fatalf("cursor points at queue position %d, want the playing song at 0", pos)
	}

	// Without a playing song it clamps.
	s.ApplyStatus(mpd.Status{State: mpd.StateStopped, Song: -1}, nil)
	s.MoveBottom()
	s.ApplyQueue(threeSongs()[:1])
	snap = s.Snapshot()
	if snap.Selected != 0 {
		t.Fatalf("Selected = %d, want 0 after clamping", snap.Selected)
	}

	// An empty queue leaves nothing to select.
	s.ApplyQueue(nil)
	if got := s.Snapshot().Selected; got != -1 {
		t.Fatalf("Selected = %d, want -1 for an empty queue", got)
	}
}

func TestStore_OptionToggles(t *testing.T) {
	s := testStore()

	if got := s.ToggleRepeat().String(); got != "repeat 1" {
		t.Fatalf("ToggleRepeat = %q, want %q", got, "repeat 1")
	}
	if !s.Snapshot().Status.Repeat {
		t.Fatal("Repeat = false, want true after toggling on")
	}
	if got := s.ToggleRepeat().String(); got != "repeat 0" {
		t.Fatalf("ToggleRepeat = %q, want %q", got, "repeat 0")
	}

	if got := s.ToggleRandom().String(); got != "random 1" {
		t.Fatalf("ToggleRandom = %q, want %q", got, "random 1")
	}
	if got := s.ToggleConsume().String(); got != "consume 1" {
		t.Fatalf("ToggleConsume = %q, want %q", got, "consume 1")
	}
}

func TestStore_SingleAndOneshot(t *testing.T) {
	s := testStore()

	if got := s.ToggleSingle().String(); got != "single 1" {
		t.Fatalf("ToggleSingle = %q, want %q", got, "single 1")
	}
	if got := s.ToggleSingle().String(); got != "single 0" {
		t.Fatalf("ToggleSingle = %q, want %q", got, "single 0")
	}

	if got := s.ToggleOneshot().String(); got != "single oneshot" {
		t.Fatalf("ToggleOneshot = %q, want %q", got, "single oneshot")
	}
	st := s.Snapshot().Status
	if !st.Oneshot || st.Single {
		t.Fatalf("Single/Oneshot = %v/%v, want oneshot only", st.Single, st.Oneshot)
	}
	if got := s.ToggleOneshot().String(); got != "single 0" {
		t.Fatalf("ToggleOneshot = %q, want %q", got, "single 0")
	}

	// Turning single on while in oneshot leaves oneshot.
	s.ToggleOneshot()
	if got := s.ToggleSingle().String(); got != "single 1" {
		t.Fatalf("ToggleSingle = %q, want %q", got, "single 1")
	}
	st = s.Snapshot().Status
	if !st.Single || st.Oneshot {
		t.Fatalf("Single/Oneshot = %v/%v, want single only", st.Single, st.Oneshot)
	}
}

func TestStore_TogglePause(t *testing.T) {
	s := testStore()

	if got := s.TogglePause().String(); got != "play" {
		t.Fatalf("TogglePause = %q, want %q while stopped", got, "play")
	}
	if got := s.Snapshot().Status.State; got != mpd.StateStopped {
		t.Fatalf("State = %v, want still stopped until the daemon answers", got)
	}

	s.ApplyStatus(playingAt(0), &mpd.Song{File: "alpha.flac"})
	if got := s.TogglePause().String(); got != "pause" {
		t.Fatalf("TogglePause = %q, want %q", got, "pause")
	}
	if got := s.Snapshot().Status.State; got != mpd.StatePaused {
		t.Fatalf("State = %v, want paused", got)
	}
	s.TogglePause()
	if got := s.Snapshot().Status.State; got != mpd.StatePlaying {
		t.Fatalf("State = %v, want playing again", got)
	}
}

func TestStore_StopClearsCurrentSong(t *testing.T) {
	s := testStore()
	s.ApplyStatus(playingAt(1), &mpd.Song{File: "beta.flac"})

	if got := s.Stop().String(); got != "stop" {
		t.Fatalf("Stop = %q, want %q", got, "stop")
	}
	snap := s.Snapshot()
	if snap.Song != nil {
		t.Fatalf("Song = %+v, want nil", snap.Song)
	}
	if snap.Status.State != mpd.StateStopped || snap.Status.Song != -1 {
		t.Fatalf("Status = %+v, want stopped with no song", snap.Status)
	}
}

func TestStore_SeekClampsElapsed(t *testing.T) {
	s := testStore()
	st := playingAt(0)
	st.Elapsed = st.Duration - 2*time.Second
	s.ApplyStatus(st, &mpd.Song{File: "alpha.flac"})

	if got := s.SeekForward().String(); got != "seekcur +5" {
		t.Fatalf("SeekForward = %q, want %q", got, "seekcur +5")
	}
	if got := s.Snapshot().Status.Elapsed; got != st.Duration {
		t.Fatalf("Elapsed = %v, want clamped to %v", got, st.Duration)
	}

	st.Elapsed = 2 * time.Second
	s.ApplyStatus(st, &mpd.Song{File: "alpha.flac"})
	if got := s.SeekBackward().String(); got != "seekcur -5" {
		t.Fatalf("SeekBackward = %q, want %q", got, "seekcur -5")
	}
	if got := s.Snapshot().Status.Elapsed; got != 0 {
		t.Fatalf("Elapsed = %v, want 0", got)
	}
}

func TestStore_PlaySelected(t *testing.T) {
	s := testStore()
	_, ok := s.PlaySelected()
	if ok {
		t.Fatal("PlaySelected = ok, want false with nothing selected")
	}

	s.ApplyQueue(threeSongs())
	s.MoveBottom()
	cmd, ok := s.PlaySelected()
	if !ok {
		t.Fatal("PlaySelected not ok, want a command")
	}
	if got := cmd.String(); got != "play 2" {
		t.Fatalf("PlaySelected = %q, want %q", got, "play 2")
	}
}

func TestStore_PlaySelectedClearsQuery(t *testing.T) {
	s := testStore(withClearQuery)
	s.ApplyQueue(threeSongs())
	s.StartSearch()
	s.AppendQuery('m') // Gamma only
	s.ConfirmSearch()

	cmd, ok := s.PlaySelected()
	if !ok || cmd.String() != "play 2" {
		t.Fatalf("PlaySelected = %q/%v, want play 2", cmd.String(), ok)
	}
	snap := s.Snapshot()
	if snap.Query != "" {
		t.Fatalf("Query = %q, want it cleared", snap.Query)
	}
	if pos := snap.Filtered[snap.Selected]; pos != 2 {
		t.Fatalf("cursor points at queue position %d, want the played song at 2", pos)
	}
}

func TestStore_SelectPlaying(t *testing.T) {
	s := testStore()
	s.ApplyStatus(playingAt(1), &mpd.Song{File: "beta.flac"})
	s.ApplyQueue(threeSongs())
	s.MoveBottom()

	s.SelectPlaying()
	snap := s.Snapshot()
	if pos := snap.Filtered[snap.Selected]; pos != 1 {
		t.Fatalf("cursor points at queue position %d, want the playing song at 1", pos)
	}

	// Playing song filtered out: the cursor stays put.
	s.StartSearch()
	s.AppendQuery('m')
	s.ConfirmSearch()
	s.SelectPlaying()
	snap = s.Snapshot()
	if !reflect.DeepEqual(snap.Filtered, []int{2}) || snap.Selected != 0 {
		t.Fatalf("Filtered/Selected = %v/%d, want [2]/0", snap.Filtered, snap.Selected)
	}
}
