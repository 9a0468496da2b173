package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mpdash/mpdash/internal/config"
	"github.com/mpdash/mpdash/internal/mpd"
	"github.com/mpdash/mpdash/internal/state"
)

// noticeFor is how long a transient status-line message stays visible.
const noticeFor = 5 * time.Second

// noticeStyle renders transient status-line messages.
var noticeStyle = styleState{fg: config.Indexed(9), bold: true}

// Options configures the UI.
type Options struct {
	Client *mpd.Client
	Store  *state.Store
	Config config.Config
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	client *mpd.Client
	store  *state.Store
	layout config.Widget
	keys   keyMap
	tick   time.Duration

	// Terminal state
	width  int
	height int
	ready  bool

	// Queue scroll state, reconciled against the selection after every
	// update so the selected row stays in view.
	queueScroll int
	queueHeight int

	// Transient status-line message
	notice      string
	noticeUntil time.Time
}

// New creates the root model.
func New(opts Options) Model {
	ups := opts.Config.UPS
	if ups <= 0 {
		ups = 1
	}
	return Model{
		client: opts.Client,
		store:  opts.Store,
		layout: opts.Config.Layout,
		keys:   DefaultKeyMap(),
		tick:   time.Duration(float64(time.Second) / ups),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.tick),
		listenCmd(m.client),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.reconcileScroll()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelDown:
				m.store.MoveDown()
			case tea.MouseButtonWheelUp:
				m.store.MoveUp()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.queueHeight = queueArea(&m.layout, m.width, m.height)
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case eventMsg:
		return m.handleEvent(msg.event)
	}

	return m, nil
}

// handleKey processes keyboard input. While the search prompt is open,
// printable keys edit the query; Enter keeps it and leaves the prompt,
// Esc discards it.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.store.Snapshot().Searching {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlQ:
			return m, tea.Quit
		}
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	// Selection
	case key.Matches(msg, m.keys.Down):
		m.store.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.store.MoveUp()
	case key.Matches(msg, m.keys.JumpDown):
		m.store.JumpDown()
	case key.Matches(msg, m.keys.JumpUp):
		m.store.JumpUp()
	case key.Matches(msg, m.keys.Top):
		m.store.MoveTop()
	case key.Matches(msg, m.keys.Bottom):
		m.store.MoveBottom()
	case key.Matches(msg, m.keys.Reselect):
		m.store.SelectPlaying()

	// Search
	case key.Matches(msg, m.keys.Search):
		m.store.StartSearch()
	case key.Matches(msg, m.keys.ExitSearch):
		m.store.CancelSearch()
	case key.Matches(msg, m.keys.ClearQuery):
		m.store.ClearQuery()

	// Playback
	case key.Matches(msg, m.keys.Play):
		if cmd, ok := m.store.PlaySelected(); ok {
			m.issue(cmd)
		}
	case key.Matches(msg, m.keys.Pause):
		m.issue(m.store.TogglePause())
	case key.Matches(msg, m.keys.Stop):
		m.issue(m.store.Stop())
	case key.Matches(msg, m.keys.Next):
		m.issue(m.store.Next())
	case key.Matches(msg, m.keys.Previous):
		m.issue(m.store.Previous())
	case key.Matches(msg, m.keys.SeekForward):
		m.issue(m.store.SeekForward())
	case key.Matches(msg, m.keys.SeekBack):
		m.issue(m.store.SeekBackward())

	// Modes
	case key.Matches(msg, m.keys.Repeat):
		m.issue(m.store.ToggleRepeat())
	case key.Matches(msg, m.keys.Random):
		m.issue(m.store.ToggleRandom())
	case key.Matches(msg, m.keys.Single):
		m.issue(m.store.ToggleSingle())
	case key.Matches(msg, m.keys.Oneshot):
		m.issue(m.store.ToggleOneshot())
	case key.Matches(msg, m.keys.Consume):
		m.issue(m.store.ToggleConsume())
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.store.AppendQuery(r)
		}
	case tea.KeySpace:
		m.store.AppendQuery(' ')
	case tea.KeyBackspace:
		m.store.BackspaceQuery()
	case tea.KeyCtrlU:
		m.store.ClearQuery()
	case tea.KeyEnter:
		m.store.ConfirmSearch()
	case tea.KeyEsc:
		m.store.CancelSearch()
	}
	return m, nil
}

// handleTick refreshes playback progress between idle notifications and
// expires stale notices.
func (m Model) handleTick(now time.Time) (Model, tea.Cmd) {
	if m.notice != "" && now.After(m.noticeUntil) {
		m.notice = ""
	}
	// Busy or disconnected just means a refresh is already on the way.
	_ = m.client.RefreshStatus()
	return m, tickCmd(m.tick)
}

func (m Model) handleEvent(ev mpd.Event) (Model, tea.Cmd) {
	switch ev := ev.(type) {
	case mpd.ConnectedEvent:
		m.notice = ""
	case mpd.DisconnectedEvent:
		m.setNotice(fmt.Sprintf("daemon unreachable: %v", ev.Err))
	case mpd.StatusEvent:
		m.store.ApplyStatus(ev.Status, ev.Song)
	case mpd.QueueEvent:
		m.store.ApplyQueue(ev.Songs)
	case mpd.CommandErrorEvent:
		m.setNotice(ev.Err.Error())
	}
	return m, listenCmd(m.client)
}

// issue forwards a command to the daemon. Failures surface on the
// status line; the optimistic local change stands either way and the
// next status refresh reconciles it.
func (m *Model) issue(cmd mpd.Command) {
	if err := m.client.Send(cmd); err != nil {
		m.setNotice(err.Error())
	}
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeUntil = time.Now().Add(noticeFor)
}

func (m *Model) reconcileScroll() {
	if m.queueHeight <= 0 {
		m.queueScroll = 0
		return
	}
	snap := m.store.Snapshot()
	m.queueScroll = clampScroll(m.queueScroll, snap.Selected, len(snap.Filtered), m.queueHeight)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return ""
	}
	snap := m.store.Snapshot()
	lines := renderFrame(&m.layout, &snap, m.width, m.height, m.queueScroll)
	if m.notice != "" && len(lines) > 0 {
		lines[len(lines)-1] = fitLine(
			[]span{{text: m.notice, style: noticeStyle}},
			m.width, config.AlignLeft, styleState{},
		)
	}

	rows := make([]string, len(lines))
	for i, l := range lines {
		var b strings.Builder
		for _, s := range l {
			b.WriteString(s.style.render(s.text))
		}
		rows[i] = b.String()
	}
	return strings.Join(rows, "\n")
}

// Messages

type tickMsg time.Time

type eventMsg struct {
	event mpd.Event
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func listenCmd(c *mpd.Client) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-c.Events()
		if !ok {
			return nil
		}
		return eventMsg{event: ev}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Client == nil || opts.Store == nil {
		return fmt.Errorf("ui requires a client and a store")
	}
	p := tea.NewProgram(New(opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
