package ui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/guorg/liveview/internal/state"
)

// Actions are the pipeline operations the UI can trigger.
type Actions interface {
	CycleModulus() int
	SwapPreset() string
	Clear()
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Actions   Actions
	ThemeName string
	Tick      time.Duration
	// SaveTheme persists the theme picked with the cycle key. Optional.
	SaveTheme func(name string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	store     *state.Store
	actions   Actions
	saveTheme func(string) error
	tick      time.Duration
	keys      keyMap

	theme  Theme
	width  int
	height int
	ready  bool

	snapshot    state.Snapshot
	lastUpdated time.Time
	status      string // feedback for the last action

	events   viewport.Model
	follow   bool
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	return Model{
		ctx:       ctx,
		store:     opts.Store,
		actions:   opts.Actions,
		saveTheme: opts.SaveTheme,
		tick:      tick,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.ThemeName),
		follow:    true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.events = viewport.New(msg.Width, m.eventsHeight())
		}
		m.ready = true
		m.events.Width = msg.Width
		m.events.Height = m.eventsHeight()
		m.updateEvents()
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(m.tick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.updateEvents()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.status = "theme " + m.theme.Name
		if m.saveTheme != nil {
			if err := m.saveTheme(m.theme.Name); err != nil {
				m.status = "theme not saved: " + err.Error()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleModulus):
		if m.actions != nil {
			m.status = "modulus " + strconv.Itoa(m.actions.CycleModulus())
		}
		return m, m.refreshNow()

	case key.Matches(msg, m.keys.SwapPreset):
		if m.actions != nil {
			m.status = "preset " + m.actions.SwapPreset()
		}
		return m, m.refreshNow()

	case key.Matches(msg, m.keys.Clear):
		if m.actions != nil {
			m.actions.Clear()
			m.status = "source cleared"
		}
		return m, m.refreshNow()

	case key.Matches(msg, m.keys.ToggleFollow):
		m.follow = !m.follow
		if m.follow {
			m.events.GotoBottom()
		}
		return m, nil
	}

	return m.handleScrollKey(msg)
}

func (m Model) handleScrollKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.events.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.events.ScrollDown(1)
	case key.Matches(msg, m.keys.Top):
		m.events.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.events.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.events.HalfPageUp()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.events.HalfPageDown()
	default:
		return m, nil
	}
	m.follow = m.events.AtBottom()
	return m, nil
}

func (m Model) refreshNow() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return fetchSnapshotCmd(m.store)
}

func (m *Model) updateEvents() {
	if !m.ready {
		return
	}
	m.events.SetContent(m.renderEvents())
	if m.follow {
		m.events.GotoBottom()
	}
}

// eventsHeight is what is left below the header, command bar, columns and
// the event log title.
func (m Model) eventsHeight() int {
	return max(m.height-3-columnsHeight(m.height), 1)
}

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderColumns())
	b.WriteString("\n")
	b.WriteString(m.renderEventsTitle())
	b.WriteString("\n")
	b.WriteString(m.events.View())
	return b.String()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
