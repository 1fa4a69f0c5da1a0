// Package tui provides the Bubble Tea client: a hot-seat match where both
// players share one terminal, served locally or over SSH.
package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hexwar/internal/core"
	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/storage"
	"github.com/vovakirdan/hexwar/internal/world"
)

// maxLogLines is the number of recent events shown under the map.
const maxLogLines = 6

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	playerStyle = []lipgloss.Style{cellStyles[cellPlayer0], cellStyles[cellPlayer1]}
)

// Model is the Bubble Tea model for a hot-seat match. The map always shows
// the view of the player whose turn it is.
type Model struct {
	core     *core.Core
	views    []*core.Replica
	scenario string
	store    *storage.Store
	matchID  string

	cursor    hex.MapPos
	keys      KeyMap
	help      help.Model
	status    string
	statusErr bool
	statusSeq int
	log       []string

	width    int
	height   int
	gameOver bool
	saved    bool
	quitting bool
}

// NewModel creates a model for a core that has already been set up.
// store may be nil, in which case the match is not recorded.
func NewModel(c *core.Core, scenarioID string, store *storage.Store) Model {
	views := make([]*core.Replica, world.NumPlayers)
	for p := range views {
		views[p] = core.NewReplica(c, world.PlayerID(p))
		views[p].Sync()
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		core:     c,
		views:    views,
		scenario: scenarioID,
		store:    store,
		matchID:  storage.NewMatchID(),
		keys:     DefaultKeyMap(),
		help:     h,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.recordMatch(storage.EndQuit)
		m.quitting = true
		return m, tea.Quit
	case msg.String() == "ctrl+s":
		return m.setStatus(m.saveScreenshot())
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.gameOver {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Deselect):
		m.view().Deselect()
	case key.Matches(msg, m.keys.Create):
		return m.do(core.CommandCreateUnit{Pos: m.cursor})
	case key.Matches(msg, m.keys.EndTurn):
		for _, v := range m.views {
			v.Deselect()
		}
		return m.do(core.CommandEndTurn{})
	case key.Matches(msg, m.keys.Select):
		return m.activate()
	}
	return m, nil
}

func (m *Model) moveCursor(dx, dy int) {
	next := hex.P(m.cursor.X+dx, m.cursor.Y+dy)
	if m.core.MapSize().Contains(next) {
		m.cursor = next
	}
}

// view returns the replica of the player whose turn it is.
func (m Model) view() *core.Replica {
	return m.views[m.core.PlayerID()]
}

// activate interprets enter on the cursor tile: select an own unit,
// attack an enemy with the selection, or move the selection there.
func (m Model) activate() (tea.Model, tea.Cmd) {
	view := m.view()
	current := m.core.PlayerID()
	sel, hasSel := view.Selected()

	var own, enemy *world.Unit
	for _, u := range view.State().UnitsAt(m.cursor) {
		u := u
		if u.PlayerID == current {
			own = &u
		} else {
			enemy = &u
		}
	}

	switch {
	case own != nil && hasSel && own.ID == sel.ID:
		view.Deselect()
		return m, nil
	case own != nil:
		view.Select(own.ID)
		return m, nil
	case !hasSel:
		return m, nil
	case enemy != nil:
		return m.do(core.CommandAttackUnit{AttackerID: sel.ID, DefenderID: enemy.ID})
	default:
		path, ok := view.PathTo(m.cursor)
		if !ok {
			return m.setError(fmt.Errorf("%s cannot be reached", m.cursor))
		}
		return m.do(core.CommandMove{UnitID: sel.ID, Path: path})
	}
}

// do sends a command to the core and brings every view up to date.
func (m Model) do(cmd core.Command) (tea.Model, tea.Cmd) {
	actor := m.core.PlayerID()
	if err := m.core.DoCommand(cmd); err != nil {
		var rej *core.RejectedError
		if errors.As(err, &rej) {
			err = errors.New(rej.Reason)
		}
		return m.setError(err)
	}

	for p, v := range m.views {
		events := v.Sync()
		if world.PlayerID(p) != actor {
			continue
		}
		for _, e := range events {
			m.log = append(m.log, e.String())
		}
	}
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}

	if w, ok := m.core.Winner(); ok {
		m.gameOver = true
		m.recordMatch(storage.EndVictory)
		return m.setStatus(fmt.Sprintf("%s wins!", m.core.Players()[w].Name))
	}
	return m.setStatus(cmd.String())
}

func (m Model) setStatus(s string) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = s
	m.statusErr = false
	return m, clearStatusCmd(m.statusSeq)
}

func (m Model) setError(err error) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = err.Error()
	m.statusErr = true
	return m, clearStatusCmd(m.statusSeq)
}

// recordMatch saves the match summary once.
func (m *Model) recordMatch(reason string) {
	if m.saved || m.store == nil {
		return
	}
	m.saved = true
	winner := storage.NoWinner
	if w, ok := m.core.Winner(); ok {
		winner = int(w)
	}
	//nolint:errcheck // Best-effort save, the session ends regardless
	m.store.SaveMatch(storage.MatchRecord{
		MatchID:   m.matchID,
		Scenario:  m.scenario,
		Seed:      m.core.Seed(),
		Winner:    winner,
		Turns:     m.core.Turn(),
		Events:    m.core.EventCount(),
		EndReason: reason,
	})
}

func (m Model) mapView() MapView {
	view := m.view()
	v := MapView{
		State:  view.State(),
		Types:  m.core.ObjectTypes(),
		Size:   m.core.MapSize(),
		Cursor: m.cursor,
	}
	if sel, ok := view.Selected(); ok {
		v.Selected, v.HasSel = sel.ID, true
		v.Reach = make(map[hex.MapPos]bool)
		for _, pos := range view.Pathfinder().ReachableWithin(sel.MovePoints) {
			v.Reach[pos] = true
		}
	}
	return v
}

// saveScreenshot writes the current map to ~/.hexwar/screenshots.
func (m Model) saveScreenshot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshot failed: " + err.Error()
	}
	dir := filepath.Join(home, ".hexwar", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "screenshot failed: " + err.Error()
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.matchID, timestamp))
	if err := os.WriteFile(path, []byte(PlainMap(m.mapView())), 0o600); err != nil {
		return "screenshot failed: " + err.Error()
	}
	return "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	current := m.core.PlayerID()
	player := m.core.Players()[current]

	b.WriteString(titleStyle.Render(fmt.Sprintf("HEXWAR  %s  turn %d", m.scenario, m.core.Turn())))
	b.WriteString("  ")
	if m.gameOver {
		b.WriteString(okStyle.Render("game over"))
	} else {
		b.WriteString(playerStyle[current].Render(player.Name + " to move"))
	}
	b.WriteString("\n\n")

	b.WriteString(RenderMap(m.mapView()))
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render(m.describeCursor()))
	b.WriteString("\n")

	switch {
	case m.status == "":
		b.WriteString("\n")
	case m.statusErr:
		b.WriteString(errorStyle.Render(m.status) + "\n")
	default:
		b.WriteString(okStyle.Render(m.status) + "\n")
	}

	for _, line := range m.log {
		b.WriteString(infoStyle.Render("  "+line) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// describeCursor summarizes the selection and the tile under the cursor.
func (m Model) describeCursor() string {
	view := m.view()
	types := m.core.ObjectTypes()
	parts := []string{"cursor " + m.cursor.String()}

	for _, u := range view.State().UnitsAt(m.cursor) {
		parts = append(parts, fmt.Sprintf("%s #%d of %s", types.UnitType(u.TypeID).Name, u.ID, m.core.Players()[u.PlayerID].Name))
	}
	if sel, ok := view.Selected(); ok {
		t := types.UnitType(sel.TypeID)
		w := types.WeaponType(t.WeaponTypeID)
		parts = append(parts, fmt.Sprintf("selected %s #%d mp %d/%d %s range %d",
			t.Name, sel.ID, sel.MovePoints, t.MovePoints, w.Name, w.MaxDistance))
		if sel.Attacked {
			parts = append(parts, "attacked")
		}
	}
	return strings.Join(parts, " | ")
}

// GameOver returns true once a player has won.
func (m Model) GameOver() bool {
	return m.gameOver
}

// Run starts the Bubble Tea program with a new model for c.
func Run(c *core.Core, scenarioID string, store *storage.Store) error {
	p := tea.NewProgram(
		NewModel(c, scenarioID, store),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
