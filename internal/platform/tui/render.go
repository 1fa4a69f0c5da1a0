package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/rules"
	"github.com/vovakirdan/hexwar/internal/world"
)

// tileWidth is the number of columns one hex occupies. Even rows are
// indented by half a tile.
const tileWidth = 4

// cellKind decides how a tile is styled.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellReach
	cellPlayer0
	cellPlayer1
	cellSelected
)

var cellStyles = map[cellKind]lipgloss.Style{
	cellEmpty:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	cellReach:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	cellPlayer0:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	cellPlayer1:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	cellSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true),
}

// cell is one rendered tile before styling.
type cell struct {
	Text string // Exactly tileWidth runes
	Kind cellKind
}

// MapView is everything needed to draw one player's map.
type MapView struct {
	State    *world.GameState
	Types    *rules.ObjectTypes
	Size     hex.Size
	Cursor   hex.MapPos
	Selected world.UnitID
	HasSel   bool
	Reach    map[hex.MapPos]bool // Tiles the selection can move to
}

// unitGlyph is the first letter of the type name, upper case for player 0.
// Stacked tiles show the number of units instead.
func unitGlyph(units []world.Unit, types *rules.ObjectTypes) string {
	if len(units) > 1 {
		if len(units) > 9 {
			return "*"
		}
		return string(rune('0' + len(units)))
	}
	name := types.UnitType(units[0].TypeID).Name
	g := "?"
	if name != "" {
		g = name[:1]
	}
	if units[0].PlayerID == 0 {
		return strings.ToUpper(g)
	}
	return strings.ToLower(g)
}

func (v MapView) cell(pos hex.MapPos) cell {
	glyph := "."
	kind := cellEmpty
	if units := v.State.UnitsAt(pos); len(units) > 0 {
		glyph = unitGlyph(units, v.Types)
		kind = cellPlayer0
		if units[0].PlayerID != 0 {
			kind = cellPlayer1
		}
		if v.HasSel {
			for _, u := range units {
				if u.ID == v.Selected {
					kind = cellSelected
				}
			}
		}
	} else if v.Reach[pos] {
		glyph = "+"
		kind = cellReach
	}

	left, right := " ", " "
	if pos == v.Cursor {
		left, right = "[", "]"
	}
	return cell{Text: left + glyph + right + " ", Kind: kind}
}

// cells lays out the map row by row.
func (v MapView) cells() [][]cell {
	rows := make([][]cell, v.Size.H)
	for y := 0; y < v.Size.H; y++ {
		rows[y] = make([]cell, v.Size.W)
		for x := 0; x < v.Size.W; x++ {
			rows[y][x] = v.cell(hex.P(x, y))
		}
	}
	return rows
}

// PlainMap draws the map without styles.
func PlainMap(v MapView) string {
	lines := make([]string, 0, v.Size.H)
	for y, row := range v.cells() {
		var sb strings.Builder
		if y%2 == 0 {
			sb.WriteString(strings.Repeat(" ", tileWidth/2))
		}
		for _, c := range row {
			sb.WriteString(c.Text)
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// RenderMap draws the map as text, one line per row.
// Groups adjacent cells with the same kind to minimize ANSI escape sequences.
func RenderMap(v MapView) string {
	var sb strings.Builder
	sb.Grow(v.Size.Area()*tileWidth*2 + v.Size.H*(tileWidth/2+1))

	for y, row := range v.cells() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		if y%2 == 0 {
			sb.WriteString(strings.Repeat(" ", tileWidth/2))
		}

		x := 0
		for x < len(row) {
			kind := row[x].Kind
			var run strings.Builder
			for x < len(row) && row[x].Kind == kind {
				run.WriteString(row[x].Text)
				x++
			}
			sb.WriteString(cellStyles[kind].Render(run.String()))
		}
	}
	return sb.String()
}
