// Package world holds the replicated world model: units, the events that
// change them, and GameState, the per-player replica they live in.
package world

import (
	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/rules"
)

// PlayerID identifies a player, its event queue and its replica.
type PlayerID int

// NumPlayers is the number of players in every game.
const NumPlayers = 2

// Next returns the player whose turn follows this one.
func (p PlayerID) Next() PlayerID {
	return (p + 1) % NumPlayers
}

// UnitID identifies a unit. Ids are never reused within a game.
type UnitID int

// Unit is a single unit on the map.
type Unit struct {
	ID         UnitID
	Pos        hex.MapPos
	PlayerID   PlayerID
	TypeID     rules.UnitTypeID
	MovePoints int  // Remaining this turn
	Attacked   bool // Already attacked this turn
}
