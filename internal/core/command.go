package core

import (
	"fmt"

	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/world"
)

// Command is a player's intent, not yet validated.
type Command interface {
	fmt.Stringer
	command()
}

// CommandMove asks to move a unit along a path that starts at its position.
type CommandMove struct {
	UnitID world.UnitID
	Path   []hex.MapPos
}

func (CommandMove) command() {}

func (c CommandMove) String() string {
	return fmt.Sprintf("Move(unit=%d, path=%v)", c.UnitID, c.Path)
}

// CommandEndTurn passes the turn to the next player.
type CommandEndTurn struct{}

func (CommandEndTurn) command() {}

func (CommandEndTurn) String() string {
	return "EndTurn"
}

// CommandCreateUnit asks for a unit of the default type for the current player.
type CommandCreateUnit struct {
	Pos hex.MapPos
}

func (CommandCreateUnit) command() {}

func (c CommandCreateUnit) String() string {
	return fmt.Sprintf("CreateUnit(pos=%s)", c.Pos)
}

// CommandAttackUnit asks one unit to fire at another.
type CommandAttackUnit struct {
	AttackerID world.UnitID
	DefenderID world.UnitID
}

func (CommandAttackUnit) command() {}

func (c CommandAttackUnit) String() string {
	return fmt.Sprintf("AttackUnit(%d -> %d)", c.AttackerID, c.DefenderID)
}
