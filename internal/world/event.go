package world

import (
	"fmt"

	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/rules"
)

// Event is a validated fact describing a state change.
// The set of variants is closed; consumers switch on the concrete type.
type Event interface {
	fmt.Stringer
	event()
}

// EventMove moves a unit along a path. The last element is the destination.
type EventMove struct {
	UnitID UnitID
	Path   []hex.MapPos
}

func (EventMove) event() {}

func (e EventMove) String() string {
	return fmt.Sprintf("Move(unit=%d, path=%v)", e.UnitID, e.Path)
}

// EventEndTurn passes the turn from OldID to NewID.
type EventEndTurn struct {
	OldID PlayerID
	NewID PlayerID
}

func (EventEndTurn) event() {}

func (e EventEndTurn) String() string {
	return fmt.Sprintf("EndTurn(%d -> %d)", e.OldID, e.NewID)
}

// EventCreateUnit places a new unit on the map.
type EventCreateUnit struct {
	UnitID   UnitID
	Pos      hex.MapPos
	TypeID   rules.UnitTypeID
	PlayerID PlayerID
}

func (EventCreateUnit) event() {}

func (e EventCreateUnit) String() string {
	return fmt.Sprintf("CreateUnit(unit=%d, pos=%s, type=%d, player=%d)", e.UnitID, e.Pos, e.TypeID, e.PlayerID)
}

// EventAttackUnit records an attack and whether it destroyed the defender.
type EventAttackUnit struct {
	AttackerID UnitID
	DefenderID UnitID
	Killed     bool
}

func (EventAttackUnit) event() {}

func (e EventAttackUnit) String() string {
	return fmt.Sprintf("AttackUnit(%d -> %d, killed=%v)", e.AttackerID, e.DefenderID, e.Killed)
}

// CloneEvent returns a copy of e that shares no memory with it.
func CloneEvent(e Event) Event {
	switch ev := e.(type) {
	case EventMove:
		ev.Path = append([]hex.MapPos(nil), ev.Path...)
		return ev
	default:
		return e
	}
}
