package world

import (
	"testing"

	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/rules"
)

func newTestState(t *testing.T) (*GameState, *rules.ObjectTypes) {
	t.Helper()
	types := rules.Default()
	s := NewGameState()
	tank := types.UnitTypeIDByName("tank")
	soldier := types.UnitTypeIDByName("soldier")
	s.ApplyEvent(types, EventCreateUnit{UnitID: 0, Pos: hex.P(0, 0), TypeID: tank, PlayerID: 0})
	s.ApplyEvent(types, EventCreateUnit{UnitID: 1, Pos: hex.P(0, 1), TypeID: soldier, PlayerID: 0})
	s.ApplyEvent(types, EventCreateUnit{UnitID: 2, Pos: hex.P(2, 0), TypeID: tank, PlayerID: 1})
	return s, types
}

func TestCreateUnit(t *testing.T) {
	s, types := newTestState(t)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", s.Len())
	}
	u := s.Unit(1)
	if u.Pos != hex.P(0, 1) || u.PlayerID != 0 {
		t.Errorf("unit 1 = %+v, expected soldier of player 0 at (0,1)", u)
	}
	if u.MovePoints != types.UnitType(u.TypeID).MovePoints {
		t.Errorf("new unit MovePoints = %d, expected full %d", u.MovePoints, types.UnitType(u.TypeID).MovePoints)
	}
	if s.MaxUnitID() != 2 {
		t.Errorf("MaxUnitID() = %d, expected 2", s.MaxUnitID())
	}
}

func TestCreateDuplicatePanics(t *testing.T) {
	s, types := newTestState(t)
	defer func() {
		if recover() == nil {
			t.Error("ApplyEvent() should panic on duplicate unit id")
		}
	}()
	s.ApplyEvent(types, EventCreateUnit{UnitID: 1, Pos: hex.P(3, 3)})
}

func TestMoveUsesLastPathElement(t *testing.T) {
	s, types := newTestState(t)
	path := []hex.MapPos{hex.P(0, 1), hex.P(1, 1), hex.P(1, 2)}
	s.ApplyEvent(types, EventMove{UnitID: 1, Path: path})

	u := s.Unit(1)
	if u.Pos != hex.P(1, 2) {
		t.Errorf("Pos = %s, expected (1,2)", u.Pos)
	}
	if u.MovePoints != 1 {
		t.Errorf("MovePoints = %d, expected 1", u.MovePoints)
	}

	// Move points never go negative.
	s.ApplyEvent(types, EventMove{UnitID: 1, Path: []hex.MapPos{hex.P(1, 2), hex.P(1, 3), hex.P(1, 4)}})
	if got := s.Unit(1).MovePoints; got != 0 {
		t.Errorf("MovePoints = %d, expected 0", got)
	}
}

func TestMoveEmptyPathPanics(t *testing.T) {
	s, types := newTestState(t)
	defer func() {
		if recover() == nil {
			t.Error("ApplyEvent() should panic on an empty path")
		}
	}()
	s.ApplyEvent(types, EventMove{UnitID: 0})
}

func TestAttackUnit(t *testing.T) {
	s, types := newTestState(t)

	s.ApplyEvent(types, EventAttackUnit{AttackerID: 0, DefenderID: 2, Killed: false})
	if s.Len() != 3 {
		t.Errorf("missed attack removed a unit")
	}
	if !s.Unit(0).Attacked {
		t.Error("attacker should be marked as having attacked")
	}

	s.ApplyEvent(types, EventAttackUnit{AttackerID: 0, DefenderID: 2, Killed: true})
	if _, ok := s.Lookup(2); ok {
		t.Error("killed unit should be removed")
	}
}

func TestAttackKillMissingPanics(t *testing.T) {
	s, types := newTestState(t)
	defer func() {
		if recover() == nil {
			t.Error("ApplyEvent() should panic when the killed unit does not exist")
		}
	}()
	s.ApplyEvent(types, EventAttackUnit{AttackerID: 0, DefenderID: 42, Killed: true})
}

func TestEndTurnRefreshesNewPlayer(t *testing.T) {
	s, types := newTestState(t)
	s.ApplyEvent(types, EventMove{UnitID: 2, Path: []hex.MapPos{hex.P(2, 0), hex.P(3, 0)}})
	s.ApplyEvent(types, EventAttackUnit{AttackerID: 2, DefenderID: 0})
	s.ApplyEvent(types, EventMove{UnitID: 0, Path: []hex.MapPos{hex.P(0, 0), hex.P(1, 0)}})

	s.ApplyEvent(types, EventEndTurn{OldID: 0, NewID: 1})

	enemy := s.Unit(2)
	if enemy.Attacked || enemy.MovePoints != 5 {
		t.Errorf("player 1 unit not refreshed: %+v", enemy)
	}
	if own := s.Unit(0); own.MovePoints != 4 {
		t.Errorf("player 0 unit MovePoints = %d, expected 4 (not refreshed)", own.MovePoints)
	}
	if s.Unit(0).Pos != hex.P(1, 0) {
		t.Error("EndTurn must not move units")
	}
}

func TestUnitsAtAndSlotIndex(t *testing.T) {
	s, types := newTestState(t)
	s.ApplyEvent(types, EventCreateUnit{UnitID: 5, Pos: hex.P(0, 0), TypeID: 1, PlayerID: 0})

	at := s.UnitsAt(hex.P(0, 0))
	if len(at) != 2 || at[0].ID != 0 || at[1].ID != 5 {
		t.Fatalf("UnitsAt((0,0)) = %+v, expected units 0 and 5", at)
	}
	if got := s.SlotIndex(5, hex.P(0, 0)); got != 1 {
		t.Errorf("SlotIndex(5) = %d, expected 1", got)
	}
	if got := s.SlotIndex(1, hex.P(0, 0)); got != -1 {
		t.Errorf("SlotIndex(1) = %d, expected -1", got)
	}
	if len(s.UnitsAt(hex.P(3, 3))) != 0 || s.IsOccupied(hex.P(3, 3)) {
		t.Error("(3,3) should be empty")
	}
	if len(s.UnitsOf(1)) != 1 {
		t.Errorf("UnitsOf(1) = %d units, expected 1", len(s.UnitsOf(1)))
	}
}

func TestCloneAndEqual(t *testing.T) {
	s, types := newTestState(t)
	c := s.Clone()
	if !s.Equal(c) {
		t.Fatal("clone should equal original")
	}
	c.ApplyEvent(types, EventMove{UnitID: 0, Path: []hex.MapPos{hex.P(1, 0)}})
	if s.Equal(c) {
		t.Error("mutating the clone should not affect the original")
	}
	if s.Unit(0).Pos != hex.P(0, 0) {
		t.Error("original unit moved")
	}
}

func TestCloneEventCopiesPath(t *testing.T) {
	orig := EventMove{UnitID: 1, Path: []hex.MapPos{hex.P(0, 0), hex.P(1, 0)}}
	clone := CloneEvent(orig).(EventMove)
	clone.Path[0] = hex.P(9, 9)
	if orig.Path[0] != hex.P(0, 0) {
		t.Error("CloneEvent() shared the path slice")
	}
	if CloneEvent(EventEndTurn{OldID: 0, NewID: 1}) != (EventEndTurn{OldID: 0, NewID: 1}) {
		t.Error("CloneEvent() changed a value event")
	}
}
