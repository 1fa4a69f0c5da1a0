package world

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/rules"
)

// GameState is one copy of the world: the master copy held by the core or a
// player's replica. ApplyEvent is its only mutator, so replicas fed the same
// event stream hold identical units.
type GameState struct {
	units map[UnitID]Unit
}

// NewGameState creates an empty world.
func NewGameState() *GameState {
	return &GameState{units: make(map[UnitID]Unit)}
}

// Len returns the number of live units.
func (s *GameState) Len() int {
	return len(s.units)
}

// Units returns all live units ordered by id.
func (s *GameState) Units() []Unit {
	result := make([]Unit, 0, len(s.units))
	for _, u := range s.units {
		result = append(result, u)
	}
	sortByID(result)
	return result
}

// Lookup returns the unit with the given id, if it is alive.
func (s *GameState) Lookup(id UnitID) (Unit, bool) {
	u, ok := s.units[id]
	return u, ok
}

// Unit returns the unit with the given id. Panics if there is no such unit.
func (s *GameState) Unit(id UnitID) Unit {
	u, ok := s.units[id]
	if !ok {
		panic(fmt.Sprintf("world: no unit with id %d", id))
	}
	return u
}

// UnitsAt returns the units standing on pos ordered by id.
func (s *GameState) UnitsAt(pos hex.MapPos) []Unit {
	var result []Unit
	for _, u := range s.units {
		if u.Pos == pos {
			result = append(result, u)
		}
	}
	sortByID(result)
	return result
}

// IsOccupied returns true if any unit stands on pos.
func (s *GameState) IsOccupied(pos hex.MapPos) bool {
	for _, u := range s.units {
		if u.Pos == pos {
			return true
		}
	}
	return false
}

// UnitsOf returns the units owned by a player ordered by id.
func (s *GameState) UnitsOf(player PlayerID) []Unit {
	var result []Unit
	for _, u := range s.units {
		if u.PlayerID == player {
			result = append(result, u)
		}
	}
	sortByID(result)
	return result
}

// SlotIndex returns the rank of a unit among the units on pos, used to offset
// stacked units when drawing. Returns -1 if the unit is not on pos.
func (s *GameState) SlotIndex(id UnitID, pos hex.MapPos) int {
	for i, u := range s.UnitsAt(pos) {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// MaxUnitID returns the highest live unit id, or -1 when there are none.
func (s *GameState) MaxUnitID() UnitID {
	maxID := UnitID(-1)
	for id := range s.units {
		if id > maxID {
			maxID = id
		}
	}
	return maxID
}

// ApplyEvent applies an event to the world.
// Events are facts; a precondition failure here is an integrity bug and panics.
func (s *GameState) ApplyEvent(types *rules.ObjectTypes, event Event) {
	switch e := event.(type) {
	case EventMove:
		if len(e.Path) == 0 {
			panic(fmt.Sprintf("world: move of unit %d has an empty path", e.UnitID))
		}
		u := s.Unit(e.UnitID)
		u.Pos = e.Path[len(e.Path)-1]
		u.MovePoints = max(0, u.MovePoints-(len(e.Path)-1))
		s.units[u.ID] = u

	case EventEndTurn:
		for id, u := range s.units {
			if u.PlayerID != e.NewID {
				continue
			}
			u.MovePoints = types.UnitType(u.TypeID).MovePoints
			u.Attacked = false
			s.units[id] = u
		}

	case EventCreateUnit:
		if _, exists := s.units[e.UnitID]; exists {
			panic(fmt.Sprintf("world: unit id %d already exists", e.UnitID))
		}
		s.units[e.UnitID] = Unit{
			ID:         e.UnitID,
			Pos:        e.Pos,
			PlayerID:   e.PlayerID,
			TypeID:     e.TypeID,
			MovePoints: types.UnitType(e.TypeID).MovePoints,
		}

	case EventAttackUnit:
		if attacker, ok := s.units[e.AttackerID]; ok {
			attacker.Attacked = true
			s.units[attacker.ID] = attacker
		}
		if e.Killed {
			if _, ok := s.units[e.DefenderID]; !ok {
				panic(fmt.Sprintf("world: killed unit %d does not exist", e.DefenderID))
			}
			delete(s.units, e.DefenderID)
		}

	default:
		panic(fmt.Sprintf("world: unknown event type %T", event))
	}
}

// Clone returns a deep copy of the world.
func (s *GameState) Clone() *GameState {
	units := make(map[UnitID]Unit, len(s.units))
	for id, u := range s.units {
		units[id] = u
	}
	return &GameState{units: units}
}

// Equal returns true if both worlds hold the same units.
func (s *GameState) Equal(other *GameState) bool {
	if len(s.units) != len(other.units) {
		return false
	}
	for id, u := range s.units {
		if o, ok := other.units[id]; !ok || o != u {
			return false
		}
	}
	return true
}

func sortByID(units []Unit) {
	sort.Slice(units, func(i, j int) bool {
		return units[i].ID < units[j].ID
	})
}
