package scenario

import (
	"errors"
	"testing"

	"github.com/vovakirdan/hexwar/internal/core"
	"github.com/vovakirdan/hexwar/internal/hex"
)

func TestBuiltinsRegistered(t *testing.T) {
	list := List()
	ids := make([]string, len(list))
	for i, info := range list {
		ids[i] = info.ID
	}
	if len(ids) < 2 || !Exists("skirmish") || !Exists("empty") {
		t.Fatalf("List() = %v, expected skirmish and empty", ids)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() should panic on a duplicate id")
		}
	}()
	Register(Scenario{ID: "skirmish"})
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("nope"); err == nil {
		t.Error("Get() of an unknown id should fail")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s, err := Get("skirmish")
	if err != nil {
		t.Fatal(err)
	}
	s.Units[0].Type = "dragon"

	again, _ := Get("skirmish")
	if again.Units[0].Type != "tank" {
		t.Error("mutating a returned scenario changed the registry")
	}
}

func TestApplySkirmish(t *testing.T) {
	s, err := Get("skirmish")
	if err != nil {
		t.Fatal(err)
	}
	c := core.New(core.Options{MapSize: s.MapSize})
	if err := Apply(c, s); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	state := c.State()
	if state.Len() != 4 {
		t.Fatalf("Len() = %d, expected 4", state.Len())
	}
	for i, p := range s.Units {
		units := state.UnitsAt(p.Pos)
		if len(units) != 1 {
			t.Fatalf("placement %d: %d units at %s", i, len(units), p.Pos)
		}
		u := units[0]
		if u.PlayerID != p.Player || c.ObjectTypes().UnitType(u.TypeID).Name != p.Type {
			t.Errorf("placement %d: got %+v", i, u)
		}
	}
	if c.Pending(0) != 4 || c.Pending(1) != 4 {
		t.Errorf("Pending = %d, %d, expected 4 each", c.Pending(0), c.Pending(1))
	}
}

func TestApplyStopsOnRejection(t *testing.T) {
	s := Scenario{
		ID:      "broken",
		MapSize: hex.Size{W: 2, H: 2},
		Units: []Placement{
			{Pos: hex.P(0, 0), Type: "tank", Player: 0},
			{Pos: hex.P(0, 0), Type: "tank", Player: 1},
			{Pos: hex.P(1, 1), Type: "tank", Player: 1},
		},
	}
	c := core.New(core.Options{MapSize: s.MapSize})
	err := Apply(c, s)
	if !errors.Is(err, core.ErrRejected) {
		t.Fatalf("Apply() error = %v, expected a rejection", err)
	}
	if c.State().Len() != 1 {
		t.Errorf("Len() = %d, expected 1", c.State().Len())
	}
}
