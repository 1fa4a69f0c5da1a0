package core

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/rules"
	"github.com/vovakirdan/hexwar/internal/world"
)

// lethalTypes has a unit whose every attack kills and one whose every attack misses.
func lethalTypes() *rules.ObjectTypes {
	t := rules.NewObjectTypes()
	gun := t.AddWeaponType(rules.WeaponType{Name: "gun", Damage: 100, AP: 100, Accuracy: 100, MaxDistance: 2})
	dud := t.AddWeaponType(rules.WeaponType{Name: "dud", Damage: 0, AP: 0, Accuracy: -100, MaxDistance: 2})
	t.AddUnitType(rules.UnitType{Name: "soldier", Size: 4, Armor: 1, Toughness: 2, WeaponSkill: 5, WeaponTypeID: gun, MovePoints: 3})
	t.AddUnitType(rules.UnitType{Name: "blank", Size: 4, Armor: 1, Toughness: 2, WeaponSkill: 5, WeaponTypeID: dud, MovePoints: 3})
	return t
}

func newSkirmish(t *testing.T, opts Options) *Core {
	t.Helper()
	if opts.MapSize == (hex.Size{}) {
		opts.MapSize = hex.Size{W: 4, H: 8}
	}
	c := New(opts)
	placements := []struct {
		pos    hex.MapPos
		typ    string
		player world.PlayerID
	}{
		{hex.P(0, 0), "tank", 0},
		{hex.P(0, 1), "soldier", 0},
		{hex.P(2, 0), "tank", 1},
		{hex.P(2, 2), "soldier", 1},
	}
	for _, p := range placements {
		if err := c.Deploy(p.pos, p.typ, p.player); err != nil {
			t.Fatalf("Deploy(%s) failed: %v", p.pos, err)
		}
	}
	return c
}

func drain(c *Core, player world.PlayerID) []world.Event {
	var events []world.Event
	for {
		e, ok := c.PollEvent(player)
		if !ok {
			return events
		}
		events = append(events, e)
	}
}

func TestSkirmishReplicasMatchMaster(t *testing.T) {
	c := newSkirmish(t, Options{Seed: 1})
	types := c.ObjectTypes()

	for p := world.PlayerID(0); p < world.NumPlayers; p++ {
		replica := world.NewGameState()
		events := drain(c, p)
		if len(events) != 4 {
			t.Fatalf("player %d got %d events, expected 4", p, len(events))
		}
		for _, e := range events {
			if _, ok := e.(world.EventCreateUnit); !ok {
				t.Errorf("player %d got %s, expected CreateUnit", p, e)
			}
			replica.ApplyEvent(types, e)
		}
		if !replica.Equal(c.State()) {
			t.Errorf("player %d replica differs from master", p)
		}
	}

	master := c.State()
	tank := types.UnitTypeIDByName("tank")
	soldier := types.UnitTypeIDByName("soldier")
	expect := []world.Unit{
		{ID: 0, Pos: hex.P(0, 0), PlayerID: 0, TypeID: tank},
		{ID: 1, Pos: hex.P(0, 1), PlayerID: 0, TypeID: soldier},
		{ID: 2, Pos: hex.P(2, 0), PlayerID: 1, TypeID: tank},
		{ID: 3, Pos: hex.P(2, 2), PlayerID: 1, TypeID: soldier},
	}
	for _, e := range expect {
		u := master.Unit(e.ID)
		if u.Pos != e.Pos || u.PlayerID != e.PlayerID || u.TypeID != e.TypeID {
			t.Errorf("unit %d = %+v, expected %+v", e.ID, u, e)
		}
	}
}

func TestGetEventUsesCurrentPlayerQueue(t *testing.T) {
	c := New(Options{MapSize: hex.Size{W: 4, H: 8}})
	if err := c.DoCommand(CommandCreateUnit{Pos: hex.P(1, 1)}); err != nil {
		t.Fatalf("DoCommand() failed: %v", err)
	}

	if _, ok := c.GetEvent(); !ok {
		t.Fatal("GetEvent() should return the create event")
	}
	if _, ok := c.GetEvent(); ok {
		t.Error("GetEvent() should be empty after draining")
	}
	if c.Pending(1) != 1 {
		t.Errorf("Pending(1) = %d, expected 1", c.Pending(1))
	}
}

func TestEndTurnAlternates(t *testing.T) {
	c := New(Options{MapSize: hex.Size{W: 4, H: 8}})
	if c.PlayerID() != 0 || c.Turn() != 1 {
		t.Fatalf("new game: player %d turn %d, expected player 0 turn 1", c.PlayerID(), c.Turn())
	}

	if err := c.DoCommand(CommandEndTurn{}); err != nil {
		t.Fatal(err)
	}
	if c.PlayerID() != 1 {
		t.Errorf("PlayerID() = %d, expected 1", c.PlayerID())
	}

	if err := c.DoCommand(CommandEndTurn{}); err != nil {
		t.Fatal(err)
	}
	if c.PlayerID() != 0 {
		t.Errorf("PlayerID() = %d, expected 0", c.PlayerID())
	}
	if c.Turn() != 2 {
		t.Errorf("Turn() = %d, expected 2", c.Turn())
	}

	e, _ := c.PollEvent(1)
	if e != (world.EventEndTurn{OldID: 0, NewID: 1}) {
		t.Errorf("first event = %s, expected EndTurn(0 -> 1)", e)
	}
}

func TestAttackOutOfRangeProducesNoEvent(t *testing.T) {
	c := New(Options{MapSize: hex.Size{W: 4, H: 8}})
	if err := c.Deploy(hex.P(0, 0), "soldier", 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Deploy(hex.P(3, 7), "soldier", 1); err != nil {
		t.Fatal(err)
	}
	drain(c, 0)
	drain(c, 1)

	err := c.DoCommand(CommandAttackUnit{AttackerID: 0, DefenderID: 1})
	if !errors.Is(err, &RejectedError{Code: RejectOutOfRange}) {
		t.Errorf("DoCommand() error = %v, expected OUT_OF_RANGE", err)
	}
	if c.Pending(0) != 0 || c.Pending(1) != 0 {
		t.Errorf("rejected attack queued events: %d, %d", c.Pending(0), c.Pending(1))
	}
	if c.EventCount() != 2 {
		t.Errorf("EventCount() = %d, expected 2", c.EventCount())
	}
}

func TestAttackOutOfRangeIsRejectedWhenLenient(t *testing.T) {
	c := New(Options{MapSize: hex.Size{W: 4, H: 8}, Lenient: true})
	c.Deploy(hex.P(0, 0), "soldier", 0)
	c.Deploy(hex.P(3, 7), "soldier", 1)

	if err := c.DoCommand(CommandAttackUnit{AttackerID: 0, DefenderID: 1}); RejectionCode(err) != RejectOutOfRange {
		t.Errorf("DoCommand() error = %v, expected OUT_OF_RANGE", err)
	}
}

func TestUnitIDsNeverReused(t *testing.T) {
	c := New(Options{MapSize: hex.Size{W: 4, H: 8}, Types: lethalTypes()})
	for _, pos := range []hex.MapPos{hex.P(0, 0), hex.P(1, 0)} {
		if err := c.DoCommand(CommandCreateUnit{Pos: pos}); err != nil {
			t.Fatal(err)
		}
	}
	c.DoCommand(CommandEndTurn{})
	if err := c.DoCommand(CommandCreateUnit{Pos: hex.P(2, 0)}); err != nil {
		t.Fatal(err)
	}

	// Player 1's unit 2 kills player 0's unit 1.
	if err := c.DoCommand(CommandAttackUnit{AttackerID: 2, DefenderID: 1}); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.State().Lookup(1); ok {
		t.Fatal("unit 1 should have been killed")
	}
	// Player 0's unit 0 kills unit 2, the highest id.
	c.DoCommand(CommandEndTurn{})
	if err := c.DoCommand(CommandAttackUnit{AttackerID: 0, DefenderID: 2}); err != nil {
		t.Fatal(err)
	}

	if err := c.DoCommand(CommandCreateUnit{Pos: hex.P(3, 3)}); err != nil {
		t.Fatal(err)
	}

	var ids []world.UnitID
	for _, e := range drain(c, 0) {
		if cu, ok := e.(world.EventCreateUnit); ok {
			ids = append(ids, cu.UnitID)
		}
	}
	expected := []world.UnitID{0, 1, 2, 3}
	if len(ids) != len(expected) {
		t.Fatalf("created ids = %v, expected %v", ids, expected)
	}
	for i := range ids {
		if ids[i] != expected[i] {
			t.Errorf("created ids = %v, expected %v", ids, expected)
			break
		}
	}
}

func TestRoundTripReplicaMatchesMaster(t *testing.T) {
	c := newSkirmish(t, Options{Seed: 7})
	commands := []Command{
		CommandMove{UnitID: 1, Path: []hex.MapPos{hex.P(0, 1), hex.P(1, 1), hex.P(1, 2)}},
		CommandAttackUnit{AttackerID: 0, DefenderID: 3},
		CommandCreateUnit{Pos: hex.P(3, 5)},
		CommandEndTurn{},
		CommandMove{UnitID: 2, Path: []hex.MapPos{hex.P(2, 0), hex.P(3, 0)}},
		CommandEndTurn{},
	}
	for _, cmd := range commands {
		c.DoCommand(cmd)
	}

	for p := world.PlayerID(0); p < world.NumPlayers; p++ {
		fresh := world.NewGameState()
		for _, e := range drain(c, p) {
			fresh.ApplyEvent(c.ObjectTypes(), e)
		}
		if !fresh.Equal(c.State()) {
			t.Errorf("player %d replay differs from master", p)
		}
	}
}

func TestValidationRejections(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		code RejectCode
	}{
		{"unknown unit", CommandMove{UnitID: 42, Path: []hex.MapPos{hex.P(0, 0), hex.P(1, 0)}}, RejectUnitNotFound},
		{"enemy unit", CommandMove{UnitID: 2, Path: []hex.MapPos{hex.P(2, 0), hex.P(3, 0)}}, RejectNotYourUnit},
		{"empty path", CommandMove{UnitID: 0}, RejectEmptyPath},
		{"no steps", CommandMove{UnitID: 0, Path: []hex.MapPos{hex.P(0, 0)}}, RejectEmptyPath},
		{"wrong start", CommandMove{UnitID: 0, Path: []hex.MapPos{hex.P(1, 0), hex.P(1, 1)}}, RejectPathStart},
		{"jump", CommandMove{UnitID: 0, Path: []hex.MapPos{hex.P(0, 0), hex.P(0, 3)}}, RejectPathNotAdjacent},
		{"off map", CommandMove{UnitID: 0, Path: []hex.MapPos{hex.P(0, 0), hex.P(-1, 0)}}, RejectOffMap},
		{"through unit", CommandMove{UnitID: 0, Path: []hex.MapPos{hex.P(0, 0), hex.P(0, 1)}}, RejectOccupied},
		{"too far", CommandMove{UnitID: 1, Path: []hex.MapPos{hex.P(0, 1), hex.P(0, 2), hex.P(0, 3), hex.P(0, 4), hex.P(0, 5)}}, RejectNoMovePoints},
		{"create occupied", CommandCreateUnit{Pos: hex.P(2, 2)}, RejectOccupied},
		{"create off map", CommandCreateUnit{Pos: hex.P(4, 0)}, RejectOffMap},
		{"friendly fire", CommandAttackUnit{AttackerID: 0, DefenderID: 1}, RejectFriendlyFire},
		{"enemy attacker", CommandAttackUnit{AttackerID: 2, DefenderID: 0}, RejectNotYourUnit},
		{"missing defender", CommandAttackUnit{AttackerID: 0, DefenderID: 99}, RejectUnitNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newSkirmish(t, Options{Seed: 3})
			before := c.State()
			err := c.DoCommand(tc.cmd)
			if got := RejectionCode(err); got != tc.code {
				t.Fatalf("DoCommand(%s) code = %q (%v), expected %q", tc.cmd, got, err, tc.code)
			}
			if !errors.Is(err, ErrRejected) {
				t.Error("rejection should match ErrRejected")
			}
			if !before.Equal(c.State()) || c.EventCount() != 4 {
				t.Error("rejected command changed the world")
			}
		})
	}
}

func TestAlreadyAttacked(t *testing.T) {
	c := newSkirmish(t, Options{Seed: 3})
	// The cannon on tank 0 reaches both enemy units.
	if err := c.DoCommand(CommandAttackUnit{AttackerID: 0, DefenderID: 2}); err != nil {
		t.Fatal(err)
	}
	defender := world.UnitID(2)
	if _, alive := c.State().Lookup(2); !alive {
		defender = 3
	}
	if err := c.DoCommand(CommandAttackUnit{AttackerID: 0, DefenderID: defender}); RejectionCode(err) != RejectAlreadyAttacked {
		t.Errorf("second attack error = %v, expected ALREADY_ATTACKED", err)
	}

	// A full round restores the attack.
	c.DoCommand(CommandEndTurn{})
	c.DoCommand(CommandEndTurn{})
	if c.State().Unit(0).Attacked {
		t.Error("attack flag should reset at the start of the owner's turn")
	}
}

func TestLenientSkipsCallerChecks(t *testing.T) {
	c := newSkirmish(t, Options{Lenient: true})

	if err := c.DoCommand(CommandCreateUnit{Pos: hex.P(0, 0)}); err != nil {
		t.Errorf("lenient create on occupied tile failed: %v", err)
	}
	if got := len(c.State().UnitsAt(hex.P(0, 0))); got != 2 {
		t.Errorf("UnitsAt((0,0)) = %d units, expected 2 stacked", got)
	}
	if err := c.DoCommand(CommandMove{UnitID: 2, Path: []hex.MapPos{hex.P(3, 6)}}); err != nil {
		t.Errorf("lenient move failed: %v", err)
	}
	if c.State().Unit(2).Pos != hex.P(3, 6) {
		t.Error("lenient move should use the path verbatim")
	}
	if err := c.DoCommand(CommandMove{UnitID: 2}); RejectionCode(err) != RejectEmptyPath {
		t.Errorf("empty path error = %v, expected EMPTY_PATH", err)
	}
}

func TestDeployRejections(t *testing.T) {
	c := New(Options{MapSize: hex.Size{W: 4, H: 8}})
	if err := c.Deploy(hex.P(0, 0), "dragon", 0); RejectionCode(err) != RejectUnknownUnitType {
		t.Errorf("Deploy(dragon) error = %v, expected UNKNOWN_UNIT_TYPE", err)
	}
	if err := c.Deploy(hex.P(0, 0), "tank", 5); RejectionCode(err) != RejectUnknownPlayer {
		t.Errorf("Deploy(player 5) error = %v, expected UNKNOWN_PLAYER", err)
	}
	if err := c.Deploy(hex.P(9, 9), "tank", 0); RejectionCode(err) != RejectOffMap {
		t.Errorf("Deploy(off map) error = %v, expected OFF_MAP", err)
	}
}

func TestDeterministicCombat(t *testing.T) {
	run := func() []world.Event {
		c := newSkirmish(t, Options{Seed: 12345})
		for i := 0; i < 10; i++ {
			c.DoCommand(CommandAttackUnit{AttackerID: 0, DefenderID: 3})
			c.DoCommand(CommandEndTurn{})
			c.DoCommand(CommandAttackUnit{AttackerID: 2, DefenderID: 1})
			c.DoCommand(CommandEndTurn{})
		}
		return drain(c, 0)
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("event counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].String() != b[i].String() {
			t.Errorf("event %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestWinner(t *testing.T) {
	c := New(Options{MapSize: hex.Size{W: 4, H: 8}, Types: lethalTypes()})
	c.Deploy(hex.P(0, 0), "soldier", 0)
	c.Deploy(hex.P(1, 0), "soldier", 1)

	if _, ok := c.Winner(); ok {
		t.Fatal("no winner before any unit is destroyed")
	}
	if err := c.DoCommand(CommandAttackUnit{AttackerID: 0, DefenderID: 1}); err != nil {
		t.Fatal(err)
	}
	if w, ok := c.Winner(); !ok || w != 0 {
		t.Errorf("Winner() = %d, %v, expected 0, true", w, ok)
	}
}

func TestVisibilityFilter(t *testing.T) {
	onlyOwner := func(e world.Event, p world.PlayerID) bool {
		if cu, ok := e.(world.EventCreateUnit); ok {
			return cu.PlayerID == p
		}
		return true
	}
	c := New(Options{MapSize: hex.Size{W: 4, H: 8}, Visible: onlyOwner})
	c.Deploy(hex.P(0, 0), "tank", 0)
	c.DoCommand(CommandEndTurn{})

	if c.Pending(0) != 2 {
		t.Errorf("Pending(0) = %d, expected 2", c.Pending(0))
	}
	if c.Pending(1) != 1 {
		t.Errorf("Pending(1) = %d, expected 1", c.Pending(1))
	}
	if c.State().Len() != 1 {
		t.Error("filtered events must still reach the master world")
	}
}

func TestQueuedEventsAreIndependentCopies(t *testing.T) {
	c := newSkirmish(t, Options{})
	drain(c, 0)
	drain(c, 1)
	path := []hex.MapPos{hex.P(0, 1), hex.P(1, 1)}
	if err := c.DoCommand(CommandMove{UnitID: 1, Path: path}); err != nil {
		t.Fatal(err)
	}
	path[1] = hex.P(3, 3)

	e0, _ := c.PollEvent(0)
	m0 := e0.(world.EventMove)
	m0.Path[0] = hex.P(9, 9)
	e1, _ := c.PollEvent(1)
	m1 := e1.(world.EventMove)

	if m1.Path[0] != hex.P(0, 1) || m1.Path[1] != hex.P(1, 1) {
		t.Errorf("player 1 path = %v, expected untouched copy", m1.Path)
	}
}

func TestPlayers(t *testing.T) {
	c := New(Options{PlayerNames: []string{"Red"}})
	players := c.Players()
	if len(players) != world.NumPlayers {
		t.Fatalf("len(Players()) = %d, expected %d", len(players), world.NumPlayers)
	}
	if players[0].Name != "Red" || players[1].Name != "Player 2" {
		t.Errorf("names = %q, %q", players[0].Name, players[1].Name)
	}
}

func TestUnknownDefaultTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New() should panic for an unknown default unit type")
		}
	}()
	New(Options{DefaultUnitType: "dragon", Rand: rand.New(rand.NewSource(1))})
}
