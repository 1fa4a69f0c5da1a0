// Package core is the authoritative simulation: it validates commands, turns
// them into events, applies them to the master world and queues a copy of
// every event for each player.
package core

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/rules"
	"github.com/vovakirdan/hexwar/internal/world"
)

// DefaultUnitType is created by CommandCreateUnit when Options leaves it empty.
const DefaultUnitType = "soldier"

// Player is a participant in the game.
type Player struct {
	ID   world.PlayerID
	Name string
}

// VisibilityFunc decides whether a player is told about an event.
type VisibilityFunc func(event world.Event, player world.PlayerID) bool

// Options configures a new Core.
type Options struct {
	MapSize         hex.Size
	Types           *rules.ObjectTypes // nil means rules.Default()
	DefaultUnitType string
	PlayerNames     []string
	Seed            int64
	Rand            *rand.Rand // Overrides Seed when set
	Logger          *log.Logger

	// Lenient skips ownership, occupancy and path checks, leaving them to the
	// caller. The attack range gate and the non-empty path rule still apply.
	Lenient bool

	// Visible filters events per player. Nil sends every event to everyone.
	Visible VisibilityFunc
}

// Core owns the master world and the turn order. It is single-threaded:
// every method runs to completion and callers must not share a Core between
// goroutines without their own locking.
type Core struct {
	state       *world.GameState
	types       *rules.ObjectTypes
	players     []Player
	current     world.PlayerID
	pending     []world.Event
	queues      [world.NumPlayers][]world.Event
	mapSize     hex.Size
	defaultType rules.UnitTypeID
	nextUnitID  world.UnitID // One past the highest id ever allocated

	rng     *rand.Rand
	seed    int64
	logger  *log.Logger
	lenient bool
	visible VisibilityFunc

	endTurns int
	events   int
	kills    int
}

// New creates a game with an empty map. Player 0 moves first.
// Panics if the default unit type is not in the registry.
func New(opts Options) *Core {
	types := opts.Types
	if types == nil {
		types = rules.Default()
	}
	defaultType := opts.DefaultUnitType
	if defaultType == "" {
		defaultType = DefaultUnitType
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	players := make([]Player, world.NumPlayers)
	for i := range players {
		players[i] = Player{ID: world.PlayerID(i), Name: defaultPlayerName(i)}
		if i < len(opts.PlayerNames) && opts.PlayerNames[i] != "" {
			players[i].Name = opts.PlayerNames[i]
		}
	}

	return &Core{
		state:       world.NewGameState(),
		types:       types,
		players:     players,
		mapSize:     opts.MapSize,
		defaultType: types.UnitTypeIDByName(defaultType),
		rng:         rng,
		seed:        opts.Seed,
		logger:      logger,
		lenient:     opts.Lenient,
		visible:     opts.Visible,
	}
}

func defaultPlayerName(i int) string {
	return fmt.Sprintf("Player %d", i+1)
}

// MapSize returns the map dimensions.
func (c *Core) MapSize() hex.Size {
	return c.mapSize
}

// PlayerID returns the player whose turn it is.
func (c *Core) PlayerID() world.PlayerID {
	return c.current
}

// Players returns the participants in turn order.
func (c *Core) Players() []Player {
	return append([]Player(nil), c.players...)
}

// ObjectTypes returns the rules registry.
func (c *Core) ObjectTypes() *rules.ObjectTypes {
	return c.types
}

// State returns a copy of the master world.
func (c *Core) State() *world.GameState {
	return c.state.Clone()
}

// Seed returns the seed the combat generator was created from.
func (c *Core) Seed() int64 {
	return c.seed
}

// Turn returns the current round, starting at 1. A round ends when every
// player has ended their turn once.
func (c *Core) Turn() int {
	return c.endTurns/world.NumPlayers + 1
}

// EventCount returns the number of events applied so far.
func (c *Core) EventCount() int {
	return c.events
}

// Winner returns the only player with units left, once a unit has been
// destroyed.
func (c *Core) Winner() (world.PlayerID, bool) {
	if c.kills == 0 {
		return 0, false
	}
	var alive []world.PlayerID
	for _, p := range c.players {
		if len(c.state.UnitsOf(p.ID)) > 0 {
			alive = append(alive, p.ID)
		}
	}
	if len(alive) != 1 {
		return 0, false
	}
	return alive[0], true
}

// DoCommand validates a command and, if it yields an event, applies and
// broadcasts it before returning. A rejected command returns a
// *RejectedError and changes nothing.
func (c *Core) DoCommand(cmd Command) error {
	event, err := c.commandToEvent(cmd)
	if err != nil {
		c.logger.Info("command rejected", "player", c.current, "command", cmd, "code", RejectionCode(err), "error", err)
		return err
	}
	c.logger.Debug("command accepted", "player", c.current, "command", cmd)
	c.pending = append(c.pending, event)
	c.makeEvents()
	return nil
}

// Deploy places a unit of the named type for a player, bypassing turn order.
// It is used to set up scenarios and goes through the same event pipeline.
func (c *Core) Deploy(pos hex.MapPos, typeName string, player world.PlayerID) error {
	typeID, ok := c.types.LookupUnitType(typeName)
	if !ok {
		return reject(RejectUnknownUnitType, "unknown unit type %q", typeName)
	}
	if player < 0 || int(player) >= len(c.players) {
		return reject(RejectUnknownPlayer, "unknown player %d", player)
	}
	if err := c.checkPlacement(pos); err != nil {
		return err
	}
	c.pending = append(c.pending, world.EventCreateUnit{
		UnitID:   c.nextUnitID,
		Pos:      pos,
		TypeID:   typeID,
		PlayerID: player,
	})
	c.makeEvents()
	return nil
}

// GetEvent pops the next event queued for the player whose turn it is.
func (c *Core) GetEvent() (world.Event, bool) {
	return c.PollEvent(c.current)
}

// PollEvent pops the next event queued for a player.
func (c *Core) PollEvent(player world.PlayerID) (world.Event, bool) {
	q := c.queues[player]
	if len(q) == 0 {
		return nil, false
	}
	event := q[0]
	q[0] = nil
	c.queues[player] = q[1:]
	return event, true
}

// Pending returns how many events are waiting for a player.
func (c *Core) Pending(player world.PlayerID) int {
	return len(c.queues[player])
}

func (c *Core) commandToEvent(cmd Command) (world.Event, error) {
	switch cmd := cmd.(type) {
	case CommandEndTurn:
		return world.EventEndTurn{OldID: c.current, NewID: c.current.Next()}, nil

	case CommandCreateUnit:
		if !c.lenient {
			if err := c.checkPlacement(cmd.Pos); err != nil {
				return nil, err
			}
		}
		return world.EventCreateUnit{
			UnitID:   c.nextUnitID,
			Pos:      cmd.Pos,
			TypeID:   c.defaultType,
			PlayerID: c.current,
		}, nil

	case CommandMove:
		if len(cmd.Path) == 0 {
			return nil, reject(RejectEmptyPath, "move of unit %d has an empty path", cmd.UnitID)
		}
		if !c.lenient {
			if err := c.checkMove(cmd); err != nil {
				return nil, err
			}
		}
		return world.EventMove{
			UnitID: cmd.UnitID,
			Path:   append([]hex.MapPos(nil), cmd.Path...),
		}, nil

	case CommandAttackUnit:
		attacker, defender, err := c.attackParties(cmd)
		if err != nil {
			return nil, err
		}
		weapon := c.types.WeaponOf(attacker.TypeID)
		if d := hex.Distance(attacker.Pos, defender.Pos); d > weapon.MaxDistance {
			return nil, reject(RejectOutOfRange, "target is %d tiles away, %s reaches %d", d, weapon.Name, weapon.MaxDistance)
		}
		return world.EventAttackUnit{
			AttackerID: cmd.AttackerID,
			DefenderID: cmd.DefenderID,
			Killed:     c.hitTest(attacker, defender),
		}, nil

	default:
		return nil, reject(RejectUnknownCommand, "unknown command %T", cmd)
	}
}

func (c *Core) checkPlacement(pos hex.MapPos) error {
	if !c.mapSize.Contains(pos) {
		return reject(RejectOffMap, "%s is outside the %s map", pos, c.mapSize)
	}
	if c.state.IsOccupied(pos) {
		return reject(RejectOccupied, "%s is occupied", pos)
	}
	return nil
}

func (c *Core) ownUnit(id world.UnitID) (world.Unit, error) {
	u, ok := c.state.Lookup(id)
	if !ok {
		return world.Unit{}, reject(RejectUnitNotFound, "no unit with id %d", id)
	}
	if u.PlayerID != c.current {
		return world.Unit{}, reject(RejectNotYourUnit, "unit %d belongs to player %d", id, u.PlayerID)
	}
	return u, nil
}

func (c *Core) checkMove(cmd CommandMove) error {
	u, err := c.ownUnit(cmd.UnitID)
	if err != nil {
		return err
	}
	if len(cmd.Path) < 2 {
		return reject(RejectEmptyPath, "move of unit %d has no steps", cmd.UnitID)
	}
	if cmd.Path[0] != u.Pos {
		return reject(RejectPathStart, "path starts at %s but unit %d is at %s", cmd.Path[0], u.ID, u.Pos)
	}
	for i := 1; i < len(cmd.Path); i++ {
		prev, next := cmd.Path[i-1], cmd.Path[i]
		if !hex.IsAdjacent(prev, next) {
			return reject(RejectPathNotAdjacent, "%s is not adjacent to %s", next, prev)
		}
		if err := c.checkPlacement(next); err != nil {
			return err
		}
	}
	if steps := len(cmd.Path) - 1; steps > u.MovePoints {
		return reject(RejectNoMovePoints, "path needs %d move points, unit %d has %d", steps, u.ID, u.MovePoints)
	}
	return nil
}

func (c *Core) attackParties(cmd CommandAttackUnit) (world.Unit, world.Unit, error) {
	if c.lenient {
		return c.state.Unit(cmd.AttackerID), c.state.Unit(cmd.DefenderID), nil
	}
	attacker, err := c.ownUnit(cmd.AttackerID)
	if err != nil {
		return world.Unit{}, world.Unit{}, err
	}
	defender, ok := c.state.Lookup(cmd.DefenderID)
	if !ok {
		return world.Unit{}, world.Unit{}, reject(RejectUnitNotFound, "no unit with id %d", cmd.DefenderID)
	}
	if defender.PlayerID == attacker.PlayerID {
		return world.Unit{}, world.Unit{}, reject(RejectFriendlyFire, "unit %d is friendly", defender.ID)
	}
	if attacker.Attacked {
		return world.Unit{}, world.Unit{}, reject(RejectAlreadyAttacked, "unit %d already attacked this turn", attacker.ID)
	}
	return attacker, defender, nil
}

// makeEvents drains the staging list: each event updates the turn
// bookkeeping, then the master world, then every player's queue.
func (c *Core) makeEvents() {
	for len(c.pending) > 0 {
		event := c.pending[0]
		c.pending = c.pending[1:]

		c.applyEvent(event)
		c.state.ApplyEvent(c.types, event)
		for _, p := range c.players {
			if c.visible != nil && !c.visible(event, p.ID) {
				continue
			}
			c.queues[p.ID] = append(c.queues[p.ID], world.CloneEvent(event))
		}
		c.events++
		c.logger.Debug("event", "n", c.events, "event", event)
	}
}

func (c *Core) applyEvent(event world.Event) {
	switch e := event.(type) {
	case world.EventEndTurn:
		if e.OldID == c.current {
			c.current = e.NewID
			c.endTurns++
		}
	case world.EventCreateUnit:
		if e.UnitID >= c.nextUnitID {
			c.nextUnitID = e.UnitID + 1
		}
	case world.EventAttackUnit:
		if e.Killed {
			c.kills++
		}
	}
}
