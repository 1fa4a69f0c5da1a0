package core

import (
	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/pathfinder"
	"github.com/vovakirdan/hexwar/internal/world"
)

// Replica is one player's view of the game: a world copy advanced only by
// the events queued for that player, plus a pathfinder for the selected unit.
type Replica struct {
	player   world.PlayerID
	core     *Core
	state    *world.GameState
	finder   *pathfinder.Pathfinder
	selected world.UnitID
	hasSel   bool
}

// NewReplica creates an empty view for a player. Call Sync to catch up.
func NewReplica(c *Core, player world.PlayerID) *Replica {
	return &Replica{
		player: player,
		core:   c,
		state:  world.NewGameState(),
		finder: pathfinder.New(c.MapSize()),
	}
}

// Player returns the player this view belongs to.
func (r *Replica) Player() world.PlayerID {
	return r.player
}

// State returns the replica world. Callers must not apply events to it.
func (r *Replica) State() *world.GameState {
	return r.state
}

// Pathfinder returns the search grid for the selected unit.
func (r *Replica) Pathfinder() *pathfinder.Pathfinder {
	return r.finder
}

// Sync drains the player's event queue and applies every event in order.
// The pathfinder is refilled if a unit is still selected; a selected unit
// that was destroyed is deselected.
func (r *Replica) Sync() []world.Event {
	var applied []world.Event
	for {
		event, ok := r.core.PollEvent(r.player)
		if !ok {
			break
		}
		r.state.ApplyEvent(r.core.ObjectTypes(), event)
		applied = append(applied, event)
	}
	if len(applied) > 0 && r.hasSel {
		if u, ok := r.state.Lookup(r.selected); ok {
			r.finder.FillMap(r.state, u)
		} else {
			r.hasSel = false
		}
	}
	return applied
}

// Select makes a unit the current selection and fills the pathfinder.
// Returns false if the unit is not in this view.
func (r *Replica) Select(id world.UnitID) bool {
	u, ok := r.state.Lookup(id)
	if !ok {
		return false
	}
	r.selected = id
	r.hasSel = true
	r.finder.FillMap(r.state, u)
	return true
}

// Deselect clears the selection.
func (r *Replica) Deselect() {
	r.hasSel = false
}

// Selected returns the selected unit.
func (r *Replica) Selected() (world.Unit, bool) {
	if !r.hasSel {
		return world.Unit{}, false
	}
	return r.state.Lookup(r.selected)
}

// PathTo returns the shortest path from the selected unit to dest.
func (r *Replica) PathTo(dest hex.MapPos) ([]hex.MapPos, bool) {
	if !r.hasSel || !r.finder.IsReachable(dest) {
		return nil, false
	}
	return r.finder.GetPath(dest), true
}
