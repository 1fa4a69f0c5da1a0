// Package pathfinder computes movement costs and shortest paths for a unit
// on the hex map, treating occupied tiles as impassable.
package pathfinder

import (
	"fmt"

	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/world"
)

// Unreached is the cost of a tile the last fill did not reach.
const Unreached = 30000

// Tile holds the search result for one map tile.
type Tile struct {
	Cost      int
	Parent    hex.Dir // Points back toward the tile this one was reached from
	HasParent bool
}

// Pathfinder is a reusable search grid sized to the map.
// Stored cells are row-major: index = y*W + x.
type Pathfinder struct {
	size  hex.Size
	tiles []Tile
	queue []hex.MapPos
	start hex.MapPos
}

// New creates a pathfinder for a map of the given size.
func New(size hex.Size) *Pathfinder {
	return &Pathfinder{
		size:  size,
		tiles: make([]Tile, size.Area()),
	}
}

// Size returns the map size the pathfinder was built for.
func (p *Pathfinder) Size() hex.Size {
	return p.size
}

// Start returns the position the last fill started from.
func (p *Pathfinder) Start() hex.MapPos {
	return p.start
}

func (p *Pathfinder) tile(pos hex.MapPos) *Tile {
	return &p.tiles[p.size.Index(pos)]
}

// FillMap recomputes costs from the unit's position over the whole map.
// Uniform edge weights make a FIFO queue sufficient: a tile is re-queued
// whenever its cost improves, and costs only ever decrease.
func (p *Pathfinder) FillMap(state *world.GameState, unit world.Unit) {
	for i := range p.tiles {
		p.tiles[i] = Tile{Cost: Unreached}
	}
	p.queue = p.queue[:0]
	p.start = unit.Pos

	if !p.size.Contains(unit.Pos) {
		return
	}
	*p.tile(unit.Pos) = Tile{Cost: 0}
	p.queue = append(p.queue, unit.Pos)

	for len(p.queue) > 0 {
		pos := p.queue[0]
		p.queue = p.queue[1:]
		p.tryNeighbours(state, pos)
	}
}

func (p *Pathfinder) tryNeighbours(state *world.GameState, pos hex.MapPos) {
	cost := p.tile(pos).Cost
	for _, d := range hex.Dirs() {
		next := hex.Neighbour(pos, d)
		if !p.size.Contains(next) {
			continue
		}
		if state.IsOccupied(next) {
			continue
		}
		newCost := cost + 1
		t := p.tile(next)
		if newCost < t.Cost {
			t.Cost = newCost
			t.Parent = d.Opposite()
			t.HasParent = true
			p.queue = append(p.queue, next)
		}
	}
}

// Tile returns the search result for an on-map position.
func (p *Pathfinder) Tile(pos hex.MapPos) Tile {
	if !p.size.Contains(pos) {
		return Tile{Cost: Unreached}
	}
	return *p.tile(pos)
}

// Cost returns the number of steps needed to reach pos, or Unreached.
func (p *Pathfinder) Cost(pos hex.MapPos) int {
	return p.Tile(pos).Cost
}

// IsReachable returns true if the last fill reached pos.
func (p *Pathfinder) IsReachable(pos hex.MapPos) bool {
	return p.Cost(pos) < Unreached
}

// ReachableWithin returns the reachable tiles costing between 1 and points
// steps, ordered by row then column.
func (p *Pathfinder) ReachableWithin(points int) []hex.MapPos {
	var result []hex.MapPos
	for _, pos := range p.size.AllPositions() {
		c := p.tile(pos).Cost
		if c > 0 && c <= points {
			result = append(result, pos)
		}
	}
	return result
}

// GetPath returns the shortest path from the fill's start to destination,
// both ends included. Panics if destination is off the map or unreachable.
func (p *Pathfinder) GetPath(destination hex.MapPos) []hex.MapPos {
	if !p.size.Contains(destination) {
		panic(fmt.Sprintf("pathfinder: destination %s is off the map", destination))
	}
	if !p.IsReachable(destination) {
		panic(fmt.Sprintf("pathfinder: destination %s is unreachable", destination))
	}

	var path []hex.MapPos
	pos := destination
	for {
		path = append(path, pos)
		t := p.tile(pos)
		if t.Cost == 0 {
			break
		}
		pos = hex.Neighbour(pos, t.Parent)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
