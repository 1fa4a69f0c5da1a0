// Package scenario provides a registry of starting setups.
// Built-in scenarios register themselves in init(), and the CLI looks them
// up by id without knowing where they are defined.
package scenario

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/hexwar/internal/core"
	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/world"
)

// Placement puts one unit of a named type on the map for a player.
type Placement struct {
	Pos    hex.MapPos     `yaml:"pos"`
	Type   string         `yaml:"type"`
	Player world.PlayerID `yaml:"player"`
}

// Scenario is a map size plus the units present at the start.
type Scenario struct {
	ID      string
	Title   string
	MapSize hex.Size
	Units   []Placement
}

// Info contains metadata about a registered scenario.
type Info struct {
	ID    string
	Title string
	Units int
}

var (
	scenarios = make(map[string]Scenario)
	mu        sync.RWMutex
)

// Register adds a scenario to the registry.
// Panics if a scenario with the same ID is already registered.
func Register(s Scenario) {
	mu.Lock()
	defer mu.Unlock()

	if s.ID == "" {
		panic("scenario: empty id")
	}
	if _, exists := scenarios[s.ID]; exists {
		panic(fmt.Sprintf("scenario: %q already registered", s.ID))
	}
	s.Units = append([]Placement(nil), s.Units...)
	scenarios[s.ID] = s
}

// List returns information about all registered scenarios, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(scenarios))
	for _, s := range scenarios {
		result = append(result, Info{ID: s.ID, Title: s.Title, Units: len(s.Units)})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Get returns a copy of a scenario by its ID.
func Get(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := scenarios[id]
	if !ok {
		return Scenario{}, fmt.Errorf("scenario: unknown scenario %q", id)
	}
	s.Units = append([]Placement(nil), s.Units...)
	return s, nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := scenarios[id]
	return ok
}

// Apply deploys every placement of s into c, in order. It stops at the
// first placement the core rejects.
func Apply(c *core.Core, s Scenario) error {
	for i, p := range s.Units {
		if err := c.Deploy(p.Pos, p.Type, p.Player); err != nil {
			return fmt.Errorf("scenario: %s placement %d: %w", s.ID, i, err)
		}
	}
	return nil
}
