// Package script runs YAML command scripts against a core. Scripts drive
// the sim subcommand and make whole matches reproducible from a seed.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/hexwar/internal/core"
	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/world"
)

// Step operations.
const (
	OpCreate  = "create"
	OpMove    = "move"
	OpMoveTo  = "move_to"
	OpAttack  = "attack"
	OpEndTurn = "end_turn"
)

// ErrUnreachable is returned by a move_to step whose destination the
// pathfinder cannot reach. Run counts it as a rejection.
var ErrUnreachable = errors.New("script: destination unreachable")

// Step is one scripted command. Which fields are required depends on Op.
type Step struct {
	Op       string        `yaml:"op"`
	Pos      *hex.MapPos   `yaml:"pos,omitempty"`
	Unit     *world.UnitID `yaml:"unit,omitempty"`
	Path     []hex.MapPos  `yaml:"path,omitempty"`
	To       *hex.MapPos   `yaml:"to,omitempty"`
	Attacker *world.UnitID `yaml:"attacker,omitempty"`
	Defender *world.UnitID `yaml:"defender,omitempty"`
}

// File is the YAML structure of a script.
type File struct {
	Steps []Step `yaml:"steps"`
}

// Parse decodes and validates a script.
func Parse(data []byte) ([]Step, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("script: yaml unmarshal: %w", err)
	}
	for i, s := range f.Steps {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("script: step %d: %w", i, err)
		}
	}
	return f.Steps, nil
}

// Load reads and parses a script file.
func Load(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks that the fields Op needs are present.
func (s Step) Validate() error {
	switch s.Op {
	case OpCreate:
		if s.Pos == nil {
			return fmt.Errorf("%s needs pos", s.Op)
		}
	case OpMove:
		if s.Unit == nil || len(s.Path) == 0 {
			return fmt.Errorf("%s needs unit and path", s.Op)
		}
	case OpMoveTo:
		if s.Unit == nil || s.To == nil {
			return fmt.Errorf("%s needs unit and to", s.Op)
		}
	case OpAttack:
		if s.Attacker == nil || s.Defender == nil {
			return fmt.Errorf("%s needs attacker and defender", s.Op)
		}
	case OpEndTurn:
	case "":
		return errors.New("missing op")
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
	return nil
}

// Command converts the step into a core command. A move_to step is routed
// through view, the acting player's replica.
func (s Step) Command(view *core.Replica) (core.Command, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	switch s.Op {
	case OpCreate:
		return core.CommandCreateUnit{Pos: *s.Pos}, nil
	case OpMove:
		return core.CommandMove{UnitID: *s.Unit, Path: append([]hex.MapPos(nil), s.Path...)}, nil
	case OpMoveTo:
		if !view.Select(*s.Unit) {
			return nil, fmt.Errorf("%w: unit %d is not on the map", ErrUnreachable, *s.Unit)
		}
		defer view.Deselect()
		path, ok := view.PathTo(*s.To)
		if !ok {
			return nil, fmt.Errorf("%w: %s from unit %d", ErrUnreachable, *s.To, *s.Unit)
		}
		return core.CommandMove{UnitID: *s.Unit, Path: path}, nil
	case OpAttack:
		return core.CommandAttackUnit{AttackerID: *s.Attacker, DefenderID: *s.Defender}, nil
	default:
		return core.CommandEndTurn{}, nil
	}
}

// Rejection records a step the core refused.
type Rejection struct {
	Step int
	Op   string
	Err  error
}

// Report summarizes a script run.
type Report struct {
	Applied    int
	Rejections []Rejection
	Events     int
	Turn       int
	Winner     world.PlayerID
	HasWinner  bool
	Consistent bool // Every replica matched the master state at the end
}

// Rejected returns the number of refused steps.
func (r Report) Rejected() int {
	return len(r.Rejections)
}

// Run applies every step in order on behalf of whichever player's turn it
// is. Rejections are recorded and the run continues. It stops early once a
// player has won.
func Run(c *core.Core, steps []Step, logger *log.Logger) (Report, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	replicas := make([]*core.Replica, world.NumPlayers)
	for p := range replicas {
		replicas[p] = core.NewReplica(c, world.PlayerID(p))
		replicas[p].Sync()
	}

	var report Report
	for i, step := range steps {
		player := c.PlayerID()
		cmd, err := step.Command(replicas[player])
		if err == nil {
			err = c.DoCommand(cmd)
		}
		switch {
		case err == nil:
			report.Applied++
			logger.Debug("step applied", "step", i, "player", player, "command", cmd)
		case errors.Is(err, core.ErrRejected), errors.Is(err, ErrUnreachable):
			report.Rejections = append(report.Rejections, Rejection{Step: i, Op: step.Op, Err: err})
			logger.Warn("step rejected", "step", i, "player", player, "op", step.Op, "error", err)
		default:
			return report, fmt.Errorf("script: step %d: %w", i, err)
		}

		for _, r := range replicas {
			r.Sync()
		}
		if w, ok := c.Winner(); ok {
			report.Winner, report.HasWinner = w, true
			logger.Info("match decided", "step", i, "winner", w)
			break
		}
	}

	master := c.State()
	report.Consistent = true
	for _, r := range replicas {
		if !r.State().Equal(master) {
			report.Consistent = false
			logger.Error("replica diverged", "player", r.Player())
		}
	}
	report.Events = c.EventCount()
	report.Turn = c.Turn()
	return report, nil
}
