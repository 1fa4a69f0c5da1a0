package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexwar/internal/core"
	"github.com/vovakirdan/hexwar/internal/script"
	"github.com/vovakirdan/hexwar/internal/storage"
)

var (
	flagRecord    bool
	flagShowState bool
)

var simCmd = &cobra.Command{
	Use:   "sim <script.yaml>",
	Short: "Run a command script",
	Long: `Set up the configured scenario and apply a YAML command script, each
step on behalf of the player whose turn it is. Rejected steps are reported
and skipped. With a fixed --seed the outcome is fully reproducible.

Script format:
  steps:
    - op: move_to      # or move with an explicit path
      unit: 1
      to: {x: 1, y: 3}
    - op: attack
      attacker: 0
      defender: 3
    - op: create
      pos: {x: 3, y: 7}
    - op: end_turn

Examples:
  hexwar sim opening.yaml --seed 7
  hexwar sim opening.yaml --seed 7 --state --log-level debug
  hexwar sim opening.yaml --record`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the result in the match history")
	simCmd.Flags().BoolVar(&flagShowState, "state", false, "Print every unit at the end")
}

func runSim(_ *cobra.Command, args []string) {
	logger := newLogger("hexwar")

	steps, err := script.Load(args[0])
	if err != nil {
		exitErr("%v", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		exitErr("%v", err)
	}
	c, scenarioID, err := newGame(cfg, cfg.Seed, logger)
	if err != nil {
		exitErr("%v", err)
	}

	report, err := script.Run(c, steps, logger)
	if err != nil {
		exitErr("%v", err)
	}

	fmt.Printf("Scenario:  %s (seed %d)\n", scenarioID, c.Seed())
	fmt.Printf("Steps:     %d applied, %d rejected\n", report.Applied, report.Rejected())
	for _, r := range report.Rejections {
		fmt.Printf("  step %-3d %-8s %v\n", r.Step, r.Op, r.Err)
	}
	fmt.Printf("Events:    %d\n", report.Events)
	fmt.Printf("Turn:      %d\n", report.Turn)
	if report.HasWinner {
		fmt.Printf("Winner:    %s\n", c.Players()[report.Winner].Name)
	} else {
		fmt.Println("Winner:    none")
	}
	if !report.Consistent {
		fmt.Println("WARNING: player views diverged from the master state")
	}

	if flagShowState {
		printUnits(c)
	}
	if flagRecord {
		if err := recordSim(c, scenarioID, report); err != nil {
			exitErr("%v", err)
		}
	}
}

func printUnits(c *core.Core) {
	types := c.ObjectTypes()
	fmt.Println()
	fmt.Printf("  %-4s  %-8s  %-8s  %-7s  %s\n", "ID", "Type", "Player", "Pos", "MP")
	for _, u := range c.State().Units() {
		fmt.Printf("  %-4d  %-8s  %-8s  %-7s  %d\n",
			u.ID, types.UnitType(u.TypeID).Name, c.Players()[u.PlayerID].Name, u.Pos, u.MovePoints)
	}
}

func recordSim(c *core.Core, scenarioID string, report script.Report) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	winner := storage.NoWinner
	if report.HasWinner {
		winner = int(report.Winner)
	}
	rec := storage.MatchRecord{
		MatchID:   storage.NewMatchID(),
		Scenario:  scenarioID,
		Seed:      c.Seed(),
		Winner:    winner,
		Turns:     report.Turn,
		Events:    report.Events,
		EndReason: storage.EndScript,
	}
	if _, err := store.SaveMatch(rec); err != nil {
		return err
	}
	fmt.Printf("Recorded as match %s\n", rec.MatchID)
	return nil
}
