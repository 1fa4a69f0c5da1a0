package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hexwar/internal/platform/tui"
	"github.com/vovakirdan/hexwar/internal/storage"
	"github.com/vovakirdan/hexwar/internal/world"
)

var (
	flagHistoryLimit  int
	flagHistoryBrowse bool
	flagHistoryStats  string
)

var historyCmd = &cobra.Command{
	Use:   "history [match-id]",
	Short: "Show recorded matches",
	Long: `List the most recent matches, show one match in detail, or
browse the history interactively.

Examples:
  hexwar history
  hexwar history --limit 50
  hexwar history K3QZ7ABD
  hexwar history --stats skirmish
  hexwar history --browse`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of matches to list")
	historyCmd.Flags().BoolVar(&flagHistoryBrowse, "browse", false, "Browse matches interactively")
	historyCmd.Flags().StringVar(&flagHistoryStats, "stats", "", "Show aggregated results for a scenario")
}

func runHistory(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening match database: %v", err)
	}

	switch {
	case flagHistoryBrowse:
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		err = tui.RunHistory(store, width, height)
	case flagHistoryStats != "":
		err = printStats(store, flagHistoryStats)
	case len(args) == 1:
		err = printMatch(store, args[0])
	default:
		err = printRecent(store, flagHistoryLimit)
	}
	store.Close()
	if err != nil {
		exitErr("%v", err)
	}
}

func playerName(id int) string {
	if id == storage.NoWinner {
		return "-"
	}
	return fmt.Sprintf("Player %d", id+1)
}

func printRecent(store *storage.Store, limit int) error {
	matches, err := store.RecentMatches(limit)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		return nil
	}

	fmt.Printf("  %-8s  %-10s  %-8s  %5s  %-8s  %s\n", "Match", "Scenario", "Winner", "Turns", "End", "Date")
	fmt.Printf("  %-8s  %-10s  %-8s  %5s  %-8s  %s\n", "-----", "--------", "------", "-----", "---", "----")
	for _, m := range matches {
		fmt.Printf("  %-8s  %-10s  %-8s  %5d  %-8s  %s\n",
			m.MatchID, m.Scenario, playerName(m.Winner), m.Turns, m.EndReason, m.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printMatch(store *storage.Store, id string) error {
	m, err := store.MatchByID(id)
	if err != nil {
		return err
	}
	fmt.Printf("Match:     %s\n", m.MatchID)
	fmt.Printf("Scenario:  %s\n", m.Scenario)
	fmt.Printf("Seed:      %d\n", m.Seed)
	fmt.Printf("Winner:    %s\n", playerName(m.Winner))
	fmt.Printf("Turns:     %d\n", m.Turns)
	fmt.Printf("Events:    %d\n", m.Events)
	fmt.Printf("Ended by:  %s\n", m.EndReason)
	fmt.Printf("Played:    %s\n", m.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func printStats(store *storage.Store, scenarioID string) error {
	stats, err := store.ScenarioStats(scenarioID)
	if err != nil {
		return err
	}
	fmt.Printf("Scenario %s\n", scenarioID)
	fmt.Printf("  Matches:    %d\n", stats.Matches)
	if stats.Matches == 0 {
		return nil
	}
	for p := 0; p < world.NumPlayers; p++ {
		if n, ok := stats.Wins[p]; ok {
			fmt.Printf("  %s: %d wins\n", playerName(p), n)
		}
	}
	fmt.Printf("  No winner:  %d\n", stats.NoWinner)
	fmt.Printf("  Avg turns:  %.1f\n", stats.AvgTurns)
	fmt.Printf("  Last match: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	return nil
}
