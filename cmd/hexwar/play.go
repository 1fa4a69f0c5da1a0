package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hexwar/internal/platform/tui"
	"github.com/vovakirdan/hexwar/internal/storage"
)

// minWidth and minHeight fit the default 4x8 map with its status lines.
const (
	minWidth  = 40
	minHeight = 20
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a hot-seat match",
	Long: `Start a two-player match in this terminal. Players take turns at the
same keyboard; the map always shows the side whose turn it is.

Controls:
  Arrows/hjkl  - Move the cursor
  Enter        - Select own unit, move the selection, or attack an enemy
  N            - Create a unit at the cursor
  E            - End turn
  Esc          - Deselect
  ?            - Toggle help
  Ctrl+S       - Save the map to ~/.hexwar/screenshots
  Q/Ctrl+C     - Quit

Examples:
  hexwar play
  hexwar play --scenario empty
  hexwar play --seed 42 --config ./my-match.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logger := newLogger("hexwar")

	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && (w < minWidth || h < minHeight) {
		logger.Warn("terminal may be too small", "width", w, "height", h, "need", "40x20")
	}

	cfg, err := loadConfig()
	if err != nil {
		exitErr("%v", err)
	}
	// Log lines would tear the alternate screen, so the core logs nowhere.
	c, scenarioID, err := newGame(cfg, cfg.Seed, nil)
	if err != nil {
		exitErr("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open match database, the match will not be recorded", "error", err)
	}

	runErr := tui.Run(c, scenarioID, store)
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		exitErr("%v", runErr)
	}
}
