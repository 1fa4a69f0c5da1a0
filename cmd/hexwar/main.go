// hexwar is a turn-based hex strategy game for two players in the terminal.
//
// Usage:
//
//	hexwar play               - Play a hot-seat match
//	hexwar serve              - Start SSH server for remote play
//	hexwar sim <script.yaml>  - Run a command script and print the result
//	hexwar rules              - Show unit and weapon tables
//	hexwar scenarios          - List available scenarios
//	hexwar history [match]    - Show recorded matches
//
// Global flags:
//
//	--config <path>     - Match config YAML (default: search ~/.hexwar/configs, ./configs)
//	--seed <value>      - Set RNG seed for reproducible combat
//	--db <path>         - Set database path (default: ~/.hexwar/matches.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagScenario string
	flagLenient  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexwar",
	Short: "Hexwar - turn-based hex strategy in your terminal",
	Long: `Hexwar is a two-player tactical game on a hex map. Tanks and soldiers
move, shoot and die by the dice; the last side with units standing wins.

Available commands:
  play       - Hot-seat match in this terminal
  serve      - Start SSH server for remote play
  sim        - Run a YAML command script
  rules      - Show unit and weapon tables
  scenarios  - List starting setups
  history    - Show recorded matches

Examples:
  hexwar play
  hexwar play --scenario empty --seed 42
  hexwar sim ./scripts/opening.yaml --seed 7
  hexwar serve --ssh :2222
  hexwar history`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to match config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hexwar/matches.db", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagScenario, "scenario", "", "Scenario id (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagLenient, "lenient", false, "Skip ownership, occupancy and path checks")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger returns a stderr logger at the --log-level level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// exitErr prints an error and exits.
func exitErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
