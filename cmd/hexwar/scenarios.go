package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexwar/internal/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List all available scenarios",
	Long:  `Shows a list of all starting setups that can be played.`,
	Args:  cobra.NoArgs,
	Run:   runScenarios,
}

func runScenarios(_ *cobra.Command, _ []string) {
	list := scenario.List()
	if len(list) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, s := range list {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Printf("  %-*s  %-7s  %5s  %s\n", maxIDLen, "ID", "Map", "Units", "Title")
	fmt.Printf("  %-*s  %-7s  %5s  %s\n", maxIDLen, "--", "---", "-----", "-----")
	for _, info := range list {
		sc, err := scenario.Get(info.ID)
		if err != nil {
			continue
		}
		fmt.Printf("  %-*s  %-7s  %5d  %s\n", maxIDLen, sc.ID, sc.MapSize, len(sc.Units), sc.Title)
	}

	fmt.Println()
	fmt.Println("Run 'hexwar play --scenario <id>' to play one.")
}
