package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexwar/internal/core"
	"github.com/vovakirdan/hexwar/internal/rules"
)

var flagRulesYAML bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show unit and weapon tables",
	Long: `Print the weapon and unit tables in use and the chance that one
attack of each unit type kills each other unit type.

The tables come from rules_path in the match config, or the built-in
defaults. Use --yaml to dump the built-in tables as a starting point for
your own rules file.

Examples:
  hexwar rules
  hexwar rules --yaml > my-rules.yaml`,
	Args: cobra.NoArgs,
	Run:  runRules,
}

func init() {
	rulesCmd.Flags().BoolVar(&flagRulesYAML, "yaml", false, "Print the built-in rules file")
}

func runRules(_ *cobra.Command, _ []string) {
	if flagRulesYAML {
		os.Stdout.Write(rules.DefaultYAML())
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		exitErr("%v", err)
	}
	types, err := rules.Load(cfg.RulesPath)
	if err != nil {
		exitErr("%v", err)
	}

	fmt.Println("Weapons:")
	fmt.Printf("  %-10s  %6s  %3s  %8s  %5s\n", "Name", "Damage", "AP", "Accuracy", "Range")
	for _, w := range types.WeaponTypes() {
		fmt.Printf("  %-10s  %6d  %3d  %8d  %5d\n", w.Name, w.Damage, w.AP, w.Accuracy, w.MaxDistance)
	}

	fmt.Println()
	fmt.Println("Units:")
	fmt.Printf("  %-10s  %-8s  %5s  %4s  %5s  %9s  %5s  %-10s  %2s\n",
		"Name", "Class", "Count", "Size", "Armor", "Toughness", "Skill", "Weapon", "MP")
	units := types.UnitTypes()
	for _, u := range units {
		fmt.Printf("  %-10s  %-8s  %5d  %4d  %5d  %9d  %5d  %-10s  %2d\n",
			u.Name, u.Class, u.Count, u.Size, u.Armor, u.Toughness, u.WeaponSkill,
			types.WeaponType(u.WeaponTypeID).Name, u.MovePoints)
	}

	fmt.Println()
	fmt.Println("Kill chance per attack (row attacks column):")
	fmt.Printf("  %-10s", "")
	for _, d := range units {
		fmt.Printf("  %8s", d.Name)
	}
	fmt.Println()
	for _, a := range units {
		fmt.Printf("  %-10s", a.Name)
		weapon := types.WeaponType(a.WeaponTypeID)
		for _, d := range units {
			p := core.Thresholds(a, d, weapon).KillProbability()
			fmt.Printf("  %7.0f%%", p*100)
		}
		fmt.Println()
	}
}
