package scenario

import "github.com/vovakirdan/hexwar/internal/hex"

func init() {
	Register(Scenario{
		ID:      "skirmish",
		Title:   "Skirmish",
		MapSize: hex.Size{W: 4, H: 8},
		Units: []Placement{
			{Pos: hex.P(0, 0), Type: "tank", Player: 0},
			{Pos: hex.P(0, 1), Type: "soldier", Player: 0},
			{Pos: hex.P(2, 0), Type: "tank", Player: 1},
			{Pos: hex.P(2, 2), Type: "soldier", Player: 1},
		},
	})
	Register(Scenario{
		ID:      "empty",
		Title:   "Empty map",
		MapSize: hex.Size{W: 4, H: 8},
	})
}
