package core

import (
	"math/rand"

	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/rules"
	"github.com/vovakirdan/hexwar/internal/world"
)

// rollSides is the number of values a single roll can take: [-5, 5).
const rollSides = 10

// HitChance holds the three thresholds an attack must beat, in order.
// A roll r passes a threshold t when r < t.
type HitChance struct {
	Hit    int
	Pierce int
	Wound  int
}

// Thresholds computes the hit chain thresholds for a weapon fired by an
// attacker of type attacker at a defender of type defender.
func Thresholds(attacker, defender rules.UnitType, weapon rules.WeaponType) HitChance {
	return HitChance{
		Hit:    -15 + defender.Size + weapon.Accuracy + attacker.WeaponSkill,
		Pierce: 5 - defender.Armor + weapon.AP,
		Wound:  -defender.Toughness + weapon.Damage,
	}
}

// passChance returns the probability that one roll beats threshold.
func passChance(threshold int) float64 {
	passing := threshold - (-rollSides / 2)
	passing = max(0, min(rollSides, passing))
	return float64(passing) / rollSides
}

// KillProbability returns the chance that all three tests succeed.
func (h HitChance) KillProbability() float64 {
	return passChance(h.Hit) * passChance(h.Pierce) * passChance(h.Wound)
}

// roll draws a uniform integer in [-5, 5).
func roll(rng *rand.Rand) int {
	return rng.Intn(rollSides) - rollSides/2
}

func test(rng *rand.Rand, threshold int) bool {
	return roll(rng) < threshold
}

// hitTest resolves an attack. Checks run in the order range, hit, pierce,
// wound, and a failed check consumes no further rolls.
func (c *Core) hitTest(attacker, defender world.Unit) bool {
	attackerType := c.types.UnitType(attacker.TypeID)
	defenderType := c.types.UnitType(defender.TypeID)
	weapon := c.types.WeaponType(attackerType.WeaponTypeID)

	if hex.Distance(attacker.Pos, defender.Pos) > weapon.MaxDistance {
		return false
	}
	chance := Thresholds(attackerType, defenderType, weapon)
	return test(c.rng, chance.Hit) &&
		test(c.rng, chance.Pierce) &&
		test(c.rng, chance.Wound)
}
