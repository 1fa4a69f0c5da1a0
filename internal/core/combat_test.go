package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/rules"
)

func TestThresholds(t *testing.T) {
	types := rules.Default()
	tank := types.UnitType(types.UnitTypeIDByName("tank"))
	soldier := types.UnitType(types.UnitTypeIDByName("soldier"))
	cannon := types.WeaponOf(types.UnitTypeIDByName("tank"))
	rifle := types.WeaponOf(types.UnitTypeIDByName("soldier"))

	tests := []struct {
		name     string
		attacker rules.UnitType
		defender rules.UnitType
		weapon   rules.WeaponType
		expected HitChance
		kill     float64
	}{
		{"tank vs soldier", tank, soldier, cannon, HitChance{Hit: -1, Pierce: 13, Wound: 7}, 0.4},
		{"tank vs tank", tank, tank, cannon, HitChance{Hit: 1, Pierce: 3, Wound: 0}, 0.6 * 0.8 * 0.5},
		{"soldier vs soldier", soldier, soldier, rifle, HitChance{Hit: -1, Pierce: 5, Wound: 0}, 0.4 * 1 * 0.5},
		{"soldier vs tank", soldier, tank, rifle, HitChance{Hit: 1, Pierce: -5, Wound: -7}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Thresholds(tc.attacker, tc.defender, tc.weapon)
			if got != tc.expected {
				t.Errorf("Thresholds() = %+v, expected %+v", got, tc.expected)
			}
			if p := got.KillProbability(); math.Abs(p-tc.kill) > 1e-9 {
				t.Errorf("KillProbability() = %v, expected %v", p, tc.kill)
			}
		})
	}
}

func TestPassChanceBounds(t *testing.T) {
	tests := []struct {
		threshold int
		expected  float64
	}{
		{-10, 0},
		{-5, 0},
		{-4, 0.1},
		{0, 0.5},
		{5, 1},
		{50, 1},
	}
	for _, tc := range tests {
		if got := passChance(tc.threshold); got != tc.expected {
			t.Errorf("passChance(%d) = %v, expected %v", tc.threshold, got, tc.expected)
		}
	}
}

func TestRollRange(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		r := roll(rng)
		if r < -5 || r >= 5 {
			t.Fatalf("roll() = %d, outside [-5, 5)", r)
		}
		seen[r] = true
	}
	if len(seen) != rollSides {
		t.Errorf("saw %d distinct rolls, expected %d", len(seen), rollSides)
	}
}

func TestFailedHitConsumesOneRoll(t *testing.T) {
	const seed = 42
	rng := rand.New(rand.NewSource(seed))
	c := New(Options{MapSize: hex.Size{W: 4, H: 8}, Types: lethalTypes(), Rand: rng})
	c.Deploy(hex.P(0, 0), "blank", 0)
	c.Deploy(hex.P(1, 0), "soldier", 1)

	if err := c.DoCommand(CommandAttackUnit{AttackerID: 0, DefenderID: 1}); err != nil {
		t.Fatal(err)
	}
	if c.State().Len() != 2 {
		t.Fatal("a weapon that can never hit must not kill")
	}

	ref := rand.New(rand.NewSource(seed))
	ref.Intn(rollSides)
	if got, expected := rng.Int63(), ref.Int63(); got != expected {
		t.Error("a failed hit test should consume exactly one roll")
	}
}

func TestSuccessfulKillConsumesThreeRolls(t *testing.T) {
	const seed = 7
	rng := rand.New(rand.NewSource(seed))
	c := New(Options{MapSize: hex.Size{W: 4, H: 8}, Types: lethalTypes(), Rand: rng})
	c.Deploy(hex.P(0, 0), "soldier", 0)
	c.Deploy(hex.P(1, 0), "soldier", 1)

	if err := c.DoCommand(CommandAttackUnit{AttackerID: 0, DefenderID: 1}); err != nil {
		t.Fatal(err)
	}

	ref := rand.New(rand.NewSource(seed))
	for i := 0; i < 3; i++ {
		ref.Intn(rollSides)
	}
	if got, expected := rng.Int63(), ref.Int63(); got != expected {
		t.Error("a kill should consume exactly three rolls")
	}
}

func TestKillRateMatchesProbability(t *testing.T) {
	types := rules.Default()
	tankID := types.UnitTypeIDByName("tank")
	soldierID := types.UnitTypeIDByName("soldier")
	chance := Thresholds(types.UnitType(tankID), types.UnitType(soldierID), types.WeaponOf(tankID))

	const trials = 4000
	kills := 0
	rng := rand.New(rand.NewSource(2024))
	for i := 0; i < trials; i++ {
		if test(rng, chance.Hit) && test(rng, chance.Pierce) && test(rng, chance.Wound) {
			kills++
		}
	}
	rate := float64(kills) / trials
	if math.Abs(rate-chance.KillProbability()) > 0.05 {
		t.Errorf("kill rate = %.3f, expected about %.3f", rate, chance.KillProbability())
	}
}
