// Package rules holds the static game-rules registry: unit and weapon types.
// Tables are built once and never mutated afterwards.
package rules

import "fmt"

// UnitTypeID indexes ObjectTypes' unit table.
type UnitTypeID int

// WeaponTypeID indexes ObjectTypes' weapon table.
type WeaponTypeID int

// UnitClass distinguishes infantry from vehicles.
type UnitClass int

const (
	Infantry UnitClass = iota
	Vehicle
)

// String returns the lowercase name used in rules files.
func (c UnitClass) String() string {
	switch c {
	case Infantry:
		return "infantry"
	case Vehicle:
		return "vehicle"
	default:
		return "unknown"
	}
}

// ParseUnitClass converts a rules-file class name to a UnitClass.
func ParseUnitClass(s string) (UnitClass, error) {
	switch s {
	case "infantry":
		return Infantry, nil
	case "vehicle":
		return Vehicle, nil
	default:
		return 0, fmt.Errorf("rules: unknown unit class %q", s)
	}
}

// UnitType describes one kind of unit.
type UnitType struct {
	Name         string
	Class        UnitClass
	Count        int // Models per unit, cosmetic only
	Size         int
	Armor        int
	Toughness    int
	WeaponSkill  int
	WeaponTypeID WeaponTypeID
	MovePoints   int
}

// WeaponType describes one kind of weapon.
type WeaponType struct {
	Name        string
	Damage      int
	AP          int // Armor penetration
	Accuracy    int
	MaxDistance int
}
