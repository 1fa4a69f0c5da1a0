package rules

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

// File is the YAML structure of a rules file.
type File struct {
	Weapons []WeaponEntry `yaml:"weapons"`
	Units   []UnitEntry   `yaml:"units"`
}

// WeaponEntry is one weapon in a rules file.
type WeaponEntry struct {
	Name        string `yaml:"name"`
	Damage      int    `yaml:"damage"`
	AP          int    `yaml:"ap"`
	Accuracy    int    `yaml:"accuracy"`
	MaxDistance int    `yaml:"max_distance"`
}

// UnitEntry is one unit type in a rules file. Weapon refers to a weapon by name.
type UnitEntry struct {
	Name        string `yaml:"name"`
	Class       string `yaml:"class"`
	Count       int    `yaml:"count"`
	Size        int    `yaml:"size"`
	Armor       int    `yaml:"armor"`
	Toughness   int    `yaml:"toughness"`
	WeaponSkill int    `yaml:"weapon_skill"`
	Weapon      string `yaml:"weapon"`
	MovePoints  int    `yaml:"move_points"`
}

// Parse builds a registry from YAML. Weapons are registered before units so
// that units can reference them by name. Bad data is reported as an error.
func Parse(data []byte) (*ObjectTypes, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("rules: yaml unmarshal: %w", err)
	}
	return f.Build()
}

// Build validates the file contents and registers every entry.
func (f File) Build() (*ObjectTypes, error) {
	if len(f.Units) == 0 {
		return nil, fmt.Errorf("rules: no unit types defined")
	}

	t := NewObjectTypes()
	for _, w := range f.Weapons {
		if w.Name == "" {
			return nil, fmt.Errorf("rules: weapon without a name")
		}
		if _, dup := t.LookupWeaponType(w.Name); dup {
			return nil, fmt.Errorf("rules: duplicate weapon %q", w.Name)
		}
		if w.MaxDistance <= 0 {
			return nil, fmt.Errorf("rules: weapon %q: max_distance must be positive", w.Name)
		}
		t.AddWeaponType(WeaponType(w))
	}

	for _, u := range f.Units {
		if u.Name == "" {
			return nil, fmt.Errorf("rules: unit type without a name")
		}
		if _, dup := t.LookupUnitType(u.Name); dup {
			return nil, fmt.Errorf("rules: duplicate unit type %q", u.Name)
		}
		class, err := ParseUnitClass(u.Class)
		if err != nil {
			return nil, fmt.Errorf("unit type %q: %w", u.Name, err)
		}
		weaponID, ok := t.LookupWeaponType(u.Weapon)
		if !ok {
			return nil, fmt.Errorf("rules: unit type %q: unknown weapon %q", u.Name, u.Weapon)
		}
		if u.MovePoints < 0 {
			return nil, fmt.Errorf("rules: unit type %q: move_points must not be negative", u.Name)
		}
		t.AddUnitType(UnitType{
			Name:         u.Name,
			Class:        class,
			Count:        u.Count,
			Size:         u.Size,
			Armor:        u.Armor,
			Toughness:    u.Toughness,
			WeaponSkill:  u.WeaponSkill,
			WeaponTypeID: weaponID,
			MovePoints:   u.MovePoints,
		})
	}
	return t, nil
}

// Load loads the rules tables.
// Search order: customPath -> ~/.hexwar/configs/rules.yaml -> ./configs/rules.yaml -> embedded default
func Load(customPath string) (*ObjectTypes, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("rules: failed to read %s: %w", customPath, err)
		}
		t, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("rules: failed to parse %s: %w", customPath, err)
		}
		return t, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		if data, err := os.ReadFile(filepath.Join(home, ".hexwar", "configs", "rules.yaml")); err == nil {
			if t, err := Parse(data); err == nil {
				return t, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/rules.yaml"); err == nil {
		if t, err := Parse(data); err == nil {
			return t, nil
		}
	}

	t, err := Parse(defaultRulesYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded tables if embed fails
	}
	return t, nil
}

// DefaultYAML returns the embedded default rules file.
func DefaultYAML() []byte {
	return defaultRulesYAML
}
