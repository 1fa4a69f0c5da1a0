package rules

import "fmt"

// ObjectTypes is the registry of unit and weapon types.
// Lookups by id or by a name that is known at startup panic on failure:
// a missing entry means the tables themselves are broken.
type ObjectTypes struct {
	unitTypes   []UnitType
	weaponTypes []WeaponType
}

// NewObjectTypes creates an empty registry.
func NewObjectTypes() *ObjectTypes {
	return &ObjectTypes{}
}

// AddWeaponType registers a weapon type and returns its id.
// Panics if a weapon with the same name is already registered.
func (t *ObjectTypes) AddWeaponType(w WeaponType) WeaponTypeID {
	if _, ok := t.LookupWeaponType(w.Name); ok {
		panic(fmt.Sprintf("rules: weapon type %q already registered", w.Name))
	}
	t.weaponTypes = append(t.weaponTypes, w)
	return WeaponTypeID(len(t.weaponTypes) - 1)
}

// AddUnitType registers a unit type and returns its id.
// Panics on a duplicate name or a weapon id that is not registered.
func (t *ObjectTypes) AddUnitType(u UnitType) UnitTypeID {
	if _, ok := t.LookupUnitType(u.Name); ok {
		panic(fmt.Sprintf("rules: unit type %q already registered", u.Name))
	}
	if int(u.WeaponTypeID) < 0 || int(u.WeaponTypeID) >= len(t.weaponTypes) {
		panic(fmt.Sprintf("rules: unit type %q references unknown weapon id %d", u.Name, u.WeaponTypeID))
	}
	t.unitTypes = append(t.unitTypes, u)
	return UnitTypeID(len(t.unitTypes) - 1)
}

// UnitType returns the unit type with the given id.
func (t *ObjectTypes) UnitType(id UnitTypeID) UnitType {
	if int(id) < 0 || int(id) >= len(t.unitTypes) {
		panic(fmt.Sprintf("rules: unknown unit type id %d", id))
	}
	return t.unitTypes[id]
}

// WeaponType returns the weapon type with the given id.
func (t *ObjectTypes) WeaponType(id WeaponTypeID) WeaponType {
	if int(id) < 0 || int(id) >= len(t.weaponTypes) {
		panic(fmt.Sprintf("rules: unknown weapon type id %d", id))
	}
	return t.weaponTypes[id]
}

// UnitTypeIDByName resolves a unit type name. Panics if it is unknown.
func (t *ObjectTypes) UnitTypeIDByName(name string) UnitTypeID {
	id, ok := t.LookupUnitType(name)
	if !ok {
		panic(fmt.Sprintf("rules: unknown unit type %q", name))
	}
	return id
}

// WeaponTypeIDByName resolves a weapon type name. Panics if it is unknown.
func (t *ObjectTypes) WeaponTypeIDByName(name string) WeaponTypeID {
	id, ok := t.LookupWeaponType(name)
	if !ok {
		panic(fmt.Sprintf("rules: unknown weapon type %q", name))
	}
	return id
}

// LookupUnitType resolves a unit type name without panicking.
func (t *ObjectTypes) LookupUnitType(name string) (UnitTypeID, bool) {
	for i, u := range t.unitTypes {
		if u.Name == name {
			return UnitTypeID(i), true
		}
	}
	return 0, false
}

// LookupWeaponType resolves a weapon type name without panicking.
func (t *ObjectTypes) LookupWeaponType(name string) (WeaponTypeID, bool) {
	for i, w := range t.weaponTypes {
		if w.Name == name {
			return WeaponTypeID(i), true
		}
	}
	return 0, false
}

// UnitTypes returns a copy of the unit table in id order.
func (t *ObjectTypes) UnitTypes() []UnitType {
	return append([]UnitType(nil), t.unitTypes...)
}

// WeaponTypes returns a copy of the weapon table in id order.
func (t *ObjectTypes) WeaponTypes() []WeaponType {
	return append([]WeaponType(nil), t.weaponTypes...)
}

// WeaponOf returns the weapon carried by a unit type.
func (t *ObjectTypes) WeaponOf(id UnitTypeID) WeaponType {
	return t.WeaponType(t.UnitType(id).WeaponTypeID)
}

// Default builds the built-in tables: two weapons and two unit types.
func Default() *ObjectTypes {
	t := NewObjectTypes()
	cannon := t.AddWeaponType(WeaponType{
		Name:        "cannon",
		Damage:      9,
		AP:          9,
		Accuracy:    5,
		MaxDistance: 5,
	})
	rifle := t.AddWeaponType(WeaponType{
		Name:        "rifle",
		Damage:      2,
		AP:          1,
		Accuracy:    5,
		MaxDistance: 3,
	})
	t.AddUnitType(UnitType{
		Name:         "tank",
		Class:        Vehicle,
		Count:        1,
		Size:         6,
		Armor:        11,
		Toughness:    9,
		WeaponSkill:  5,
		WeaponTypeID: cannon,
		MovePoints:   5,
	})
	t.AddUnitType(UnitType{
		Name:         "soldier",
		Class:        Infantry,
		Count:        4,
		Size:         4,
		Armor:        1,
		Toughness:    2,
		WeaponSkill:  5,
		WeaponTypeID: rifle,
		MovePoints:   3,
	})
	return t
}
