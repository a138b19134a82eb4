package rules

import (
	"fmt"

	"github.com/user4815162342/monstorr/internal/dice"
)

// Weapon is a row of the weapon table.
type Weapon struct {
	Name string
	// Count and Die give the damage dice; Die is zero for weapons that deal
	// a fixed 1 point of damage.
	Count      int
	Die        dice.Die
	DamageType string
	// Versatile is the die used two-handed, or zero.
	Versatile dice.Die
	Finesse   bool
	// Reach is zero for purely ranged weapons. Range and LongRange are
	// zero for purely melee weapons; thrown weapons have both.
	Reach     int
	Range     int
	LongRange int
	Target    string
	// Special replaces the damage clause entirely (the net).
	Special string
}

// Melee reports whether the weapon can make melee attacks.
func (w Weapon) Melee() bool { return w.Reach > 0 }

// Ranged reports whether the weapon can make ranged attacks.
func (w Weapon) Ranged() bool { return w.Range > 0 }

// Damage returns the damage dice for a wielder of the given size. Fixed
// damage weapons return a constant expression.
func (w Weapon) Damage(size Size) *dice.Expression {
	if w.Die == 0 {
		return dice.Constant(size.WeaponScale())
	}
	return dice.New(w.Count*size.WeaponScale(), w.Die, 0)
}

// TwoHanded returns the versatile damage dice, or nil.
func (w Weapon) TwoHanded(size Size) *dice.Expression {
	if w.Versatile == 0 {
		return nil
	}
	return dice.New(size.WeaponScale(), w.Versatile, 0)
}

const oneTarget = "one target"

// WeaponTable lists the simple and martial weapons, keyed by directive name.
var WeaponTable = []Weapon{
	{Name: "Unarmed Strike", DamageType: "bludgeoning", Reach: 5, Target: oneTarget},
	{Name: "Club", Count: 1, Die: dice.D4, DamageType: "bludgeoning", Reach: 5, Target: oneTarget},
	{Name: "Dagger", Count: 1, Die: dice.D4, DamageType: "piercing", Finesse: true, Reach: 5, Range: 20, LongRange: 60, Target: oneTarget},
	{Name: "Greatclub", Count: 1, Die: dice.D8, DamageType: "bludgeoning", Reach: 5, Target: oneTarget},
	{Name: "Handaxe", Count: 1, Die: dice.D6, DamageType: "slashing", Reach: 5, Range: 20, LongRange: 60, Target: oneTarget},
	{Name: "Javelin", Count: 1, Die: dice.D6, DamageType: "piercing", Reach: 5, Range: 30, LongRange: 120, Target: oneTarget},
	{Name: "Light Hammer", Count: 1, Die: dice.D4, DamageType: "bludgeoning", Reach: 5, Range: 20, LongRange: 60, Target: oneTarget},
	{Name: "Mace", Count: 1, Die: dice.D6, DamageType: "bludgeoning", Reach: 5, Target: oneTarget},
	{Name: "Quarterstaff", Count: 1, Die: dice.D6, DamageType: "bludgeoning", Versatile: dice.D8, Reach: 5, Target: oneTarget},
	{Name: "Sickle", Count: 1, Die: dice.D4, DamageType: "slashing", Reach: 5, Target: oneTarget},
	{Name: "Spear", Count: 1, Die: dice.D6, DamageType: "piercing", Versatile: dice.D8, Reach: 5, Range: 20, LongRange: 60, Target: oneTarget},
	{Name: "Light Crossbow", Count: 1, Die: dice.D8, DamageType: "piercing", Range: 80, LongRange: 320, Target: oneTarget},
	{Name: "Dart", Count: 1, Die: dice.D4, DamageType: "piercing", Finesse: true, Range: 20, LongRange: 60, Target: oneTarget},
	{Name: "Shortbow", Count: 1, Die: dice.D6, DamageType: "piercing", Range: 80, LongRange: 320, Target: oneTarget},
	{Name: "Sling", Count: 1, Die: dice.D4, DamageType: "bludgeoning", Range: 30, LongRange: 120, Target: oneTarget},
	{Name: "Battleaxe", Count: 1, Die: dice.D8, DamageType: "slashing", Versatile: dice.D10, Reach: 5, Target: oneTarget},
	{Name: "Flail", Count: 1, Die: dice.D8, DamageType: "bludgeoning", Reach: 5, Target: oneTarget},
	{Name: "Glaive", Count: 1, Die: dice.D10, DamageType: "slashing", Reach: 10, Target: oneTarget},
	{Name: "Greataxe", Count: 1, Die: dice.D12, DamageType: "slashing", Reach: 5, Target: oneTarget},
	{Name: "Greatsword", Count: 2, Die: dice.D6, DamageType: "slashing", Reach: 5, Target: oneTarget},
	{Name: "Halberd", Count: 1, Die: dice.D10, DamageType: "slashing", Reach: 10, Target: oneTarget},
	{Name: "Lance", Count: 1, Die: dice.D12, DamageType: "piercing", Reach: 10, Target: oneTarget},
	{Name: "Longsword", Count: 1, Die: dice.D8, DamageType: "slashing", Versatile: dice.D10, Reach: 5, Target: oneTarget},
	{Name: "Maul", Count: 2, Die: dice.D6, DamageType: "bludgeoning", Reach: 5, Target: oneTarget},
	{Name: "Morningstar", Count: 1, Die: dice.D8, DamageType: "piercing", Reach: 5, Target: oneTarget},
	{Name: "Pike", Count: 1, Die: dice.D10, DamageType: "piercing", Reach: 10, Target: oneTarget},
	{Name: "Rapier", Count: 1, Die: dice.D8, DamageType: "piercing", Finesse: true, Reach: 5, Target: oneTarget},
	{Name: "Scimitar", Count: 1, Die: dice.D6, DamageType: "slashing", Finesse: true, Reach: 5, Target: oneTarget},
	{Name: "Shortsword", Count: 1, Die: dice.D6, DamageType: "piercing", Finesse: true, Reach: 5, Target: oneTarget},
	{Name: "Trident", Count: 1, Die: dice.D6, DamageType: "piercing", Versatile: dice.D8, Reach: 5, Range: 20, LongRange: 60, Target: oneTarget},
	{Name: "War Pick", Count: 1, Die: dice.D8, DamageType: "piercing", Reach: 5, Target: oneTarget},
	{Name: "Warhammer", Count: 1, Die: dice.D8, DamageType: "bludgeoning", Versatile: dice.D10, Reach: 5, Target: oneTarget},
	{Name: "Whip", Count: 1, Die: dice.D4, DamageType: "slashing", Finesse: true, Reach: 10, Target: oneTarget},
	{Name: "Blowgun", DamageType: "piercing", Range: 25, LongRange: 100, Target: oneTarget},
	{Name: "Hand Crossbow", Count: 1, Die: dice.D6, DamageType: "piercing", Range: 30, LongRange: 120, Target: oneTarget},
	{Name: "Heavy Crossbow", Count: 1, Die: dice.D10, DamageType: "piercing", Range: 100, LongRange: 400, Target: oneTarget},
	{Name: "Longbow", Count: 1, Die: dice.D8, DamageType: "piercing", Range: 150, LongRange: 600, Target: oneTarget},
	{Name: "Net", Range: 5, LongRange: 15, Target: "one Large or smaller creature",
		Special: "The target is restrained. A creature can use its action to make a DC 10 Strength check, freeing itself or another creature within its reach on a success. Dealing 5 slashing damage to the net (AC 10) also frees the target without harming it, ending the effect and destroying the net."},
}

// LookupWeapon finds a weapon by name, ignoring case and spacing, so that
// "LightCrossbow" and "light crossbow" both match.
func LookupWeapon(name string) (Weapon, error) {
	key := squash(name)
	for _, w := range WeaponTable {
		if squash(w.Name) == key {
			return w, nil
		}
	}
	return Weapon{}, fmt.Errorf("unknown weapon %q", name)
}
