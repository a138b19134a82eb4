package rules

import "fmt"

// Armor is a suit of manufactured armor.
type Armor struct {
	Name string
	Base int
	// DexCap limits the Dexterity bonus; -1 means no limit.
	DexCap      int
	Description string
}

// ArmorClass is the armor class the armor gives at the given Dexterity
// modifier.
func (a Armor) ArmorClass(dexMod int) int {
	if a.DexCap >= 0 && dexMod > a.DexCap {
		dexMod = a.DexCap
	}
	return a.Base + dexMod
}

// ArmorTable lists the manufactured armors, keyed by directive name.
var ArmorTable = []Armor{
	{"Padded", 11, -1, "padded armor"},
	{"Leather", 11, -1, "leather armor"},
	{"StuddedLeather", 12, -1, "studded leather armor"},
	{"Hide", 12, 2, "hide armor"},
	{"ChainShirt", 13, 2, "chain shirt"},
	{"ScaleMail", 14, 2, "scale mail"},
	{"Breastplate", 14, 2, "breastplate"},
	{"HalfPlate", 15, 2, "half plate"},
	{"RingMail", 14, 0, "ring mail"},
	{"ChainMail", 16, 0, "chain mail"},
	{"Splint", 17, 0, "splint"},
	{"Plate", 18, 0, "plate"},
}

// LookupArmor finds an armor by name, ignoring case and spacing.
func LookupArmor(name string) (Armor, error) {
	key := squash(name)
	for _, a := range ArmorTable {
		if squash(a.Name) == key || squash(a.Description) == key {
			return a, nil
		}
	}
	return Armor{}, fmt.Errorf("unknown armor %q", name)
}

// ShieldBonus is the armor class a shield adds.
const ShieldBonus = 2
