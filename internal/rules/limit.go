package rules

import "fmt"

// LimitKind is how often a limited feature can be used.
type LimitKind int

const (
	Recharge LimitKind = iota + 1
	PerDay
	PerTurn
	RechargeAfterRest
	AlternateFormOnly
)

// UsageLimit is the parenthetical after a feature name, as in
// "Fire Breath (Recharge 5–6)".
type UsageLimit struct {
	Kind LimitKind `json:"kind"`
	// N is the recharge threshold or the number of uses.
	N int `json:"n,omitempty"`
	// Form describes the alternate form for AlternateFormOnly.
	Form string `json:"form,omitempty"`
}

func (l UsageLimit) String() string {
	switch l.Kind {
	case Recharge:
		if l.N >= 6 {
			return "Recharge 6"
		}
		return fmt.Sprintf("Recharge %d–6", l.N)
	case PerDay:
		return fmt.Sprintf("%d/Day", l.N)
	case PerTurn:
		return fmt.Sprintf("%d/Turn", l.N)
	case RechargeAfterRest:
		return "Recharges after a Short or Long Rest"
	case AlternateFormOnly:
		return l.Form + " Form Only"
	}
	return ""
}

// Validate checks the limit's parameters.
func (l UsageLimit) Validate() error {
	switch l.Kind {
	case Recharge:
		if l.N < 2 || l.N > 6 {
			return fmt.Errorf("recharge threshold %d outside 2..6", l.N)
		}
	case PerDay, PerTurn:
		if l.N < 1 {
			return fmt.Errorf("usage count %d must be positive", l.N)
		}
	case AlternateFormOnly:
		if l.Form == "" {
			return fmt.Errorf("alternate form needs a description")
		}
	case RechargeAfterRest:
	default:
		return fmt.Errorf("unknown usage limit %d", int(l.Kind))
	}
	return nil
}
