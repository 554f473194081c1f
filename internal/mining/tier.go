package mining

import "fmt"

// Tier classifies the quality of one mining hit.
type Tier uint8

const (
	Normal Tier = iota
	Critical
	SuperCritical
)

// Multiplier returns the ore multiplier applied to the base amount.
func (t Tier) Multiplier() float64 {
	switch t {
	case Critical:
		return 1.25
	case SuperCritical:
		return 1.5
	}
	return 1.0
}

func (t Tier) String() string {
	switch t {
	case Normal:
		return "normal"
	case Critical:
		return "critical"
	case SuperCritical:
		return "super_critical"
	}
	return fmt.Sprintf("Tier(%d)", uint8(t))
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText decodes a tier name written by MarshalText.
func (t *Tier) UnmarshalText(b []byte) error {
	for _, c := range []Tier{Normal, Critical, SuperCritical} {
		if c.String() == string(b) {
			*t = c
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", b)
}

// Odds holds the per-cycle hit probabilities. Normal takes whatever is left.
type Odds struct {
	SuperCritical float64
	Critical      float64
}

// DefaultOdds are the shipped hit probabilities.
var DefaultOdds = Odds{SuperCritical: 0.15, Critical: 0.35}

// Classify maps one uniform draw r in [0,1) onto a tier. The comparison is
// cumulative and strict: super-critical first, then critical.
func (o Odds) Classify(r float64) Tier {
	if r < o.SuperCritical {
		return SuperCritical
	}
	if r < o.SuperCritical+o.Critical {
		return Critical
	}
	return Normal
}

// Roller is the random source for tier rolls. *rand.Rand satisfies it.
type Roller interface {
	Float64() float64
}

// Fixed is a Roller that always returns the same draw.
type Fixed float64

func (f Fixed) Float64() float64 { return float64(f) }
