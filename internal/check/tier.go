package check

// Tier is the threshold banding used by older sheets: a margin of 20 or
// more is critical, 10 or more is great. It is a display label only and
// never replaces Degree.
type Tier int

const (
	TierStandard Tier = iota
	TierGreat
	TierCritical
)

func (t Tier) String() string {
	switch t {
	case TierGreat:
		return "great"
	case TierCritical:
		return "critical"
	default:
		return "standard"
	}
}

// Tier returns the threshold band for the result's margin.
func (r Result) Tier() Tier {
	switch {
	case r.Margin >= 20:
		return TierCritical
	case r.Margin >= 10:
		return TierGreat
	default:
		return TierStandard
	}
}

// Label renders the tiered label, e.g. "Great Failure".
func (r Result) Label() string {
	base := "Failure"
	if r.Success() {
		base = "Success"
	}
	switch r.Tier() {
	case TierCritical:
		return "Critical " + base
	case TierGreat:
		return "Great " + base
	default:
		return base
	}
}
