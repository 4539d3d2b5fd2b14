package models

// RiskTier is an ordered wildfire risk severity level. The numeric order is
// part of the contract: comparisons like t1 >= t2 are used for severity.
type RiskTier int

const (
	RiskTierVeryLow RiskTier = iota
	RiskTierLow
	RiskTierModerate
	RiskTierHigh
	RiskTierVeryHigh
	RiskTierExtreme
)

// MarshalJSON renders the tier as its snake_case name.
func (t RiskTier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t RiskTier) String() string {
	switch t {
	case RiskTierVeryLow:
		return "very_low"
	case RiskTierLow:
		return "low"
	case RiskTierModerate:
		return "moderate"
	case RiskTierHigh:
		return "high"
	case RiskTierVeryHigh:
		return "very_high"
	case RiskTierExtreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// RiskAssessment is the full result of classifying one set of hotspot
// records against an origin. It is rebuilt from scratch on every
// assessment, never updated in place.
type RiskAssessment struct {
	Tier RiskTier

	// NearestDistanceMiles is nil only when zero hotspots were parsed.
	NearestDistanceMiles *float64

	// NearbyCount is the number of hotspots within 100 miles of the
	// origin, regardless of which tier fired.
	NearbyCount int

	Recommendations []string
}

// EvacuationStatus is the coarse user-facing signal derived from a tier.
type EvacuationStatus int

const (
	EvacuationStatusUnknown EvacuationStatus = iota
	EvacuationStatusSafe
	EvacuationStatusMonitor
	EvacuationStatusWarning
	EvacuationStatusEvacuateNow
)

// MarshalJSON renders the status as its snake_case name.
func (s EvacuationStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s EvacuationStatus) String() string {
	switch s {
	case EvacuationStatusSafe:
		return "safe"
	case EvacuationStatusMonitor:
		return "monitor"
	case EvacuationStatusWarning:
		return "warning"
	case EvacuationStatusEvacuateNow:
		return "evacuate_now"
	default:
		return "unknown"
	}
}

// Title returns the fixed display heading for the status.
func (s EvacuationStatus) Title() string {
	switch s {
	case EvacuationStatusSafe:
		return "No Evacuation Needed"
	case EvacuationStatusMonitor:
		return "Stay Alert"
	case EvacuationStatusWarning:
		return "Evacuation Warning"
	case EvacuationStatusEvacuateNow:
		return "Evacuate Now"
	default:
		return "Status Unknown"
	}
}

// Message returns the fixed display body for the status.
func (s EvacuationStatus) Message() string {
	switch s {
	case EvacuationStatusSafe:
		return "No significant fire activity near your location. Continue normal activities."
	case EvacuationStatusMonitor:
		return "Fire activity detected in your region. Monitor conditions and review your evacuation plan."
	case EvacuationStatusWarning:
		return "Fire activity is close to your location. Prepare to evacuate on short notice."
	case EvacuationStatusEvacuateNow:
		return "Fire detected very close to your location. Leave now and follow local emergency instructions."
	default:
		return "Awaiting a location and a successful hotspot fetch."
	}
}
