package risk

import "github.com/emberline/wildfire-watch/internal/models"

// DeriveStatus maps an assessment's tier to the user-facing evacuation
// signal. A nil assessment (no location yet, or the fetch failed) is
// Unknown. Pure mapping, no hysteresis: a fresh assessment can move the
// status down as well as up.
func DeriveStatus(a *models.RiskAssessment) models.EvacuationStatus {
	if a == nil {
		return models.EvacuationStatusUnknown
	}

	switch a.Tier {
	case models.RiskTierExtreme:
		return models.EvacuationStatusEvacuateNow
	case models.RiskTierVeryHigh:
		return models.EvacuationStatusWarning
	case models.RiskTierHigh, models.RiskTierModerate:
		return models.EvacuationStatusMonitor
	default:
		return models.EvacuationStatusSafe
	}
}
