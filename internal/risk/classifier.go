package risk

import "github.com/emberline/wildfire-watch/internal/models"

// Distance thresholds in miles. Inclusive upper bounds on the nearest
// hotspot distance, evaluated most-severe first.
const (
	extremeMiles  = 10.0
	veryHighMiles = 25.0
	highMiles     = 50.0
	moderateMiles = 100.0
)

var recommendations = map[models.RiskTier][]string{
	models.RiskTierExtreme: {
		"Evacuate immediately if authorities have issued an order for your area.",
		"Grab your go-bag, essential documents, and medications now.",
		"Follow posted evacuation routes; do not wait for conditions to worsen.",
		"Call 911 if you see flames approaching and cannot leave.",
	},
	models.RiskTierVeryHigh: {
		"Be ready to evacuate on short notice; keep your vehicle fueled and facing out.",
		"Stage your go-bag, documents, and medications by the door.",
		"Sign up for local emergency alerts and keep your phone charged.",
		"Move flammable items like patio furniture away from the house.",
	},
	models.RiskTierHigh: {
		"Monitor fire activity closely through local news and alert systems.",
		"Review your evacuation plan and agree on a family meeting point.",
		"Pack a go-bag with water, food, medications, and copies of documents.",
	},
	models.RiskTierModerate: {
		"Stay aware of fire activity in your region.",
		"Check that your emergency supplies are stocked and current.",
		"Clear dry leaves and debris from gutters and around structures.",
	},
	models.RiskTierLow: {
		"Fire activity is distant; immediate risk to your location is low.",
		"Keep an eye on conditions if winds strengthen or shift toward you.",
	},
	models.RiskTierVeryLow: {
		"No detected fire activity near your location.",
		"A good time for routine preparedness: defensible space, supplies, and a family plan.",
	},
}

// Classify applies the distance-threshold policy to a set of parsed
// hotspot records. Pure function: same records and origin always produce
// the same assessment.
func Classify(records []models.HotspotRecord, origin models.Coordinate) models.RiskAssessment {
	if len(records) == 0 {
		return models.RiskAssessment{
			Tier:            models.RiskTierVeryLow,
			Recommendations: recommendations[models.RiskTierVeryLow],
		}
	}

	nearest := DistanceMiles(origin, records[0].Location)
	within100 := 0
	for _, rec := range records {
		d := DistanceMiles(origin, rec.Location)
		if d < nearest {
			nearest = d
		}
		if d <= moderateMiles {
			within100++
		}
	}

	tier := tierFor(nearest, within100)

	return models.RiskAssessment{
		Tier:                 tier,
		NearestDistanceMiles: &nearest,
		NearbyCount:          within100,
		Recommendations:      recommendations[tier],
	}
}

// tierFor is the ordered threshold cascade; first match wins. A nearest
// distance exactly on a boundary stays in the more severe bucket (50.0 is
// High, not Moderate).
func tierFor(nearest float64, within100 int) models.RiskTier {
	switch {
	case nearest <= extremeMiles:
		return models.RiskTierExtreme
	case nearest <= veryHighMiles:
		return models.RiskTierVeryHigh
	case nearest <= highMiles:
		return models.RiskTierHigh
	case nearest <= moderateMiles:
		return models.RiskTierModerate
	case within100 > 0:
		return models.RiskTierLow
	default:
		return models.RiskTierVeryLow
	}
}
