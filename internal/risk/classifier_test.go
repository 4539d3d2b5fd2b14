package risk

import (
	"testing"

	"github.com/emberline/wildfire-watch/internal/models"
)

func TestClassify_EmptyRecords(t *testing.T) {
	a := Classify(nil, models.Coordinate{Latitude: 34.0522, Longitude: -118.2437})

	if a.Tier != models.RiskTierVeryLow {
		t.Errorf("expected very_low tier for empty records, got %s", a.Tier)
	}
	if a.NearestDistanceMiles != nil {
		t.Errorf("expected nil nearest distance, got %f", *a.NearestDistanceMiles)
	}
	if a.NearbyCount != 0 {
		t.Errorf("expected nearby count 0, got %d", a.NearbyCount)
	}
	if len(a.Recommendations) == 0 {
		t.Error("expected non-empty recommendations for empty records")
	}
}

func TestTierFor_ThresholdBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		nearest   float64
		within100 int
		want      models.RiskTier
	}{
		{"exactly 10 miles", 10.0, 1, models.RiskTierExtreme},
		{"just over 10 miles", 10.0001, 1, models.RiskTierVeryHigh},
		{"exactly 25 miles", 25.0, 1, models.RiskTierVeryHigh},
		{"just over 25 miles", 25.0001, 1, models.RiskTierHigh},
		{"exactly 50 miles", 50.0, 1, models.RiskTierHigh},
		{"just over 50 miles", 50.0001, 1, models.RiskTierModerate},
		{"exactly 100 miles", 100.0, 1, models.RiskTierModerate},
		{"beyond 100 with activity inside 100", 150.0, 1, models.RiskTierLow},
		{"beyond 100 with nothing inside 100", 150.0, 0, models.RiskTierVeryLow},
		{"zero distance", 0.0, 1, models.RiskTierExtreme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tierFor(tt.nearest, tt.within100); got != tt.want {
				t.Errorf("tierFor(%f, %d) = %s, want %s", tt.nearest, tt.within100, got, tt.want)
			}
		})
	}
}

func TestTierFor_MonotonicInDistance(t *testing.T) {
	distances := []float64{1, 5, 10, 10.0001, 20, 25, 30, 50, 50.0001, 75, 100}

	prev := tierFor(distances[0], 1)
	for _, d := range distances[1:] {
		tier := tierFor(d, 1)
		if tier > prev {
			t.Errorf("severity increased with distance: %f miles -> %s after %s", d, tier, prev)
		}
		prev = tier
	}
}

func TestClassify_NearestAndCount(t *testing.T) {
	origin := models.Coordinate{Latitude: 0, Longitude: 0}
	records := []models.HotspotRecord{
		{Location: models.Coordinate{Latitude: 0, Longitude: 0.5}}, // ~34.6 mi
		{Location: models.Coordinate{Latitude: 0, Longitude: 1.0}}, // ~69.2 mi
		{Location: models.Coordinate{Latitude: 0, Longitude: 5.0}}, // ~345 mi, outside 100
	}

	a := Classify(records, origin)

	if a.Tier != models.RiskTierHigh {
		t.Errorf("expected high tier, got %s", a.Tier)
	}
	if a.NearestDistanceMiles == nil {
		t.Fatal("expected nearest distance to be set")
	}
	if *a.NearestDistanceMiles < 34 || *a.NearestDistanceMiles > 35.5 {
		t.Errorf("expected nearest ~34.6 miles, got %f", *a.NearestDistanceMiles)
	}
	if a.NearbyCount != 2 {
		t.Errorf("expected 2 hotspots within 100 miles, got %d", a.NearbyCount)
	}
}

func TestClassify_RecommendationsDistinctPerTier(t *testing.T) {
	tiers := []models.RiskTier{
		models.RiskTierVeryLow, models.RiskTierLow, models.RiskTierModerate,
		models.RiskTierHigh, models.RiskTierVeryHigh, models.RiskTierExtreme,
	}

	seen := make(map[string]models.RiskTier)
	for _, tier := range tiers {
		recs := recommendations[tier]
		if len(recs) == 0 {
			t.Errorf("tier %s has no recommendations", tier)
			continue
		}
		if other, dup := seen[recs[0]]; dup {
			t.Errorf("tiers %s and %s share a leading recommendation", tier, other)
		}
		seen[recs[0]] = tier
	}
}
