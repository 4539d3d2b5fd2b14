package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/emberline/wildfire-watch/internal/firms"
	"github.com/emberline/wildfire-watch/internal/models"
)

type fakeFeed struct {
	body string
	err  error
}

func (f *fakeFeed) FetchArea(ctx context.Context, origin models.Coordinate, radiusDegrees int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.body, nil
}

func TestAssess_LosAngelesScenario(t *testing.T) {
	// One hotspot ~4.6 miles from downtown LA.
	feed := &fakeFeed{body: "latitude,longitude,brightness\n34.10,-118.30,335.2"}
	eng := New(feed, 1)

	origin := models.Coordinate{Latitude: 34.0522, Longitude: -118.2437}
	result, err := eng.Assess(context.Background(), origin)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	if result.Assessment.Tier != models.RiskTierExtreme {
		t.Errorf("expected extreme tier, got %s", result.Assessment.Tier)
	}
	if result.Status != models.EvacuationStatusEvacuateNow {
		t.Errorf("expected evacuate_now status, got %s", result.Status)
	}
	if result.Assessment.NearbyCount != 1 {
		t.Errorf("expected nearby count 1, got %d", result.Assessment.NearbyCount)
	}
	if result.Assessment.NearestDistanceMiles == nil {
		t.Fatal("expected nearest distance to be set")
	}
	if math.Abs(*result.Assessment.NearestDistanceMiles-4.61) > 0.5 {
		t.Errorf("expected nearest ~4.6 miles, got %f", *result.Assessment.NearestDistanceMiles)
	}
	if result.FeedDegraded {
		t.Error("expected feed not degraded")
	}
	if len(result.Records) != 1 {
		t.Errorf("expected 1 parsed record, got %d", len(result.Records))
	}
}

func TestAssess_DegradedFeedLooksFireFree(t *testing.T) {
	feed := &fakeFeed{body: "Invalid MAP_KEY."}
	eng := New(feed, 1)

	result, err := eng.Assess(context.Background(), models.Coordinate{Latitude: 34, Longitude: -118})
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	if result.Assessment.Tier != models.RiskTierVeryLow {
		t.Errorf("expected very_low tier for unusable feed, got %s", result.Assessment.Tier)
	}
	if result.Status != models.EvacuationStatusSafe {
		t.Errorf("expected safe status, got %s", result.Status)
	}
	if !result.FeedDegraded {
		t.Error("expected FeedDegraded to be set for an unusable header")
	}
}

func TestAssess_FetchErrorPropagates(t *testing.T) {
	wantErr := &firms.NetworkError{Err: errors.New("connection refused")}
	feed := &fakeFeed{err: wantErr}
	eng := New(feed, 1)

	_, err := eng.Assess(context.Background(), models.Coordinate{})
	if err == nil {
		t.Fatal("expected fetch error to propagate")
	}

	var netErr *firms.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *firms.NetworkError, got %T", err)
	}
}
