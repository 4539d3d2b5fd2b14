// Package engine composes the assessment pipeline: one feed fetch, then
// parse, classify, and derive. Both the HTTP API and the background
// monitor run assessments through it.
package engine

import (
	"context"

	"github.com/emberline/wildfire-watch/internal/firms"
	"github.com/emberline/wildfire-watch/internal/models"
	"github.com/emberline/wildfire-watch/internal/risk"
)

// Feed is the fetch side of the pipeline, satisfied by *firms.Client.
type Feed interface {
	FetchArea(ctx context.Context, origin models.Coordinate, radiusDegrees int) (string, error)
}

// Result is one complete assessment. FeedDegraded is true when the feed
// body came back without a usable header; the assessment itself is then
// identical to a genuinely fire-free result.
type Result struct {
	Assessment   models.RiskAssessment
	Status       models.EvacuationStatus
	Records      []models.HotspotRecord
	FeedDegraded bool
}

type Engine struct {
	feed          Feed
	radiusDegrees int
}

func New(feed Feed, radiusDegrees int) *Engine {
	return &Engine{
		feed:          feed,
		radiusDegrees: radiusDegrees,
	}
}

// Assess runs one full pipeline pass for origin. The fetch is the only
// suspension point; everything after it is pure. Concurrent calls are
// independent — the engine imposes no ordering between overlapping
// fetches, so callers racing requests should discard stale results
// themselves.
func (e *Engine) Assess(ctx context.Context, origin models.Coordinate) (*Result, error) {
	raw, err := e.feed.FetchArea(ctx, origin, e.radiusDegrees)
	if err != nil {
		return nil, err
	}

	parsed := firms.Parse(raw)
	assessment := risk.Classify(parsed.Records, origin)

	return &Result{
		Assessment:   assessment,
		Status:       risk.DeriveStatus(&assessment),
		Records:      parsed.Records,
		FeedDegraded: !parsed.HeaderOK,
	}, nil
}
