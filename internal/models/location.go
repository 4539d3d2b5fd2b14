package models

import "time"

// WatchedLocation is a place the background monitor re-assesses on every
// poll cycle.
type WatchedLocation struct {
	ID        string
	Label     string // display label, opaque passthrough
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}

func (l *WatchedLocation) Coordinate() Coordinate {
	return Coordinate{Latitude: l.Latitude, Longitude: l.Longitude}
}

// AssessmentSnapshot is one persisted monitor result for a watched
// location. Recommendations are not stored; they are a pure function of
// the tier.
type AssessmentSnapshot struct {
	ID                   string
	LocationID           string
	Tier                 RiskTier
	NearestDistanceMiles *float64
	NearbyCount          int
	Status               EvacuationStatus
	FeedDegraded         bool
	CreatedAt            time.Time
}

// Shelter is one entry in the evacuation shelter directory.
type Shelter struct {
	ID        string
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	Capacity  int
	CreatedAt time.Time
}

// ChecklistItem is one preparedness checklist entry.
type ChecklistItem struct {
	ID        string
	Title     string
	Done      bool
	CreatedAt time.Time
}
