package repository

import (
	"context"

	"github.com/emberline/wildfire-watch/internal/models"
)

type LocationRepository interface {
	AddLocation(ctx context.Context, l *models.WatchedLocation) error
	GetLocation(ctx context.Context, id string) (*models.WatchedLocation, error)
	ListLocations(ctx context.Context) ([]models.WatchedLocation, error)
	DeleteLocation(ctx context.Context, id string) (bool, error)
}

type AssessmentRepository interface {
	AddAssessment(ctx context.Context, a *models.AssessmentSnapshot) error
	LatestAssessment(ctx context.Context, locationID string) (*models.AssessmentSnapshot, error)
	// ListAssessments returns snapshots newest-first, at most limit rows.
	ListAssessments(ctx context.Context, locationID string, limit int) ([]models.AssessmentSnapshot, error)
}

type ShelterRepository interface {
	AddShelter(ctx context.Context, s *models.Shelter) error
	ListShelters(ctx context.Context) ([]models.Shelter, error)
}

type ChecklistRepository interface {
	AddChecklistItem(ctx context.Context, item *models.ChecklistItem) error
	ListChecklistItems(ctx context.Context) ([]models.ChecklistItem, error)
	SetChecklistItemDone(ctx context.Context, id string, done bool) (bool, error)
}

// ProfileRepository is flat key-value storage for user profile fields
// (name, household size, pets, medical notes, ...). Values are opaque.
type ProfileRepository interface {
	SetProfileField(ctx context.Context, key, value string) error
	GetProfile(ctx context.Context) (map[string]string, error)
}
