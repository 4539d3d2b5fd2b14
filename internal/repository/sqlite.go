package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/emberline/wildfire-watch/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS watched_locations (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS assessments (
			id TEXT PRIMARY KEY,
			location_id TEXT NOT NULL,
			tier INTEGER NOT NULL,
			nearest_distance_miles REAL,
			nearby_count INTEGER NOT NULL,
			status INTEGER NOT NULL,
			feed_degraded INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (location_id) REFERENCES watched_locations(id)
		);

		CREATE TABLE IF NOT EXISTS shelters (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			capacity INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS checklist_items (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			done INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS profile (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_assessments_location ON assessments(location_id, created_at);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) AddLocation(ctx context.Context, l *models.WatchedLocation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO watched_locations (id, label, latitude, longitude, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.Label, l.Latitude, l.Longitude, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting location: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetLocation(ctx context.Context, id string) (*models.WatchedLocation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, label, latitude, longitude, created_at
		 FROM watched_locations WHERE id = ?`, id)

	var l models.WatchedLocation
	err := row.Scan(&l.ID, &l.Label, &l.Latitude, &l.Longitude, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning location: %w", err)
	}
	return &l, nil
}

func (s *SQLiteDB) ListLocations(ctx context.Context) ([]models.WatchedLocation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, latitude, longitude, created_at
		 FROM watched_locations ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("error querying locations: %w", err)
	}
	defer rows.Close()

	var locations []models.WatchedLocation
	for rows.Next() {
		var l models.WatchedLocation
		if err := rows.Scan(&l.ID, &l.Label, &l.Latitude, &l.Longitude, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning location row: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (s *SQLiteDB) DeleteLocation(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM watched_locations WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting location: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteDB) AddAssessment(ctx context.Context, a *models.AssessmentSnapshot) error {
	var nearest sql.NullFloat64
	if a.NearestDistanceMiles != nil {
		nearest = sql.NullFloat64{Float64: *a.NearestDistanceMiles, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, location_id, tier, nearest_distance_miles, nearby_count, status, feed_degraded, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.LocationID, int(a.Tier), nearest, a.NearbyCount, int(a.Status), a.FeedDegraded, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting assessment: %w", err)
	}
	return nil
}

func (s *SQLiteDB) LatestAssessment(ctx context.Context, locationID string) (*models.AssessmentSnapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, location_id, tier, nearest_distance_miles, nearby_count, status, feed_degraded, created_at
		 FROM assessments WHERE location_id = ?
		 ORDER BY created_at DESC LIMIT 1`, locationID)

	a, err := scanAssessment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning assessment: %w", err)
	}
	return a, nil
}

func (s *SQLiteDB) ListAssessments(ctx context.Context, locationID string, limit int) ([]models.AssessmentSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, location_id, tier, nearest_distance_miles, nearby_count, status, feed_degraded, created_at
		 FROM assessments WHERE location_id = ?
		 ORDER BY created_at DESC LIMIT ?`, locationID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying assessments: %w", err)
	}
	defer rows.Close()

	var snapshots []models.AssessmentSnapshot
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning assessment row: %w", err)
		}
		snapshots = append(snapshots, *a)
	}
	return snapshots, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*models.AssessmentSnapshot, error) {
	var (
		a       models.AssessmentSnapshot
		tier    int
		status  int
		nearest sql.NullFloat64
	)
	err := row.Scan(&a.ID, &a.LocationID, &tier, &nearest, &a.NearbyCount, &status, &a.FeedDegraded, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.Tier = models.RiskTier(tier)
	a.Status = models.EvacuationStatus(status)
	if nearest.Valid {
		a.NearestDistanceMiles = &nearest.Float64
	}
	return &a, nil
}

func (s *SQLiteDB) AddShelter(ctx context.Context, sh *models.Shelter) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shelters (id, name, address, latitude, longitude, capacity, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sh.ID, sh.Name, sh.Address, sh.Latitude, sh.Longitude, sh.Capacity, sh.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting shelter: %w", err)
	}
	return nil
}

func (s *SQLiteDB) ListShelters(ctx context.Context) ([]models.Shelter, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, address, latitude, longitude, capacity, created_at FROM shelters`)
	if err != nil {
		return nil, fmt.Errorf("error querying shelters: %w", err)
	}
	defer rows.Close()

	var shelters []models.Shelter
	for rows.Next() {
		var sh models.Shelter
		if err := rows.Scan(&sh.ID, &sh.Name, &sh.Address, &sh.Latitude, &sh.Longitude, &sh.Capacity, &sh.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning shelter row: %w", err)
		}
		shelters = append(shelters, sh)
	}
	return shelters, rows.Err()
}

func (s *SQLiteDB) AddChecklistItem(ctx context.Context, item *models.ChecklistItem) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO checklist_items (id, title, done, created_at) VALUES (?, ?, ?, ?)`,
		item.ID, item.Title, item.Done, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting checklist item: %w", err)
	}
	return nil
}

func (s *SQLiteDB) ListChecklistItems(ctx context.Context) ([]models.ChecklistItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, done, created_at FROM checklist_items ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("error querying checklist items: %w", err)
	}
	defer rows.Close()

	var items []models.ChecklistItem
	for rows.Next() {
		var item models.ChecklistItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Done, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning checklist row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLiteDB) SetChecklistItemDone(ctx context.Context, id string, done bool) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE checklist_items SET done = ? WHERE id = ?`, done, id)
	if err != nil {
		return false, fmt.Errorf("error updating checklist item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteDB) SetProfileField(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profile (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("error upserting profile field: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetProfile(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM profile`)
	if err != nil {
		return nil, fmt.Errorf("error querying profile: %w", err)
	}
	defer rows.Close()

	profile := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("error scanning profile row: %w", err)
		}
		profile[k] = v
	}
	return profile, rows.Err()
}
