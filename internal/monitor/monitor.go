// Package monitor re-assesses every watched location on a fixed interval,
// persists the resulting snapshots, and broadcasts evacuation status
// changes.
package monitor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/emberline/wildfire-watch/internal/config"
	"github.com/emberline/wildfire-watch/internal/engine"
	"github.com/emberline/wildfire-watch/internal/models"
	"github.com/emberline/wildfire-watch/internal/repository"
	"github.com/emberline/wildfire-watch/internal/stream"
	"github.com/emberline/wildfire-watch/internal/worker"
)

// Repository is the storage the monitor needs: locations to poll and
// assessment history to append to.
type Repository interface {
	repository.LocationRepository
	repository.AssessmentRepository
}

type job struct {
	seq      uint64
	location models.WatchedLocation
}

type Monitor struct {
	cfg         *config.Config
	eng         *engine.Engine
	repo        Repository
	broadcaster *stream.Broadcaster
	pool        *worker.Pool[job]
	wg          sync.WaitGroup

	seq atomic.Uint64

	// lastApplied guards against a slow fetch from an older poll round
	// overwriting a newer result (last-fetch-wins per location).
	mu          sync.Mutex
	lastApplied map[string]uint64
}

func New(cfg *config.Config, eng *engine.Engine, repo Repository, broadcaster *stream.Broadcaster) *Monitor {
	return &Monitor{
		cfg:         cfg,
		eng:         eng,
		repo:        repo,
		broadcaster: broadcaster,
		lastApplied: make(map[string]uint64),
	}
}

func (m *Monitor) Start(ctx context.Context) {
	m.pool = worker.NewPool(m.cfg.Monitor.WorkerCount, m.cfg.Monitor.BufferSize, m.assess)
	m.pool.Start(ctx)

	m.wg.Add(1)
	go m.run(ctx)
}

func (m *Monitor) run(ctx context.Context) {
	defer m.wg.Done()
	slog.Info("starting monitor", "interval", m.cfg.Monitor.Interval)

	ticker := time.NewTicker(m.cfg.Monitor.Interval)
	defer ticker.Stop()

	// Initial poll
	m.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("monitor shutting down")
			return
		case <-ticker.C:
			m.poll(ctx)
		}
	}
}

func (m *Monitor) poll(ctx context.Context) {
	locations, err := m.repo.ListLocations(ctx)
	if err != nil {
		slog.Error("failed to list watched locations", "error", err)
		return
	}

	seq := m.seq.Add(1)
	for _, l := range locations {
		m.pool.Submit(job{seq: seq, location: l})
	}

	slog.Debug("poll round dispatched", "seq", seq, "locations", len(locations))
}

func (m *Monitor) assess(ctx context.Context, j job) error {
	loc := j.location

	result, err := m.eng.Assess(ctx, loc.Coordinate())
	if err != nil {
		// No retry; the next poll round re-issues.
		slog.Error("assessment failed", "location", loc.ID, "label", loc.Label, "error", err)
		return err
	}

	if !m.apply(loc.ID, j.seq) {
		slog.Debug("discarding stale assessment", "location", loc.ID, "seq", j.seq)
		return nil
	}

	prev, err := m.repo.LatestAssessment(ctx, loc.ID)
	if err != nil {
		slog.Error("failed to load previous assessment", "location", loc.ID, "error", err)
		return err
	}

	snapshot := &models.AssessmentSnapshot{
		ID:                   uuid.NewString(),
		LocationID:           loc.ID,
		Tier:                 result.Assessment.Tier,
		NearestDistanceMiles: result.Assessment.NearestDistanceMiles,
		NearbyCount:          result.Assessment.NearbyCount,
		Status:               result.Status,
		FeedDegraded:         result.FeedDegraded,
		CreatedAt:            time.Now(),
	}
	if err := m.repo.AddAssessment(ctx, snapshot); err != nil {
		slog.Error("failed to persist assessment", "location", loc.ID, "error", err)
		return err
	}

	prevStatus := models.EvacuationStatusUnknown
	if prev != nil {
		prevStatus = prev.Status
	}
	if m.broadcaster != nil && prevStatus != result.Status {
		m.broadcaster.Broadcast(stream.Event{
			LocationID: loc.ID,
			Label:      loc.Label,
			Status:     result.Status,
			PrevStatus: prevStatus,
			Tier:       result.Assessment.Tier,
			At:         snapshot.CreatedAt,
		})
	}

	slog.Info("assessed location",
		"location", loc.ID,
		"label", loc.Label,
		"tier", result.Assessment.Tier,
		"status", result.Status,
		"nearby", result.Assessment.NearbyCount)
	return nil
}

// apply records seq as the latest applied round for a location. Returns
// false when a newer round already landed.
func (m *Monitor) apply(locationID string, seq uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seq < m.lastApplied[locationID] {
		return false
	}
	m.lastApplied[locationID] = seq
	return true
}

func (m *Monitor) Stop() {
	m.wg.Wait()
	m.pool.Stop()
	slog.Info("monitor stopped")
}
