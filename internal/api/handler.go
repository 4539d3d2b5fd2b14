package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emberline/wildfire-watch/internal/assistant"
	"github.com/emberline/wildfire-watch/internal/engine"
	"github.com/emberline/wildfire-watch/internal/firms"
	"github.com/emberline/wildfire-watch/internal/models"
	"github.com/emberline/wildfire-watch/internal/repository"
	"github.com/emberline/wildfire-watch/internal/risk"
	"github.com/emberline/wildfire-watch/internal/stream"
)

// Repository aggregates the storage the HTTP surface needs.
type Repository interface {
	repository.LocationRepository
	repository.AssessmentRepository
	repository.ShelterRepository
	repository.ChecklistRepository
	repository.ProfileRepository
}

type Handler struct {
	repo        Repository
	eng         *engine.Engine
	broadcaster *stream.Broadcaster
	assistant   assistant.Assistant // nil when no API key is configured
}

func NewHandler(repo Repository, eng *engine.Engine, broadcaster *stream.Broadcaster, asst assistant.Assistant) *Handler {
	return &Handler{
		repo:        repo,
		eng:         eng,
		broadcaster: broadcaster,
		assistant:   asst,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	r.GET("/api/assess", h.assess)
	r.GET("/api/hotspots", h.hotspots)
	r.GET("/api/stream", h.streamEvents)

	r.GET("/api/locations", h.listLocations)
	r.POST("/api/locations", h.createLocation)
	r.DELETE("/api/locations/:id", h.deleteLocation)
	r.GET("/api/locations/:id/history", h.locationHistory)

	r.GET("/api/shelters", h.listShelters)
	r.POST("/api/shelters", h.createShelter)

	r.GET("/api/profile", h.getProfile)
	r.PUT("/api/profile", h.putProfile)

	r.GET("/api/checklist", h.listChecklist)
	r.POST("/api/checklist", h.createChecklistItem)
	r.PATCH("/api/checklist/:id", h.updateChecklistItem)

	r.POST("/api/assistant/chat", h.chat)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type assessmentResponse struct {
	Label                string                  `json:"label,omitempty"`
	Tier                 models.RiskTier         `json:"tier"`
	NearestDistanceMiles *float64                `json:"nearest_distance_miles"`
	NearbyCount          int                     `json:"nearby_count"`
	Recommendations      []string                `json:"recommendations"`
	Status               models.EvacuationStatus `json:"evacuation_status"`
	StatusTitle          string                  `json:"evacuation_title"`
	StatusMessage        string                  `json:"evacuation_message"`
	FeedDegraded         bool                    `json:"feed_degraded"`
}

func (h *Handler) assess(c *gin.Context) {
	origin, ok := parseOrigin(c)
	if !ok {
		return
	}

	result, err := h.eng.Assess(c.Request.Context(), origin)
	if err != nil {
		var netErr *firms.NetworkError
		if errors.As(err, &netErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": netErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assessment failed"})
		return
	}

	if result.FeedDegraded {
		slog.Warn("hotspot feed header unusable; treating as no detections",
			"lat", origin.Latitude, "lon", origin.Longitude)
	}

	c.JSON(http.StatusOK, assessmentResponse{
		Label:                c.Query("label"),
		Tier:                 result.Assessment.Tier,
		NearestDistanceMiles: result.Assessment.NearestDistanceMiles,
		NearbyCount:          result.Assessment.NearbyCount,
		Recommendations:      result.Assessment.Recommendations,
		Status:               result.Status,
		StatusTitle:          result.Status.Title(),
		StatusMessage:        result.Status.Message(),
		FeedDegraded:         result.FeedDegraded,
	})
}

func (h *Handler) hotspots(c *gin.Context) {
	origin, ok := parseOrigin(c)
	if !ok {
		return
	}

	result, err := h.eng.Assess(c.Request.Context(), origin)
	if err != nil {
		var netErr *firms.NetworkError
		if errors.As(err, &netErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": netErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch failed"})
		return
	}

	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, hotspotsToGeoJSON(result.Records))
}

func (h *Handler) streamEvents(c *gin.Context) {
	id, ch := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("assessment", ev)
			return true
		}
	})
}

type createLocationRequest struct {
	Label     string   `json:"label" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

func (h *Handler) createLocation(c *gin.Context) {
	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	l := &models.WatchedLocation{
		ID:        uuid.NewString(),
		Label:     req.Label,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		CreatedAt: time.Now(),
	}
	if err := h.repo.AddLocation(c.Request.Context(), l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save location"})
		return
	}

	c.JSON(http.StatusCreated, locationJSON(l))
}

func (h *Handler) listLocations(c *gin.Context) {
	locations, err := h.repo.ListLocations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch locations"})
		return
	}

	out := make([]gin.H, 0, len(locations))
	for i := range locations {
		out = append(out, locationJSON(&locations[i]))
	}
	c.JSON(http.StatusOK, gin.H{"locations": out})
}

func (h *Handler) deleteLocation(c *gin.Context) {
	deleted, err := h.repo.DeleteLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete location"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) locationHistory(c *gin.Context) {
	limit := 50
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	id := c.Param("id")
	loc, err := h.repo.GetLocation(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch location"})
		return
	}
	if loc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return
	}

	snapshots, err := h.repo.ListAssessments(c.Request.Context(), id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	out := make([]gin.H, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, gin.H{
			"tier":                   s.Tier,
			"nearest_distance_miles": s.NearestDistanceMiles,
			"nearby_count":           s.NearbyCount,
			"evacuation_status":      s.Status,
			"feed_degraded":          s.FeedDegraded,
			"created_at":             s.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"location": locationJSON(loc), "history": out})
}

func (h *Handler) listShelters(c *gin.Context) {
	origin, ok := parseOrigin(c)
	if !ok {
		return
	}

	maxMiles := 50.0
	if m := c.Query("max_miles"); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil && v > 0 {
			maxMiles = v
		}
	}

	shelters, err := h.repo.ListShelters(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shelters"})
		return
	}

	type shelterWithDistance struct {
		models.Shelter
		DistanceMiles float64
	}

	nearby := make([]shelterWithDistance, 0, len(shelters))
	for _, s := range shelters {
		d := risk.DistanceMiles(origin, models.Coordinate{Latitude: s.Latitude, Longitude: s.Longitude})
		if d <= maxMiles {
			nearby = append(nearby, shelterWithDistance{Shelter: s, DistanceMiles: d})
		}
	}
	sort.Slice(nearby, func(i, j int) bool { return nearby[i].DistanceMiles < nearby[j].DistanceMiles })

	out := make([]gin.H, 0, len(nearby))
	for _, s := range nearby {
		out = append(out, gin.H{
			"id":             s.ID,
			"name":           s.Name,
			"address":        s.Address,
			"latitude":       s.Latitude,
			"longitude":      s.Longitude,
			"capacity":       s.Capacity,
			"distance_miles": s.DistanceMiles,
		})
	}
	c.JSON(http.StatusOK, gin.H{"shelters": out})
}

type createShelterRequest struct {
	Name      string   `json:"name" binding:"required"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Capacity  int      `json:"capacity"`
}

func (h *Handler) createShelter(c *gin.Context) {
	var req createShelterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := &models.Shelter{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Capacity:  req.Capacity,
		CreatedAt: time.Now(),
	}
	if err := h.repo.AddShelter(c.Request.Context(), s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save shelter"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": s.ID})
}

func (h *Handler) getProfile(c *gin.Context) {
	profile, err := h.repo.GetProfile(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *Handler) putProfile(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for k, v := range fields {
		if err := h.repo.SetProfileField(c.Request.Context(), k, v); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
			return
		}
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listChecklist(c *gin.Context) {
	items, err := h.repo.ListChecklistItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch checklist"})
		return
	}

	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, gin.H{
			"id":         item.ID,
			"title":      item.Title,
			"done":       item.Done,
			"created_at": item.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

type createChecklistRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *Handler) createChecklistItem(c *gin.Context) {
	var req createChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &models.ChecklistItem{
		ID:        uuid.NewString(),
		Title:     req.Title,
		CreatedAt: time.Now(),
	}
	if err := h.repo.AddChecklistItem(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save checklist item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": item.ID})
}

type updateChecklistRequest struct {
	Done *bool `json:"done" binding:"required"`
}

func (h *Handler) updateChecklistItem(c *gin.Context) {
	var req updateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.repo.SetChecklistItemDone(c.Request.Context(), c.Param("id"), *req.Done)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update checklist item"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "checklist item not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *Handler) chat(c *gin.Context) {
	if h.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.repo.GetProfile(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}

	reply, err := h.assistant.Chat(c.Request.Context(), req.Message, assistant.SummarizeProfile(profile))
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyResponse) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "assistant returned an empty response"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// parseOrigin reads lat/lon query params. Ranges are not validated beyond
// being numeric; the engine accepts whatever the caller supplies.
func parseOrigin(c *gin.Context) (models.Coordinate, bool) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon query parameters are required"})
		return models.Coordinate{}, false
	}
	return models.Coordinate{Latitude: lat, Longitude: lon}, true
}

func locationJSON(l *models.WatchedLocation) gin.H {
	return gin.H{
		"id":         l.ID,
		"label":      l.Label,
		"latitude":   l.Latitude,
		"longitude":  l.Longitude,
		"created_at": l.CreatedAt,
	}
}
