package api

import (
	"github.com/emberline/wildfire-watch/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func hotspotsToGeoJSON(records []models.HotspotRecord) FeatureCollection {
	features := make([]Feature, 0, len(records))

	for _, r := range records {
		props := map[string]any{
			"acquired_date": r.AcquiredDate,
			"confidence":    r.Confidence,
		}
		if r.Brightness != nil {
			props["brightness"] = *r.Brightness
		}

		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{r.Location.Longitude, r.Location.Latitude},
			},
			Properties: props,
		})
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
