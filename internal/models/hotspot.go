package models

// Coordinate is a WGS84 point. Latitude in [-90,90], longitude in [-180,180];
// range checking is the caller's job.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// HotspotRecord is one satellite-detected thermal anomaly from the FIRMS
// area feed. Only the location is required; everything else is best-effort
// passthrough from the CSV row.
type HotspotRecord struct {
	Location     Coordinate
	Brightness   *float64 // nil when the column is missing or non-numeric
	AcquiredDate string   // opaque, not parsed as a date here
	Confidence   string   // opaque ("l"/"n"/"h" for VIIRS, 0-100 for MODIS)
}
