package firms

import (
	"strconv"
	"strings"

	"github.com/emberline/wildfire-watch/internal/models"
)

// Coordinate columns are located by exact header name. The remaining
// columns are read by fixed position, matching the upstream FIRMS CSV
// layout (latitude,longitude,brightness,scan,track,acq_date,acq_time,
// satellite,confidence,...). If the feed ever reorders the non-coordinate
// columns these positions go stale while the coordinates keep working —
// intentional compatibility quirk, pinned by tests.
const (
	colBrightness = 2
	colAcqDate    = 5
	colConfidence = 8
)

// ParseResult carries the parsed records plus whether the header named
// both required coordinate columns. HeaderOK false always means zero
// records; callers that only care about records can ignore it.
type ParseResult struct {
	Records  []models.HotspotRecord
	HeaderOK bool
}

// Parse converts raw feed text into hotspot records. It never fails:
// a header missing latitude or longitude yields an empty result, and data
// lines that are too short or have non-numeric coordinates are silently
// dropped. Records come back in file order, unsorted and undeduplicated.
func Parse(raw string) ParseResult {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) == 0 {
		return ParseResult{}
	}

	header := strings.Split(strings.TrimSpace(lines[0]), ",")
	latIdx, lonIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "latitude":
			latIdx = i
		case "longitude":
			lonIdx = i
		}
	}
	if latIdx < 0 || lonIdx < 0 {
		// Whole feed is unusable rather than partially salvageable.
		return ParseResult{}
	}

	minFields := latIdx
	if lonIdx > minFields {
		minFields = lonIdx
	}

	records := make([]models.HotspotRecord, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Split(strings.TrimSpace(line), ",")
		if len(fields) <= minFields {
			continue
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(fields[latIdx]), 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(fields[lonIdx]), 64)
		if err != nil {
			continue
		}

		rec := models.HotspotRecord{
			Location: models.Coordinate{Latitude: lat, Longitude: lon},
		}
		if len(fields) > colBrightness {
			if b, err := strconv.ParseFloat(strings.TrimSpace(fields[colBrightness]), 64); err == nil {
				rec.Brightness = &b
			}
		}
		if len(fields) > colAcqDate {
			rec.AcquiredDate = strings.TrimSpace(fields[colAcqDate])
		}
		if len(fields) > colConfidence {
			rec.Confidence = strings.TrimSpace(fields[colConfidence])
		}

		records = append(records, rec)
	}

	return ParseResult{Records: records, HeaderOK: true}
}
