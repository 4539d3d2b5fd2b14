package firms

import (
	"testing"
)

func TestParse_DropsMalformedRows(t *testing.T) {
	raw := "latitude,longitude\n1,2\nabc,2\n3,4"

	res := Parse(raw)
	if !res.HeaderOK {
		t.Fatal("expected usable header")
	}
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(res.Records))
	}
	if res.Records[0].Location.Latitude != 1 || res.Records[0].Location.Longitude != 2 {
		t.Errorf("unexpected first record: %+v", res.Records[0].Location)
	}
	if res.Records[1].Location.Latitude != 3 || res.Records[1].Location.Longitude != 4 {
		t.Errorf("unexpected second record: %+v", res.Records[1].Location)
	}
}

func TestParse_MissingLongitudeColumn(t *testing.T) {
	raw := "latitude,brightness\n1,300\n2,310"

	res := Parse(raw)
	if res.HeaderOK {
		t.Error("expected header to be reported unusable")
	}
	if len(res.Records) != 0 {
		t.Errorf("expected no records when a coordinate column is missing, got %d", len(res.Records))
	}
}

func TestParse_EmptyInput(t *testing.T) {
	if res := Parse(""); len(res.Records) != 0 || res.HeaderOK {
		t.Errorf("expected empty, unusable result for empty input, got %+v", res)
	}
}

func TestParse_ShortLinesDropped(t *testing.T) {
	// Second data line has too few fields to reach the longitude column.
	raw := "brightness,latitude,longitude\n300,1,2\n310,5\n320,3,4"

	res := Parse(raw)
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(res.Records))
	}
}

func TestParse_FullFIRMSRow(t *testing.T) {
	raw := "latitude,longitude,brightness,scan,track,acq_date,acq_time,satellite,confidence,version\n" +
		"34.10,-118.30,330.5,0.39,0.36,2026-08-24,0512,N,h,2.0NRT"

	res := Parse(raw)
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}

	rec := res.Records[0]
	if rec.Location.Latitude != 34.10 || rec.Location.Longitude != -118.30 {
		t.Errorf("unexpected location: %+v", rec.Location)
	}
	if rec.Brightness == nil || *rec.Brightness != 330.5 {
		t.Errorf("expected brightness 330.5, got %v", rec.Brightness)
	}
	if rec.AcquiredDate != "2026-08-24" {
		t.Errorf("expected acquired date 2026-08-24, got %q", rec.AcquiredDate)
	}
	if rec.Confidence != "h" {
		t.Errorf("expected confidence h, got %q", rec.Confidence)
	}
}

// Brightness, date, and confidence are positional, not name-based: if the
// feed reorders non-coordinate columns the coordinates still resolve by
// name but the positional fields silently read the wrong columns. This
// pins that quirk so a change to it is deliberate.
func TestParse_PositionalFieldsIgnoreHeaderNames(t *testing.T) {
	raw := "latitude,longitude,confidence,scan,track,brightness\n1,2,77,0.4,0.4,999"

	res := Parse(raw)
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}

	rec := res.Records[0]
	// Column 2 is read as brightness even though the header calls it confidence.
	if rec.Brightness == nil || *rec.Brightness != 77 {
		t.Errorf("expected positional brightness 77, got %v", rec.Brightness)
	}
	// Column 5 is read as the acquired date even though the header calls it brightness.
	if rec.AcquiredDate != "999" {
		t.Errorf("expected positional acquired date 999, got %q", rec.AcquiredDate)
	}
	// Column 8 does not exist, so confidence stays absent.
	if rec.Confidence != "" {
		t.Errorf("expected absent confidence, got %q", rec.Confidence)
	}
}

func TestParse_MissingOptionalColumns(t *testing.T) {
	raw := "latitude,longitude,brightness\n1,2,xyz"

	res := Parse(raw)
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}

	rec := res.Records[0]
	if rec.Brightness != nil {
		t.Errorf("expected nil brightness for non-numeric value, got %v", *rec.Brightness)
	}
	if rec.AcquiredDate != "" || rec.Confidence != "" {
		t.Errorf("expected absent date/confidence on short row, got %q / %q", rec.AcquiredDate, rec.Confidence)
	}
}

func TestParse_PreservesFileOrder(t *testing.T) {
	raw := "latitude,longitude\n5,5\n1,1\n3,3"

	res := Parse(raw)
	if len(res.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(res.Records))
	}
	lats := []float64{res.Records[0].Location.Latitude, res.Records[1].Location.Latitude, res.Records[2].Location.Latitude}
	if lats[0] != 5 || lats[1] != 1 || lats[2] != 3 {
		t.Errorf("expected file order preserved, got %v", lats)
	}
}
