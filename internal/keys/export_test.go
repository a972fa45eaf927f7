package keys

import (
	"testing"
	"time"

	"couponfinder/internal/models"
)

func TestExport(t *testing.T) {
	e := models.Export{
		Address:   "1215 Rue Bishop",
		CreatedAt: time.Date(2024, 1, 31, 15, 45, 2, 0, time.UTC),
	}
	want := "exports/1215-rue-bishop/20240131T154502Z.json"
	if got := Export(e); got != want {
		t.Errorf("Export key = %q; want %q", got, want)
	}
}

func TestExportStripsCommas(t *testing.T) {
	e := models.Export{
		Address:   "Rue Bishop, Montreal",
		CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	want := "exports/rue-bishop-montreal/20240601T000000Z.json"
	if got := Export(e); got != want {
		t.Errorf("Export key = %q; want %q", got, want)
	}
}
