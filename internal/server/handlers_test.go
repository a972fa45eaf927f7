package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"couponfinder/internal/models"
	"couponfinder/pkg/dominos"
)

type stubProvider struct {
	stores  []models.Store
	entries []dominos.CouponEntry
	findErr error
	closed  int
}

func (s *stubProvider) FindStores(context.Context, string) ([]models.Store, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.stores, nil
}

func (s *stubProvider) FetchCoupons(context.Context, string) ([]dominos.CouponEntry, error) {
	return s.entries, nil
}

func (s *stubProvider) Close() error {
	s.closed++
	return nil
}

func newTestRouter(p *stubProvider) http.Handler {
	h := NewCouponHandler(func() dominos.StoreAndCouponProvider { return p }, models.DefaultCity)
	h.now = func() time.Time { return time.Date(2024, 1, 31, 15, 45, 2, 0, time.UTC) }
	return NewRouter(h)
}

func TestSearchCoupons(t *testing.T) {
	p := &stubProvider{
		stores: []models.Store{{ID: "10382", Street: "1215 Rue Bishop", City: "Montreal, QC"}},
		entries: []dominos.CouponEntry{
			{Description: "20% off any large pizza", Code: "ABC", Price: "$5"},
			{Description: "Free delivery", Code: "XYZ"},
		},
	}
	router := newTestRouter(p)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/coupons?address=1215+Rue+Bishop", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	var resp SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.Coupons) != 1 || resp.Coupons[0].Code != "ABC" {
		t.Errorf("unexpected coupons: %+v", resp.Coupons)
	}
	if p.closed != 1 {
		t.Errorf("provider closed %d times; want 1", p.closed)
	}
}

func TestSearchCouponsMissingAddress(t *testing.T) {
	router := newTestRouter(&stubProvider{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/coupons", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", rec.Code)
	}
}

func TestSearchCouponsNoMatchIsEmptyNotError(t *testing.T) {
	p := &stubProvider{
		stores: []models.Store{{ID: "10381", Street: "1200 Rue Bishop", City: "Montreal, QC"}},
	}
	router := newTestRouter(p)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/coupons?address=Sherbrooke", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	var resp SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.Coupons) != 0 {
		t.Errorf("expected empty coupons, got %+v", resp.Coupons)
	}
	if !strings.Contains(resp.Status, "No store found") {
		t.Errorf("unexpected status: %s", resp.Status)
	}
}

func TestDownloadCSV(t *testing.T) {
	p := &stubProvider{
		stores:  []models.Store{{ID: "10382", Street: "1215 Rue Bishop", City: "Montreal, QC"}},
		entries: []dominos.CouponEntry{{Description: "10% off", Code: "Q1"}},
	}
	router := newTestRouter(p)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/coupons.csv?address=Bishop", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("Content-Type = %q; want text/csv", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "dominos_coupons_20240131_154502.csv") {
		t.Errorf("unexpected Content-Disposition: %q", got)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 record, got %q", lines)
	}
	if !strings.Contains(lines[1], "N/A") {
		t.Errorf("missing price should serialize as N/A: %q", lines[1])
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&stubProvider{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response: %d %q", rec.Code, rec.Body.String())
	}
}
