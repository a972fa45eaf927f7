package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"couponfinder/internal/finder"
	"couponfinder/internal/models"
	"couponfinder/internal/report"
	"couponfinder/pkg/dominos"
)

// ProviderFactory builds a fresh acquisition session for one request. The
// handler closes it when the request is done; sessions are never pooled.
type ProviderFactory func() dominos.StoreAndCouponProvider

// SearchResponse is the JSON shape of a finished search.
type SearchResponse struct {
	Status  string          `json:"status"`
	Coupons []models.Coupon `json:"coupons"`
}

// CouponHandler serves the search endpoints.
type CouponHandler struct {
	newProvider ProviderFactory
	city        string
	now         func() time.Time
}

// NewCouponHandler wires the handler to a provider factory and the city every
// search runs against.
func NewCouponHandler(factory ProviderFactory, city string) *CouponHandler {
	return &CouponHandler{
		newProvider: factory,
		city:        city,
		now:         time.Now,
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// runSearch executes one pipeline invocation for the request's address. A
// NotFound or acquisition failure comes back as an empty result whose Status
// explains what happened; it is not an HTTP error.
func (h *CouponHandler) runSearch(r *http.Request, address string) finder.Result {
	provider := h.newProvider()
	defer provider.Close()

	f := finder.New(provider, func(stage finder.Stage, message string) {
		log.Printf("[%s] %s", stage, message)
	})
	result, _ := f.Run(r.Context(), models.SearchRequest{
		City:    h.city,
		Address: address,
		Service: models.ServiceCarryout,
	})
	return result
}

// SearchCoupons handles GET /api/coupons?address=...
func (h *CouponHandler) SearchCoupons(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "address query parameter is required"})
		return
	}

	result := h.runSearch(r, address)
	writeJSON(w, http.StatusOK, SearchResponse{Status: result.Status, Coupons: result.Coupons})
}

// DownloadCSV handles GET /api/coupons.csv?address=...
func (h *CouponHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "address query parameter is required"})
		return
	}

	result := h.runSearch(r, address)
	data, err := report.CSV(result.Coupons)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "csv_encoding_failed"})
		return
	}

	w.Header().Set("Content-Type", report.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(h.now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Dominos Coupon Finder</title></head>
<body>
  <h1>Dominos Coupon Finder</h1>
  <p>Enter part of a store address to find percentage discount coupons.</p>
  <form action="/api/coupons.csv" method="get">
    <input type="text" name="address" placeholder="1215 Rue Bishop" size="40">
    <button type="submit">Download CSV</button>
  </form>
  <p>Or query <code>/api/coupons?address=...</code> for JSON.</p>
</body>
</html>
`

// Index serves the search form.
func (h *CouponHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}
