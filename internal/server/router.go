// Package server exposes the finder pipeline over HTTP: a minimal search
// form, a JSON endpoint and a CSV download. Failures surface as an empty
// record set with a status message, mirroring the pipeline contract.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter builds the HTTP router for the coupon finder.
func NewRouter(h *CouponHandler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.Index)

	r.Route("/api", func(r chi.Router) {
		r.Get("/coupons", h.SearchCoupons)
		r.Get("/coupons.csv", h.DownloadCSV)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
