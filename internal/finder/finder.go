// Package finder runs the extraction pipeline: store search, store match,
// coupon fetch, percentage filter, record normalization.
package finder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"couponfinder/internal/models"
	"couponfinder/internal/normalize"
	"couponfinder/pkg/dominos"
)

// Stage identifies where the pipeline currently is. The sequence is strictly
// linear; any failure exits straight to StageDone with an empty result.
type Stage string

const (
	StageSearching     Stage = "searching"
	StageStoreMatching Stage = "store_matching"
	StageCouponFetch   Stage = "coupon_fetching"
	StageFiltering     Stage = "filtering"
	StageDone          Stage = "done"
)

// StatusFunc receives human-readable progress updates as the pipeline moves
// between stages, decoupling extraction from whatever displays progress.
type StatusFunc func(stage Stage, message string)

// Result is the outcome of one pipeline run. When no store matches or an
// acquisition step fails, Coupons is empty and Status carries the reason;
// the run never surfaces a fatal error to the end user.
type Result struct {
	Store   models.Store    `json:"store"`
	Coupons []models.Coupon `json:"coupons"`
	Status  string          `json:"status"`
}

// Finder wires a provider to the pipeline. It holds no state between runs;
// the provider session belongs to the caller and is not reused across
// invocations.
type Finder struct {
	provider dominos.StoreAndCouponProvider
	status   StatusFunc
}

// New builds a Finder around the given provider. A nil status callback is
// allowed.
func New(provider dominos.StoreAndCouponProvider, status StatusFunc) *Finder {
	if status == nil {
		status = func(Stage, string) {}
	}
	return &Finder{provider: provider, status: status}
}

// Run executes one search. The returned error is dominos.ErrStoreNotFound or
// a *dominos.AcquisitionError for callers that want to branch on the failure;
// the Result is always usable and already carries the matching empty outcome.
func (f *Finder) Run(ctx context.Context, req models.SearchRequest) (Result, error) {
	f.status(StageSearching, fmt.Sprintf("Searching for %s locations...", req.City))
	stores, err := f.provider.FindStores(ctx, req.City)
	if err != nil {
		return f.fail(fmt.Sprintf("Could not retrieve the store list: %v", err)), err
	}

	f.status(StageStoreMatching, fmt.Sprintf("Looking for a store with address containing: %s", req.Address))
	store, ok := dominos.FindStore(stores, req.Address)
	if !ok {
		return f.fail(fmt.Sprintf("No store found with address containing '%s'", req.Address)), dominos.ErrStoreNotFound
	}
	f.status(StageStoreMatching, fmt.Sprintf("Found target store: %s", store.Address()))

	f.status(StageCouponFetch, fmt.Sprintf("Fetching coupons for store %s...", store.ID))
	entries, err := f.provider.FetchCoupons(ctx, store.ID)
	if err != nil {
		return f.fail(fmt.Sprintf("Could not retrieve coupons for %s: %v", store.Address(), err)), err
	}

	f.status(StageFiltering, "Filtering percentage discount coupons...")
	coupons := normalizeCoupons(ctx, store, dominos.ExtractPercentCoupons(entries))

	result := Result{
		Store:   store,
		Coupons: coupons,
		Status:  fmt.Sprintf("Found %d percentage coupons for %s", len(coupons), store.Address()),
	}
	f.status(StageDone, result.Status)
	return result, nil
}

func (f *Finder) fail(message string) Result {
	f.status(StageDone, message)
	return Result{Status: message}
}

// normalizeCoupons maps filtered entries into coupon records and runs them
// through the normalization steps. A record failing a step is skipped, not
// fatal.
func normalizeCoupons(ctx context.Context, store models.Store, entries []dominos.CouponEntry) []models.Coupon {
	raw := make([]models.Coupon, 0, len(entries))
	for _, e := range entries {
		raw = append(raw, models.Coupon{
			Description: e.Description,
			Code:        e.Code,
			Price:       e.Price,
		})
	}

	pipeline := normalize.NewPipeline(
		trimDescription,
		requireCode,
		defaultPrice,
		stampStoreAddress(store),
	)
	return pipeline.Run(ctx, raw)
}

func trimDescription(_ context.Context, c *models.Coupon) error {
	c.Description = strings.TrimSpace(c.Description)
	if c.Description == "" {
		return errors.New("empty description")
	}
	return nil
}

func requireCode(_ context.Context, c *models.Coupon) error {
	if strings.TrimSpace(c.Code) == "" {
		return errors.New("missing coupon code")
	}
	return nil
}

func defaultPrice(_ context.Context, c *models.Coupon) error {
	if strings.TrimSpace(c.Price) == "" {
		c.Price = models.PriceNA
	}
	return nil
}

func stampStoreAddress(store models.Store) normalize.Step[models.Coupon] {
	address := store.Address()
	return func(_ context.Context, c *models.Coupon) error {
		c.StoreAddress = address
		return nil
	}
}
