// Package dominos talks to the Dominos ordering site: the store directory
// service that resolves a city to its carryout locations, and the coupon
// listing service that resolves a store to its current promotions. Both
// response shapes are external contracts this package has no control over.
package dominos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"couponfinder/internal/models"
)

// StoreAndCouponProvider abstracts how store and coupon listings are
// acquired. DirectProvider queries the site's endpoints over plain HTTP;
// BrowserProvider drives a headless browser through the same pages. A
// provider owns one transient session, scoped to a single pipeline
// invocation, and must be closed on every exit path.
type StoreAndCouponProvider interface {
	// FindStores returns the carryout-capable stores for a city, preserving
	// the order the upstream returned them in.
	FindStores(ctx context.Context, city string) ([]models.Store, error)

	// FetchCoupons returns the raw coupon entries currently listed by the
	// store with the given identifier.
	FetchCoupons(ctx context.Context, storeID string) ([]CouponEntry, error)

	// Close releases the underlying browser or HTTP session.
	Close() error
}

// NewProvider returns the provider for the named acquisition strategy:
// "browser" launches a headless browser session, anything else falls back to
// direct HTTP retrieval.
func NewProvider(kind string) StoreAndCouponProvider {
	if strings.EqualFold(kind, "browser") {
		return NewBrowserProvider()
	}
	return NewDirectProvider()
}

// ErrStoreNotFound reports that no store street matched the requested
// address fragment.
var ErrStoreNotFound = errors.New("no store matched the requested address")

// AcquisitionError wraps a transport, navigation, timeout or response-shape
// failure at one acquisition stage. Each stage is attempted exactly once.
type AcquisitionError struct {
	Stage string
	Err   error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquisition failed during %s: %v", e.Stage, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }
