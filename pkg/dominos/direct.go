package dominos

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"couponfinder/internal/models"
)

const (
	defaultBaseURL = "https://order.dominos.ca"
	userAgent      = "couponfinder/1.0"

	// Each acquisition step is attempted once with a fixed timeout; there is
	// no retry on failure.
	directTimeout = 20 * time.Second
)

// DirectProvider fetches listings straight over HTTP: stores from the
// structured locator endpoint, coupons from the store's coupon fragment.
type DirectProvider struct {
	client  *resty.Client
	baseURL string
}

// DirectOption configures a DirectProvider.
type DirectOption func(*DirectProvider)

// WithBaseURL points the provider at a different host. Used by tests to
// target a fake upstream.
func WithBaseURL(u string) DirectOption {
	return func(p *DirectProvider) { p.baseURL = u }
}

// NewDirectProvider builds a provider with its own HTTP session. The session
// lives for one pipeline invocation.
func NewDirectProvider(opts ...DirectOption) *DirectProvider {
	p := &DirectProvider{
		client:  resty.New().SetTimeout(directTimeout).SetHeader("User-Agent", userAgent),
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *DirectProvider) FindStores(ctx context.Context, city string) ([]models.Store, error) {
	var out StoreLocatorResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"s":    "",
			"c":    city,
			"type": models.ServiceCarryout,
		}).
		SetResult(&out).
		ForceContentType("application/json").
		Get(p.baseURL + "/power/store-locator")
	if err != nil {
		return nil, &AcquisitionError{Stage: "store search", Err: err}
	}
	if resp.IsError() {
		return nil, &AcquisitionError{Stage: "store search", Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}

	var stores []models.Store
	for _, listing := range out.Stores {
		if !listing.AllowCarryoutOrders {
			continue
		}
		stores = append(stores, models.Store{
			ID:     listing.StoreID,
			Street: listing.StreetName,
			City:   listing.City,
		})
	}
	return stores, nil
}

func (p *DirectProvider) FetchCoupons(ctx context.Context, storeID string) ([]CouponEntry, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("lang", "en").
		Get(fmt.Sprintf("%s/power/store/%s/coupons", p.baseURL, storeID))
	if err != nil {
		return nil, &AcquisitionError{Stage: "coupon fetch", Err: err}
	}
	if resp.IsError() {
		return nil, &AcquisitionError{Stage: "coupon fetch", Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}

	entries, err := ParseCoupons(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, &AcquisitionError{Stage: "coupon parse", Err: err}
	}
	return entries, nil
}

// Close satisfies StoreAndCouponProvider. The HTTP session holds no state
// that outlives its connections.
func (p *DirectProvider) Close() error { return nil }
