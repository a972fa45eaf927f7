package dominos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"couponfinder/internal/models"
)

const (
	defaultSearchURL = "https://www.dominos.ca/en/pages/order/#!/locations/search/"

	// Navigation steps wait at most this long before the step fails and the
	// pipeline aborts to its empty-result state.
	defaultStepTimeout = 30 * time.Second
)

// BrowserProvider drives a headless Chrome session through the ordering site
// and harvests the same markup the direct provider downloads, so both ends up
// in the shared goquery parsers. One provider owns one browser session.
type BrowserProvider struct {
	ctx         context.Context
	cancel      context.CancelFunc
	searchURL   string
	stepTimeout time.Duration
}

// BrowserOption configures a BrowserProvider.
type BrowserOption func(*BrowserProvider)

// WithSearchURL overrides the location search page, used by tests against a
// local fixture server.
func WithSearchURL(u string) BrowserOption {
	return func(b *BrowserProvider) { b.searchURL = u }
}

// WithStepTimeout overrides the per-step navigation timeout.
func WithStepTimeout(d time.Duration) BrowserOption {
	return func(b *BrowserProvider) { b.stepTimeout = d }
}

// NewBrowserProvider launches a headless browser session. The session lives
// for one pipeline invocation and Close must be called on every exit path.
func NewBrowserProvider(opts ...BrowserOption) *BrowserProvider {
	allocCtx, allocCancel := chromedp.NewExecAllocator(
		context.Background(),
		chromedp.DefaultExecAllocatorOptions[:]...,
	)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	b := &BrowserProvider{
		ctx: tabCtx,
		cancel: func() {
			tabCancel()
			allocCancel()
		},
		searchURL:   defaultSearchURL,
		stepTimeout: defaultStepTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// run executes one acquisition step against the session tab with the fixed
// step timeout applied.
func (b *BrowserProvider) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stepCtx, cancel := context.WithTimeout(b.ctx, b.stepTimeout)
	defer cancel()
	return chromedp.Run(stepCtx, actions...)
}

func (b *BrowserProvider) FindStores(ctx context.Context, city string) ([]models.Store, error) {
	var listHTML string
	err := b.run(ctx,
		chromedp.Navigate(b.searchURL),
		chromedp.WaitVisible(`span.Carryout`, chromedp.ByQuery),
		chromedp.Click(`span.Carryout`, chromedp.ByQuery),
		chromedp.SetValue(`#cityFinder`, city, chromedp.ByQuery),
		chromedp.Click(`button.js-searchboxButton`, chromedp.ByQuery),
		chromedp.WaitVisible(storeContainerSel, chromedp.ByQuery),
		chromedp.OuterHTML(`body`, &listHTML, chromedp.ByQuery),
	)
	if err != nil {
		return nil, &AcquisitionError{Stage: "store search", Err: err}
	}

	stores, err := ParseStoreList(strings.NewReader(listHTML))
	if err != nil {
		return nil, &AcquisitionError{Stage: "store parse", Err: err}
	}
	return stores, nil
}

func (b *BrowserProvider) FetchCoupons(ctx context.Context, storeID string) ([]CouponEntry, error) {
	storeButton := fmt.Sprintf(`button[data-type='Carryout'][data-id='%s']`, storeID)

	var couponHTML string
	err := b.run(ctx,
		chromedp.Click(storeButton, chromedp.ByQuery),
		chromedp.WaitVisible(`a[data-quid='entree-coupons']`, chromedp.ByQuery),
		chromedp.Click(`a[data-quid='entree-coupons']`, chromedp.ByQuery),
		chromedp.WaitVisible(`a.findCouponButton`, chromedp.ByQuery),
		chromedp.Click(`a.findCouponButton`, chromedp.ByQuery),
		chromedp.WaitVisible(couponContainerSel, chromedp.ByQuery),
		chromedp.OuterHTML(`body`, &couponHTML, chromedp.ByQuery),
	)
	if err != nil {
		return nil, &AcquisitionError{Stage: "coupon fetch", Err: err}
	}

	entries, err := ParseCoupons(strings.NewReader(couponHTML))
	if err != nil {
		return nil, &AcquisitionError{Stage: "coupon parse", Err: err}
	}
	return entries, nil
}

// Close tears down the browser session.
func (b *BrowserProvider) Close() error {
	b.cancel()
	return nil
}
