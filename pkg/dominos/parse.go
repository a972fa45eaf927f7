package dominos

import (
	"io"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"couponfinder/internal/models"
)

// Selectors for the ordering site's markup. These mirror the page structure
// the browser variant interacts with, so both providers parse the same shape.
const (
	storeContainerSel = "div.store__list-container"
	storeStreetSel    = "div[data-quid$='-street']"
	storeCitySel      = "div[data-quid$='-city'] span"
	carryoutButtonSel = "button[data-type='Carryout']"

	couponContainerSel = "div.local-coupon__container"
	couponDescSel      = ".local-coupon__description p"
	couponPriceSel     = ".local-coupon__price"
	couponCodeAttr     = "data-couponcode"
)

// ParseStoreList extracts stores from search results markup. Containers
// missing a street field or a carryout control are skipped.
func ParseStoreList(r io.Reader) ([]models.Store, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var stores []models.Store
	doc.Find(storeContainerSel).Each(func(_ int, sel *goquery.Selection) {
		street := strings.TrimSpace(sel.Find(storeStreetSel).First().Text())
		if street == "" {
			return
		}
		id, ok := sel.Find(carryoutButtonSel).First().Attr("data-id")
		if !ok || id == "" {
			return
		}
		city := strings.TrimSpace(sel.Find(storeCitySel).First().Text())
		stores = append(stores, models.Store{ID: id, Street: street, City: city})
	})
	return stores, nil
}

// ParseCoupons extracts coupon entries from a coupon listing fragment. A tile
// without a description paragraph or a code attribute is logged and skipped;
// the remaining tiles are still processed.
func ParseCoupons(r io.Reader) ([]CouponEntry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var entries []CouponEntry
	doc.Find(couponContainerSel).Each(func(i int, sel *goquery.Selection) {
		desc := strings.TrimSpace(sel.Find(couponDescSel).First().Text())
		code, _ := sel.Find("a[" + couponCodeAttr + "]").First().Attr(couponCodeAttr)
		if desc == "" || code == "" {
			log.Printf("Skipping malformed coupon tile %d (description or code missing)", i)
			return
		}
		entries = append(entries, CouponEntry{
			Description: desc,
			Code:        code,
			Price:       strings.TrimSpace(sel.Find(couponPriceSel).First().Text()),
		})
	})
	return entries, nil
}
