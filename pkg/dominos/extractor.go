package dominos

import "strings"

// percentMarker is the character a coupon description must contain for the
// coupon to qualify as a percentage discount.
const percentMarker = "%"

// ExtractPercentCoupons returns, in source order, exactly the entries whose
// description contains a percent sign. Everything else is dropped silently.
func ExtractPercentCoupons(entries []CouponEntry) []CouponEntry {
	var kept []CouponEntry
	for _, e := range entries {
		if strings.Contains(e.Description, percentMarker) {
			kept = append(kept, e)
		}
	}
	return kept
}
