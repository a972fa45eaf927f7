package dominos

// StoreLocatorResponse is the top-level struct for the store locator query
// endpoint.
type StoreLocatorResponse struct {
	Status int            `json:"Status"`
	Stores []StoreListing `json:"Stores"`
}

// StoreListing represents a single store in the locator response. Only the
// fields the finder needs are mapped.
type StoreListing struct {
	StoreID             string `json:"StoreID"`
	StreetName          string `json:"StreetName"`
	City                string `json:"City"`
	AllowCarryoutOrders bool   `json:"AllowCarryoutOrders"`
	IsOpen              bool   `json:"IsOpen"`
}

// CouponEntry is one tile from a store's coupon listing, before percentage
// filtering. Price is empty when the tile carries no price element.
type CouponEntry struct {
	Description string
	Code        string
	Price       string
}
