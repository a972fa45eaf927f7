package models

import (
	"fmt"
	"time"
)

// DefaultCity is the city every search runs against. The original tool only
// ever searched Montreal carryout locations; it can be overridden through
// FINDER_CITY.
const DefaultCity = "Montreal, QC"

// ServiceCarryout is the fulfillment mode used for store lookups.
const ServiceCarryout = "Carryout"

// PriceNA is the literal written into a coupon record when the listing has no
// price element for it.
const PriceNA = "N/A"

// Store is one carryout-capable location returned by the store directory
// service. It exists only within a single search invocation and is never
// persisted.
type Store struct {
	ID     string `json:"store_id"`
	Street string `json:"street"`
	City   string `json:"city"`
}

// Address returns the display address, street followed by city.
func (s Store) Address() string {
	return fmt.Sprintf("%s, %s", s.Street, s.City)
}

// Coupon pairs a percentage-discount description with its redemption code.
// StoreAddress is a denormalized copy of the matched store's address, not a
// relation.
type Coupon struct {
	StoreAddress string `json:"store_address"`
	Description  string `json:"description"`
	Code         string `json:"code"`
	Price        string `json:"price"`
}

// SearchRequest describes one pipeline invocation.
type SearchRequest struct {
	City    string
	Address string
	Service string
}

// NewSearchRequest builds a request for the default city and carryout mode.
func NewSearchRequest(address string) SearchRequest {
	return SearchRequest{
		City:    DefaultCity,
		Address: address,
		Service: ServiceCarryout,
	}
}

// Export is the archived outcome of one finder run, written to object storage
// when archiving is enabled. The pipeline itself stays ephemeral; exports are
// an opt-in sink.
type Export struct {
	Address      string    `json:"address"`
	StoreAddress string    `json:"store_address"`
	CreatedAt    time.Time `json:"created_at"`
	Coupons      []Coupon  `json:"coupons"`
}
