package dominos

import (
	"strings"

	"couponfinder/internal/models"
)

// FindStore returns the first store in list order whose street field contains
// the given address fragment, case-insensitively. Matching is substring
// containment against the street text only, never the city or full address,
// and later candidates are not evaluated once a store has matched.
func FindStore(stores []models.Store, address string) (models.Store, bool) {
	needle := strings.ToLower(address)
	for _, s := range stores {
		if strings.Contains(strings.ToLower(s.Street), needle) {
			return s, true
		}
	}
	return models.Store{}, false
}
