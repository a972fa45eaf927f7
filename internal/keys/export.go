package keys

import (
	"fmt"
	"strings"

	"couponfinder/internal/models"
)

// sanitizeKey lowercases the string and replaces spaces with hyphens so the
// result is a valid object key segment. Commas from "street, city" style
// addresses are stripped.
func sanitizeKey(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

// Export returns the canonical object key for an archived finder run.
func Export(e models.Export) string {
	return fmt.Sprintf("exports/%s/%s.json",
		sanitizeKey(e.Address),
		e.CreatedAt.UTC().Format("20060102T150405Z"),
	)
}
