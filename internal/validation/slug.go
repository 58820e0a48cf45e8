package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var categorySlugRegex = regexp.MustCompile(`^[a-z0-9-]{2,48}$`)

var reservedCategorySlugs = map[string]struct{}{
	"admin":         {},
	"api":           {},
	"auth":          {},
	"candidates":    {},
	"categories":    {},
	"comments":      {},
	"login":         {},
	"metrics":       {},
	"notifications": {},
	"posts":         {},
	"reactions":     {},
	"settings":      {},
	"signup":        {},
	"swagger":       {},
	"users":         {},
	"ws":            {},
}

// ValidateCategorySlug validates category slug format and reserved names.
func ValidateCategorySlug(slug string) error {
	if !categorySlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 2-48 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug cannot start or end with a hyphen")
	}

	if _, exists := reservedCategorySlugs[slug]; exists {
		return fmt.Errorf("slug is reserved")
	}

	return nil
}
