package stores

import (
	"fmt"
	"regexp"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// MakeSlug derives a URL-safe slug from a store name.
func MakeSlug(name string) string {
	return slug.Make(name)
}

// slugMatcher counts existing slugs colliding with a base slug.
type slugMatcher interface {
	CountSlugMatchesWithTx(tx *gorm.DB, pattern string) (int64, error)
}

// resolveSlug returns a slug for the base by counting rows whose slug is the
// base itself or the base with a numeric suffix, then appending the count when
// any exist. Runs inside the caller's transaction so concurrent saves cannot
// race past the unique constraint unnoticed.
func resolveSlug(tx *gorm.DB, repo slugMatcher, base string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("slug base is required")
	}

	count, err := repo.CountSlugMatchesWithTx(tx, slugPattern(base))
	if err != nil {
		return "", err
	}
	if count == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, count), nil
}

// slugPattern builds the case-insensitive regex matching "base" and "base-<digits>".
func slugPattern(base string) string {
	return fmt.Sprintf("^(%s)(-[0-9]*)?$", regexp.QuoteMeta(base))
}
