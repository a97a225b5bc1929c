package tasks

import (
	"slices"
	"strings"

	"github.com/desertthunder/tunes/internal/models"
)

// Rank orders albums for display and returns a new slice.
//
// Albums whose scope field equals query (ignoring case) come first; within each group albums are
// ordered by lowercased collection name. The sort is stable, so ties keep catalog order.
func Rank(albums []models.Album, query string, scope models.Scope) []models.Album {
	sorted := slices.Clone(albums)
	if sorted == nil {
		sorted = []models.Album{}
	}

	needle := strings.ToLower(strings.TrimSpace(query))

	slices.SortStableFunc(sorted, func(a, b models.Album) int {
		aExact := strings.ToLower(scope.PrimaryField(a)) == needle
		bExact := strings.ToLower(scope.PrimaryField(b)) == needle

		switch {
		case aExact && !bExact:
			return -1
		case bExact && !aExact:
			return 1
		}

		return strings.Compare(strings.ToLower(a.CollectionName), strings.ToLower(b.CollectionName))
	})

	return sorted
}
