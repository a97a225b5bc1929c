// package services defines interface Catalog for querying the iTunes catalog over HTTP
package services

import (
	"context"

	"github.com/desertthunder/tunes/internal/models"
)

// Catalog defines the read operations the search pipeline needs from a music catalog.
type Catalog interface {
	// SearchAlbums searches albums whose scope field matches text.
	// regionHint selects the storefront; empty uses the catalog's default region.
	SearchAlbums(ctx context.Context, text string, scope models.Scope, regionHint string) ([]models.Album, error)

	// FetchTracks returns the songs of an album, in catalog order.
	FetchTracks(ctx context.Context, albumID int64) ([]models.Track, error)

	// LookupAlbum returns a single album by ID.
	LookupAlbum(ctx context.Context, albumID int64) (models.Album, error)

	// Name returns the name of the catalog (e.g., "iTunes")
	Name() string
}
