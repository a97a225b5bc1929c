package models

import "time"

// Album is a single album record from the catalog.
//
// Field tags match the iTunes Search API names exactly. Albums are immutable once decoded.
type Album struct {
	ID              int64     `json:"collectionId"`
	ArtistName      string    `json:"artistName"`
	CollectionName  string    `json:"collectionName"`
	ArtworkURLSmall string    `json:"artworkUrl60,omitempty"`  // 60x60 artwork
	ArtworkURLLarge string    `json:"artworkUrl100,omitempty"` // 100x100 artwork
	TrackCount      int       `json:"trackCount"`
	Copyright       string    `json:"copyright,omitempty"`
	ReleaseDate     time.Time `json:"releaseDate"`
}

// SearchResult is the envelope returned by the catalog's search endpoint.
type SearchResult struct {
	ResultCount int     `json:"resultCount"`
	Results     []Album `json:"results"`
}

// Key returns the identity used for equality and hashing (map keys, list diffing).
func (a Album) Key() int64 { return a.ID }

// Equal reports whether two albums refer to the same catalog entry.
//
// Only the ID participates; two decodes of the same album with different artwork are equal.
func (a Album) Equal(other Album) bool { return a.ID == other.ID }

// Artwork returns the largest available artwork URL, or an empty string.
func (a Album) Artwork() string {
	if a.ArtworkURLLarge != "" {
		return a.ArtworkURLLarge
	}
	return a.ArtworkURLSmall
}
