package models

import (
	"fmt"
	"strings"
)

// Scope selects the field a search matches against.
type Scope int

const (
	ByAlbum Scope = iota
	ByArtist
)

// ParseScope converts a user-facing scope name ("album" or "artist") into a [Scope].
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "album":
		return ByAlbum, nil
	case "artist":
		return ByArtist, nil
	default:
		return ByAlbum, fmt.Errorf("unknown scope %q (want album or artist)", s)
	}
}

func (s Scope) String() string {
	if s == ByArtist {
		return "artist"
	}
	return "album"
}

// Attribute returns the iTunes Search API attribute name for the scope.
func (s Scope) Attribute() string {
	if s == ByArtist {
		return "allArtistTerm"
	}
	return "albumTerm"
}

// PrimaryField returns the album field the scope matches against.
func (s Scope) PrimaryField(a Album) string {
	if s == ByArtist {
		return a.ArtistName
	}
	return a.CollectionName
}

// Toggle returns the other scope.
func (s Scope) Toggle() Scope {
	if s == ByArtist {
		return ByAlbum
	}
	return ByArtist
}

// SearchQuery is one settled piece of user input.
type SearchQuery struct {
	Text  string
	Scope Scope
}

// NewSearchQuery trims text and pairs it with scope.
func NewSearchQuery(text string, scope Scope) SearchQuery {
	return SearchQuery{Text: strings.TrimSpace(text), Scope: scope}
}

// IsEmpty reports whether the query has no searchable text.
// Empty queries clear the result set instead of reaching the network.
func (q SearchQuery) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == ""
}
