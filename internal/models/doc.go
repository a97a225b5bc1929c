// Package models defines the domain entities for the tunes catalog client.
//
// The package contains two categories of types:
//
// 1. Catalog records: decoded from iTunes Search API responses
//   - [Album] : Album metadata keyed by the catalog's collectionId
//   - [Track] : Song name and duration for an album's detail view
//   - [SearchResult] : The {resultCount, results} envelope returned by /search
//
// 2. Query values: built from user input before anything reaches the network
//   - [Scope] : Which field (album name or artist name) a search matches against
//   - [SearchQuery] : Trimmed search text paired with a [Scope]
//
// Albums compare by ID only ([Album.Equal], [Album.Key]); tracks are plain values.
package models
