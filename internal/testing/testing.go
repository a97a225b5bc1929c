// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/tunes/internal/models"
)

// SearchCall records one call to [FakeCatalog.SearchAlbums]
type SearchCall struct {
	Text   string
	Scope  models.Scope
	Region string
}

// FakeCatalog is a test double for [services.Catalog].
//
// Behavior is driven by the optional hook funcs; without hooks it returns empty results.
type FakeCatalog struct {
	SearchFunc func(ctx context.Context, call SearchCall) ([]models.Album, error)
	TracksFunc func(ctx context.Context, albumID int64) ([]models.Track, error)
	AlbumFunc  func(ctx context.Context, albumID int64) (models.Album, error)

	mu          sync.Mutex
	searches    []SearchCall
	trackLoads  []int64
	albumLookup []int64
}

func (f *FakeCatalog) SearchAlbums(ctx context.Context, text string, scope models.Scope, regionHint string) ([]models.Album, error) {
	call := SearchCall{Text: text, Scope: scope, Region: regionHint}

	f.mu.Lock()
	f.searches = append(f.searches, call)
	f.mu.Unlock()

	if f.SearchFunc == nil {
		return []models.Album{}, nil
	}
	return f.SearchFunc(ctx, call)
}

func (f *FakeCatalog) FetchTracks(ctx context.Context, albumID int64) ([]models.Track, error) {
	f.mu.Lock()
	f.trackLoads = append(f.trackLoads, albumID)
	f.mu.Unlock()

	if f.TracksFunc == nil {
		return []models.Track{}, nil
	}
	return f.TracksFunc(ctx, albumID)
}

func (f *FakeCatalog) LookupAlbum(ctx context.Context, albumID int64) (models.Album, error) {
	f.mu.Lock()
	f.albumLookup = append(f.albumLookup, albumID)
	f.mu.Unlock()

	if f.AlbumFunc == nil {
		return models.Album{ID: albumID}, nil
	}
	return f.AlbumFunc(ctx, albumID)
}

func (f *FakeCatalog) Name() string { return "fake" }

// Searches returns a copy of the recorded search calls
func (f *FakeCatalog) Searches() []SearchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SearchCall(nil), f.searches...)
}

// SearchCount returns the number of search calls made so far
func (f *FakeCatalog) SearchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches)
}

// TrackLoads returns the album ids passed to FetchTracks
func (f *FakeCatalog) TrackLoads() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.trackLoads...)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
