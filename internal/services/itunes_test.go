package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
	tu "github.com/desertthunder/tunes/internal/testing"
)

const searchBody = `{
  "resultCount": 2,
  "results": [
    {
      "wrapperType": "collection",
      "collectionType": "Album",
      "collectionId": 1441164426,
      "artistName": "The Beatles",
      "collectionName": "Abbey Road (Remastered)",
      "artworkUrl60": "https://is1-ssl.mzstatic.com/60x60bb.jpg",
      "artworkUrl100": "https://is1-ssl.mzstatic.com/100x100bb.jpg",
      "trackCount": 17,
      "copyright": "℗ 2019 Calderstone Productions Limited",
      "releaseDate": "1969-09-26T07:00:00Z",
      "primaryGenreName": "Rock"
    },
    {
      "wrapperType": "collection",
      "collectionId": 1,
      "artistName": "Abbey",
      "collectionName": "Abbey",
      "trackCount": 3,
      "releaseDate": "2018-10-05T12:00:00Z"
    }
  ]
}`

const lookupBody = `{
  "resultCount": 4,
  "results": [
    {"wrapperType": "collection", "collectionId": 1441164426, "collectionName": "Abbey Road (Remastered)", "artistName": "The Beatles", "trackCount": 3, "releaseDate": "1969-09-26T07:00:00Z"},
    {"wrapperType": "track", "kind": "song", "trackName": "Come Together", "trackTimeMillis": 259947},
    {"wrapperType": "track", "kind": "music-video", "trackName": "Something (Video)", "trackTimeMillis": 183000},
    {"wrapperType": "track", "kind": "song", "trackName": "Something", "trackTimeMillis": 185999}
  ]
}`

func TestCatalogClient(t *testing.T) {
	t.Run("NewCatalogClient", func(t *testing.T) {
		t.Run("applies defaults", func(t *testing.T) {
			c := NewCatalogClient(CatalogOpts{})
			if c.baseURL != defaultCatalogBaseURL {
				t.Errorf("expected baseURL %s, got %s", defaultCatalogBaseURL, c.baseURL)
			}
			if c.Region() != "US" {
				t.Errorf("expected region US, got %s", c.Region())
			}
			if c.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
			if c.limiter != nil {
				t.Error("expected no limiter without requests per minute")
			}
		})

		t.Run("configures pacing", func(t *testing.T) {
			c := NewCatalogClient(CatalogOpts{RequestsPerMinute: 20})
			if c.limiter == nil {
				t.Fatal("expected a limiter")
			}
			if got := c.limiter.Limit(); got < 0.33 || got > 0.34 {
				t.Errorf("expected ~0.333 events per second, got %v", got)
			}
		})
	})

	t.Run("Name", func(t *testing.T) {
		if c := NewCatalogClient(CatalogOpts{}); c.Name() != "iTunes" {
			t.Errorf("expected name iTunes, got %s", c.Name())
		}
	})

	t.Run("SearchAlbums", func(t *testing.T) {
		t.Run("builds the query and decodes albums", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search" {
					t.Errorf("expected path /search, got %s", r.URL.Path)
				}
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}

				q := r.URL.Query()
				want := map[string]string{
					"term":      "abbey road",
					"country":   "GB",
					"entity":    "album",
					"attribute": "albumTerm",
				}
				for key, value := range want {
					if q.Get(key) != value {
						t.Errorf("expected %s=%s, got %s", key, value, q.Get(key))
					}
				}

				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, searchBody)
			}))
			defer server.Close()

			c := NewCatalogClient(CatalogOpts{BaseURL: server.URL, Region: "GB"})
			albums, err := c.SearchAlbums(context.Background(), "abbey road", models.ByAlbum, "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(albums) != 2 {
				t.Fatalf("expected 2 albums, got %d", len(albums))
			}

			first := albums[0]
			if first.ID != 1441164426 {
				t.Errorf("expected ID 1441164426, got %d", first.ID)
			}
			if first.CollectionName != "Abbey Road (Remastered)" {
				t.Errorf("unexpected collection name %s", first.CollectionName)
			}
			if first.ArtworkURLLarge != "https://is1-ssl.mzstatic.com/100x100bb.jpg" {
				t.Errorf("unexpected large artwork %s", first.ArtworkURLLarge)
			}
			if first.TrackCount != 17 {
				t.Errorf("expected 17 tracks, got %d", first.TrackCount)
			}
			if !first.ReleaseDate.Equal(time.Date(1969, time.September, 26, 7, 0, 0, 0, time.UTC)) {
				t.Errorf("unexpected release date %v", first.ReleaseDate)
			}
			if albums[1].Copyright != "" {
				t.Errorf("expected empty copyright, got %s", albums[1].Copyright)
			}
		})

		t.Run("artist scope and region hint", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("attribute") != "allArtistTerm" {
					t.Errorf("expected attribute allArtistTerm, got %s", q.Get("attribute"))
				}
				if q.Get("country") != "JP" {
					t.Errorf("expected region hint JP, got %s", q.Get("country"))
				}
				fmt.Fprint(w, `{"resultCount":0,"results":[]}`)
			}))
			defer server.Close()

			c := NewCatalogClient(CatalogOpts{BaseURL: server.URL, Region: "US"})
			albums, err := c.SearchAlbums(context.Background(), "Perfume", models.ByArtist, "JP")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if albums == nil || len(albums) != 0 {
				t.Errorf("expected empty non-nil slice, got %v", albums)
			}
		})

		t.Run("404 is an HTTPStatusError", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			}))
			defer server.Close()

			c := NewCatalogClient(CatalogOpts{BaseURL: server.URL})
			_, err := c.SearchAlbums(context.Background(), "abbey", models.ByAlbum, "")

			var statusErr *HTTPStatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected HTTPStatusError, got %v", err)
			}
			if statusErr.Code != http.StatusNotFound {
				t.Errorf("expected code 404, got %d", statusErr.Code)
			}
			if KindOf(err) != KindHTTPStatus {
				t.Errorf("expected KindHTTPStatus, got %v", KindOf(err))
			}
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Error("expected error to wrap ErrAPIRequest")
			}
		})

		t.Run("malformed payload is a DecodeError", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"resultCount":"many","results":{}}`)
			}))
			defer server.Close()

			c := NewCatalogClient(CatalogOpts{BaseURL: server.URL})
			_, err := c.SearchAlbums(context.Background(), "abbey", models.ByAlbum, "")

			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
			if KindOf(err) != KindDecode {
				t.Errorf("expected KindDecode, got %v", KindOf(err))
			}
		})

		t.Run("network failure is a TransportError", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}

			c := NewCatalogClient(CatalogOpts{HTTPClient: client})
			_, err := c.SearchAlbums(context.Background(), "abbey", models.ByAlbum, "")

			var transportErr *TransportError
			if !errors.As(err, &transportErr) {
				t.Fatalf("expected TransportError, got %v", err)
			}
			if IsCanceled(err) {
				t.Error("expected a plain network failure not to count as cancellation")
			}
		})

		t.Run("cancelled context is reported as cancellation", func(t *testing.T) {
			release := make(chan struct{})
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				<-release
			}))
			defer server.Close()
			defer close(release)

			ctx, cancel := context.WithCancel(context.Background())
			time.AfterFunc(20*time.Millisecond, cancel)

			c := NewCatalogClient(CatalogOpts{BaseURL: server.URL})
			_, err := c.SearchAlbums(ctx, "abbey", models.ByAlbum, "")

			if !IsCanceled(err) {
				t.Fatalf("expected cancellation, got %v", err)
			}
			if KindOf(err) != KindTransport {
				t.Errorf("expected KindTransport, got %v", KindOf(err))
			}
		})

		t.Run("pacing wait honors cancellation", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"resultCount":0,"results":[]}`)
			}))
			defer server.Close()

			c := NewCatalogClient(CatalogOpts{BaseURL: server.URL, RequestsPerMinute: 1})
			if _, err := c.SearchAlbums(context.Background(), "first", models.ByAlbum, ""); err != nil {
				t.Fatalf("expected first call to pass, got %v", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			time.AfterFunc(20*time.Millisecond, cancel)

			start := time.Now()
			_, err := c.SearchAlbums(ctx, "second", models.ByAlbum, "")
			if !IsCanceled(err) {
				t.Fatalf("expected cancellation while waiting, got %v", err)
			}
			if time.Since(start) > 5*time.Second {
				t.Error("expected wait to end on cancellation")
			}
		})
	})

	t.Run("FetchTracks", func(t *testing.T) {
		t.Run("keeps songs and truncates durations", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/lookup" {
					t.Errorf("expected path /lookup, got %s", r.URL.Path)
				}
				q := r.URL.Query()
				if q.Get("id") != "1441164426" {
					t.Errorf("expected id 1441164426, got %s", q.Get("id"))
				}
				if q.Get("entity") != "song" {
					t.Errorf("expected entity song, got %s", q.Get("entity"))
				}
				if q.Get("country") != "US" {
					t.Errorf("expected country US, got %s", q.Get("country"))
				}
				fmt.Fprint(w, lookupBody)
			}))
			defer server.Close()

			c := NewCatalogClient(CatalogOpts{BaseURL: server.URL})
			tracks, err := c.FetchTracks(context.Background(), 1441164426)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			want := []models.Track{
				{Name: "Come Together", DurationSeconds: 259},
				{Name: "Something", DurationSeconds: 185},
			}
			if len(tracks) != len(want) {
				t.Fatalf("expected %d tracks, got %d: %+v", len(want), len(tracks), tracks)
			}
			for i := range want {
				if tracks[i] != want[i] {
					t.Errorf("track %d: expected %+v, got %+v", i, want[i], tracks[i])
				}
			}
		})

		t.Run("server error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			}))
			defer server.Close()

			c := NewCatalogClient(CatalogOpts{BaseURL: server.URL})
			_, err := c.FetchTracks(context.Background(), 1)

			var statusErr *HTTPStatusError
			if !errors.As(err, &statusErr) || statusErr.Code != http.StatusServiceUnavailable {
				t.Fatalf("expected HTTPStatusError{503}, got %v", err)
			}
		})

		t.Run("non-object payload", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `[1, 2, 3]`)
			}))
			defer server.Close()

			c := NewCatalogClient(CatalogOpts{BaseURL: server.URL})
			if _, err := c.FetchTracks(context.Background(), 1); KindOf(err) != KindDecode {
				t.Fatalf("expected decode error, got %v", err)
			}
		})
	})

	t.Run("LookupAlbum", func(t *testing.T) {
		t.Run("returns the collection", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("entity") != "" {
					t.Errorf("expected no entity, got %s", r.URL.Query().Get("entity"))
				}
				fmt.Fprint(w, searchBody)
			}))
			defer server.Close()

			c := NewCatalogClient(CatalogOpts{BaseURL: server.URL})
			album, err := c.LookupAlbum(context.Background(), 1)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if album.CollectionName != "Abbey" {
				t.Errorf("expected Abbey, got %s", album.CollectionName)
			}
		})

		t.Run("empty result is not found", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"resultCount":0,"results":[]}`)
			}))
			defer server.Close()

			c := NewCatalogClient(CatalogOpts{BaseURL: server.URL})
			_, err := c.LookupAlbum(context.Background(), 42)
			if !errors.Is(err, shared.ErrAlbumNotFound) {
				t.Fatalf("expected ErrAlbumNotFound, got %v", err)
			}
		})
	})
}

func TestUserMessage(t *testing.T) {
	tc := []struct {
		name string
		err  error
		want string
	}{
		{name: "status", err: &HTTPStatusError{Code: 404}, want: "404 not found"},
		{name: "decode", err: &DecodeError{Err: errors.New("bad")}, want: "can't decode data"},
		{name: "transport", err: &TransportError{Err: errors.New("dial tcp: refused")}, want: "network error: dial tcp: refused"},
		{name: "other", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("search failed: %w", &DecodeError{Err: errors.New("eof")})
	if KindOf(wrapped) != KindDecode {
		t.Errorf("expected KindDecode through wrapping, got %v", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != KindTransport {
		t.Error("expected unknown errors to count as transport")
	}
	if KindHTTPStatus.String() != "http_status" {
		t.Errorf("unexpected kind name %s", KindHTTPStatus.String())
	}
}
