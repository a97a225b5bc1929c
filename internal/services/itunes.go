// iTunes Search API [Catalog] implementation
//
// Talks to https://itunes.apple.com/search and /lookup directly; no authentication is involved.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
	"github.com/samber/lo"
	"golang.org/x/time/rate"
)

const (
	defaultCatalogBaseURL string = "https://itunes.apple.com"
	defaultRegion         string = "US"
	catalogUserAgent      string = "tunes/0.1"
)

// lookupItem is one loosely-typed entry of a /lookup response.
//
// Lookups return the album's collection wrapper alongside its songs (and sometimes music videos),
// so only entries whose kind is "song" become tracks.
type lookupItem struct {
	WrapperType     string `json:"wrapperType"`
	Kind            string `json:"kind"`
	TrackName       string `json:"trackName"`
	TrackTimeMillis int64  `json:"trackTimeMillis"`
}

type lookupResponse struct {
	ResultCount int          `json:"resultCount"`
	Results     []lookupItem `json:"results"`
}

// CatalogOpts configures a [CatalogClient].
type CatalogOpts struct {
	BaseURL           string
	Region            string
	HTTPClient        *http.Client
	RequestsPerMinute int // 0 disables pacing
}

// CatalogClient implements [Catalog] for the iTunes Search API.
type CatalogClient struct {
	baseURL    string
	region     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewCatalogClient creates a new iTunes catalog client.
func NewCatalogClient(opts CatalogOpts) *CatalogClient {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultCatalogBaseURL
	}
	if opts.Region == "" {
		opts.Region = defaultRegion
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	c := &CatalogClient{
		baseURL:    opts.BaseURL,
		region:     opts.Region,
		httpClient: opts.HTTPClient,
	}

	if opts.RequestsPerMinute > 0 {
		every := time.Minute / time.Duration(opts.RequestsPerMinute)
		c.limiter = rate.NewLimiter(rate.Every(every), 1)
	}

	return c
}

// Name returns the catalog name.
func (c *CatalogClient) Name() string {
	return "iTunes"
}

// Region returns the default storefront used when no region hint is given.
func (c *CatalogClient) Region() string {
	return c.region
}

// SearchAlbums searches albums by album or artist name.
//
// Calls GET /search?term={text}&country={region}&entity=album&attribute={scope attribute}.
func (c *CatalogClient) SearchAlbums(ctx context.Context, text string, scope models.Scope, regionHint string) ([]models.Album, error) {
	region := regionHint
	if region == "" {
		region = c.region
	}

	params := url.Values{}
	params.Set("term", text)
	params.Set("country", region)
	params.Set("entity", "album")
	params.Set("attribute", scope.Attribute())

	var result models.SearchResult
	if err := c.getJSON(ctx, "/search", params, &result); err != nil {
		return nil, err
	}

	if result.Results == nil {
		return []models.Album{}, nil
	}
	return result.Results, nil
}

// FetchTracks returns the songs of an album.
//
// Calls GET /lookup?id={albumID}&country={region}&entity=song and keeps entries whose kind is "song".
func (c *CatalogClient) FetchTracks(ctx context.Context, albumID int64) ([]models.Track, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(albumID, 10))
	params.Set("country", c.region)
	params.Set("entity", "song")

	var result lookupResponse
	if err := c.getJSON(ctx, "/lookup", params, &result); err != nil {
		return nil, err
	}

	tracks := lo.FilterMap(result.Results, func(item lookupItem, _ int) (models.Track, bool) {
		if item.Kind != "song" {
			return models.Track{}, false
		}
		return models.NewTrack(item.TrackName, item.TrackTimeMillis), true
	})

	return tracks, nil
}

// LookupAlbum returns the album record for albumID.
//
// Calls GET /lookup?id={albumID}&country={region}; returns [shared.ErrAlbumNotFound] for an empty result.
func (c *CatalogClient) LookupAlbum(ctx context.Context, albumID int64) (models.Album, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(albumID, 10))
	params.Set("country", c.region)

	var result models.SearchResult
	if err := c.getJSON(ctx, "/lookup", params, &result); err != nil {
		return models.Album{}, err
	}

	album, ok := lo.Find(result.Results, func(a models.Album) bool { return a.ID == albumID })
	if !ok {
		return models.Album{}, fmt.Errorf("%w: %d", shared.ErrAlbumNotFound, albumID)
	}
	return album, nil
}

func (c *CatalogClient) getJSON(ctx context.Context, endpoint string, params url.Values, result any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransportError{Err: err}
		}
	}

	apiURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", catalogUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &HTTPStatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &DecodeError{Err: err}
	}

	return nil
}
