// Package catalog is the typed request layer over the TMDB v3 API.
// One method per upstream capability; every failure is returned to the
// caller as a typed error and nothing is retried.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/marco/watchNext/internal/metrics"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultLanguage = "en-US"
)

// appendToResponse is requested on every detail fetch so one round trip
// returns the base record with credits, videos and similar titles.
const appendToResponse = "credits,videos,similar"

// Client represents a TMDB API client
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	metrics    *metrics.Recorder
}

// Config holds configuration for the TMDB client
type Config struct {
	APIKey   string
	BaseURL  string
	Language string
	// Timeout of zero leaves the transport default in place.
	Timeout    time.Duration
	HTTPClient *http.Client
	Metrics    *metrics.Recorder
}

// NewClient creates a new TMDB API client with default settings
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a new TMDB API client with full configuration
func NewClientWithConfig(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		language:   cfg.Language,
		httpClient: httpClient,
		metrics:    cfg.Metrics,
	}
}

// FetchGenreList fetches the genre list for movies or TV shows
func (c *Client) FetchGenreList(ctx context.Context, mediaType MediaType) ([]Genre, error) {
	if !mediaType.Valid() {
		return nil, fmt.Errorf("failed to fetch genres: unsupported media type %q", mediaType)
	}

	var result GenreListResponse
	if err := c.get(ctx, "genres", fmt.Sprintf("/genre/%s/list", mediaType), nil, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch %s genres: %w", mediaType, err)
	}
	return result.Genres, nil
}

// FetchTrending fetches trending titles for the given scope and time window
func (c *Client) FetchTrending(ctx context.Context, scope TrendingScope, window TimeWindow) (*Page, error) {
	var result Page
	path := fmt.Sprintf("/trending/%s/%s", scope, window)
	if err := c.get(ctx, "trending", path, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch trending: %w", err)
	}
	return &result, nil
}

// SearchMedia searches movies or TV shows by free text.
// An empty result page is returned as-is; the caller decides how to present it.
func (c *Client) SearchMedia(ctx context.Context, query string, mediaType MediaType) (*Page, error) {
	if !mediaType.Valid() {
		return nil, fmt.Errorf("failed to search: unsupported media type %q", mediaType)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")

	var result Page
	if err := c.get(ctx, "search", fmt.Sprintf("/search/%s", mediaType), params, &result); err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", mediaType, err)
	}
	return &result, nil
}

// Discover fetches a filtered listing sorted by popularity
func (c *Client) Discover(ctx context.Context, mediaType MediaType, filters DiscoverFilters) (*Page, error) {
	if !mediaType.Valid() {
		return nil, fmt.Errorf("failed to discover: unsupported media type %q", mediaType)
	}

	var result Page
	path := fmt.Sprintf("/discover/%s", mediaType)
	if err := c.get(ctx, "discover", path, filters.Values(mediaType), &result); err != nil {
		return nil, fmt.Errorf("failed to discover %s: %w", mediaType, err)
	}
	return &result, nil
}

// FetchDetails fetches one movie or TV show with credits, videos and similar titles appended
func (c *Client) FetchDetails(ctx context.Context, id int, mediaType MediaType) (*Details, error) {
	if !mediaType.Valid() {
		return nil, fmt.Errorf("failed to get details: unsupported media type %q", mediaType)
	}

	params := url.Values{}
	params.Set("append_to_response", appendToResponse)

	var result Details
	path := fmt.Sprintf("/%s/%s", mediaType, strconv.Itoa(id))
	if err := c.get(ctx, "details", path, params, &result); err != nil {
		return nil, fmt.Errorf("failed to get %s details for ID %d: %w", mediaType, id, err)
	}
	return &result, nil
}

// get performs one GET round trip and decodes the JSON body into out.
// endpoint is the low-cardinality name used for logs and metrics.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	// Build query parameters
	query := url.Values{}
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// The request URL carries the credential, so only the path is logged.
	slog.Debug("fetching from TMDB", "endpoint", endpoint, "path", path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(endpoint, metrics.OutcomeTransportError, time.Since(start))
		return &TransportError{Op: endpoint, Err: stripURL(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveRequest(endpoint, metrics.OutcomeTransportError, time.Since(start))
		return &TransportError{Op: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.ObserveRequest(endpoint, metrics.OutcomeUpstreamError, time.Since(start))
		return &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		c.metrics.ObserveRequest(endpoint, metrics.OutcomeEmptyResponse, time.Since(start))
		return &EmptyResponseError{Path: path}
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.metrics.ObserveRequest(endpoint, metrics.OutcomeEmptyResponse, time.Since(start))
		return &EmptyResponseError{Path: path, Err: err}
	}

	c.metrics.ObserveRequest(endpoint, metrics.OutcomeOK, time.Since(start))
	slog.Debug("TMDB request completed",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// stripURL drops the *url.Error wrapper, whose message embeds the full
// request URL including the api_key parameter.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
