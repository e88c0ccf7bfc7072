package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrBothSourcesFailed is returned when the primary and the fallback source both fail.
var ErrBothSourcesFailed = errors.New("primary and fallback sources failed")

// maxPayloadBytes bounds a single dataset download.
const maxPayloadBytes = 256 << 20

// StatusError is a non-200 response from a data source.
type StatusError struct {
	URL        string
	StatusCode int
	RetryAfter string
}

func (e *StatusError) Error() string {
	switch e.StatusCode {
	case http.StatusNotFound:
		return fmt.Sprintf("dataset not found at %s (404)", e.URL)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Sprintf("access to %s denied (%d)", e.URL, e.StatusCode)
	case http.StatusTooManyRequests:
		if e.RetryAfter != "" {
			return fmt.Sprintf("rate limit exceeded at %s (429), retry after %s seconds", e.URL, e.RetryAfter)
		}
		return fmt.Sprintf("rate limit exceeded at %s (429)", e.URL)
	default:
		if e.StatusCode >= 500 {
			return fmt.Sprintf("server error from %s (%d)", e.URL, e.StatusCode)
		}
		return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
	}
}

// Client fetches JSON datasets over HTTP or from local files and keeps the
// last good copy of each dataset in a cache directory.
type Client struct {
	httpClient *http.Client
	cacheDir   string
	now        func() time.Time
}

// NewClient creates a client with a per-request timeout. An empty cacheDir disables caching.
func NewClient(timeout time.Duration, cacheDir string) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cacheDir:   cacheDir,
		now:        time.Now,
	}
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// FetchJSON downloads a JSON document. A "t" query parameter is added so
// intermediaries never serve a stale copy.
func (c *Client) FetchJSON(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset url %q: %w", rawURL, err)
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	log.Debug().Str("url", u.String()).Msg("Requesting dataset")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode, RetryAfter: resp.Header.Get("Retry-After")}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rawURL, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s did not return valid JSON", rawURL)
	}
	return data, nil
}

func readJSONFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s is not valid JSON", path)
	}
	return data, nil
}

func (c *Client) fetch(ctx context.Context, location string) ([]byte, error) {
	if isURL(location) {
		return c.FetchJSON(ctx, location)
	}
	return readJSONFile(location)
}

// FetchWithFallback fetches name from primary and retries once against
// fallback. Without a fallback the cached copy of the last successful
// primary fetch is used. origin reports where the payload came from.
func (c *Client) FetchWithFallback(ctx context.Context, name, primary, fallback string) (data []byte, origin string, err error) {
	var primaryErr error
	if primary != "" {
		data, primaryErr = c.fetch(ctx, primary)
		if primaryErr == nil {
			if err := c.writeCache(name, data); err != nil {
				log.Warn().Err(err).Str("dataset", name).Msg("Failed to cache dataset")
			}
			return data, primary, nil
		}
		log.Warn().Err(primaryErr).Str("dataset", name).Msg("Primary source failed, trying fallback")
	} else {
		primaryErr = errors.New("no primary source configured")
	}

	if fallback == "" {
		fallback = c.cachePath(name)
	}
	if fallback == "" {
		return nil, "", fmt.Errorf("%w: %s: %v (no fallback)", ErrBothSourcesFailed, name, primaryErr)
	}

	data, err = c.fetch(ctx, fallback)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: primary: %v; fallback: %v", ErrBothSourcesFailed, name, primaryErr, err)
	}
	log.Info().Str("dataset", name).Str("origin", fallback).Msg("Loaded dataset from fallback")
	return data, fallback, nil
}

func (c *Client) cachePath(name string) string {
	if c.cacheDir == "" {
		return ""
	}
	return filepath.Join(c.cacheDir, name+".json")
}

// writeCache stores data through a temp file and an atomic rename.
func (c *Client) writeCache(name string, data []byte) error {
	path := c.cachePath(name)
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}

	log.Debug().Str("dataset", name).Str("path", path).Int("bytes", len(data)).Msg("Dataset cached")
	return nil
}
