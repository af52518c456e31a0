// Package catalog is the client for the Google Books volumes API, the
// external book catalog ReadLog searches and displays.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrNotFound is returned when the catalog has no volume with the
// requested id.
var ErrNotFound = errors.New("volume not found")

// DefaultGenres are the subjects shown on the popular-books page when no
// filter is selected.
var DefaultGenres = []string{"fiction", "nonfiction", "mystery", "science", "fantasy"}

// Client fetches volumes from the Google Books API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

// NewClient creates a Google Books client. baseURL is usually
// config.DefaultCatalogBaseURL; tests point it at a local server.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
	}
}

// Volume fetches a single volume by its catalog id.
func (c *Client) Volume(ctx context.Context, id string) (*Volume, error) {
	if id == "" {
		return nil, fmt.Errorf("volume id is required")
	}

	var vol Volume
	endpoint := fmt.Sprintf("%s/volumes/%s?key=%s", c.baseURL, url.PathEscape(id), url.QueryEscape(c.apiKey))
	if err := c.getJSON(ctx, endpoint, &vol); err != nil {
		return nil, err
	}
	return &vol, nil
}

// Search looks up volumes whose title matches the query.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}

	var result SearchResult
	endpoint := fmt.Sprintf("%s/volumes?q=%s&key=%s",
		c.baseURL, url.QueryEscape("intitle:"+query), url.QueryEscape(c.apiKey))
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Popular lists well-known volumes for a genre, or across the default
// genre set when genre is empty.
func (c *Client) Popular(ctx context.Context, genre string) (*SearchResult, error) {
	subjects := genre
	if subjects == "" {
		quoted := make([]string, len(DefaultGenres))
		for i, g := range DefaultGenres {
			quoted[i] = "'" + g + "'"
		}
		subjects = strings.Join(quoted, ",")
	}

	var result SearchResult
	endpoint := fmt.Sprintf("%s/volumes?q=%s&orderBy=relevance&key=%s",
		c.baseURL, url.QueryEscape("subject:"+subjects), url.QueryEscape(c.apiKey))
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "ReadLog/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch catalog data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
