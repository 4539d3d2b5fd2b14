// Package firms talks to the NASA FIRMS area API: one GET per assessment
// returning comma-delimited hotspot detections, and a tolerant parser for
// that text.
package firms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/emberline/wildfire-watch/internal/models"
)

// NetworkError wraps any transport-level or non-2xx failure from the feed.
// It is the only error the client returns; classification is never
// attempted after one.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("firms: fetch failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL string
	apiKey  string
	product string
	http    *http.Client
}

func NewClient(baseURL, apiKey, product string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		product: product,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchArea requests hotspot detections within radiusDegrees of origin and
// returns the raw CSV body. No retry; a failed fetch surfaces immediately.
func (c *Client) FetchArea(ctx context.Context, origin models.Coordinate, radiusDegrees int) (string, error) {
	url := fmt.Sprintf("%s/%s/%s/world/%d/%f,%f",
		c.baseURL, c.apiKey, c.product, radiusDegrees, origin.Latitude, origin.Longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &NetworkError{Err: fmt.Errorf("error creating request: %w", err)}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &NetworkError{Err: fmt.Errorf("error while doing request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &NetworkError{Err: fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Err: fmt.Errorf("error reading resp.Body: %w", err)}
	}

	return string(body), nil
}
