// Package routing wraps an OSRM-compatible road-routing service for
// drive-back estimates between take-out and put-in.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/driftwell/riverplan/internal/models"
)

// DefaultBaseURL is the public OSRM demo endpoint.
const DefaultBaseURL = "https://router.project-osrm.org"

const metersPerMile = 1609.344

// Client calls OSRM's driving profile. Responses are cached in two
// separate LRUs: a long-lived one for ordinary requests and a
// short-lived one used under high/dangerous conditions, when roads may
// be closing. A short-freshness request never reads the long cache.
type Client struct {
	baseURL    string
	http       *http.Client
	longCache  *expirable.LRU[string, *models.DriveEstimate]
	shortCache *expirable.LRU[string, *models.DriveEstimate]
}

// NewClient creates a routing client with the two cache windows.
func NewClient(baseURL string, longTTL, shortTTL time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		http:       &http.Client{Timeout: 15 * time.Second},
		longCache:  expirable.NewLRU[string, *models.DriveEstimate](512, nil, longTTL),
		shortCache: expirable.NewLRU[string, *models.DriveEstimate](512, nil, shortTTL),
	}
}

// Route returns the drive leg between two coordinates under the given
// cache policy.
func (c *Client) Route(ctx context.Context, from, to models.Coordinate, freshness models.CacheFreshness) (*models.DriveEstimate, error) {
	key := routeKey(from, to)

	cache := c.longCache
	if freshness == models.FreshnessShort {
		cache = c.shortCache
	}
	if est, ok := cache.Get(key); ok {
		return est, nil
	}

	est, err := c.fetch(ctx, from, to)
	if err != nil {
		return nil, err
	}

	// A fresh upstream answer is valid under either policy.
	c.longCache.Add(key, est)
	c.shortCache.Add(key, est)
	return est, nil
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Duration float64 `json:"duration"` // seconds
		Distance float64 `json:"distance"` // meters
		Geometry string  `json:"geometry"`
	} `json:"routes"`
}

func (c *Client) fetch(ctx context.Context, from, to models.Coordinate) (*models.DriveEstimate, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full",
		c.baseURL, from.Lon, from.Lat, to.Lon, to.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build routing request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routing service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing service returned status %d", resp.StatusCode)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode routing response: %w", err)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return nil, fmt.Errorf("routing service found no route (code %q)", body.Code)
	}

	r := body.Routes[0]
	return &models.DriveEstimate{
		Minutes:  int(math.Round(r.Duration / 60)),
		Miles:    math.Round(r.Distance/metersPerMile*10) / 10,
		Geometry: r.Geometry,
	}, nil
}

func routeKey(from, to models.Coordinate) string {
	return fmt.Sprintf("%.5f,%.5f|%.5f,%.5f", from.Lon, from.Lat, to.Lon, to.Lat)
}
