package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/driftwell/riverplan/internal/models"
)

const sampleRoute = `{
  "code": "Ok",
  "routes": [{"duration": 1320, "distance": 20117, "geometry": "encoded"}]
}`

var (
	from = models.Coordinate{Lon: -92.7, Lat: 44.6}
	to   = models.Coordinate{Lon: -92.9, Lat: 44.5}
)

func TestRouteParsesEstimate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRoute))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Hour, time.Minute)
	est, err := c.Route(context.Background(), from, to, models.FreshnessLong)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}

	if est.Minutes != 22 {
		t.Errorf("minutes = %d; want 22", est.Minutes)
	}
	if est.Miles != 12.5 {
		t.Errorf("miles = %f; want 12.5", est.Miles)
	}
	if est.Geometry != "encoded" {
		t.Errorf("geometry = %q", est.Geometry)
	}
}

func TestRouteCachesByPolicy(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(sampleRoute))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Hour, time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := c.Route(context.Background(), from, to, models.FreshnessLong); err != nil {
			t.Fatalf("Route #%d: %v", i, err)
		}
	}
	if hits != 1 {
		t.Errorf("upstream hits = %d; want 1 for repeated long-freshness requests", hits)
	}

	// The short cache was filled by the same fetch, so a short request
	// still needs no upstream call inside its own window.
	if _, err := c.Route(context.Background(), from, to, models.FreshnessShort); err != nil {
		t.Fatalf("Route short: %v", err)
	}
	if hits != 1 {
		t.Errorf("upstream hits = %d after short request; want 1", hits)
	}
}

func TestRouteShortWindowExpires(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(sampleRoute))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Hour, 50*time.Millisecond)

	if _, err := c.Route(context.Background(), from, to, models.FreshnessShort); err != nil {
		t.Fatalf("Route: %v", err)
	}
	time.Sleep(120 * time.Millisecond)
	if _, err := c.Route(context.Background(), from, to, models.FreshnessShort); err != nil {
		t.Fatalf("Route after expiry: %v", err)
	}
	if hits != 2 {
		t.Errorf("upstream hits = %d; want 2, the short window must not be memoized past its TTL", hits)
	}
}

func TestRouteNoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Hour, time.Minute)
	if _, err := c.Route(context.Background(), from, to, models.FreshnessLong); err == nil {
		t.Error("Route accepted a NoRoute response")
	}
}

func TestRouteUpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Hour, time.Minute)
	if _, err := c.Route(context.Background(), from, to, models.FreshnessLong); err == nil {
		t.Error("Route did not surface the upstream failure")
	}
}
