package gauge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleIV = `{
  "value": {
    "timeSeries": [
      {
        "variable": {"variableCode": [{"value": "00065"}]},
        "values": [{"value": [
          {"value": "2.81", "dateTime": "2026-08-28T10:15:00.000-05:00"},
          {"value": "2.84", "dateTime": "2026-08-28T10:30:00.000-05:00"}
        ]}]
      },
      {
        "variable": {"variableCode": [{"value": "00060"}]},
        "values": [{"value": [
          {"value": "412", "dateTime": "2026-08-28T10:30:00.000-05:00"}
        ]}]
      }
    ]
  }
}`

func TestLatestParsesReading(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sites"); got != "05355200" {
			t.Errorf("sites = %q; want 05355200", got)
		}
		w.Write([]byte(sampleIV))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute)
	reading, err := c.Latest(context.Background(), "05355200")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}

	if reading.GaugeHeightFt == nil || *reading.GaugeHeightFt != 2.84 {
		t.Errorf("height = %v; want the most recent value 2.84", reading.GaugeHeightFt)
	}
	if reading.DischargeCFS == nil || *reading.DischargeCFS != 412 {
		t.Errorf("discharge = %v; want 412", reading.DischargeCFS)
	}
	if reading.ObservedAt.IsZero() {
		t.Error("observed time not parsed")
	}
}

func TestLatestCaches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(sampleIV))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute)
	for i := 0; i < 3; i++ {
		if _, err := c.Latest(context.Background(), "05355200"); err != nil {
			t.Fatalf("Latest #%d: %v", i, err)
		}
	}
	if hits != 1 {
		t.Errorf("upstream hits = %d; want 1 within the TTL window", hits)
	}
}

func TestLatestUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute)
	if _, err := c.Latest(context.Background(), "05355200"); err == nil {
		t.Error("Latest did not surface the upstream failure")
	}
}

func TestLatestNoUsableValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value": {"timeSeries": [
			{"variable": {"variableCode": [{"value": "00065"}]},
			 "values": [{"value": [{"value": "-999999", "dateTime": "2026-08-28T10:30:00.000-05:00"}]}]}
		]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute)
	if _, err := c.Latest(context.Background(), "05355200"); err == nil {
		t.Error("Latest accepted an equipment-failure sentinel value")
	}
}
