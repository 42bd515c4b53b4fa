// Package gauge fetches live river gauge readings from the USGS
// instantaneous values service.
package gauge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/driftwell/riverplan/internal/models"
)

// USGS parameter codes for the two measurements we use.
const (
	paramGaugeHeight = "00065" // feet
	paramDischarge   = "00060" // cubic feet per second
)

// DefaultBaseURL is the public USGS instantaneous values endpoint.
const DefaultBaseURL = "https://waterservices.usgs.gov/nwis/iv/"

// Client fetches the latest reading per station, with a TTL cache so
// plan requests do not hammer the upstream.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *expirable.LRU[string, *models.ConditionReading]
}

// NewClient creates a gauge client. Readings are cached for ttl.
func NewClient(baseURL string, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   expirable.NewLRU[string, *models.ConditionReading](256, nil, ttl),
	}
}

// Latest returns the most recent reading for a station, served from
// cache inside the TTL window.
func (c *Client) Latest(ctx context.Context, stationID string) (*models.ConditionReading, error) {
	if stationID == "" {
		return nil, fmt.Errorf("station id is empty")
	}

	if reading, ok := c.cache.Get(stationID); ok {
		return reading, nil
	}

	reading, err := c.fetch(ctx, stationID)
	if err != nil {
		return nil, err
	}
	c.cache.Add(stationID, reading)
	return reading, nil
}

// ivResponse mirrors the slice of the USGS waterml JSON we consume.
type ivResponse struct {
	Value struct {
		TimeSeries []struct {
			Variable struct {
				VariableCode []struct {
					Value string `json:"value"`
				} `json:"variableCode"`
			} `json:"variable"`
			Values []struct {
				Value []struct {
					Value    string `json:"value"`
					DateTime string `json:"dateTime"`
				} `json:"value"`
			} `json:"values"`
		} `json:"timeSeries"`
	} `json:"value"`
}

func (c *Client) fetch(ctx context.Context, stationID string) (*models.ConditionReading, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("sites", stationID)
	q.Set("parameterCd", paramGaugeHeight+","+paramDischarge)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build gauge request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gauge service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gauge service returned status %d", resp.StatusCode)
	}

	var body ivResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode gauge response: %w", err)
	}

	reading := &models.ConditionReading{StationID: stationID}
	for _, series := range body.Value.TimeSeries {
		if len(series.Variable.VariableCode) == 0 || len(series.Values) == 0 || len(series.Values[0].Value) == 0 {
			continue
		}
		latest := series.Values[0].Value[len(series.Values[0].Value)-1]

		v, err := strconv.ParseFloat(latest.Value, 64)
		if err != nil {
			continue
		}
		// USGS reports -999999 for equipment failures.
		if v <= -999990 {
			continue
		}

		if ts, err := time.Parse("2006-01-02T15:04:05.000-07:00", latest.DateTime); err == nil {
			if ts.After(reading.ObservedAt) {
				reading.ObservedAt = ts
			}
		}

		switch series.Variable.VariableCode[0].Value {
		case paramGaugeHeight:
			height := v
			reading.GaugeHeightFt = &height
		case paramDischarge:
			discharge := v
			reading.DischargeCFS = &discharge
		}
	}

	if reading.GaugeHeightFt == nil && reading.DischargeCFS == nil {
		return nil, fmt.Errorf("station %s reported no usable values", stationID)
	}
	return reading, nil
}
