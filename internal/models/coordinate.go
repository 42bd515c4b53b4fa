package models

import (
	"encoding/json"
	"fmt"
)

// Coordinate is a geographic position. It serializes as a GeoJSON-style
// [longitude, latitude] pair, which is how river geometry is stored.
type Coordinate struct {
	Lon float64
	Lat float64
}

// MarshalJSON encodes the coordinate as a two-element [lon, lat] array.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lon, c.Lat})
}

// UnmarshalJSON decodes a two-element [lon, lat] array.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinate must be a [lon, lat] array: %w", err)
	}
	c.Lon = pair[0]
	c.Lat = pair[1]
	return nil
}

// EncodePolyline serializes an ordered vertex sequence for storage.
func EncodePolyline(points []Coordinate) (string, error) {
	data, err := json.Marshal(points)
	if err != nil {
		return "", fmt.Errorf("failed to encode polyline: %w", err)
	}
	return string(data), nil
}

// DecodePolyline parses a stored vertex sequence.
func DecodePolyline(raw string) ([]Coordinate, error) {
	var points []Coordinate
	if err := json.Unmarshal([]byte(raw), &points); err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}
	return points, nil
}
