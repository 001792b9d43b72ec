package utils

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Coordinate is one vertex of a market boundary polygon.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geofence is the polygonal boundary of a market, stored as JSON on the
// market row. Collector scans outside the boundary are flagged, not
// rejected.
type Geofence struct {
	Coordinates []Coordinate `json:"coordinates"`
	Name        string       `json:"name,omitempty"`
}

// ParseGeofence decodes and validates a geofence JSON document. An empty
// document is allowed (a market need not define a boundary) and returns nil.
func ParseGeofence(raw []byte) (*Geofence, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var gf Geofence
	if err := json.Unmarshal(raw, &gf); err != nil {
		return nil, fmt.Errorf("invalid geofence JSON: %w", err)
	}
	if len(gf.Coordinates) == 0 {
		return nil, nil
	}
	if len(gf.Coordinates) < 3 {
		return nil, errors.New("geofence needs at least 3 coordinates to form a polygon")
	}
	for i, c := range gf.Coordinates {
		if c.Lat < -90 || c.Lat > 90 {
			return nil, fmt.Errorf("coordinate %d: latitude %f out of range", i, c.Lat)
		}
		if c.Lng < -180 || c.Lng > 180 {
			return nil, fmt.Errorf("coordinate %d: longitude %f out of range", i, c.Lng)
		}
	}
	return &gf, nil
}

// polygon converts the fence to an orb ring, closing it if the input did not
// repeat the first vertex.
func (gf *Geofence) polygon() orb.Polygon {
	ring := make(orb.Ring, 0, len(gf.Coordinates)+1)
	for _, c := range gf.Coordinates {
		ring = append(ring, orb.Point{c.Lng, c.Lat})
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}

// Contains reports whether the point lies inside the fence.
func (gf *Geofence) Contains(lat, lng float64) bool {
	return planar.PolygonContains(gf.polygon(), orb.Point{lng, lat})
}
