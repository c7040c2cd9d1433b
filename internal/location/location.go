// Package location resolves the customer's current coordinates into a map link.
package location

import (
	"context"
	"fmt"
	"strconv"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Locator is the geolocation collaborator: one request, coordinates or an error.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (Coordinates, error)

func (f LocatorFunc) Locate(ctx context.Context) (Coordinates, error) { return f(ctx) }

// MapsLink renders https://www.google.com/maps?q=<lat>,<lon>.
func MapsLink(c Coordinates) string {
	return "https://www.google.com/maps?q=" +
		strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// Valid reports whether the point lies inside the coordinate ranges.
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Static always answers with the same point, typically the shop's own.
type Static struct {
	Point Coordinates
}

// NewStatic parses lat/lon strings as configured in the environment.
func NewStatic(lat, lon string) (*Static, error) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude: %w", err)
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude: %w", err)
	}
	p := Coordinates{Latitude: la, Longitude: lo}
	if !p.Valid() {
		return nil, fmt.Errorf("coordinates out of range: %v,%v", la, lo)
	}
	return &Static{Point: p}, nil
}

func (s *Static) Locate(ctx context.Context) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}
	return s.Point, nil
}
