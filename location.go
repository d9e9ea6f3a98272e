package sunclock

import (
	"fmt"
	"time"

	"github.com/subtlepseudonym/sunclock/clock"
	"github.com/subtlepseudonym/sunclock/solar"
)

// Location is an observer on the ground and the time zone their clocks
// keep. An empty TimeZone is time.Local.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TimeZone  string  `json:"timezone,omitempty"`
}

func (l Location) Coordinate() solar.Coordinate {
	return solar.Coordinate{
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}
}

// TimeLocation loads the location's time zone
func (l Location) TimeLocation() (*time.Location, error) {
	if l.TimeZone == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(l.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone: %w", err)
	}

	return loc, nil
}

// Observer returns the clock observer at the location
func (l Location) Observer(method clock.Method) (clock.Observer, error) {
	loc, err := l.TimeLocation()
	if err != nil {
		return clock.Observer{}, err
	}

	return clock.Observer{
		Coordinate: l.Coordinate(),
		Location:   loc,
		Method:     method,
	}, nil
}
