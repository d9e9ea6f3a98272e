// Package clock turns wall clock time and solar events into readings for
// a set of clock faces: hand rotations, display text and highlighted arcs.
//
// Rotations are in degrees clockwise from the top of the dial. Drawing the
// faces is left to the caller.
package clock

import (
	"fmt"
	"math"
	"time"

	"github.com/subtlepseudonym/sunclock/solar"
)

// Hand is a single clock hand
type Hand struct {
	Name    string  `json:"name"`
	Degrees float64 `json:"degrees"`
}

// Arc is a sector of the dial, such as the period of a prayer
type Arc struct {
	Name   string  `json:"name"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Active bool    `json:"active"`
}

// Reading is the state of a clock face at an instant
type Reading struct {
	Face  string   `json:"face"`
	Hands []Hand   `json:"hands"`
	Text  []string `json:"text"`
	Arcs  []Arc    `json:"arcs,omitempty"`
}

// Hand returns the rotation of the named hand
func (r Reading) Hand(name string) (float64, bool) {
	for _, h := range r.Hands {
		if h.Name == name {
			return h.Degrees, true
		}
	}
	return 0, false
}

// Observer is the location used by the faces that follow the sun
type Observer struct {
	Coordinate solar.Coordinate
	Location   *time.Location
	Method     Method
}

func (o Observer) in(t time.Time) time.Time {
	if o.Location == nil {
		return t
	}
	return t.In(o.Location)
}

// Faces lists the names accepted by Read
var Faces = []string{
	"standard",
	"24hour",
	"jewish",
	"islamic",
	"metric",
	"hexadecimal",
	"chinese",
}

// Read returns the reading of the named face at now
func Read(face string, obs Observer, now time.Time) (Reading, error) {
	now = obs.in(now)

	switch face {
	case "standard":
		return Standard(now), nil
	case "24hour":
		return TwentyFourHour(now), nil
	case "jewish":
		return Jewish(obs, now), nil
	case "islamic":
		return Islamic(obs, now), nil
	case "metric":
		return Metric(now), nil
	case "hexadecimal":
		return Hexadecimal(now), nil
	case "chinese":
		return Chinese(now), nil
	default:
		return Reading{}, fmt.Errorf("unknown clock face %q", face)
	}
}

// dayFraction returns the wall clock time of t as a fraction of the day
func dayFraction(t time.Time) float64 {
	ms := t.Nanosecond()/int(time.Millisecond) + 1000*(t.Second()+60*t.Minute()+3600*t.Hour())
	return float64(ms) / 86400000
}

// decimalHours returns the wall clock time of t in hours
func decimalHours(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// formatHours formats decimal hours as 24 hour H:MM, rounding to the
// nearest minute
func formatHours(hours float64) string {
	minutes := int(math.Round(hours * 60))
	minutes = ((minutes % 1440) + 1440) % 1440
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
