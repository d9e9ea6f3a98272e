// Package solar calculates sunrise, solar noon, sunset and the position of
// the sun for an observer on a given calendar day.
//
// The calculations follow the NOAA sunrise/sunset and solar position
// calculators, which are based on Jean Meeus' Astronomical Algorithms. Results
// are within about a minute for latitudes between +/- 72 degrees.
package solar

import (
	"math"
	"time"
)

const (
	J2000          = 2451545.0 // Julian day of the J2000.0 epoch
	DaysPerCentury = 36525.0
	MinutesPerDay  = 1440
)

// Date is a calendar date in the proleptic Gregorian calendar.
//
// Day may be fractional or fall outside of the month (0 or 32, say) when
// probing adjacent days; JulianDay is linear in Day so the result is the
// expected neighbouring day.
type Date struct {
	Year  int
	Month time.Month
	Day   float64
}

// NewDate returns the calendar date of t in t's location
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: float64(d)}
}

// AddDays returns the date n days after d
func (d Date) AddDays(n int) Date {
	d.Day += float64(n)
	return d
}

// JulianDay returns the Julian day at the start (0h UT) of the given date.
//
// January and February are counted as months 13 and 14 of the previous year.
func JulianDay(d Date) float64 {
	year, month := float64(d.Year), float64(d.Month)
	if month <= 2 {
		year--
		month += 12
	}

	a := math.Floor(year / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(year+4716)) + math.Floor(30.6001*(month+1)) + d.Day + b - 1524.5
}

// JulianCentury converts a Julian day into centuries since J2000.0
func JulianCentury(julianDay float64) float64 {
	return (julianDay - J2000) / DaysPerCentury
}

// JulianDayFromCentury converts centuries since J2000.0 back into a Julian day
func JulianDayFromCentury(t float64) float64 {
	return t*DaysPerCentury + J2000
}
