package solar

import (
	"math"
	"time"
)

const (
	// SunriseZenith is the zenith angle of the sun's center at sunrise and
	// sunset. It accounts for atmospheric refraction and the radius of the
	// solar disk.
	SunriseZenith = 90.833

	// MaxLatitude is the largest absolute latitude used in calculations.
	// Larger values are clamped to it.
	MaxLatitude = 89.8
)

// Coordinate is an observer's location in decimal degrees. Latitude is
// positive north and longitude is negative west.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// internal returns the clamped latitude and the longitude in degrees west,
// which is the convention the NOAA formulas use
func (c Coordinate) internal() (latitude, longitudeWest float64) {
	latitude = c.Latitude
	if latitude > MaxLatitude {
		latitude = MaxLatitude
	} else if latitude < -MaxLatitude {
		latitude = -MaxLatitude
	}

	return latitude, -c.Longitude
}

// Zone is a UTC offset in hours, negative west, and a daylight saving time
// flag. DST is 1 when an hour of daylight saving time is in effect and 0
// otherwise.
type Zone struct {
	Offset float64 `json:"offset"`
	DST    int     `json:"dst"`
}

// ZoneAt returns the standard offset and daylight saving flag in effect
// at t in t's location
func ZoneAt(t time.Time) Zone {
	_, seconds := t.Zone()

	var dst int
	if t.IsDST() {
		dst = 1
	}

	return Zone{
		Offset: float64(seconds)/3600 - float64(dst),
		DST:    dst,
	}
}

func (z Zone) minutes() float64 {
	return 60*z.Offset + 60*float64(z.DST)
}

// localFraction shifts minutes from 0h UTC into local time and converts
// the result into a fraction of a day
func (z Zone) localFraction(utcMinutes float64) float64 {
	return (utcMinutes + z.minutes()) / MinutesPerDay
}

// hourAngle calculates the hour angle in degrees at which the sun's center
// reaches the given zenith angle. The result is NaN when the sun never
// reaches that angle on the day.
func hourAngle(latitude, declination, zenith float64) float64 {
	lat := degToRad(latitude)
	dec := degToRad(declination)

	arg := math.Cos(degToRad(zenith))/(math.Cos(lat)*math.Cos(dec)) - math.Tan(lat)*math.Tan(dec)
	return radToDeg(math.Acos(arg))
}

// eventMinutes is a single pass of the event calculation, returning the
// event time in minutes from 0h UTC
func eventMinutes(g Geometry, latitude, longitudeWest, zenith float64, afterNoon bool) float64 {
	ha := hourAngle(latitude, g.Declination, zenith)
	if afterNoon {
		ha = -ha
	}

	return 720 + 4*(longitudeWest-ha) - g.EquationOfTime
}

// eventUTC calculates the time in minutes from 0h UTC at which the sun
// crosses the zenith angle before or after solar noon.
//
// The first pass uses the solar geometry at midnight to approximate the
// event. The second pass recalculates it at the approximated moment,
// correcting for the change in declination over the day.
func eventUTC(julianDay, latitude, longitudeWest, zenith float64, afterNoon bool) float64 {
	t := JulianCentury(julianDay)
	approx := eventMinutes(GeometryAt(t), latitude, longitudeWest, zenith, afterNoon)

	refined := JulianCentury(JulianDayFromCentury(t) + approx/MinutesPerDay)
	return eventMinutes(GeometryAt(refined), latitude, longitudeWest, zenith, afterNoon)
}

func timeOfAngle(c Coordinate, d Date, z Zone, zenith float64, afterNoon bool) float64 {
	latitude, longitudeWest := c.internal()
	utc := eventUTC(JulianDay(d), latitude, longitudeWest, zenith, afterNoon)
	return z.localFraction(utc)
}

// Sunrise returns the local time of sunrise as a fraction of the day.
//
// Results near midnight may fall slightly outside [0, 1); see Wrap. The
// result is NaN when the sun does not rise on the day.
func Sunrise(c Coordinate, d Date, z Zone) float64 {
	return timeOfAngle(c, d, z, SunriseZenith, false)
}

// Sunset returns the local time of sunset as a fraction of the day
func Sunset(c Coordinate, d Date, z Zone) float64 {
	return timeOfAngle(c, d, z, SunriseZenith, true)
}

// TimeOfAngleBeforeNoon returns the local time, as a fraction of the day,
// at which the sun's zenith angle falls to the given angle in the morning.
// Astronomical dawn, for instance, is at a zenith angle of 108 degrees.
func TimeOfAngleBeforeNoon(c Coordinate, d Date, z Zone, zenith float64) float64 {
	return timeOfAngle(c, d, z, zenith, false)
}

// TimeOfAngleAfterNoon returns the local time, as a fraction of the day,
// at which the sun's zenith angle rises to the given angle in the
// afternoon or evening.
func TimeOfAngleAfterNoon(c Coordinate, d Date, z Zone, zenith float64) float64 {
	return timeOfAngle(c, d, z, zenith, true)
}

// SolarNoon returns the local time of solar noon as a fraction of the day.
// It does not depend on latitude.
func SolarNoon(c Coordinate, d Date, z Zone) float64 {
	_, longitudeWest := c.internal()

	t := JulianCentury(JulianDay(d) + 0.5 + longitudeWest/360)
	utc := 720 + 4*longitudeWest - EquationOfTime(t)

	return z.localFraction(utc)
}

// HasEvent reports whether f, as returned by one of the event functions,
// is a time. Near the poles the sun may not cross the requested angle on a
// given day, in which case the result is NaN.
func HasEvent(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Wrap folds a fraction of a day into [0, 1)
func Wrap(f float64) float64 {
	return f - math.Floor(f)
}

// Duration converts a fraction of a day into a duration
func Duration(f float64) time.Duration {
	return time.Duration(f * float64(24*time.Hour))
}

// At returns the wall clock time f days after midnight on day's date in
// day's location. Fractions outside [0, 1) land on the neighbouring days.
func At(day time.Time, f float64) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, int(Duration(f)), day.Location())
}
