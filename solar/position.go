package solar

import (
	"math"
	"time"
)

const (
	// Twilight is reported in place of azimuth and elevation when the sun
	// is below astronomical twilight.
	Twilight = -999999

	// twilightZenith is the refraction corrected zenith angle at and past
	// which no position is reported
	twilightZenith = 108

	// azimuthEpsilon is the smallest value of cos(latitude)*sin(zenith)
	// for which the azimuth formula is used; smaller values are a pole or
	// the sun directly overhead.
	azimuthEpsilon = 0.001
)

// TimeOfDay is a local wall clock time, including any daylight saving time
type TimeOfDay struct {
	Hour   int
	Minute int
	Second float64
}

// NewTimeOfDay returns the wall clock time of t
func NewTimeOfDay(t time.Time) TimeOfDay {
	return TimeOfDay{
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: float64(t.Second()) + float64(t.Nanosecond())/1e9,
	}
}

// Position is the apparent position of the sun in degrees. Azimuth is
// measured clockwise from north. When the sun is below astronomical
// twilight all fields are Twilight.
type Position struct {
	Azimuth   float64 `json:"azimuth"`
	Elevation float64 `json:"elevation"`
	CosZenith float64 `json:"cos_zenith"`
}

// Visible reports whether p is an actual position rather than the
// twilight sentinel
func (p Position) Visible() bool {
	return p.Elevation != Twilight
}

// PositionAt calculates the position of the sun at the given local time
func PositionAt(c Coordinate, d Date, tod TimeOfDay, z Zone) Position {
	latitude, longitudeWest := c.internal()

	// zone is hours west of UTC; hh is standard time
	zone := -z.Offset
	hh := float64(tod.Hour) - float64(z.DST)
	mm := float64(tod.Minute)
	ss := tod.Second

	utcHours := hh + mm/60 + ss/3600 + zone
	g := GeometryAt(JulianCentury(JulianDay(d) + utcHours/24))

	trueSolarTime := math.Mod(hh*60+mm+ss/60+g.EquationOfTime-4*longitudeWest+60*zone, MinutesPerDay)
	if trueSolarTime < 0 {
		trueSolarTime += MinutesPerDay
	}
	ha := trueSolarTime/4 - 180

	lat := degToRad(latitude)
	dec := degToRad(g.Declination)

	cosZenith := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(degToRad(ha))
	zenith := radToDeg(math.Acos(clamp(cosZenith)))

	azimuth := azimuthOf(latitude, g.Declination, zenith, ha)
	solarZenith := zenith - refraction(90-zenith)

	if solarZenith >= twilightZenith {
		return Position{
			Azimuth:   Twilight,
			Elevation: Twilight,
			CosZenith: Twilight,
		}
	}

	p := Position{
		Azimuth:   azimuth,
		Elevation: 90 - solarZenith,
	}
	if solarZenith < 90 {
		p.CosZenith = math.Cos(degToRad(solarZenith))
	}

	return p
}

// Azimuth returns the sun's azimuth in degrees, or Twilight
func Azimuth(c Coordinate, d Date, tod TimeOfDay, z Zone) float64 {
	return PositionAt(c, d, tod, z).Azimuth
}

// Elevation returns the sun's refraction corrected elevation in degrees,
// or Twilight
func Elevation(c Coordinate, d Date, tod TimeOfDay, z Zone) float64 {
	return PositionAt(c, d, tod, z).Elevation
}

// azimuthOf returns the azimuth in [0, 360) for the sun at the given
// zenith and hour angle
func azimuthOf(latitude, declination, zenith, hourAngle float64) float64 {
	lat := degToRad(latitude)
	zen := degToRad(zenith)

	denom := math.Cos(lat) * math.Sin(zen)
	if math.Abs(denom) <= azimuthEpsilon {
		if latitude > 0 {
			return 180
		}
		return 0
	}

	cosAz := clamp((math.Sin(lat)*math.Cos(zen) - math.Sin(degToRad(declination))) / denom)
	azimuth := 180 - radToDeg(math.Acos(cosAz))
	if hourAngle > 0 {
		azimuth = -azimuth
	}

	return normalize(azimuth)
}

// refraction approximates atmospheric refraction in degrees for the sun at
// the given geometric elevation
func refraction(elevation float64) float64 {
	if elevation > 85 {
		return 0
	}

	var arcseconds float64
	te := math.Tan(degToRad(elevation))
	switch {
	case elevation > 5:
		arcseconds = 58.1/te - 0.07/(te*te*te) + 0.000086/(te*te*te*te*te)
	case elevation > -0.575:
		arcseconds = 1735 + elevation*(-518.2+elevation*(103.4+elevation*(-12.79+elevation*0.711)))
	default:
		arcseconds = -20.774 / te
	}

	return arcseconds / 3600
}

func clamp(x float64) float64 {
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}
	return x
}
