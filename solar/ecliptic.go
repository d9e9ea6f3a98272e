package solar

import (
	"math"

	"github.com/soniakeys/unit"
)

func degToRad(deg float64) float64 {
	return unit.AngleFromDeg(deg).Rad()
}

func radToDeg(rad float64) float64 {
	return unit.Angle(rad).Deg()
}

// normalize wraps a cyclical angle in degrees into [0, 360)
func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// omega is the longitude of the moon's ascending node, used for the
// nutation and aberration corrections.
func omega(t float64) float64 {
	return 125.04 - 1934.136*t
}

// MeanLongitude calculates the geometric mean longitude of the sun in
// degrees for t Julian centuries since J2000.0
func MeanLongitude(t float64) float64 {
	return normalize(280.46646 + t*(36000.76983+0.0003032*t))
}

// MeanAnomaly calculates the geometric mean anomaly of the sun in degrees.
// The value is not normalized; only its sine is ever taken.
func MeanAnomaly(t float64) float64 {
	return 357.52911 + t*(35999.05029-0.0001537*t)
}

// Eccentricity calculates the unitless eccentricity of earth's orbit
func Eccentricity(t float64) float64 {
	return 0.016708634 - t*(0.000042037+0.0000001267*t)
}

// EquationOfCenter calculates the angular difference in degrees between
// the position of the sun on its elliptical orbit and the mean sun on a
// circular one.
//
// https://en.wikipedia.org/wiki/Equation_of_the_center
func EquationOfCenter(t float64) float64 {
	m := degToRad(MeanAnomaly(t))

	firstOrder := math.Sin(m) * (1.914602 - t*(0.004817+0.000014*t))
	secondOrder := math.Sin(2*m) * (0.019993 - 0.000101*t)
	thirdOrder := math.Sin(3*m) * 0.000289

	return firstOrder + secondOrder + thirdOrder
}

// TrueLongitude calculates the sun's true longitude in degrees
func TrueLongitude(t float64) float64 {
	return MeanLongitude(t) + EquationOfCenter(t)
}

// TrueAnomaly calculates the sun's true anomaly in degrees
func TrueAnomaly(t float64) float64 {
	return MeanAnomaly(t) + EquationOfCenter(t)
}

// RadiusVector calculates the distance from earth to the sun in AU
func RadiusVector(t float64) float64 {
	v := degToRad(TrueAnomaly(t))
	e := Eccentricity(t)
	return (1.000001018 * (1 - e*e)) / (1 + e*math.Cos(v))
}

// ApparentLongitude calculates the sun's apparent longitude in degrees,
// corrected for nutation and aberration
func ApparentLongitude(t float64) float64 {
	return TrueLongitude(t) - 0.00569 - 0.00478*math.Sin(degToRad(omega(t)))
}

// MeanObliquity calculates the mean obliquity of the ecliptic in degrees
func MeanObliquity(t float64) float64 {
	seconds := 21.448 - t*(46.815+t*(0.00059-t*0.001813))
	return 23 + (26+seconds/60)/60
}

// Obliquity calculates the obliquity of the ecliptic in degrees, corrected
// for nutation
func Obliquity(t float64) float64 {
	return MeanObliquity(t) + 0.00256*math.Cos(degToRad(omega(t)))
}

// RightAscension calculates the sun's right ascension in degrees, in the
// range [0, 360)
func RightAscension(t float64) float64 {
	e := degToRad(Obliquity(t))
	lambda := degToRad(ApparentLongitude(t))
	return normalize(radToDeg(math.Atan2(math.Cos(e)*math.Sin(lambda), math.Cos(lambda))))
}

// Declination calculates the sun's declination in degrees
func Declination(t float64) float64 {
	e := degToRad(Obliquity(t))
	lambda := degToRad(ApparentLongitude(t))
	return radToDeg(math.Asin(math.Sin(e) * math.Sin(lambda)))
}

// EquationOfTime calculates the difference between true solar time and
// mean solar time, in minutes of time
func EquationOfTime(t float64) float64 {
	epsilon := degToRad(Obliquity(t))
	l0 := degToRad(MeanLongitude(t))
	e := Eccentricity(t)
	m := degToRad(MeanAnomaly(t))

	y := math.Tan(epsilon / 2)
	y *= y

	sin2l0 := math.Sin(2 * l0)
	sinm := math.Sin(m)
	cos2l0 := math.Cos(2 * l0)
	sin4l0 := math.Sin(4 * l0)
	sin2m := math.Sin(2 * m)

	eqTime := y*sin2l0 - 2*e*sinm + 4*e*y*sinm*cos2l0 - 0.5*y*y*sin4l0 - 1.25*e*e*sin2m
	return radToDeg(eqTime) * 4
}

// Geometry is the position of the sun on the ecliptic at a single instant.
// All angles are in degrees.
type Geometry struct {
	T                 float64 // Julian centuries since J2000.0
	MeanLongitude     float64
	MeanAnomaly       float64
	Eccentricity      float64
	EquationOfCenter  float64
	TrueLongitude     float64
	TrueAnomaly       float64
	RadiusVector      float64 // AU
	ApparentLongitude float64
	MeanObliquity     float64
	Obliquity         float64
	RightAscension    float64
	Declination       float64
	EquationOfTime    float64 // minutes
}

// GeometryAt calculates the solar geometry for t Julian centuries since
// J2000.0
func GeometryAt(t float64) Geometry {
	return Geometry{
		T:                 t,
		MeanLongitude:     MeanLongitude(t),
		MeanAnomaly:       MeanAnomaly(t),
		Eccentricity:      Eccentricity(t),
		EquationOfCenter:  EquationOfCenter(t),
		TrueLongitude:     TrueLongitude(t),
		TrueAnomaly:       TrueAnomaly(t),
		RadiusVector:      RadiusVector(t),
		ApparentLongitude: ApparentLongitude(t),
		MeanObliquity:     MeanObliquity(t),
		Obliquity:         Obliquity(t),
		RightAscension:    RightAscension(t),
		Declination:       Declination(t),
		EquationOfTime:    EquationOfTime(t),
	}
}
