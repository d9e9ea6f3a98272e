package solar_test

import (
	"testing"

	"github.com/mooncaker816/learnmeeus/v3/solstice"
	"github.com/stretchr/testify/assert"

	"github.com/subtlepseudonym/sunclock/solar"
)

func TestGeometryAtEpoch(t *testing.T) {
	g := solar.GeometryAt(0)

	assert.InDelta(t, 280.46646, g.MeanLongitude, 1e-9)
	assert.InDelta(t, 357.52911, g.MeanAnomaly, 1e-9)
	assert.InDelta(t, 0.016708634, g.Eccentricity, 1e-12)
	assert.InDelta(t, 23.4393, g.MeanObliquity, 1e-4)
	assert.InDelta(t, 0.9833, g.RadiusVector, 1e-3)
	assert.InDelta(t, 281.3, g.RightAscension, 0.1)

	// the sun is near its southernmost declination in early January and
	// the equation of time is a little over three minutes slow
	assert.InDelta(t, -23.0, g.Declination, 0.1)
	assert.InDelta(t, -3.3, g.EquationOfTime, 0.1)
	assert.Equal(t, solar.Declination(0), g.Declination)
	assert.Equal(t, solar.EquationOfTime(0), g.EquationOfTime)
}

func TestDeclinationAtSolstices(t *testing.T) {
	for year := 2000; year <= 2040; year += 5 {
		for _, jde := range []float64{solstice.June(year), solstice.December(year)} {
			g := solar.GeometryAt(solar.JulianCentury(jde))
			assert.InDelta(t, 23.44, abs(g.Declination), 0.02, "solstice %f", jde)
			assert.InDelta(t, 90, abs(g.ApparentLongitude-180), 0.02, "solstice %f", jde)
		}
	}
}

func TestMeanLongitudeNormalized(t *testing.T) {
	for _, jc := range []float64{-2, -0.5, 0, 0.24, 1, 3} {
		l := solar.MeanLongitude(jc)
		assert.GreaterOrEqual(t, l, 0.0)
		assert.Less(t, l, 360.0)

		ra := solar.RightAscension(jc)
		assert.GreaterOrEqual(t, ra, 0.0)
		assert.Less(t, ra, 360.0)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
