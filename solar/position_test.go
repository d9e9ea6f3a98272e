package solar_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/subtlepseudonym/sunclock/solar"
)

func timeOfDay(f float64) solar.TimeOfDay {
	minutes := f * solar.MinutesPerDay
	h := int(minutes / 60)
	m := int(minutes) % 60
	return solar.TimeOfDay{
		Hour:   h,
		Minute: m,
		Second: (minutes - float64(h*60+m)) * 60,
	}
}

func TestTwilightSentinel(t *testing.T) {
	winter := solar.Date{Year: 2024, Month: time.December, Day: 21}
	est := solar.Zone{Offset: -5}

	for _, tod := range []solar.TimeOfDay{{Hour: 1}, {Hour: 23, Minute: 30}, {Hour: 3, Minute: 15, Second: 30}} {
		assert.Equal(t, float64(solar.Twilight), solar.Azimuth(atlanta, midsummer, tod, eastern), "%v", tod)
		assert.Equal(t, float64(solar.Twilight), solar.Elevation(atlanta, midsummer, tod, eastern), "%v", tod)
		assert.Equal(t, float64(solar.Twilight), solar.Elevation(atlanta, winter, tod, est), "%v", tod)
		assert.False(t, solar.PositionAt(atlanta, winter, tod, est).Visible())
	}
}

func TestPositionDuringTwilight(t *testing.T) {
	// between sunset and the end of astronomical twilight there is still a
	// position, below the horizon
	set := solar.Sunset(atlanta, midsummer, eastern)
	dusk := solar.TimeOfAngleAfterNoon(atlanta, midsummer, eastern, 108)

	p := solar.PositionAt(atlanta, midsummer, timeOfDay((set+dusk)/2), eastern)
	assert.True(t, p.Visible())
	assert.Less(t, p.Elevation, 0.0)
	assert.Greater(t, p.Elevation, -18.0)
	assert.Equal(t, 0.0, p.CosZenith)
}

func TestPositionAtSolarNoon(t *testing.T) {
	noon := solar.SolarNoon(atlanta, midsummer, eastern)
	p := solar.PositionAt(atlanta, midsummer, timeOfDay(noon), eastern)

	g := solar.GeometryAt(solar.JulianCentury(solar.JulianDay(midsummer) + 0.5))
	want := 90 - (atlanta.Latitude - g.Declination)

	assert.InDelta(t, want, p.Elevation, 0.2)
	assert.InDelta(t, 180, p.Azimuth, 1)
	assert.Greater(t, p.CosZenith, 0.9)

	south := solar.Coordinate{Latitude: -33.8688, Longitude: 151.2093}
	aest := solar.Zone{Offset: 10}
	noon = solar.SolarNoon(south, midsummer, aest)
	p = solar.PositionAt(south, midsummer, timeOfDay(noon), aest)

	// winter in the southern hemisphere, with the sun due north
	assert.InDelta(t, 90-(33.8688+g.Declination), p.Elevation, 0.2)
	assert.True(t, p.Azimuth < 1 || p.Azimuth > 359, "azimuth %f", p.Azimuth)
}

func TestAzimuthMorningAndAfternoon(t *testing.T) {
	morning := solar.TimeOfDay{Hour: 9}
	afternoon := solar.TimeOfDay{Hour: 17, Minute: 30}

	am := solar.PositionAt(atlanta, midsummer, morning, eastern)
	pm := solar.PositionAt(atlanta, midsummer, afternoon, eastern)

	assert.Greater(t, am.Azimuth, 0.0)
	assert.Less(t, am.Azimuth, 180.0)
	assert.Greater(t, pm.Azimuth, 180.0)
	assert.Less(t, pm.Azimuth, 360.0)

	assert.Greater(t, am.Elevation, 0.0)
	assert.Greater(t, pm.Elevation, 0.0)
	assert.Equal(t, am.Azimuth, solar.Azimuth(atlanta, midsummer, morning, eastern))
	assert.Equal(t, pm.Elevation, solar.Elevation(atlanta, midsummer, afternoon, eastern))
}

func TestElevationAtSunrise(t *testing.T) {
	// sunrise is the upper limb crossing the horizon, so the sun's center
	// is still a little below it
	rise := solar.Sunrise(atlanta, midsummer, eastern)
	p := solar.PositionAt(atlanta, midsummer, timeOfDay(rise), eastern)

	assert.Less(t, p.Elevation, 0.0)
	assert.Greater(t, p.Elevation, -1.0)
	assert.InDelta(t, 60, p.Azimuth, 3)
}

func TestNewTimeOfDay(t *testing.T) {
	tod := solar.NewTimeOfDay(time.Date(2024, time.June, 21, 14, 5, 6, 500000000, time.UTC))
	assert.Equal(t, solar.TimeOfDay{Hour: 14, Minute: 5, Second: 6.5}, tod)
}

func TestRefraction(t *testing.T) {
	assert.Equal(t, 0.0, solar.Refraction(85.5))
	assert.Equal(t, 0.0, solar.Refraction(90))

	// about half a degree at the horizon, falling off quickly with height
	assert.InDelta(t, 0.48, solar.Refraction(0), 0.01)
	assert.InDelta(t, 0.149, solar.Refraction(5.5), 0.005)
	assert.Less(t, solar.Refraction(45), solar.Refraction(10))

	// below the polynomial's range the cotangent term takes over
	assert.InDelta(t, 20.774/math.Tan(math.Pi/180)/3600, solar.Refraction(-1), 1e-9)
}

func TestAzimuthFallback(t *testing.T) {
	// sun directly overhead
	assert.Equal(t, 180.0, solar.AzimuthOf(10, 10, 0, 0.5))
	assert.Equal(t, 0.0, solar.AzimuthOf(-10, -10, 0, 0.5))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, solar.Clamp(1.0000000001))
	assert.Equal(t, -1.0, solar.Clamp(-3))
	assert.Equal(t, 0.5, solar.Clamp(0.5))
}
