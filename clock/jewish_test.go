package clock_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/subtlepseudonym/sunclock/clock"
	"github.com/subtlepseudonym/sunclock/solar"
)

func TestHalakimAtSunriseAndSunset(t *testing.T) {
	obs := atlanta(t)
	day := time.Date(2024, time.June, 21, 12, 0, 0, 0, obs.Location)
	date := solar.NewDate(day)
	zone := solar.ZoneAt(day)

	sunrise := solar.At(day, solar.Sunrise(obs.Coordinate, date, zone)).Add(time.Second)
	h := clock.Halakim(obs, sunrise)
	assert.True(t, h.Day)
	assert.Equal(t, 6, h.Hour())
	assert.Equal(t, 0, h.Halakim)
	assert.Equal(t, "6h 0p", h.String())

	sunset := solar.At(day, solar.Sunset(obs.Coordinate, date, zone)).Add(time.Second)
	h = clock.Halakim(obs, sunset)
	assert.False(t, h.Day)
	assert.Equal(t, 6, h.Hour())
	assert.Greater(t, h.End, 1.0)
}

func TestHalakimSolarNoon(t *testing.T) {
	obs := atlanta(t)
	day := time.Date(2024, time.June, 21, 12, 0, 0, 0, obs.Location)
	date := solar.NewDate(day)
	zone := solar.ZoneAt(day)

	rise := solar.Sunrise(obs.Coordinate, date, zone)
	set := solar.Sunset(obs.Coordinate, date, zone)

	// halfway through the day is the twelfth hour, shown as 12 rather
	// than 0
	midday := solar.At(day, (rise+set)/2).Add(time.Second)
	h := clock.Halakim(obs, midday)
	assert.Equal(t, 12, h.Hour())
	assert.Less(t, h.Halakim, 10)

	r := clock.Jewish(obs, midday)
	assert.InDelta(t, 0, hand(t, r, "hour"), 1)
	assert.Equal(t, "day", r.Text[1])
}

func TestHalakimBeforeSunrise(t *testing.T) {
	obs := atlanta(t)
	h := clock.Halakim(obs, time.Date(2024, time.June, 21, 3, 0, 0, 0, obs.Location))

	assert.False(t, h.Day)
	assert.Less(t, h.Begin, 0.0)
	assert.Greater(t, h.End, 0.0)

	// night hours are short in midsummer
	assert.Less(t, (h.End-h.Begin)/12, 1.0/24)

	hour := h.Hour()
	assert.True(t, hour >= 9 || hour <= 1, "hour %d", hour)
	assert.GreaterOrEqual(t, h.Halakim, 0)
	assert.Less(t, h.Halakim, clock.HalakimPerHour)
}

func TestHalakimHoursProgress(t *testing.T) {
	obs := atlanta(t)
	start := time.Date(2024, time.March, 4, 0, 0, 0, 0, obs.Location)

	for i := 0; i < 24*4; i++ {
		now := start.Add(time.Duration(i) * 15 * time.Minute)
		h := clock.Halakim(obs, now)

		assert.GreaterOrEqual(t, h.Hours, 1.0, "%s", now)
		assert.Less(t, h.Hours, 13.0, "%s", now)
		assert.True(t, h.Begin < h.End, "%s", now)

		r := clock.Jewish(obs, now)
		assert.InDelta(t, float64(h.Halakim)/clock.HalakimPerHour*360, hand(t, r, "halakim"), 1e-9)
	}
}

func TestHalakimPolar(t *testing.T) {
	obs := tromso(t)

	for _, now := range []time.Time{
		time.Date(2024, time.December, 21, 12, 0, 0, 0, obs.Location),
		time.Date(2024, time.December, 21, 22, 0, 0, 0, obs.Location),
		time.Date(2024, time.June, 21, 3, 0, 0, 0, obs.Location),
	} {
		h := clock.Halakim(obs, now)
		assert.False(t, math.IsNaN(h.Hours), "%s", now)
		assert.GreaterOrEqual(t, h.Hours, 1.0, "%s", now)
		assert.Less(t, h.Hours, 13.0, "%s", now)
		assert.True(t, h.Begin < h.End, "%s", now)

		// without a sunrise the day is twelve equal hours around noon
		assert.InDelta(t, 0.5, h.End-h.Begin, 0.01, "%s", now)

		assertFinite(t, clock.Jewish(obs, now))
	}

	assert.True(t, clock.Halakim(obs, time.Date(2024, time.December, 21, 12, 0, 0, 0, obs.Location)).Day)
	assert.False(t, clock.Halakim(obs, time.Date(2024, time.December, 21, 22, 0, 0, 0, obs.Location)).Day)
}
