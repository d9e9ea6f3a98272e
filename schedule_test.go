package sunclock_test

import (
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtlepseudonym/sunclock"
	"github.com/subtlepseudonym/sunclock/clock"
)

var atlanta = sunclock.Location{
	Latitude:  33.780,
	Longitude: -84.300,
	TimeZone:  "America/New_York",
}

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		spec   string
		event  sunclock.Event
		angle  float64
		offset time.Duration
		str    string
	}{
		{"@sunrise", sunclock.EventSunrise, 0, 0, "@sunrise"},
		{"@sunset -1h", sunclock.EventSunset, 0, -time.Hour, "@sunset -1h0m0s"},
		{"@noon 30m", sunclock.EventNoon, 0, 30 * time.Minute, "@noon 30m0s"},
		{"@dawn 96", sunclock.EventDawn, 96, 0, "@dawn 96"},
		{"@dusk  102.5 -15m", sunclock.EventDusk, 102.5, -15 * time.Minute, "@dusk 102.5 -15m0s"},
	}

	for _, test := range tests {
		schedule, err := sunclock.ParseSchedule(test.spec, atlanta)
		require.NoError(t, err, test.spec)

		s, ok := schedule.(*sunclock.Schedule)
		require.True(t, ok, test.spec)
		assert.Equal(t, test.event, s.Event, test.spec)
		assert.Equal(t, test.angle, s.Angle, test.spec)
		assert.Equal(t, test.offset, s.Offset, test.spec)
		assert.Equal(t, test.str, s.String())
	}
}

func TestParseScheduleCron(t *testing.T) {
	for _, spec := range []string{"0 7 * * *", "@daily", "@every 1h"} {
		schedule, err := sunclock.ParseSchedule(spec, atlanta)
		require.NoError(t, err, spec)
		_, ok := schedule.(*sunclock.Schedule)
		assert.False(t, ok, spec)
	}
}

func TestParseScheduleErrors(t *testing.T) {
	specs := []string{
		"@",
		"@sundown",
		"@dawn",
		"@dusk high",
		"@sunset soon",
		"@sunset 1h 2h",
		"61 * * * *",
	}

	for _, spec := range specs {
		_, err := sunclock.ParseSchedule(spec, atlanta)
		assert.Error(t, err, spec)
	}

	_, err := sunclock.ParseSchedule("@sunset", sunclock.Location{TimeZone: "Mars/Olympus_Mons"})
	assert.Error(t, err)
}

func TestNewSchedule(t *testing.T) {
	_, err := sunclock.NewSchedule(atlanta, sunclock.Event("eclipse"), 0, 0)
	assert.Error(t, err)

	s, err := sunclock.NewSchedule(atlanta, sunclock.EventSunset, 0, 0)
	require.NoError(t, err)

	var _ cron.Schedule = s
}

func TestScheduleNext(t *testing.T) {
	loc := newYork(t)
	s, err := sunclock.NewSchedule(atlanta, sunclock.EventSunset, 0, 0)
	require.NoError(t, err)

	// before sunset fires today
	now := time.Date(2024, time.June, 21, 12, 0, 0, 0, loc)
	next := s.Next(now)
	assert.Equal(t, 21, next.Day())
	assert.Equal(t, 20, next.Hour())
	assert.True(t, next.After(now))

	// after sunset fires tomorrow
	now = time.Date(2024, time.June, 21, 22, 0, 0, 0, loc)
	next = s.Next(now)
	assert.Equal(t, 22, next.Day())
	assert.Equal(t, 20, next.Hour())

	// asking again from the event itself moves to the following day
	again := s.Next(next)
	assert.Equal(t, 23, again.Day())
	assert.InDelta(t, 24*time.Hour, again.Sub(next), float64(time.Minute))
}

func TestScheduleNextOffset(t *testing.T) {
	loc := newYork(t)
	s, err := sunclock.NewSchedule(atlanta, sunclock.EventSunrise, 0, -time.Hour)
	require.NoError(t, err)

	sunrise, ok := s.On(time.Date(2024, time.June, 21, 0, 0, 0, 0, loc))
	require.True(t, ok)
	assert.Equal(t, 5, sunrise.Hour())

	next := s.Next(time.Date(2024, time.June, 21, 5, 0, 0, 0, loc))
	assert.Equal(t, sunrise, next)
}

func TestScheduleNextLateOffset(t *testing.T) {
	loc := newYork(t)

	// sunset plus six hours lands after midnight
	s, err := sunclock.NewSchedule(atlanta, sunclock.EventSunset, 0, 6*time.Hour)
	require.NoError(t, err)

	now := time.Date(2024, time.June, 22, 1, 0, 0, 0, loc)
	next := s.Next(now)
	assert.Equal(t, 22, next.Day())
	assert.Equal(t, 2, next.Hour())
}

func TestScheduleNextDST(t *testing.T) {
	loc := newYork(t)
	s, err := sunclock.NewSchedule(atlanta, sunclock.EventNoon, 0, 0)
	require.NoError(t, err)

	// solar noon moves an hour later on the wall clock across the change
	// while the sun keeps its pace
	before := s.Next(time.Date(2024, time.March, 9, 0, 0, 0, 0, loc))
	after := s.Next(time.Date(2024, time.March, 10, 0, 0, 0, 0, loc))
	assert.Equal(t, 12, before.Hour())
	assert.Equal(t, 13, after.Hour())
	assert.InDelta(t, 24*time.Hour, after.Sub(before), float64(2*time.Minute))
}

func TestScheduleNextPolar(t *testing.T) {
	tromso := sunclock.Location{Latitude: 69.65, Longitude: 18.96, TimeZone: "Europe/Oslo"}
	s, err := sunclock.NewSchedule(tromso, sunclock.EventSunrise, 0, 0)
	require.NoError(t, err)

	loc, err := tromso.TimeLocation()
	require.NoError(t, err)

	// the sun returns in the middle of January
	next := s.Next(time.Date(2024, time.December, 21, 12, 0, 0, 0, loc))
	require.False(t, next.IsZero())
	assert.Equal(t, 2025, next.Year())
	assert.Equal(t, time.January, next.Month())
	assert.True(t, next.Hour() >= 10 && next.Hour() <= 12, "%s", next)

	_, ok := s.On(time.Date(2024, time.December, 21, 12, 0, 0, 0, loc))
	assert.False(t, ok)

	// noon happens regardless
	noon, err := sunclock.NewSchedule(tromso, sunclock.EventNoon, 0, 0)
	require.NoError(t, err)
	assert.False(t, noon.Next(time.Date(2024, time.December, 21, 0, 0, 0, 0, loc)).IsZero())
}

func TestLocation(t *testing.T) {
	loc, err := sunclock.Location{}.TimeLocation()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	_, err = sunclock.Location{TimeZone: "Nowhere/Special"}.TimeLocation()
	assert.Error(t, err)

	obs, err := atlanta.Observer(clock.ISNA)
	require.NoError(t, err)
	assert.Equal(t, atlanta.Latitude, obs.Coordinate.Latitude)
	assert.Equal(t, atlanta.Longitude, obs.Coordinate.Longitude)
	assert.Equal(t, "America/New_York", obs.Location.String())
	assert.Equal(t, clock.ISNA, obs.Method)
}

func TestScheduleNextHighLatitudeSummer(t *testing.T) {
	london := sunclock.Location{Latitude: 51.5074, Longitude: -0.1278, TimeZone: "Europe/London"}
	s, err := sunclock.ParseSchedule("@dusk 108", london)
	require.NoError(t, err)

	loc, err := london.TimeLocation()
	require.NoError(t, err)

	// astronomical dusk doesn't happen through June and much of July
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, loc)
	next := s.Next(now)
	require.False(t, next.IsZero())
	assert.True(t, next.Month() == time.July || next.Month() == time.August, "%s", next)

	// cron asks again from each run, so the schedule must keep firing
	end := time.Date(2024, time.September, 1, 0, 0, 0, 0, loc)
	for now.Before(end) {
		next := s.Next(now)
		require.False(t, next.IsZero(), "after %s", now)
		require.True(t, next.After(now), "after %s", now)
		now = next
	}
}

func TestScheduleNextNever(t *testing.T) {
	// the sun never climbs to 30 degrees this far north
	north := sunclock.Location{Latitude: 89, Longitude: 0, TimeZone: "UTC"}
	s, err := sunclock.ParseSchedule("@dawn 60", north)
	require.NoError(t, err)

	assert.True(t, s.Next(time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)).IsZero())
}
