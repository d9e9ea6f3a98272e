package clock

import (
	"fmt"
	"math"
	"time"

	"github.com/subtlepseudonym/sunclock/solar"
)

// HalakimPerHour is the number of parts (halakim) in an hour
const HalakimPerHour = 1080

// HalakimTime is a time in seasonal hours. Day hours run from sunrise to
// sunset and night hours from sunset to sunrise, each period divided into
// twelve. Sunrise and sunset are both 6:00.
type HalakimTime struct {
	Hours   float64 // 1 up to 13
	Halakim int     // 0-1079
	Day     bool

	// Begin and End bound the current period, as fractions of today
	// measured in local time. Begin is negative before sunrise and End
	// exceeds 1 after sunset.
	Begin float64
	End   float64
}

// Hour returns the whole seasonal hour, 1-12
func (h HalakimTime) Hour() int {
	return int(math.Floor(h.Hours))
}

// String formats h as "<hour>h <halakim>p"
func (h HalakimTime) String() string {
	return fmt.Sprintf("%dh %dp", h.Hour(), h.Halakim)
}

// daylight returns the day's sunrise and sunset as fractions of the day.
// When the sun doesn't rise or set, the day is the six hours either side
// of solar noon.
func daylight(c solar.Coordinate, date solar.Date, zone solar.Zone) (sunrise, sunset float64) {
	sunrise = solar.Sunrise(c, date, zone)
	sunset = solar.Sunset(c, date, zone)
	if solar.HasEvent(sunrise) && solar.HasEvent(sunset) {
		return sunrise, sunset
	}

	noon := solar.SolarNoon(c, date, zone)
	return noon - 0.25, noon + 0.25
}

// Halakim calculates the seasonal time at now for the observer
func Halakim(obs Observer, now time.Time) HalakimTime {
	now = obs.in(now)
	c := obs.Coordinate
	date := solar.NewDate(now)
	zone := solar.ZoneAt(now)

	_, prevSunset := daylight(c, date.AddDays(-1), zone)
	sunrise, sunset := daylight(c, date, zone)
	nextSunrise, _ := daylight(c, date.AddDays(1), zone)
	prevSunset--
	nextSunrise++

	current := dayFraction(now)

	var begin, end float64
	var day bool
	switch {
	case current >= sunrise && current < sunset:
		begin, end, day = sunrise, sunset, true
	case current < sunrise:
		begin, end = prevSunset, sunrise
	default:
		begin, end = sunset, nextSunrise
	}

	hourLength := (end - begin) / 12
	hours := (current-begin)/hourLength + 6
	if math.Floor(hours) >= 12 {
		hours -= 12
	}
	if math.Floor(hours) == 0 {
		hours += 12
	}

	return HalakimTime{
		Hours:   hours,
		Halakim: int(math.Floor(HalakimPerHour * (hours - math.Floor(hours)))),
		Day:     day,
		Begin:   begin,
		End:     end,
	}
}

// Jewish is a twelve hour dial of seasonal hours with a second hand
// counting halakim
func Jewish(obs Observer, now time.Time) Reading {
	h := Halakim(obs, now)

	period := "night"
	if h.Day {
		period = "day"
	}

	return Reading{
		Face: "jewish",
		Hands: []Hand{
			{Name: "hour", Degrees: math.Mod(h.Hours*30, 360)},
			{Name: "halakim", Degrees: float64(h.Halakim) / HalakimPerHour * 360},
		},
		Text: []string{
			h.String(),
			period,
		},
	}
}
