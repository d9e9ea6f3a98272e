package clock

import (
	"fmt"
	"math"
	"time"
)

// Metric is a decimal clock: ten hours of one hundred minutes of one
// hundred seconds
func Metric(now time.Time) Reading {
	day := dayFraction(now)

	hours := int(math.Floor(day * 10))
	minutes := int(math.Floor(day*1000)) - hours*100
	seconds := int(math.Floor(day*100000)) - (hours*10000 + minutes*100)

	return Reading{
		Face: "metric",
		Hands: []Hand{
			{Name: "hour", Degrees: (float64(hours) + float64(minutes)/100 + float64(seconds)/10000) * 36},
			{Name: "minute", Degrees: (float64(minutes) + float64(seconds)/100) * 3.6},
			{Name: "second", Degrees: float64(seconds) * 3.6},
		},
		Text: []string{
			fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds),
		},
	}
}

// HexSecondsPerDay is the number of hexadecimal seconds in a day
const HexSecondsPerDay = 0x10000

// Hexadecimal divides the day into sixteen hours of 256 minutes of sixteen
// seconds. Minutes are shown as two hex digits: the maxime and the minute.
func Hexadecimal(now time.Time) Reading {
	ticks := int(math.Floor(dayFraction(now) * HexSecondsPerDay))

	hour := ticks / 0x1000
	maxime := ticks % 0x1000 / 0x100
	minute := ticks % 0x100 / 0x10
	second := ticks % 0x10

	minutes := maxime*0x10 + minute

	return Reading{
		Face: "hexadecimal",
		Hands: []Hand{
			{Name: "hour", Degrees: (float64(hour) + float64(minutes)/256 + float64(second)/4096) * 360 / 16},
			{Name: "minute", Degrees: (float64(minutes) + float64(second)/16) * 360 / 256},
			{Name: "second", Degrees: float64(second) * 360 / 16},
		},
		Text: []string{
			fmt.Sprintf("%X_%02X_%X", hour, minutes, second),
		},
	}
}
