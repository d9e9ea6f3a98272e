package clock

import (
	"math"
	"time"
)

// Standard is a twelve hour dial
func Standard(now time.Time) Reading {
	hours := decimalHours(now)
	minutes := float64(now.Minute()) + float64(now.Second())/60

	return Reading{
		Face: "standard",
		Hands: []Hand{
			{Name: "hour", Degrees: math.Mod(hours*30, 360)},
			{Name: "minute", Degrees: minutes * 6},
			{Name: "second", Degrees: float64(now.Second()) * 6},
		},
		Text: []string{
			now.Format("3:04:05 PM"),
			now.Format("15:04:05"),
		},
	}
}

// TwentyFourHour is a dial with midnight at the top and noon at the bottom
func TwentyFourHour(now time.Time) Reading {
	hours := decimalHours(now)
	minutes := float64(now.Minute()) + float64(now.Second())/60

	return Reading{
		Face: "24hour",
		Hands: []Hand{
			{Name: "hour", Degrees: hours * 15},
			{Name: "minute", Degrees: minutes * 6},
			{Name: "second", Degrees: float64(now.Second()) * 6},
		},
		Text: []string{
			now.Format("Mon Jan 2"),
			now.Format("15:04:05"),
		},
	}
}
