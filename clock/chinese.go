package clock

import (
	"fmt"
	"math"
	"time"
)

// Earthly branches naming the twelve double hours, starting at 23:00
var (
	branches = []string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
	pinyin   = []string{"zǐ", "chǒu", "yín", "mǎo", "chén", "sì", "wǔ", "wèi", "shēn", "yǒu", "xū", "hài"}
)

// DoubleHour returns the index of the double hour (shichen) containing the
// given hour of the day. The first double hour runs from 23:00 to 1:00.
func DoubleHour(hour int) int {
	return int(math.Floor(float64((hour+1)%24)/2 + 0.25))
}

// Chinese is a 24 hour dial with the day divided into one hundred ke of
// sixty fen
func Chinese(now time.Time) Reading {
	ke := dayFraction(now)*100 + 1
	whole := math.Floor(ke)
	fen := int(math.Floor((ke - whole) * 60))

	shichen := DoubleHour(now.Hour())

	return Reading{
		Face: "chinese",
		Hands: []Hand{
			{Name: "hour", Degrees: decimalHours(now) * 15},
			{Name: "fen", Degrees: float64(fen) * 6},
		},
		Text: []string{
			fmt.Sprintf("%d kè %d fēn", int(whole), fen),
			branches[shichen] + "時",
			pinyin[shichen] + " watch",
		},
	}
}
