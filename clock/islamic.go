package clock

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/subtlepseudonym/sunclock/solar"
)

// Method is a convention for calculating prayer times. Fajr and Isha
// angles are degrees of the sun below the horizon.
type Method struct {
	Name      string
	FajrAngle float64
	IshaAngle float64

	// IshaMinutes, when set, places Isha a fixed time after Maghrib
	// instead of at IshaAngle
	IshaMinutes float64

	// AsrFactor is the shadow length, relative to an object's height,
	// beyond its noon shadow at which Asr begins: 1 for the majority
	// and 2 for the Hanafi school
	AsrFactor float64

	// HighLatitude limits how far Fajr and Isha may stray from sunrise
	// and sunset. The zero value is NightMiddle.
	HighLatitude HighLatitudeRule
}

// HighLatitudeRule bounds Fajr and Isha to a portion of the night. At high
// latitudes in summer the sun may never reach the twilight angles, or only
// briefly around midnight.
type HighLatitudeRule int

const (
	// NightMiddle puts Fajr and Isha no further than midnight
	NightMiddle HighLatitudeRule = iota
	// OneSeventh allows a seventh of the night before sunrise and after
	// sunset
	OneSeventh
	// AngleBased allows angle/60 of the night, where angle is the
	// method's twilight angle
	AngleBased
)

var highLatitudeRules = map[string]HighLatitudeRule{
	"":             NightMiddle,
	"night_middle": NightMiddle,
	"one_seventh":  OneSeventh,
	"angle_based":  AngleBased,
}

// HighLatitudeRuleByName looks up a rule by name: night_middle,
// one_seventh or angle_based. An empty name is NightMiddle.
func HighLatitudeRuleByName(name string) (HighLatitudeRule, error) {
	rule, ok := highLatitudeRules[strings.ToLower(name)]
	if !ok {
		return NightMiddle, fmt.Errorf("unknown high latitude rule %q", name)
	}
	return rule, nil
}

// portion returns the longest time, in hours, allowed between Fajr and
// sunrise or between sunset and Isha
func (r HighLatitudeRule) portion(angle, night float64) float64 {
	switch r {
	case OneSeventh:
		return night / 7
	case AngleBased:
		return angle / 60 * night
	default:
		return night / 2
	}
}

// fixHour folds decimal hours into [0, 24)
func fixHour(h float64) float64 {
	return math.Mod(math.Mod(h, 24)+24, 24)
}

var (
	MWL     = Method{Name: "MWL", FajrAngle: 18, IshaAngle: 17, AsrFactor: 1}
	ISNA    = Method{Name: "ISNA", FajrAngle: 15, IshaAngle: 15, AsrFactor: 1}
	Egypt   = Method{Name: "Egypt", FajrAngle: 19.5, IshaAngle: 17.5, AsrFactor: 1}
	Makkah  = Method{Name: "Makkah", FajrAngle: 18.5, IshaMinutes: 90, AsrFactor: 1}
	Karachi = Method{Name: "Karachi", FajrAngle: 18, IshaAngle: 18, AsrFactor: 1}
)

var methods = []Method{MWL, ISNA, Egypt, Makkah, Karachi}

// MethodByName looks up a method by its case insensitive name. An empty
// name is MWL.
func MethodByName(name string) (Method, error) {
	if name == "" {
		return MWL, nil
	}

	for _, m := range methods {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}

	return Method{}, fmt.Errorf("unknown prayer method %q", name)
}

// Hanafi returns m with the Hanafi Asr shadow factor
func (m Method) Hanafi() Method {
	m.AsrFactor = 2
	return m
}

func (m Method) orDefault() Method {
	if m.Name == "" && m.FajrAngle == 0 {
		return MWL
	}
	if m.AsrFactor == 0 {
		m.AsrFactor = 1
	}
	return m
}

// PrayerTimes are local times, in decimal hours, for a single day
type PrayerTimes struct {
	Fajr    float64 `json:"fajr"`
	Sunrise float64 `json:"sunrise"`
	Dhuhr   float64 `json:"dhuhr"`
	Asr     float64 `json:"asr"`
	Maghrib float64 `json:"maghrib"`
	Isha    float64 `json:"isha"`
}

// asrZenith returns the zenith angle of the sun when the shadow of an
// object is factor times its height longer than its shadow at noon
func asrZenith(latitude, declination, factor float64) float64 {
	noonShadow := math.Tan(math.Abs(latitude-declination) * math.Pi / 180)
	altitude := math.Atan(1/(factor+noonShadow)) * 180 / math.Pi
	return 90 - altitude
}

// Prayers calculates the prayer times on the given date. Fajr and Isha are
// held within the method's high latitude rule, so Isha may run past 24.
// Where the sun doesn't rise or set, Fajr, Sunrise, Maghrib and Isha are NaN.
func Prayers(c solar.Coordinate, date solar.Date, zone solar.Zone, m Method) PrayerTimes {
	m = m.orDefault()

	declination := solar.Declination(solar.JulianCentury(solar.JulianDay(date) + 0.5))

	p := PrayerTimes{
		Fajr:    24 * solar.TimeOfAngleBeforeNoon(c, date, zone, 90+m.FajrAngle),
		Sunrise: 24 * solar.Sunrise(c, date, zone),
		Dhuhr:   24 * solar.SolarNoon(c, date, zone),
		Asr:     24 * solar.TimeOfAngleAfterNoon(c, date, zone, asrZenith(c.Latitude, declination, m.AsrFactor)),
		Maghrib: 24 * solar.Sunset(c, date, zone),
		Isha:    24 * solar.TimeOfAngleAfterNoon(c, date, zone, 90+m.IshaAngle),
	}

	night := fixHour(p.Sunrise - p.Maghrib)

	portion := m.HighLatitude.portion(m.FajrAngle, night)
	if math.IsNaN(p.Fajr) || fixHour(p.Sunrise-p.Fajr) > portion {
		p.Fajr = p.Sunrise - portion
	}

	if m.IshaMinutes > 0 {
		p.Isha = p.Maghrib + m.IshaMinutes/60
		return p
	}

	portion = m.HighLatitude.portion(m.IshaAngle, night)
	if math.IsNaN(p.Isha) || fixHour(p.Isha-p.Maghrib) > portion {
		p.Isha = p.Maghrib + portion
	}

	return p
}

// valid reports whether every prayer time was found
func (p PrayerTimes) valid() bool {
	for _, h := range []float64{p.Fajr, p.Sunrise, p.Dhuhr, p.Asr, p.Maghrib, p.Isha} {
		if !solar.HasEvent(h) {
			return false
		}
	}
	return true
}

// Prayer is the current or next prayer period
type Prayer struct {
	Name  string
	Begin float64 // decimal hours
	End   float64

	// Preferred is false outside the preferred time of a prayer, such as
	// the later part of the night for Isha, or before Dhuhr has begun
	Preferred bool
}

// String formats the period as H:MM-H:MM, or H:MM for a prayer that has
// not yet begun
func (p Prayer) String() string {
	if p.End == p.Begin {
		return formatHours(p.Begin)
	}
	return formatHours(p.Begin) + "-" + formatHours(p.End)
}

// CurrentPrayer returns the prayer period that hours falls into, or the
// next one to begin. tomorrow is used for the end of the night.
func CurrentPrayer(hours float64, today, tomorrow PrayerTimes) Prayer {
	// the preferred time for Isha is the first third of the night
	firstThird := today.Isha + (24+tomorrow.Fajr-today.Isha)/3

	switch {
	case today.Isha > 24 && hours+24 < today.Isha:
		// last night's Maghrib ran past midnight
		return Prayer{Name: "maghrib", Begin: today.Maghrib, End: today.Isha, Preferred: true}
	case hours < today.Fajr:
		// still last night; its first third may have run past midnight
		if hours+24 <= firstThird {
			return Prayer{Name: "isha", Begin: today.Isha, End: firstThird - 24, Preferred: true}
		}
		return Prayer{Name: "isha", Begin: today.Isha, End: today.Fajr}
	case hours <= today.Sunrise:
		return Prayer{Name: "fajr", Begin: today.Fajr, End: today.Sunrise, Preferred: true}
	case hours <= today.Dhuhr:
		return Prayer{Name: "dhuhr", Begin: today.Dhuhr, End: today.Dhuhr}
	case hours <= today.Asr:
		return Prayer{Name: "dhuhr", Begin: today.Dhuhr, End: today.Asr, Preferred: true}
	case hours <= today.Maghrib:
		return Prayer{Name: "asr", Begin: today.Asr, End: today.Maghrib, Preferred: true}
	case hours <= today.Isha:
		return Prayer{Name: "maghrib", Begin: today.Maghrib, End: today.Isha, Preferred: true}
	case hours <= firstThird:
		return Prayer{Name: "isha", Begin: today.Isha, End: firstThird, Preferred: true}
	default:
		return Prayer{Name: "isha", Begin: today.Isha, End: 24 + tomorrow.Fajr}
	}
}

// hourDegrees converts decimal hours to a rotation on a 24 hour dial
func hourDegrees(hours float64) float64 {
	return math.Mod(math.Mod(hours*15, 360)+360, 360)
}

// within reports whether deg lies on the arc running clockwise from start
// to end
func within(deg, start, end float64) bool {
	if start <= end {
		return deg >= start && deg <= end
	}
	return deg >= start || deg <= end
}

// Islamic is a 24 hour dial marked with the day's prayer periods. During
// a polar day or night the dial has hands only.
func Islamic(obs Observer, now time.Time) Reading {
	now = obs.in(now)
	date := solar.NewDate(now)
	zone := solar.ZoneAt(now)

	today := Prayers(obs.Coordinate, date, zone, obs.Method)
	tomorrow := Prayers(obs.Coordinate, date.AddDays(1), zone, obs.Method)

	hours := decimalHours(now)
	minutes := float64(now.Minute()) + float64(now.Second())/60
	current := hourDegrees(hours)

	hands := []Hand{
		{Name: "hour", Degrees: current},
		{Name: "minute", Degrees: minutes * 6},
		{Name: "second", Degrees: float64(now.Second()) * 6},
	}

	if !today.valid() || !tomorrow.valid() {
		return Reading{
			Face:  "islamic",
			Hands: hands,
			Text:  []string{"unavailable"},
		}
	}

	firstThird := today.Isha + (24+tomorrow.Fajr-today.Isha)/3
	arc := func(name string, begin, end float64) Arc {
		start, stop := hourDegrees(begin), hourDegrees(end)
		return Arc{Name: name, Start: start, End: stop, Active: within(current, start, stop)}
	}

	prayer := CurrentPrayer(hours, today, tomorrow)

	return Reading{
		Face:  "islamic",
		Hands: hands,
		Text: []string{
			prayer.Name,
			prayer.String(),
		},
		Arcs: []Arc{
			arc("isha", today.Isha, firstThird),
			arc("night", today.Isha, 24+today.Fajr),
			arc("maghrib", today.Maghrib, today.Isha),
			arc("fajr", today.Fajr, today.Sunrise),
			arc("dhuhr", today.Dhuhr, today.Asr),
			arc("asr", today.Asr, today.Maghrib),
		},
	}
}
