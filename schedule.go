package sunclock

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/subtlepseudonym/sunclock/solar"
)

const (
	schedulePrefix = "@"
	dateString     = "2006-01-02"

	// searchLimit is the number of following days searched for an event
	// before a schedule gives up. A year covers any polar night.
	searchLimit = 366
)

// Event is a solar event that a schedule can fire on
type Event string

const (
	EventSunrise Event = "sunrise"
	EventNoon    Event = "noon"
	EventSunset  Event = "sunset"
	EventDawn    Event = "dawn" // a zenith angle before noon
	EventDusk    Event = "dusk" // a zenith angle after noon
)

func (e Event) hasAngle() bool {
	return e == EventDawn || e == EventDusk
}

func (e Event) valid() bool {
	switch e {
	case EventSunrise, EventNoon, EventSunset, EventDawn, EventDusk:
		return true
	}
	return false
}

// Schedule fires at a solar event, shifted by Offset, each day
//
// This implements robfig/cron.Schedule
type Schedule struct {
	Event  Event         `json:"event"`
	Angle  float64       `json:"angle,omitempty"` // zenith angle for dawn and dusk
	Offset time.Duration `json:"offset"`

	coordinate solar.Coordinate
	loc        *time.Location
}

// NewSchedule returns a schedule for the event at location
func NewSchedule(location Location, event Event, angle float64, offset time.Duration) (*Schedule, error) {
	if !event.valid() {
		return nil, fmt.Errorf("unknown solar event %q", event)
	}

	loc, err := location.TimeLocation()
	if err != nil {
		return nil, err
	}

	return &Schedule{
		Event:      event,
		Angle:      angle,
		Offset:     offset,
		coordinate: location.Coordinate(),
		loc:        loc,
	}, nil
}

// ParseSchedule parses either a solar schedule of the form
// "@<event> [zenith] [offset]", such as "@sunset -1h" or "@dusk 96", or a
// standard cron spec
func ParseSchedule(spec string, location Location) (cron.Schedule, error) {
	if !strings.HasPrefix(spec, schedulePrefix) {
		schedule, err := cron.ParseStandard(spec)
		if err != nil {
			return nil, fmt.Errorf("parse cron schedule: %w", err)
		}
		return schedule, nil
	}

	fields := strings.Fields(strings.TrimPrefix(spec, schedulePrefix))
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty solar schedule")
	}

	event := Event(fields[0])
	if !event.valid() {
		// let cron handle its own descriptors, such as @daily
		schedule, err := cron.ParseStandard(spec)
		if err != nil {
			return nil, fmt.Errorf("unknown solar event %q", event)
		}
		return schedule, nil
	}
	fields = fields[1:]

	var angle float64
	if event.hasAngle() {
		if len(fields) == 0 {
			return nil, fmt.Errorf("%s requires a zenith angle", event)
		}

		var err error
		angle, err = strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s angle: %w", event, err)
		}
		fields = fields[1:]
	}

	var offset time.Duration
	if len(fields) > 0 {
		var err error
		offset, err = time.ParseDuration(fields[0])
		if err != nil {
			return nil, fmt.Errorf("parse %s offset: %w", event, err)
		}
		fields = fields[1:]
	}

	if len(fields) > 0 {
		return nil, fmt.Errorf("unexpected %q in solar schedule", strings.Join(fields, " "))
	}

	return NewSchedule(location, event, angle, offset)
}

// fraction returns the local time of the event on date as a fraction of
// the day
func (s Schedule) fraction(date solar.Date, zone solar.Zone) float64 {
	switch s.Event {
	case EventSunrise:
		return solar.Sunrise(s.coordinate, date, zone)
	case EventNoon:
		return solar.SolarNoon(s.coordinate, date, zone)
	case EventSunset:
		return solar.Sunset(s.coordinate, date, zone)
	case EventDawn:
		return solar.TimeOfAngleBeforeNoon(s.coordinate, date, zone, s.Angle)
	case EventDusk:
		return solar.TimeOfAngleAfterNoon(s.coordinate, date, zone, s.Angle)
	}
	return math.NaN()
}

// On returns the time the schedule fires on day's date, and false if the
// event does not happen on that date
func (s Schedule) On(day time.Time) (time.Time, bool) {
	y, m, d := day.In(s.location()).Date()
	midday := time.Date(y, m, d, 12, 0, 0, 0, s.location())

	f := s.fraction(solar.NewDate(midday), solar.ZoneAt(midday))
	if !solar.HasEvent(f) {
		return time.Time{}, false
	}

	return solar.At(midday, f).Add(s.Offset), true
}

func (s Schedule) location() *time.Location {
	if s.loc == nil {
		return time.Local
	}
	return s.loc
}

// Next returns the time the schedule next fires after now. When the event
// does not happen, as in a polar night, it searches up to a year ahead and
// returns the zero time only if the event never happens at the location.
//
// This implements robfig/cron.Schedule
func (s Schedule) Next(now time.Time) time.Time {
	local := now.In(s.location())

	// the offset may push an event onto a neighbouring day
	skipped := 0
	for i := -1; i <= searchLimit; i++ {
		day := local.AddDate(0, 0, i)

		at, ok := s.On(day)
		if !ok {
			if i >= 0 {
				skipped++
			}
			continue
		}

		if at.After(now) {
			if skipped > 0 {
				log.Printf("ERR: no %s for %d days from %s", s, skipped, local.Format(dateString))
			}
			log.Printf("next %s: %s", s, at.Local().Format(time.RFC3339))
			return at
		}
	}

	log.Printf("ERR: no %s within %d days of %s", s, searchLimit, local.Format(dateString))
	return time.Time{}
}

func (s Schedule) String() string {
	str := schedulePrefix + string(s.Event)
	if s.Event.hasAngle() {
		str += " " + strconv.FormatFloat(s.Angle, 'f', -1, 64)
	}
	if s.Offset != 0 {
		str += " " + s.Offset.String()
	}
	return str
}
