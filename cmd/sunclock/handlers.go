package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/subtlepseudonym/sunclock/clock"
	"github.com/subtlepseudonym/sunclock/device"
	"github.com/subtlepseudonym/sunclock/solar"
)

const (
	dateString = "2006-01-02"

	// civil twilight
	defaultTwilightZenith = 96.0
)

type server struct {
	observer clock.Observer
	cron     *cron.Cron
	devices  map[string]device.Device
	now      func() time.Time
}

func newServer(observer clock.Observer, c *cron.Cron, devices map[string]device.Device) *server {
	return &server{
		observer: observer,
		cron:     c,
		devices:  devices,
		now:      time.Now,
	}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/sun", s.SunHandler)
	mux.HandleFunc("/clock/", s.ClockHandler)
	mux.HandleFunc("/jobs", s.JobsHandler)
	mux.HandleFunc("/devices/", s.DeviceHandler)
	return mux
}

func (s *server) location() *time.Location {
	if s.observer.Location == nil {
		return time.Local
	}
	return s.observer.Location
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("ERR: encode response: %s", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"unable to encode response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(append(body, '\n'))
	if err != nil {
		log.Printf("ERR: write response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type sunResponse struct {
	Date      string   `json:"date"`
	Sunrise   *string  `json:"sunrise"`
	Noon      *string  `json:"noon"`
	Sunset    *string  `json:"sunset"`
	Zenith    float64  `json:"zenith"`
	Dawn      *string  `json:"dawn"`
	Dusk      *string  `json:"dusk"`
	Time      string   `json:"time"`
	Azimuth   *float64 `json:"azimuth"`
	Elevation *float64 `json:"elevation"`
}

// SunHandler reports the day's solar events and the sun's position at the
// current time of day. Events that don't happen, such as sunrise in a
// polar night, are null.
func (s *server) SunHandler(w http.ResponseWriter, r *http.Request) {
	loc := s.location()
	now := s.now().In(loc)

	y, m, d := now.Date()
	if param := r.FormValue("date"); param != "" {
		day, err := time.ParseInLocation(dateString, param, loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unable to parse date parameter")
			return
		}
		y, m, d = day.Date()
	}

	zenith := defaultTwilightZenith
	if param := r.FormValue("zenith"); param != "" {
		z, err := strconv.ParseFloat(param, 64)
		if err != nil || z <= 0 || z >= 180 {
			writeError(w, http.StatusBadRequest, "unable to parse zenith parameter")
			return
		}
		zenith = z
	}

	midday := time.Date(y, m, d, 12, 0, 0, 0, loc)
	date := solar.NewDate(midday)
	zone := solar.ZoneAt(midday)
	coord := s.observer.Coordinate

	event := func(f float64) *string {
		if !solar.HasEvent(f) {
			return nil
		}
		str := solar.At(midday, f).Format(time.RFC3339)
		return &str
	}

	res := sunResponse{
		Date:    midday.Format(dateString),
		Sunrise: event(solar.Sunrise(coord, date, zone)),
		Noon:    event(solar.SolarNoon(coord, date, zone)),
		Sunset:  event(solar.Sunset(coord, date, zone)),
		Zenith:  zenith,
		Dawn:    event(solar.TimeOfAngleBeforeNoon(coord, date, zone, zenith)),
		Dusk:    event(solar.TimeOfAngleAfterNoon(coord, date, zone, zenith)),
	}

	at := time.Date(y, m, d, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), loc)
	res.Time = at.Format(time.RFC3339)

	pos := solar.PositionAt(coord, date, solar.NewTimeOfDay(at), solar.ZoneAt(at))
	if pos.Visible() {
		res.Azimuth = &pos.Azimuth
		res.Elevation = &pos.Elevation
	}

	writeJSON(w, http.StatusOK, res)
}

// ClockHandler returns the current reading of the clock face named by the
// request path
func (s *server) ClockHandler(w http.ResponseWriter, r *http.Request) {
	face := strings.Trim(strings.TrimPrefix(r.URL.Path, "/clock/"), "/")
	if face == "" {
		writeJSON(w, http.StatusOK, clock.Faces)
		return
	}

	reading, err := clock.Read(face, s.observer, s.now())
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, reading)
}

type jobResponse struct {
	Schedule string `json:"schedule"`
	Device   string `json:"device"`
	Next     string `json:"next,omitempty"`
}

// JobsHandler lists scheduled jobs in the order they will next run
func (s *server) JobsHandler(w http.ResponseWriter, r *http.Request) {
	now := s.now()

	type next struct {
		at  time.Time
		res jobResponse
	}

	var jobs []next
	for _, entry := range s.cron.Entries() {
		job, ok := entry.Job.(Job)
		if !ok {
			continue
		}

		at := entry.Next
		if at.IsZero() {
			at = entry.Schedule.Next(now)
		}

		res := jobResponse{
			Schedule: job.Spec,
			Device:   job.Device.Label(),
		}
		if !at.IsZero() {
			res.Next = at.In(s.location()).Format(time.RFC3339)
		}
		jobs = append(jobs, next{at: at, res: res})
	}

	// jobs that never run sort last
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].at.IsZero() || jobs[j].at.IsZero() {
			return !jobs[i].at.IsZero()
		}
		return jobs[i].at.Before(jobs[j].at)
	})

	res := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		res = append(res, job.res)
	}

	writeJSON(w, http.StatusOK, res)
}

type colorResponse struct {
	On         bool    `json:"on"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Brightness float64 `json:"brightness"`
	Kelvin     uint16  `json:"kelvin"`
	Transition string  `json:"transition,omitempty"`
}

func newColorResponse(color *device.Color, on bool) colorResponse {
	return colorResponse{
		On:         on,
		Hue:        color.Degrees(),
		Saturation: color.SaturationPercent(),
		Brightness: color.BrightnessPercent(),
		Kelvin:     color.Kelvin,
	}
}

// DeviceHandler reports a device's status on GET and transitions it to
// the color given by form parameters on POST or PUT
func (s *server) DeviceHandler(w http.ResponseWriter, r *http.Request) {
	label := strings.Trim(strings.TrimPrefix(r.URL.Path, "/devices/"), "/")
	dev, ok := s.devices[label]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown device %q", label))
		return
	}

	switch r.Method {
	case http.MethodGet:
		color, on, err := dev.Status()
		if err != nil {
			log.Printf("ERR: %s: status: %s", label, err)
			writeError(w, http.StatusInternalServerError, "unable to get device state")
			return
		}
		writeJSON(w, http.StatusOK, newColorResponse(color, on))
	case http.MethodPost, http.MethodPut:
		s.transition(w, r, dev)
	default:
		w.Header().Set("Allow", "GET, POST, PUT")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *server) transition(w http.ResponseWriter, r *http.Request, dev device.Device) {
	err := r.ParseForm()
	if err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse form")
		return
	}

	params := make(map[string]float64)
	for _, name := range []string{"hue", "saturation", "brightness", "kelvin"} {
		if _, ok := r.Form[name]; !ok {
			continue
		}

		param := r.FormValue(name)
		p, err := strconv.ParseFloat(param, 64)
		if err != nil {
			log.Printf("ERR: %s: parse %s param %q: %s", dev.Label(), name, param, err)
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unable to parse %s parameter", name))
			return
		}
		params[name] = p
	}

	if _, ok := params["brightness"]; !ok {
		writeError(w, http.StatusBadRequest, "brightness parameter is required")
		return
	}

	transition := device.DefaultTransition
	if _, ok := r.Form["transition"]; ok {
		param := r.FormValue("transition")

		// bare numbers are milliseconds
		if _, err := strconv.Atoi(param); err == nil {
			param = param + "ms"
		}

		parsed, err := time.ParseDuration(param)
		if err != nil {
			log.Printf("ERR: %s: parse transition param %q: %s", dev.Label(), param, err)
			writeError(w, http.StatusBadRequest, "unable to parse transition parameter")
			return
		}
		transition = parsed
	}

	color := device.NewColor(params["hue"], params["saturation"], params["brightness"], int(params["kelvin"]))
	err = dev.Transition(color, transition)
	if err != nil {
		log.Printf("ERR: transition: %s", err)
		writeError(w, http.StatusInternalServerError, "unable to transition device")
		return
	}

	res := newColorResponse(color, color.Brightness != 0)
	res.Transition = transition.String()
	writeJSON(w, http.StatusOK, res)
}
