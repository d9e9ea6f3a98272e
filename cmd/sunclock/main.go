package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/subtlepseudonym/sunclock"
	"github.com/subtlepseudonym/sunclock/config"
	"github.com/subtlepseudonym/sunclock/device"
)

const (
	defaultConfigFile = "secrets/sunclock.json"
)

type Job struct {
	Spec       string
	Device     device.Device
	Color      *device.Color
	Transition time.Duration
}

func (j Job) Run() {
	log.Printf("%s: transitioning over %s", j.Device.Label(), j.Transition)
	err := j.Device.Transition(j.Color, j.Transition)
	if err != nil {
		log.Printf("ERR: transition device: %s", err)
	}
}

// newJob parses a configured job into its schedule and the job to run on
// it
func newJob(job config.Job, location sunclock.Location, devices map[string]device.Device) (cron.Schedule, Job, error) {
	schedule, err := sunclock.ParseSchedule(job.Schedule, location)
	if err != nil {
		return nil, Job{}, fmt.Errorf("parse schedule: %w", err)
	}

	dev, ok := devices[job.Device]
	if !ok {
		return nil, Job{}, fmt.Errorf("device %q is not connected", job.Device)
	}

	transition, err := time.ParseDuration(job.Transition)
	if err != nil {
		return nil, Job{}, fmt.Errorf("parse job transition: %w", err)
	}

	return schedule, Job{
		Spec:       job.Schedule,
		Device:     dev,
		Color:      device.NewColor(float64(job.Hue), float64(job.Saturation), float64(job.Brightness), job.Kelvin),
		Transition: transition,
	}, nil
}

func main() {
	configFile := flag.String("config", defaultConfigFile, "path to config file")
	flag.Parse()

	// manually set local timezone for docker container
	if tz := os.Getenv("TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Fatalf("ERR: load tz location: %s", err)
		}
		time.Local = loc
	}

	cfg, err := config.Open(*configFile)
	if err != nil {
		log.Fatalf("ERR: read config file failed: %s", err)
	}

	err = cfg.Validate()
	if err != nil {
		log.Fatalf("ERR: invalid config: %s", err)
	}

	// the configured location's time zone wins so cron specs and solar
	// schedules agree on the wall clock
	if cfg.Location.TimeZone != "" {
		loc, err := cfg.Location.TimeLocation()
		if err != nil {
			log.Fatalf("ERR: location time zone: %s", err)
		}
		time.Local = loc
	}

	method, err := cfg.Method()
	if err != nil {
		log.Fatalf("ERR: prayer method: %s", err)
	}
	observer, err := cfg.Location.Observer(method)
	if err != nil {
		log.Fatalf("ERR: observer: %s", err)
	}

	devices := make(map[string]device.Device)
	for label, dev := range cfg.Devices {
		d, err := device.Connect(label, dev)
		if err != nil {
			log.Printf("ERR: connect device: %s", err)
			continue
		}
		devices[label] = d
		log.Printf("registered device: %q %s", label, d)
	}

	now := time.Now() // used for logging cron entries
	lightCron := cron.New()
	for _, j := range cfg.Jobs {
		schedule, job, err := newJob(j, cfg.Location, devices)
		if err != nil {
			log.Printf("ERR: %s: %s", j.Schedule, err)
			continue
		}
		lightCron.Schedule(schedule, job)

		log.Printf("job: %s: %s", schedule.Next(now).Local().Format(time.RFC3339), job.Device.Label())
	}

	srv := http.Server{
		Addr:    cfg.Listen,
		Handler: newServer(observer, lightCron, devices).routes(),
	}
	log.Printf("listening on %s", srv.Addr)

	lightCron.Start()
	log.Fatal(srv.ListenAndServe())
}
