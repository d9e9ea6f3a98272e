package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/subtlepseudonym/sunclock"
	"github.com/subtlepseudonym/sunclock/clock"
)

const DefaultListen = ":9000"

type Device struct {
	Type  string `json:"type"`
	Host  string `json:"host"`
	MAC   string `json:"mac"`
	Index int    `json:"index,omitempty"` // switch on a multi-channel relay
}

type Config struct {
	Listen       string            `json:"listen,omitempty"`
	Location     sunclock.Location `json:"location"`
	PrayerMethod string            `json:"prayer_method,omitempty"`
	Asr          string            `json:"asr,omitempty"` // standard or hanafi
	HighLatitude string            `json:"high_latitude,omitempty"`
	Devices      map[string]Device `json:"devices"`
	Jobs         []Job             `json:"jobs"`
}

// Job defines when to run, on which device, what the desired final
// state is, and how long to take getting there.
//
// Schedule is either a solar schedule, such as "@sunset -1h", or a
// standard cron spec. Color state is defined using Hue, Saturation, and
// Brightness.
// https://en.wikipedia.org/wiki/HSL_and_HSV
type Job struct {
	Schedule string `json:"schedule"`
	Device   string `json:"device"`

	Hue        int `json:"hue"`        // 0-360
	Saturation int `json:"saturation"` // 0-100
	Brightness int `json:"brightness"` // 0-100
	Kelvin     int `json:"kelvin"`     // 1500-9000

	Transition string `json:"transition"`
}

func Open(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	defer f.Close()

	var config Config
	err = json.NewDecoder(f).Decode(&config)
	if err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	if config.Listen == "" {
		config.Listen = DefaultListen
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("latitude %f out of range", c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("longitude %f out of range", c.Location.Longitude)
	}

	if _, err := c.Location.TimeLocation(); err != nil {
		return err
	}

	if _, err := c.Method(); err != nil {
		return err
	}

	for label, dev := range c.Devices {
		if dev.Index < 0 {
			return fmt.Errorf("device %q: negative index %d", label, dev.Index)
		}
	}

	for i, job := range c.Jobs {
		if _, ok := c.Devices[job.Device]; !ok {
			return fmt.Errorf("schedule references missing device %q", job.Device)
		}

		if _, err := sunclock.ParseSchedule(job.Schedule, c.Location); err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}

		if _, err := time.ParseDuration(job.Transition); err != nil {
			return fmt.Errorf("job %d: parse transition: %w", i, err)
		}
	}

	return nil
}

// Method returns the configured prayer time method
func (c *Config) Method() (clock.Method, error) {
	method, err := clock.MethodByName(c.PrayerMethod)
	if err != nil {
		return clock.Method{}, err
	}

	method.HighLatitude, err = clock.HighLatitudeRuleByName(c.HighLatitude)
	if err != nil {
		return clock.Method{}, err
	}

	switch strings.ToLower(c.Asr) {
	case "", "standard":
		return method, nil
	case "hanafi":
		return method.Hanafi(), nil
	default:
		return clock.Method{}, fmt.Errorf("unknown asr juristic method %q", c.Asr)
	}
}
