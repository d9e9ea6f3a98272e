package device

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// S31 is a Sonoff S31 smart plug running Tasmota firmware
type S31 struct {
	Address  string
	MAC      string
	Firmware string
	Hardware string
	label    string
}

type TasmotaFirmwareStatus struct {
	Status struct {
		Version  string `json:"Version"`
		Hardware string `json:"Hardware"`
	} `json:"StatusFWR"`
}

type TasmotaPowerState struct {
	Power string `json:"POWER"`
}

// ConnectS31 queries the plug at addr for its firmware and hardware
// versions
func ConnectS31(label, addr, mac string) (Device, error) {
	s31 := &S31{
		Address: addr,
		MAC:     mac,
		label:   label,
	}

	var status TasmotaFirmwareStatus
	err := getJSON(s31.command("Status 2"), &status)
	if err != nil {
		return nil, fmt.Errorf("%s: query status: %w", s31.label, err)
	}

	s31.Firmware = status.Status.Version
	s31.Hardware = status.Status.Hardware

	return s31, nil
}

// command builds the URL for a Tasmota console command
func (s *S31) command(cmnd string) *url.URL {
	return &url.URL{
		Scheme:   "http",
		Host:     s.Address,
		Path:     "/cm",
		RawQuery: "cmnd=" + url.PathEscape(cmnd),
	}
}

// Transition switches the plug on for any brightness and off for zero. The
// relay can't fade, so the transition duration is ignored.
func (s *S31) Transition(color *Color, transition time.Duration) error {
	power := "Off"
	if color.Brightness > 0 {
		power = "On"
	}

	var state TasmotaPowerState
	err := getJSON(s.command("Power "+power), &state)
	if err != nil {
		return fmt.Errorf("%s: set power state: %w", s.label, err)
	}

	if !strings.EqualFold(state.Power, power) {
		return fmt.Errorf("%s: power is %s after setting %s", s.label, state.Power, power)
	}

	return nil
}

func (s *S31) Status() (*Color, bool, error) {
	var state TasmotaPowerState
	err := getJSON(s.command("State"), &state)
	if err != nil {
		return nil, false, fmt.Errorf("%s: query state: %w", s.label, err)
	}

	on := strings.EqualFold(state.Power, "on")
	return relayColor(on), on, nil
}

func (s *S31) Label() string {
	return s.label
}

func (s *S31) String() string {
	return fmt.Sprintf("Sonoff S31 %s %s", s.Hardware, s.Firmware)
}
