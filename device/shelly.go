package device

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Shelly is a Gen2 Shelly relay controlled over its RPC API
type Shelly struct {
	Address  string
	MAC      string
	Firmware string
	Hardware string
	label    string
	index    int // index of attached port on device
}

type ShellyDeviceInfo struct {
	ID         string `json:"id"`
	MAC        string `json:"mac"`
	Model      string `json:"model"`
	Generation int    `json:"gen"`
	FirmwareID string `json:"fw_id"`
	Version    string `json:"ver"`
	App        string `json:"app"`
	Profile    string `json:"profile"`
}

type ShellySwitchStatusResponse struct {
	Source      string `json:"source"`
	Output      bool   `json:"output"`
	Temperature struct {
		Celsius    float64 `json:"tC"`
		Fahrenheit float64 `json:"tF"`
	} `json:"temperature"`
}

type ShellySwitchSetResponse struct {
	WasOn bool `json:"was_on"`
}

// ConnectShelly queries the relay at addr for its device info. index
// selects the switch on multi-channel relays.
func ConnectShelly(label, addr, mac string, index int) (Device, error) {
	shelly := &Shelly{
		Address: addr,
		MAC:     mac,
		label:   label,
		index:   index,
	}

	var info ShellyDeviceInfo
	err := getJSON(shelly.rpc("Shelly.GetDeviceInfo", nil), &info)
	if err != nil {
		return nil, fmt.Errorf("%s: query info: %w", shelly.label, err)
	}

	shelly.Firmware = info.FirmwareID
	shelly.Hardware = info.App

	return shelly, nil
}

func (s *Shelly) rpc(method string, params url.Values) *url.URL {
	return &url.URL{
		Scheme:   "http",
		Host:     s.Address,
		Path:     "/rpc/" + method,
		RawQuery: params.Encode(),
	}
}

// Transition switches the relay on for any brightness and off for zero
func (s *Shelly) Transition(color *Color, transition time.Duration) error {
	params := url.Values{
		"id": {strconv.Itoa(s.index)},
		"on": {strconv.FormatBool(color.Brightness > 0)},
	}

	var res ShellySwitchSetResponse
	err := getJSON(s.rpc("Switch.Set", params), &res)
	if err != nil {
		return fmt.Errorf("%s: set power state: %w", s.label, err)
	}

	return nil
}

func (s *Shelly) Status() (*Color, bool, error) {
	params := url.Values{"id": {strconv.Itoa(s.index)}}

	var status ShellySwitchStatusResponse
	err := getJSON(s.rpc("Switch.GetStatus", params), &status)
	if err != nil {
		return nil, false, fmt.Errorf("%s: query status: %w", s.label, err)
	}

	return relayColor(status.Output), status.Output, nil
}

func (s *Shelly) Label() string {
	return s.label
}

func (s *Shelly) String() string {
	return fmt.Sprintf("Shelly %s %s", s.Hardware, s.Firmware)
}
