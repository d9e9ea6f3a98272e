package device

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/subtlepseudonym/sunclock/config"
)

const (
	defaultLifxPort     = 56700
	defaultRetryBackoff = 250 * time.Millisecond
	defaultRetryLimit   = 5
	defaultTimeout      = 10 * time.Second

	DefaultTransition = 2 * time.Second

	MinKelvin = 1500
	MaxKelvin = 9000
)

type Type string

const (
	TypeLifx   Type = "lifx"
	TypeS31    Type = "s31"
	TypeShelly Type = "shelly"
)

// Color is an HSBK color in the lifx LAN representation
type Color struct {
	Hue        uint16
	Saturation uint16
	Brightness uint16
	Kelvin     uint16
}

// NewColor converts hue in degrees, saturation and brightness in percent,
// and kelvin to a Color. Out of range values are clamped.
//
// conversion formulas are defined by lifx LAN documentation
// https://lan.developer.lifx.com/docs/representing-color-with-hsbk
func NewColor(hue, saturation, brightness float64, kelvin int) *Color {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}

	return &Color{
		Hue:        uint16(math.Floor(hue / 360 * 0x10000)),
		Saturation: uint16(math.Round(clamp(saturation, 0, 100) / 100 * math.MaxUint16)),
		Brightness: uint16(math.Round(clamp(brightness, 0, 100) / 100 * math.MaxUint16)),
		Kelvin:     uint16(clamp(float64(kelvin), MinKelvin, MaxKelvin)),
	}
}

// Degrees returns hue in degrees
func (c Color) Degrees() float64 {
	return float64(c.Hue) * 360.0 / 0x10000
}

func (c Color) SaturationPercent() float64 {
	return float64(c.Saturation) / math.MaxUint16 * 100
}

func (c Color) BrightnessPercent() float64 {
	return float64(c.Brightness) / math.MaxUint16 * 100
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	} else if v > max {
		return max
	}
	return v
}

// Device is a light that scheduled jobs transition
type Device interface {
	Transition(*Color, time.Duration) error
	Status() (*Color, bool, error)
	Label() string
	String() string
}

// Connect returns the configured device. Bulbs are addressed by MAC on the
// lifx LAN port and relays by host over HTTP.
func Connect(label string, device config.Device) (Device, error) {
	switch Type(device.Type) {
	case TypeLifx:
		addr := fmt.Sprintf("%s:%d", device.Host, defaultLifxPort)
		return ConnectLifx(label, addr, device.MAC)
	case TypeS31:
		return ConnectS31(label, device.Host, device.MAC)
	case TypeShelly:
		return ConnectShelly(label, device.Host, device.MAC, device.Index)
	default:
		return nil, fmt.Errorf("unknown device type: %s", device.Type)
	}
}

var httpClient = &http.Client{Timeout: defaultTimeout}

// getJSON queries a relay's HTTP API and decodes the response into v
func getJSON(u *url.URL, v interface{}) error {
	res, err := httpClient.Get(u.String())
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", res.Status)
	}

	return json.NewDecoder(res.Body).Decode(v)
}

// relayColor is the color reported for a relay, which is either full
// brightness or off
func relayColor(on bool) *Color {
	if on {
		return &Color{Brightness: math.MaxUint16}
	}
	return &Color{}
}
