package device

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"go.yhsif.com/lifxlan"
	"go.yhsif.com/lifxlan/light"
)

type LifxBulb struct {
	light.Device
	label string // prevent need to contact device for logging
}

// ConnectLifx takes a label (for logging), a host in ip:port
// format and a mac address to locate a bulb on the network, connect
// to it, and retrieve its label and hardware version
func ConnectLifx(label, host, mac string) (Device, error) {
	target, err := lifxlan.ParseTarget(mac)
	if err != nil {
		return nil, fmt.Errorf("%s: parse mac address: %w", label, err)
	}

	dev := lifxlan.NewDevice(host, lifxlan.ServiceUDP, target)
	conn, err := dev.Dial()
	if err != nil {
		return nil, fmt.Errorf("%s: dial device: %w", label, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Connecting happens once at startup, so a bulb that doesn't answer
	// the first echo is reported rather than retried
	err = dev.Echo(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("%s: echo device: %w", label, err)
	}

	bulb, err := light.Wrap(ctx, dev, false)
	if err != nil {
		return nil, fmt.Errorf("%s: device is not a light: %w", label, err)
	}

	device := &LifxBulb{
		Device: bulb,
		label:  label,
	}

	err = device.GetHardwareVersion(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("%s: get hardware version: %w", label, err)
	}

	if device.Device.Label().String() != lifxlan.EmptyLabel {
		device.label = strings.ToLower(device.Device.Label().String())
	}

	return device, nil
}

// echo wraps the underlying method of the same name and adds retry logic
func (d *LifxBulb) echo(ctx context.Context, conn net.Conn) error {
	var err error
	for i := 0; i < defaultRetryLimit; i++ {
		err = d.Device.Echo(ctx, conn)
		if err == nil || !errors.Is(err, context.DeadlineExceeded) {
			break
		}

		time.Sleep(time.Duration(i+1) * defaultRetryBackoff)
	}

	return err
}

// dial connects to the bulb and confirms that it's listening
func (d *LifxBulb) dial(ctx context.Context) (net.Conn, error) {
	conn, err := d.Dial()
	if err != nil {
		return nil, fmt.Errorf("%s: dial: %w", d.label, err)
	}

	err = d.echo(ctx, conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: echo device: %w", d.label, err)
	}

	return conn, nil
}

// Transition fades the bulb to color over the transition duration. Zero
// brightness turns the bulb off.
func (d *LifxBulb) Transition(color *Color, transition time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	conn, err := d.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if color.Brightness == 0 {
		err = d.SetLightPower(ctx, conn, lifxlan.PowerOff, transition, true)
		if err != nil {
			return fmt.Errorf("%s: set light power: %w", d.label, err)
		}
		return nil
	}

	power, err := d.GetPower(ctx, conn)
	if err != nil {
		return fmt.Errorf("%s: get power: %w", d.label, err)
	}

	lifxColor := d.Device.SanitizeColor(lifxlan.Color{
		Hue:        color.Hue,
		Saturation: color.Saturation,
		Brightness: color.Brightness,
		Kelvin:     color.Kelvin,
	})

	// If power is off, reset bulb brightness to 0 and turn on
	if power == lifxlan.PowerOff {
		clr := lifxColor
		clr.Brightness = 0

		err = d.SetColor(ctx, conn, &clr, time.Millisecond, true)
		if err != nil {
			return fmt.Errorf("%s: reset color: %w", d.label, err)
		}

		err = d.SetPower(ctx, conn, lifxlan.PowerOn, true)
		if err != nil {
			return fmt.Errorf("%s: set power: %w", d.label, err)
		}
	}

	err = d.SetColor(ctx, conn, &lifxColor, transition, true)
	if err != nil {
		return fmt.Errorf("%s: set color: %w", d.label, err)
	}

	return nil
}

// Status returns the bulb's current color and whether it is powered on
func (d *LifxBulb) Status() (*Color, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	conn, err := d.dial(ctx)
	if err != nil {
		return nil, false, err
	}
	defer conn.Close()

	power, err := d.GetPower(ctx, conn)
	if err != nil {
		return nil, false, fmt.Errorf("%s: get power: %w", d.label, err)
	}

	color, err := d.GetColor(ctx, conn)
	if err != nil {
		return nil, false, fmt.Errorf("%s: get color: %w", d.label, err)
	}

	return &Color{
		Hue:        color.Hue,
		Saturation: color.Saturation,
		Brightness: color.Brightness,
		Kelvin:     color.Kelvin,
	}, power != lifxlan.PowerOff, nil
}

func (d *LifxBulb) Label() string {
	return d.label
}

func (d *LifxBulb) String() string {
	return d.Device.HardwareVersion().String()
}
