package rng

import (
	"errors"
	"io"
	"time"

	"github.com/tarm/serial"
)

// SerialConfig describes a USB hardware RNG exposed as a serial device.
type SerialConfig struct {
	Device      string // e.g. /dev/ttyACM0 or COM3
	Baud        int
	ReadTimeout time.Duration
}

// NewSerialRNG opens the device and performs an initial health check. The
// returned reader is locked; share it freely between workers.
func NewSerialRNG(cfg SerialConfig) (io.Reader, *Health, error) {
	if cfg.Device == "" {
		return nil, nil, errors.New("serial device name is required")
	}
	if cfg.Baud <= 0 {
		return nil, nil, errors.New("serial baud rate must be positive")
	}

	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		Size:        8,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, nil, err
	}

	r := NewLockedReader(p)
	h := NewHealth()
	if err := CheckSample(r, h); err != nil {
		h.Set(false, err.Error())
		_ = p.Close()
		return nil, h, err
	}
	h.Set(true, "")

	return r, h, nil
}
