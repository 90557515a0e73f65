package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/lost-woods/shuffle/src/rng"
)

const (
	SourcePCG    = "pcg"
	SourceSerial = "serial"
)

type Config struct {
	Port   string
	APIKey string

	// Source selects where shuffles draw randomness from: seeded PCG streams
	// or the hardware RNG on a serial port.
	Source string
	// Seed fixes the PCG master seed. Zero picks one from the clock.
	Seed           uint64
	Serial         rng.SerialConfig
	HealthInterval time.Duration

	Trials    int // default trials per experiment
	MaxTrials int // upper bound accepted from requests
	Workers   int
}

// Load reads the environment, after merging any .env files given (or ./.env
// when none are). Missing .env files are not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	cfg := &Config{
		Port:   getEnv("PORT", "777"),
		APIKey: os.Getenv("API_KEY"),
		Source: getEnv("RNG_SOURCE", SourcePCG),
		Serial: rng.SerialConfig{Device: os.Getenv("SERIAL_DEVICE_NAME")},
	}

	var err error
	if cfg.Seed, err = getUint("SEED", 0); err != nil {
		return nil, err
	}
	if cfg.Trials, err = getInt("TRIALS", 1000); err != nil {
		return nil, err
	}
	if cfg.MaxTrials, err = getInt("MAX_TRIALS", 100_000); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getInt("WORKERS", runtime.NumCPU()); err != nil {
		return nil, err
	}
	healthMs, err := getInt("RNG_HEALTH_INTERVAL", 10_000)
	if err != nil {
		return nil, err
	}
	cfg.HealthInterval = time.Duration(healthMs) * time.Millisecond

	if cfg.Source == SourceSerial {
		if cfg.Serial.Baud, err = getInt("SERIAL_BAUD_RATE", 0); err != nil {
			return nil, err
		}
		timeoutMs, err := getInt("SERIAL_READ_TIMEOUT", 0)
		if err != nil {
			return nil, err
		}
		cfg.Serial.ReadTimeout = time.Duration(timeoutMs) * time.Millisecond
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Source {
	case SourcePCG:
	case SourceSerial:
		if c.Serial.Device == "" {
			return errors.New("SERIAL_DEVICE_NAME is required for the serial source")
		}
		if c.Serial.Baud <= 0 {
			return fmt.Errorf("invalid SERIAL_BAUD_RATE: %d", c.Serial.Baud)
		}
	default:
		return fmt.Errorf("unknown RNG_SOURCE %q (want %q or %q)", c.Source, SourcePCG, SourceSerial)
	}
	if c.Trials < 1 || c.MaxTrials < c.Trials {
		return fmt.Errorf("TRIALS must be between 1 and MAX_TRIALS (%d), got %d", c.MaxTrials, c.Trials)
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be positive, got %d", c.Workers)
	}
	if c.HealthInterval <= 0 {
		return fmt.Errorf("RNG_HEALTH_INTERVAL must be positive, got %s", c.HealthInterval)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return v, nil
}

func getUint(key string, def uint64) (uint64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return v, nil
}
