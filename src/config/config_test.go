package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lost-woods/shuffle/src/config"
)

var keys = []string{
	"PORT", "API_KEY", "RNG_SOURCE", "SEED", "TRIALS", "MAX_TRIALS", "WORKERS",
	"RNG_HEALTH_INTERVAL", "SERIAL_DEVICE_NAME", "SERIAL_BAUD_RATE", "SERIAL_READ_TIMEOUT",
}

// clearEnv unsets every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "777", cfg.Port)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, config.SourcePCG, cfg.Source)
	assert.Zero(t, cfg.Seed)
	assert.Equal(t, 1000, cfg.Trials)
	assert.Equal(t, 100_000, cfg.MaxTrials)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, 10*time.Second, cfg.HealthInterval)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("API_KEY", "secret")
	t.Setenv("SEED", "18446744073709551615")
	t.Setenv("TRIALS", "50")
	t.Setenv("MAX_TRIALS", "500")
	t.Setenv("WORKERS", "3")
	t.Setenv("RNG_HEALTH_INTERVAL", "250")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, uint64(18446744073709551615), cfg.Seed)
	assert.Equal(t, 50, cfg.Trials)
	assert.Equal(t, 500, cfg.MaxTrials)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 250*time.Millisecond, cfg.HealthInterval)
}

func TestLoad_SerialSource(t *testing.T) {
	clearEnv(t)
	t.Setenv("RNG_SOURCE", "serial")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "SERIAL_DEVICE_NAME")

	t.Setenv("SERIAL_DEVICE_NAME", "/dev/ttyACM0")
	_, err = config.Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "SERIAL_BAUD_RATE")

	t.Setenv("SERIAL_BAUD_RATE", "115200")
	t.Setenv("SERIAL_READ_TIMEOUT", "1500")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Device)
	assert.Equal(t, 115200, cfg.Serial.Baud)
	assert.Equal(t, 1500*time.Millisecond, cfg.Serial.ReadTimeout)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"RNG_SOURCE", "dice", `unknown RNG_SOURCE "dice"`},
		{"SEED", "-4", "invalid SEED"},
		{"TRIALS", "many", "invalid TRIALS"},
		{"TRIALS", "0", "TRIALS must be between 1 and MAX_TRIALS"},
		{"MAX_TRIALS", "10", "TRIALS must be between 1 and MAX_TRIALS (10)"},
		{"WORKERS", "0", "WORKERS must be positive"},
		{"RNG_HEALTH_INTERVAL", "-1", "RNG_HEALTH_INTERVAL must be positive"},
	}
	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORKERS", "2") // the environment wins over the file

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9000\nTRIALS=42\nWORKERS=16\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 42, cfg.Trials)
	assert.Equal(t, 2, cfg.Workers)
}
