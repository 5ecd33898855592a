package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/hydrosite/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("HYDROSITE_ENV", "local")
	t.Setenv("HYDROSITE_INTERVAL", "10m")
	t.Setenv("HYDROSITE_ELEVATION_PROVIDER", "google")
	t.Setenv("HYDROSITE_ELEVATION_API_KEY", "testAPIKey")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
	assert.Equal(t, 10*time.Minute, cfg.Interval)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, "google", cfg.Elevation.Provider)
	assert.Equal(t, "testAPIKey", cfg.Elevation.APIKey)
}

func TestMustLoad_Defaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "usgs", cfg.Elevation.Provider)
	assert.Equal(t, "Feet", cfg.Elevation.Units)
	assert.Equal(t, 5, cfg.Elevation.RateLimit)
	assert.Equal(t, 4, cfg.Elevation.MaxAttempts)
	assert.Equal(t, 12, cfg.Watershed.Level)
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestMustLoad_FromFile(t *testing.T) {
	defer filet.CleanUp(t)

	dir := filet.TmpDir(t, "")
	path := filepath.Join(dir, "hydrosite.yaml")
	filet.File(t, path, `
env: development
workers: 3
interval: 30s
elevation:
  provider: openmeteo
  units: Meters
  max_attempts: 2
watershed:
  level: 8
  url: http://localhost:9000/wbd/MapServer
census:
  url: http://localhost:9001/area
postgres:
  host: filehost
`)

	t.Setenv("HYDROSITE_CONFIG", path)
	t.Setenv("HYDROSITE_WORKERS", "4")

	cfg := config.MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 4, cfg.Workers, "environment overrides file")
	assert.Equal(t, 30*time.Second, cfg.Interval)
	assert.Equal(t, "openmeteo", cfg.Elevation.Provider)
	assert.Equal(t, "Meters", cfg.Elevation.Units)
	assert.Equal(t, 2, cfg.Elevation.MaxAttempts)
	assert.Equal(t, 8, cfg.Watershed.Level)
	assert.Equal(t, "http://localhost:9000/wbd/MapServer", cfg.Watershed.URL)
	assert.Equal(t, "http://localhost:9001/area", cfg.Census.URL)
	assert.Equal(t, "filehost", cfg.Database.Host)
}

func TestMustLoad_FileError(t *testing.T) {
	t.Setenv("HYDROSITE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	assert.PanicsWithValue(t, "failed to read configuration file", func() {
		config.MustLoad()
	})
}

func TestMustLoad_IntervalError(t *testing.T) {
	t.Setenv("HYDROSITE_INTERVAL", "error_value")

	assert.PanicsWithValue(t, "failed to parse interval from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_PortError(t *testing.T) {
	t.Setenv("HYDROSITE_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_WorkersError(t *testing.T) {
	t.Setenv("HYDROSITE_WORKERS", "0")

	assert.PanicsWithValue(t, "failed to parse workers from configuration, must be a positive integer", func() {
		config.MustLoad()
	})
}

func TestMustLoad_ElevationErrors(t *testing.T) {
	t.Run("rate limit", func(t *testing.T) {
		t.Setenv("HYDROSITE_ELEVATION_RATE_LIMIT", "fast")

		assert.PanicsWithValue(t, "failed to parse elevation rate limit from configuration", func() {
			config.MustLoad()
		})
	})

	t.Run("max attempts", func(t *testing.T) {
		t.Setenv("HYDROSITE_ELEVATION_MAX_ATTEMPTS", "0")

		assert.PanicsWithValue(t, "failed to parse elevation max attempts from configuration", func() {
			config.MustLoad()
		})
	})

	t.Run("watershed level", func(t *testing.T) {
		t.Setenv("HYDROSITE_WATERSHED_LEVEL", "twelve")

		assert.PanicsWithValue(t, "failed to parse watershed level from configuration", func() {
			config.MustLoad()
		})
	})
}
