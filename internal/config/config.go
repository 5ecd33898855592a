package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key read from the environment.
const EnvPrefix = "HYDROSITE"

// Config holds the configuration settings for the hydrosite service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server.
// - Workers: The number of concurrent workers enriching sites.
// - Interval: The duration between polling rounds.
// - Elevation: Elevation provider settings.
// - Watershed: Hydrologic unit service settings.
// - Census: County service settings.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env       string          `yaml:"env"`       // Env is the current environment: local, development, production.
	Port      int             `yaml:"port"`      // Port is the monitoring server port.
	Workers   int             `yaml:"workers"`   // The number of concurrent workers for processing sites.
	Interval  time.Duration   `yaml:"interval"`  // The duration between processing intervals.
	Elevation ElevationConfig `yaml:"elevation"` // Elevation provider settings.
	Watershed WatershedConfig `yaml:"watershed"` // Hydrologic unit service settings.
	Census    CensusConfig    `yaml:"census"`    // County service settings.
	Database  PostgresConfig  `yaml:"postgres"`  // Database holds the postgres database configuration
}

// ElevationConfig selects and tunes the elevation provider.
type ElevationConfig struct {
	Provider    string `yaml:"provider"`     // usgs, google or openmeteo.
	APIKey      string `yaml:"api_key"`      // Required for google.
	BaseURL     string `yaml:"base_url"`     // Overrides the provider endpoint.
	Units       string `yaml:"units"`        // Meters or Feet.
	RateLimit   int    `yaml:"rate_limit"`   // Requests per second shared by all workers.
	MaxAttempts int    `yaml:"max_attempts"` // Total attempts per lookup, first one included.
}

type WatershedConfig struct {
	URL   string `yaml:"url"`
	Level int    `yaml:"level"` // 2, 4, ..., 12
}

type CensusConfig struct {
	URL string `yaml:"url"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Name     string `yaml:"db_name"`  // Name is the name of the database.
}

// MustLoad reads .env, the optional YAML file named by HYDROSITE_CONFIG and the
// environment, in increasing order of precedence. It panics on invalid values.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := newViper()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	interval, err := time.ParseDuration(v.GetString("interval"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	healthPort, err := strconv.Atoi(v.GetString("port"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("workers"))
	if err != nil || workers < 1 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	rateLimit, err := strconv.Atoi(v.GetString("elevation.rate_limit"))
	if err != nil {
		panic("failed to parse elevation rate limit from configuration")
	}

	maxAttempts, err := strconv.Atoi(v.GetString("elevation.max_attempts"))
	if err != nil || maxAttempts < 1 {
		panic("failed to parse elevation max attempts from configuration")
	}

	level, err := strconv.Atoi(v.GetString("watershed.level"))
	if err != nil {
		panic("failed to parse watershed level from configuration")
	}

	return &Config{
		Env:      v.GetString("env"),
		Port:     healthPort,
		Workers:  workers,
		Interval: interval,
		Elevation: ElevationConfig{
			Provider:    v.GetString("elevation.provider"),
			APIKey:      v.GetString("elevation.api_key"),
			BaseURL:     v.GetString("elevation.base_url"),
			Units:       v.GetString("elevation.units"),
			RateLimit:   rateLimit,
			MaxAttempts: maxAttempts,
		},
		Watershed: WatershedConfig{
			URL:   v.GetString("watershed.url"),
			Level: level,
		},
		Census: CensusConfig{
			URL: v.GetString("census.url"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.db_name"),
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("env", "production")
	v.SetDefault("port", "8080")
	v.SetDefault("workers", "10")
	v.SetDefault("interval", "10m")
	v.SetDefault("elevation.provider", "usgs")
	v.SetDefault("elevation.units", "Feet")
	v.SetDefault("elevation.rate_limit", "5")
	v.SetDefault("elevation.max_attempts", "4")
	v.SetDefault("watershed.level", "12")
	v.SetDefault("postgres.port", "5432")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Database settings keep their unprefixed names.
	_ = v.BindEnv("postgres.host", "DB_HOST")
	_ = v.BindEnv("postgres.port", "DB_PORT")
	_ = v.BindEnv("postgres.user", "DB_USERNAME")
	_ = v.BindEnv("postgres.password", "DB_PASSWORD")
	_ = v.BindEnv("postgres.db_name", "DB_NAME")

	return v
}
