package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

const defaultCacheTTL = 300 * time.Second

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

type Config struct {
	cloudSQLUnixSocketPath string
	dBPassword             string
	dBUsername             string
	sentryDSN              string
	port                   string
	cacheTTL               time.Duration
	env                    environment
}

func (c *Config) CloudSQLUnixSocketPath() string {
	return c.cloudSQLUnixSocketPath
}

func (c *Config) DBPassword() string {
	return c.dBPassword
}

func (c *Config) DBUsername() string {
	return c.dBUsername
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

func (c *Config) Port() string {
	return c.port
}

// CacheTTL is the duration a score snapshot may be served without
// re-fetching. Zero disables caching.
func (c *Config) CacheTTL() time.Duration {
	return c.cacheTTL
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf("Config{env: %s, cacheTTL: %s, port: %s, ...}", string(c.env), c.cacheTTL, c.port)
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("SCOREBOARD_ENVIRONMENT")
	if !ok {
		return missingKey("SCOREBOARD_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return Config{}, fmt.Errorf("%w: SCOREBOARD_ENVIRONMENT (%s)", ErrInvalidValue, rawEnv)
	}

	cacheTTL := defaultCacheTTL
	if rawTTL, ok := os.LookupEnv("SCOREBOARD_CACHE_TTL_SECONDS"); ok {
		seconds, err := strconv.Atoi(rawTTL)
		if err != nil {
			return Config{}, fmt.Errorf("%w: SCOREBOARD_CACHE_TTL_SECONDS (%s)", ErrInvalidValue, rawTTL)
		}
		if seconds < 0 {
			// A negative TTL would silently disable the cache. Refuse to
			// start rather than guess at intent.
			return Config{}, fmt.Errorf("%w: SCOREBOARD_CACHE_TTL_SECONDS (%s): must be non-negative", ErrInvalidValue, rawTTL)
		}
		cacheTTL = time.Duration(seconds) * time.Second
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cloudSQLUnixSocketPath := os.Getenv("CLOUDSQL_UNIX_SOCKET")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbUsername := os.Getenv("DB_USERNAME")
	sentryDSN := os.Getenv("SENTRY_DSN")

	if env == production || env == staging {
		if cloudSQLUnixSocketPath == "" {
			return missingKey("CLOUDSQL_UNIX_SOCKET")
		}
		if dbUsername == "" {
			return missingKey("DB_USERNAME")
		}
		if dbPassword == "" {
			return missingKey("DB_PASSWORD")
		}
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
	}

	return Config{
		cloudSQLUnixSocketPath: cloudSQLUnixSocketPath,
		dBPassword:             dbPassword,
		dBUsername:             dbUsername,
		sentryDSN:              sentryDSN,
		port:                   port,
		cacheTTL:               cacheTTL,
		env:                    env,
	}, nil
}
