// Package config reads runtime settings from the environment and an
// optional .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/client"
)

// Environment keys.
const (
	EnvAPIURL   = "STOREFRONT_API_URL"
	EnvToken    = "STOREFRONT_TOKEN"
	EnvHome     = "STOREFRONT_HOME"
	EnvLogLevel = "STOREFRONT_LOG_LEVEL"
	EnvTimeout  = "STOREFRONT_TIMEOUT"
	EnvPassword = "STOREFRONT_PASSWORD"
)

const (
	defaultLogLevel = "info"
	defaultTimeout  = 30 * time.Second
	defaultDir      = ".storefront"
)

// Config is the resolved runtime configuration. Token, when set, is used
// for this run instead of the stored token.
type Config struct {
	APIURL   string
	Token    string
	Home     string
	LogLevel string
	Timeout  time.Duration
}

// TokenPath returns the file holding the stored session token.
func (c Config) TokenPath() string {
	return filepath.Join(c.Home, "token")
}

// LogPath returns the log file location.
func (c Config) LogPath() string {
	return filepath.Join(c.Home, "storefront.log")
}

// Load reads .env (if present) and then the process environment.
// Variables already set in the environment win over .env.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv resolves the configuration through getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Config{
		APIURL:   getenv(EnvAPIURL),
		Token:    getenv(EnvToken),
		Home:     getenv(EnvHome),
		LogLevel: getenv(EnvLogLevel),
		Timeout:  defaultTimeout,
	}
	if c.APIURL == "" {
		c.APIURL = client.DefaultBaseURL
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("get home dir: %w", err)
		}
		c.Home = filepath.Join(home, defaultDir)
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvTimeout, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("%s must be positive, got %s", EnvTimeout, v)
		}
		c.Timeout = d
	}
	return c, nil
}
