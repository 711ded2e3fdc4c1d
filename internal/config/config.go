// Package config loads process settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/janisto/trail-profiles/internal/platform/database"
)

// DefaultAuthURL is the credential verifier profiles are created against.
const DefaultAuthURL = "https://web.socem.plymouth.ac.uk/COMP2001/auth/api/users"

// Config holds all application configuration.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Database
	DatabaseDriver string
	DatabaseDSN    string
	SkipDBInit     bool

	// External auth service
	AuthURL     string
	AuthTimeout time.Duration

	// CORS
	AllowedOrigins []string
}

// Load reads an optional .env file and then the environment. Invalid values
// are collected and reported together.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	var problems []string

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseDriver: strings.ToLower(getEnv("DATABASE_DRIVER", database.DriverSQLite)),
		DatabaseDSN:    getEnv("DATABASE_DSN", "trails.db"),
		AuthURL:        getEnv("AUTH_URL", DefaultAuthURL),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		problems = append(problems, err.Error())
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT %d out of range", port))
	}
	cfg.Port = port

	if cfg.DatabaseDriver != database.DriverSQLite && cfg.DatabaseDriver != database.DriverPostgres {
		problems = append(problems, fmt.Sprintf("DATABASE_DRIVER %q must be %q or %q",
			cfg.DatabaseDriver, database.DriverSQLite, database.DriverPostgres))
	}

	if cfg.SkipDBInit, err = getEnvBool("SKIP_DB_INIT", false); err != nil {
		problems = append(problems, err.Error())
	}

	if cfg.AuthTimeout, err = getEnvDuration("AUTH_TIMEOUT", 10*time.Second); err != nil {
		problems = append(problems, err.Error())
	} else if cfg.AuthTimeout <= 0 {
		problems = append(problems, "AUTH_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, fmt.Errorf("%s %q is not an integer", key, v)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return defaultValue, nil
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue, fmt.Errorf("%s %q is not a boolean", key, v)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue, fmt.Errorf("%s %q is not a duration", key, v)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
