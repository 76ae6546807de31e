package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSessionSecret signs cookies when SESSION_SECRET is unset. It is
// public, so any deployment should override it.
const DefaultSessionSecret = "secret-key-should-be-changed"

// ErrMissingAPIKey is returned when no Gemini credential is configured.
var ErrMissingAPIKey = errors.New("API_KEY environment variable is not set")

// Config holds everything the server needs at startup.
type Config struct {
	BindAddr      string
	DBPath        string
	SessionSecret string
	AdminPassword string
	MinifyAssets  bool

	Gemini Gemini
	Github Github
}

// Gemini describes the generative AI backend.
type Gemini struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
	Timeout    time.Duration
}

// Github describes the token verification backend.
type Github struct {
	BaseURL string
}

// UsesDefaultSessionSecret reports whether cookies are signed with the
// built-in key.
func (c *Config) UsesDefaultSessionSecret() bool {
	return c.SessionSecret == DefaultSessionSecret
}

// Load builds a Config from environment variables.
func Load() (*Config, error) {
	c := &Config{
		BindAddr:      getEnv("BIND_ADDR", ":37371"),
		DBPath:        getEnv("DB_PATH", "blog.db"),
		SessionSecret: getEnv("SESSION_SECRET", DefaultSessionSecret),
		AdminPassword: getEnv("ADMIN_PASSWORD", "password123"),
		MinifyAssets:  getBool("MINIFY_ASSETS", false),
		Gemini: Gemini{
			APIKey:     strings.TrimSpace(os.Getenv("API_KEY")),
			BaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			TextModel:  getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
			ImageModel: getEnv("GEMINI_IMAGE_MODEL", "imagen-4.0-generate-001"),
			Timeout:    getDuration("AI_TIMEOUT", "120s"),
		},
		Github: Github{
			BaseURL: getEnv("GITHUB_API_URL", ""),
		},
	}

	if c.Gemini.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if c.Gemini.Timeout <= 0 {
		return nil, fmt.Errorf("AI_TIMEOUT must be positive")
	}
	if len(c.SessionSecret) < 16 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 16 bytes")
	}
	if c.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD cannot be empty")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}
