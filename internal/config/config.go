// Package config reads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server settings.
type Config struct {
	Addr          string
	PostgresDSN   string
	UseMemory     bool
	BaseCurrency  string
	PrefsDebounce time.Duration
	CORSOrigins   []string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present; existing variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:          getEnv("SERVER_ADDR", ":8080"),
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		UseMemory:     getBool("USE_MEMORY", false),
		BaseCurrency:  getEnv("BASE_CURRENCY", "TRY"),
		PrefsDebounce: time.Duration(getInt("PREFS_DEBOUNCE_MS", 400)) * time.Millisecond,
		CORSOrigins:   getList("CORS_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
