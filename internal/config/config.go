// Package config reads runtime settings from the environment. A .env file in
// the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/nbenliogludev/seaware-booking-agent/internal/prompt"
)

const DefaultStartURL = "https://sandbox.reservations.travelhx.com/touch"

type Config struct {
	Port string

	TemplateDir  string
	TemplateName string

	RedisHost string
	RedisPort string
	CacheTTL  time.Duration

	JWTSecret string
	RateRPS   float64
	RateBurst int

	StartURL string
	LogLevel slog.Level
}

// RedisAddr is empty when no Redis host is configured.
func (c Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

// Load reads .env (if any) and then the process environment. Real
// environment variables take precedence over .env entries.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Port:         get("PORT", "8080"),
		TemplateDir:  get("PROMPT_TEMPLATE_DIR", ""),
		TemplateName: get("PROMPT_TEMPLATE_NAME", prompt.DefaultTemplate),
		RedisHost:    get("REDIS_HOST", ""),
		RedisPort:    get("REDIS_PORT", "6379"),
		JWTSecret:    getenv("INGRESS_JWT_SECRET"),
		StartURL:     get("SEAWARE_START_URL", DefaultStartURL),
	}

	var errs []error

	ttl, err := time.ParseDuration(get("PROMPT_CACHE_TTL", "24h"))
	if err != nil || ttl < 0 {
		errs = append(errs, fmt.Errorf("PROMPT_CACHE_TTL: invalid duration %q", getenv("PROMPT_CACHE_TTL")))
	}
	cfg.CacheTTL = ttl

	rps, err := strconv.ParseFloat(get("INGRESS_RATE_RPS", "5"), 64)
	if err != nil || rps <= 0 {
		errs = append(errs, fmt.Errorf("INGRESS_RATE_RPS: must be a positive number, got %q", getenv("INGRESS_RATE_RPS")))
	}
	cfg.RateRPS = rps

	burst, err := strconv.Atoi(get("INGRESS_RATE_BURST", "10"))
	if err != nil || burst <= 0 {
		errs = append(errs, fmt.Errorf("INGRESS_RATE_BURST: must be a positive integer, got %q", getenv("INGRESS_RATE_BURST")))
	}
	cfg.RateBurst = burst

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}
