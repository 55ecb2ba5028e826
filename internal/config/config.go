// Package config loads server settings from flags, with CHECKERS_* environment
// variables supplying the defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Host          string        `validate:"required"`
	Port          int           `validate:"min=1,max=65535"`
	Dev           bool
	AllowOrigins  []string      `validate:"min=1,dive,required"`
	SessionTTL    time.Duration `validate:"min=1m"`
	SweepInterval time.Duration `validate:"min=1s"`
	RateLimit     int           `validate:"min=0"` // requests/sec per IP, 0 disables
}

func Default() Config {
	return Config{
		Host:          "localhost",
		Port:          3000,
		AllowOrigins:  []string{"http://localhost:5173"},
		SessionTTL:    2 * time.Hour,
		SweepInterval: time.Minute,
		RateLimit:     20,
	}
}

// Load parses args (without the program name) on top of Default and the
// environment.
func Load(args []string) (Config, error) {
	cfg := Default()
	if err := fromEnv(&cfg); err != nil {
		return Config{}, err
	}

	origins := strings.Join(cfg.AllowOrigins, ",")
	fs := flag.NewFlagSet("checkers-server", flag.ContinueOnError)
	fs.StringVar(&cfg.Host, "host", cfg.Host, "Listen host")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "Listen port")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "Development mode (console logging, debug level)")
	fs.StringVar(&origins, "allow-origins", origins, "Comma-separated origins allowed for CORS and WebSocket")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Idle time after which a game is discarded")
	fs.DurationVar(&cfg.SweepInterval, "sweep-interval", cfg.SweepInterval, "How often idle games are swept")
	fs.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "API requests per second per IP (0 disables)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.AllowOrigins = splitList(origins)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func fromEnv(cfg *Config) error {
	var errs []error

	if v, ok := os.LookupEnv("CHECKERS_HOST"); ok {
		cfg.Host = v
	}
	if v, ok := os.LookupEnv("CHECKERS_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("CHECKERS_PORT: %w", err))
		}
		cfg.Port = port
	}
	if v, ok := os.LookupEnv("CHECKERS_DEV"); ok {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("CHECKERS_DEV: %w", err))
		}
		cfg.Dev = dev
	}
	if v, ok := os.LookupEnv("CHECKERS_ALLOW_ORIGINS"); ok {
		cfg.AllowOrigins = splitList(v)
	}
	if v, ok := os.LookupEnv("CHECKERS_SESSION_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("CHECKERS_SESSION_TTL: %w", err))
		}
		cfg.SessionTTL = ttl
	}
	if v, ok := os.LookupEnv("CHECKERS_SWEEP_INTERVAL"); ok {
		interval, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("CHECKERS_SWEEP_INTERVAL: %w", err))
		}
		cfg.SweepInterval = interval
	}
	if v, ok := os.LookupEnv("CHECKERS_RATE_LIMIT"); ok {
		limit, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("CHECKERS_RATE_LIMIT: %w", err))
		}
		cfg.RateLimit = limit
	}

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
