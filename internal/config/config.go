package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL        string
	Concurrency    int
	Timeout        time.Duration
	RequestTimeout time.Duration
	Retries        int
	UserAgent      string
	RedisHost      string
	RedisPort      string
	Port           string
}

func Default() Config {
	return Config{
		BaseURL:        "http://ufcstats.com",
		Concurrency:    4,
		Timeout:        2 * time.Minute,
		RequestTimeout: 30 * time.Second,
		Retries:        2,
		RedisPort:      "6379",
		Port:           "8080",
	}
}

// Load reads .env files, when present, into the environment and builds the
// configuration from it. Unset variables keep their defaults.
func Load(filenames ...string) (Config, error) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds the configuration from lookup.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, fmt.Errorf("%s: invalid number %q", key, v))
			return
		}
		*dst = n
	}
	dur := func(key string, dst *time.Duration) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = d
	}

	str("UFCSTATS_BASE_URL", &cfg.BaseURL)
	num("UFCSTATS_CONCURRENCY", &cfg.Concurrency)
	dur("UFCSTATS_TIMEOUT", &cfg.Timeout)
	dur("UFCSTATS_REQUEST_TIMEOUT", &cfg.RequestTimeout)
	num("UFCSTATS_RETRIES", &cfg.Retries)
	str("UFCSTATS_USER_AGENT", &cfg.UserAgent)
	str("REDIS_HOST", &cfg.RedisHost)
	str("REDIS_PORT", &cfg.RedisPort)
	str("PORT", &cfg.Port)

	if cfg.Concurrency == 0 {
		errs = append(errs, fmt.Errorf("UFCSTATS_CONCURRENCY: must be at least 1"))
	}
	return cfg, errors.Join(errs...)
}

// RedisAddr returns the cache address, or "" when no cache is configured.
func (c Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}
