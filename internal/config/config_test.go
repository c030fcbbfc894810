package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func lookupMap(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(lookupMap(map[string]string{
		"UFCSTATS_BASE_URL":        "http://localhost:9000",
		"UFCSTATS_CONCURRENCY":     "8",
		"UFCSTATS_TIMEOUT":         "90s",
		"UFCSTATS_REQUEST_TIMEOUT": "5s",
		"UFCSTATS_RETRIES":         "0",
		"REDIS_HOST":               "localhost",
		"PORT":                     "",
	}))
	require.NoError(t, err)

	want := Config{
		BaseURL:        "http://localhost:9000",
		Concurrency:    8,
		Timeout:        90 * time.Second,
		RequestTimeout: 5 * time.Second,
		Retries:        0,
		RedisHost:      "localhost",
		RedisPort:      "6379",
		Port:           "8080",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.RedisAddr(); got != "localhost:6379" {
		t.Errorf("got redis addr %q", got)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []map[string]string{
		{"UFCSTATS_CONCURRENCY": "many"},
		{"UFCSTATS_CONCURRENCY": "0"},
		{"UFCSTATS_RETRIES": "-1"},
		{"UFCSTATS_TIMEOUT": "soon"},
	}
	for _, env := range tests {
		t.Run(fmt.Sprintf("env: %v", env), func(t *testing.T) {
			if _, err := FromEnv(lookupMap(env)); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing env file is tolerated", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
		if cfg.RedisAddr() != "" && os.Getenv("REDIS_HOST") == "" {
			t.Errorf("expected the cache to be disabled")
		}
	})

	t.Run("env file values are read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("UFCSTATS_TEST_ONLY_USER_AGENT=x\n"), 0o600))
		t.Setenv("UFCSTATS_TEST_ONLY_USER_AGENT", "")
		os.Unsetenv("UFCSTATS_TEST_ONLY_USER_AGENT")

		_, err := Load(path)
		require.NoError(t, err)
		if got := os.Getenv("UFCSTATS_TEST_ONLY_USER_AGENT"); got != "x" {
			t.Errorf("got %q from env file", got)
		}
	})
}
