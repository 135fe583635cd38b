package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"

	"thelab/models"
)

func load(t *testing.T) (*Config, error) {
	t.Helper()
	v := viper.New()
	Bind(v)
	return Load(v)
}

// TestDefaults verifies an empty environment yields a usable config.
func TestDefaults(t *testing.T) {
	cfg, err := load(t)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	want := &Config{
		Address:         ":8000",
		AccountURL:      "http://localhost:8000/user",
		AccountEncoding: models.EncodingJSON,
		SubmitTimeout:   30 * time.Second,
		FormVariant:     models.VariantFullName,
		RateLimit:       600,
		LogLevel:        "info",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.GoogleEnabled() {
		t.Error("Google should be disabled without a client id")
	}
}

// TestEnvOverrides reads every THELAB_* variable.
func TestEnvOverrides(t *testing.T) {
	t.Setenv("THELAB_ADDRESS", ":9100")
	t.Setenv("THELAB_ACCOUNT_URL", "https://accounts.example.com/user")
	t.Setenv("THELAB_ACCOUNT_ENCODING", "msgpack")
	t.Setenv("THELAB_SUBMIT_TIMEOUT", "5s")
	t.Setenv("THELAB_FORM_VARIANT", "username")
	t.Setenv("THELAB_GOOGLE_CLIENT_ID", "123.apps.googleusercontent.com")
	t.Setenv("THELAB_WARN_ON_CONFLICT", "true")
	t.Setenv("THELAB_RATE_LIMIT", "120")
	t.Setenv("THELAB_LOG_LEVEL", "DEBUG")

	cfg, err := load(t)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	want := &Config{
		Address:         ":9100",
		AccountURL:      "https://accounts.example.com/user",
		AccountEncoding: models.EncodingMsgPack,
		SubmitTimeout:   5 * time.Second,
		FormVariant:     models.VariantUsername,
		GoogleClientID:  "123.apps.googleusercontent.com",
		WarnOnConflict:  true,
		RateLimit:       120,
		LogLevel:        "debug",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"relative account url", "THELAB_ACCOUNT_URL", "/user"},
		{"ftp account url", "THELAB_ACCOUNT_URL", "ftp://host/user"},
		{"unknown encoding", "THELAB_ACCOUNT_ENCODING", "xml"},
		{"unknown variant", "THELAB_FORM_VARIANT", "nickname"},
		{"negative timeout", "THELAB_SUBMIT_TIMEOUT", "-1s"},
		{"negative rate limit", "THELAB_RATE_LIMIT", "-5"},
		{"unknown log level", "THELAB_LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := load(t); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

// TestReadFile merges a YAML file below the environment.
func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thelab.yaml")
	content := "form_variant: username\naccount_url: http://files.example.com/user\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("THELAB_ACCOUNT_URL", "http://env.example.com/user")

	v := viper.New()
	Bind(v)
	if err := ReadFile(v, path); err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.FormVariant != models.VariantUsername {
		t.Errorf("variant from file not applied: %s", cfg.FormVariant)
	}
	if cfg.AccountURL != "http://env.example.com/user" {
		t.Errorf("environment should win over file, got %s", cfg.AccountURL)
	}

	if err := ReadFile(viper.New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
