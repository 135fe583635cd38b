// Package config loads runtime settings from THELAB_* environment variables,
// an optional config file and command-line flags, in viper's usual order of
// precedence (flag > env > file > default).
package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/rohanthewiz/serr"
	"github.com/spf13/viper"

	"thelab/models"
)

// EnvPrefix is prepended to every environment variable (THELAB_ACCOUNT_URL, ...).
const EnvPrefix = "THELAB"

// Setting keys. Flags use the same names with dashes.
const (
	KeyAddress         = "address"
	KeyAccountURL      = "account_url"
	KeyAccountEncoding = "account_encoding"
	KeySubmitTimeout   = "submit_timeout"
	KeyFormVariant     = "form_variant"
	KeyGoogleClientID  = "google_client_id"
	KeyWarnOnConflict  = "warn_on_conflict"
	KeyRateLimit       = "rate_limit"
	KeyLogLevel        = "log_level"
)

// defaultSubmitTimeout bounds one account-creation request.
// A hung account service would otherwise leave the form submitting forever.
const defaultSubmitTimeout = 30 * time.Second

// defaultRateLimit is requests per minute per visitor. The page script posts
// on every keystroke.
const defaultRateLimit = 600

// Config holds everything the front ends need to build the engine.
type Config struct {
	Address         string          // Web listen address (THELAB_ADDRESS)
	AccountURL      string          // Account service base URL (THELAB_ACCOUNT_URL)
	AccountEncoding models.Encoding // Request body encoding (THELAB_ACCOUNT_ENCODING)
	SubmitTimeout   time.Duration   // Per-request timeout, 0 disables (THELAB_SUBMIT_TIMEOUT)
	FormVariant     models.Variant  // username or fullname (THELAB_FORM_VARIANT)
	GoogleClientID  string          // Enables Google signup when set (THELAB_GOOGLE_CLIENT_ID)
	WarnOnConflict  bool            // Also toast duplicate-account errors (THELAB_WARN_ON_CONFLICT)
	RateLimit       int             // Requests per minute per visitor, 0 disables (THELAB_RATE_LIMIT)
	LogLevel        string          // debug, info, warn or error (THELAB_LOG_LEVEL)
}

// Bind prepares v to read THELAB_* variables and installs the defaults.
func Bind(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAddress, ":8000")
	v.SetDefault(KeyAccountURL, "http://localhost:8000/user")
	v.SetDefault(KeyAccountEncoding, string(models.EncodingJSON))
	v.SetDefault(KeySubmitTimeout, defaultSubmitTimeout)
	v.SetDefault(KeyFormVariant, string(models.VariantFullName))
	v.SetDefault(KeyGoogleClientID, "")
	v.SetDefault(KeyWarnOnConflict, false)
	v.SetDefault(KeyRateLimit, defaultRateLimit)
	v.SetDefault(KeyLogLevel, "info")
}

// ReadFile merges a YAML/TOML/JSON config file into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return serr.Wrap(err, "failed to read config file "+path)
	}
	return nil
}

// Load builds a validated Config from v. Call Bind first.
func Load(v *viper.Viper) (*Config, error) {
	enc, err := models.ParseEncoding(v.GetString(KeyAccountEncoding))
	if err != nil {
		return nil, serr.Wrap(err, "invalid THELAB_ACCOUNT_ENCODING")
	}
	variant, err := models.ParseVariant(v.GetString(KeyFormVariant))
	if err != nil {
		return nil, serr.Wrap(err, "invalid THELAB_FORM_VARIANT")
	}

	cfg := &Config{
		Address:         v.GetString(KeyAddress),
		AccountURL:      strings.TrimSpace(v.GetString(KeyAccountURL)),
		AccountEncoding: enc,
		SubmitTimeout:   v.GetDuration(KeySubmitTimeout),
		FormVariant:     variant,
		GoogleClientID:  strings.TrimSpace(v.GetString(KeyGoogleClientID)),
		WarnOnConflict:  v.GetBool(KeyWarnOnConflict),
		RateLimit:       v.GetInt(KeyRateLimit),
		LogLevel:        strings.ToLower(v.GetString(KeyLogLevel)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on settings that would only break at submit time.
func (c *Config) Validate() error {
	if c.Address == "" {
		return serr.New("THELAB_ADDRESS must not be empty")
	}

	u, err := url.Parse(c.AccountURL)
	if err != nil {
		return serr.Wrap(err, "invalid THELAB_ACCOUNT_URL")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return serr.New("THELAB_ACCOUNT_URL must be an absolute http(s) URL")
	}

	if c.SubmitTimeout < 0 {
		return serr.New("THELAB_SUBMIT_TIMEOUT must not be negative")
	}
	if c.RateLimit < 0 {
		return serr.New("THELAB_RATE_LIMIT must not be negative")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return serr.New("THELAB_LOG_LEVEL must be one of debug, info, warn, error")
	}
	return nil
}

// GoogleEnabled reports whether the Google strategy should be offered
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != ""
}
