package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/five82/flightdeck/internal/djilog"
)

// Settings holds the user-editable service settings.
type Settings struct {
	Endpoint string `toml:"endpoint" mapstructure:"endpoint" validate:"omitempty,http_url"`
	APIKey   string `toml:"api_key" mapstructure:"api_key" validate:"omitempty,printascii"`
	MapToken string `toml:"map_token" mapstructure:"map_token" validate:"omitempty,printascii"`
}

const (
	defaultSettingsPath = "~/.config/flightdeck/settings.toml"
	envPrefix           = "FLIGHTDECK"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	return defaultSettingsPath
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{Endpoint: djilog.DefaultEndpoint}
}

// Load layers defaults, the settings file and FLIGHTDECK_* environment
// variables. A missing file is not an error.
func Load(path string) (Settings, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Settings{}, err
	}

	v := viper.New()
	defaults := Defaults()
	v.SetDefault("endpoint", defaults.Endpoint)
	v.SetDefault("api_key", defaults.APIKey)
	v.SetDefault("map_token", defaults.MapToken)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(resolved); err == nil {
		v.SetConfigFile(resolved)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("parse settings: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("stat settings: %w", err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	s = s.normalized()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save writes s to path, creating directories as needed. The file holds an
// API key, so it is only readable by the owner.
func Save(path string, s Settings) error {
	s = s.normalized()
	if err := s.Validate(); err != nil {
		return err
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o700); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	bytes, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Validate checks field formats.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate settings: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), describe(fe)))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "http_url":
		return "must be an http(s) URL"
	case "printascii":
		return "must be printable ASCII"
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}

// Redacted returns a copy safe to print.
func (s Settings) Redacted() Settings {
	s.APIKey = redact(s.APIKey)
	s.MapToken = redact(s.MapToken)
	return s
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}

func (s Settings) normalized() Settings {
	s.Endpoint = strings.TrimSpace(s.Endpoint)
	s.APIKey = strings.TrimSpace(s.APIKey)
	s.MapToken = strings.TrimSpace(s.MapToken)
	return s
}

// ResolvePath expands path, or the default path when empty.
func ResolvePath(path string) (string, error) {
	return resolvePath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSettingsPath)
	}
	return expandPath(path)
}

// ExpandPath resolves a leading tilde and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
