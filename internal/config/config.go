// Package config provides configuration loading and validation for the
// server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values fall back to environment variables
// and then to built-in defaults.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty uses in-memory storage

	// Auth
	APIPasswordHash    string `json:"api_password_hash,omitempty"`    // bcrypt hash of the login password
	JWTSecret          string `json:"jwt_secret,omitempty"`           // HMAC signing secret
	JWTExpirationHours int    `json:"jwt_expiration_hours,omitempty"` // token lifetime

	// Collaborators
	GeminiAPIKey  string `json:"gemini_api_key,omitempty"` // Gemini API key for tailoring
	GeminiModel   string `json:"gemini_model,omitempty"`   // Gemini model name
	DocServiceURL string `json:"doc_service_url,omitempty"`

	// Behavior
	DraftDebounceMs int  `json:"draft_debounce_ms,omitempty"` // autosave debounce window
	Verbose         bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Used as the defaults
// layer under a config file, so empty values stay empty.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		APIPasswordHash: os.Getenv("API_PASSWORD_HASH"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     os.Getenv("GEMINI_MODEL"),
		DocServiceURL:   os.Getenv("DOC_SERVICE_URL"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if hours, err := strconv.Atoi(os.Getenv("JWT_EXPIRATION_HOURS")); err == nil {
		cfg.JWTExpirationHours = hours
	}
	if ms, err := strconv.Atoi(os.Getenv("DRAFT_DEBOUNCE_MS")); err == nil {
		cfg.DraftDebounceMs = ms
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.JWTExpirationHours < 0 {
		return fmt.Errorf("config error: 'jwt_expiration_hours' must be non-negative")
	}
	if c.DraftDebounceMs < 0 {
		return fmt.Errorf("config error: 'draft_debounce_ms' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults, then with built-in fallbacks applied.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIPasswordHash == "" {
		result.APIPasswordHash = defaults.APIPasswordHash
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.GeminiModel == "" {
		result.GeminiModel = defaults.GeminiModel
	}
	if result.DocServiceURL == "" {
		result.DocServiceURL = defaults.DocServiceURL
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Port == 0 {
		result.Port = 8080
	}
	if result.JWTExpirationHours == 0 {
		result.JWTExpirationHours = defaults.JWTExpirationHours
	}
	if result.JWTExpirationHours == 0 {
		result.JWTExpirationHours = 24
	}
	if result.DraftDebounceMs == 0 {
		result.DraftDebounceMs = defaults.DraftDebounceMs
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
