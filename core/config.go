package core

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the API process.
type Config struct {
	Port        string `yaml:"port"`          // HTTP(S) listen port (e.g., "3000")
	TLSCertFile string `yaml:"tls_cert_file"` // PEM certificate; empty disables TLS
	TLSKeyFile  string `yaml:"tls_key_file"`  // PEM private key; empty disables TLS
	LogDir      string `yaml:"log_dir"`       // Directory to write application logs

	MongoURL      string `yaml:"mongo_url"`      // MongoDB connection string
	MongoDatabase string `yaml:"mongo_database"` // Database holding the user collection

	RedisURL string `yaml:"redis_url"` // Redis URL; empty disables the login limiter

	TokenSecret   string `yaml:"token_secret"`    // JWT signing key, process lifetime scoped
	TokenTTLHours int    `yaml:"token_ttl_hours"` // Validity window of issued tokens

	LoginWindowSeconds int `yaml:"login_window_seconds"` // Login limiter counting window
	LoginMaxAttempts   int `yaml:"login_max_attempts"`   // Attempts allowed per window
}

// Load populates Config from environment variables with sane defaults.
// When CONFIG_FILE points to a YAML file, its values act as defaults that
// individual environment variables still override.
func Load() (Config, error) {
	cfg := Config{
		Port:               "3000",
		LogDir:             "/var/log/users-api",
		MongoURL:           "mongodb://localhost:27017",
		MongoDatabase:      "apirest",
		TokenSecret:        "change-this-token-secret",
		TokenTTLHours:      336, // 14 days
		LoginWindowSeconds: 60,
		LoginMaxAttempts:   10,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Port = firstNonEmpty(os.Getenv("PORT"), cfg.Port)
	cfg.TLSCertFile = firstNonEmpty(os.Getenv("TLS_CERT_FILE"), cfg.TLSCertFile)
	cfg.TLSKeyFile = firstNonEmpty(os.Getenv("TLS_KEY_FILE"), cfg.TLSKeyFile)
	cfg.LogDir = firstNonEmpty(os.Getenv("LOG_DIR"), cfg.LogDir)
	cfg.MongoURL = firstNonEmpty(os.Getenv("MONGODB_URL"), os.Getenv("DB"), cfg.MongoURL)
	cfg.MongoDatabase = firstNonEmpty(os.Getenv("MONGODB_DATABASE"), cfg.MongoDatabase)
	cfg.RedisURL = firstNonEmpty(os.Getenv("REDIS_URL"), cfg.RedisURL)
	cfg.TokenSecret = firstNonEmpty(os.Getenv("TOKEN_SECRET"), cfg.TokenSecret)
	cfg.TokenTTLHours = intFromEnv("TOKEN_TTL_HOURS", cfg.TokenTTLHours)
	cfg.LoginWindowSeconds = intFromEnv("LOGIN_WINDOW_SECONDS", cfg.LoginWindowSeconds)
	cfg.LoginMaxAttempts = intFromEnv("LOGIN_MAX_ATTEMPTS", cfg.LoginMaxAttempts)

	return cfg, nil
}

// TokenTTL returns the token validity window as a duration.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// LoginWindow returns the limiter counting window as a duration.
func (c Config) LoginWindow() time.Duration {
	return time.Duration(c.LoginWindowSeconds) * time.Second
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// intFromEnv reads an int from env var name, falling back to defaultVal when empty or invalid.
func intFromEnv(name string, defaultVal int) int {
	if v := os.Getenv(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
