package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all FoodBridge configuration.
type Config struct {
	Port        string        `yaml:"port"`
	PostgresURL string        `yaml:"postgres_url"`
	JWTSecret   string        `yaml:"jwt_secret"`
	SessionTTL  time.Duration `yaml:"session_ttl"`
	CORSOrigins []string      `yaml:"cors_origins"`
	LogLevel    string        `yaml:"log_level"`

	SMTP      SMTPConfig      `yaml:"smtp"`
	Embedding EmbeddingConfig `yaml:"embedding"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
	UseSSL   bool   `yaml:"use_ssl"`
}

// Enabled reports whether enough is configured to actually send mail.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

// EmbeddingConfig selects the provider used for menu suggestions.
// Provider is "openai", "gemini" or empty (disabled).
type EmbeddingConfig struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

func Default() *Config {
	return &Config{
		Port:        "8080",
		SessionTTL:  24 * time.Hour,
		CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		LogLevel:    "info",
		SMTP: SMTPConfig{
			Port:     587,
			FromName: "FoodBridge",
		},
	}
}

// Load reads .env (if present), then the optional YAML file named by
// FOODBRIDGE_CONFIG, then applies environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("FOODBRIDGE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.Port, "PORT")
	setString(&c.PostgresURL, "POSTGRES_URL")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		c.SessionTTL = ttl
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}

	setString(&c.SMTP.Host, "SMTP_HOST")
	setString(&c.SMTP.Username, "SMTP_USERNAME")
	setString(&c.SMTP.Password, "SMTP_PASSWORD")
	setString(&c.SMTP.From, "SMTP_FROM")
	setString(&c.SMTP.FromName, "SMTP_FROM_NAME")
	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
		c.SMTP.Port = port
	}
	if v := os.Getenv("SMTP_USE_SSL"); v != "" {
		c.SMTP.UseSSL = v == "true" || v == "1"
	}

	setString(&c.Embedding.Provider, "EMBEDDING_PROVIDER")
	setString(&c.Embedding.Model, "EMBEDDING_MODEL")
	// Provider-specific keys only apply to their own provider.
	switch c.Embedding.Provider {
	case "openai":
		setString(&c.Embedding.APIKey, "OPENAI_API_KEY")
	case "gemini":
		setString(&c.Embedding.APIKey, "GEMINI_API_KEY")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
