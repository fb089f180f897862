package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Env       string `envconfig:"APP_ENV" default:"development"`
	Port      int    `envconfig:"PORT" default:"4000"`
	DB        DBConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Storage   StorageConfig
	OpenAI    OpenAIConfig
	Redis     RedisConfig
	Retention RetentionConfig
}

// database configuration
type DBConfig struct {
	URI     string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Name    string        `envconfig:"MONGO_DB" default:"intervista"`
	Timeout time.Duration `envconfig:"MONGO_TIMEOUT" default:"10s"`
}

// JWT configuration
type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET" required:"true"`
	TTL    time.Duration `envconfig:"JWT_EXPIRES_IN" default:"168h"` // 7 days
}

// CORS configuration
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// object storage (S3-compatible) configuration
type StorageConfig struct {
	Endpoint        string `envconfig:"S3_ENDPOINT"`
	Bucket          string `envconfig:"S3_BUCKET" default:"intervista-audio"`
	AccessKey       string `envconfig:"S3_ACCESS_KEY"`
	SecretKey       string `envconfig:"S3_SECRET_KEY"`
	UseSSL          bool   `envconfig:"S3_USE_SSL" default:"true"`
	CredentialsFile string `envconfig:"S3_CREDENTIALS_FILE"`
}

// OpenAI configuration, covers both evaluation and speech-to-text
type OpenAIConfig struct {
	APIKey   string        `envconfig:"OPENAI_API_KEY"`
	Model    string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	STTModel string        `envconfig:"STT_MODEL" default:"whisper-1"`
	Timeout  time.Duration `envconfig:"OPENAI_TIMEOUT" default:"30s"`
}

// Redis configuration, optional session read cache
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"REDIS_SESSION_TTL" default:"5m"`
}

// data retention counters, declared for the cleanup job that is not wired yet
type RetentionConfig struct {
	AudioDays      int `envconfig:"RETENTION_DAYS_AUDIO" default:"90"`
	TranscriptDays int `envconfig:"RETENTION_DAYS_TRANSCRIPT" default:"365"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.JWT.TTL < time.Minute {
		return fmt.Errorf("JWT_EXPIRES_IN must be at least 1m")
	}
	if c.DB.URI == "" {
		return fmt.Errorf("MONGO_URI must not be empty")
	}
	if c.Retention.AudioDays < 1 || c.Retention.TranscriptDays < 1 {
		return fmt.Errorf("retention day counters must be positive")
	}
	if len(c.CORS.TrustedOrigins) == 0 {
		return fmt.Errorf("at least one trusted origin must be specified")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GetCORSOrigins returns the list of trusted CORS origins
func (c *Config) GetCORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.TrustedOrigins))
	for _, origin := range c.CORS.TrustedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Env=%s, Port=%d, DB.Name=%s, JWT.TTL=%s, CORS.Origins=%d, "+
		"Storage.Bucket=%s, OpenAI.Model=%s, OpenAI.STTModel=%s, Redis.Addr=%s, "+
		"Retention.AudioDays=%d, Retention.TranscriptDays=%d}",
		c.Env, c.Port, c.DB.Name, c.JWT.TTL, len(c.CORS.TrustedOrigins),
		c.Storage.Bucket, c.OpenAI.Model, c.OpenAI.STTModel, c.Redis.Addr,
		c.Retention.AudioDays, c.Retention.TranscriptDays)
}
