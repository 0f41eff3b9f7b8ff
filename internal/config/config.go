package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/noah-isme/gpa-go-api/internal/grading"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName     string
	AppEnv      string
	AppPort     string
	RedisURL    string
	NatsURL     string
	NatsSubject string
	SessionTTL  time.Duration
	PolicyFile  string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GPA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "GPA Calculator API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("session.ttl", "2h")
	v.SetDefault("nats.subject", "gpa.celebrations")

	ttlString := v.GetString("session.ttl")
	if ttlString == "" {
		ttlString = "2h"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	cfg := Config{
		AppName:     v.GetString("app.name"),
		AppEnv:      v.GetString("app.env"),
		AppPort:     v.GetString("app.port"),
		RedisURL:    v.GetString("redis.url"),
		NatsURL:     v.GetString("nats.url"),
		NatsSubject: v.GetString("nats.subject"),
		SessionTTL:  ttl,
		PolicyFile:  v.GetString("policy.file"),
	}

	return cfg, nil
}

// GradingPolicy returns the grading tables: the compiled-in defaults, or the
// override file when one is configured. The cut points are institutional
// policy, so they are deliberately swappable without a rebuild.
func (c Config) GradingPolicy() (grading.Policy, error) {
	if c.PolicyFile == "" {
		return grading.DefaultPolicy(), nil
	}

	v := viper.New()
	v.SetConfigFile(c.PolicyFile)
	if err := v.ReadInConfig(); err != nil {
		return grading.Policy{}, fmt.Errorf("failed to read policy file: %w", err)
	}

	policy := grading.DefaultPolicy()
	if err := v.Unmarshal(&policy); err != nil {
		return grading.Policy{}, fmt.Errorf("failed to parse policy file: %w", err)
	}

	if err := policy.Validate(); err != nil {
		return grading.Policy{}, fmt.Errorf("invalid grading policy: %w", err)
	}

	return policy, nil
}
