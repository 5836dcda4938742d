package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           string `yaml:"port"`
	Environment    string `yaml:"environment"`
	BackendURL     string `yaml:"backend_url"`
	CORSOrigins    string `yaml:"cors_origins"`
	ConversationID string `yaml:"conversation_id"`
	// Debug flags
	Debug bool `yaml:"debug"`
}

// Load resolves configuration once at process start. Precedence, lowest to
// highest: built-in defaults, the optional YAML file named by CONFIG_FILE,
// environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           "3000",
		Environment:    "dev",
		BackendURL:     "http://localhost:8000",
		CORSOrigins:    "http://localhost:3000",
		ConversationID: DefaultConversationID,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.BackendURL = getEnv("BACKEND_URL", cfg.BackendURL)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.ConversationID = getEnv("CONVERSATION_ID", cfg.ConversationID)
	// Debug defaults to true outside production
	cfg.Debug = getEnv("DEBUG", getDefaultDebug(cfg.Environment)) == "true"

	return cfg, nil
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
