// Package config loads the YAML configuration for the directory backend.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds every setting the backend reads at startup.
type Config struct {
	HTTPPort      int      `yaml:"HTTP_PORT"`
	DBHost        string   `yaml:"DB_HOST"`
	DBPort        int      `yaml:"DB_PORT"`
	DBUser        string   `yaml:"DB_USER"`
	DBPassword    string   `yaml:"DB_PASSWORD"`
	DBName        string   `yaml:"DB_NAME"`
	DBSSLMode     string   `yaml:"DB_SSLMODE"`
	KafkaBrokers  []string `yaml:"KAFKA_BROKERS"`
	Topic         string   `yaml:"TOPIC"`
	ConsumerGroup string   `yaml:"CONSUMER_GROUP"`
	CORSOrigins   []string `yaml:"CORS_ORIGINS"`
}

// Load reads the config file from CONFIG_PATH, falling back to the default
// in-repo location.
func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("internal", "directory", "config", "config.yaml")
	}
	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
