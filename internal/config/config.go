package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the Postgres connection from environment variables.
func InitDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "reconciliation"),
		getEnv("DB_PORT", "5432"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return db
}

// EngineConfig tunes the matching engine. All values default to the
// thresholds the engine ships with; a config file only needs to list
// the ones it overrides.
type EngineConfig struct {
	SuggestionThreshold int `yaml:"suggestion_threshold"`
	AutoAcceptThreshold int `yaml:"auto_accept_threshold"`
	MaxSuggestions      int `yaml:"max_suggestions"`
}

// DefaultEngineConfig returns the stock engine tuning: suggestions below
// confidence 30 are discarded, matches at 75 or above are auto-accepted,
// and at most 5 suggestions are returned per transaction.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SuggestionThreshold: 30,
		AutoAcceptThreshold: 75,
		MaxSuggestions:      5,
	}
}

// LoadEngineConfig reads engine tuning from a YAML file, falling back to
// defaults when the file is missing or a field is unset.
func LoadEngineConfig(path string) EngineConfig {
	cfg := DefaultEngineConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("engine config %s unreadable, using defaults: %v", path, err)
		}
		return cfg
	}

	var file EngineConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		log.Printf("engine config %s invalid, using defaults: %v", path, err)
		return cfg
	}

	if file.SuggestionThreshold > 0 {
		cfg.SuggestionThreshold = file.SuggestionThreshold
	}
	if file.AutoAcceptThreshold > 0 {
		cfg.AutoAcceptThreshold = file.AutoAcceptThreshold
	}
	if file.MaxSuggestions > 0 {
		cfg.MaxSuggestions = file.MaxSuggestions
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
