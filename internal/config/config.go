// Package config reads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"food-match-service/internal/matching"
	"food-match-service/internal/routing"
)

type Config struct {
	Port        string
	DatabaseURL string // empty selects the in-memory store
	SeedPath    string

	NATSURL           string // empty disables NATS event publishing
	NATSSubjectPrefix string

	// Matches scoring below this are refused; 0 disables the gate.
	MinScore float64

	Matching matching.Config
	Routing  routing.Config
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:              Get("PORT", "8080"),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SeedPath:          Get("SEED_PATH", "data/seeds/belagavi.json"),
		NATSURL:           strings.TrimSpace(os.Getenv("NATS_URL")),
		NATSSubjectPrefix: Get("NATS_SUBJECT_PREFIX", "foodmatch"),
		Matching:          matching.DefaultConfig(),
		Routing:           routing.Config{Strategy: Get("ROUTING_STRATEGY", routing.GreedyStrategyName)},
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"MIN_MATCH_SCORE", &cfg.MinScore},
		{"MATCH_WEIGHT_FOOD", &cfg.Matching.Weights.Food},
		{"MATCH_WEIGHT_QUANTITY", &cfg.Matching.Weights.Quantity},
		{"MATCH_WEIGHT_DISTANCE", &cfg.Matching.Weights.Distance},
		{"MATCH_WEIGHT_FRESHNESS", &cfg.Matching.Weights.Freshness},
		{"MATCH_FOOD_MISMATCH_SCORE", &cfg.Matching.FoodMismatchScore},
		{"MATCH_DISTANCE_FALLOFF_KM", &cfg.Matching.DistanceFalloffKm},
	}
	for _, f := range floats {
		if err := getFloat(f.key, f.dst); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	if cfg.MinScore < 0 || cfg.MinScore > 1 {
		return nil, fmt.Errorf("load config: MIN_MATCH_SCORE must be within [0,1], got %v", cfg.MinScore)
	}
	if err := cfg.Matching.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// Get returns the value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getFloat leaves dst untouched when key is unset.
func getFloat(key string, dst *float64) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("parse %s=%q: %w", key, raw, err)
	}
	*dst = v
	return nil
}
