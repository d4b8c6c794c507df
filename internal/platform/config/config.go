package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// DatabaseURL enables the PostgreSQL-backed currency store when set.
	// When empty the registry seeds from the embedded ISO dataset only.
	DatabaseURL string

	// SeedFromDB selects the database as the registry's seed source instead
	// of the embedded dataset. Requires DatabaseURL.
	SeedFromDB bool

	// SyncSeedToDB populates an empty database from the embedded dataset at
	// startup. Requires DatabaseURL.
	SyncSeedToDB bool

	// MutationRateLimit is a ulule/limiter rate string ("30-M") applied to
	// registry mutation endpoints.
	MutationRateLimit string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SEED_FROM_DB", false)
	viper.SetDefault("SYNC_SEED_TO_DB", false)
	viper.SetDefault("MUTATION_RATE_LIMIT", "30-M")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:              viper.GetString("PORT"),
		IsProduction:      viper.GetBool("IS_PRODUCTION"),
		DatabaseURL:       viper.GetString("PGSQL_URL"),
		SeedFromDB:        viper.GetBool("SEED_FROM_DB"),
		SyncSeedToDB:      viper.GetBool("SYNC_SEED_TO_DB"),
		MutationRateLimit: viper.GetString("MUTATION_RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" && (cfg.SeedFromDB || cfg.SyncSeedToDB) {
		log.Println("Warning: SEED_FROM_DB/SYNC_SEED_TO_DB set without PGSQL_URL; falling back to the embedded dataset.")
		cfg.SeedFromDB = false
		cfg.SyncSeedToDB = false
	}

	return cfg, nil
}
