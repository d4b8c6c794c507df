package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/masoo/money/internal/adapters/database/pgsql"
	"github.com/masoo/money/internal/adapters/seed"
	"github.com/masoo/money/internal/core/ports/repositories"
	"github.com/masoo/money/internal/core/services"
	"github.com/masoo/money/internal/dto"
	"github.com/masoo/money/internal/handlers"
	"github.com/masoo/money/internal/middleware"
	"github.com/masoo/money/internal/platform/config"
	"github.com/masoo/money/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := dto.RegisterCustomValidations(); err != nil {
		logger.Error("Failed to register validations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	embedded := seed.NewEmbeddedSource()
	var source repositories.CurrencySource = embedded

	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer dbPool.Close()
		logger.Info("Database connection pool established.")

		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Error("Failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		store := pgsql.NewPgxCurrencyStore(dbPool)
		if cfg.SyncSeedToDB {
			if err := store.SyncFromSeed(ctx, embedded); err != nil {
				logger.Error("Failed to sync seed data to database", slog.String("error", err.Error()))
				os.Exit(1)
			}
			logger.Info("Seed data synced to database.")
		}
		if cfg.SeedFromDB {
			source = store
		}
	}

	registry, err := services.NewCurrencyRegistry(ctx, source)
	if err != nil {
		logger.Error("Failed to build currency registry", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Currency registry seeded", slog.Int("count", registry.Count()))

	mutationLimiter, err := middleware.NewMutationLimiter(cfg.MutationRateLimit)
	if err != nil {
		logger.Error("Failed to build rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLogging(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/health", handlers.GetHealth)

	v1 := r.Group("/api/v1")
	handlers.RegisterCurrencyRoutes(v1, registry, middleware.RateLimit(mutationLimiter))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	// Open a temporary database/sql connection for migrate, using the
	// pgx stdlib driver to stay compatible with the main pool.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
