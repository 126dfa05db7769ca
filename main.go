package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"hypotest/adapters/ingest"
	"hypotest/adapters/postgres"
	"hypotest/app"
	"hypotest/internal"
	"hypotest/internal/api"
	"hypotest/internal/config"
	"hypotest/internal/errors"
	"hypotest/ports"
)

// initDatabase connects to PostgreSQL and runs the schema migration.
// Returns nil when no DATABASE_URL is configured; the application then
// runs without persistence.
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	if appConfig.Database.URL == "" {
		return nil, nil
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := postgres.Migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	var repo ports.ResultRepository
	if db != nil {
		defer db.Close()
		repo = postgres.NewResultRepository(db)
		logger.Info("result persistence enabled")
	} else {
		logger.Warn("DATABASE_URL not set, results will not be persisted")
	}

	tests := app.NewTestService(repo, logger)
	sweeps := app.NewSweepService(logger)

	// Eagerly load the configured input table, if any, to fail fast on
	// a bad path before serving requests.
	if appConfig.Data.InputFile != "" {
		table, err := ingest.NewDataReader(appConfig.Data.InputFile).Read()
		if err != nil {
			log.Fatalf("Failed to read input file: %v", err)
		}
		logger.Info("loaded %s: %d columns, %d rows", table.Name, len(table.Columns), table.Rows)
	}

	server := api.NewServer(tests, sweeps, repo, appConfig.Stats, logger)
	if err := server.ListenAndServe(appConfig.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
