package main

import (
	"flag"
	"os"

	"github.com/backoffice/backend/internal/infrastructure/config"
	"github.com/backoffice/backend/internal/infrastructure/logger"
	"github.com/backoffice/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Applies the database schema for all persistence models. Safe to run
// repeatedly; only missing tables, columns and indexes are created.
func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", zap.Error(err))
		os.Exit(1)
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	log.Info("Running schema migration",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	if err := db.Migrate(); err != nil {
		log.Error("Schema migration failed", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Schema migration complete")
}
