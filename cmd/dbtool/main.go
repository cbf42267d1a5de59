package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"roadside-dispatch-service/internal/adapters/repositories"
	"roadside-dispatch-service/internal/config"
	"roadside-dispatch-service/internal/platform/db"
	"roadside-dispatch-service/internal/platform/logger"
)

// dbtool prepares the provider directory: creates the schema and upserts the
// seed file.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	seedPath := flag.String("seed", cfg.Database.SeedPath, "provider seed JSON file")
	schemaOnly := flag.Bool("schema-only", false, "create the schema without seeding")
	flag.Parse()

	lg, err := logger.New(cfg.Logging.Level, "console")
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	if cfg.Database.URL == "" {
		lg.Fatal("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(context.Background(), cfg.Database.URL)
	if err != nil {
		lg.Fatal("open database", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := initAndSeed(lg, sqlDB, *seedPath, *schemaOnly); err != nil {
		lg.Fatal("dbtool failed", zap.Error(err))
	}
}

func initAndSeed(lg *zap.Logger, sqlDB *sql.DB, seedPath string, schemaOnly bool) error {
	lg.Info("initializing database schema")
	if err := repositories.InitSchema(sqlDB); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	lg.Info("schema ready")

	if schemaOnly {
		return nil
	}

	lg.Info("seeding providers", zap.String("path", seedPath))
	if err := repositories.SeedFromJSON(sqlDB, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	lg.Info("seeding complete")

	return nil
}
