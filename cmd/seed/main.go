package main

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/shinyyama/skillswap-backend/internal/config"
	"github.com/shinyyama/skillswap-backend/internal/db"
	"github.com/shinyyama/skillswap-backend/internal/repository"
	log "github.com/sirupsen/logrus"
)

type seedFlags struct {
	ForceSeed bool `env:"FORCE_SEED" envDefault:"false"`
	Migrate   bool `env:"SEED_MIGRATE" envDefault:"true"`
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	var flags seedFlags
	if err := env.Parse(&flags); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("sql db: %w", err)
	}
	defer sqlDB.Close()

	if flags.Migrate {
		if err := db.Migrate(gdb); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	n, err := repository.NewCategoryRepository(gdb).SeedDefaults(ctx, flags.ForceSeed)
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if n == 0 {
		log.Printf("skill categories already present; nothing inserted (set FORCE_SEED=true to add missing defaults)")
		return nil
	}
	log.Printf("seeded %d skill categories", n)
	return nil
}
