package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"annonces-api/internal/config"
	"annonces-api/internal/repository/sqlstore"
	"annonces-api/internal/seed"
	"annonces-api/internal/service"
)

func main() {
	file := flag.String("file", "fixtures.yaml", "path to the YAML seed fixture")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	fx, err := seed.Load(*file)
	if err != nil {
		logger.Fatalf("load fixture: %v", err)
	}

	ctx := context.Background()
	db, err := sqlstore.Open(sqlstore.Options{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN})
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	sectorRepo := sqlstore.NewSectorRepository(db)
	userRepo := sqlstore.NewUserRepository(db)
	if err := sectorRepo.Init(ctx); err != nil {
		logger.Fatalf("init sector repository: %v", err)
	}
	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}

	sectorService := service.NewSectorService(sectorRepo)
	userService := service.NewUserService(userRepo, sectorService)

	users, err := seed.Apply(ctx, fx, sectorService, userService, logger)
	if err != nil {
		logger.Fatalf("seed: %v", err)
	}
	logger.Infof("seeded %d sectors and %d users", len(fx.Sectors), len(users))
}
