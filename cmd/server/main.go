package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"annonces-api/internal/config"
	apphttp "annonces-api/internal/http"
	"annonces-api/internal/repository/sqlstore"
	"annonces-api/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("unknown log level %q, keeping %s", cfg.Log.Level, logger.GetLevel())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlstore.Open(sqlstore.Options{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN})
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	sectorRepo := sqlstore.NewSectorRepository(db)
	userRepo := sqlstore.NewUserRepository(db)
	postingRepo := sqlstore.NewPostingRepository(db)

	if err := sectorRepo.Init(ctx); err != nil {
		logger.Fatalf("init sector repository: %v", err)
	}
	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := postingRepo.Init(ctx); err != nil {
		logger.Fatalf("init posting repository: %v", err)
	}

	sectorService := service.NewSectorService(sectorRepo)
	userService := service.NewUserService(userRepo, sectorService)
	postingService := service.NewPostingService(postingRepo, sectorService)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, postingService, logger, apphttp.Options{
		BasePath:    cfg.Server.BasePath,
		CORSOrigins: cfg.CORS.Origins,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s (%s store)", cfg.Server.Addr, db.Driver())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
