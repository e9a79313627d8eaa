package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yamdb/database"
	"yamdb/internal/app"
	"yamdb/internal/config"
	"yamdb/internal/logging"
	"yamdb/internal/microservices/http-api/handler"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := logging.New(cfg)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := app.OpenDatabase(cfg, logger)
	if err != nil {
		logger.Error("database_init_failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender, rdb, err := app.NewMailSender(ctx, cfg, logger)
	if err != nil {
		logger.Error("mail_outbox_init_failed", "error", err)
		os.Exit(1)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	services, err := app.NewServices(cfg, app.NewRepositories(db), sender)
	if err != nil {
		logger.Error("service_init_failed", "error", err)
		os.Exit(1)
	}

	router := handler.NewRouter(handler.RouterConfig{
		RequestTimeout: cfg.RequestTimeout,
		AuthRateLimit:  cfg.AuthRateLimit,
		AuthRateBurst:  cfg.AuthRateBurst,
		AccessLog:      true,
	}, services)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_api_server", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		logger.Error("server_error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
		return
	}
	logger.Info("server_stopped_gracefully")
}
