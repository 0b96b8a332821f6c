package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caviste_server/api"
	"caviste_server/config"
	"caviste_server/database"
	"caviste_server/services"
	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var logger *gecho.Logger
var cfg *structs.Config

// init function to load environment variables and initialize logger and database
func init() {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}

	if err := database.Initialize(); err != nil {
		logger.Fatal("Failed to initialize database", gecho.Field("error", err))
	}
}

func main() {
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient = services.NewRedisClient(cfg.Cache)
	} else {
		logger.Info("Cache disabled, rate limits are counted in process")
	}

	sessionStore := services.NewSessionStore(cfg, config.IsProduction())
	sm := services.NewServiceManager(logger, cfg, database.GetInstance(), redisClient, sessionStore)

	srv := &http.Server{
		Addr:           cfg.Server.Port,
		Handler:        api.App(cfg, sm),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Setup graceful shutdown BEFORE starting the server
	done := setupGracefulShutdown(logger, srv, sm)

	logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", gecho.Field("error", err))
	}
	<-done
}

// setupGracefulShutdown drains in-flight requests on SIGINT/SIGTERM, then
// closes the cache and database. The returned channel closes once that is done.
func setupGracefulShutdown(logger *gecho.Logger, srv *http.Server, sm *services.ServiceManager) <-chan struct{} {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	logger.Info("Graceful shutdown handler initialized")

	go func() {
		defer close(done)
		sig := <-c
		logger.Info("Received shutdown signal", gecho.Field("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown did not complete", gecho.Field("error", err))
		}
		if err := sm.CacheService.Close(); err != nil {
			logger.Warn("Failed to close cache", gecho.Field("error", err))
		}
		if err := database.CloseInstance(); err != nil {
			logger.Warn("Failed to close database", gecho.Field("error", err))
		}
	}()

	return done
}
