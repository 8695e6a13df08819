/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the timesheet engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration (.env supported for local dev)
  2. Initialize SQLite store
  3. Create API handler with dependencies
  4. Configure HTTP router
  5. Start server with graceful shutdown

CONFIGURATION:
  SERVER_PORT        HTTP server port (default: 8080)
  DATABASE_PATH      SQLite database path (default: timesheets.db,
                     ":memory:" for an in-memory database)
  LOG_LEVEL          logrus level (default: info)
  DEFAULT_BASE_RATE  Fallback hourly rate when no rate card applies
                     (default: 15.0)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit
*/
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/timesheet-engine/api"
	"github.com/warp/timesheet-engine/config"
	"github.com/warp/timesheet-engine/store/sqlite"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()

	handler := api.NewHandler(store, log)
	handler.BaseRate = decimal.NewFromFloat(cfg.DefaultBaseRate)

	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port": cfg.ServerPort,
			"db":   cfg.DatabasePath,
		}).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}
