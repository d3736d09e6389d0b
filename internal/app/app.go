package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"survey-response-service/internal/config"
	"survey-response-service/internal/handlers"
	"survey-response-service/internal/mailer"
	"survey-response-service/internal/metrics"
	"survey-response-service/internal/server"
	"survey-response-service/internal/service"
	"survey-response-service/internal/store"
)

// Run initializes and starts the application
func Run() error {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	logrus.Info("Starting Survey Response Service")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	st := store.NewFileStore(cfg.Storage.DataFile, m)

	notifier := mailer.NewNotifier(&cfg.SMTP)
	if cfg.SMTP.Configured() {
		logrus.Infof("SMTP transport configured (%s:%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		logrus.Warn("No SMTP transport configured, notifications will be skipped")
	}

	svc := service.NewResponseService(st, notifier, m)

	h := handlers.NewHandlers(svc, &cfg.SMTP)
	router := server.SetupRouter(h)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logrus.Infof("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("HTTP server shutdown error: %v", err)
	}

	logrus.Info("Server stopped gracefully")
	return nil
}
