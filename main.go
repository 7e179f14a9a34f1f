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

	"github.com/gin-gonic/gin"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/albertaizhang/portfolio/internal/analytics"
	"github.com/albertaizhang/portfolio/internal/catalog"
	"github.com/albertaizhang/portfolio/internal/config"
	"github.com/albertaizhang/portfolio/internal/contact"
	"github.com/albertaizhang/portfolio/internal/logging"
	"github.com/albertaizhang/portfolio/internal/web"
)

const cleanupInterval = 24 * time.Hour

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "portfolio: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	portfolio, err := catalog.Load()
	if err != nil {
		return err
	}
	for _, problem := range portfolio.Validate() {
		logger.Warn("Portfolio data problem", zap.Error(problem))
	}
	logger.Info("Portfolio loaded",
		zap.Int("projects", len(portfolio.Projects)),
		zap.Int("tags", len(catalog.TagUniverse(portfolio.Projects))),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := web.Options{
		Portfolio: portfolio,
		Logger:    logger,
		Admin:     web.AdminCredentials{Username: cfg.Admin.Username, Password: cfg.Admin.Password},
		Retention: cfg.Analytics.Retention,
		StaticDir: cfg.StaticDir,
	}

	var store *analytics.Store
	if cfg.Analytics.Enabled() {
		store, err = analytics.Open(ctx, cfg.Analytics.DatabasePath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		opts.Analytics = store
		logger.Info("Privacy: visitor tracking enabled with hashed IP addresses",
			zap.String("database", cfg.Analytics.DatabasePath),
			zap.Duration("retention", cfg.Analytics.Retention),
		)
	} else {
		logger.Info("Visitor tracking disabled")
	}

	mailer := contact.NewSMTPMailer(contact.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		To:       cfg.SMTP.To,
	}, logger)
	if mailer.Configured() {
		opts.Mailer = mailer
	} else {
		logger.Warn("SMTP credentials not configured, contact form disabled")
	}

	if cfg.Admin.Enabled() {
		logger.Info("Admin access available at /admin/login")
	}

	srv, err := web.New(opts)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg conc.WaitGroup
	if store != nil && cfg.Analytics.Retention > 0 {
		wg.Go(func() { runCleanup(ctx, store, cfg.Analytics.Retention, logger) })
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			stop()
			wg.Wait()
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	stop()
	wg.Wait()
	srv.Close()
	return nil
}

// runCleanup drops visits older than retention at startup and then daily.
func runCleanup(ctx context.Context, store *analytics.Store, retention time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		removed, err := store.Cleanup(ctx, retention)
		switch {
		case err != nil && ctx.Err() == nil:
			logger.Error("Privacy cleanup failed", zap.Error(err))
		case removed > 0:
			logger.Info("Privacy cleanup removed old visitor records", zap.Int64("removed", removed))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
