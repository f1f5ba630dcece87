package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/fitness-dashboard/internal/api"
	"alcyxob/fitness-dashboard/internal/config"
	"alcyxob/fitness-dashboard/internal/gateway"
	"alcyxob/fitness-dashboard/internal/logging"
	"alcyxob/fitness-dashboard/internal/repository"
	"alcyxob/fitness-dashboard/internal/repository/mongo"
	"alcyxob/fitness-dashboard/internal/service"
	"alcyxob/fitness-dashboard/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	// --- Configuration ---
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logging.Setup(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.Info("configuration loaded", "address", cfg.Server.Address)

	flushSentry, err := logging.InitSentry(cfg.Sentry.DSN, cfg.Sentry.Environment)
	if err != nil {
		return fmt.Errorf("init sentry: %w", err)
	}
	defer flushSentry()

	csrfKey, err := loadCSRFKey(cfg.Server.CSRFKey)
	if err != nil {
		return err
	}

	// --- Activity log (optional) ---
	var auditRepo repository.AuditRepository = repository.NopAuditRepository{}
	if cfg.Database.URI != "" {
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return fmt.Errorf("connect to MongoDB: %w", err)
		}
		defer func() {
			if err := mongo.DisconnectDB(dbClient); err != nil {
				slog.Error("failed to disconnect MongoDB", "error", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			mongo.EnsureAuditIndexes(ctx, appDB.Collection(mongo.AuditCollectionName))
		}()
		auditRepo = mongo.NewMongoAuditRepository(appDB)
		slog.Info("activity log enabled", "database", cfg.Database.Name)
	} else {
		slog.Info("activity log disabled, database.uri is empty")
	}

	// --- Services ---
	gw := gateway.NewClient(cfg.API.BaseURL, nil)
	slog.Info("using remote API", "base_url", gw.BaseURL())
	authService := service.NewAuthService(gw)
	formService := service.NewFormService(gw, auditRepo)

	// --- HTTP ---
	renderer, err := views.NewRenderer()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(renderer, cfg.Sentry.DSN != "")
	api.SetupRoutes(router, gw, authService, formService, auditRepo, cfg.Server.SecureCookies)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.CSRF(csrfKey, cfg.Server.SecureCookies, cfg.Server.TrustedOrigins)(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("server exited")
	return nil
}

// loadCSRFKey decodes the configured hex key. Without one a random key is
// generated, so form tokens do not survive a restart.
func loadCSRFKey(keyHex string) ([]byte, error) {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return nil, errors.New("server.csrf_key must be 64 hex characters (32 bytes)")
		}
		return key, nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate CSRF key: %w", err)
	}
	slog.Warn("using a random CSRF key; set server.csrf_key for stable form tokens")
	return key, nil
}
