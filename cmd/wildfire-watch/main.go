package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/emberline/wildfire-watch/internal/api"
	"github.com/emberline/wildfire-watch/internal/assistant"
	"github.com/emberline/wildfire-watch/internal/config"
	"github.com/emberline/wildfire-watch/internal/engine"
	"github.com/emberline/wildfire-watch/internal/firms"
	"github.com/emberline/wildfire-watch/internal/logging"
	"github.com/emberline/wildfire-watch/internal/monitor"
	"github.com/emberline/wildfire-watch/internal/repository"
	"github.com/emberline/wildfire-watch/internal/stream"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := firms.NewClient(cfg.FIRMS.BaseURL, cfg.FIRMS.APIKey, cfg.FIRMS.Product)
	eng := engine.New(feed, cfg.FIRMS.RadiusDegrees)

	// Broadcaster for SSE assessment-change streaming
	broadcaster := stream.NewBroadcaster()

	var mon *monitor.Monitor
	if cfg.Monitor.Enabled {
		mon = monitor.New(cfg, eng, db, broadcaster)
		mon.Start(ctx)
	}

	var asst assistant.Assistant
	if cfg.Assistant.APIKey != "" {
		asst = assistant.New(cfg.Assistant.APIKey, cfg.Assistant.Model, cfg.Assistant.MaxTokens)
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set; assistant endpoint disabled")
	}

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(5)) // 5 req/s global limit

	handler := api.NewHandler(db, eng, broadcaster, asst)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	if mon != nil {
		mon.Stop()
	}
	broadcaster.Close() // Close all SSE streams gracefully

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
