package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contesthq/contest-backend/api/routes"
	"github.com/contesthq/contest-backend/internal/config"
	"github.com/contesthq/contest-backend/internal/distribution"
	"github.com/contesthq/contest-backend/internal/handlers"
	mongorepo "github.com/contesthq/contest-backend/internal/repositories/mongodb"
	"github.com/contesthq/contest-backend/internal/services"
	"github.com/contesthq/contest-backend/pkg/mongodb"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; environment variables still win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogger(cfg.LogLevel)

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	contestRepo := mongorepo.NewContestRepository(db)
	prizeRepo := mongorepo.NewPrizeRepository(db)
	winRepo := mongorepo.NewWinRepository(db)
	adminUserRepo := mongorepo.NewAdminUserRepository(db)

	// Engine and services
	engine := distribution.NewEngine(winRepo, cfg.Engine.TrafficMultiplier, slog.Default())
	playService := services.NewPlayService(contestRepo, prizeRepo, winRepo, engine, cfg.Engine.UserMaxWinsPerDay)
	statsService := services.NewStatsService(contestRepo, prizeRepo, winRepo)
	contestService := services.NewContestService(contestRepo, prizeRepo)
	authService := services.NewAuthService(adminUserRepo, cfg)

	// Handlers
	deps := routes.HandlerDependencies{
		Play:    handlers.NewPlayHandler(playService),
		Stats:   handlers.NewStatsHandler(statsService),
		Contest: handlers.NewContestHandler(contestService),
		Auth:    handlers.NewAuthHandler(authService),
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	slog.Info("Server starting", "port", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	slog.Info("Server exiting")
}

// setupLogger installs a JSON slog handler at the configured level
func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
