package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/silverbirch/bunking/internal/config"
	"github.com/silverbirch/bunking/pkg/handlers"
	"github.com/silverbirch/bunking/pkg/postgres"
	"github.com/silverbirch/bunking/pkg/utils/logging"
)

func main() {
	// Load .env if it exists
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	env := os.Getenv("BUNKING_ENV")
	if env == "" {
		env = "prod"
	}

	logger, err := logging.InitLogger(env)
	if err != nil {
		log.Fatalf("could not initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	database, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.RunMigrations(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Bunking API",
			"version": "1.0.0",
		})
	})

	h := &handlers.Handler{Cfg: cfg, Database: database, Logger: logger}
	h.Register(r)

	addr := cfg.ServerAddr()
	logger.Info("Server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}
