package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/trackline-dev/trackline/db"
	"github.com/trackline-dev/trackline/internal/logger"
	"github.com/trackline-dev/trackline/internal/router"
	"go.uber.org/zap"
)

func main() {
	// Missing .env is fine in production where the environment is set directly
	_ = godotenv.Load()

	logger.Init()
	log := logger.Get()
	defer log.Sync()

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	r := router.NewRouter()

	port := os.Getenv("PORT")

	if port == "" {
		port = "4003"
		log.Info("PORT not set, defaulting to 4003")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
