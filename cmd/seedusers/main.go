// Command seedusers provisions user rows out-of-band. The API has no signup
// endpoint: an operator runs this to mint a user and hand out the generated
// secret key.
//
//	seedusers -name "Jane Doe" [-type admin]
package main

import (
	"flag"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/trackline-dev/trackline/db"
	"github.com/trackline-dev/trackline/internal/logger"
	"github.com/trackline-dev/trackline/internal/models"
	"github.com/trackline-dev/trackline/internal/store"
	"go.uber.org/zap"
)

func main() {
	name := flag.String("name", "", "display name for the new user")
	userType := flag.String("type", models.UserTypeRegular, "user type: admin or user")
	flag.Parse()

	_ = godotenv.Load()

	logger.Init()
	log := logger.Get()
	defer log.Sync()

	if *name == "" {
		log.Fatal("-name is required")
	}

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

	user, err := store.CreateUser(store.NewUser{
		SecretKey: uuid.NewString(),
		UserName:  *name,
		UserType:  *userType,
	})

	if err != nil {
		log.Fatal("Failed to create user", zap.Error(err))
	}

	log.Info("User created",
		zap.Uint("id", user.ID),
		zap.String("user_name", user.UserName),
		zap.String("user_type", user.UserType),
		zap.String("secret_key", user.SecretKey),
	)
}
