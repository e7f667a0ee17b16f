package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"inventory-tracker/internal/config"
	applog "inventory-tracker/internal/log"
	"inventory-tracker/internal/model"
	"inventory-tracker/internal/repository"
	"inventory-tracker/pkg/database"
)

type Config struct {
	Postgres config.Postgres
	Log      config.Log
}

// reset-password sets a user's password directly in the database and
// invalidates their current session.
func main() {
	email := flag.String("email", "admin@example.com", "email of the user to reset")
	password := flag.String("password", "", "new password (min 6 characters)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.New[Config]()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	log := applog.NewSlogLogger(cfg.Log)

	if len(*password) < 6 {
		log.Error("Password must be at least 6 characters")
		os.Exit(2)
	}

	db, err := database.Connect(cfg.Postgres, log)
	if err != nil {
		log.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	users := repository.NewUserRepo(db)

	user, err := users.FindByEmail(ctx, *email)
	if err != nil {
		log.Error("User not found", slog.String("email", *email), slog.Any("error", err))
		os.Exit(1)
	}

	var hashed model.User
	if err := hashed.SetPassword(*password); err != nil {
		log.Error("Failed to hash password", slog.Any("error", err))
		os.Exit(1)
	}
	if err := users.UpdatePassword(ctx, user.ID, hashed.Password); err != nil {
		log.Error("Failed to update password", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("Password reset", slog.String("email", user.Email))
}
