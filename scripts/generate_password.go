// Prints a bcrypt hash for a password using the configured BCRYPT_COST, for
// creating accounts directly in the database.
package main

import (
	"fmt"
	"os"

	"github.com/your-org/beauty-store/internal/config"
	"github.com/your-org/beauty-store/internal/pkg/auth"
	"github.com/your-org/beauty-store/internal/pkg/logger"
)

func main() {
	log := logger.New(config.LoggingConfig{Level: "info", Format: "text"}, os.Stderr)

	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/generate_password.go <password>")
	}
	password := os.Args[1]

	cfg, err := config.LoadClient()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	passwords := auth.NewPasswordManager(cfg)
	if err := passwords.ValidatePassword(password); err != nil {
		log.WithError(err).Fatal("Password rejected")
	}

	hash, err := passwords.HashPassword(password)
	if err != nil {
		log.WithError(err).Fatal("Error generating hash")
	}
	if err := passwords.VerifyPassword(password, hash); err != nil {
		log.WithError(err).Fatal("Hash verification failed")
	}

	log.WithField("cost", cfg.Security.BcryptCost).Info("Hash verified")
	fmt.Println(hash)
}
