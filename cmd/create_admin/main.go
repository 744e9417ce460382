// create_admin provisions the bootstrap administrator account. Administrator
// rights are never granted through self-registration, so this tool is the
// only way the first admin comes into existence.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"hospitaldir/internal/auth"
	"hospitaldir/internal/config"
	"hospitaldir/internal/models"
	"hospitaldir/internal/storage"
)

func main() {
	var (
		configPath string
		username   string
		email      string
		password   string
	)

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&username, "username", "admin", "admin username")
	flag.StringVar(&email, "email", "", "admin email")
	flag.StringVar(&password, "password", "", "admin password")

	flag.Parse()
	if configPath == "" {
		log.Fatal("failed get config path from flags")
	}
	if email == "" || password == "" {
		log.Fatal("email and password are required")
	}

	cfg := config.MustLoadConfig(configPath)

	ctx := context.Background()

	st, err := storage.NewPostgresStorage(ctx, cfg.DbURL)
	if err != nil {
		log.Fatalf("failed to connect to storage: %v", err)
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	userID, err := st.CreateUser(ctx, username, email, passwordHash, models.RoleAdmin)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateIdentity) {
			fmt.Println("admin account already exists, nothing to do")
			return
		}
		log.Fatalf("failed to create admin account: %v", err)
	}

	fmt.Printf("admin account created: %s\n", userID)
}
