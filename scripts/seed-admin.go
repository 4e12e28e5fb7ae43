package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/eventra-api/config"
	"github.com/eventra-api/database"
	"github.com/eventra-api/models"
	"github.com/eventra-api/repositories"
)

// Seeds the initial admin account. Safe to run repeatedly: seeding is
// skipped when the admin email already has a live account.
func main() {
	config.LoadEnv()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	conn, err := database.NewConnection(config.GetEnv("DATABASE_URL", ""))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	users := repositories.NewUserRepository(conn.DB)
	ctx := context.Background()

	if _, err := users.FindByEmail(ctx, email); err == nil {
		log.Printf("Admin account %s already exists, nothing to do", email)
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		log.Fatalf("Failed to look up admin account: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := models.User{
		Name:     config.GetEnv("ADMIN_NAME", "Administrator"),
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := users.Create(ctx, &admin); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	log.Printf("Admin account %s created successfully", email)
}
