package main

import (
	"context"
	"log"
	"os"

	"crowdfund_webapp/internal/db"
	"crowdfund_webapp/internal/domain"
	"crowdfund_webapp/internal/repository"
	"crowdfund_webapp/internal/service"

	"github.com/joho/godotenv"
)

// Seeds the platform admin account from ADMIN_EMAIL / ADMIN_PASSWORD.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("lookup admin failed: %v", err)
	}
	if existing != nil {
		log.Printf("admin already exists id=%s\n", existing.ID)
		return
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password failed: %v", err)
	}

	admin := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Administrator",
		IsAdmin:      true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		log.Fatalf("create admin failed: %v", err)
	}

	log.Printf("admin created id=%s email=%s\n", admin.ID, admin.Email)
}
