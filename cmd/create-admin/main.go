package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shyakx/akazuba-florist/internal/config"
	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/repository/postgres"
	apperrors "github.com/shyakx/akazuba-florist/pkg/errors"
)

func main() {
	emailFlag := flag.String("email", "", "Admin email address")
	nameFlag := flag.String("name", "", "Admin display name")
	passwordFlag := flag.String("password", "", "Admin password (min 8 characters)")
	flag.Parse()

	email := strings.TrimSpace(strings.ToLower(*emailFlag))
	name := strings.TrimSpace(*nameFlag)
	password := *passwordFlag

	if email == "" || name == "" || password == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/create-admin/main.go --email admin@example.com --name \"Admin\" --password \"secret123\"")
		os.Exit(1)
	}
	if len(password) < 8 {
		fmt.Fprintf(os.Stderr, "Error: password must be at least 8 characters.\n")
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	ctx := context.Background()

	// Existing accounts are promoted instead of duplicated
	existing, err := repos.Profile.GetByEmail(ctx, email)
	if err == nil {
		existing.IsAdmin = true
		if err := repos.Profile.Update(ctx, existing); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to promote profile: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Existing profile %s promoted to admin.\n", email)
		return
	}
	if _, ok := err.(*apperrors.ErrNotFound); !ok {
		fmt.Fprintf(os.Stderr, "Failed to look up profile: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	profile := &domain.Profile{
		ID:           uuid.New(),
		Email:        email,
		FullName:     name,
		PasswordHash: string(hash),
		IsAdmin:      true,
		CreatedAt:    time.Now(),
	}
	if err := repos.Profile.Create(ctx, profile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin profile: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin profile created: %s (%s)\n", email, profile.ID)
}
