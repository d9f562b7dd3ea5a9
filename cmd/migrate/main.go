package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/shyakx/akazuba-florist/internal/config"
	"github.com/shyakx/akazuba-florist/internal/repository/postgres"
)

func main() {
	// .env is optional; real environments set vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := postgres.RunMigrations(db, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migrations applied successfully!")
}
