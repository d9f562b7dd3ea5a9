package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/config"
	"github.com/shyakx/akazuba-florist/internal/mailer"
	"github.com/shyakx/akazuba-florist/internal/repository/postgres"
)

func main() {
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

	orders, err := repos.Order.List(context.Background(), nil, 100, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list orders: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d order(s):\n\n", len(orders))
	for _, order := range orders {
		fmt.Printf("%s  %-10s  %-25s  %s\n",
			order.OrderNumber,
			order.Status,
			order.CustomerName,
			mailer.FormatRWF(order.Total),
		)
	}
}
