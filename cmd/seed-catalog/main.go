package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/config"
	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/internal/repository/postgres"
	"github.com/shyakx/akazuba-florist/internal/storage"
)

type seedCategory struct {
	name        string
	slug        string
	description string
	products    []seedProduct
}

type seedProduct struct {
	name        string
	description string
	price       float64
	stock       int
}

var catalog = []seedCategory{
	{
		name:        "Flowers",
		slug:        "flowers",
		description: "Fresh bouquets and arrangements",
		products: []seedProduct{
			{"Red Rose Bouquet", "A dozen fresh red roses", 25000, 20},
			{"Mixed Seasonal Bouquet", "Florist's choice of the season's best", 20000, 15},
			{"White Lily Arrangement", "Elegant white lilies in a vase", 35000, 10},
			{"Sunflower Bundle", "Bright sunflowers, wrapped", 15000, 25},
		},
	},
	{
		name:        "Perfumes",
		slug:        "perfumes",
		description: "Signature fragrances",
		products: []seedProduct{
			{"Rose Garden Eau de Parfum", "Floral fragrance, 50ml", 45000, 12},
			{"Citrus Bloom", "Fresh citrus notes, 50ml", 40000, 18},
			{"Evening Jasmine", "Warm jasmine fragrance, 100ml", 60000, 8},
		},
	},
	{
		name:        "Gift Baskets",
		slug:        "gift-baskets",
		description: "Curated gift combinations",
		products: []seedProduct{
			{"Celebration Basket", "Flowers, perfume and chocolates", 120000, 5},
			{"Thinking of You Basket", "Small bouquet with a scented candle", 55000, 7},
		},
	},
}

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
	ctx := context.Background()

	for _, sc := range catalog {
		categoryID, err := ensureCategory(ctx, repos, sc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed category %s: %v\n", sc.name, err)
			os.Exit(1)
		}

		for _, sp := range sc.products {
			product := &domain.Product{
				ID:            uuid.New(),
				CategoryID:    categoryID,
				Name:          sp.name,
				Description:   sp.description,
				Price:         sp.price,
				ImageURL:      storage.PlaceholderImageURL,
				StockQuantity: sp.stock,
				IsActive:      true,
				CreatedAt:     time.Now(),
				UpdatedAt:     time.Now(),
			}
			if err := repos.Product.Create(ctx, product); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to seed product %s: %v\n", sp.name, err)
				os.Exit(1)
			}
			fmt.Printf("  + %s (%s)\n", sp.name, sc.name)
		}
	}

	fmt.Println("Catalog seeded.")
}

// ensureCategory reuses a category with the same slug if one already exists
func ensureCategory(ctx context.Context, repos *repository.Repositories, sc seedCategory) (uuid.UUID, error) {
	existing, err := repos.Category.List(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	for _, cat := range existing {
		if cat.Slug == sc.slug {
			return cat.ID, nil
		}
	}

	category := &domain.Category{
		ID:          uuid.New(),
		Name:        sc.name,
		Description: sc.description,
		Slug:        sc.slug,
		CreatedAt:   time.Now(),
	}
	if err := repos.Category.Create(ctx, category); err != nil {
		return uuid.Nil, err
	}
	fmt.Printf("Category created: %s\n", sc.name)
	return category.ID, nil
}
