package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/nguyentranbao-ct/shop-bot/internal/config"
	"github.com/nguyentranbao-ct/shop-bot/internal/models"
	"github.com/nguyentranbao-ct/shop-bot/internal/repo/mongodb"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a sample catalog into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := config.MustLoad()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := mongodb.NewConnection(ctx, conf.Database.URI, conf.Database.Database)
		if err != nil {
			return err
		}
		defer db.Close(ctx)

		categories := []any{
			models.Category{ID: 1, Name: "Coffee"},
			models.Category{ID: 2, Name: "Tea"},
			models.Category{ID: 3, Name: "Accessories"},
		}
		products := []any{
			models.Product{ID: 1, CategoryID: 1, Name: "Espresso Blend", Description: "Dark roast, 250g", Price: money("240.00")},
			models.Product{ID: 2, CategoryID: 1, Name: "Single Origin Ethiopia", Description: "Light roast, 250g", Price: money("310.00")},
			models.Product{ID: 3, CategoryID: 2, Name: "Sencha", Description: "Japanese green tea, 100g", Price: money("180.50")},
			models.Product{ID: 4, CategoryID: 3, Name: "Ceramic Drip V60", Description: "Size 02", Price: money("450.00")},
		}

		if _, err := db.Database.Collection(models.Category{}.CollectionName()).InsertMany(ctx, categories); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		if _, err := db.Database.Collection(models.Product{}.CollectionName()).InsertMany(ctx, products); err != nil {
			return fmt.Errorf("seed products: %w", err)
		}

		fmt.Printf("seeded %d categories and %d products\n", len(categories), len(products))
		return nil
	},
}

func money(s string) models.Money {
	return models.NewMoney(decimal.RequireFromString(s))
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
