package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dukhtravel-jpg/dukh-bot/internal/catalog"
	"github.com/dukhtravel-jpg/dukh-bot/internal/factories"
	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the Postgres catalog with synthetic venues",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if err := runSeed(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// venueWriter is the write side of the catalog the seed command fills.
type venueWriter interface {
	DeleteAll(ctx context.Context) error
	BulkCreate(ctx context.Context, entries []*models.CatalogEntry) error
	Count(ctx context.Context) (int, error)
}

func runSeed(cfg *models.Config) error {
	if cfg.PostgresConnString == "" {
		return fmt.Errorf("postgres_conn_string is not set")
	}

	ctx := context.Background()
	source, err := catalog.NewPostgresSource(ctx, cfg.PostgresConnString)
	if err != nil {
		return err
	}
	defer source.Close()

	return seedVenues(ctx, source, cfg)
}

func seedVenues(ctx context.Context, dest venueWriter, cfg *models.Config) error {
	if cfg.SeedFresh {
		if err := dest.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear venues: %w", err)
		}
		fmt.Println("existing venues removed")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	factory := &factories.VenueFactory{}
	entries := factory.CreateVenues(cfg.SeedVenues, rng)

	bar := progressbar.Default(int64(len(entries)), "seeding venues")
	const batchSize = 20
	for start := 0; start < len(entries); start += batchSize {
		end := start + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := dest.BulkCreate(ctx, entries[start:end]); err != nil {
			return fmt.Errorf("failed to insert venues: %w", err)
		}
		bar.Add(end - start)
	}

	count, err := dest.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("catalog now holds %d venues\n", count)
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().Int("seed-venues", 100, "Number of synthetic venues to create")
	seedCmd.Flags().Bool("fresh", false, "Delete existing venues before seeding")
	viper.BindPFlags(seedCmd.Flags())
}
