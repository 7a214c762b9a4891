package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dukhtravel-jpg/dukh-bot/internal/analytics"
	"github.com/dukhtravel-jpg/dukh-bot/internal/bot"
	"github.com/dukhtravel-jpg/dukh-bot/internal/catalog"
	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
	"github.com/dukhtravel-jpg/dukh-bot/internal/oracle"
	"github.com/dukhtravel-jpg/dukh-bot/internal/recommend"
	"github.com/dukhtravel-jpg/dukh-bot/internal/session"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "dukh-bot",
	Short: "Telegram bot that recommends venues from a small curated catalog",
	Long:  `dukh-bot narrows a curated venue catalog against a free-form user request through keyword, fuzzy, synonym and negation-aware filters, asks an LLM oracle to rank the survivors, and replies in Telegram with one or two recommendations and a rationale.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if err := run(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func run(cfg *models.Config) error {
	if cfg.TelegramToken == "" {
		return fmt.Errorf("telegram_bot_token is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, cleanup, err := buildSource(ctx, cfg)
	if err != nil {
		// A broken source degrades to seed data inside the catalog.
		log.Printf("catalog source unavailable: %v", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	cat := catalog.New(source)
	cat.Reload(ctx)

	sink, err := analytics.NewSink(cfg)
	if err != nil {
		log.Printf("analytics sink unavailable, continuing without: %v", err)
	}
	events := analytics.NewLogger(sink)
	defer events.Close()

	ranker := oracle.NewOpenAIRanker(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OracleTimeout)
	assembler := recommend.NewAssembler(cfg, ranker)

	b, err := bot.New(cfg.TelegramToken, cat, assembler, session.NewStore(), events)
	if err != nil {
		return fmt.Errorf("failed to start telegram bot: %w", err)
	}

	log.Printf("bot is ready")
	b.Run(ctx)
	return nil
}

// buildSource picks the configured catalog backing: Google Sheets wins
// over Postgres; with neither configured the embedded seed data serves.
func buildSource(ctx context.Context, cfg *models.Config) (catalog.Source, func(), error) {
	if cfg.GoogleSheetURL != "" && cfg.GoogleCredentialsJSON != "" {
		src, err := catalog.NewSheetsSource(cfg.GoogleSheetURL, cfg.GoogleCredentialsJSON)
		return src, nil, err
	}
	if cfg.PostgresConnString != "" {
		src, err := catalog.NewPostgresSource(ctx, cfg.PostgresConnString)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	}
	return nil, nil, nil
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.Flags().Int("ab-split-percent", 50, "Percentage of users assigned to the new filtering pipeline")
	rootCmd.Flags().String("forced-strategy", "", "Force one pipeline for all users (old or new)")
	rootCmd.Flags().Bool("fuzzy-enabled", true, "Enable fuzzy keyword matching")
	rootCmd.Flags().Float64("fuzzy-threshold", 80, "Similarity ratio a fuzzy match must reach")
	rootCmd.Flags().Bool("negation-enabled", true, "Suppress matches negated in the user text")
	rootCmd.Flags().String("analytics-destination", "console", "Analytics sink: console, file, kafka or parquet")
	rootCmd.Flags().Bool("kafka-enabled", false, "Enable Kafka analytics output")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().Duration("oracle-timeout", 0, "Timeout for one oracle ranking call")
	rootCmd.Flags().Int("max-candidates", 10, "Cap on candidates described to the oracle")

	viper.BindPFlags(rootCmd.Flags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
