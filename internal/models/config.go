package models

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DishEntry is one row of an external dish-synonym table that extends the
// built-in dish gate vocabulary.
type DishEntry struct {
	Name     string   `mapstructure:"name"`
	Synonyms []string `mapstructure:"synonyms"`
}

type Config struct {
	// Transport and collaborators
	TelegramToken         string `mapstructure:"telegram_bot_token"`
	OpenAIAPIKey          string `mapstructure:"openai_api_key"`
	OpenAIModel           string `mapstructure:"openai_model"`
	GoogleSheetURL        string `mapstructure:"google_sheet_url"`
	GoogleCredentialsJSON string `mapstructure:"google_credentials_json"`
	PostgresConnString    string `mapstructure:"postgres_conn_string"`

	// Analytics sinks
	AnalyticsDestination string `mapstructure:"analytics_destination"` // console, file, kafka, parquet
	KafkaEnabled         bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList      string `mapstructure:"kafka_broker_list"`
	OutputFolder         string `mapstructure:"output_folder"`
	CloudStorage         bool   `mapstructure:"cloud_storage"`
	CloudBucketName      string `mapstructure:"cloud_bucket_name"`

	// Matcher behaviour
	MatcherEnabled   bool    `mapstructure:"matcher_enabled"` // false degrades to plain substring matching
	FuzzyEnabled     bool    `mapstructure:"fuzzy_enabled"`
	FuzzyThreshold   float64 `mapstructure:"fuzzy_threshold"`
	DishThreshold    float64 `mapstructure:"dish_threshold"`
	NegationEnabled  bool    `mapstructure:"negation_enabled"`
	SynonymsEnabled  bool    `mapstructure:"synonyms_enabled"`
	BoundaryEnabled  bool    `mapstructure:"boundary_enabled"`
	AnalyzerTopBand  float64 `mapstructure:"analyzer_top_band"`
	ExtraDishDataCSV string  `mapstructure:"extra_dish_data_path"`

	// A/B strategy
	ABSplitPercent int    `mapstructure:"ab_split_percent"`
	ForcedStrategy string `mapstructure:"forced_strategy"` // "", "old" or "new"

	// Oracle and assembler
	OracleTimeout time.Duration `mapstructure:"oracle_timeout"`
	MaxCandidates int           `mapstructure:"max_candidates"`
	Seed          int64         `mapstructure:"seed"`

	// Seeding
	SeedVenues int  `mapstructure:"seed_venues"`
	SeedFresh  bool `mapstructure:"fresh"` // wipe the venues table before seeding

	ExtraDishes []DishEntry `mapstructure:"extra_dishes"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // environment variables win over file values

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional; environment plus defaults is a valid setup.
		if cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if config.ExtraDishDataCSV != "" {
		if err := config.LoadExtraDishData(config.ExtraDishDataCSV); err != nil {
			return nil, fmt.Errorf("error loading extra dish data: %w", err)
		}
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("openai_model", "gpt-4o-mini")
	viper.SetDefault("analytics_destination", "console")
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("output_folder", "output")
	viper.SetDefault("matcher_enabled", true)
	viper.SetDefault("fuzzy_enabled", true)
	viper.SetDefault("fuzzy_threshold", 80.0)
	viper.SetDefault("dish_threshold", 85.0)
	viper.SetDefault("negation_enabled", true)
	viper.SetDefault("synonyms_enabled", true)
	viper.SetDefault("boundary_enabled", true)
	viper.SetDefault("analyzer_top_band", 0.7)
	viper.SetDefault("ab_split_percent", 50)
	viper.SetDefault("oracle_timeout", "15s")
	viper.SetDefault("max_candidates", 10)
	viper.SetDefault("seed", 42)
	viper.SetDefault("seed_venues", 100)
}

// LoadExtraDishData reads a tab-separated dish table (dish name, then a
// comma-separated synonym list) that extends the built-in dish gate
// vocabulary without a redeploy.
func (cfg *Config) LoadExtraDishData(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	reader.Read()

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(fields) < 2 {
			continue
		}
		dish := DishEntry{Name: strings.TrimSpace(fields[0])}
		for _, s := range strings.Split(fields[1], ",") {
			if s = strings.TrimSpace(s); s != "" {
				dish.Synonyms = append(dish.Synonyms, s)
			}
		}
		if dish.Name == "" || len(dish.Synonyms) == 0 {
			continue
		}
		cfg.ExtraDishes = append(cfg.ExtraDishes, dish)
	}

	return nil
}
