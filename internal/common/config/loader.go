// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like OPENAI_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored if not present
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env from multiple locations so the binary and the tests
// behave the same regardless of working directory.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders inside string config values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills secrets from well-known env vars when the YAML
// left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Providers.OpenAI.APIKey == "" {
		if val := os.Getenv("OPENAI_API_KEY"); val != "" {
			cfg.Providers.OpenAI.APIKey = val
		}
	}
	if cfg.Providers.GenAI.APIKey == "" {
		if val := os.Getenv("GENAI_API_KEY"); val != "" {
			cfg.Providers.GenAI.APIKey = val
		}
	}
	if cfg.Storage.APIKey == "" {
		if val := os.Getenv("STORAGE_API_KEY"); val != "" {
			cfg.Storage.APIKey = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("POSTGRES_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "estate-pipeline"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30
	}
	if cfg.Server.WriteTimeout == 0 {
		// Batch runs are synchronous; the write timeout has to cover a full
		// run including inter-item delays.
		cfg.Server.WriteTimeout = 600
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Elasticsearch.Index == "" {
		cfg.Database.Elasticsearch.Index = "content"
	}
	if cfg.Database.Redis.CacheTTL == 0 {
		cfg.Database.Redis.CacheTTL = 900
	}
	if cfg.Storage.Mode == "" {
		cfg.Storage.Mode = "bucket"
	}
	if cfg.Storage.PageSize == 0 {
		cfg.Storage.PageSize = 100
	}
	if len(cfg.Providers.Order) == 0 {
		cfg.Providers.Order = []string{"openai", "genai"}
	}
	if cfg.Providers.CallTimeout == 0 {
		cfg.Providers.CallTimeout = 30000
	}
	if cfg.Providers.OpenAI.Model == "" {
		cfg.Providers.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.Providers.OpenAI.MaxTokens == 0 {
		cfg.Providers.OpenAI.MaxTokens = 2000
	}
	if cfg.Providers.OpenAI.Temperature == 0 {
		cfg.Providers.OpenAI.Temperature = 0.7
	}
	if cfg.Providers.GenAI.MaxTokens == 0 {
		cfg.Providers.GenAI.MaxTokens = 2000
	}
	if cfg.Providers.GenAI.Temperature == 0 {
		cfg.Providers.GenAI.Temperature = 0.7
	}
	if cfg.Pipeline.Batch.ItemDelay == 0 {
		cfg.Pipeline.Batch.ItemDelay = 2000
	}
	if cfg.Pipeline.Batch.MinGroupFiles == 0 {
		cfg.Pipeline.Batch.MinGroupFiles = 2
	}
	if cfg.Pipeline.Batch.TargetWordCount == 0 {
		cfg.Pipeline.Batch.TargetWordCount = 400
	}
	if cfg.Pipeline.Slug.MaxLength == 0 {
		cfg.Pipeline.Slug.MaxLength = 100
	}
	if cfg.Pipeline.Quality.ImproveThreshold == 0 {
		cfg.Pipeline.Quality.ImproveThreshold = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Storage.Mode {
	case "bucket":
		if cfg.Storage.BaseURL == "" || cfg.Storage.Bucket == "" {
			return fmt.Errorf("storage mode 'bucket' requires base_url and bucket")
		}
	case "local":
		if cfg.Storage.RootDir == "" {
			return fmt.Errorf("storage mode 'local' requires root_dir")
		}
	default:
		return fmt.Errorf("unknown storage mode %q", cfg.Storage.Mode)
	}

	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}

	for _, name := range cfg.Providers.Order {
		if name != "openai" && name != "genai" {
			return fmt.Errorf("unknown provider %q in providers.order", name)
		}
	}

	return nil
}
