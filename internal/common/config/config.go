// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Providers     ProvidersConfig    `mapstructure:"providers"`
	Pipeline      PipelineConfig     `mapstructure:"pipeline"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // seconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // seconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds
}

// --- Storage Configuration ---

// StorageConfig selects where media groups are listed from. Mode "bucket"
// uses the hosted storage listing API; "local" walks a directory.
type StorageConfig struct {
	Mode     string `mapstructure:"mode"`
	BaseURL  string `mapstructure:"base_url"`
	Bucket   string `mapstructure:"bucket"`
	APIKey   string `mapstructure:"api_key"`
	RootDir  string `mapstructure:"root_dir"`
	PageSize int    `mapstructure:"page_size"`
	Watch    bool   `mapstructure:"watch"`
}

// --- Provider Configuration ---

type ProvidersConfig struct {
	// Order lists adapter names by priority. Unknown names are ignored.
	Order []string `mapstructure:"order"`

	CallTimeout int `mapstructure:"call_timeout"` // milliseconds, per adapter call

	OpenAI OpenAIConfig    `mapstructure:"openai"`
	GenAI  GenAIRESTConfig `mapstructure:"genai"`
}

type OpenAIConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type GenAIRESTConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// --- Pipeline Configuration ---

type PipelineConfig struct {
	Batch   BatchConfig   `mapstructure:"batch"`
	Slug    SlugConfig    `mapstructure:"slug"`
	Quality QualityConfig `mapstructure:"quality"`
}

type BatchConfig struct {
	ItemDelay       int `mapstructure:"item_delay"` // milliseconds between items
	MinGroupFiles   int `mapstructure:"min_group_files"`
	TargetWordCount int `mapstructure:"target_word_count"`
}

// ItemDelayDuration returns the inter-item pause.
func (b BatchConfig) ItemDelayDuration() time.Duration {
	return time.Duration(b.ItemDelay) * time.Millisecond
}

type SlugConfig struct {
	MaxLength int `mapstructure:"max_length"`
}

type QualityConfig struct {
	// ImproveThreshold is the human-like score below which the improve pass
	// attempts a rewrite.
	ImproveThreshold int `mapstructure:"improve_threshold"`
}

// --- Notification Configuration ---

type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
		ToEmail   string `mapstructure:"to_email"`
	} `mapstructure:"email"`
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
