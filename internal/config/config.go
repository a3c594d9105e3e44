package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Document store connection
	NotionAPIURL   string
	NotionAPIKey   string
	NotionParentID string
	ReadPageSize   int

	// Auth for this service's API
	ServiceAPIKey string

	// Optional narrative polish
	AnthropicAPIKey string
	AnthropicModel  string

	// Output limits
	BlockTextLimit int
	BatchSize      int

	// Section taxonomy override (YAML); built-in table when empty
	TaxonomyPath string

	// Per-run deadline
	RunTimeout time.Duration

	// Upload limits
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		NotionAPIURL:   envOr("NOTION_API_URL", "https://api.notion.com"),
		NotionAPIKey:   os.Getenv("NOTION_API_KEY"),
		NotionParentID: os.Getenv("NOTION_PARENT_ID"),
		ReadPageSize:   envInt("READ_PAGE_SIZE", 100),

		ServiceAPIKey: os.Getenv("BRIEFPRESS_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),

		BlockTextLimit: envInt("BLOCK_TEXT_LIMIT", 1900),
		BatchSize:      envInt("BATCH_SIZE", 100),

		TaxonomyPath: os.Getenv("TAXONOMY_PATH"),

		RunTimeout: envDuration("RUN_TIMEOUT", 2*time.Minute),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB
	}

	if cfg.ReadPageSize <= 0 || cfg.ReadPageSize > 100 {
		cfg.ReadPageSize = 100
	}
	if cfg.BlockTextLimit <= 0 || cfg.BlockTextLimit > 2000 {
		cfg.BlockTextLimit = 1900
	}
	if cfg.BatchSize <= 0 || cfg.BatchSize > 100 {
		cfg.BatchSize = 100
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 2 * time.Minute
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}

	return cfg
}

func (c Config) Validate() error {
	if c.NotionAPIKey == "" {
		return fmt.Errorf("NOTION_API_KEY is required")
	}
	if c.NotionParentID == "" {
		return fmt.Errorf("NOTION_PARENT_ID is required")
	}
	if c.ServiceAPIKey == "" {
		return fmt.Errorf("BRIEFPRESS_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
