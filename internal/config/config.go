// ABOUTME: Centralized configuration for the summarization pipeline
// ABOUTME: Defaults, optional YAML file, environment variable overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the summarizer.
type Config struct {
	// OpenAI settings
	OpenAIKey      string        `yaml:"-"`
	ChatModel      string        `yaml:"chat_model"`
	EmbeddingModel string        `yaml:"embedding_model"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`

	// Pipeline settings
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	MaxClusters  int `yaml:"max_clusters"`
	MaxWorkers   int `yaml:"max_workers"`

	// Embedding cache settings
	CacheEnabled bool   `yaml:"cache_enabled"`
	CachePath    string `yaml:"cache_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ChatModel:      "gpt-4o-mini",
		EmbeddingModel: "text-embedding-3-small",
		Timeout:        60 * time.Second,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
		ChunkSize:      10000,
		ChunkOverlap:   3000,
		MaxClusters:    100,
		MaxWorkers:     10,
		CacheEnabled:   true,
		CachePath:      "", // resolved by the storage layer when empty
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variable overrides, in that precedence order. path may be
// empty to skip file loading; a missing file at an explicit path is an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// applyEnv applies environment variable overrides.
func (c *Config) applyEnv() {
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	c.ChatModel = getEnv("DOCSUM_CHAT_MODEL", c.ChatModel)
	c.EmbeddingModel = getEnv("DOCSUM_EMBEDDING_MODEL", c.EmbeddingModel)
	c.Timeout = getEnvDuration("DOCSUM_TIMEOUT", c.Timeout)
	c.MaxRetries = getEnvInt("DOCSUM_MAX_RETRIES", c.MaxRetries)
	c.RetryDelay = getEnvDuration("DOCSUM_RETRY_DELAY", c.RetryDelay)
	c.ChunkSize = getEnvInt("DOCSUM_CHUNK_SIZE", c.ChunkSize)
	c.ChunkOverlap = getEnvInt("DOCSUM_CHUNK_OVERLAP", c.ChunkOverlap)
	c.MaxClusters = getEnvInt("DOCSUM_MAX_CLUSTERS", c.MaxClusters)
	c.MaxWorkers = getEnvInt("DOCSUM_MAX_WORKERS", c.MaxWorkers)
	c.CacheEnabled = getEnvBool("DOCSUM_CACHE", c.CacheEnabled)
	c.CachePath = getEnv("DOCSUM_CACHE_PATH", c.CachePath)
}

// Validate checks the pipeline tuning parameters.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap must be in [0, chunk_size), got %d", c.ChunkOverlap)
	}
	if c.MaxClusters < 1 {
		return fmt.Errorf("max_clusters must be at least 1, got %d", c.MaxClusters)
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1, got %d", c.MaxWorkers)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("max_retries must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
