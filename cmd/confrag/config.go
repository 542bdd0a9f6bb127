package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/asjoberg/confrag/gemini"
	confraghttp "github.com/asjoberg/confrag/http"
)

// Config holds all settings read from the environment once at startup.
// Which fields are required depends on the command; Main.Run validates
// them before wiring services.
type Config struct {
	// Confluence connection (download, and bearer auth for --url loads).
	BaseURL  string
	APIToken string

	// Delay between consecutive API requests.
	RequestDelay time.Duration

	// Listing page size.
	PageSize int

	// SQLite database path for the chunk store.
	DBPath string

	// Gemini settings.
	GeminiAPIKey        string
	EmbeddingsModel     string
	ChatModel           string
	EmbeddingDimensions int
	TopK                int
}

// ConfigFromEnv builds a Config from environment variables. Unset
// optional variables fall back to defaults; present but malformed
// numeric values are an error.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{
		BaseURL:         os.Getenv("CONFLUENCE_BASE_URL"),
		APIToken:        os.Getenv("CONFLUENCE_API_TOKEN"),
		DBPath:          os.Getenv("CONFRAG_DB"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		EmbeddingsModel: os.Getenv("EMBEDDINGS_MODEL"),
		ChatModel:       os.Getenv("CHAT_MODEL"),
	}

	delay, err := intEnv("REQUEST_DELAY", 0)
	if err != nil {
		return nil, err
	}
	cfg.RequestDelay = time.Duration(delay) * time.Second

	if cfg.PageSize, err = intEnv("PAGE_SIZE", confraghttp.DefaultPageSize); err != nil {
		return nil, err
	}
	if cfg.EmbeddingDimensions, err = intEnv("EMBEDDING_DIMENSIONS", 0); err != nil {
		return nil, err
	}
	if cfg.TopK, err = intEnv("TOP_K", gemini.DefaultTopK); err != nil {
		return nil, err
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}

	return cfg, nil
}

func intEnv(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, raw, err)
	}
	return n, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "confrag.db"
	}
	dir := filepath.Join(home, ".confrag")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "confrag.db")
}
