package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/subosito/gotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultPort    = 5000
	DefaultBaseURL = "http://tentris-ml.cs.upb.de:8501/v1"
	DefaultModel   = "tentris"
)

// Config holds the process-wide configuration. It is loaded once at
// startup and passed by reference into the components that need it; the
// provider credential never leaves the server process.
type Config struct {
	Port     int
	Provider string

	APIKey  string
	BaseURL string
	Model   string

	// MaxTurns caps the length of a conversation the relay will forward.
	// Zero means unbounded, matching the reference behavior.
	MaxTurns int

	// JWTSecret enables widget session tokens when non-empty.
	JWTSecret string

	Debug bool
}

// Load reads a .env file if present, then the environment.
func Load() (*Config, error) {
	gotenv.Load()

	cfg := &Config{
		Port:      DefaultPort,
		Provider:  ProviderOpenAI,
		APIKey:    os.Getenv("OPENAI_API_KEY"),
		BaseURL:   DefaultBaseURL,
		Model:     DefaultModel,
		JWTSecret: os.Getenv("JWT_SECRET"),
		Debug:     os.Getenv("DEBUG") == "true",
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parsing PORT: %w", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		if v != ProviderOpenAI && v != ProviderGemini {
			return nil, fmt.Errorf("unknown LLM_PROVIDER %q", v)
		}
		cfg.Provider = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CHAT_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("MAX_TURNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("MAX_TURNS must be a non-negative integer, got %q", v)
		}
		cfg.MaxTurns = n
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
