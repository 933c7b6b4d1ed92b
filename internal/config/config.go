package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
)

// Config holds all configuration from environment variables.
type Config struct {
	Token     string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	APIKey    string `envconfig:"OPENAI_API_KEY" required:"true"`
	ProjectID string `envconfig:"PROJECT_ID" default:""`
	BaseURL   string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`

	// Model is the active model on startup; /model changes it until restart.
	Model         string   `envconfig:"OPENAI_MODEL" default:"gpt-4o"`
	AllowedModels []string `envconfig:"ALLOWED_MODELS" default:"gpt-3.5-turbo,gpt-4,gpt-4o"`

	NewsAPIKey   string `envconfig:"NEWS_API_KEY" default:""`
	NewsBaseURL  string `envconfig:"NEWS_BASE_URL" default:"https://newsapi.org/v2"`
	NewsCountry  string `envconfig:"NEWS_COUNTRY" default:"ru"`
	NewsPageSize int    `envconfig:"NEWS_PAGE_SIZE" default:"5"`

	FiatBaseURL   string   `envconfig:"FIAT_BASE_URL" default:"https://open.er-api.com/v6"`
	CryptoBaseURL string   `envconfig:"CRYPTO_BASE_URL" default:"https://api.coingecko.com/api/v3"`
	RateTargets   []string `envconfig:"RATE_TARGETS" default:"RUB,USD"`

	// Applied to every upstream call.
	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"15s"`

	// Address of the read-only status endpoint, disabled when empty.
	StatusAddr string `envconfig:"STATUS_ADDR" default:""`

	// Path to config.toml file
	ConfigFile string `envconfig:"CONFIG_FILE" default:"config.toml"`

	// Routing loaded from config.toml
	Routing Routing
}

// Routing holds the product-tunable routing data loaded from config.toml.
type Routing struct {
	Triggers Triggers `toml:"triggers"`
	Aliases  Aliases  `toml:"aliases"`
}

// Triggers configures the intent classifier.
type Triggers struct {
	Currency []string `toml:"currency"`
	News     []string `toml:"news"`
	// Match is one of "word", "prefix" or "substring".
	Match string `toml:"match"`
}

// Aliases are merged over the built-in alias tables.
type Aliases struct {
	Fiat   map[string]string `toml:"fiat"`
	Crypto map[string]string `toml:"crypto"`
}

// DefaultTriggers is used for any trigger field config.toml leaves empty.
var DefaultTriggers = Triggers{
	Currency: []string{"курс"},
	News:     []string{"новости"},
	Match:    "word",
}

// LoadEnv loads the configuration from environment variables.
func (c Config) LoadEnv() (Config, error) {
	cfg := c

	if err := envconfig.Process("", &cfg); err != nil {
		return c, err
	}

	return cfg, nil
}

// LoadFile loads routing data from config.toml file.
func (c *Config) LoadFile() error {
	c.Routing = Routing{Triggers: DefaultTriggers}

	configPath := c.ConfigFile
	if !filepath.IsAbs(configPath) {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			execPath, err := os.Executable()
			if err == nil {
				configPath = filepath.Join(filepath.Dir(execPath), c.ConfigFile)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	var routing Routing
	if _, err := toml.DecodeFile(configPath, &routing); err != nil {
		return fmt.Errorf("failed to decode %s: %w", configPath, err)
	}

	if len(routing.Triggers.Currency) == 0 {
		routing.Triggers.Currency = DefaultTriggers.Currency
	}
	if len(routing.Triggers.News) == 0 {
		routing.Triggers.News = DefaultTriggers.News
	}
	if routing.Triggers.Match == "" {
		routing.Triggers.Match = DefaultTriggers.Match
	}

	c.Routing = routing

	return nil
}

// Validate checks values envconfig cannot express with tags.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("OPENAI_MODEL must not be empty")
	}
	if len(c.RateTargets) == 0 || len(c.RateTargets) > 2 {
		return fmt.Errorf("RATE_TARGETS must list one or two currencies, got %d", len(c.RateTargets))
	}
	if c.UpstreamTimeout <= 0 {
		return errors.New("UPSTREAM_TIMEOUT must be positive")
	}
	if c.NewsPageSize <= 0 {
		return errors.New("NEWS_PAGE_SIZE must be positive")
	}
	return nil
}

func NewConfig() (*Config, error) {
	// A missing .env is fine; the environment may already be populated.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	loadedCfg, err := cfg.LoadEnv()
	if err != nil {
		return nil, err
	}

	if err := loadedCfg.LoadFile(); err != nil {
		return nil, err
	}

	if err := loadedCfg.Validate(); err != nil {
		return nil, err
	}

	return &loadedCfg, nil
}

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(
			NewConfig,
		),
	)
}
