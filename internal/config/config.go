package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/coindeck/coindeck/internal/coingecko"
	"github.com/coindeck/coindeck/internal/domain"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Display DisplayConfig `mapstructure:"display"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds CoinGecko client configuration
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// DisplayConfig holds the startup state of the market table
type DisplayConfig struct {
	Currency string `mapstructure:"currency"`  // quote currency code, "usd" or "eur"
	Order    string `mapstructure:"order"`     // API sort key
	PageSize int    `mapstructure:"page_size"` // rows fetched per page
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        coingecko.DefaultBaseURL,
			TimeoutSeconds: 15,
		},
		Display: DisplayConfig{
			Currency: domain.CurrencyUSD.Code,
			Order:    domain.OrderMarketCapDesc.Key,
			PageSize: 10,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "coindeck", "coindeck.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "state", "coindeck", "coindeck.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "coindeck")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "coindeck")
	}
}

// LoadConfig loads configuration from file and environment. An explicit path
// must exist; with an empty path the default locations are searched and a
// missing file falls back to defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(defaultConfigPath())
		viper.AddConfigPath(".")
	}

	// Environment variable overrides
	viper.SetEnvPrefix("COINDECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// AutomaticEnv only consults keys viper knows about, so every key needs
	// a registered default before Unmarshal runs.
	setDefaults(cfg)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	viper.SetDefault("api.base_url", cfg.API.BaseURL)
	viper.SetDefault("api.timeout_seconds", cfg.API.TimeoutSeconds)
	viper.SetDefault("display.currency", cfg.Display.Currency)
	viper.SetDefault("display.order", cfg.Display.Order)
	viper.SetDefault("display.page_size", cfg.Display.PageSize)
	viper.SetDefault("logging.file", cfg.Logging.File)
	viper.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks the enumerated settings against the values the UI offers.
func (c *Config) Validate() error {
	if _, ok := domain.CurrencyByCode(c.Display.Currency); !ok {
		return fmt.Errorf("unsupported currency %q", c.Display.Currency)
	}
	if _, ok := domain.SortOrderByKey(c.Display.Order); !ok {
		return fmt.Errorf("unsupported sort order %q", c.Display.Order)
	}
	if !validPageSize(c.Display.PageSize) {
		return fmt.Errorf("unsupported page size %d", c.Display.PageSize)
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api timeout must be positive, got %d", c.API.TimeoutSeconds)
	}
	return nil
}

func validPageSize(n int) bool {
	for _, size := range domain.PageSizes() {
		if n == size {
			return true
		}
	}
	return false
}

// Timeout returns the API request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}
