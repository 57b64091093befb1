package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"SeasonalityExplorer/internal/currency"
	"SeasonalityExplorer/internal/generator"
	"SeasonalityExplorer/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Generator struct {
		Days       int                     `yaml:"days"`
		BasePrice  float64                 `yaml:"base_price"`
		Seed       int64                   `yaml:"seed"`
		Indicators generator.IndicatorMode `yaml:"indicators"`
		LoadDelay  time.Duration           `yaml:"load_delay"`
	} `yaml:"generator"`
	Defaults struct {
		ViewMode      model.ViewMode   `yaml:"view_mode"`
		DataLayer     model.DataLayer  `yaml:"data_layer"`
		ColorTheme    model.ColorTheme `yaml:"color_theme"`
		Instrument    string           `yaml:"instrument"`
		Timeframe     string           `yaml:"timeframe"`
		Currency      string           `yaml:"currency"`
		MinVolatility float64          `yaml:"min_volatility"`
		MaxVolatility float64          `yaml:"max_volatility"`
	} `yaml:"defaults"`
	Schedule struct {
		RegenerateCron string `yaml:"regenerate_cron"`
	} `yaml:"schedule"`
	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Timezone string `yaml:"timezone"`
}

// Default returns the configuration used when nothing is set. Days is
// filled before parsing because zero is a meaningful value.
func Default() *Config {
	cfg := &Config{}
	cfg.Generator.Days = generator.DefaultDays
	cfg.Generator.LoadDelay = time.Second
	cfg.Defaults.MaxVolatility = 100
	cfg.applyDefaults()
	return cfg
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("EXPLORER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("EXPLORER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EXPLORER_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("EXPLORER_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EXPLORER_DAYS: %w", err)
		}
		c.Generator.Days = days
	}
	if v := os.Getenv("EXPLORER_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("EXPLORER_SEED: %w", err)
		}
		c.Generator.Seed = seed
	}
	if v := os.Getenv("EXPLORER_INDICATORS"); v != "" {
		c.Generator.Indicators = generator.IndicatorMode(v)
	}
	if v := os.Getenv("EXPLORER_CURRENCY"); v != "" {
		c.Defaults.Currency = strings.ToUpper(v)
	}
	if v := os.Getenv("EXPLORER_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("CRON_REGENERATE"); v != "" {
		c.Schedule.RegenerateCron = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Generator.BasePrice == 0 {
		c.Generator.BasePrice = generator.DefaultBasePrice
	}
	if c.Generator.Indicators == "" {
		c.Generator.Indicators = generator.IndicatorsPlaceholder
	}
	if c.Defaults.ViewMode == "" {
		c.Defaults.ViewMode = model.ViewDaily
	}
	if c.Defaults.DataLayer == "" {
		c.Defaults.DataLayer = model.LayerVolatility
	}
	if c.Defaults.ColorTheme == "" {
		c.Defaults.ColorTheme = model.ThemeDefault
	}
	if c.Defaults.Instrument == "" {
		c.Defaults.Instrument = "BTC/USD"
	}
	if c.Defaults.Timeframe == "" {
		c.Defaults.Timeframe = "1D"
	}
	if c.Defaults.Currency == "" {
		c.Defaults.Currency = "USD"
	}
	if c.Schedule.RegenerateCron == "" {
		c.Schedule.RegenerateCron = "0 0 0 * * *"
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "exports"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks that all fields hold usable values. Volatility bounds are
// not cross-checked; min > max simply filters everything out.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Generator.Days < 0 {
		return fmt.Errorf("generator.days must not be negative")
	}
	if c.Generator.BasePrice <= 0 {
		return fmt.Errorf("generator.base_price must be positive")
	}
	if !c.Generator.Indicators.Valid() {
		return fmt.Errorf("generator.indicators: unknown mode %q", c.Generator.Indicators)
	}
	if c.Generator.LoadDelay < 0 {
		return fmt.Errorf("generator.load_delay must not be negative")
	}
	if !c.Defaults.ViewMode.Valid() {
		return fmt.Errorf("defaults.view_mode: unknown mode %q", c.Defaults.ViewMode)
	}
	if !c.Defaults.DataLayer.Valid() {
		return fmt.Errorf("defaults.data_layer: unknown layer %q", c.Defaults.DataLayer)
	}
	if !c.Defaults.ColorTheme.Valid() {
		return fmt.Errorf("defaults.color_theme: unknown theme %q", c.Defaults.ColorTheme)
	}
	if !currency.Supported(c.Defaults.Currency) {
		return fmt.Errorf("defaults.currency: unsupported %q", c.Defaults.Currency)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Location resolves the display timezone. Empty means the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Filters returns the initial filter controls.
func (c *Config) Filters() model.FilterOptions {
	return model.FilterOptions{
		Instrument:    c.Defaults.Instrument,
		Timeframe:     c.Defaults.Timeframe,
		Currency:      c.Defaults.Currency,
		MinVolatility: c.Defaults.MinVolatility,
		MaxVolatility: c.Defaults.MaxVolatility,
	}
}

// NewLogger builds the process logger from the logging section.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	if c.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if lvl, err := logrus.ParseLevel(c.Logging.Level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
