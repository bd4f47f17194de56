package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/JustJay7/tdlc-stats/internal/dataset"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Host           string
	Port           string
	RequestTimeout time.Duration

	// Database settings (query audit log only)
	DatabasePath string

	// Logging settings
	LogLevel  string
	LogFormat string

	// Dataset snapshots written by the collectors
	HearingsPath         string
	RegistryPath         string
	DetailPath           string
	DailyCasesPath       string
	DailyProceedingsPath string

	// Prefix for links to the tribunal's case file
	CaseLinkBaseURL string

	// API settings
	APIRateLimit  int
	APIRateWindow time.Duration
}

var defaults = map[string]string{
	"HOST":                   "0.0.0.0",
	"PORT":                   "8000",
	"REQUEST_TIMEOUT":        "30",
	"DATABASE_PATH":          "./data/query_log.db",
	"LOG_LEVEL":              "info",
	"LOG_FORMAT":             "json",
	"HEARINGS_PATH":          "./data/calendario_audiencias.csv",
	"REGISTRY_PATH":          "./data/historic_data/rol_idcausa.csv",
	"DETAIL_PATH":            "./data/historic_data/rol_idcausa_detalle_actualizado.csv",
	"DAILY_CASES_PATH":       "./data/estado_diario/estado_diario_tmp.csv",
	"DAILY_PROCEEDINGS_PATH": "./data/estado_diario/estado_diario_detalle_tmp.csv",
	"CASE_LINK_BASE_URL":     "https://consultas.tdlc.cl/estadoDiario?idCausa=",
	"API_RATE_LIMIT":         "100",
	"API_RATE_WINDOW":        "60",
}

// Load reads configuration from the environment, after an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

// FromViper builds a Config out of an already populated viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Host:                 v.GetString("HOST"),
		Port:                 v.GetString("PORT"),
		DatabasePath:         v.GetString("DATABASE_PATH"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
		HearingsPath:         v.GetString("HEARINGS_PATH"),
		RegistryPath:         v.GetString("REGISTRY_PATH"),
		DetailPath:           v.GetString("DETAIL_PATH"),
		DailyCasesPath:       v.GetString("DAILY_CASES_PATH"),
		DailyProceedingsPath: v.GetString("DAILY_PROCEEDINGS_PATH"),
		CaseLinkBaseURL:      v.GetString("CASE_LINK_BASE_URL"),
	}

	var err error
	cfg.APIRateLimit, err = strconv.Atoi(v.GetString("API_RATE_LIMIT"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_RATE_LIMIT: %w", err)
	}

	rateWindow, err := strconv.Atoi(v.GetString("API_RATE_WINDOW"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_RATE_WINDOW: %w", err)
	}
	cfg.APIRateWindow = time.Duration(rateWindow) * time.Second

	requestTimeout, err := strconv.Atoi(v.GetString("REQUEST_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = time.Duration(requestTimeout) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the values that would otherwise fail late at startup
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %s", c.Port)
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.LogFormat)
	}

	if c.APIRateLimit <= 0 {
		return fmt.Errorf("API_RATE_LIMIT must be positive, got %d", c.APIRateLimit)
	}
	if c.APIRateWindow <= 0 {
		return fmt.Errorf("API_RATE_WINDOW must be positive, got %s", c.APIRateWindow)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}

	if c.HearingsPath == "" || c.RegistryPath == "" || c.DetailPath == "" {
		return fmt.Errorf("hearings, registry and detail dataset paths are required")
	}

	return nil
}

// Datasets returns the dataset locations handed to the loader
func (c *Config) Datasets() dataset.Paths {
	return dataset.Paths{
		Hearings:         c.HearingsPath,
		Registry:         c.RegistryPath,
		Detail:           c.DetailPath,
		DailyCases:       c.DailyCasesPath,
		DailyProceedings: c.DailyProceedingsPath,
	}
}
