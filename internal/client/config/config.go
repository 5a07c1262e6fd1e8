package config

import (
	"fmt"
	"os"
)

// Ledger backends for the companion spreadsheet export.
const (
	LedgerSheets = "sheets"
	LedgerXLSX   = "xlsx"
)

// Config holds runtime settings for the cakeinvoice CLI. Sender profile
// data lives in the settings store, not here.
type Config struct {
	DatabasePath string `envconfig:"DATABASE_PATH"`
	DownloadDir  string `envconfig:"DOWNLOAD_DIR"`

	LogLevel   string `envconfig:"LOG_LEVEL"`
	LogFormat  string `envconfig:"LOG_FORMAT"`
	LogBackend string `envconfig:"LOG_BACKEND"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL"`

	LedgerBackend string `envconfig:"LEDGER_BACKEND"`
	XLSXPath      string `envconfig:"XLSX_PATH"`

	S3Bucket       string `envconfig:"S3_BUCKET"`
	S3Region       string `envconfig:"S3_REGION"`
	S3BaseEndpoint string `envconfig:"S3_BASE_ENDPOINT"`
	S3AccessKey    string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey    string `envconfig:"S3_SECRET_KEY"`
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "invoices.db"
	c.DownloadDir = "download"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.LogBackend = "slog"
	c.GeminiModel = "gemini-2.5-flash"
	c.LedgerBackend = LedgerSheets
	c.XLSXPath = "invoices.xlsx"
	c.S3Region = "us-east-1"
}

// S3Configured reports whether object storage upload can be attempted.
func (c *Config) S3Configured() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and os.Args, in that order.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load is LoadConfig with explicit arguments.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
