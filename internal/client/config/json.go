package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cakeinvoice/internal/flagx"
)

// JsonConfig is the on-disk DTO. Empty values leave the defaults alone.
type JsonConfig struct {
	DatabasePath  string `json:"database_path"`
	DownloadDir   string `json:"download_dir"`
	LogLevel      string `json:"log_level"`
	LogFormat     string `json:"log_format"`
	LogBackend    string `json:"log_backend"`
	GeminiAPIKey  string `json:"gemini_api_key"`
	GeminiModel   string `json:"gemini_model"`
	LedgerBackend string `json:"ledger_backend"`
	XLSXPath      string `json:"xlsx_path"`
	S3            struct {
		Bucket       string `json:"bucket"`
		Region       string `json:"region"`
		BaseEndpoint string `json:"base_endpoint"`
		AccessKey    string `json:"access_key"`
		SecretKey    string `json:"secret_key"`
	} `json:"s3"`
}

// parseJson overlays cfg with the file named by -c / -config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.DownloadDir, jc.DownloadDir)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFormat, jc.LogFormat)
	overlay(&cfg.LogBackend, jc.LogBackend)
	overlay(&cfg.GeminiAPIKey, jc.GeminiAPIKey)
	overlay(&cfg.GeminiModel, jc.GeminiModel)
	overlay(&cfg.LedgerBackend, jc.LedgerBackend)
	overlay(&cfg.XLSXPath, jc.XLSXPath)
	overlay(&cfg.S3Bucket, jc.S3.Bucket)
	overlay(&cfg.S3Region, jc.S3.Region)
	overlay(&cfg.S3BaseEndpoint, jc.S3.BaseEndpoint)
	overlay(&cfg.S3AccessKey, jc.S3.AccessKey)
	overlay(&cfg.S3SecretKey, jc.S3.SecretKey)
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
