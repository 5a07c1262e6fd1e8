package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. CAKEINVOICE_S3_BUCKET.
const EnvPrefix = "CAKEINVOICE"

// dotEnvFile is loaded before the environment is read. Variables already
// present in the process environment win.
var dotEnvFile = ".env"

func parseEnv(cfg *Config) error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	// unset variables leave fields untouched
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return err
	}

	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("API_KEY")
	}
	return nil
}
