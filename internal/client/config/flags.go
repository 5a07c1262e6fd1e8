package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/cakeinvoice/internal/flagx"
)

// parseFlags applies -d, -o and -l. Other arguments are ignored.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("cakeinvoice", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "download folder")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(flagx.FilterArgs(args, []string{"-d", "-o", "-l"}))
}
