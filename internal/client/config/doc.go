// Package config loads runtime configuration for the cakeinvoice CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables, after an optional ./.env file is loaded.
//     Every field can be set as CAKEINVOICE_<NAME>; the Gemini key is also
//     read from GEMINI_API_KEY or API_KEY.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string   path of the local SQLite database
//	-o string   folder used by the direct-download save tier
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "database_path": "invoices.db",
//	  "download_dir": "download",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "log_backend": "slog",
//	  "gemini_api_key": "",
//	  "gemini_model": "gemini-2.5-flash",
//	  "ledger_backend": "sheets",
//	  "xlsx_path": "invoices.xlsx",
//	  "s3": {"bucket": "invoices", "region": "us-east-1", "base_endpoint": "http://127.0.0.1:9000/",
//	         "access_key": "", "secret_key": ""}
//	}
package config
