// Package config loads contractdesk settings.
//
// # Resolution order
//
//  1. Defaults (see Default).
//  2. The TOML file given with --config, or ~/.config/contractdesk/config.toml.
//     A missing file is not an error; empty values keep their defaults.
//  3. Environment overrides: CONTRACTDESK_API_URL, CONTRACTDESK_LOG_LEVEL and
//     CONTRACTDESK_LOG_FILE. LoadDotEnv can seed these from a .env file
//     without clobbering variables that are already set.
//
// # TOML format
//
//	api_url = "http://localhost/api/v1/contracts/"
//	timeout_seconds = 10
//	log_file = "~/.local/state/contractdesk/contractdesk.log"
//	log_level = "info"
//	locale = "ru-RU"
//	currency = "₽"
//	completion_keyword = "заверш"
//
// Every key is optional. Paths get tilde expansion.
//
// # Errors
//
// Load fails on unreadable or malformed files and on a negative timeout.
package config
