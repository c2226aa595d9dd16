// Package config loads runtime configuration for the babycare client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables BABYCARE_*, optionally seeded from a dotenv file
//     (-e or -env-file, else ./.env when present). Real environment wins over
//     the file.
//  3. Optional JSON or YAML file (-c or -config), chosen by extension.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST backend
//	-t int      request timeout (seconds)
//	-d string   path to the local SQLite database
//	-b string   baby profile id
//	-i int      online status check interval (seconds)
//	-p string   toggle persistence: none | local | remote
//	-l string   log level
//	-o string   tab opened on the main screen: growth | vaccines | milestones
//
// Non-positive request timeouts and check intervals fall back to the defaults.
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "server_base_url": "https://api.example.org/api",
//	  "request_timeout": "10s",
//	  "database_path": "babycare.db",
//	  "baby_id": "b-42",
//	  "online_check_interval": "5s",
//	  "toggle_persistence": "none",
//	  "log_level": "info",
//	  "initial_tab": "growth"
//	}
//
// The same keys are accepted in YAML.
package config
