// Package config loads runtime configuration for the usermgr CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the User Management API
//	-t int      per-request timeout (seconds)
//	-d int      auto-login delay after registration (milliseconds)
//	-i int      online status check interval (seconds)
//	-f string   path to the local SQLite database
//	-l string   log level (debug|info|warn|error)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8000",
//	  "request_timeout": "10s",
//	  "auto_login_delay": "500ms",
//	  "online_check_interval": "3s",
//	  "database_dsn": "usermgr.db",
//	  "log_level": "info"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
