// Package config loads runtime configuration for the RedDot terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed REDDOT_, after loading an optional .env
//     file from the working directory.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the RedDot API
//	-d string   path of the local sqlite database
//	-t int      request timeout (seconds)
//	-e string   environment name (production enables JSON logs)
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "database_path": "reddot.db",
//	  "request_timeout": "10s",
//	  "toast_ttl": "3s",
//	  "chart_dir": "charts",
//	  "environment": "development"
//	}
package config
