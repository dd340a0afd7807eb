// Package config loads runtime configuration for the vibecart CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the storefront API (requests go to <a>/api/...)
//	-b string   backend origin used to resolve image URLs
//	-d string   directory holding the local storage database
//	-t int      request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so "15s" and integer nanoseconds both work:
//
//	{
//	  "api_base_url": "http://localhost:5000",
//	  "backend_url": "https://vibecart-backend.onrender.com",
//	  "legacy_image_host": "http://localhost:5000",
//	  "placeholder_image_url": "https://via.placeholder.com/300",
//	  "data_dir": ".vibecart",
//	  "request_timeout": "15s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
