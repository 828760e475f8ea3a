// Package config loads the server configuration file.
//
// The config package implements:
//   - JSON configuration loading from disk
//   - Sensible defaults when the file or individual fields are absent
//   - Raw passthrough of the config file to browser clients
//
// Configuration File:
//
// The server reads a single config.json with the following shape:
//
//	{
//	  "server": {"host": "0.0.0.0", "port": 8080},
//	  "rooms_file": "rooms.json",
//	  "static_dir": "public",
//	  "log_file": "app.log"
//	}
//
// Browser clients fetch the same file over GET /config.json to discover the
// WebSocket address, so the on-disk bytes are served verbatim rather than
// re-marshaled.
//
// Usage:
//
//	cfg, err := config.Load("config.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	addr := cfg.Addr()
package config
