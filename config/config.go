package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
)

// Defaults applied when the config file or individual fields are missing.
const (
	DefaultHost      = "0.0.0.0"
	DefaultPort      = 8080
	DefaultRoomsFile = "rooms.json"
	DefaultStaticDir = "public"
	DefaultLogFile   = "app.log"
)

// ServerConfig holds the listen address settings.
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// Config is the top-level server configuration.
type Config struct {
	Server    ServerConfig `json:"server"`
	RoomsFile string       `json:"rooms_file"`
	StaticDir string       `json:"static_dir"`
	LogFile   string       `json:"log_file"`

	// path is where the config was loaded from, kept so the raw file can be
	// served to browser clients over /config.json.
	path string
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Host: DefaultHost, Port: DefaultPort},
		RoomsFile: DefaultRoomsFile,
		StaticDir: DefaultStaticDir,
		LogFile:   DefaultLogFile,
	}
}

// Load reads a configuration file from disk. A missing file is not an error:
// the server starts with defaults so a fresh checkout runs out of the box.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Fill back anything the file left zero-valued.
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.RoomsFile == "" {
		cfg.RoomsFile = DefaultRoomsFile
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = DefaultStaticDir
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}

	return cfg, nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Raw returns the config file bytes as stored on disk, falling back to a
// marshaled copy when no file exists. Served verbatim at /config.json.
func (c *Config) Raw() ([]byte, error) {
	if c.path != "" {
		if data, err := os.ReadFile(c.path); err == nil {
			return data, nil
		}
	}
	return json.MarshalIndent(c, "", "  ")
}
