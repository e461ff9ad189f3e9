// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

// Package config holds all application configuration loaded from environment
// variables and an optional YAML config file.
//
// Configuration loading order (Koanf v2, highest priority wins):
//  1. Built-in defaults
//  2. Optional config file (config.yaml)
//  3. Environment variables (SERVER_PORT, JWT_SECRET, ...)
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Zoommaps server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the listen port. Default: 3000
	Port int `koanf:"port"`

	// ReadTimeout bounds reading of the request including the body.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds writing of the response.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed CORS origins. "*" allows any origin.
	CORSOrigins []string `koanf:"cors_origins"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig configures the embedded Badger document store.
type DatabaseConfig struct {
	// Path is the on-disk directory for the store. Default: ./data
	Path string `koanf:"path"`

	// InMemory runs the store without persistence. Used by tests and
	// throwaway development instances.
	InMemory bool `koanf:"in_memory"`
}

// SecurityConfig configures authentication.
type SecurityConfig struct {
	// JWTSecret signs identity tokens. Required; minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTimeout is the token lifetime. Default: 24h.
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// LoginRateLimit is the number of login attempts allowed per
	// LoginRateWindow per client IP.
	LoginRateLimit int `koanf:"login_rate_limit"`

	// LoginRateWindow is the window for the login rate limit.
	LoginRateWindow time.Duration `koanf:"login_rate_window"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file:line in log events.
	Caller bool `koanf:"caller"`
}

// Validate checks the configuration for invalid or missing values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.Database.Path == "" && !c.Database.InMemory {
		return fmt.Errorf("database.path is required unless database.in_memory is set")
	}
	if c.Security.LoginRateLimit < 1 {
		return fmt.Errorf("security.login_rate_limit must be positive, got %d", c.Security.LoginRateLimit)
	}
	return nil
}
