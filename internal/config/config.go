// Package config loads application configuration for the CLI and the HTTP
// server. Values come from defaults, an optional config file, and environment
// variables, in increasing order of precedence.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Logging LoggingConfig
	Server  ServerConfig
	Engine  EngineConfig
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server settings for the serve command.
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxUploadMB  int
}

// EngineConfig contains statement-engine settings.
type EngineConfig struct {
	// RulesPath points at an optional YAML file overriding the
	// classifier keyword sets. Empty means built-in defaults.
	RulesPath string
	// SampleStatement is the statement the parse command falls back to
	// when invoked without a path argument.
	SampleStatement string
}

func (c *Config) validate() error {
	var problems []string

	if c.Server.Port <= 0 {
		problems = append(problems, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		problems = append(problems, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		problems = append(problems, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.MaxUploadMB <= 0 {
		problems = append(problems, "MAX_UPLOAD_MB must be greater than 0")
	}

	if len(problems) > 0 {
		return errors.New("config validation failed: " + strings.Join(problems, "; "))
	}
	return nil
}
