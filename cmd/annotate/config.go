// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the tool's file-based configuration. Command-line flags
// override any value set here.
type Config struct {
	// Policy selects the association policy: "conservative" or "nearest".
	Policy string `yaml:"policy" validate:"omitempty,oneof=conservative nearest"`

	// MaxFileSizeBytes caps the size of source files the parser accepts.
	MaxFileSizeBytes int64 `yaml:"max_file_size_bytes" validate:"omitempty,min=1"`

	// LogLevel sets the minimum log severity: debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// LogDir, when set, enables JSON file logging in that directory.
	LogDir string `yaml:"log_dir"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Policy:   "conservative",
		LogLevel: "info",
	}
}

// LoadConfig reads and validates a YAML configuration file, overlaying
// it on the defaults. Validation failures name the offending field so a
// typo in the file surfaces before any parsing starts.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("validate config %s: %w", path, err)
	}

	return cfg, nil
}
