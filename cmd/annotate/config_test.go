// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a temporary YAML config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadConfig_OverlaysDefaults verifies that file values overlay the
// defaults rather than replacing them.
func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "policy: nearest\nmax_file_size_bytes: 4096\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "nearest", cfg.Policy)
	assert.Equal(t, int64(4096), cfg.MaxFileSizeBytes)
	assert.Equal(t, "info", cfg.LogLevel, "unset fields keep their defaults")
}

// TestLoadConfig_RejectsBadPolicy verifies that validation surfaces typos
// instead of silently defaulting.
func TestLoadConfig_RejectsBadPolicy(t *testing.T) {
	path := writeConfig(t, "policy: closest\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

// TestLoadConfig_RejectsBadLevel verifies log level validation.
func TestLoadConfig_RejectsBadLevel(t *testing.T) {
	path := writeConfig(t, "log_level: verbose\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

// TestLoadConfig_RejectsMalformedYAML verifies parse errors are reported
// with the file path.
func TestLoadConfig_RejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "policy: [unclosed\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

// TestLoadConfig_MissingFile verifies read errors are reported.
func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

// TestDefaultConfig verifies the shipped defaults.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "conservative", cfg.Policy)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.MaxFileSizeBytes, "zero means the parser default applies")
}
