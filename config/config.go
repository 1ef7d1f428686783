//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package config handles configuration loading and validation for gott.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	LogLevel        string       `yaml:"log_level"`
	PreferencesFile string       `yaml:"preferences_file"`
	JSLint          JSLintConfig `yaml:"jslint"`
	DataDir         string       `yaml:"-"` // set by caller, not from config file
}

// JSLintConfig selects and tunes the syntax checker.
type JSLintConfig struct {
	Script     string        `yaml:"script"`     // JSLint-compatible script; empty uses the built-in parser
	Function   string        `yaml:"function"`   // global function the script defines
	Timeout    time.Duration `yaml:"timeout"`    // limit for a single check
	Extensions []string      `yaml:"extensions"` // file extensions that are checked
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		JSLint: JSLintConfig{
			Function:   "JSLINT",
			Timeout:    5 * time.Second,
			Extensions: []string{".js", ".htm", ".html"},
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.JSLint.Function == "" {
		c.JSLint.Function = defaults.JSLint.Function
	}
	if c.JSLint.Timeout == 0 {
		c.JSLint.Timeout = defaults.JSLint.Timeout
	}
	if len(c.JSLint.Extensions) == 0 {
		c.JSLint.Extensions = defaults.JSLint.Extensions
	}
	if c.PreferencesFile == "" && c.DataDir != "" {
		c.PreferencesFile = filepath.Join(c.DataDir, "preferences.yaml")
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.JSLint.Timeout < 0 {
		errs = errs.Append("jslint.timeout", fmt.Errorf("must be positive"))
	}

	if c.JSLint.Function == "" {
		errs = errs.Append("jslint.function", fmt.Errorf("cannot be empty"))
	}

	if len(c.JSLint.Extensions) == 0 {
		errs = errs.Append("jslint.extensions", fmt.Errorf("must list at least one extension"))
	}

	for i, ext := range c.JSLint.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = errs.Append(fmt.Sprintf("jslint.extensions[%d]", i), fmt.Errorf("%q must start with a dot", ext))
		}
	}

	return criterio.ValidateStruct(
		errs.ToError(),
		criterio.Run("preferences_file", c.PreferencesFile, isFileOrNotExist),
	)
}

// isFileOrNotExist validates that a path is a regular file or doesn't exist.
func isFileOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // created on first write
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

// LogFile returns the path of the log file inside the data directory.
func (c *Config) LogFile() string {
	if c.DataDir == "" {
		return ""
	}
	return filepath.Join(c.DataDir, "gott.log")
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "gott", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "gott")
}
