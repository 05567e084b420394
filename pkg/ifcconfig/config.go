// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ifcconfig loads and saves the .ifckit/project.yaml file that
// configures ifckit's default schema, units, and parser/writer behavior.
package ifcconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/ifckit/internal/errors"
)

const (
	defaultConfigDir  = ".ifckit"
	defaultConfigFile = "project.yaml"
	configVersion     = "1"

	defaultGlobalIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_$"
)

// Config is the .ifckit/project.yaml shape.
type Config struct {
	Version string       `yaml:"version"`
	Schema  string       `yaml:"schema"` // default writer schema: IFC2X3 | IFC4 | IFC4X3
	Units   UnitsConfig  `yaml:"units"`
	Parser  ParserConfig `yaml:"parser"`
	Writer  WriterConfig `yaml:"writer"`
}

// UnitsConfig selects the length unit the Creator path writes.
type UnitsConfig struct {
	Length string `yaml:"length"` // meter | millimeter
}

// ParserConfig holds the reader's cooperative-yield budget (spec §5
// "Suspension points"). No ifckit command passes it to the parser:
// loadModel leaves stepparse.ParseOptions.YieldEvery at zero, which the
// parser replaces with its own default of 5000.
type ParserConfig struct {
	YieldEvery int `yaml:"yield_every"` // entities between yields
}

// WriterConfig tunes STEP emission.
type WriterConfig struct {
	BestEffort       bool   `yaml:"best_effort"`
	GlobalIDAlphabet string `yaml:"globalid_alphabet"`
}

// DefaultConfig returns the configuration ifckit uses when no
// .ifckit/project.yaml is present.
func DefaultConfig() *Config {
	return &Config{
		Version: configVersion,
		Schema:  "IFC4",
		Units:   UnitsConfig{Length: "meter"},
		Parser:  ParserConfig{YieldEvery: 5000},
		Writer: WriterConfig{
			BestEffort:       false,
			GlobalIDAlphabet: defaultGlobalIDAlphabet,
		},
	}
}

// LoadConfig loads configuration from configPath, or discovers
// .ifckit/project.yaml by walking up from the working directory if
// configPath is empty (IFCKIT_CONFIG_PATH, when set, stands in for an empty
// configPath). When discovery finds no file, DefaultConfig is returned with
// a nil error; an explicitly named file that cannot be read is a config
// error.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		if envPath := os.Getenv("IFCKIT_CONFIG_PATH"); envPath != "" {
			configPath = envPath
		}
	}
	if configPath == "" {
		found, err := findConfigFile()
		if err != nil {
			return DefaultConfig(), nil
		}
		configPath = found
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.NewConfigError(
			"Cannot read configuration file",
			fmt.Sprintf("Failed to read %s", configPath),
			"Check file permissions and ensure the file exists",
			err,
		)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(
			"Invalid configuration format",
			"YAML parsing failed - the config file contains syntax errors",
			fmt.Sprintf("Edit %s to fix syntax errors", configPath),
			err,
		)
	}

	if cfg.Version != configVersion {
		return nil, errors.NewConfigError(
			"Unsupported configuration version",
			fmt.Sprintf("Config version '%s' is not supported (expected '%s')", cfg.Version, configVersion),
			"Regenerate .ifckit/project.yaml with the current default",
			nil,
		)
	}
	if cfg.Writer.GlobalIDAlphabet == "" {
		cfg.Writer.GlobalIDAlphabet = defaultGlobalIDAlphabet
	}

	return cfg, nil
}

// SaveConfig writes cfg to configPath as YAML, creating its parent
// directory if necessary.
func SaveConfig(cfg *Config, configPath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewInternalError(
			"Cannot encode configuration",
			"YAML marshaling failed unexpectedly",
			"This is a bug; please report it with your configuration",
			err,
		)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return errors.NewPermissionError(
			"Cannot create configuration directory",
			fmt.Sprintf("Permission denied creating %s", dir),
			"Check directory permissions",
			err,
		)
	}
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return errors.NewPermissionError(
			"Cannot write configuration file",
			fmt.Sprintf("Permission denied writing to %s", configPath),
			"Check file permissions and available disk space",
			err,
		)
	}
	return nil
}

// ConfigPath returns <dir>/.ifckit/project.yaml.
func ConfigPath(dir string) string {
	return filepath.Join(dir, defaultConfigDir, defaultConfigFile)
}

func findConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", errors.NewInternalError(
			"Cannot access working directory",
			"Failed to determine current directory path",
			"Check system permissions and try again",
			err,
		)
	}

	for {
		candidate := ConfigPath(dir)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.NewConfigError(
		"Configuration not found",
		"No .ifckit/project.yaml file found in current directory or any parent directory",
		"Create .ifckit/project.yaml in this or a parent directory, or proceed with defaults",
		nil,
	)
}
