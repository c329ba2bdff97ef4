// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads project configuration for the bsharp tool.
//
// A project is configured by a bsharp.yaml, bsharp.yml or bsharp.toml file.
// Every field is optional:
//
//	include: ["src/**/*.cs"]
//	exclude: ["**/obj/**"]
//	parallelism: 4
//	style: compact
//	color: true
//	log_level: info
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// FileNames are the names [Find] looks for, in order of preference.
var FileNames = []string{"bsharp.yaml", "bsharp.yml", "bsharp.toml"}

const (
	StyleFull    = "full"
	StyleCompact = "compact"
)

// Config is a project configuration.
type Config struct {
	// Doublestar globs selecting the files to parse, relative to the project
	// root.
	Include []string `yaml:"include" toml:"include"`
	// Globs removing files selected by Include.
	Exclude []string `yaml:"exclude" toml:"exclude"`
	// The maximum number of files parsed at once. Zero means one per CPU.
	Parallelism int `yaml:"parallelism" toml:"parallelism"`
	// How diagnostics are printed: full or compact.
	Style string `yaml:"style" toml:"style"`
	// Whether diagnostics are colored.
	Color bool `yaml:"color" toml:"color"`
	// One of debug, info, warn or error.
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Include:  []string{"**/*.cs"},
		Style:    StyleFull,
		LogLevel: "warn",
	}
}

// Load reads the configuration file at path. The format is chosen by its
// extension. Fields missing from the file keep their [Default] values, and
// unknown fields are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	case ".toml":
		err = decodeTOML(data, cfg)
	default:
		err = fmt.Errorf("unknown config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return fmt.Errorf("unknown fields: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Find looks for a configuration file in dir and then in each of its
// parents. It returns fs.ErrNotExist if there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found: %w", strings.Join(FileNames, ", "), fs.ErrNotExist)
		}
		dir = parent
	}
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	var errs []error
	for _, pattern := range slices.Concat(c.Include, c.Exclude) {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("invalid glob %q", pattern))
		}
	}
	if c.Parallelism < 0 {
		errs = append(errs, fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism))
	}
	switch c.Style {
	case StyleFull, StyleCompact:
	default:
		errs = append(errs, fmt.Errorf("style must be %q or %q, got %q", StyleFull, StyleCompact, c.Style))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel returns LogLevel as a [slog.Level].
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		err := level.UnmarshalText([]byte(c.LogLevel))
		return level, err
	}
	return level, fmt.Errorf("log_level must be one of debug, info, warn or error, got %q", c.LogLevel)
}

// Match returns whether the slash-separated relative path is selected by
// Include and not removed by Exclude.
func (c *Config) Match(name string) bool {
	name = filepath.ToSlash(name)
	return matchAny(c.Include, name) && !matchAny(c.Exclude, name)
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Files returns every file in fsys selected by the configuration, sorted
// and without duplicates.
func (c *Config) Files(fsys fs.FS) ([]string, error) {
	var files []string
	for _, pattern := range c.Include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		for _, match := range matches {
			if !matchAny(c.Exclude, match) {
				files = append(files, path.Clean(match))
			}
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
