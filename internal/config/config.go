// Copyright 2025 Ian Lewis
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

// Package config loads jdutil configuration from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ianlewis/go-jdict/source"
)

// PathEnv is the environment variable holding the configuration file path.
const PathEnv = "JDICT_CONFIG"

// Config is the root configuration.
type Config struct {
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Search     SearchConfig     `yaml:"search"`
	Log        LogConfig        `yaml:"log"`
}

// DictionaryConfig holds dictionary loading settings.
type DictionaryConfig struct {
	DataDirs []string `yaml:"data_dirs" env:"JDICT_DATA_DIRS" env-separator:","`
	CacheDir string   `yaml:"cache_dir" env:"JDICT_CACHE_DIR"`
	Encoding string   `yaml:"encoding"  env:"JDICT_ENCODING"  env-default:"auto"`
	NoCache  bool     `yaml:"no_cache"  env:"JDICT_NO_CACHE"  env-default:"false"`
}

// SearchConfig holds query settings.
type SearchConfig struct {
	MaxResults    int           `yaml:"max_results"    env:"JDICT_MAX_RESULTS"    env-default:"50"`
	CaseSensitive bool          `yaml:"case_sensitive" env:"JDICT_CASE_SENSITIVE" env-default:"false"`
	MatchTimeout  time.Duration `yaml:"match_timeout"  env:"JDICT_MATCH_TIMEOUT"  env-default:"100ms"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. If path is empty the path is taken from
// JDICT_CONFIG. If no path is given at all, configuration is loaded from the
// environment and defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv(PathEnv)
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if _, err := source.ParseEncoding(c.Dictionary.Encoding); err != nil {
		return fmt.Errorf("dictionary.encoding: %w", err)
	}
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("search.max_results must be >= 0 (got %d)", c.Search.MaxResults)
	}
	if c.Search.MatchTimeout < 0 {
		return fmt.Errorf("search.match_timeout must be >= 0 (got %v)", c.Search.MatchTimeout)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}

// ResolveCacheDir returns the configured cache directory or the default
// jdict directory under the user cache directory. An empty string is
// returned when caching is disabled.
func (c DictionaryConfig) ResolveCacheDir() (string, error) {
	if c.NoCache {
		return "", nil
	}
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", errNoCacheDir, err)
	}
	return filepath.Join(dir, "jdict"), nil
}

var errNoCacheDir = errors.New("no user cache directory")
