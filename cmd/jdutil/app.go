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

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	jdict "github.com/ianlewis/go-jdict"
	"github.com/ianlewis/go-jdict/internal/config"
	"github.com/ianlewis/go-jdict/query"
	"github.com/ianlewis/go-jdict/source"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrJdutil is a parent error for all command errors.
var ErrJdutil = errors.New("jdutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrJdutil)

// ErrNoDictionaries indicates that no dictionaries could be opened.
var ErrNoDictionaries = fmt.Errorf("%w: no dictionaries found", ErrJdutil)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// loadConfig loads the configuration file and environment and applies the
// global flags on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("data-dir") {
		cfg.Dictionary.DataDirs = c.StringSlice("data-dir")
	}
	if c.IsSet("cache-dir") {
		cfg.Dictionary.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("no-cache") {
		cfg.Dictionary.NoCache = c.Bool("no-cache")
	}
	if c.IsSet("encoding") {
		cfg.Dictionary.Encoding = c.String("encoding")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}
	return cfg, nil
}

// openDicts opens the dictionaries in the configured data directories. Data
// directories that do not exist are ignored unless they were given
// explicitly.
func openDicts(c *cli.Context, cfg *config.Config, logger *slog.Logger) ([]*jdict.Dictionary, error) {
	dirs := cfg.Dictionary.DataDirs
	explicit := len(dirs) > 0
	if !explicit {
		dirs = dictLocations()
	}

	enc, err := source.ParseEncoding(cfg.Dictionary.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}
	cacheDir, err := cfg.Dictionary.ResolveCacheDir()
	if err != nil {
		logger.Warn("caching disabled", "err", err)
	}

	dicts, errs := jdict.OpenAllContext(c.Context, dirs, &jdict.Options{
		Encoding: enc,
		CacheDir: cacheDir,
		Logger:   logger,
		Query: &query.Options{
			CaseSensitive: cfg.Search.CaseSensitive,
			MatchTimeout:  cfg.Search.MatchTimeout,
		},
	})
	for _, err := range errs {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			continue
		}
		fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", c.App.Name, err)
	}
	if len(dicts) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDictionaries, strings.Join(dirs, ", "))
	}
	return dicts, nil
}

func newJdutilApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Search Japanese dictionaries.",
		Description: strings.Join([]string{
			"Japanese dictionary utility written in Go.",
			"Searches EDICT, KANJIDIC, Tanaka Corpus, and KRADFILE files.",
			"http://github.com/ianlewis/go-jdict",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "data-dir",
				Usage:   "include dictionaries in `DIR` (default: system dictionary directories)",
				Aliases: []string{"d"},
			},
			&cli.StringFlag{
				Name:  "cache-dir",
				Usage: "store parsed dictionaries in `DIR`",
			},
			&cli.BoolFlag{
				Name:               "no-cache",
				Usage:              "do not read or write parsed dictionary caches",
				DisableDefaultText: true,
			},
			&cli.StringFlag{
				Name:  "encoding",
				Usage: "dictionary text `ENCODING` (auto, utf-8, euc-jp, shift_jis)",
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{config.PathEnv},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log `LEVEL` (debug, info, warn, error)",
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			listCommand,
			queryCommand,
		},
	}
}
