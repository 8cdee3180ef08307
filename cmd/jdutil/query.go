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
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	jdict "github.com/ianlewis/go-jdict"
	"github.com/ianlewis/go-jdict/query"
)

// ANSI escapes used to highlight matched text.
const (
	boldStart = "\x1b[1m"
	boldEnd   = "\x1b[0m"
)

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "Query dictionaries",
	ArgsUsage: "QUERY...",
	Description: `Query all dictionaries in the data directories.

Query terms are regular expressions. Terms may be joined with && (AND) and
|| (OR) and grouped with parentheses. Connectors are evaluated left to right.`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "limit",
			Usage:   "print at most `N` results (default: configured max results)",
			Aliases: []string{"n"},
		},
		&cli.StringSliceFlag{
			Name:  "filter",
			Usage: "only show results whose `COLUMN[=PATTERN]` has a value matching PATTERN",
		},
		&cli.StringSliceFlag{
			Name:  "dict",
			Usage: "only search the dictionary called `NAME`",
		},
		&cli.BoolFlag{
			Name:               "explain",
			Usage:              "print the parsed query tree before the results",
			DisableDefaultText: true,
		},
		&cli.BoolFlag{
			Name:               "no-color",
			Usage:              "do not highlight matched text",
			DisableDefaultText: true,
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("%w: missing query", ErrFlagParse)
		}
		text := strings.Join(c.Args().Slice(), " ")

		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		logger := newLogger(cfg.Log, c.App.ErrWriter)

		limit := cfg.Search.MaxResults
		if c.IsSet("limit") {
			limit = c.Int("limit")
		}
		filters, err := parseFilters(c.StringSlice("filter"))
		if err != nil {
			return err
		}

		if c.Bool("explain") {
			n, err := query.Build(text)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFlagParse, err)
			}
			fmt.Fprintln(c.App.Writer, n)
			fmt.Fprintln(c.App.Writer)
		}

		dicts, err := openDicts(c, cfg, logger)
		if err != nil {
			return err
		}

		names := map[string]bool{}
		for _, n := range c.StringSlice("dict") {
			names[n] = true
		}

		var results []*jdict.Result
		for _, d := range dicts {
			if len(names) > 0 && !names[d.Name()] {
				continue
			}
			r, err := d.Search(c.Context, text, &jdict.SearchOptions{
				Limit:   limit,
				Filters: filters,
			})
			if err != nil {
				return fmt.Errorf("searching %s: %w", d.Name(), err)
			}
			results = append(results, r...)
		}

		jdict.SortResults(results)
		if limit > 0 && len(results) > limit {
			results = results[:limit]
		}

		before, after := boldStart, boldEnd
		if c.Bool("no-color") {
			before, after = "", ""
		}
		for _, r := range results {
			printResult(c.App.Writer, r, before, after)
		}
		return nil
	},
}

// parseFilters parses COLUMN[=PATTERN] filter flags.
func parseFilters(flags []string) ([]jdict.Filter, error) {
	var filters []jdict.Filter
	for _, f := range flags {
		col, pattern, _ := strings.Cut(f, "=")
		if col == "" {
			return nil, fmt.Errorf("%w: invalid filter %q", ErrFlagParse, f)
		}
		filters = append(filters, jdict.Filter{Column: col, Pattern: pattern})
	}
	return filters, nil
}

// printResult prints a result on a single line. Searchable column values are
// highlighted.
func printResult(w io.Writer, r *jdict.Result, before, after string) {
	var parts []string
	for _, col := range r.Columns() {
		vals := r.Highlight(col.ID, before, after)
		if len(vals) == 0 {
			continue
		}
		parts = append(parts, col.Name+": "+strings.Join(vals, "; "))
	}
	fmt.Fprintf(w, "%s:%d\t%s\n", r.Dictionary().Name(), r.Line+1, strings.Join(parts, " | "))
}
