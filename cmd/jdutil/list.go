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
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

var listCommand = &cli.Command{
	Name:  "list",
	Usage: "List dictionaries",
	Description: `List all dictionaries in the data directories.

Malformed lines are lines that could not be read as dictionary entries,
such as comments and file headers.`,
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		logger := newLogger(cfg.Log, c.App.ErrWriter)

		dicts, err := openDicts(c, cfg, logger)
		if err != nil {
			return err
		}

		tbl := table.New("Name", "Format", "Lines", "Malformed", "Cached", "Path").
			WithWriter(c.App.Writer)
		for _, d := range dicts {
			st := d.Stats()
			tbl.AddRow(d.Name(), d.Format().Name(), st.Lines, st.Malformed, d.Cached(), d.Path())
		}
		tbl.Print()

		return nil
	},
}
