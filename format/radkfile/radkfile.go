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

// Package radkfile implements the kanji to radical decomposition line format
// used by KRADFILE.
//
//	亜 : 一 ｜ 口
package radkfile

import (
	"github.com/ianlewis/go-jdict/column"
	"github.com/ianlewis/go-jdict/format"
	"github.com/ianlewis/go-jdict/line"
)

// Column IDs.
const (
	Kanji column.ID = iota
	Radicals
)

var columns = column.Table{
	{ID: Kanji, Name: "kanji", Language: column.Japanese, Handling: column.IndexAndSearch},
	{ID: Radicals, Name: "radicals", Language: column.Japanese, Handling: column.IndexAndSearch},
}

// Format is the KRADFILE format.
type Format struct{}

var _ format.Format = Format{}

// Name implements [format.Format.Name].
func (Format) Name() string {
	return "radkfile"
}

// TotalColumns implements [format.Format.TotalColumns].
func (Format) TotalColumns() int {
	return len(columns)
}

// Columns implements [format.Format.Columns].
func (Format) Columns() column.Table {
	return columns
}

// Tokenize implements [format.Format.Tokenize].
func (Format) Tokenize(text string) []line.Ref {
	fields := format.Fields(text, 0, len(text))
	if len(fields) < 3 || text[fields[0].Offset] == '#' || fields[1].Slice(text) != ":" {
		return nil
	}
	return append(fields[:1], fields[2:]...)
}

// LoadColumns implements [format.Format.LoadColumns].
func (Format) LoadColumns(text string, tokens []line.Ref) *line.Line {
	l := line.New(text)
	if len(tokens) < 2 {
		return l
	}
	l.Set(Kanji, tokens[:1])
	l.Set(Radicals, tokens[1:])
	return l
}
