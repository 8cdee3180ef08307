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

// Package edict implements the EDICT word/reading/definition line format.
//
// An EDICT line has the form:
//
//	WORD [READING] /(pos) gloss/gloss/(P)/
//
// The reading is optional. The first gloss must start with a parenthesized
// part of speech tag.
package edict

import (
	"strings"

	"github.com/ianlewis/go-jdict/column"
	"github.com/ianlewis/go-jdict/format"
	"github.com/ianlewis/go-jdict/internal/script"
	"github.com/ianlewis/go-jdict/line"
)

// Column IDs.
const (
	Word column.ID = iota
	Reading
	Definition
	Classification
	Popular
)

// PopularMarker marks an entry as a common word.
const PopularMarker = "(P)"

// entryPrefix starts the EDICT2 entry sequence number gloss.
const entryPrefix = "EntL"

var columns = column.Table{
	{ID: Word, Name: "word", Language: column.Japanese, Handling: column.IndexAndSearch},
	{ID: Reading, Name: "reading", Language: column.Japanese, Handling: column.IndexAndSearch},
	{ID: Definition, Name: "definition", Language: column.English, Handling: column.IndexAndSearch},
	{ID: Classification, Name: "classification", Language: column.English, Handling: column.FilterOnly},
	{ID: Popular, Name: "popular", Language: column.English, Handling: column.FilterOnly},
}

// Format is the EDICT format.
type Format struct{}

var _ format.Format = Format{}

// Name implements [format.Format.Name].
func (Format) Name() string {
	return "edict"
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
	end := format.TrimEnd(text)
	text = text[:end]

	// Headword.
	i := format.SkipSpace(text, 0)
	start := i
	for i < end && !format.IsSpace(text[i]) {
		i++
	}
	if i == start {
		return nil
	}
	tokens := []line.Ref{{Offset: start, Length: i - start}}

	// Optional reading.
	i = format.SkipSpace(text, i)
	if i < end && text[i] == '[' {
		closing := strings.IndexByte(text[i+1:], ']')
		if closing < 0 {
			return nil
		}
		r := line.Ref{Offset: i + 1, Length: closing}.TrimSpace(text)
		if r.Length > 1 {
			tokens = append(tokens, r)
		}
		i = format.SkipSpace(text, i+closing+2)
	}

	if i >= end || text[i] != '/' {
		return nil
	}

	var glosses []line.Ref
	for i < end {
		i++
		j := strings.IndexByte(text[i:], '/')
		if j < 0 {
			j = end - i
		}
		if r := (line.Ref{Offset: i, Length: j}).TrimSpace(text); r.Length > 0 {
			glosses = append(glosses, r)
		}
		i += j
	}
	if len(glosses) == 0 || text[glosses[0].Offset] != '(' {
		return nil
	}

	if last := glosses[len(glosses)-1]; strings.HasPrefix(last.Slice(text), entryPrefix) {
		glosses = glosses[:len(glosses)-1]
	}
	var popular []line.Ref
	if n := len(glosses); n > 0 && glosses[n-1].Slice(text) == PopularMarker {
		popular = glosses[n-1:]
		glosses = glosses[:n-1]
	}

	for _, g := range glosses {
		if g = stripGroups(text, g); g.Length > 0 {
			tokens = append(tokens, g)
		}
	}
	return append(tokens, popular...)
}

// stripGroups removes leading parenthesized groups such as part of speech
// tags and sense numbers from a gloss.
func stripGroups(text string, r line.Ref) line.Ref {
	for r.Length > 0 && text[r.Offset] == '(' {
		depth := 0
		n := -1
		for i, c := range r.Slice(text) {
			if c == '(' {
				depth++
			} else if c == ')' {
				depth--
				if depth == 0 {
					n = i + 1
					break
				}
			}
		}
		if n < 0 {
			break
		}
		r = line.Ref{Offset: r.Offset + n, Length: r.Length - n}.TrimSpace(text)
	}
	return r
}

// LoadColumns implements [format.Format.LoadColumns].
func (Format) LoadColumns(text string, tokens []line.Ref) *line.Line {
	l := line.New(text)
	if len(tokens) == 0 {
		return l
	}

	if last := tokens[len(tokens)-1]; len(tokens) > 1 && last.Slice(text) == PopularMarker {
		l.Set(Popular, tokens[len(tokens)-1:])
		tokens = tokens[:len(tokens)-1]
	}

	l.Set(Word, tokens[:1])
	tokens = tokens[1:]

	if len(tokens) > 0 && script.KanaOnly(tokens[0].Slice(text)) {
		l.Set(Reading, tokens[:1])
		tokens = tokens[1:]
	}

	if len(tokens) > 0 && script.Only(tokens[0].Slice(text), script.IsCommon) {
		l.Set(Classification, tokens[:1])
		tokens = tokens[1:]
	}

	l.Set(Definition, tokens)
	return l
}
