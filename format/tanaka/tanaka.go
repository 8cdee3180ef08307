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

// Package tanaka implements the Tanaka Corpus example sentence line format.
//
// Sentences are stored as pairs of lines. The A line holds the Japanese
// phrase, its English translation, and an ID. The B line holds the phrase
// broken into words with readings and sense indices. Its words are loaded
// into the A line's entry.
//
//	A: 何かあったら電話して下さい。	Call me if anything happens.#ID=1234_5678
//	B: 何か{なにか} 有る{あった} 電話 為る(する){して} 下さい
package tanaka

import (
	"strings"

	"github.com/ianlewis/go-jdict/column"
	"github.com/ianlewis/go-jdict/format"
	"github.com/ianlewis/go-jdict/line"
)

// Column IDs.
const (
	Phrase column.ID = iota
	Meaning
	ID
	PhraseWithReadings
)

const (
	phraseMarker   = "A:"
	readingsMarker = "B:"
	idPrefix       = "ID="
)

var columns = column.Table{
	{ID: Phrase, Name: "phrase", Language: column.Japanese, Handling: column.IndexAndSearch},
	{ID: Meaning, Name: "meaning", Language: column.English, Handling: column.IndexAndSearch},
	{ID: ID, Name: "id", Language: column.Number, Handling: column.FilterOnly},
	{ID: PhraseWithReadings, Name: "words", Language: column.Japanese, Handling: column.IndexAndSearch},
}

// Format is the Tanaka Corpus format.
type Format struct{}

var _ format.Format = Format{}

// Name implements [format.Format.Name].
func (Format) Name() string {
	return "tanaka"
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
	i := format.SkipSpace(text, 0)

	switch {
	case strings.HasPrefix(text[i:], readingsMarker):
		return format.Fields(text, i+len(readingsMarker), end)
	case !strings.HasPrefix(text[i:], phraseMarker):
		return nil
	}

	i = format.SkipSpace(text, i+len(phraseMarker))
	start := i
	for i < end && !format.IsSpace(text[i]) {
		i++
	}
	if i == start {
		return nil
	}
	phrase := line.Ref{Offset: start, Length: i - start}

	hash := strings.IndexByte(text[i:], '#')
	if hash < 0 {
		return nil
	}
	meaning := line.Ref{Offset: i, Length: hash}.TrimSpace(text)
	if meaning.Length == 0 {
		return nil
	}

	id := line.Ref{Offset: i + hash + 1, Length: end - (i + hash + 1)}.TrimSpace(text)
	if strings.HasPrefix(id.Slice(text), idPrefix) {
		id.Offset += len(idPrefix)
		id.Length -= len(idPrefix)
	}
	if id.Length == 0 {
		return nil
	}

	return []line.Ref{phrase, meaning, id}
}

var _ format.Continuation = Format{}

// Continues implements [format.Continuation.Continues]. A B: line holds the
// words of the A: line before it.
func (Format) Continues(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, " \t"), readingsMarker)
}

// LoadColumns implements [format.Format.LoadColumns].
func (Format) LoadColumns(text string, tokens []line.Ref) *line.Line {
	l := line.New(text)
	if len(tokens) == 0 {
		return l
	}

	if (Format{}).Continues(text) {
		l.Set(PhraseWithReadings, tokens)
		return l
	}
	if len(tokens) != 3 {
		return l
	}
	l.Set(Phrase, tokens[:1])
	l.Set(Meaning, tokens[1:2])
	l.Set(ID, tokens[2:])
	return l
}
