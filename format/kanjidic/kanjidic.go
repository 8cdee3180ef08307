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

// Package kanjidic implements the KANJIDIC kanji attribute line format.
//
// A KANJIDIC line holds a kanji followed by white space separated codes,
// readings, and brace-wrapped meanings:
//
//	亜 3021 U4e9c G8 S7 F1509 J1 ア つ.ぐ {Asia} {rank next}
//
// Only the codes with a column are kept. Other codes are dropped.
package kanjidic

import (
	"strings"

	"github.com/ianlewis/go-jdict/column"
	"github.com/ianlewis/go-jdict/format"
	"github.com/ianlewis/go-jdict/internal/script"
	"github.com/ianlewis/go-jdict/line"
)

// Column IDs.
const (
	Kanji column.ID = iota
	UnicodeSymbol
	UsageFrequency
	StrokeCount
	GradeLevel
	JLPTLevel
	KunReadings
	OnReadings
	Meanings
)

var columns = column.Table{
	{ID: Kanji, Name: "kanji", Language: column.Japanese, Handling: column.IndexAndSearch},
	{ID: UnicodeSymbol, Name: "unicode", Language: column.Symbol, Handling: column.FilterOnly},
	{ID: UsageFrequency, Name: "frequency", Language: column.Number, Handling: column.FilterOnly},
	{ID: StrokeCount, Name: "strokes", Language: column.Number, Handling: column.FilterOnly},
	{ID: GradeLevel, Name: "grade", Language: column.Number, Handling: column.FilterOnly},
	{ID: JLPTLevel, Name: "jlpt", Language: column.Number, Handling: column.FilterOnly},
	{ID: KunReadings, Name: "kun", Language: column.Japanese, Handling: column.IndexAndSearch},
	{ID: OnReadings, Name: "on", Language: column.Japanese, Handling: column.IndexAndSearch},
	{ID: Meanings, Name: "meanings", Language: column.English, Handling: column.IndexAndSearch},
}

// code maps a single letter code prefix to its column.
type code struct {
	prefix byte
	id     column.ID
	valid  func(string) bool
}

var codes = []code{
	{prefix: 'U', id: UnicodeSymbol, valid: format.IsHex},
	{prefix: 'F', id: UsageFrequency, valid: format.IsDigits},
	{prefix: 'S', id: StrokeCount, valid: format.IsDigits},
	{prefix: 'G', id: GradeLevel, valid: format.IsDigits},
	{prefix: 'J', id: JLPTLevel, valid: format.IsDigits},
}

// Format is the KANJIDIC format.
type Format struct{}

var _ format.Format = Format{}

// Name implements [format.Format.Name].
func (Format) Name() string {
	return "kanjidic"
}

// TotalColumns implements [format.Format.TotalColumns].
func (Format) TotalColumns() int {
	return len(columns)
}

// Columns implements [format.Format.Columns].
func (Format) Columns() column.Table {
	return columns
}

// Tokenize implements [format.Format.Tokenize]. Brace-wrapped text is a
// single token with the braces removed.
func (Format) Tokenize(text string) []line.Ref {
	end := format.TrimEnd(text)
	i := format.SkipSpace(text, 0)
	if i >= end || text[i] == '#' {
		return nil
	}

	var tokens []line.Ref
	for i < end {
		if text[i] == '{' {
			closing := strings.IndexByte(text[i+1:end], '}')
			if closing < 0 {
				return nil
			}
			if r := (line.Ref{Offset: i + 1, Length: closing}).TrimSpace(text); r.Length > 0 {
				tokens = append(tokens, r)
			}
			i = format.SkipSpace(text[:end], i+closing+2)
			continue
		}

		j := i
		for j < end && !format.IsSpace(text[j]) {
			j++
		}
		tokens = append(tokens, line.Ref{Offset: i, Length: j - i})
		i = format.SkipSpace(text[:end], j)
	}
	return tokens
}

// braced reports whether the token was wrapped in braces.
func braced(text string, r line.Ref) bool {
	i := r.Offset - 1
	for i >= 0 && format.IsSpace(text[i]) {
		i--
	}
	return i >= 0 && text[i] == '{'
}

// LoadColumns implements [format.Format.LoadColumns].
func (Format) LoadColumns(text string, tokens []line.Ref) *line.Line {
	l := line.New(text)

	// Meanings are taken from the tail first.
	n := len(tokens)
	for n > 0 && braced(text, tokens[n-1]) && !script.KanaOnly(tokens[n-1].Slice(text)) {
		n--
	}
	meanings := tokens[n:]
	tokens = tokens[:n]

	var kanji, on, kun []line.Ref
	byCode := map[column.ID][]line.Ref{}
	for _, t := range tokens {
		s := t.Slice(text)
		switch {
		case kanji == nil && script.Only(s, script.IsHan):
			kanji = append(kanji, t)
		// Inverted on purpose: hiragana readings go to on and katakana
		// readings to kun.
		case script.HiraganaOnly(s):
			on = append(on, t)
		case script.KatakanaOnly(s):
			kun = append(kun, t)
		default:
			for _, c := range codes {
				if s[0] == c.prefix && c.valid(s[1:]) {
					byCode[c.id] = append(byCode[c.id], t)
					break
				}
			}
		}
	}

	if kanji == nil {
		return l
	}
	l.Set(Kanji, kanji)
	for _, c := range codes {
		l.Set(c.id, byCode[c.id])
	}
	l.Set(KunReadings, kun)
	l.Set(OnReadings, on)
	l.Set(Meanings, meanings)
	return l
}
