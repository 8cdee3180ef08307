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

// Package format defines the interface implemented by dictionary line
// formats.
//
// A format turns one line of dictionary text into a [line.Line] in two
// phases. Tokenize finds the token boundaries, rejecting malformed lines by
// returning no tokens. LoadColumns then classifies the tokens into the
// format's columns.
package format

import (
	"unicode"

	"github.com/ianlewis/go-jdict/column"
	"github.com/ianlewis/go-jdict/line"
)

// Format is a dictionary line format.
type Format interface {
	// Name returns the format's short name.
	Name() string

	// TotalColumns returns the number of columns defined by the format.
	TotalColumns() int

	// Columns returns the format's column table.
	Columns() column.Table

	// Tokenize splits a single line of text into tokens. Malformed lines
	// produce no tokens. Tokens refer to text.
	Tokenize(text string) []line.Ref

	// LoadColumns classifies tokens produced by Tokenize into columns.
	LoadColumns(text string, tokens []line.Ref) *line.Line
}

// Continuation is implemented by formats in which a line may extend the
// entry of the line before it.
type Continuation interface {
	// Continues reports whether text extends the previous line's entry.
	// Columns loaded from text are added to the previous line.
	Continues(text string) bool
}

// Load tokenizes text and loads it into a line.
func Load(f Format, text string) *line.Line {
	return f.LoadColumns(text, f.Tokenize(text))
}

// Language returns the language tag of a format's column.
func Language(f Format, id column.ID) column.Language {
	return f.Columns().Language(id)
}

// Handling returns the handling mode of a format's column.
func Handling(f Format, id column.ID) column.Handling {
	return f.Columns().Handling(id)
}

// IsSpace reports whether the byte is ASCII white space. Dictionary fields
// are separated by ASCII white space only.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

// SkipSpace returns the offset of the first non-space byte of text at or
// after i.
func SkipSpace(text string, i int) int {
	for i < len(text) && IsSpace(text[i]) {
		i++
	}
	return i
}

// TrimEnd returns the length of text with trailing white space removed.
func TrimEnd(text string) int {
	end := len(text)
	for end > 0 && IsSpace(text[end-1]) {
		end--
	}
	return end
}

// Fields splits text[start:end] around runs of ASCII white space.
func Fields(text string, start, end int) []line.Ref {
	var refs []line.Ref
	for i := start; i < end; {
		i = SkipSpace(text[:end], i)
		j := i
		for j < end && !IsSpace(text[j]) {
			j++
		}
		if j > i {
			refs = append(refs, line.Ref{Offset: i, Length: j - i})
		}
		i = j
	}
	return refs
}

// IsDigits reports whether s is a non-empty string of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsHex reports whether s is a non-empty string of hexadecimal digits.
func IsHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return false
		}
	}
	return true
}
