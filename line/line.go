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

// Package line implements parsed dictionary lines.
//
// A [Line] maps column IDs to ordered lists of tokens. Tokens are never
// copied out of the dictionary text. Each token is a [Ref] giving the byte
// offset and length of the token within the line's content buffer, which
// makes a line cheap to build and trivially relocatable when serialized.
package line

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ianlewis/go-jdict/column"
)

// Ref is a relative reference to a token within a content buffer.
type Ref struct {
	// Offset is the byte offset of the token.
	Offset int

	// Length is the length of the token in bytes.
	Length int
}

// End returns the byte offset just past the end of the token.
func (r Ref) End() int {
	return r.Offset + r.Length
}

// Valid reports whether the reference lies within content and the referenced
// text is valid UTF-8.
func (r Ref) Valid(content string) bool {
	if r.Offset < 0 || r.Length < 0 || r.End() > len(content) {
		return false
	}
	return utf8.ValidString(content[r.Offset:r.End()])
}

// Slice returns the referenced text. Slice panics if the reference is out of
// range.
func (r Ref) Slice(content string) string {
	return content[r.Offset:r.End()]
}

// TrimSpace returns the reference shrunk so that the referenced text has no
// leading or trailing white space.
func (r Ref) TrimSpace(content string) Ref {
	s := r.Slice(content)
	trimmed := strings.TrimLeftFunc(s, unicode.IsSpace)
	r.Offset += len(s) - len(trimmed)
	trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
	r.Length = len(trimmed)
	return r
}

// Shift returns the reference moved by delta bytes.
func (r Ref) Shift(delta int) Ref {
	r.Offset += delta
	return r
}

type col struct {
	id   column.ID
	refs []Ref
}

// Line is a parsed dictionary line. The zero value is an empty line with no
// content.
type Line struct {
	content string
	cols    []col
}

// New returns a new empty line whose tokens refer to content.
func New(content string) *Line {
	return &Line{content: content}
}

// Content returns the buffer that the line's tokens refer to.
func (l *Line) Content() string {
	return l.content
}

// Set replaces the tokens of the given column. Setting an empty token list
// removes the column.
func (l *Line) Set(id column.ID, refs []Ref) {
	i := l.find(id)
	if len(refs) == 0 {
		if i >= 0 {
			l.cols = slices.Delete(l.cols, i, i+1)
		}
		return
	}
	refs = slices.Clone(refs)
	if i >= 0 {
		l.cols[i].refs = refs
		return
	}
	l.cols = append(l.cols, col{id: id, refs: refs})
}

// Refs returns the token references for a column or nil if the column is not
// present.
func (l *Line) Refs(id column.ID) []Ref {
	if i := l.find(id); i >= 0 {
		return l.cols[i].refs
	}
	return nil
}

// Get returns the values of a column or nil if the column is not present. The
// returned strings share memory with the line's content.
func (l *Line) Get(id column.ID) []string {
	refs := l.Refs(id)
	if refs == nil {
		return nil
	}
	values := make([]string, len(refs))
	for i, r := range refs {
		values[i] = r.Slice(l.content)
	}
	return values
}

// Has reports whether the column is present.
func (l *Line) Has(id column.ID) bool {
	return l.find(id) >= 0
}

// NumColumns returns the number of populated columns.
func (l *Line) NumColumns() int {
	return len(l.cols)
}

// Columns returns the IDs of the populated columns in the order they were
// set.
func (l *Line) Columns() []column.ID {
	ids := make([]column.ID, len(l.cols))
	for i, c := range l.cols {
		ids[i] = c.id
	}
	return ids
}

// Relocate rebinds the line to a new content buffer. Every token is moved by
// delta bytes. Relocate is used to rebase a line tokenized from a slice of a
// larger buffer onto the whole buffer.
func (l *Line) Relocate(content string, delta int) {
	l.content = content
	if delta == 0 {
		return
	}
	for i := range l.cols {
		for j := range l.cols[i].refs {
			l.cols[i].refs[j] = l.cols[i].refs[j].Shift(delta)
		}
	}
}

func (l *Line) find(id column.ID) int {
	for i, c := range l.cols {
		if c.id == id {
			return i
		}
	}
	return -1
}
