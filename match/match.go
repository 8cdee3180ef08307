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

// Package match records where a query matched the values of a column.
//
// Matches are recorded as open and close markers on the column's tokens.
// Overlapping and adjacent matches are allowed. An [Iterator] walks the
// tokens and yields maximal spans of text that are either inside a match or
// outside every match.
package match

import (
	"slices"
	"strings"

	"github.com/ianlewis/go-jdict/column"
)

// Kind is the kind of a marker.
type Kind int

const (
	// Close ends a match. Close markers sort before Open markers at the same
	// position so that adjacent matches do not overlap.
	Close Kind = iota

	// Open starts a match.
	Open
)

// Marker marks the start or end of a match within a token.
type Marker struct {
	// Token is the index of the token.
	Token int

	// Pos is the byte offset within the token.
	Pos int

	// Kind is the kind of the marker.
	Kind Kind
}

func compareMarkers(a, b Marker) int {
	if a.Token != b.Token {
		return a.Token - b.Token
	}
	if a.Pos != b.Pos {
		return a.Pos - b.Pos
	}
	return int(a.Kind) - int(b.Kind)
}

// Info holds the matches found in a single column of a line.
type Info struct {
	column  column.ID
	values  []string
	markers []Marker
	sorted  bool
}

// New returns a new Info for the given column values.
func New(id column.ID, values []string) *Info {
	return &Info{
		column: id,
		values: values,
		sorted: true,
	}
}

// Column returns the ID of the column.
func (i *Info) Column() column.ID {
	return i.column
}

// Values returns the column's values.
func (i *Info) Values() []string {
	return i.values
}

// Add records a match of the byte range [start, end) of the token at index
// token. Ranges outside the token are clipped. Empty ranges are ignored.
func (i *Info) Add(token, start, end int) {
	if token < 0 || token >= len(i.values) {
		return
	}
	n := len(i.values[token])
	start = max(min(start, n), 0)
	end = max(min(end, n), 0)
	if start >= end {
		return
	}
	i.markers = append(i.markers,
		Marker{Token: token, Pos: start, Kind: Open},
		Marker{Token: token, Pos: end, Kind: Close},
	)
	i.sorted = false
}

// HasMatch reports whether any match was recorded.
func (i *Info) HasMatch() bool {
	return len(i.markers) > 0
}

// Len returns the number of matches recorded.
func (i *Info) Len() int {
	return len(i.markers) / 2
}

// Markers returns the markers in sorted order.
func (i *Info) Markers() []Marker {
	i.sort()
	return i.markers
}

func (i *Info) sort() {
	if !i.sorted {
		slices.SortFunc(i.markers, compareMarkers)
		i.sorted = true
	}
}

// Iter returns an iterator over the spans of the column's values.
func (i *Info) Iter() *Iterator {
	i.sort()
	return &Iterator{info: i}
}

// MatchedText returns the matched spans of text in order.
func (i *Info) MatchedText() []string {
	var s []string
	it := i.Iter()
	for it.Next() {
		if it.Span().Match {
			s = append(s, it.Text())
		}
	}
	return s
}

// Highlight returns the column's values with every matched span wrapped in
// before and after.
func (i *Info) Highlight(before, after string) []string {
	out := make([]string, len(i.values))
	var b strings.Builder
	idx := 0
	flush := func(next int) {
		for idx < next {
			out[idx] = b.String()
			b.Reset()
			idx++
		}
	}

	it := i.Iter()
	for it.Next() {
		span := it.Span()
		flush(span.Index)
		if span.Match {
			b.WriteString(before)
		}
		b.WriteString(it.Text())
		if span.Match {
			b.WriteString(after)
		}
	}
	flush(len(i.values))
	return out
}

// Span is a maximal run of text within a token that is either entirely
// inside a match or entirely outside every match.
type Span struct {
	// Index is the index of the token.
	Index int

	// Start and End are the byte bounds of the span within the token.
	Start, End int

	// Match is true if the span is inside a match.
	Match bool
}

// Iterator iterates over the spans of an [Info].
type Iterator struct {
	info   *Info
	index  int
	marker int
	start  int
	level  int
	span   Span
}

// Next advances to the next span. It returns false when there are no more
// spans. Empty tokens produce no spans.
func (it *Iterator) Next() bool {
	values := it.info.values
	markers := it.info.markers
	for it.index < len(values) {
		for it.marker < len(markers) && markers[it.marker].Token == it.index {
			m := markers[it.marker]
			was := it.level > 0
			level := it.level
			if m.Kind == Open {
				level++
			} else if level > 0 {
				level--
			}
			it.marker++
			it.level = level

			if was != (level > 0) && m.Pos > it.start {
				it.span = Span{Index: it.index, Start: it.start, End: m.Pos, Match: was}
				it.start = m.Pos
				return true
			}
		}

		if n := len(values[it.index]); it.start < n {
			it.span = Span{Index: it.index, Start: it.start, End: n, Match: it.level > 0}
			it.start = n
			return true
		}

		it.index++
		it.start = 0
		it.level = 0
	}
	return false
}

// Span returns the current span.
func (it *Iterator) Span() Span {
	return it.span
}

// Text returns the text of the current span.
func (it *Iterator) Text() string {
	return it.info.values[it.span.Index][it.span.Start:it.span.End]
}
