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

// Package score ranks dictionary values against search terms.
//
// A value is split into sections: the value with parenthetical asides
// removed, and each top-level aside on its own. Every section is scored
// independently and the best section score is the value's score.
package score

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ianlewis/go-jdict/morph"
)

// NoMatch is the score of a value that no term matches.
const NoMatch = math.MinInt

// Signal weights.
const (
	StartsWithWeight = 5
	DifferenceWeight = 1
	ContiguousWeight = 10
	InOrderWeight    = 5
)

var closers = map[rune]rune{
	'(': ')',
	'（': '）',
}

// Sections returns the sections of s. The first section is s with top-level
// parenthetical asides removed. It is followed by the text of each aside.
// Empty sections are omitted. Unbalanced parentheses are treated as text.
func Sections(s string) []string {
	var (
		main   strings.Builder
		asides []string
	)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		closer, ok := closers[r]
		if !ok {
			main.WriteRune(r)
			i += size
			continue
		}
		end := groupEnd(s, i+size, r, closer)
		if end < 0 {
			main.WriteString(s[i:])
			break
		}
		asides = append(asides, s[i+size:end])
		main.WriteByte(' ')
		i = end + utf8.RuneLen(closer)
	}

	var sections []string
	for _, sec := range append([]string{main.String()}, asides...) {
		if sec = strings.Join(strings.Fields(sec), " "); sec != "" {
			sections = append(sections, sec)
		}
	}
	return sections
}

// groupEnd returns the offset of the closer matching an opener that ends at
// start, or -1.
func groupEnd(s string, start int, opener, closer rune) int {
	depth := 1
	for i, r := range s[start:] {
		switch r {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return start + i
			}
		}
	}
	return -1
}

// Score returns the relevance of haystack to terms. Higher is better.
// [NoMatch] is returned when no term matches any section.
func Score(haystack string, terms []morph.Term) int {
	best := NoMatch
	for _, sec := range Sections(haystack) {
		if s := Section(sec, terms); s > best {
			best = s
		}
	}
	return best
}

type span struct {
	start, end int
}

// Section returns the score of a single section. [NoMatch] is returned when
// no term matches.
func Section(section string, terms []morph.Term) int {
	var spans []span
	for _, t := range terms {
		if start, end, ok := t.Find(section); ok {
			spans = append(spans, span{start, end})
		}
	}
	if len(spans) == 0 {
		return NoMatch
	}

	startsWith := 0
	if spans[0].start == 0 {
		startsWith = 1
	}

	difference := -utf8.RuneCountInString(section)
	for _, sp := range spans {
		difference += utf8.RuneCountInString(section[sp.start:sp.end])
	}

	contiguous, inOrder := 0, 0
	for i := 1; i < len(spans); i++ {
		prev, cur := spans[i-1], spans[i]
		if cur.start >= prev.end && isSeparator(section[prev.end:cur.start]) {
			contiguous++
		}
		if cur.start > prev.start {
			inOrder++
		} else {
			inOrder--
		}
	}

	return startsWith*StartsWithWeight +
		difference*DifferenceWeight +
		contiguous*ContiguousWeight +
		inOrder*InOrderWeight
}

// isSeparator reports whether s holds only spaces and hyphens.
func isSeparator(s string) bool {
	return strings.Trim(s, " -") == ""
}
