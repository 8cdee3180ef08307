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

package match_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-jdict/match"
)

type span struct {
	Text  string
	Match bool
	Index int
}

func spans(info *match.Info) []span {
	var got []span
	it := info.Iter()
	for it.Next() {
		got = append(got, span{Text: it.Text(), Match: it.Span().Match, Index: it.Span().Index})
	}
	return got
}

func TestIterator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  []string
		matches [][3]int
		want    []span
	}{
		{
			name:   "no matches",
			values: []string{"dog", "", "cat"},
			want: []span{
				{Text: "dog", Index: 0},
				{Text: "cat", Index: 2},
			},
		},
		{
			name:    "adjacent",
			values:  []string{"abcabc"},
			matches: [][3]int{{0, 3, 6}, {0, 0, 3}},
			want: []span{
				{Text: "abc", Match: true},
				{Text: "abc", Match: true},
			},
		},
		{
			name:    "nested",
			values:  []string{"xabcdefx"},
			matches: [][3]int{{0, 1, 7}, {0, 3, 5}},
			want: []span{
				{Text: "x"},
				{Text: "abcdef", Match: true},
				{Text: "x"},
			},
		},
		{
			name:    "overlapping",
			values:  []string{"abcdef"},
			matches: [][3]int{{0, 0, 4}, {0, 2, 6}},
			want: []span{
				{Text: "abcdef", Match: true},
			},
		},
		{
			name:    "multiple tokens",
			values:  []string{"big dog", "hot dog"},
			matches: [][3]int{{0, 4, 7}, {1, 4, 7}},
			want: []span{
				{Text: "big ", Index: 0},
				{Text: "dog", Match: true, Index: 0},
				{Text: "hot ", Index: 1},
				{Text: "dog", Match: true, Index: 1},
			},
		},
		{
			name:    "zero length and out of range ignored",
			values:  []string{"dog"},
			matches: [][3]int{{0, 1, 1}, {3, 0, 1}, {0, 2, 10}},
			want: []span{
				{Text: "do"},
				{Text: "g", Match: true},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			info := match.New(0, test.values)
			for _, m := range test.matches {
				info.Add(m[0], m[1], m[2])
			}
			if diff := cmp.Diff(test.want, spans(info)); diff != "" {
				t.Errorf("spans (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestInfo_Highlight(t *testing.T) {
	t.Parallel()

	info := match.New(2, []string{"hot dog", "", "dog food"})
	info.Add(2, 0, 3)
	info.Add(0, 4, 7)

	want := []string{"hot [dog]", "", "[dog] food"}
	if diff := cmp.Diff(want, info.Highlight("[", "]")); diff != "" {
		t.Errorf("Highlight (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"dog", "dog"}, info.MatchedText()); diff != "" {
		t.Errorf("MatchedText (-want, +got):\n%s", diff)
	}
	if !info.HasMatch() {
		t.Errorf("HasMatch; want: true")
	}
	if want, got := 2, info.Len(); want != got {
		t.Errorf("Len; want: %d, got: %d", want, got)
	}
}

func TestInfo_Markers(t *testing.T) {
	t.Parallel()

	info := match.New(0, []string{"abcabc"})
	info.Add(0, 3, 6)
	info.Add(0, 0, 3)

	want := []match.Marker{
		{Token: 0, Pos: 0, Kind: match.Open},
		{Token: 0, Pos: 3, Kind: match.Close},
		{Token: 0, Pos: 3, Kind: match.Open},
		{Token: 0, Pos: 6, Kind: match.Close},
	}
	if diff := cmp.Diff(want, info.Markers()); diff != "" {
		t.Errorf("Markers (-want, +got):\n%s", diff)
	}
}
