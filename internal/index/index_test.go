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

package index

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func entries(keys ...string) []Entry[int] {
	var e []Entry[int]
	for i, k := range keys {
		e = append(e, Entry[int]{Key: k, Value: i})
	}
	return e
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		keys     []string
		query    string
		expected []int
	}{
		{
			name:     "single results",
			keys:     []string{"いぬ", "ねこ", "犬", "ねこ"},
			query:    "いぬ",
			expected: []int{0},
		},
		{
			name:     "multiple results keep order",
			keys:     []string{"いぬ", "ねこ", "犬", "ねこ"},
			query:    "ねこ",
			expected: []int{1, 3},
		},
		{
			name:     "no results",
			keys:     []string{"いぬ", "ねこ", "犬", "ねこ"},
			query:    "とり",
			expected: nil,
		},
		{
			name:     "empty index",
			query:    "いぬ",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			index := New(entries(test.keys...))

			if diff := cmp.Diff(test.expected, index.Search(test.query)); diff != "" {
				t.Fatalf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_Prefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		keys     []string
		prefix   string
		expected []int
	}{
		{
			name:     "prefix",
			keys:     []string{"hotdog", "dog", "dogfood", "cat", "do"},
			prefix:   "dog",
			expected: []int{1, 2},
		},
		{
			name:     "empty prefix",
			keys:     []string{"b", "a"},
			prefix:   "",
			expected: []int{1, 0},
		},
		{
			name:     "no results",
			keys:     []string{"dog"},
			prefix:   "cat",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			index := New(entries(test.keys...))

			if diff := cmp.Diff(test.expected, index.Prefix(test.prefix)); diff != "" {
				t.Fatalf("Prefix (-want, +got):\n%s", diff)
			}
		})
	}
}
