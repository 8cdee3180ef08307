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

package kanjidic_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-jdict/column"
	"github.com/ianlewis/go-jdict/format"
	"github.com/ianlewis/go-jdict/format/kanjidic"
)

func TestFormat_Load(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want map[column.ID][]string
	}{
		{
			name: "basic",
			text: "亜 3029 U9022 S10 G8 J1 ア つ.ぐ {-ous} {come after}",
			want: map[column.ID][]string{
				kanjidic.Kanji:         {"亜"},
				kanjidic.UnicodeSymbol: {"U9022"},
				kanjidic.StrokeCount:   {"S10"},
				kanjidic.GradeLevel:    {"G8"},
				kanjidic.JLPTLevel:     {"J1"},
				kanjidic.KunReadings:   {"ア"},
				kanjidic.OnReadings:    {"つ.ぐ"},
				kanjidic.Meanings:      {"-ous", "come after"},
			},
		},
		{
			name: "unknown codes dropped",
			text: "唖 3022 U5516 B30 C7 S10 XJ13560 F2487 N939 V795 ア アク おし {mute} {dumb}",
			want: map[column.ID][]string{
				kanjidic.Kanji:          {"唖"},
				kanjidic.UnicodeSymbol:  {"U5516"},
				kanjidic.StrokeCount:    {"S10"},
				kanjidic.UsageFrequency: {"F2487"},
				kanjidic.KunReadings:    {"ア", "アク"},
				kanjidic.OnReadings:     {"おし"},
				kanjidic.Meanings:       {"mute", "dumb"},
			},
		},
		{
			name: "no readings",
			text: "丂 U4e02 S2 {breath}",
			want: map[column.ID][]string{
				kanjidic.Kanji:         {"丂"},
				kanjidic.UnicodeSymbol: {"U4e02"},
				kanjidic.StrokeCount:   {"S2"},
				kanjidic.Meanings:      {"breath"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			l := format.Load(kanjidic.Format{}, test.text)
			got := map[column.ID][]string{}
			for _, id := range l.Columns() {
				got[id] = l.Get(id)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Load (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestFormat_Tokenize(t *testing.T) {
	t.Parallel()

	text := "亜 U9022 {come after} {Asia}"
	var got []string
	for _, r := range (kanjidic.Format{}).Tokenize(text) {
		got = append(got, r.Slice(text))
	}
	if diff := cmp.Diff([]string{"亜", "U9022", "come after", "Asia"}, got); diff != "" {
		t.Errorf("Tokenize (-want, +got):\n%s", diff)
	}
}

func TestFormat_Load_rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{
			name: "comment",
			text: "# KANJIDIC JIS X 0208 Kanji File",
		},
		{
			name: "unterminated brace",
			text: "亜 U9022 {come after",
		},
		{
			name: "no kanji",
			text: "U9022 S10 {come after}",
		},
		{
			name: "blank",
			text: " \t",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got := format.Load(kanjidic.Format{}, test.text); got.NumColumns() != 0 {
				t.Errorf("Load(%q); want: no columns, got: %v", test.text, got.Columns())
			}
		})
	}
}
