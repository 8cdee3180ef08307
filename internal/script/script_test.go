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

package script

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s        string
		kana     bool
		hiragana bool
		katakana bool
		japanese bool
	}{
		{s: "いぬ", kana: true, hiragana: true, japanese: true},
		{s: "つ.ぐ", kana: true, hiragana: true, japanese: true},
		{s: "ア", kana: true, katakana: true, japanese: true},
		{s: "コーヒー", kana: true, katakana: true, japanese: true},
		{s: "犬", japanese: true},
		{s: "犬いぬ", japanese: true},
		{s: "dog"},
		{s: "..."},
		{s: ""},
	}

	for _, test := range tests {
		t.Run(test.s, func(t *testing.T) {
			t.Parallel()

			if want, got := test.kana, KanaOnly(test.s); want != got {
				t.Errorf("KanaOnly(%q); want: %v, got: %v", test.s, want, got)
			}
			if want, got := test.hiragana, HiraganaOnly(test.s); want != got {
				t.Errorf("HiraganaOnly(%q); want: %v, got: %v", test.s, want, got)
			}
			if want, got := test.katakana, KatakanaOnly(test.s); want != got {
				t.Errorf("KatakanaOnly(%q); want: %v, got: %v", test.s, want, got)
			}
			if want, got := test.japanese, HasJapanese(test.s); want != got {
				t.Errorf("HasJapanese(%q); want: %v, got: %v", test.s, want, got)
			}
		})
	}
}

func TestOnly_common(t *testing.T) {
	t.Parallel()

	if !Only("(n),(adj-na)", IsCommon, IsLatin) {
		t.Errorf("Only: want true for classification text")
	}
	if Only("(n) dog", IsCommon) {
		t.Errorf("Only: want false for Latin text")
	}
}

func TestToHiragana(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"カタカナ":  "かたかな",
		"コーヒー":  "こーひー",
		"ひらがな":  "ひらがな",
		"漢字カナ":  "漢字かな",
		"abc":   "abc",
		"ヴァイオリン": "ゔぁいおりん",
	}

	for in, want := range tests {
		if got := ToHiragana(in); want != got {
			t.Errorf("ToHiragana(%q); want: %q, got: %q", in, want, got)
		}
	}
}
