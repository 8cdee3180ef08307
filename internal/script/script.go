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

// Package script classifies text by Unicode script.
package script

import (
	"strings"
	"unicode"
)

// prolongedSound is the katakana-hiragana prolonged sound mark. It belongs to
// the Common script but only appears in kana text.
const prolongedSound = 'ー'

// IsHan reports whether r is a CJK ideograph.
func IsHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// IsHiragana reports whether r is hiragana.
func IsHiragana(r rune) bool {
	return unicode.Is(unicode.Hiragana, r) || r == prolongedSound
}

// IsKatakana reports whether r is katakana.
func IsKatakana(r rune) bool {
	return unicode.Is(unicode.Katakana, r) || r == prolongedSound
}

// IsKana reports whether r is hiragana or katakana.
func IsKana(r rune) bool {
	return IsHiragana(r) || IsKatakana(r)
}

// IsLatin reports whether r is a Latin letter.
func IsLatin(r rune) bool {
	return unicode.Is(unicode.Latin, r)
}

// IsCommon reports whether r belongs to the Common script, which covers
// punctuation, digits, and symbols shared between scripts.
func IsCommon(r rune) bool {
	return unicode.Is(unicode.Common, r) && r != prolongedSound
}

// IsPunct reports whether r is punctuation.
func IsPunct(r rune) bool {
	return unicode.IsPunct(r)
}

// Only reports whether s is non-empty and every rune of s satisfies at least
// one of preds.
func Only(s string, preds ...func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !anyOf(r, preds) {
			return false
		}
	}
	return true
}

// Contains reports whether any rune of s satisfies pred.
func Contains(s string, pred func(rune) bool) bool {
	return strings.IndexFunc(s, pred) >= 0
}

func anyOf(r rune, preds []func(rune) bool) bool {
	for _, p := range preds {
		if p(r) {
			return true
		}
	}
	return false
}

// KanaOnly reports whether s holds kana with optional punctuation.
func KanaOnly(s string) bool {
	return Contains(s, IsKana) && Only(s, IsKana, IsPunct)
}

// HiraganaOnly reports whether s holds hiragana with optional punctuation.
func HiraganaOnly(s string) bool {
	return Contains(s, IsHiragana) && Only(s, IsHiragana, IsPunct)
}

// KatakanaOnly reports whether s holds katakana with optional punctuation.
func KatakanaOnly(s string) bool {
	return Contains(s, IsKatakana) && Only(s, IsKatakana, IsPunct)
}

// HasJapanese reports whether s contains any kana or kanji.
func HasJapanese(s string) bool {
	return Contains(s, func(r rune) bool { return IsKana(r) || IsHan(r) })
}

// katakanaOffset is the distance between a katakana code point and its
// hiragana counterpart.
const katakanaOffset = 'ア' - 'あ'

// ToHiragana converts katakana in s to hiragana. Katakana without a hiragana
// counterpart are left unchanged.
func ToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ァ' && r <= 'ヶ' {
			return r - katakanaOffset
		}
		return r
	}, s)
}
