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

package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// spaceState is the state of a [SpaceFolder].
type spaceState int

const (
	// leading is the state before the first non-space rune.
	leading spaceState = iota

	// inWord is the state while copying non-space runes.
	inWord

	// inGap is the state while skipping a run of spaces after a word.
	inGap
)

// SpaceFolder collapses runs of white space, including the ideographic space
// used in Japanese text, into a single ASCII space. Leading and trailing white
// space is dropped.
type SpaceFolder struct {
	state spaceState
}

var _ transform.Transformer = (*SpaceFolder)(nil)

// Transform implements [transform.Transformer.Transform].
func (f *SpaceFolder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(r) {
			if f.state == inWord {
				f.state = inGap
			}
			nSrc += size
			continue
		}

		// Invalid bytes are written as the replacement rune.
		need := utf8.RuneLen(r)
		if f.state == inGap {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if f.state == inGap {
			dst[nDst] = ' '
			nDst++
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
		f.state = inWord
	}
	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (f *SpaceFolder) Reset() {
	f.state = leading
}
