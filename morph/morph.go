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

// Package morph produces the morphological variants of search terms that are
// used to score results.
//
// Each term has up to four variants, tried in order: the raw text, a
// canonical form with katakana converted to hiragana, a normalized form with
// width and case folded, and a stem. English stems are computed with the
// Snowball stemmer. Japanese base forms are computed with the kagome
// morphological analyzer using the IPA dictionary.
package morph

import (
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
	"github.com/kljensen/snowball/english"

	"github.com/ianlewis/go-jdict/internal/folding"
	"github.com/ianlewis/go-jdict/internal/script"
)

// Variant identifies a morphological variant of a term.
type Variant int

const (
	// Raw is the term as given.
	Raw Variant = iota

	// Canonical is the term with katakana converted to hiragana.
	Canonical

	// Normalized is the term with width and case folded.
	Normalized

	// Stem is the stem or dictionary form of the term.
	Stem
)

// String implements [fmt.Stringer.String].
func (v Variant) String() string {
	switch v {
	case Raw:
		return "raw"
	case Canonical:
		return "canonical"
	case Normalized:
		return "normalized"
	case Stem:
		return "stem"
	default:
		return "unknown"
	}
}

// ipaBaseForm is the index of the base form in IPA dictionary features.
const ipaBaseForm = 6

// Form is one variant of a term.
type Form struct {
	Variant Variant
	Pattern string

	re *regexp2.Regexp
}

// Term is a search term with its morphological variants.
type Term struct {
	// Text is the term as given.
	Text string

	// Forms are the distinct variants of the term in the order they are
	// tried.
	Forms []Form
}

// Find returns the byte bounds of the first match of the first variant that
// matches s.
func (t Term) Find(s string) (start, end int, ok bool) {
	for _, f := range t.Forms {
		m, err := f.re.FindStringMatch(s)
		if err != nil || m == nil {
			continue
		}
		start, end = runeToByte(s, m.Index, m.Index+m.Length)
		return start, end, true
	}
	return 0, 0, false
}

// runeToByte converts rune offsets in s to byte offsets.
func runeToByte(s string, start, end int) (int, int) {
	bs, be := len(s), len(s)
	n := 0
	for i := range s {
		if n == start {
			bs = i
		}
		if n == end {
			be = i
			break
		}
		n++
	}
	return bs, be
}

// Options are options for an [Analyzer].
type Options struct {
	// Japanese enables base form analysis of Japanese terms. The analyzer's
	// dictionary is loaded on first use.
	Japanese bool
}

// DefaultOptions are the default analyzer options.
var DefaultOptions = &Options{
	Japanese: true,
}

// Analyzer builds terms. An Analyzer is safe for concurrent use.
type Analyzer struct {
	opts Options

	once sync.Once
	tok  *tokenizer.Tokenizer
}

// New returns a new Analyzer. If opts is nil then [DefaultOptions] is used.
func New(opts *Options) *Analyzer {
	if opts == nil {
		opts = DefaultOptions
	}
	return &Analyzer{opts: *opts}
}

// Terms splits text on white space and returns a literal term for each
// word.
func (a *Analyzer) Terms(text string) []Term {
	var terms []Term
	for _, w := range strings.Fields(text) {
		terms = append(terms, a.Term(w))
	}
	return terms
}

// Term returns the variants of a literal word.
func (a *Analyzer) Term(word string) Term {
	return a.build(word, true)
}

// PatternTerm returns the variants of a regular expression. Variants other
// than the raw pattern are only produced when folding keeps the pattern
// valid. A stem is only produced when the pattern is a literal word.
func (a *Analyzer) PatternTerm(pattern string) Term {
	return a.build(pattern, false)
}

func (a *Analyzer) build(text string, literal bool) Term {
	t := Term{Text: text}
	isLiteral := literal || regexp2.Escape(text) == text

	add := func(v Variant, s string) {
		if s == "" {
			return
		}
		p := s
		if literal {
			p = regexp2.Escape(s)
		}
		for _, f := range t.Forms {
			if strings.EqualFold(f.Pattern, p) {
				return
			}
		}
		re, err := regexp2.Compile(p, regexp2.IgnoreCase)
		if err != nil {
			return
		}
		t.Forms = append(t.Forms, Form{Variant: v, Pattern: p, re: re})
	}

	add(Raw, text)
	add(Canonical, script.ToHiragana(text))
	add(Normalized, folding.Key(text))
	if isLiteral {
		add(Stem, a.Stem(text))
	}
	return t
}

// Stem returns the stem of an English word or the base form of a Japanese
// word. Other text is returned unchanged.
func (a *Analyzer) Stem(word string) string {
	switch {
	case script.HasJapanese(word):
		return a.baseForm(word)
	case script.Contains(word, script.IsLatin):
		return english.Stem(word, false)
	default:
		return word
	}
}

// baseForm returns the dictionary form of the first morpheme of word
// followed by the rest of word's surface.
func (a *Analyzer) baseForm(word string) string {
	tok := a.tokenizer()
	if tok == nil {
		return word
	}
	tokens := tok.Tokenize(word)
	if len(tokens) == 0 {
		return word
	}
	features := tokens[0].Features()
	if len(features) <= ipaBaseForm || features[ipaBaseForm] == "*" {
		return word
	}
	base := features[ipaBaseForm]

	// Inflection suffixes following the first morpheme are dropped.
	for _, t := range tokens[1:] {
		if f := t.Features(); len(f) > 0 && f[0] != "助動詞" && f[0] != "助詞" {
			base += t.Surface
		}
	}
	return base
}

func (a *Analyzer) tokenizer() *tokenizer.Tokenizer {
	if !a.opts.Japanese {
		return nil
	}
	a.once.Do(func() {
		t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
		if err == nil {
			a.tok = t
		}
	})
	return a.tok
}
