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

package query

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/ianlewis/go-jdict/column"
	"github.com/ianlewis/go-jdict/line"
	"github.com/ianlewis/go-jdict/match"
)

// DefaultMatchTimeout bounds the time spent matching a single pattern
// against a single value.
const DefaultMatchTimeout = 100 * time.Millisecond

// Options are options for compiling queries.
type Options struct {
	// CaseSensitive disables case folding.
	CaseSensitive bool

	// MatchTimeout bounds the time spent matching a single pattern against a
	// single value. Values that time out do not match.
	MatchTimeout time.Duration
}

// DefaultOptions are the default options for compiling queries.
var DefaultOptions = &Options{
	MatchTimeout: DefaultMatchTimeout,
}

// expr is a compiled query tree node.
type expr struct {
	op       Operation
	pattern  string
	re       *regexp2.Regexp
	children []*expr
}

// Query is a compiled query. A Query is safe for concurrent use.
type Query struct {
	text     string
	root     *expr
	patterns []string
}

// Compile parses and compiles a query.
func Compile(text string, opts *Options) (*Query, error) {
	n, err := Build(text)
	if err != nil {
		return nil, err
	}
	return CompileNode(text, n, opts)
}

// CompileNode compiles a query tree built from text.
func CompileNode(text string, n *Node, opts *Options) (*Query, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	q := &Query{text: text}
	root, err := q.compile(n, opts)
	if err != nil {
		return nil, err
	}
	q.root = root
	return q, nil
}

func (q *Query) compile(n *Node, opts *Options) (*expr, error) {
	if n.IsLeaf() {
		return q.compileLeaf(n.Data, n.Operation, opts)
	}

	// Runs of adjacent leaves joined by None become a single pattern.
	e := &expr{op: n.Operation}
	for i := 0; i < len(n.Children); i++ {
		c := n.Children[i]
		if !c.IsLeaf() {
			child, err := q.compile(c, opts)
			if err != nil {
				return nil, err
			}
			e.children = append(e.children, child)
			continue
		}

		var b strings.Builder
		b.WriteString(c.Data)
		for c.Operation == None && i+1 < len(n.Children) && n.Children[i+1].IsLeaf() {
			i++
			c = n.Children[i]
			b.WriteString(c.Data)
		}
		child, err := q.compileLeaf(b.String(), c.Operation, opts)
		if err != nil {
			return nil, err
		}
		e.children = append(e.children, child)
	}

	if len(e.children) == 1 {
		e.children[0].op = e.op
		return e.children[0], nil
	}
	return e, nil
}

func (q *Query) compileLeaf(pattern string, op Operation, opts *Options) (*expr, error) {
	var ro regexp2.RegexOptions
	if !opts.CaseSensitive {
		ro |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, ro)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	if opts.MatchTimeout > 0 {
		re.MatchTimeout = opts.MatchTimeout
	}
	q.patterns = append(q.patterns, pattern)
	return &expr{op: op, pattern: pattern, re: re}, nil
}

// String returns the query text.
func (q *Query) String() string {
	return q.text
}

// Patterns returns the compiled patterns of the query's terms in order.
func (q *Query) Patterns() []string {
	return q.patterns
}

// MatchString reports whether s matches the query.
func (q *Query) MatchString(s string) bool {
	return q.eval(q.root, func(re *regexp2.Regexp) bool {
		ok, err := re.MatchString(s)
		return err == nil && ok
	})
}

// Match evaluates the query against the searchable columns of l. It returns
// whether the line matched and, if it did, the matches found in each column
// in column order.
func (q *Query) Match(l *line.Line, columns column.Table) (bool, []*match.Info) {
	var infos []*match.Info
	var values [][]string
	ids := columns.Searchable()
	for _, id := range ids {
		values = append(values, l.Get(id))
	}
	byColumn := make([]*match.Info, len(ids))

	ok := q.eval(q.root, func(re *regexp2.Regexp) bool {
		found := false
		for i, vals := range values {
			for token, v := range vals {
				for _, m := range findAll(re, v) {
					if byColumn[i] == nil {
						byColumn[i] = match.New(ids[i], vals)
					}
					byColumn[i].Add(token, m[0], m[1])
					found = true
				}
			}
		}
		return found
	})
	if !ok {
		return false, nil
	}
	for _, info := range byColumn {
		if info != nil {
			infos = append(infos, info)
		}
	}
	return true, infos
}

// eval evaluates the tree strictly left to right. Every term is evaluated so
// that all matches are recorded.
func (q *Query) eval(e *expr, leaf func(*regexp2.Regexp) bool) bool {
	if e.re != nil {
		return leaf(e.re)
	}
	result := q.eval(e.children[0], leaf)
	for i := 1; i < len(e.children); i++ {
		v := q.eval(e.children[i], leaf)
		if e.children[i-1].op == Or {
			result = result || v
		} else {
			result = result && v
		}
	}
	return result
}

// findAll returns the byte ranges of all matches of re in s. Zero length
// matches are reported with equal bounds.
func findAll(re *regexp2.Regexp, s string) [][2]int {
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return nil
	}

	// regexp2 reports positions in runes.
	runeOffsets := make([]int, 0, len(s)+1)
	for i := range s {
		runeOffsets = append(runeOffsets, i)
	}
	runeOffsets = append(runeOffsets, len(s))

	var found [][2]int
	for m != nil {
		start := runeOffsets[m.Index]
		end := runeOffsets[m.Index+m.Length]
		found = append(found, [2]int{start, end})
		m, err = re.FindNextMatch(m)
		if err != nil {
			break
		}
	}
	return found
}
