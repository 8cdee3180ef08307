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

package jdict

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/ianlewis/go-jdict/column"
	"github.com/ianlewis/go-jdict/internal/folding"
	"github.com/ianlewis/go-jdict/internal/index"
	"github.com/ianlewis/go-jdict/line"
	"github.com/ianlewis/go-jdict/match"
	"github.com/ianlewis/go-jdict/morph"
	"github.com/ianlewis/go-jdict/query"
	"github.com/ianlewis/go-jdict/score"
)

// ErrUnknownColumn indicates that a filter names a column the dictionary's
// format does not have.
var ErrUnknownColumn = errors.New("unknown column")

// checkEvery is the number of lines searched between context checks.
const checkEvery = 1024

// Filter restricts results to lines whose column has a value matching
// Pattern. An empty Pattern only requires the column to have a value.
type Filter struct {
	Column  string
	Pattern string
}

// SearchOptions are options for searching a dictionary.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero means no limit.
	Limit int

	// Filters restrict the lines searched. All filters must match.
	Filters []Filter
}

// DefaultSearchOptions are the default search options.
var DefaultSearchOptions = &SearchOptions{}

// Result is a dictionary line that matched a query.
type Result struct {
	dict *Dictionary
	line *line.Line

	// Line is the zero based line number in the dictionary file.
	Line int

	// Score is the relevance of the line. Higher is better.
	Score int

	// Matches are the matches found in each searchable column in column
	// order.
	Matches []*match.Info
}

// Dictionary returns the dictionary the result came from.
func (r *Result) Dictionary() *Dictionary {
	return r.dict
}

// Columns returns the columns of the result's format.
func (r *Result) Columns() column.Table {
	return r.dict.format.Columns()
}

// Values returns the values of column id.
func (r *Result) Values(id column.ID) []string {
	return r.line.Get(id)
}

// Match returns the match info for column id or nil if the column did not
// match.
func (r *Result) Match(id column.ID) *match.Info {
	for _, m := range r.Matches {
		if m.Column() == id {
			return m
		}
	}
	return nil
}

// Highlight returns the values of column id with matched text wrapped in
// before and after.
func (r *Result) Highlight(id column.ID, before, after string) []string {
	if m := r.Match(id); m != nil {
		return m.Highlight(before, after)
	}
	return r.Values(id)
}

// String returns the result's columns as name=value pairs. Multiple values
// are separated with semicolons.
func (r *Result) String() string {
	var parts []string
	for _, c := range r.Columns() {
		if vals := r.Values(c.ID); len(vals) > 0 {
			parts = append(parts, c.Name+"="+strings.Join(vals, "; "))
		}
	}
	return strings.Join(parts, " ")
}

// Query compiles query text. Compiled queries are cached.
func (d *Dictionary) Query(text string) (*query.Query, error) {
	if q, ok := d.queries.Get(text); ok {
		return q, nil
	}
	q, err := query.Compile(text, d.qopts)
	if err != nil {
		return nil, err
	}
	d.queries.Add(text, q)
	return q, nil
}

type compiledFilter struct {
	id column.ID
	re *regexp2.Regexp
}

func (d *Dictionary) compileFilters(filters []Filter) ([]compiledFilter, error) {
	var compiled []compiledFilter
	for _, f := range filters {
		info, ok := d.format.Columns().ByName(f.Column)
		if !ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrUnknownColumn, f.Column, d.format.Name())
		}
		cf := compiledFilter{id: info.ID}
		if f.Pattern != "" {
			re, err := regexp2.Compile(f.Pattern, regexp2.IgnoreCase)
			if err != nil {
				return nil, &query.PatternError{Pattern: f.Pattern, Err: err}
			}
			cf.re = re
		}
		compiled = append(compiled, cf)
	}
	return compiled, nil
}

func (f compiledFilter) match(l *line.Line) bool {
	vals := l.Get(f.id)
	if f.re == nil {
		return len(vals) > 0
	}
	for _, v := range vals {
		if ok, err := f.re.MatchString(v); err == nil && ok {
			return true
		}
	}
	return false
}

// Search searches the dictionary for lines matching q. Results are ordered
// by descending score and then by line number.
func (d *Dictionary) Search(ctx context.Context, q string, opts *SearchOptions) ([]*Result, error) {
	if opts == nil {
		opts = DefaultSearchOptions
	}

	cq, err := d.Query(q)
	if err != nil {
		return nil, err
	}
	filters, err := d.compileFilters(opts.Filters)
	if err != nil {
		return nil, err
	}

	var terms []morph.Term
	for _, p := range cq.Patterns() {
		if t := d.analyzer.PatternTerm(p); len(t.Forms) > 0 {
			terms = append(terms, t)
		}
	}

	table := d.format.Columns()
	var results []*Result
	for i, l := range d.file.Lines() {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if l.NumColumns() == 0 || !matchFilters(filters, l) {
			continue
		}
		ok, infos := cq.Match(l, table)
		if !ok {
			continue
		}
		results = append(results, &Result{
			dict:    d,
			line:    l,
			Line:    i,
			Score:   scoreMatches(infos, terms),
			Matches: infos,
		})
	}

	SortResults(results)
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	d.logger.Debug("search", "query", q, "results", len(results))
	return results, nil
}

func matchFilters(filters []compiledFilter, l *line.Line) bool {
	for _, f := range filters {
		if !f.match(l) {
			return false
		}
	}
	return true
}

// scoreMatches returns the best score of any value in a matched column.
func scoreMatches(infos []*match.Info, terms []morph.Term) int {
	best := score.NoMatch
	for _, info := range infos {
		for _, v := range info.Values() {
			best = max(best, score.Score(v, terms))
		}
	}
	return best
}

// SortResults sorts results by descending score, then by dictionary name,
// then by line number.
func SortResults(results []*Result) {
	slices.SortStableFunc(results, func(a, b *Result) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := strings.Compare(a.dict.name, b.dict.name); c != 0 {
			return c
		}
		return cmp.Compare(a.Line, b.Line)
	})
}

// headwordIndex returns the index of folded values of the dictionary's
// searchable Japanese columns.
func (d *Dictionary) headwordIndex() *index.Index[int] {
	d.indexOnce.Do(func() {
		table := d.format.Columns()
		var ids []column.ID
		for _, id := range table.Searchable() {
			if table.Language(id) == column.Japanese {
				ids = append(ids, id)
			}
		}

		var entries []index.Entry[int]
		for i, l := range d.file.Lines() {
			for _, id := range ids {
				for _, v := range l.Get(id) {
					entries = append(entries, index.Entry[int]{Key: folding.Key(v), Value: i})
				}
			}
		}
		d.index = index.New(entries)
	})
	return d.index
}

// Lookup returns the lines with a Japanese value equal to word. Width, case,
// and white space are folded before comparing. Results are ordered by line
// number.
func (d *Dictionary) Lookup(word string) []*Result {
	return d.lookupResults(d.headwordIndex().Search(folding.Key(word)))
}

// LookupPrefix returns the lines with a Japanese value starting with prefix
// ordered by line number.
func (d *Dictionary) LookupPrefix(prefix string) []*Result {
	return d.lookupResults(d.headwordIndex().Prefix(folding.Key(prefix)))
}

func (d *Dictionary) lookupResults(lines []int) []*Result {
	slices.Sort(lines)
	lines = slices.Compact(lines)

	var results []*Result
	for _, i := range lines {
		results = append(results, &Result{
			dict: d,
			line: d.file.Line(i),
			Line: i,
		})
	}
	return results
}
