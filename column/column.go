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

// Package column describes the typed columns that dictionary lines are split
// into.
//
// Every dictionary format defines a fixed set of column IDs and a static
// [Table] describing each column's language and how it participates in
// searching.
package column

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTable indicates that a column table is malformed.
var ErrInvalidTable = errors.New("invalid column table")

// ID identifies a column within a dictionary format. IDs are dense and start
// at zero.
type ID int

// Language is the language tag of a column's values.
type Language string

const (
	// Japanese values are Japanese text.
	Japanese Language = "ja"

	// English values are English text.
	English Language = "en"

	// Number values are numeric codes.
	Number Language = "number"

	// Symbol values are symbolic codes such as code points.
	Symbol Language = "symbol"
)

// Handling describes how a column participates in searching.
type Handling int

const (
	// IndexAndSearch columns are full-text searchable and indexed.
	IndexAndSearch Handling = iota

	// FilterOnly columns may be used as a predicate but are not indexed or
	// searched by free text queries.
	FilterOnly
)

// String implements [fmt.Stringer.String].
func (h Handling) String() string {
	switch h {
	case IndexAndSearch:
		return "index-and-search"
	case FilterOnly:
		return "filter-only"
	default:
		return fmt.Sprintf("Handling(%d)", int(h))
	}
}

// Info describes a single column.
type Info struct {
	ID       ID
	Name     string
	Language Language
	Handling Handling
}

// Table is a static, read-only table of column descriptions. The row for a
// column is found at the index equal to its ID.
type Table []Info

// Len returns the number of columns in the table.
func (t Table) Len() int {
	return len(t)
}

// Info returns the description of the column with the given ID.
func (t Table) Info(id ID) (Info, bool) {
	if id < 0 || int(id) >= len(t) {
		return Info{}, false
	}
	return t[id], true
}

// Name returns the column's name or an empty string if the ID is unknown.
func (t Table) Name(id ID) string {
	info, _ := t.Info(id)
	return info.Name
}

// Language returns the column's language tag or an empty string if the ID is
// unknown.
func (t Table) Language(id ID) Language {
	info, _ := t.Info(id)
	return info.Language
}

// Handling returns the column's handling mode. Unknown columns are reported
// as [FilterOnly] so that they are never searched.
func (t Table) Handling(id ID) Handling {
	info, ok := t.Info(id)
	if !ok {
		return FilterOnly
	}
	return info.Handling
}

// ByName looks up a column by name. Names are compared case-insensitively.
func (t Table) ByName(name string) (Info, bool) {
	for _, info := range t {
		if strings.EqualFold(info.Name, name) {
			return info, true
		}
	}
	return Info{}, false
}

// Searchable returns the IDs of all [IndexAndSearch] columns in ID order.
func (t Table) Searchable() []ID {
	var ids []ID
	for _, info := range t {
		if info.Handling == IndexAndSearch {
			ids = append(ids, info.ID)
		}
	}
	return ids
}

// Validate checks that the table's IDs are dense, start at zero, and that
// names are unique.
func (t Table) Validate() error {
	names := map[string]bool{}
	for i, info := range t {
		if int(info.ID) != i {
			return fmt.Errorf("%w: column %q has ID %d at row %d", ErrInvalidTable, info.Name, info.ID, i)
		}
		if info.Name == "" {
			return fmt.Errorf("%w: column %d has no name", ErrInvalidTable, i)
		}
		name := strings.ToLower(info.Name)
		if names[name] {
			return fmt.Errorf("%w: duplicate column name %q", ErrInvalidTable, info.Name)
		}
		names[name] = true
	}
	return nil
}
