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

package testutil

import "strings"

// EdictEntry is a test EDICT entry.
type EdictEntry struct {
	Word    string
	Reading string
	POS     string
	Glosses []string
	Popular bool
}

// String returns the entry as an EDICT line without a line terminator.
func (e *EdictEntry) String() string {
	var b strings.Builder
	b.WriteString(e.Word)
	if e.Reading != "" {
		b.WriteString(" [")
		b.WriteString(e.Reading)
		b.WriteString("]")
	}
	b.WriteString(" /")
	pos := e.POS
	if pos == "" {
		pos = "n"
	}
	for i, g := range e.Glosses {
		if i == 0 {
			b.WriteString("(" + pos + ") ")
		}
		b.WriteString(g)
		b.WriteString("/")
	}
	if e.Popular {
		b.WriteString("(P)/")
	}
	return b.String()
}

// MakeEdict returns the content of an EDICT file holding entries.
func MakeEdict(entries []*EdictEntry) string {
	var b strings.Builder
	b.WriteString("　　？？？ /EDICT, EDRDG/\n")
	for _, e := range entries {
		b.WriteString(e.String())
		b.WriteString("\n")
	}
	return b.String()
}
