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

package column

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testTable = Table{
	{ID: 0, Name: "word", Language: Japanese, Handling: IndexAndSearch},
	{ID: 1, Name: "code", Language: Number, Handling: FilterOnly},
	{ID: 2, Name: "meaning", Language: English, Handling: IndexAndSearch},
}

func TestTable_lookup(t *testing.T) {
	t.Parallel()

	if want, got := Japanese, testTable.Language(0); want != got {
		t.Errorf("Language(0); want: %q, got: %q", want, got)
	}
	if want, got := FilterOnly, testTable.Handling(1); want != got {
		t.Errorf("Handling(1); want: %v, got: %v", want, got)
	}
	if want, got := FilterOnly, testTable.Handling(42); want != got {
		t.Errorf("Handling(42); want: %v, got: %v", want, got)
	}
	if want, got := Language(""), testTable.Language(-1); want != got {
		t.Errorf("Language(-1); want: %q, got: %q", want, got)
	}

	info, ok := testTable.ByName("MEANING")
	if !ok {
		t.Fatal("ByName: not found")
	}
	if want, got := ID(2), info.ID; want != got {
		t.Errorf("ByName; want: %d, got: %d", want, got)
	}

	if diff := cmp.Diff([]ID{0, 2}, testTable.Searchable()); diff != "" {
		t.Errorf("Searchable (-want, +got):\n%s", diff)
	}
}

func TestTable_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		table Table
		err   error
	}{
		{
			name:  "valid",
			table: testTable,
		},
		{
			name: "sparse",
			table: Table{
				{ID: 0, Name: "a"},
				{ID: 2, Name: "b"},
			},
			err: ErrInvalidTable,
		},
		{
			name: "duplicate name",
			table: Table{
				{ID: 0, Name: "a"},
				{ID: 1, Name: "A"},
			},
			err: ErrInvalidTable,
		},
		{
			name: "missing name",
			table: Table{
				{ID: 0},
			},
			err: ErrInvalidTable,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := test.table.Validate()
			if !errors.Is(err, test.err) {
				t.Fatalf("Validate; want: %v, got: %v", test.err, err)
			}
		})
	}
}
