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

package line_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-jdict/column"
	"github.com/ianlewis/go-jdict/line"
)

func TestLine_SetGet(t *testing.T) {
	t.Parallel()

	content := "犬 [いぬ] /(n) dog/"
	l := line.New(content)
	l.Set(0, []line.Ref{{Offset: 0, Length: 3}})
	l.Set(1, []line.Ref{{Offset: 5, Length: 6}})
	l.Set(2, []line.Ref{{Offset: 18, Length: 3}})

	if want, got := 3, l.NumColumns(); want != got {
		t.Fatalf("NumColumns; want: %d, got: %d", want, got)
	}
	if diff := cmp.Diff([]string{"犬"}, l.Get(0)); diff != "" {
		t.Errorf("Get(0) (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"いぬ"}, l.Get(1)); diff != "" {
		t.Errorf("Get(1) (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"dog"}, l.Get(2)); diff != "" {
		t.Errorf("Get(2) (-want, +got):\n%s", diff)
	}
	if got := l.Get(3); got != nil {
		t.Errorf("Get(3); want: nil, got: %q", got)
	}

	// Replacing and removing columns.
	l.Set(2, []line.Ref{{Offset: 14, Length: 7}})
	if diff := cmp.Diff([]string{"(n) dog"}, l.Get(2)); diff != "" {
		t.Errorf("Get(2) after replace (-want, +got):\n%s", diff)
	}
	l.Set(1, nil)
	if l.Has(1) {
		t.Errorf("Has(1) after removal; want: false")
	}
	if diff := cmp.Diff([]column.ID{0, 2}, l.Columns()); diff != "" {
		t.Errorf("Columns (-want, +got):\n%s", diff)
	}
}

func TestLine_Relocate(t *testing.T) {
	t.Parallel()

	content := "first\nsecond line\n"
	text := content[6:17]
	l := line.New(text)
	l.Set(0, []line.Ref{{Offset: 0, Length: 6}, {Offset: 7, Length: 4}})
	l.Relocate(content, 6)

	if diff := cmp.Diff([]string{"second", "line"}, l.Get(0)); diff != "" {
		t.Errorf("Get(0) (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]line.Ref{{Offset: 6, Length: 6}, {Offset: 13, Length: 4}}, l.Refs(0)); diff != "" {
		t.Errorf("Refs(0) (-want, +got):\n%s", diff)
	}
}

func TestRef_TrimSpace(t *testing.T) {
	t.Parallel()

	content := "[ いぬ  ]"
	r := line.Ref{Offset: 1, Length: len(content) - 2}.TrimSpace(content)
	if want, got := "いぬ", r.Slice(content); want != got {
		t.Errorf("TrimSpace; want: %q, got: %q", want, got)
	}
}

func TestDeserialize(t *testing.T) {
	t.Parallel()

	content := "犬 [いぬ] /(n) dog/(P)/"
	l := line.New(content)
	l.Set(0, []line.Ref{{Offset: 0, Length: 3}})
	l.Set(2, []line.Ref{{Offset: 18, Length: 3}})
	l.Set(4, []line.Ref{{Offset: 22, Length: 3}})

	b, err := l.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	// Every column ends with a -1 terminator.
	if diff := cmp.Diff(bytes.Repeat([]byte{0xff}, 8), b[len(b)-8:]); diff != "" {
		t.Errorf("terminator (-want, +got):\n%s", diff)
	}

	got, n, err := line.Deserialize(b, content)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if want := len(b); want != n {
		t.Errorf("Deserialize consumed; want: %d, got: %d", want, n)
	}
	for _, id := range []column.ID{0, 2, 4} {
		if diff := cmp.Diff(l.Get(id), got.Get(id)); diff != "" {
			t.Errorf("Get(%d) (-want, +got):\n%s", id, diff)
		}
	}
	if diff := cmp.Diff(l.Columns(), got.Columns()); diff != "" {
		t.Errorf("Columns (-want, +got):\n%s", diff)
	}

	// The same bytes cannot be read twice.
	if _, _, err := line.Deserialize(b, content); !errors.Is(err, line.ErrAlreadyDeserialized) {
		t.Errorf("second Deserialize; want: %v, got: %v", line.ErrAlreadyDeserialized, err)
	}
}

func TestDeserialize_errors(t *testing.T) {
	t.Parallel()

	content := "犬 dog"

	tests := []struct {
		name    string
		line    func() *line.Line
		content string
		trim    int
		err     error
	}{
		{
			name: "truncated",
			line: func() *line.Line {
				l := line.New(content)
				l.Set(0, []line.Ref{{Offset: 0, Length: 3}})
				return l
			},
			content: content,
			trim:    3,
			err:     line.ErrTruncated,
		},
		{
			name: "out of range",
			line: func() *line.Line {
				l := line.New(content)
				l.Set(0, []line.Ref{{Offset: 4, Length: 3}})
				return l
			},
			content: "犬",
			err:     line.ErrInvalidText,
		},
		{
			name: "splits a character",
			line: func() *line.Line {
				l := line.New(content)
				l.Set(0, []line.Ref{{Offset: 0, Length: 2}})
				return l
			},
			content: content,
			err:     line.ErrInvalidText,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			b, err := test.line().MarshalBinary()
			if err != nil {
				t.Fatalf("MarshalBinary: %v", err)
			}
			b = b[:len(b)-test.trim]

			if _, _, err := line.Deserialize(b, test.content); !errors.Is(err, test.err) {
				t.Errorf("Deserialize; want: %v, got: %v", test.err, err)
			}
		})
	}
}

func TestDeserialize_noColumns(t *testing.T) {
	t.Parallel()

	b, err := line.New("x").MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	got, n, err := line.Deserialize(b, "x")
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got.NumColumns() != 0 {
		t.Errorf("NumColumns; want: 0, got: %d", got.NumColumns())
	}
	if want := len(b); want != n {
		t.Errorf("Deserialize consumed; want: %d, got: %d", want, n)
	}

	if _, _, err := line.Deserialize(b, "x"); !errors.Is(err, line.ErrAlreadyDeserialized) {
		t.Errorf("second Deserialize; want: %v, got: %v", line.ErrAlreadyDeserialized, err)
	}
}

func TestDeserialize_failureKeepsBytes(t *testing.T) {
	t.Parallel()

	content := "犬 dog"
	l := line.New(content)
	l.Set(0, []line.Ref{{Offset: 0, Length: 3}})
	l.Set(2, []line.Ref{{Offset: 4, Length: 3}})

	b, err := l.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	// The second column lies outside of the shorter buffer.
	if _, _, err := line.Deserialize(b, "犬"); !errors.Is(err, line.ErrInvalidText) {
		t.Fatalf("Deserialize; want: %v, got: %v", line.ErrInvalidText, err)
	}

	got, _, err := line.Deserialize(b, content)
	if err != nil {
		t.Fatalf("Deserialize after failure: %v", err)
	}
	if diff := cmp.Diff([]string{"犬"}, got.Get(0)); diff != "" {
		t.Errorf("Get(0) (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"dog"}, got.Get(2)); diff != "" {
		t.Errorf("Get(2) (-want, +got):\n%s", diff)
	}
}
