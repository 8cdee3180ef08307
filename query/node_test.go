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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  *Node
	}{
		{
			query: "dog",
			want:  &Node{Data: "dog"},
		},
		{
			query: "  hot dog  ",
			want:  &Node{Data: "hot dog"},
		},
		{
			query: "dog && cat",
			want: &Node{Children: []*Node{
				{Operation: And, Data: "dog"},
				{Data: "cat"},
			}},
		},
		{
			query: "dog || cat && bird",
			want: &Node{Children: []*Node{
				{Operation: Or, Data: "dog"},
				{Operation: And, Data: "cat"},
				{Data: "bird"},
			}},
		},
		{
			query: "(dog || cat) && bird",
			want: &Node{Children: []*Node{
				{Operation: And, Children: []*Node{
					{Operation: Or, Data: "dog"},
					{Data: "cat"},
				}},
				{Data: "bird"},
			}},
		},
		{
			query: "bird && (dog || cat)",
			want: &Node{Children: []*Node{
				{Operation: And, Data: "bird"},
				{Children: []*Node{
					{Operation: Or, Data: "dog"},
					{Data: "cat"},
				}},
			}},
		},
		{
			query: "hot (dog|cat)",
			want:  &Node{Data: "hot (dog|cat)"},
		},
		{
			query: "((dog))",
			want:  &Node{Data: "((dog))"},
		},
		{
			query: "dog(?=s)",
			want:  &Node{Data: "dog(?=s)"},
		},
		{
			query: "(?=(a|b))c",
			want:  &Node{Data: "(?=(a|b))c"},
		},
		{
			query: "(a && b)c",
			want: &Node{Children: []*Node{
				{Children: []*Node{
					{Operation: And, Data: "a"},
					{Data: "b"},
				}},
				{Data: "c"},
			}},
		},
		{
			query: "dog (cat || bird)",
			want: &Node{Children: []*Node{
				{Data: "dog"},
				{Children: []*Node{
					{Operation: Or, Data: "cat"},
					{Data: "bird"},
				}},
			}},
		},
		{
			query: "(cat || bird) dog",
			want: &Node{Children: []*Node{
				{Children: []*Node{
					{Operation: Or, Data: "cat"},
					{Data: "bird"},
				}},
				{Data: "dog"},
			}},
		},
		{
			query: "[a&&b]",
			want:  &Node{Data: "[a&&b]"},
		},
		{
			query: "[|&] && c",
			want: &Node{Children: []*Node{
				{Operation: And, Data: "[|&]"},
				{Data: "c"},
			}},
		},
		{
			query: `a\&&b`,
			want:  &Node{Data: `a\&&b`},
		},
		{
			query: "((a || b))",
			want: &Node{Children: []*Node{
				{Operation: Or, Data: "a"},
				{Data: "b"},
			}},
		},
	}

	for _, test := range tests {
		t.Run(test.query, func(t *testing.T) {
			t.Parallel()

			got, err := Build(test.query)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Build (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query  string
		err    error
		offset int
	}{
		{
			query:  "",
			err:    ErrEmptyQuery,
			offset: 0,
		},
		{
			query:  "   ",
			err:    ErrEmptyQuery,
			offset: 0,
		},
		{
			query:  "()",
			err:    ErrEmptyQuery,
			offset: 0,
		},
		{
			query:  "&& dog",
			err:    ErrHangingStartConnector,
			offset: 0,
		},
		{
			query:  "dog &&",
			err:    ErrHangingEndConnector,
			offset: 4,
		},
		{
			query:  "dog && || cat",
			err:    ErrHangingStartConnector,
			offset: 7,
		},
		{
			query:  "(&& dog)",
			err:    ErrHangingStartConnector,
			offset: 1,
		},
		{
			query:  "(dog ||) cat",
			err:    ErrHangingEndConnector,
			offset: 5,
		},
		{
			query:  "(dog",
			err:    ErrUnmatchedStartParenthesis,
			offset: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.query, func(t *testing.T) {
			t.Parallel()

			_, err := Build(test.query)
			if !errors.Is(err, test.err) {
				t.Fatalf("Build; want: %v, got: %v", test.err, err)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Build; want *SyntaxError, got: %T", err)
			}
			if want, got := test.offset, se.Offset; want != got {
				t.Errorf("Offset; want: %d, got: %d", want, got)
			}
		})
	}
}

func TestNode_String(t *testing.T) {
	t.Parallel()

	n, err := Build("(dog || cat) && bird")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := `{{"dog" OR "cat"} AND "bird"}`
	if got := n.String(); want != got {
		t.Errorf("String; want: %s, got: %s", want, got)
	}

	var leaves []string
	for _, l := range n.Leaves() {
		leaves = append(leaves, l.Data)
	}
	if diff := cmp.Diff([]string{"dog", "cat", "bird"}, leaves); diff != "" {
		t.Errorf("Leaves (-want, +got):\n%s", diff)
	}
}
