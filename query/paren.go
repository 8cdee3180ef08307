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
)

// lookarounds are the opening sequences of regular expression lookaround
// groups. Longer sequences come first.
var lookarounds = []string{"(?<=", "(?<!", "(?=", "(?!"}

// ParenNode is a node of the parenthesis tree of a query. A node covers the
// byte range [Open, Close) of the query. The children of a node partition
// the inside of the node exactly: explicit parenthesized groups alternate
// with the gap text between them.
type ParenNode struct {
	// Open is the offset of the start of the node. For a parenthesized
	// group it is the offset of the opening parenthesis.
	Open int

	// Close is the offset just past the end of the node. For a
	// parenthesized group it is just past the closing parenthesis.
	Close int

	// HasParenthesis is true for explicit parenthesized groups.
	HasParenthesis bool

	// Prefix is the opening sequence of a parenthesized group. It is "(" for
	// plain groups and one of "(?=", "(?!", "(?<=", "(?<!" for lookarounds.
	Prefix string

	// ExplicitChildren are the parenthesized groups directly inside the
	// node in order.
	ExplicitChildren []*ParenNode

	// Children partition the inside of the node. Nodes without explicit
	// children have no children.
	Children []*ParenNode

	blank bool
}

// Inner returns the bounds of the node's text excluding its parentheses.
func (n *ParenNode) Inner() (int, int) {
	if n.HasParenthesis {
		return n.Open + len(n.Prefix), n.Close - 1
	}
	return n.Open, n.Close
}

// Text returns the node's text including parentheses.
func (n *ParenNode) Text(query string) string {
	return query[n.Open:n.Close]
}

// IsLeaf reports whether the node has no children.
func (n *ParenNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsLookaround reports whether the node is a lookaround group.
func (n *ParenNode) IsLookaround() bool {
	return n.HasParenthesis && n.Prefix != "("
}

// Blank reports whether the node is gap text holding only white space.
func (n *ParenNode) Blank() bool {
	return n.blank
}

type parenFrame struct {
	open     int
	bracket  bool
	prefix   string
	explicit []*ParenNode
}

// ParseParens builds the parenthesis tree of a query. Parentheses inside
// character classes and escaped parentheses are ignored.
func ParseParens(query string) (*ParenNode, error) {
	var stack []*parenFrame
	var top []*ParenNode

	for i := 0; i < len(query); i++ {
		inBracket := len(stack) > 0 && stack[len(stack)-1].bracket
		switch c := query[i]; {
		case c == '\\':
			i++
		case inBracket:
			if c == ']' {
				stack = stack[:len(stack)-1]
			}
		case c == '[':
			stack = append(stack, &parenFrame{open: i, bracket: true})
		case c == '(':
			prefix := "("
			for _, la := range lookarounds {
				if strings.HasPrefix(query[i:], la) {
					prefix = la
					break
				}
			}
			stack = append(stack, &parenFrame{open: i, prefix: prefix})
		case c == ')':
			if len(stack) == 0 {
				return nil, syntaxError(query, i, ErrUnmatchedEndParenthesis)
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n := &ParenNode{
				Open:             f.open,
				Close:            i + 1,
				HasParenthesis:   true,
				Prefix:           f.prefix,
				ExplicitChildren: f.explicit,
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.explicit = append(parent.explicit, n)
			} else {
				top = append(top, n)
			}
		}
	}

	for _, f := range stack {
		if !f.bracket {
			return nil, syntaxError(query, f.open, ErrUnmatchedStartParenthesis)
		}
	}

	root := &ParenNode{
		Open:             0,
		Close:            len(query),
		ExplicitChildren: top,
	}
	root.partition(query)

	// A query that is a single group is represented by the group itself.
	if len(root.Children) == 1 && root.Children[0].HasParenthesis {
		return root.Children[0], nil
	}
	return root, nil
}

// partition fills in the node's children from its explicit children and the
// gaps between them.
func (n *ParenNode) partition(query string) {
	if len(n.ExplicitChildren) == 0 {
		return
	}
	start, end := n.Inner()
	pos := start
	for _, c := range n.ExplicitChildren {
		if c.Open > pos {
			n.Children = append(n.Children, gap(query, pos, c.Open))
		}
		n.Children = append(n.Children, c)
		c.partition(query)
		pos = c.Close
	}
	if end > pos {
		n.Children = append(n.Children, gap(query, pos, end))
	}
}

func gap(query string, start, end int) *ParenNode {
	return &ParenNode{
		Open:  start,
		Close: end,
		blank: strings.TrimSpace(query[start:end]) == "",
	}
}
