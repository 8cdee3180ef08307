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
	"fmt"
	"strings"
	"unicode"
)

// Operation is the logical operation joining a node to its next sibling.
type Operation int

const (
	// None joins adjacent terms without a connector. Adjacent terms are
	// concatenated into a single pattern. A term next to a group is
	// combined with AND.
	None Operation = iota

	// And requires both sides to match.
	And

	// Or requires either side to match.
	Or
)

// String implements [fmt.Stringer.String].
func (o Operation) String() string {
	switch o {
	case None:
		return "NONE"
	case And:
		return "AND"
	case Or:
		return "OR"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// connectors maps the two character connector sequences to operations.
var connectors = map[byte]Operation{
	'&': And,
	'|': Or,
}

// Node is a node of a query tree. Leaves hold a search pattern in Data.
// Internal nodes hold children. The Operation of a child joins it to the
// next child; the Operation of the last child is always None.
type Node struct {
	Operation Operation
	Data      string
	Children  []*Node
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// String returns a readable representation of the tree.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n.IsLeaf() {
		fmt.Fprintf(b, "%q", n.Data)
		return
	}
	b.WriteString("{")
	for i, c := range n.Children {
		c.write(b)
		if i < len(n.Children)-1 {
			fmt.Fprintf(b, " %v ", c.Operation)
		}
	}
	b.WriteString("}")
}

// Leaves returns the leaves of the tree in order.
func (n *Node) Leaves() []*Node {
	if n.IsLeaf() {
		return []*Node{n}
	}
	var leaves []*Node
	for _, c := range n.Children {
		leaves = append(leaves, c.Leaves()...)
	}
	return leaves
}

// Build parses a query into a query tree.
//
// Terms are joined with the connectors && (AND) and || (OR) and may be
// grouped with parentheses. Terms not separated by a connector are
// concatenated. Groups that contain no connectors are kept as part of the
// surrounding pattern so that regular expression groups work as expected.
func Build(query string) (*Node, error) {
	if strings.TrimSpace(query) == "" {
		return nil, syntaxError(query, 0, ErrEmptyQuery)
	}
	p, err := ParseParens(query)
	if err != nil {
		return nil, err
	}
	b := &builder{query: query}
	n, err := b.build(p)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, syntaxError(query, 0, ErrEmptyQuery)
	}
	n.Operation = None
	return n, nil
}

type builder struct {
	query string
}

// group accumulates the operands of one parenthesis tree node.
type group struct {
	query string
	nodes []*Node

	// expect is true when the next item must be an operand.
	expect bool

	// connector is the offset of the last connector.
	connector int
}

func (b *builder) build(p *ParenNode) (*Node, error) {
	if p.IsLookaround() {
		return &Node{Data: p.Text(b.query)}, nil
	}

	g := &group{query: b.query, expect: true}
	if p.IsLeaf() {
		start, end := p.Inner()
		if err := g.addText(start, end, true); err != nil {
			return nil, err
		}
	} else {
		for i, c := range p.Children {
			switch {
			case c.HasParenthesis:
				n, err := b.build(c)
				if err != nil {
					return nil, err
				}
				g.addOperand(n)
			case c.Blank():
			default:
				if err := g.addText(c.Open, c.Close, i == len(p.Children)-1); err != nil {
					return nil, err
				}
			}
		}
	}

	if g.expect && len(g.nodes) > 0 {
		return nil, syntaxError(b.query, g.connector, ErrHangingEndConnector)
	}
	return g.node(p), nil
}

// addText adds the operands and connectors found in query[start:end]. last
// indicates that the text ends the group.
func (g *group) addText(start, end int, last bool) error {
	pieceStart := start
	for i := start; i < end; i++ {
		c := g.query[i]
		switch c {
		case '\\':
			i++
			continue
		case '[':
			// Connectors inside character classes are literal.
			for i++; i < end && g.query[i] != ']'; i++ {
				if g.query[i] == '\\' {
					i++
				}
			}
			continue
		}
		op, ok := connectors[c]
		if !ok || i+1 >= end || g.query[i+1] != c {
			continue
		}
		g.addPiece(pieceStart, i, true)
		if err := g.addConnector(op, i); err != nil {
			return err
		}
		i++
		pieceStart = i + 1
	}
	g.addPiece(pieceStart, end, last)
	return nil
}

// addPiece adds the text query[start:end] as an operand. White space is
// trimmed where the text borders a connector or the edge of the group.
func (g *group) addPiece(start, end int, trimEnd bool) {
	s := g.query[start:end]
	if strings.TrimSpace(s) == "" {
		return
	}
	if g.expect {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
	}
	if trimEnd {
		s = strings.TrimRightFunc(s, unicode.IsSpace)
	}
	g.addOperand(&Node{Data: s})
}

func (g *group) addOperand(n *Node) {
	if n == nil {
		return
	}
	g.nodes = append(g.nodes, n)
	g.expect = false
}

func (g *group) addConnector(op Operation, offset int) error {
	if g.expect {
		return syntaxError(g.query, offset, ErrHangingStartConnector)
	}
	g.nodes[len(g.nodes)-1].Operation = op
	g.expect = true
	g.connector = offset
	return nil
}

// node returns the node for the group. Groups made only of adjacent terms
// collapse into a single term.
func (g *group) node(p *ParenNode) *Node {
	if len(g.nodes) == 0 {
		return nil
	}

	plain := true
	for _, n := range g.nodes {
		if !n.IsLeaf() || n.Operation != None {
			plain = false
			break
		}
	}

	if plain && (p.HasParenthesis || len(g.nodes) > 1) {
		var b strings.Builder
		if p.HasParenthesis {
			b.WriteString(p.Prefix)
		}
		for _, n := range g.nodes {
			b.WriteString(n.Data)
		}
		if p.HasParenthesis {
			b.WriteString(")")
		}
		return &Node{Data: b.String()}
	}
	if len(g.nodes) == 1 {
		return g.nodes[0]
	}

	// Terms next to a group are separate operands, so the space between
	// them is not part of the pattern.
	for i, n := range g.nodes {
		if !n.IsLeaf() {
			continue
		}
		if i > 0 && g.nodes[i-1].Operation == None && !g.nodes[i-1].IsLeaf() {
			n.Data = strings.TrimLeftFunc(n.Data, unicode.IsSpace)
		}
		if i+1 < len(g.nodes) && n.Operation == None && !g.nodes[i+1].IsLeaf() {
			n.Data = strings.TrimRightFunc(n.Data, unicode.IsSpace)
		}
	}
	return &Node{Children: g.nodes}
}
