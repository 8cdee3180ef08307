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
	"fmt"
)

var (
	// ErrSyntax is wrapped by all query syntax errors.
	ErrSyntax = errors.New("query syntax error")

	// ErrUnmatchedStartParenthesis indicates an opening parenthesis without
	// a matching closing parenthesis.
	ErrUnmatchedStartParenthesis = fmt.Errorf("%w: unmatched start parenthesis", ErrSyntax)

	// ErrUnmatchedEndParenthesis indicates a closing parenthesis without a
	// matching opening parenthesis.
	ErrUnmatchedEndParenthesis = fmt.Errorf("%w: unmatched end parenthesis", ErrSyntax)

	// ErrHangingStartConnector indicates a logical connector with no operand
	// before it.
	ErrHangingStartConnector = fmt.Errorf("%w: hanging start logical connector", ErrSyntax)

	// ErrHangingEndConnector indicates a logical connector with no operand
	// after it.
	ErrHangingEndConnector = fmt.Errorf("%w: hanging end logical connector", ErrSyntax)

	// ErrEmptyQuery indicates a query with no search terms.
	ErrEmptyQuery = fmt.Errorf("%w: empty query", ErrSyntax)

	// ErrInvalidPattern indicates that a search term is not a valid regular
	// expression.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// SyntaxError is a query syntax error at a byte offset of the query.
type SyntaxError struct {
	// Query is the query text.
	Query string

	// Offset is the byte offset of the error.
	Offset int

	// Err is one of the syntax error sentinels.
	Err error
}

// Error implements [error.Error].
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

// Unwrap returns the underlying error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func syntaxError(query string, offset int, err error) error {
	return &SyntaxError{Query: query, Offset: offset, Err: err}
}

// PatternError indicates that a search term could not be compiled.
type PatternError struct {
	// Pattern is the search term.
	Pattern string

	// Err is the compilation error.
	Err error
}

// Error implements [error.Error].
func (e *PatternError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrInvalidPattern, e.Pattern, e.Err)
}

// Unwrap returns the underlying errors.
func (e *PatternError) Unwrap() []error {
	return []error{ErrInvalidPattern, e.Err}
}
