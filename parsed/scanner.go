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

package parsed

import (
	"bufio"
	"bytes"
	"strings"
)

// minBufferSize is the initial size of the scanner's buffer.
const minBufferSize = 64 * 1024

// Scanner scans the lines of a dictionary file's content and reports the
// byte range of each line within the content.
type Scanner struct {
	content string
	s       *bufio.Scanner

	// next is the offset of the start of the next line.
	next int

	// start and end are the bounds of the current line, excluding the line
	// terminator.
	start, end int
}

// NewScanner returns a new Scanner over content.
func NewScanner(content string) *Scanner {
	s := &Scanner{
		content: content,
		s:       bufio.NewScanner(strings.NewReader(content)),
	}
	// A single line may be as long as the whole content.
	s.s.Buffer(make([]byte, 0, minBufferSize), max(len(content)+1, minBufferSize))
	s.s.Split(s.splitLine)
	return s
}

// Scan advances to the next line. It returns false at the end of the content
// or on error.
func (s *Scanner) Scan() bool {
	return s.s.Scan()
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// Bounds returns the byte offsets of the current line within the content.
// The line terminator is not included.
func (s *Scanner) Bounds() (int, int) {
	return s.start, s.end
}

// Text returns the current line. The returned string shares memory with the
// content.
func (s *Scanner) Text() string {
	return s.content[s.start:s.end]
}

// Offset returns the offset of the start of the next line.
func (s *Scanner) Offset() int {
	return s.next
}

// setLine records the bounds of a line of length n followed by a terminator
// that ends advance bytes from the line start.
func (s *Scanner) setLine(n, advance int) {
	s.start = s.next
	s.end = s.next + n
	if s.end > s.start && s.content[s.end-1] == '\r' {
		s.end--
	}
	s.next += advance
}

// splitLine splits the content on line feeds. Lines are reported even when
// they are empty so that line numbers match the content.
func (s *Scanner) splitLine(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		s.setLine(i, i+1)
		return i + 1, data[:i], nil
	}

	if atEOF {
		s.setLine(len(data), len(data))
		return len(data), data, nil
	}

	// Request more data.
	return 0, nil, nil
}
