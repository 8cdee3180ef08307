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

// Package parsed holds the parsed form of a whole dictionary file.
//
// A [File] owns the decoded text of a dictionary and one [line.Line] per
// line of text. Every token of every line refers into the file's content so
// the parsed form can be written to disk and read back without copying
// strings.
package parsed

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/ianlewis/go-jdict/format"
	"github.com/ianlewis/go-jdict/line"
	"github.com/ianlewis/go-jdict/progress"
)

// Stats are statistics gathered while parsing.
type Stats struct {
	// Lines is the number of lines in the file.
	Lines int

	// Malformed is the number of non-blank lines that produced no columns.
	Malformed int
}

// File is a parsed dictionary file. A File is immutable once built and safe
// for concurrent use.
type File struct {
	content string
	lines   []*line.Line
	stats   Stats
}

// New returns a File for content and already parsed lines. The lines must
// refer to content and hold one entry per line of content.
func New(content string, lines []*line.Line) *File {
	f := &File{
		content: content,
		lines:   lines,
	}
	f.stats.Lines = len(lines)

	s := NewScanner(content)
	for i := 0; i < len(lines) && s.Scan(); i++ {
		if lines[i].NumColumns() > 0 || strings.TrimSpace(s.Text()) == "" {
			continue
		}
		// Lines merged into the previous entry are referenced by it.
		if start, _ := s.Bounds(); i > 0 && extent(lines[i-1]) > start {
			continue
		}
		f.stats.Malformed++
	}
	return f
}

// extent returns the end offset of the last token of l.
func extent(l *line.Line) int {
	end := 0
	for _, id := range l.Columns() {
		for _, r := range l.Refs(id) {
			end = max(end, r.End())
		}
	}
	return end
}

// Parse splits content into lines and loads each line using f. Lines that f
// rejects are kept as empty lines so that line numbers match the content.
//
// If f implements [format.Continuation], the columns of a continuation line
// are added to the previous line's entry and the continuation line itself is
// left empty. A continuation line without a previous entry is malformed.
//
// Parse checks p between lines and returns its error when it should stop.
// Progress is reported in bytes of content.
func Parse(content string, f format.Format, p *progress.Progress) (*File, error) {
	p.SetTotal(int64(len(content)))
	cont, _ := f.(format.Continuation)

	file := &File{content: content}
	s := NewScanner(content)
	for s.Scan() {
		if p.ShouldStop() {
			return nil, p.Err()
		}

		start, _ := s.Bounds()
		text := s.Text()
		l := format.Load(f, text)
		l.Relocate(content, start)
		merged := false
		if cont != nil && cont.Continues(text) {
			if n := len(file.lines); n > 0 {
				merged = merge(file.lines[n-1], l)
			}
			l = line.New(content)
		}
		if !merged && l.NumColumns() == 0 && strings.TrimSpace(text) != "" {
			file.stats.Malformed++
		}
		file.lines = append(file.lines, l)
		p.Set(int64(s.Offset()))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s lines: %w", f.Name(), err)
	}
	file.stats.Lines = len(file.lines)
	return file, nil
}

// merge adds the columns of next that prev does not have to prev. It reports
// false if prev has no entry or next has nothing to add.
func merge(prev, next *line.Line) bool {
	if prev.NumColumns() == 0 || next.NumColumns() == 0 {
		return false
	}
	added := false
	for _, id := range next.Columns() {
		if !prev.Has(id) {
			prev.Set(id, next.Refs(id))
			added = true
		}
	}
	return added
}

// Content returns the file's decoded text.
func (f *File) Content() string {
	return f.content
}

// Len returns the number of lines.
func (f *File) Len() int {
	return len(f.lines)
}

// Line returns the i-th line.
func (f *File) Line(i int) *line.Line {
	return f.lines[i]
}

// Lines returns all lines. The returned slice must not be modified.
func (f *File) Lines() []*line.Line {
	return f.lines
}

// Stats returns the statistics gathered while parsing.
func (f *File) Stats() Stats {
	return f.stats
}

// AppendBinary implements [encoding.BinaryAppender]. It appends the line
// count followed by every serialized line.
func (f *File) AppendBinary(b []byte) ([]byte, error) {
	return f.AppendBinaryProgress(b, nil)
}

// AppendBinaryProgress is like AppendBinary but checks p between lines and
// advances it by one for each line written.
func (f *File) AppendBinaryProgress(b []byte, p *progress.Progress) ([]byte, error) {
	if len(f.lines) > math.MaxInt32 {
		return b, fmt.Errorf("%w: %d lines", line.ErrTooLarge, len(f.lines))
	}
	b = binary.LittleEndian.AppendUint32(b, uint32(len(f.lines)))
	for i, l := range f.lines {
		if p.ShouldStop() {
			return b, p.Err()
		}
		var err error
		b, err = l.AppendBinary(b)
		if err != nil {
			return b, fmt.Errorf("line %d: %w", i+1, err)
		}
		p.Advance(1)
	}
	return b, nil
}

// MarshalBinary implements [encoding.BinaryMarshaler].
func (f *File) MarshalBinary() ([]byte, error) {
	return f.AppendBinary(nil)
}

// Unmarshal reads a line array written by [File.AppendBinary] from the start
// of b and binds the lines to content. It returns the File and the number of
// bytes consumed. Like [line.Deserialize], Unmarshal consumes b.
func Unmarshal(b []byte, content string) (*File, int, error) {
	if len(b) < 4 {
		return nil, 0, fmt.Errorf("%w: missing line count", line.ErrTruncated)
	}
	count := int32(binary.LittleEndian.Uint32(b))
	if count < 0 {
		return nil, 4, fmt.Errorf("%w: negative line count %d", line.ErrTruncated, count)
	}
	pos := 4

	// Each serialized line is at least 4 bytes long.
	if int64(count)*4 > int64(len(b)-pos) {
		return nil, pos, fmt.Errorf("%w: %d lines in %d bytes", line.ErrTruncated, count, len(b)-pos)
	}

	lines := make([]*line.Line, count)
	for i := range lines {
		l, n, err := line.Deserialize(b[pos:], content)
		if err != nil {
			return nil, pos, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines[i] = l
		pos += n
	}
	return New(content, lines), pos, nil
}
