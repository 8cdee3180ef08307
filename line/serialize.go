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

package line

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/ianlewis/go-jdict/column"
)

var (
	// ErrTruncated indicates that serialized line data ended early.
	ErrTruncated = errors.New("truncated line data")

	// ErrInvalidText indicates that a serialized token does not refer to
	// valid text within the content buffer.
	ErrInvalidText = errors.New("invalid token text")

	// ErrAlreadyDeserialized indicates that the serialized line data has
	// already been consumed by a previous call to [Deserialize].
	ErrAlreadyDeserialized = errors.New("line data already deserialized")

	// ErrTooLarge indicates that a line cannot be represented in the
	// serialized format.
	ErrTooLarge = errors.New("line too large")
)

// terminator ends every serialized column.
const terminator int64 = -1

// consumed replaces the column count of a line without columns once it has
// been deserialized.
const consumed int32 = -1

// Serialized layout, little endian:
//
//	count:int32
//	count × (column:int32 tokens:int32 tokens × (offset:int64 length:int32) terminator:int64)
const (
	sizeCount  = 4
	sizeColumn = 4 + 4
	sizeRef    = 8 + 4
	sizeTerm   = 8
)

// AppendBinary implements [encoding.BinaryAppender]. Token offsets are
// written relative to the start of the line's content buffer.
func (l *Line) AppendBinary(b []byte) ([]byte, error) {
	if len(l.cols) > math.MaxInt32 {
		return b, fmt.Errorf("%w: %d columns", ErrTooLarge, len(l.cols))
	}
	b = binary.LittleEndian.AppendUint32(b, uint32(len(l.cols)))
	for _, c := range l.cols {
		if len(c.refs) > math.MaxInt32 {
			return b, fmt.Errorf("%w: %d tokens", ErrTooLarge, len(c.refs))
		}
		b = binary.LittleEndian.AppendUint32(b, uint32(c.id))
		b = binary.LittleEndian.AppendUint32(b, uint32(len(c.refs)))
		for _, r := range c.refs {
			if r.Length > math.MaxInt32 {
				return b, fmt.Errorf("%w: token of %d bytes", ErrTooLarge, r.Length)
			}
			b = binary.LittleEndian.AppendUint64(b, uint64(r.Offset))
			b = binary.LittleEndian.AppendUint32(b, uint32(r.Length))
		}
		b = binary.LittleEndian.AppendUint64(b, ^uint64(0)) // terminator
	}
	return b, nil
}

// MarshalBinary implements [encoding.BinaryMarshaler].
func (l *Line) MarshalBinary() ([]byte, error) {
	return l.AppendBinary(make([]byte, 0, l.binarySize()))
}

func (l *Line) binarySize() int {
	n := sizeCount
	for _, c := range l.cols {
		n += sizeColumn + len(c.refs)*sizeRef + sizeTerm
	}
	return n
}

type reader struct {
	b   []byte
	pos int
}

func (r *reader) int32() (int32, error) {
	if len(r.b)-r.pos < 4 {
		return 0, fmt.Errorf("%w: at offset %d", ErrTruncated, r.pos)
	}
	v := int32(binary.LittleEndian.Uint32(r.b[r.pos:]))
	r.pos += 4
	return v, nil
}

func (r *reader) int64() (int64, error) {
	if len(r.b)-r.pos < 8 {
		return 0, fmt.Errorf("%w: at offset %d", ErrTruncated, r.pos)
	}
	v := int64(binary.LittleEndian.Uint64(r.b[r.pos:]))
	r.pos += 8
	return v, nil
}

// Deserialize reads a line serialized by [Line.AppendBinary] from the start
// of b and binds its tokens to content. It returns the line and the number of
// bytes consumed.
//
// Every token is checked to lie within content and to be valid UTF-8.
// Deserialize consumes b: the token count of each column is zeroed in place
// once the whole line has been read, and a later attempt to deserialize the
// same bytes fails with [ErrAlreadyDeserialized]. A line without columns has
// its column count replaced with a consumed marker instead. Bytes are only
// modified when the line is read successfully. Callers that need to read the
// data twice must pass a copy.
func Deserialize(b []byte, content string) (*Line, int, error) {
	r := &reader{b: b}
	count, err := r.int32()
	if err != nil {
		return nil, r.pos, err
	}
	if count == consumed {
		return nil, r.pos, ErrAlreadyDeserialized
	}
	if count < 0 {
		return nil, r.pos, fmt.Errorf("%w: negative column count %d", ErrTruncated, count)
	}

	l := New(content)
	countPos := make([]int, 0, count)
	for range count {
		id, err := r.int32()
		if err != nil {
			return nil, r.pos, err
		}
		countPos = append(countPos, r.pos)
		n, err := r.int32()
		if err != nil {
			return nil, r.pos, err
		}
		if n == 0 {
			// Empty columns are never written.
			return nil, r.pos, fmt.Errorf("%w: column %d", ErrAlreadyDeserialized, id)
		}
		if n < 0 || int64(n)*sizeRef > int64(len(b)-r.pos) {
			return nil, r.pos, fmt.Errorf("%w: column %d declares %d tokens", ErrTruncated, id, n)
		}

		refs := make([]Ref, n)
		for i := range refs {
			off, err := r.int64()
			if err != nil {
				return nil, r.pos, err
			}
			length, err := r.int32()
			if err != nil {
				return nil, r.pos, err
			}
			if off < 0 || off > int64(len(content)) || length < 0 || off+int64(length) > int64(len(content)) {
				return nil, r.pos, fmt.Errorf("%w: token [%d, +%d) outside of %d byte buffer", ErrInvalidText, off, length, len(content))
			}
			ref := Ref{Offset: int(off), Length: int(length)}
			if !ref.Valid(content) {
				return nil, r.pos, fmt.Errorf("%w: token at offset %d is not valid UTF-8", ErrInvalidText, off)
			}
			refs[i] = ref
		}

		term, err := r.int64()
		if err != nil {
			return nil, r.pos, err
		}
		if term != terminator {
			return nil, r.pos, fmt.Errorf("%w: missing terminator for column %d", ErrTruncated, id)
		}

		l.Set(column.ID(id), refs)
	}

	if count == 0 {
		binary.LittleEndian.PutUint32(b, ^uint32(0)) // consumed
	}
	for _, pos := range countPos {
		binary.LittleEndian.PutUint32(b[pos:], 0)
	}

	return l, r.pos, nil
}
