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

// Package cache stores parsed dictionary files on disk.
//
// A cache file is keyed by the checksum of the dictionary text it was built
// from and holds that text followed by the serialized lines:
//
//	checksum NUL
//	content length (int64, little endian)
//	content
//	line array
//
// A cache file is only used when its stored checksum matches both the
// checksum of the current dictionary text and the checksum of the stored
// content. Any other cache file is rejected with [ErrInvalidCache] and the
// caller is expected to parse the dictionary again.
package cache

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"

	"github.com/ianlewis/go-jdict/parsed"
	"github.com/ianlewis/go-jdict/progress"
	"github.com/ianlewis/go-jdict/source"
)

var (
	// ErrInvalidCache indicates that a cache file is unusable.
	ErrInvalidCache = errors.New("invalid cache file")

	// ErrChecksumMismatch indicates that a cache file was built from
	// different dictionary text.
	ErrChecksumMismatch = fmt.Errorf("%w: checksum mismatch", ErrInvalidCache)
)

// Ext is the file extension of cache files.
const Ext = ".jdc"

// Path returns the path of the cache file for checksum in dir.
func Path(dir, checksum string) string {
	return filepath.Join(dir, checksum+Ext)
}

// Marshal appends the cache file representation of f to b.
func Marshal(b []byte, checksum string, f *parsed.File, p *progress.Progress) ([]byte, error) {
	content := f.Content()
	b = append(b, checksum...)
	b = append(b, 0)
	b = binary.LittleEndian.AppendUint64(b, uint64(len(content)))
	b = append(b, content...)
	b, err := f.AppendBinaryProgress(b, p)
	if err != nil {
		return b, fmt.Errorf("serializing lines: %w", err)
	}
	return b, nil
}

// Unmarshal reads a cache file's contents. The stored checksum must equal
// checksum. Unmarshal consumes b; see [parsed.Unmarshal].
func Unmarshal(b []byte, checksum string) (*parsed.File, error) {
	nul := bytes.IndexByte(b, 0)
	if nul < 0 {
		return nil, fmt.Errorf("%w: missing checksum", ErrInvalidCache)
	}
	if stored := string(b[:nul]); stored != checksum {
		return nil, fmt.Errorf("%w: stored %q, want %q", ErrChecksumMismatch, stored, checksum)
	}
	pos := nul + 1

	if len(b)-pos < 8 {
		return nil, fmt.Errorf("%w: missing content length", ErrInvalidCache)
	}
	n := binary.LittleEndian.Uint64(b[pos:])
	pos += 8
	if n > uint64(len(b)-pos) {
		return nil, fmt.Errorf("%w: content length %d exceeds file", ErrInvalidCache, n)
	}
	content := string(b[pos : pos+int(n)])
	pos += int(n)

	if sum := source.Checksum(content); sum != checksum {
		return nil, fmt.Errorf("%w: stored content has checksum %q", ErrChecksumMismatch, sum)
	}

	f, m, err := parsed.Unmarshal(b[pos:], content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCache, err)
	}
	if pos+m != len(b) {
		return nil, fmt.Errorf("%w: %d bytes of trailing data", ErrInvalidCache, len(b)-pos-m)
	}
	return f, nil
}

// Write writes the cache file for f to dir. The file is written to a
// temporary file first and renamed into place so readers never see a partial
// cache file. Write returns the path of the cache file.
//
// Write checks p between lines. If p is canceled, the temporary file is
// removed and p's error is returned.
func Write(dir, checksum string, f *parsed.File, p *progress.Progress) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	p.SetTotal(int64(f.Len()))
	b, err := Marshal(nil, checksum, f, p)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, checksum+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating cache file: %w", err)
	}
	defer func() {
		// Removing the temporary file fails once it has been renamed.
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("writing cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing cache file: %w", err)
	}
	if p.ShouldStop() {
		return "", p.Err()
	}

	path := Path(dir, checksum)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("writing cache file: %w", err)
	}
	return path, nil
}

// Read reads the cache file for checksum from dir. The file is memory mapped
// copy-on-write so that deserialization does not modify it on disk.
//
// Read returns an error wrapping [os.ErrNotExist] if there is no cache file
// and an error wrapping [ErrInvalidCache] if the cache file is unusable.
func Read(dir, checksum string) (*parsed.File, error) {
	path := Path(dir, checksum)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cache file: %w", err)
	}
	defer file.Close()

	st, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("opening cache file: %w", err)
	}
	if st.Size() == 0 {
		return nil, fmt.Errorf("%w: %q is empty", ErrInvalidCache, path)
	}

	m, err := mmap.Map(file, mmap.COPY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping cache file: %w", err)
	}
	defer func() {
		_ = m.Unmap()
	}()

	f, err := Unmarshal(m, checksum)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return f, nil
}

// Remove removes the cache file for checksum from dir if it exists.
func Remove(dir, checksum string) error {
	err := os.Remove(Path(dir, checksum))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing cache file: %w", err)
	}
	return nil
}
