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

// Package source reads raw dictionary files.
//
// Dictionary files may be stored plain, gzip compressed (.gz), or dictzip
// compressed (.dz). Their text may be UTF-8, EUC-JP, or Shift_JIS. The
// functions in this package locate a file, decompress it, and decode it to
// UTF-8.
package source

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/ianlewis/go-dictzip"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

var (
	// ErrNotFound indicates that no dictionary file could be found.
	ErrNotFound = errors.New("dictionary file not found")

	// ErrUnsupportedEncoding indicates that a text encoding is not supported.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// Encoding is a text encoding name.
type Encoding string

const (
	// Auto detects the encoding. Valid UTF-8 is read as-is and anything else
	// is decoded as EUC-JP.
	Auto Encoding = "auto"

	// UTF8 is UTF-8.
	UTF8 Encoding = "utf-8"

	// EUCJP is EUC-JP, the traditional encoding of the EDICT family of files.
	EUCJP Encoding = "euc-jp"

	// ShiftJIS is Shift_JIS.
	ShiftJIS Encoding = "shift_jis"
)

// ParseEncoding parses an encoding name. An empty name is [Auto].
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "", "auto":
		return Auto, nil
	case "utf-8", "utf8":
		return UTF8, nil
	case "euc-jp", "eucjp":
		return EUCJP, nil
	case "shift-jis", "sjis", "shiftjis":
		return ShiftJIS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
}

// Options are options for reading dictionary files.
type Options struct {
	// Encoding is the text encoding of the file.
	Encoding Encoding
}

// DefaultOptions are the default options for reading dictionary files.
var DefaultOptions = &Options{
	Encoding: Auto,
}

// compressedExts are the extensions probed when looking for a file.
var compressedExts = []string{"", ".gz", ".GZ", ".dz", ".DZ"}

// utf8BOM is the UTF-8 byte order mark.
const utf8BOM = "\ufeff"

// Find returns the path to the dictionary file at path, probing for
// compressed variants of the file when path itself does not exist.
func Find(path string) (string, error) {
	for _, ext := range compressedExts {
		p := path + ext
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNotFound, path)
}

// Compression returns the compression extension of path or an empty string
// if path is not compressed.
func Compression(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gz", ".dz":
		return ext
	default:
		return ""
	}
}

// TrimExt returns path without its compression extension.
func TrimExt(path string) string {
	if ext := Compression(path); ext != "" {
		return path[:len(path)-len(ext)]
	}
	return path
}

// ReadAll reads and decompresses the file at path.
func ReadAll(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch Compression(path) {
	case ".gz":
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}
		defer z.Close()
		r = z
	case ".dz":
		z, err := dictzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}
		r = z
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return b, nil
}

// ReadFile finds, reads, and decodes the dictionary file at path. It returns
// the file's text as UTF-8.
func ReadFile(path string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	p, err := Find(path)
	if err != nil {
		return "", err
	}
	b, err := ReadAll(p)
	if err != nil {
		return "", err
	}
	s, err := Decode(b, opts.Encoding)
	if err != nil {
		return "", fmt.Errorf("decoding %q: %w", p, err)
	}
	return s, nil
}

// Decode decodes b from the given encoding to UTF-8. A leading UTF-8 byte
// order mark is removed.
func Decode(b []byte, enc Encoding) (string, error) {
	var e encoding.Encoding
	switch enc {
	case Auto, "":
		if utf8.Valid(b) {
			return strings.TrimPrefix(string(b), utf8BOM), nil
		}
		e = japanese.EUCJP
	case UTF8:
		if !utf8.Valid(b) {
			return "", fmt.Errorf("%w: invalid UTF-8", ErrUnsupportedEncoding)
		}
		return strings.TrimPrefix(string(b), utf8BOM), nil
	case EUCJP:
		e = japanese.EUCJP
	case ShiftJIS:
		e = japanese.ShiftJIS
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, enc)
	}

	out, _, err := transform.Bytes(e.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsupportedEncoding, err)
	}
	return string(bytes.TrimPrefix(out, []byte(utf8BOM))), nil
}

// Checksum returns the checksum of decoded dictionary content.
func Checksum(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// IsNotFound reports whether err indicates a missing file.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
