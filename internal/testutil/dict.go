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

package testutil

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Compression is a compression method for test dictionary files.
type Compression int

const (
	// None writes the file uncompressed.
	None Compression = iota

	// Gzip compresses the file with gzip.
	Gzip

	// DictZip compresses the file with dictzip.
	DictZip
)

// MakeDictOptions are options for MakeTempDict.
type MakeDictOptions struct {
	// Compression is the compression method. The matching extension is
	// appended to the file name.
	Compression Compression

	// EUCJP encodes the file as EUC-JP instead of UTF-8.
	EUCJP bool
}

// GetExt returns the file extension for the options' compression.
func (o *MakeDictOptions) GetExt() string {
	if o == nil {
		return ""
	}
	switch o.Compression {
	case Gzip:
		return ".gz"
	case DictZip:
		return ".dz"
	default:
		return ""
	}
}

// MakeTempDict writes content to a dictionary file called name in dir and
// returns the path of the file written. The path includes the compression
// extension.
func MakeTempDict(t *testing.T, dir, name, content string, opts *MakeDictOptions) string {
	t.Helper()
	if opts == nil {
		opts = &MakeDictOptions{}
	}

	b := []byte(content)
	if opts.EUCJP {
		var err error
		b, _, err = transform.Bytes(japanese.EUCJP.NewEncoder(), b)
		if err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(dir, name+opts.GetExt())
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var w io.WriteCloser
	switch opts.Compression {
	case Gzip:
		w = gzip.NewWriter(f)
	case DictZip:
		w, err = dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
	default:
		w = f
	}

	if _, err := w.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}
