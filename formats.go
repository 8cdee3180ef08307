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

package jdict

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ianlewis/go-jdict/format"
	"github.com/ianlewis/go-jdict/format/edict"
	"github.com/ianlewis/go-jdict/format/kanjidic"
	"github.com/ianlewis/go-jdict/format/radkfile"
	"github.com/ianlewis/go-jdict/format/tanaka"
	"github.com/ianlewis/go-jdict/source"
)

// ErrUnknownFormat indicates that a dictionary format is not supported or
// could not be detected.
var ErrUnknownFormat = errors.New("unknown dictionary format")

var formats = map[string]format.Format{
	"edict":    edict.Format{},
	"kanjidic": kanjidic.Format{},
	"tanaka":   tanaka.Format{},
	"radkfile": radkfile.Format{},
}

// filePatterns maps file name prefixes and suffixes to format names.
var filePatterns = []struct {
	prefix string
	suffix string
	format string
}{
	{prefix: "edict", format: "edict"},
	{prefix: "enamdict", format: "edict"},
	{prefix: "compdic", format: "edict"},
	{suffix: ".edict", format: "edict"},
	{prefix: "kanjidic", format: "kanjidic"},
	{prefix: "kanjd212", format: "kanjidic"},
	{prefix: "examples", format: "tanaka"},
	{prefix: "tanaka", format: "tanaka"},
	{prefix: "kradfile", format: "radkfile"},
	{prefix: "radk", format: "radkfile"},
}

// Formats returns the supported formats sorted by name.
func Formats() []format.Format {
	var fs []format.Format
	for _, f := range formats {
		fs = append(fs, f)
	}
	slices.SortFunc(fs, func(a, b format.Format) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return fs
}

// LookupFormat returns the format with the given name.
func LookupFormat(name string) (format.Format, error) {
	f, ok := formats[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// DetectFormat returns the format of the dictionary file at path based on
// its file name. Compression extensions are ignored.
func DetectFormat(path string) (format.Format, error) {
	base := strings.ToLower(filepath.Base(source.TrimExt(path)))
	for _, p := range filePatterns {
		if p.prefix != "" && strings.HasPrefix(base, p.prefix) {
			return formats[p.format], nil
		}
		if p.suffix != "" && strings.HasSuffix(base, p.suffix) {
			return formats[p.format], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}
