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

package jdict_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	jdict "github.com/ianlewis/go-jdict"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "/usr/share/edict/edict", want: "edict"},
		{path: "edict2.gz", want: "edict"},
		{path: "EDICT.DZ", want: "edict"},
		{path: "enamdict", want: "edict"},
		{path: "/data/names.edict", want: "edict"},
		{path: "kanjidic.gz", want: "kanjidic"},
		{path: "kanjidic2", want: "kanjidic"},
		{path: "examples.utf", want: "tanaka"},
		{path: "tanaka-corpus", want: "tanaka"},
		{path: "kradfile", want: "radkfile"},
		{path: "radkfilex", want: "radkfile"},
		{path: "readme.txt", want: ""},
		{path: "mydict.gz", want: ""},
	}

	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			t.Parallel()

			f, err := jdict.DetectFormat(test.path)
			if test.want == "" {
				if !errors.Is(err, jdict.ErrUnknownFormat) {
					t.Fatalf("DetectFormat(%q); want: %v, got: %v", test.path, jdict.ErrUnknownFormat, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectFormat(%q): %v", test.path, err)
			}
			if got := f.Name(); test.want != got {
				t.Errorf("DetectFormat(%q); want: %q, got: %q", test.path, test.want, got)
			}
		})
	}
}

func TestLookupFormat(t *testing.T) {
	t.Parallel()

	for _, f := range jdict.Formats() {
		got, err := jdict.LookupFormat(f.Name())
		if err != nil {
			t.Fatalf("LookupFormat(%q): %v", f.Name(), err)
		}
		if got.Name() != f.Name() {
			t.Errorf("LookupFormat(%q); got: %q", f.Name(), got.Name())
		}
		if err := f.Columns().Validate(); err != nil {
			t.Errorf("%s columns: %v", f.Name(), err)
		}
		if want, got := f.TotalColumns(), f.Columns().Len(); want != got {
			t.Errorf("%s TotalColumns; want: %d, got: %d", f.Name(), want, got)
		}
	}

	if _, err := jdict.LookupFormat("epwing"); !errors.Is(err, jdict.ErrUnknownFormat) {
		t.Errorf("LookupFormat(epwing); want: %v, got: %v", jdict.ErrUnknownFormat, err)
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()

	var names []string
	for _, f := range jdict.Formats() {
		names = append(names, f.Name())
	}
	if diff := cmp.Diff([]string{"edict", "kanjidic", "radkfile", "tanaka"}, names); diff != "" {
		t.Errorf("Formats (-want, +got):\n%s", diff)
	}
}
