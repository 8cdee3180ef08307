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

package format

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFields(t *testing.T) {
	t.Parallel()

	text := "  a bb\tccc  "
	var got []string
	for _, r := range Fields(text, 0, len(text)) {
		got = append(got, r.Slice(text))
	}
	if diff := cmp.Diff([]string{"a", "bb", "ccc"}, got); diff != "" {
		t.Errorf("Fields (-want, +got):\n%s", diff)
	}

	if got := Fields(text, 0, 2); got != nil {
		t.Errorf("Fields of blank range; want: nil, got: %v", got)
	}
}

func TestIsDigitsIsHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s      string
		digits bool
		hex    bool
	}{
		{s: "123", digits: true, hex: true},
		{s: "4e9c", hex: true},
		{s: "4E9C", hex: true},
		{s: "xyz"},
		{s: ""},
	}

	for _, test := range tests {
		if want, got := test.digits, IsDigits(test.s); want != got {
			t.Errorf("IsDigits(%q); want: %v, got: %v", test.s, want, got)
		}
		if want, got := test.hex, IsHex(test.s); want != got {
			t.Errorf("IsHex(%q); want: %v, got: %v", test.s, want, got)
		}
	}
}
