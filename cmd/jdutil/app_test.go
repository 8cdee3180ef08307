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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const testEdict = `　？？？ /EDICT Test File/
犬 [いぬ] /(n) dog/hound/(P)/
猫 [ねこ] /(n) cat/(P)/
子犬 [こいぬ] /(n) puppy/small dog/
`

func writeTestDict(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "edict"), []byte(testEdict), 0o600))
	return dir
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("JDICT_CONFIG", "")

	var stdout, stderr bytes.Buffer
	app := newJdutilApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.RunContext(context.Background(), append([]string{"jdutil"}, args...))
	return stdout.String(), err
}

func TestQueryCommand(t *testing.T) {
	dir := writeTestDict(t)

	testCases := map[string]struct {
		args []string
		want string
	}{
		"single term": {
			args: []string{"query", "--no-color", "puppy"},
			want: "edict:4\tword: 子犬 | reading: こいぬ | definition: puppy; small dog\n",
		},
		"highlight": {
			args: []string{"query", "cat"},
			want: "edict:3\tword: 猫 | reading: ねこ | definition: \x1b[1mcat\x1b[0m | popular: (P)\n",
		},
		"limit": {
			args: []string{"query", "--no-color", "--limit", "1", "dog"},
			want: "edict:2\tword: 犬 | reading: いぬ | definition: dog; hound | popular: (P)\n",
		},
		"no results": {
			args: []string{"query", "--no-color", "bird"},
			want: "",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			args := append([]string{"--data-dir", dir, "--no-cache"}, tc.args...)
			got, err := runApp(t, args...)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected output (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestQueryCommand_errors(t *testing.T) {
	dir := writeTestDict(t)

	t.Run("missing query", func(t *testing.T) {
		_, err := runApp(t, "--data-dir", dir, "--no-cache", "query")
		require.ErrorIs(t, err, ErrFlagParse)
	})

	t.Run("invalid filter", func(t *testing.T) {
		_, err := runApp(t, "--data-dir", dir, "--no-cache", "query", "--filter", "=x", "dog")
		require.ErrorIs(t, err, ErrFlagParse)
	})

	t.Run("no dictionaries", func(t *testing.T) {
		_, err := runApp(t, "--data-dir", t.TempDir(), "--no-cache", "query", "dog")
		require.ErrorIs(t, err, ErrNoDictionaries)
	})
}

func TestListCommand(t *testing.T) {
	dir := writeTestDict(t)

	got, err := runApp(t, "--data-dir", dir, "--no-cache", "list")
	require.NoError(t, err)
	require.Contains(t, got, "edict")
	require.Contains(t, got, filepath.Join(dir, "edict"))
}

func TestParseFilters(t *testing.T) {
	t.Parallel()

	got, err := parseFilters([]string{"popular", "grade=^G1$"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "popular", got[0].Column)
	require.Empty(t, got[0].Pattern)
	require.Equal(t, "grade", got[1].Column)
	require.Equal(t, "^G1$", got[1].Pattern)
}
