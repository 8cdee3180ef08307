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

// Package jdict implements a library for searching flat text Japanese
// dictionaries in pure Go.
//
// Supported dictionary formats:
//  1. EDICT: one word per line with an optional reading and a list of
//     English glosses.
//  2. KANJIDIC: one kanji per line with codes, readings, and meanings.
//  3. Tanaka Corpus: example sentence pairs on "A:" and "B:" lines.
//  4. KRADFILE: one kanji per line with its radicals.
//
// Files may be gzip (.gz) or dictzip (.dz) compressed and may be encoded as
// UTF-8, EUC-JP, or Shift_JIS.
//
// Parsed dictionaries are cached in a cache directory keyed by the checksum
// of the dictionary's text. A cache file is only used when its checksum
// matches the dictionary file.
//
// Queries are regular expressions joined with && (AND) and || (OR) and
// grouped with parentheses. Connectors are evaluated left to right. Results
// are ranked by how closely the matched values resemble the query terms.
//
// More info on the EDICT family of files can be found at this URL:
// https://www.edrdg.org/
package jdict
