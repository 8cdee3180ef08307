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

// Package folding implements text folding used to compare headwords and
// query terms.
package folding

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Chain returns a transformer that applies NFKC normalization, folds
// full-width and half-width forms to their canonical width, folds case, and
// collapses white space.
//
// The returned transformer is not safe for concurrent use.
func Chain() transform.Transformer {
	return transform.Chain(
		norm.NFKC,
		width.Fold,
		cases.Fold(),
		&SpaceFolder{},
	)
}

// Key returns the folded form of s. Strings that fail to fold are returned
// unchanged.
func Key(s string) string {
	k, _, err := transform.String(Chain(), s)
	if err != nil {
		return s
	}
	return k
}
