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

// Package index implements a sorted key index.
package index

import (
	"slices"
	"sort"
	"strings"
)

// Entry is an indexed value with its key.
type Entry[V any] struct {
	Key   string
	Value V
}

// Index is a generic sorted array index. Entries with equal keys keep their
// insertion order.
type Index[V any] struct {
	entries []Entry[V]
}

// New creates an index from the given entries.
func New[V any](entries []Entry[V]) *Index[V] {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry[V]) int {
		return strings.Compare(a.Key, b.Key)
	})
	return &Index[V]{entries: sorted}
}

// Len returns the number of entries in the index.
func (idx *Index[V]) Len() int {
	return len(idx.entries)
}

// Search returns the values whose key equals key.
func (idx *Index[V]) Search(key string) []V {
	i, found := sort.Find(len(idx.entries), func(i int) int {
		return strings.Compare(key, idx.entries[i].Key)
	})
	if !found {
		return nil
	}

	var values []V
	for ; i < len(idx.entries) && idx.entries[i].Key == key; i++ {
		values = append(values, idx.entries[i].Value)
	}
	return values
}

// Prefix returns the values whose key starts with prefix in key order.
func (idx *Index[V]) Prefix(prefix string) []V {
	i := sort.Search(len(idx.entries), func(i int) bool {
		return idx.entries[i].Key >= prefix
	})

	var values []V
	for ; i < len(idx.entries) && strings.HasPrefix(idx.entries[i].Key, prefix); i++ {
		values = append(values, idx.entries[i].Value)
	}
	return values
}
