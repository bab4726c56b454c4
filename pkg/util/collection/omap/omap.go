// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package omap

import (
	"sort"
)

// Map is a string-keyed map which iterates in ascending key order,
// irrespective of insertion order.  Keys are inserted at most once.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// NewMap returns an empty ordered map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{nil, make(map[string]V)}
}

// Len returns the number of entries in this map.
func (p *Map[V]) Len() uint {
	return uint(len(p.keys))
}

// ContainsKey returns true if a given key is in the map.
func (p *Map[V]) ContainsKey(key string) bool {
	_, ok := p.values[key]
	//
	return ok
}

// Get returns the value bound to a given key (if any).
func (p *Map[V]) Get(key string) (V, bool) {
	value, ok := p.values[key]
	//
	return value, ok
}

// Insert binds a value to a given key, returning false if the key was
// already present (in which case the map is unchanged).
func (p *Map[V]) Insert(key string, value V) bool {
	if _, ok := p.values[key]; ok {
		return false
	}
	// Find index where key should occur.
	i := sort.SearchStrings(p.keys, key)
	//
	nkeys := make([]string, len(p.keys)+1)
	copy(nkeys, p.keys[0:i])
	nkeys[i] = key
	copy(nkeys[i+1:], p.keys[i:])
	//
	p.keys = nkeys
	p.values[key] = value
	//
	return true
}

// Keys returns the keys of this map in ascending order.  The returned slice
// must not be modified.
func (p *Map[V]) Keys() []string {
	return p.keys
}
