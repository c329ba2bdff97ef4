// Copyright 2020-2025 Buf Technologies, Inc.
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

// Package interval provides interval sets keyed by integer offsets.
package interval

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd // Tries to replace w/ cmp.
)

// Endpoint is a type that may be used as an interval endpoint.
type Endpoint = constraints.Integer

// Entry is an interval in a [Nesting], with its associated value.
type Entry[K Endpoint, V any] struct {
	Start, End K // Half-open: Start is included, End is not.
	Value      V
}

// Contains returns whether an entry contains a given point.
func (e Entry[K, V]) Contains(point K) bool {
	return e.Start <= point && point < e.End
}

// covers returns whether e contains all of [start, end).
func (e Entry[K, V]) covers(start, end K) bool {
	return e.Start <= start && end <= e.End
}

// Nesting is a collection of half-open intervals in which any two
// intervals are either disjoint or one contains the other. Intervals are
// arranged in layers by depth: layer zero holds the outermost intervals, and
// every interval in layer n+1 lies inside exactly one interval of layer n.
//
// Intervals must be inserted outermost first; an interval equal to an
// existing one nests inside it.
//
// A zero value is ready to use.
type Nesting[K Endpoint, V any] struct {
	// Keys in each layer are the ends of the intervals. Intervals within a
	// layer never overlap, so ends are unique.
	layers []*btree.Map[K, *Entry[K, V]]
	len    int
}

// Len returns the number of intervals in the collection.
func (n *Nesting[K, V]) Len() int {
	return n.len
}

// Depth returns the number of layers in the collection.
func (n *Nesting[K, V]) Depth() int {
	return len(n.layers)
}

// Insert adds [start, end) to the collection.
//
// Returns false, without inserting, if the interval is empty or if it
// overlaps an interval already in the collection without lying inside it.
func (n *Nesting[K, V]) Insert(start, end K, value V) bool {
	if start >= end {
		return false
	}

	depth := 0
	for ; depth < len(n.layers); depth++ {
		e := n.find(depth, start)
		if e != nil && e.covers(start, end) {
			continue
		}
		if n.overlaps(depth, start, end) {
			return false
		}
		break
	}

	if depth == len(n.layers) {
		n.layers = append(n.layers, new(btree.Map[K, *Entry[K, V]]))
	}
	n.layers[depth].Set(end, &Entry[K, V]{Start: start, End: end, Value: value})
	n.len++
	return true
}

// Stack returns every interval containing point, outermost first.
func (n *Nesting[K, V]) Stack(point K) []Entry[K, V] {
	var stack []Entry[K, V]
	for depth := range n.layers {
		e := n.find(depth, point)
		if e == nil || !e.Contains(point) {
			break
		}
		stack = append(stack, *e)
	}
	return stack
}

// Innermost returns the smallest interval containing point.
func (n *Nesting[K, V]) Innermost(point K) (Entry[K, V], bool) {
	stack := n.Stack(point)
	if len(stack) == 0 {
		return Entry[K, V]{}, false
	}
	return stack[len(stack)-1], true
}

// Entries returns an iterator over every interval, ordered by depth and
// then by position.
func (n *Nesting[K, V]) Entries() iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		for _, layer := range n.layers {
			iter := layer.Iter()
			for more := iter.First(); more; more = iter.Next() {
				if !yield(*iter.Value()) {
					return
				}
			}
		}
	}
}

// Clear resets this collection.
func (n *Nesting[K, V]) Clear() {
	n.layers = nil
	n.len = 0
}

// Format implements [fmt.Formatter].
func (n *Nesting[K, V]) Format(s fmt.State, v rune) {
	fmt.Fprint(s, "[")
	for depth, layer := range n.layers {
		if depth > 0 {
			fmt.Fprint(s, ", ")
		}
		fmt.Fprint(s, "{")
		first := true
		layer.Scan(func(_ K, e *Entry[K, V]) bool {
			if !first {
				fmt.Fprint(s, ", ")
			}
			first = false
			fmt.Fprintf(s, "[%#v, %#v): ", e.Start, e.End)
			fmt.Fprintf(s, fmt.FormatString(s, v), e.Value)
			return true
		})
		fmt.Fprint(s, "}")
	}
	fmt.Fprint(s, "]")
}

// find returns the interval in a layer with the least end greater than
// point, which is the only one that could contain it.
func (n *Nesting[K, V]) find(depth int, point K) *Entry[K, V] {
	iter := n.layers[depth].Iter()
	if !iter.Seek(point + 1) {
		return nil
	}
	return iter.Value()
}

// overlaps returns whether [start, end) overlaps any interval in a layer.
func (n *Nesting[K, V]) overlaps(depth int, start, end K) bool {
	e := n.find(depth, start)
	return e != nil && e.Start < end
}
