/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package desc has ready made compcache descriptors for the common cases of
// keying a runtime request by its input shapes and keying a compile request by
// its full operator description.
package desc

import (
	"slices"

	"github.com/dgraph-io/compcache"
	"github.com/dgraph-io/compcache/z"
)

// shapeSep separates consecutive shapes in the hash so that [[1, 2], [3]] and
// [[1], [2, 3]] do not fold to the same sequence.
const shapeSep = ','

// Shape is the list of dims of one tensor.
type Shape []int64

// Shapes keys a runtime request by the shapes of its inputs.
type Shapes struct {
	shapes []Shape
	hash   compcache.HashKey
}

var _ compcache.Descriptor = (*Shapes)(nil)

// NewShapes returns a descriptor over a copy of shapes.
func NewShapes(shapes ...Shape) *Shapes {
	s := &Shapes{shapes: make([]Shape, len(shapes))}
	for i, shape := range shapes {
		s.shapes[i] = slices.Clone(shape)
	}
	h := z.MultiHash()
	for _, shape := range s.shapes {
		h = z.HashInts(h, shape)
		h = z.HashCombine(h, shapeSep)
	}
	s.hash = compcache.HashKey(h)
	return s
}

// Shapes returns a copy of the shapes the descriptor was built from.
func (s *Shapes) Shapes() []Shape {
	out := make([]Shape, len(s.shapes))
	for i, shape := range s.shapes {
		out[i] = slices.Clone(shape)
	}
	return out
}

func (s *Shapes) Hash() compcache.HashKey {
	return s.hash
}

func (s *Shapes) IsEqual(other compcache.Descriptor) bool {
	o, ok := other.(*Shapes)
	if !ok || o == nil {
		return false
	}
	return slices.EqualFunc(s.shapes, o.shapes, func(a, b Shape) bool {
		return slices.Equal(a, b)
	})
}
