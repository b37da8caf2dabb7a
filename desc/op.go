/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package desc

import (
	"bytes"
	"encoding/binary"
	"maps"
	"slices"
	"sort"

	"github.com/dgryski/go-farm"

	"github.com/dgraph-io/compcache"
)

// Tensor describes one input of an operator.
type Tensor struct {
	Shape  Shape
	DType  string
	Format string
}

func (t Tensor) equal(o Tensor) bool {
	return t.DType == o.DType && t.Format == o.Format && slices.Equal(t.Shape, o.Shape)
}

// Op keys a compile request by everything that changes the compiled kernel:
// the operator type, its inputs, its attributes and an optional opaque blob
// (for example a serialized tiling context).
type Op struct {
	opType string
	inputs []Tensor
	attrs  map[string]string
	blob   []byte
	hash   compcache.HashKey
}

var _ compcache.Descriptor = (*Op)(nil)

// NewOp returns a descriptor over copies of the given values.
func NewOp(opType string, inputs []Tensor, attrs map[string]string, blob []byte) *Op {
	op := &Op{
		opType: opType,
		inputs: make([]Tensor, len(inputs)),
		attrs:  maps.Clone(attrs),
		blob:   bytes.Clone(blob),
	}
	for i, in := range inputs {
		op.inputs[i] = Tensor{Shape: slices.Clone(in.Shape), DType: in.DType, Format: in.Format}
	}
	op.hash = compcache.HashKey(farm.Fingerprint64(op.encode()))
	return op
}

// encode writes a canonical, length prefixed form of the op. Attributes are
// written in key order.
func (op *Op) encode() []byte {
	var buf bytes.Buffer
	putString := func(s string) {
		buf.Write(binary.AppendUvarint(nil, uint64(len(s))))
		buf.WriteString(s)
	}
	putString(op.opType)
	buf.Write(binary.AppendUvarint(nil, uint64(len(op.inputs))))
	for _, in := range op.inputs {
		buf.Write(binary.AppendUvarint(nil, uint64(len(in.Shape))))
		for _, d := range in.Shape {
			buf.Write(binary.AppendVarint(nil, d))
		}
		putString(in.DType)
		putString(in.Format)
	}
	keys := make([]string, 0, len(op.attrs))
	for k := range op.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	buf.Write(binary.AppendUvarint(nil, uint64(len(keys))))
	for _, k := range keys {
		putString(k)
		putString(op.attrs[k])
	}
	buf.Write(binary.AppendUvarint(nil, uint64(len(op.blob))))
	buf.Write(op.blob)
	return buf.Bytes()
}

// Type returns the operator type.
func (op *Op) Type() string {
	return op.opType
}

func (op *Op) Hash() compcache.HashKey {
	return op.hash
}

func (op *Op) IsEqual(other compcache.Descriptor) bool {
	o, ok := other.(*Op)
	if !ok || o == nil {
		return false
	}
	return op.opType == o.opType &&
		slices.EqualFunc(op.inputs, o.inputs, Tensor.equal) &&
		maps.Equal(op.attrs, o.attrs) &&
		bytes.Equal(op.blob, o.blob)
}
