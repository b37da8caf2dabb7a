/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package desc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dgraph-io/compcache"
)

func TestShapes(t *testing.T) {
	a := NewShapes(Shape{256, 256})
	b := NewShapes(Shape{256, 256})
	c := NewShapes(Shape{1, 256, 256})

	require.True(t, a.IsEqual(b))
	require.Equal(t, a.Hash(), b.Hash())
	require.False(t, a.IsEqual(c))
	require.NotEqual(t, a.Hash(), c.Hash())

	// Shape boundaries take part in the hash.
	d := NewShapes(Shape{1, 2}, Shape{3})
	e := NewShapes(Shape{1}, Shape{2, 3})
	require.False(t, d.IsEqual(e))
	require.NotEqual(t, d.Hash(), e.Hash())

	require.False(t, a.IsEqual(NewOp("matmul", nil, nil, nil)))
	require.False(t, a.IsEqual(nil))
}

func TestShapesCopiesInput(t *testing.T) {
	s := Shape{4, 4}
	a := NewShapes(s)
	h := a.Hash()
	s[0] = 8
	require.Equal(t, h, a.Hash())
	require.Equal(t, Shape{4, 4}, a.Shapes()[0])
	require.True(t, a.IsEqual(NewShapes(Shape{4, 4})))

	// Writes through the accessor do not reach the descriptor either.
	got := a.Shapes()
	got[0][0] = 9
	got[0] = Shape{1}
	require.Equal(t, h, a.Hash())
	require.Equal(t, []Shape{{4, 4}}, a.Shapes())
	require.True(t, a.IsEqual(NewShapes(Shape{4, 4})))
}

func TestShapesStayFindable(t *testing.T) {
	c, err := compcache.NewCache(compcache.NewExactMatch(), compcache.NewLRU(4))
	require.NoError(t, err)

	d := NewShapes(Shape{1, 2})
	id := c.AddCache(d)
	require.Equal(t, compcache.ItemID(0), id)

	d.Shapes()[0][0] = 9
	require.Equal(t, id, c.FindCache(NewShapes(Shape{1, 2})))
	require.Equal(t, compcache.InvalidItemID, c.FindCache(NewShapes(Shape{9, 2})))
}

func TestOp(t *testing.T) {
	inputs := []Tensor{
		{Shape: Shape{32, 64}, DType: "float16", Format: "ND"},
		{Shape: Shape{64, 128}, DType: "float16", Format: "ND"},
	}
	attrs := map[string]string{"transpose_a": "false", "transpose_b": "true"}
	a := NewOp("MatMul", inputs, attrs, []byte{1, 2, 3})
	b := NewOp("MatMul", inputs, map[string]string{"transpose_b": "true", "transpose_a": "false"},
		[]byte{1, 2, 3})

	require.Equal(t, "MatMul", a.Type())
	require.True(t, a.IsEqual(b))
	require.Equal(t, a.Hash(), b.Hash())

	tests := []struct {
		name string
		op   *Op
	}{
		{"type", NewOp("BatchMatMul", inputs, attrs, []byte{1, 2, 3})},
		{"attrs", NewOp("MatMul", inputs, map[string]string{"transpose_a": "true"}, []byte{1, 2, 3})},
		{"blob", NewOp("MatMul", inputs, attrs, []byte{1, 2})},
		{"dtype", NewOp("MatMul", []Tensor{
			{Shape: Shape{32, 64}, DType: "float32", Format: "ND"},
			inputs[1],
		}, attrs, []byte{1, 2, 3})},
		{"shape", NewOp("MatMul", []Tensor{
			{Shape: Shape{32, 65}, DType: "float16", Format: "ND"},
			inputs[1],
		}, attrs, []byte{1, 2, 3})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.False(t, a.IsEqual(tc.op))
			require.NotEqual(t, a.Hash(), tc.op.Hash())
		})
	}
}

func TestOpEmptyValues(t *testing.T) {
	a := NewOp("Relu", nil, nil, nil)
	b := NewOp("Relu", []Tensor{}, map[string]string{}, []byte{})
	require.True(t, a.IsEqual(b))
	require.Equal(t, a.Hash(), b.Hash())
}
