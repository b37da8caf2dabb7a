/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package z

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistogramBounds(t *testing.T) {
	require.Equal(t, []float64{2, 4, 8, 16}, HistogramBounds(1, 4))
}

func TestHistogramUpdate(t *testing.T) {
	h := NewHistogramData(HistogramBounds(1, 4))
	require.Equal(t, int64(math.MaxInt64), h.Min)
	require.Equal(t, "", h.String())

	for _, v := range []int64{1, 3, 3, 9, 100} {
		h.Update(v)
	}
	require.Equal(t, int64(5), h.Count)
	require.Equal(t, int64(1), h.Min)
	require.Equal(t, int64(100), h.Max)
	require.Equal(t, int64(116), h.Sum)
	require.Equal(t, []int64{1, 2, 0, 1, 1}, h.CountPerBucket)
	require.InDelta(t, 23.2, h.Mean(), 1e-9)
	require.Contains(t, h.String(), "[16, infinity) 1")
}

func TestHistogramCopy(t *testing.T) {
	h := NewHistogramData(HistogramBounds(1, 2))
	h.Update(1)
	c := h.Copy()
	h.Update(10)
	require.Equal(t, int64(1), c.Count)
	require.Equal(t, int64(2), h.Count)

	var nilHist *HistogramData
	require.Nil(t, nilHist.Copy())
	require.Equal(t, 0.0, nilHist.Mean())
}
