/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package z

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// HistogramBounds creates bounds for an histogram. The bounds are powers of two
// of the form [2^min_exponent, ..., 2^max_exponent].
func HistogramBounds(minExponent, maxExponent uint32) []float64 {
	var bounds []float64
	for i := minExponent; i <= maxExponent; i++ {
		bounds = append(bounds, float64(int(1)<<i))
	}
	return bounds
}

// HistogramData stores the information needed to represent a distribution of
// values as a histogram.
type HistogramData struct {
	Bounds         []float64
	Count          int64
	CountPerBucket []int64
	Min            int64
	Max            int64
	Sum            int64
}

// NewHistogramData returns a new instance of HistogramData with properly initialized fields.
func NewHistogramData(bounds []float64) *HistogramData {
	return &HistogramData{
		Bounds:         bounds,
		CountPerBucket: make([]int64, len(bounds)+1),
		Max:            0,
		Min:            math.MaxInt64,
	}
}

// Copy returns a deep copy of the histogram.
func (histogram *HistogramData) Copy() *HistogramData {
	if histogram == nil {
		return nil
	}
	return &HistogramData{
		Bounds:         append([]float64{}, histogram.Bounds...),
		CountPerBucket: append([]int64{}, histogram.CountPerBucket...),
		Count:          histogram.Count,
		Min:            histogram.Min,
		Max:            histogram.Max,
		Sum:            histogram.Sum,
	}
}

// Update changes the Min and Max fields if value is less than or greater than the current values.
func (histogram *HistogramData) Update(value int64) {
	if histogram == nil {
		return
	}
	if value > histogram.Max {
		histogram.Max = value
	}
	if value < histogram.Min {
		histogram.Min = value
	}

	histogram.Sum += value
	histogram.Count++

	for index := 0; index <= len(histogram.Bounds); index++ {
		// Allocate value in the last buckets if we reached the end of the Bounds array.
		if index == len(histogram.Bounds) {
			histogram.CountPerBucket[index]++
			break
		}

		if value < int64(histogram.Bounds[index]) {
			histogram.CountPerBucket[index]++
			break
		}
	}
}

// Mean returns the mean of all recorded values, or 0 when nothing was recorded.
func (histogram *HistogramData) Mean() float64 {
	if histogram == nil || histogram.Count == 0 {
		return 0
	}
	return float64(histogram.Sum) / float64(histogram.Count)
}

// String renders the histogram in a human-readable format.
func (histogram *HistogramData) String() string {
	if histogram == nil || histogram.Count == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n -- Histogram: \n")
	fmt.Fprintf(&b, "Min value: %s \n", humanize.Comma(histogram.Min))
	fmt.Fprintf(&b, "Max value: %s \n", humanize.Comma(histogram.Max))
	fmt.Fprintf(&b, "Count: %s \n", humanize.Comma(histogram.Count))
	fmt.Fprintf(&b, "Mean: %.2f \n", histogram.Mean())

	numBounds := len(histogram.Bounds)
	for index, count := range histogram.CountPerBucket {
		if count == 0 {
			continue
		}
		pct := float64(count) * 100 / float64(histogram.Count)

		// The last bucket holds everything from the last bound up to infinity.
		if index == len(histogram.CountPerBucket)-1 {
			lowerBound := int64(histogram.Bounds[numBounds-1])
			fmt.Fprintf(&b, "[%s, %s) %s %.2f%% \n",
				humanize.Comma(lowerBound), "infinity", humanize.Comma(count), pct)
			continue
		}

		upperBound := int64(histogram.Bounds[index])
		lowerBound := int64(0)
		if index > 0 {
			lowerBound = int64(histogram.Bounds[index-1])
		}
		fmt.Fprintf(&b, "[%s, %s) %s %.2f%% \n",
			humanize.Comma(lowerBound), humanize.Comma(upperBound), humanize.Comma(count), pct)
	}
	fmt.Fprintf(&b, " --\n")
	return b.String()
}
