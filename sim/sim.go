/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package sim generates streams of request keys for exercising cache
// policies: synthetic Zipfian and uniform streams, and replays of recorded
// traces with one key per line.
package sim

import (
	"bufio"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrDone is returned when a trace has no more keys.
var ErrDone = errors.New("no more values in the simulator")

// Simulator returns the next key of a stream.
type Simulator func() (uint64, error)

// NewZipfian returns keys in [0, n] following a Zipf distribution with
// parameters s > 1 and v >= 1. The stream is fully determined by seed.
func NewZipfian(seed int64, s, v float64, n uint64) Simulator {
	z := rand.NewZipf(rand.New(rand.NewSource(seed)), s, v, n)
	return func() (uint64, error) {
		return z.Uint64(), nil
	}
}

// ErrEmptyRange is returned by a uniform stream over an empty or
// unrepresentable range.
var ErrEmptyRange = errors.New("uniform range must be in [1, MaxInt64]")

// NewUniform returns keys uniformly drawn from [0, n). If n is zero or above
// math.MaxInt64 every call returns ErrEmptyRange.
func NewUniform(seed int64, n uint64) Simulator {
	m := int64(n)
	if m <= 0 {
		return func() (uint64, error) {
			return 0, ErrEmptyRange
		}
	}
	r := rand.New(rand.NewSource(seed))
	return func() (uint64, error) {
		return uint64(r.Int63n(m)), nil
	}
}

// Parser turns one line of a trace into a key.
type Parser func(string, error) (uint64, error)

// NewReader replays a trace read from file.
func NewReader(parser Parser, file io.Reader) Simulator {
	b := bufio.NewReader(file)
	return func() (uint64, error) {
		return parser(b.ReadString('\n'))
	}
}

// ParseLIRS parses traces in the LIRS format: one decimal key per line.
func ParseLIRS(line string, err error) (uint64, error) {
	line = strings.TrimRight(line, "\r\n")
	if line != "" {
		v, perr := strconv.ParseUint(line, 10, 64)
		return v, errors.Wrapf(perr, "while parsing trace line %q", line)
	}
	if err != nil && err != io.EOF {
		return 0, err
	}
	return 0, ErrDone
}

// Collection draws size keys from simulator, stopping early on error.
func Collection(simulator Simulator, size uint64) []uint64 {
	collection := make([]uint64, 0, size)
	for i := uint64(0); i < size; i++ {
		k, err := simulator()
		if err != nil {
			break
		}
		collection = append(collection, k)
	}
	return collection
}
