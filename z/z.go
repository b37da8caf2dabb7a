/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package z

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// hashSeed is the initial value used when folding several values into one
// hash with HashCombine.
const hashSeed uint64 = 0x9e3779b97f4a7c15

// KeyToHash returns a stable 64-bit hash of the given key. Integer keys hash to
// themselves, strings and byte slices go through xxhash so that the result does
// not depend on the process (unlike maphash).
func KeyToHash(key interface{}) uint64 {
	if key == nil {
		return 0
	}
	switch k := key.(type) {
	case uint64:
		return k
	case byte:
		return uint64(k)
	case int:
		return uint64(k)
	case int32:
		return uint64(k)
	case uint32:
		return uint64(k)
	case int64:
		return uint64(k)
	case string:
		return xxhash.Sum64String(k)
	case []byte:
		return xxhash.Sum64(k)
	default:
		panic("Key type not supported")
	}
}

// MultiHash returns the seed every combined hash starts from.
func MultiHash() uint64 {
	return hashSeed
}

// HashCombine mixes value into seed. The mixing is order dependent, so
// HashCombine(HashCombine(s, a), b) != HashCombine(HashCombine(s, b), a) in
// general.
func HashCombine(seed, value uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	binary.LittleEndian.PutUint64(buf[8:], value)
	return xxhash.Sum64(buf[:])
}

// HashInts folds a list of signed integers (typically tensor dims) into a
// single hash.
func HashInts(seed uint64, vals []int64) uint64 {
	for _, v := range vals {
		seed = HashCombine(seed, uint64(v))
	}
	return seed
}
