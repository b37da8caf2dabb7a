/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package compcache is a policy-driven compile cache. It maps compilation and
// tiling requests, identified by a caller-supplied Descriptor, to item ids so
// that an expensive compile can be skipped when an equal request was seen
// before. The caller keeps the compiled artifacts keyed by the returned ids;
// this package only manages ids, descriptor matching and aging.
package compcache

import "math"

// HashKey is the hash of a Descriptor.
type HashKey uint64

// ItemID identifies a cache slot. Ids are recycled after their entry is
// deleted.
type ItemID uint64

// InvalidItemID is returned when there is no such cache item. The allocator
// never hands it out.
const InvalidItemID ItemID = math.MaxUint64

// Descriptor identifies a compilation request. Implementations must be
// immutable once handed to the cache, and two descriptors for which IsEqual
// holds must return the same Hash. Different descriptors may share a hash.
type Descriptor interface {
	// Hash returns a hash over the semantic content of the request.
	Hash() HashKey
	// IsEqual reports full semantic equality with other.
	IsEqual(other Descriptor) bool
}
