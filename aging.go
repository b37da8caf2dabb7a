/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache

import "log/slog"

// AgingPolicyType names a registered AgingPolicy implementation.
type AgingPolicyType int

const (
	// AgingLRU evicts every entry not touched within a window of logical time.
	AgingLRU AgingPolicyType = iota
	// AgingLRUK admits a descriptor only after it was seen K times and evicts
	// the single oldest entry once the cache holds more than its depth.
	AgingLRUK
)

func (t AgingPolicyType) String() string {
	switch t {
	case AgingLRU:
		return "lru"
	case AgingLRUK:
		return "lru-k"
	default:
		return "unidentified"
	}
}

// defaultAgingDepth is the depth used by the aging policies until
// SetCachedAgingDepth is called.
const defaultAgingDepth = 20

// AgingPolicy decides which entries leave the cache.
type AgingPolicy interface {
	// DoAging returns the ids of the entries to evict. The caller deletes them.
	DoAging(view StateView) []ItemID
	// IsReadyToAddCache is consulted before every add. Returning false
	// rejects the add without touching the state.
	IsReadyToAddCache(hash HashKey, desc Descriptor) bool
	// SetCachedAgingDepth sets the policy specific capacity parameter.
	SetCachedAgingDepth(depth uint64)
}

// LoggerSetter is implemented by policies that log. Cache hands them its
// logger on construction.
type LoggerSetter interface {
	SetLogger(logger *slog.Logger)
}
