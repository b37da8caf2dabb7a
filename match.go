/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache

import "log/slog"

// MatchPolicyType names a registered MatchPolicy implementation.
type MatchPolicyType int

const (
	// MatchExact only matches descriptors that are semantically equal.
	MatchExact MatchPolicyType = iota
)

func (t MatchPolicyType) String() string {
	switch t {
	case MatchExact:
		return "exact"
	default:
		return "unidentified"
	}
}

// MatchPolicy finds the cached item for a descriptor.
type MatchPolicy interface {
	// GetCacheItemID returns the id of the entry matching desc, or
	// InvalidItemID. It must not modify the state.
	GetCacheItemID(view StateView, desc Descriptor) ItemID
}

// ExactMatch returns the entry whose descriptor IsEqual the query.
type ExactMatch struct {
	logger *slog.Logger
}

// NewExactMatch returns an ExactMatch policy.
func NewExactMatch() *ExactMatch {
	return &ExactMatch{logger: slog.Default()}
}

func (m *ExactMatch) GetCacheItemID(view StateView, desc Descriptor) ItemID {
	hash := desc.Hash()
	infos := view.Bucket(hash)
	if len(infos) == 0 {
		m.logger.Debug("hash does not exist", "hash", uint64(hash))
		return InvalidItemID
	}
	for _, info := range infos {
		if desc.IsEqual(info.Desc()) {
			return info.ItemID()
		}
	}
	m.logger.Debug("hash collision occurred, the same cached descriptor was not found",
		"hash", uint64(hash))
	return InvalidItemID
}

// SetLogger implements LoggerSetter.
func (m *ExactMatch) SetLogger(logger *slog.Logger) {
	if m != nil && logger != nil {
		m.logger = logger
	}
}
