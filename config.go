/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache

import (
	"log/slog"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/dgraph-io/compcache/z"
)

// DefaultConfigFlags lists every option ParseConfig accepts, with its default.
const DefaultConfigFlags = `match=exact; aging=lru; depth=20; k-times=2; ` +
	`history-limit=0; metrics=false;`

// Config describes a cache. The zero value is an exact-match, LRU cache
// whose window is zero ticks wide.
type Config struct {
	// MatchPolicy selects the match policy from the registry.
	MatchPolicy MatchPolicyType
	// AgingPolicy selects the aging policy from the registry.
	AgingPolicy AgingPolicyType
	// AgingDepth is the window width for LRU and the capacity for LRU-K.
	AgingDepth uint64
	// KTimes is how many appearances LRU-K requires before admitting a
	// descriptor. Zero means 2.
	KTimes uint64
	// HistoryLimit bounds the LRU-K appearance history. Zero is unbounded.
	HistoryLimit int
	// Metrics is whether cache statistics should be kept.
	Metrics bool
	// Logger receives diagnostic output. Nil means slog.Default().
	Logger *slog.Logger
	// Registry resolves the policy types. Nil means DefaultRegistry().
	Registry *Registry
}

// ParseMatchPolicyType returns the match policy type named s.
func ParseMatchPolicyType(s string) (MatchPolicyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact":
		return MatchExact, nil
	default:
		return 0, errors.Errorf("unknown match policy %q", s)
	}
}

// ParseAgingPolicyType returns the aging policy type named s.
func ParseAgingPolicyType(s string) (AgingPolicyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lru":
		return AgingLRU, nil
	case "lru-k", "lruk":
		return AgingLRUK, nil
	default:
		return 0, errors.Errorf("unknown aging policy %q", s)
	}
}

// ParseConfig builds a Config from a super flag string such as
//
//	aging=lru-k; depth=64; k-times=3; metrics=true
//
// Options left out take their value from DefaultConfigFlags. Unknown options
// are rejected.
func ParseConfig(flag string) (*Config, error) {
	sf, err := z.NewSuperFlag(flag)
	if err != nil {
		return nil, err
	}
	if sf, err = sf.MergeAndCheckDefault(DefaultConfigFlags); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if cfg.MatchPolicy, err = ParseMatchPolicyType(sf.GetString("match")); err != nil {
		return nil, err
	}
	if cfg.AgingPolicy, err = ParseAgingPolicyType(sf.GetString("aging")); err != nil {
		return nil, err
	}
	if cfg.AgingDepth, err = sf.GetUint64("depth"); err != nil {
		return nil, err
	}
	if cfg.KTimes, err = sf.GetUint64("k-times"); err != nil {
		return nil, err
	}
	limit, err := sf.GetInt64("history-limit")
	if err != nil {
		return nil, err
	}
	if limit < 0 || limit > math.MaxInt32 {
		return nil, errors.Errorf("history-limit %d out of range", limit)
	}
	cfg.HistoryLimit = int(limit)
	if cfg.Metrics, err = sf.GetBool("metrics"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewCacheFromConfig returns a cache built as described by cfg.
func NewCacheFromConfig(cfg *Config) (*Cache, error) {
	if cfg == nil {
		return nil, errors.New("config must not be nil")
	}
	return NewCacheFromTypes(cfg.MatchPolicy, cfg.AgingPolicy, cfg.AgingDepth,
		WithLogger(cfg.Logger),
		WithMetrics(cfg.Metrics),
		WithRegistry(cfg.Registry),
		WithKTimes(cfg.KTimes),
		WithHistoryLimit(cfg.HistoryLimit),
	)
}
