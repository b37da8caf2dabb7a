/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache

import (
	"log/slog"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrNilMatchPolicy is returned when a cache is built without a match policy.
	ErrNilMatchPolicy = errors.New("match policy must not be nil")
	// ErrNilAgingPolicy is returned when a cache is built without an aging policy.
	ErrNilAgingPolicy = errors.New("aging policy must not be nil")
	// ErrUnregisteredPolicy is returned when a policy type has no creator.
	ErrUnregisteredPolicy = errors.New("policy type is not registered")
)

// Cache ties everything together. The three main components are:
//
//  1. The State: entries, logical clock and item id allocation.
//  2. The MatchPolicy: finds the entry for a descriptor.
//  3. The AgingPolicy: gates adds and picks the entries to evict.
//
// A typical caller looks a descriptor up with FindCache, compiles on a miss,
// registers the result with AddCache and stores the artifact under the
// returned id. DoAging is called periodically to evict stale entries; the
// caller drops the artifacts of the returned ids.
//
// FindCache followed by AddCache is not atomic. Callers that need a single
// find-or-add must serialize it themselves.
type Cache struct {
	state  *State
	match  MatchPolicy
	aging  AgingPolicy
	logger *slog.Logger
	// Metrics contains a running log of important statistics like hits and
	// misses. It is nil unless metrics were enabled.
	Metrics *Metrics
}

// NewCache returns a cache using the given policies.
func NewCache(mp MatchPolicy, ap AgingPolicy, opts ...Option) (*Cache, error) {
	o := buildOptions(opts)
	if isNilPolicy(mp) {
		o.logger.Error("match policy must not be nil")
		return nil, ErrNilMatchPolicy
	}
	if isNilPolicy(ap) {
		o.logger.Error("aging policy must not be nil")
		return nil, ErrNilAgingPolicy
	}
	c, err := newCache(mp, ap, o)
	if err != nil {
		return nil, err
	}
	c.logger.Info("created cache policy")
	return c, nil
}

// NewCacheFromTypes resolves both policies through the registry, sets depth
// on the aging policy and returns a cache using them.
func NewCacheFromTypes(mt MatchPolicyType, at AgingPolicyType, depth uint64,
	opts ...Option) (*Cache, error) {
	o := buildOptions(opts)
	mp := o.registry.MatchPolicy(mt)
	if isNilPolicy(mp) {
		return nil, errors.Wrapf(ErrUnregisteredPolicy, "match policy %s", mt)
	}
	ap := o.registry.AgingPolicy(at)
	if isNilPolicy(ap) {
		return nil, errors.Wrapf(ErrUnregisteredPolicy, "aging policy %s", at)
	}
	ap.SetCachedAgingDepth(depth)
	c, err := newCache(mp, ap, o)
	if err != nil {
		return nil, err
	}
	c.logger.Info("created cache policy",
		"match", mt.String(), "aging", at.String(), "depth", depth)
	return c, nil
}

// isNilPolicy reports whether p is nil or a nil pointer wrapped in an
// interface.
func isNilPolicy(p any) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func newCache(mp MatchPolicy, ap AgingPolicy, o *options) (*Cache, error) {
	if lruk, ok := ap.(*LRUK); ok {
		if o.kTimes > 0 {
			lruk.SetKTimes(o.kTimes)
		}
		if o.historyLimit > 0 {
			if err := lruk.SetHistoryLimit(o.historyLimit); err != nil {
				return nil, errors.Wrapf(err, "while setting history limit %d", o.historyLimit)
			}
		}
	}
	if ls, ok := mp.(LoggerSetter); ok {
		ls.SetLogger(o.logger)
	}
	if ls, ok := ap.(LoggerSetter); ok {
		ls.SetLogger(o.logger)
	}
	c := &Cache{
		state:  NewState(o.logger),
		match:  mp,
		aging:  ap,
		logger: o.logger,
	}
	if o.metrics {
		c.Metrics = newMetrics()
	}
	return c, nil
}

// AddCache registers desc and returns its item id. It returns InvalidItemID
// if the aging policy is not ready to admit desc, in which case the cache is
// left untouched, or if no item id could be allocated.
func (c *Cache) AddCache(desc Descriptor) ItemID {
	hash := desc.Hash()
	if !c.aging.IsReadyToAddCache(hash, desc) {
		c.logger.Debug("add cache condition not met", "hash", uint64(hash))
		c.Metrics.add(rejectAdds, uint64(hash), 1)
		return InvalidItemID
	}
	id, existed := c.state.addCache(hash, desc)
	switch {
	case id == InvalidItemID:
		c.logger.Error("add cache failed, no item id available", "hash", uint64(hash))
		c.Metrics.add(failAdds, uint64(hash), 1)
	case existed:
		c.Metrics.add(keyRefresh, uint64(hash), 1)
	default:
		c.Metrics.add(keyAdd, uint64(hash), 1)
	}
	return id
}

// FindCache returns the item id matching desc, or InvalidItemID. It does not
// refresh the entry.
func (c *Cache) FindCache(desc Descriptor) ItemID {
	if c.match == nil {
		c.logger.Warn("match policy is nil")
		return InvalidItemID
	}
	id := c.match.GetCacheItemID(c.state, desc)
	if id == InvalidItemID {
		c.Metrics.add(miss, uint64(desc.Hash()), 1)
	} else {
		c.Metrics.add(hit, uint64(id), 1)
	}
	return id
}

// DeleteCache removes every entry for which shouldDelete returns true and
// returns their ids.
func (c *Cache) DeleteCache(shouldDelete func(CacheInfo) bool) []ItemID {
	removed := c.state.delCache(shouldDelete)
	c.Metrics.trackRemoval(keyDelete, removed, c.state.CurTimerCount())
	c.logger.Info("deleted cache infos", "count", len(removed))
	return itemIDs(removed)
}

// DeleteCacheByIDs removes the entries with the given ids and returns the ids
// that were actually present.
func (c *Cache) DeleteCacheByIDs(ids []ItemID) []ItemID {
	removed := c.state.delCache(idSet(ids))
	c.Metrics.trackRemoval(keyDelete, removed, c.state.CurTimerCount())
	c.logger.Info("deleted cache infos", "count", len(removed))
	return itemIDs(removed)
}

// DoAging asks the aging policy for victims, deletes them and returns their
// ids.
func (c *Cache) DoAging() []ItemID {
	victims := c.aging.DoAging(c.state)
	if len(victims) == 0 {
		return victims
	}
	removed := c.state.delCache(idSet(victims))
	c.Metrics.trackRemoval(keyEvict, removed, c.state.CurTimerCount())
	c.logger.Debug("aged cache infos", "victims", len(victims), "removed", len(removed))
	return victims
}

// State returns the state backing the cache.
func (c *Cache) State() *State {
	return c.state
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.state.CacheInfoNum()
}
