/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache

import (
	"log/slog"
	"sync/atomic"
)

// LRU evicts, in a single pass, every entry that was not added or hit within
// the last deleteInterval ticks of the logical clock.
type LRU struct {
	deleteInterval atomic.Uint64
	logger         *slog.Logger
}

var _ AgingPolicy = (*LRU)(nil)

// NewLRU returns an LRU policy with the given window width.
func NewLRU(deleteInterval uint64) *LRU {
	p := &LRU{logger: slog.Default()}
	p.deleteInterval.Store(deleteInterval)
	return p
}

// SetCachedAgingDepth sets the window width.
func (p *LRU) SetCachedAgingDepth(depth uint64) {
	p.deleteInterval.Store(depth)
}

// IsReadyToAddCache always admits.
func (p *LRU) IsReadyToAddCache(HashKey, Descriptor) bool {
	return true
}

// DoAging returns the ids of all entries whose timer count is below
// CurTimerCount - deleteInterval, oldest first. Nothing is evicted until the
// clock has moved past the window.
func (p *LRU) DoAging(view StateView) []ItemID {
	interval := p.deleteInterval.Load()
	cur := view.CurTimerCount()
	if cur <= interval {
		p.logger.Warn("lru aging skipped, delete interval not yet elapsed",
			"interval", interval, "cur", cur)
		return nil
	}
	lowerBound := cur - interval

	victims := newMinHeap(olderThan, 0)
	view.Range(func(_ HashKey, info CacheInfo) bool {
		if info.TimerCount() < lowerBound {
			victims.Insert(info)
		}
		return true
	})
	if victims.Size() == 0 {
		return nil
	}
	ids := make([]ItemID, 0, victims.Size())
	for victims.Size() > 0 {
		info, _ := victims.Extract()
		ids = append(ids, info.ItemID())
	}
	return ids
}

// SetLogger implements LoggerSetter.
func (p *LRU) SetLogger(logger *slog.Logger) {
	if p != nil && logger != nil {
		p.logger = logger
	}
}
