/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache

import (
	"log/slog"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultKTimes is how many times a descriptor must be seen before LRUK
// admits it.
const defaultKTimes = 2

// appearance counts how often a descriptor was offered to the cache.
type appearance struct {
	desc  Descriptor
	count uint64
}

// appearances holds every descriptor seen under one hash.
type appearances struct {
	list []*appearance
}

// appearanceTable is the history LRUK admits from.
type appearanceTable interface {
	get(hash HashKey) (*appearances, bool)
	add(hash HashKey, a *appearances)
	len() int
}

// mapTable never forgets a descriptor.
type mapTable map[HashKey]*appearances

func (t mapTable) get(hash HashKey) (*appearances, bool) {
	a, ok := t[hash]
	return a, ok
}

func (t mapTable) add(hash HashKey, a *appearances) { t[hash] = a }
func (t mapTable) len() int                         { return len(t) }

// boundedTable forgets the least recently offered hashes once it holds limit
// of them.
type boundedTable struct {
	c *lru.Cache[HashKey, *appearances]
}

func (t boundedTable) get(hash HashKey) (*appearances, bool) {
	return t.c.Get(hash)
}

func (t boundedTable) add(hash HashKey, a *appearances) { t.c.Add(hash, a) }
func (t boundedTable) len() int                         { return t.c.Len() }

// LRUK only admits a descriptor once it has been offered kTimes, and once the
// cache holds more than depth entries it evicts the single entry with the
// oldest timer count per DoAging call.
//
// The appearance history is independent of the cache contents: evicting an
// entry does not reset the count of its descriptor.
type LRUK struct {
	depth  atomic.Uint64
	kTimes uint64
	logger *slog.Logger

	mu      sync.Mutex
	history appearanceTable
}

var _ AgingPolicy = (*LRUK)(nil)

// NewLRUK returns an LRUK policy with the given depth, admitting descriptors
// on their kTimes-th appearance. A kTimes of zero means the default of 2.
func NewLRUK(depth, kTimes uint64) *LRUK {
	if kTimes == 0 {
		kTimes = defaultKTimes
	}
	p := &LRUK{
		kTimes:  kTimes,
		logger:  slog.Default(),
		history: make(mapTable),
	}
	p.depth.Store(depth)
	return p
}

// SetCachedAgingDepth sets the number of entries kept before aging evicts.
func (p *LRUK) SetCachedAgingDepth(depth uint64) {
	p.depth.Store(depth)
}

// SetKTimes sets how many appearances a descriptor needs to be admitted.
func (p *LRUK) SetKTimes(k uint64) {
	if p == nil {
		return
	}
	if k == 0 {
		k = defaultKTimes
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kTimes = k
}

// SetHistoryLimit bounds the appearance history to limit distinct hashes,
// dropping the least recently offered ones beyond that. Zero keeps every
// hash forever. Existing history is discarded.
func (p *LRUK) SetHistoryLimit(limit int) error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if limit <= 0 {
		p.history = make(mapTable)
		return nil
	}
	c, err := lru.New[HashKey, *appearances](limit)
	if err != nil {
		return err
	}
	p.history = boundedTable{c: c}
	return nil
}

// IsReadyToAddCache records an appearance of desc and reports whether desc
// has now been seen at least kTimes.
func (p *LRUK) IsReadyToAddCache(hash HashKey, desc Descriptor) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.history.get(hash)
	if ok {
		for _, seen := range a.list {
			if desc.IsEqual(seen.desc) {
				seen.count++
				return seen.count >= p.kTimes
			}
		}
	} else {
		a = &appearances{}
		p.history.add(hash, a)
	}
	a.list = append(a.list, &appearance{desc: desc, count: 1})
	return p.kTimes <= 1
}

// DoAging returns the id of the oldest entry if the cache holds more than
// depth entries. Ties on timer count go to the lowest id.
func (p *LRUK) DoAging(view StateView) []ItemID {
	depth := p.depth.Load()
	cur := view.CacheInfoNum()
	p.logger.Debug("lru-k aging", "depth", cur, "capacity", depth)
	if uint64(cur) <= depth {
		return nil
	}
	var (
		victim CacheInfo
		found  bool
	)
	view.Range(func(_ HashKey, info CacheInfo) bool {
		if !found || olderThan(info, victim) {
			victim, found = info, true
		}
		return true
	})
	if !found {
		return nil
	}
	return []ItemID{victim.ItemID()}
}

// SetLogger implements LoggerSetter.
func (p *LRUK) SetLogger(logger *slog.Logger) {
	if p != nil && logger != nil {
		p.logger = logger
	}
}

func (p *LRUK) historyLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.history.len()
}
