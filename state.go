/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache

import (
	"log/slog"
	"sync"

	"github.com/gammazero/deque"
)

// StateView is the read-only side of State that match and aging policies work
// against.
type StateView interface {
	// Bucket returns copies of the entries stored under hash, in insertion
	// order. It returns nil if there are none.
	Bucket(hash HashKey) []CacheInfo
	// Range calls fn for every entry until fn returns false. fn must not call
	// back into the State.
	Range(fn func(hash HashKey, info CacheInfo) bool)
	// CacheInfoNum returns the number of live entries.
	CacheInfoNum() int
	// CurTimerCount returns the current logical time.
	CurTimerCount() uint64
}

// State owns the cache entries, the logical clock and the item id allocator.
//
// Two locks are used: mu guards the entries and the clock, idMu guards id
// allocation. When both are needed mu is always taken first.
type State struct {
	mu       sync.RWMutex
	queue    *infoQueue
	curTimer uint64

	idMu    sync.Mutex
	counter ItemID
	// free holds retired ids, reused in FIFO order before counter grows.
	free deque.Deque[ItemID]

	logger *slog.Logger
}

var _ StateView = (*State)(nil)

// NewState returns an empty State. A nil logger means slog.Default().
func NewState(logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{
		queue:  newInfoQueue(),
		logger: logger,
	}
}

// NextItemID returns a retired id if one is available, otherwise a new one.
// It returns InvalidItemID once every id has been handed out.
func (s *State) NextItemID() ItemID {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	if s.free.Len() > 0 {
		return s.free.PopFront()
	}
	if s.counter == InvalidItemID {
		return InvalidItemID
	}
	id := s.counter
	s.counter++
	return id
}

// RecoverItemIDs makes ids available for reuse. It must only be called with ids
// that are no longer live.
func (s *State) RecoverItemIDs(ids []ItemID) {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	for _, id := range ids {
		s.free.PushBack(id)
	}
}

// NextTimerCount advances the logical clock and returns the new time.
func (s *State) NextTimerCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextTimerCount()
}

func (s *State) nextTimerCount() uint64 {
	s.curTimer++
	return s.curTimer
}

// AddCache stores desc under hash and returns its item id. If an equal
// descriptor is already stored, its timer is refreshed and its id returned
// without allocating a new one. Every call advances the clock, including one
// that fails for lack of item ids.
func (s *State) AddCache(hash HashKey, desc Descriptor) ItemID {
	id, _ := s.addCache(hash, desc)
	return id
}

// addCache is AddCache that also reports whether desc was already stored.
func (s *State) addCache(hash HashKey, desc Descriptor) (ItemID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The clock ticks even when no id can be allocated.
	timer := s.nextTimerCount()
	b := s.queue.get(hash)
	if b == nil {
		id := s.NextItemID()
		if id == InvalidItemID {
			return InvalidItemID, false
		}
		s.queue.insert(hash, newCacheInfo(timer, id, desc))
		return id, false
	}
	for _, info := range b.infos {
		if desc.IsEqual(info.desc) {
			info.refreshTimerCount(timer)
			s.logger.Debug("same descriptor has already been added",
				"hash", uint64(hash), "item", uint64(info.itemID))
			return info.itemID, true
		}
	}
	// Hash collision.
	id := s.NextItemID()
	if id == InvalidItemID {
		return InvalidItemID, false
	}
	s.queue.emplaceBack(hash, newCacheInfo(timer, id, desc))
	return id, false
}

// DelCache removes every entry for which shouldDelete returns true, recycles
// their ids and returns them.
func (s *State) DelCache(shouldDelete func(CacheInfo) bool) []ItemID {
	return itemIDs(s.delCache(shouldDelete))
}

// DelCacheByIDs removes the entries with the given ids. Ids that are not live
// are ignored, so the result only lists the ids that were actually removed.
func (s *State) DelCacheByIDs(ids []ItemID) []ItemID {
	if len(ids) == 0 {
		return nil
	}
	return s.DelCache(idSet(ids))
}

func (s *State) delCache(shouldDelete func(CacheInfo) bool) []CacheInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.queue.erase(shouldDelete)
	if len(removed) == 0 {
		return nil
	}
	s.RecoverItemIDs(itemIDs(removed))
	return removed
}

// idSet returns a predicate matching the entries whose id is in ids.
func idSet(ids []ItemID) func(CacheInfo) bool {
	set := make(map[ItemID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(info CacheInfo) bool {
		_, ok := set[info.itemID]
		return ok
	}
}

func itemIDs(infos []CacheInfo) []ItemID {
	if len(infos) == 0 {
		return nil
	}
	ids := make([]ItemID, len(infos))
	for i, info := range infos {
		ids[i] = info.itemID
	}
	return ids
}

// Bucket implements StateView.
func (s *State) Bucket(hash HashKey) []CacheInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.queue.get(hash)
	if b == nil || len(b.infos) == 0 {
		return nil
	}
	out := make([]CacheInfo, len(b.infos))
	for i, info := range b.infos {
		out[i] = *info
	}
	return out
}

// Range implements StateView.
func (s *State) Range(fn func(hash HashKey, info CacheInfo) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queue.rangeInfos(fn)
}

// CacheInfoNum implements StateView.
func (s *State) CacheInfoNum() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.num
}

// CurTimerCount implements StateView.
func (s *State) CurTimerCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curTimer
}
