/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache

// CacheInfo is a single cache entry. Policies receive copies of it, so
// nothing outside of State can change an entry.
type CacheInfo struct {
	itemID     ItemID
	timerCount uint64
	desc       Descriptor
}

func newCacheInfo(timerCount uint64, itemID ItemID, desc Descriptor) *CacheInfo {
	return &CacheInfo{
		itemID:     itemID,
		timerCount: timerCount,
		desc:       desc,
	}
}

// ItemID returns the id of the entry.
func (i CacheInfo) ItemID() ItemID {
	return i.itemID
}

// TimerCount returns the logical time the entry was added or last hit.
func (i CacheInfo) TimerCount() uint64 {
	return i.timerCount
}

// Desc returns the descriptor that produced the entry.
func (i CacheInfo) Desc() Descriptor {
	return i.desc
}

func (i *CacheInfo) refreshTimerCount(timerCount uint64) {
	i.timerCount = timerCount
}
