/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func queueHashes(q *infoQueue) []HashKey {
	var hashes []HashKey
	for _, b := range q.buckets {
		hashes = append(hashes, b.hash)
	}
	return hashes
}

func TestInfoQueueInsert(t *testing.T) {
	q := newInfoQueue()
	q.insert(5, newCacheInfo(1, 0, newDesc("a", 5)))
	q.emplaceBack(5, newCacheInfo(2, 1, newDesc("b", 5)))
	q.emplaceBack(3, newCacheInfo(3, 2, newDesc("c", 3)))

	require.Equal(t, 3, q.num)
	require.Equal(t, []HashKey{5, 3}, queueHashes(q))
	require.Len(t, q.get(5).infos, 2)
	require.Nil(t, q.get(4))
}

func TestInfoQueueErase(t *testing.T) {
	q := newInfoQueue()
	for i, h := range []HashKey{1, 2, 1, 3, 2} {
		q.emplaceBack(h, newCacheInfo(uint64(i+1), ItemID(i), newDesc(string(rune('a'+i)), h)))
	}
	require.Equal(t, 5, q.num)

	removed := q.erase(func(info CacheInfo) bool {
		return info.ItemID() == 1 || info.ItemID() == 4 || info.ItemID() == 0
	})
	// Bucket order, then insertion order.
	require.Equal(t, []ItemID{0, 1, 4}, itemIDs(removed))
	require.Equal(t, 2, q.num)

	// Bucket 2 became empty and is gone; the others keep their order.
	require.Equal(t, []HashKey{1, 3}, queueHashes(q))
	require.Nil(t, q.get(2))
	require.Equal(t, ItemID(2), q.get(1).infos[0].itemID)
	require.Equal(t, ItemID(3), q.get(3).infos[0].itemID)

	// Index stays consistent for later appends.
	q.emplaceBack(3, newCacheInfo(9, 9, newDesc("z", 3)))
	require.Len(t, q.get(3).infos, 2)
	require.Equal(t, 3, q.num)
}

func TestInfoQueueRangeStops(t *testing.T) {
	q := newInfoQueue()
	for i := 0; i < 4; i++ {
		q.emplaceBack(HashKey(i), newCacheInfo(uint64(i), ItemID(i), newDesc("x", HashKey(i))))
	}
	n := 0
	q.rangeInfos(func(HashKey, CacheInfo) bool {
		n++
		return n < 2
	})
	require.Equal(t, 2, n)
}
