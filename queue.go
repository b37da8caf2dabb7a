/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache

// bucket holds every entry sharing one hash, in insertion order.
type bucket struct {
	hash  HashKey
	infos []*CacheInfo
}

// infoQueue maps a hash to its bucket. Buckets live in a slice ordered by
// first insertion so that iteration is deterministic, and index points from a
// hash into that slice. num is the number of entries across all buckets.
//
// infoQueue is not safe for concurrent use; State serializes access to it.
type infoQueue struct {
	buckets []*bucket
	index   map[HashKey]int
	num     int
}

func newInfoQueue() *infoQueue {
	return &infoQueue{
		index: make(map[HashKey]int),
	}
}

func (q *infoQueue) get(hash HashKey) *bucket {
	idx, ok := q.index[hash]
	if !ok {
		return nil
	}
	return q.buckets[idx]
}

// insert creates the bucket for hash with a single entry. The bucket must not
// exist yet.
func (q *infoQueue) insert(hash HashKey, info *CacheInfo) {
	q.index[hash] = len(q.buckets)
	q.buckets = append(q.buckets, &bucket{hash: hash, infos: []*CacheInfo{info}})
	q.num++
}

// emplaceBack appends info to the bucket for hash, creating it if needed.
func (q *infoQueue) emplaceBack(hash HashKey, info *CacheInfo) {
	b := q.get(hash)
	if b == nil {
		q.insert(hash, info)
		return
	}
	b.infos = append(b.infos, info)
	q.num++
}

// erase removes every entry for which shouldDelete returns true and returns
// the removed entries, in bucket order then insertion order. Buckets left
// empty are dropped without disturbing the order of the others.
func (q *infoQueue) erase(shouldDelete func(CacheInfo) bool) []CacheInfo {
	var removed []CacheInfo
	kept := q.buckets[:0]
	for _, b := range q.buckets {
		infos := b.infos[:0]
		for _, info := range b.infos {
			if shouldDelete(*info) {
				removed = append(removed, *info)
				q.num--
				continue
			}
			infos = append(infos, info)
		}
		// Let the removed entries (and their descriptors) be collected.
		for i := len(infos); i < len(b.infos); i++ {
			b.infos[i] = nil
		}
		b.infos = infos
		if len(b.infos) == 0 {
			delete(q.index, b.hash)
			continue
		}
		q.index[b.hash] = len(kept)
		kept = append(kept, b)
	}
	for i := len(kept); i < len(q.buckets); i++ {
		q.buckets[i] = nil
	}
	q.buckets = kept
	return removed
}

// rangeInfos calls fn for every entry until fn returns false.
func (q *infoQueue) rangeInfos(fn func(HashKey, CacheInfo) bool) {
	for _, b := range q.buckets {
		for _, info := range b.infos {
			if !fn(b.hash, *info) {
				return
			}
		}
	}
}
