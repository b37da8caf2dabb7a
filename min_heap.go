/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache

// minHeap is a binary min heap ordered by less.
type minHeap[T any] struct {
	items []T
	less  func(a, b T) bool
}

func newMinHeap[T any](less func(a, b T) bool, capacity int) *minHeap[T] {
	return &minHeap[T]{
		items: make([]T, 0, capacity),
		less:  less,
	}
}

// Insert adds a new element to the heap.
func (h *minHeap[T]) Insert(item T) {
	h.items = append(h.items, item)
	h.heapifyUp(len(h.items) - 1)
}

// Extract removes and returns the minimum element from the heap.
func (h *minHeap[T]) Extract() (T, bool) {
	var zero T
	if len(h.items) == 0 {
		return zero, false
	}

	min := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items[last] = zero
	h.items = h.items[:last]

	if len(h.items) > 0 {
		h.heapifyDown(0)
	}
	return min, true
}

// Peek returns the minimum element without removing it.
func (h *minHeap[T]) Peek() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.items[0], true
}

// Size returns the number of elements in the heap.
func (h *minHeap[T]) Size() int {
	return len(h.items)
}

func (h *minHeap[T]) heapifyUp(index int) {
	for index > 0 {
		parent := (index - 1) / 2
		if !h.less(h.items[index], h.items[parent]) {
			break
		}
		h.items[parent], h.items[index] = h.items[index], h.items[parent]
		index = parent
	}
}

func (h *minHeap[T]) heapifyDown(index int) {
	for {
		smallest := index
		left := 2*index + 1
		right := 2*index + 2

		if left < len(h.items) && h.less(h.items[left], h.items[smallest]) {
			smallest = left
		}
		if right < len(h.items) && h.less(h.items[right], h.items[smallest]) {
			smallest = right
		}
		if smallest == index {
			break
		}
		h.items[index], h.items[smallest] = h.items[smallest], h.items[index]
		index = smallest
	}
}

// olderThan orders entries by logical time, then by id.
func olderThan(a, b CacheInfo) bool {
	if a.timerCount != b.timerCount {
		return a.timerCount < b.timerCount
	}
	return a.itemID < b.itemID
}
