/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"

	"github.com/dgraph-io/compcache/z"
)

type metricType int

const (
	// The following 2 keep track of FindCache hits and misses.
	hit = iota
	miss
	// The following 2 keep track of AddCache calls that stored a new entry or
	// refreshed an existing one.
	keyAdd
	keyRefresh
	// The following 2 keep track of AddCache calls rejected by the aging
	// policy or failed for lack of item ids.
	rejectAdds
	failAdds
	// The following 2 keep track of entries removed by aging and by explicit
	// deletes.
	keyEvict
	keyDelete
	// This should be the final enum. Other enums should be set before this.
	doNotUse
)

func stringFor(t metricType) string {
	switch t {
	case hit:
		return "hit"
	case miss:
		return "miss"
	case keyAdd:
		return "keys-added"
	case keyRefresh:
		return "keys-refreshed"
	case rejectAdds:
		return "adds-rejected" // by aging policy.
	case failAdds:
		return "adds-failed"
	case keyEvict:
		return "keys-evicted"
	case keyDelete:
		return "keys-deleted"
	default:
		return "unidentified"
	}
}

// Metrics is a snapshot of performance statistics for the lifetime of a cache
// instance. A nil *Metrics is valid and records nothing.
type Metrics struct {
	all [doNotUse][]*uint64

	mu   sync.RWMutex
	life *z.HistogramData // Tracks how many ticks an entry lived.
}

func newMetrics() *Metrics {
	s := &Metrics{
		life: z.NewHistogramData(z.HistogramBounds(1, 16)),
	}
	for i := 0; i < doNotUse; i++ {
		s.all[i] = make([]*uint64, 256)
		slice := s.all[i]
		for j := range slice {
			slice[j] = new(uint64)
		}
	}
	return s
}

func (p *Metrics) add(t metricType, hash, delta uint64) {
	if p == nil {
		return
	}
	valp := p.all[t]
	// Avoid false sharing by padding at least 64 bytes of space between two
	// atomic counters which would be incremented.
	idx := (hash % 25) * 10
	atomic.AddUint64(valp[idx], delta)
}

func (p *Metrics) get(t metricType) uint64 {
	if p == nil {
		return 0
	}
	valp := p.all[t]
	var total uint64
	for i := range valp {
		total += atomic.LoadUint64(valp[i])
	}
	return total
}

// Hits is the number of FindCache calls that found an entry.
func (p *Metrics) Hits() uint64 {
	return p.get(hit)
}

// Misses is the number of FindCache calls that found nothing.
func (p *Metrics) Misses() uint64 {
	return p.get(miss)
}

// KeysAdded is the number of AddCache calls that stored a new entry.
func (p *Metrics) KeysAdded() uint64 {
	return p.get(keyAdd)
}

// KeysRefreshed is the number of AddCache calls that found an equal entry and
// refreshed its timer.
func (p *Metrics) KeysRefreshed() uint64 {
	return p.get(keyRefresh)
}

// AddsRejected is the number of AddCache calls the aging policy refused.
func (p *Metrics) AddsRejected() uint64 {
	return p.get(rejectAdds)
}

// AddsFailed is the number of AddCache calls that could not get an item id.
func (p *Metrics) AddsFailed() uint64 {
	return p.get(failAdds)
}

// KeysEvicted is the number of entries removed by DoAging.
func (p *Metrics) KeysEvicted() uint64 {
	return p.get(keyEvict)
}

// KeysDeleted is the number of entries removed by DeleteCache.
func (p *Metrics) KeysDeleted() uint64 {
	return p.get(keyDelete)
}

// Ratio is the number of Hits over all lookups (Hits + Misses).
func (p *Metrics) Ratio() float64 {
	if p == nil {
		return 0.0
	}
	hits, misses := p.get(hit), p.get(miss)
	if hits == 0 && misses == 0 {
		return 0.0
	}
	return float64(hits) / float64(hits+misses)
}

// trackRemoval records the life of entries leaving the cache at logical time
// now.
func (p *Metrics) trackRemoval(t metricType, infos []CacheInfo, now uint64) {
	if p == nil || len(infos) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, info := range infos {
		p.add(t, uint64(info.ItemID()), 1)
		if now >= info.TimerCount() {
			p.life.Update(int64(now - info.TimerCount()))
		}
	}
}

// LifeExpectancyTicks returns a histogram of how many logical ticks removed
// entries had gone untouched.
func (p *Metrics) LifeExpectancyTicks() *z.HistogramData {
	if p == nil {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.life.Copy()
}

// Clear resets all the metrics.
func (p *Metrics) Clear() {
	if p == nil {
		return
	}
	for i := 0; i < doNotUse; i++ {
		for j := range p.all[i] {
			atomic.StoreUint64(p.all[i][j], 0)
		}
	}
	p.mu.Lock()
	p.life = z.NewHistogramData(z.HistogramBounds(1, 16))
	p.mu.Unlock()
}

// String returns a string representation of the metrics.
func (p *Metrics) String() string {
	if p == nil {
		return ""
	}
	var buf bytes.Buffer
	for i := 0; i < doNotUse; i++ {
		t := metricType(i)
		fmt.Fprintf(&buf, "%s: %s ", stringFor(t), humanize.Comma(int64(p.get(t))))
	}
	fmt.Fprintf(&buf, "finds-total: %s ", humanize.Comma(int64(p.get(hit)+p.get(miss))))
	fmt.Fprintf(&buf, "hit-ratio: %.2f", p.Ratio())
	return buf.String()
}
