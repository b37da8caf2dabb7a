/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache_test

import (
	"io"
	"log/slog"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dgraph-io/compcache"
	"github.com/dgraph-io/compcache/desc"
	"github.com/dgraph-io/compcache/sim"
)

// request turns a simulated key into a descriptor. Keys map onto a small set
// of batch sizes over a fixed feature map.
func request(k uint64) *desc.Shapes {
	return desc.NewShapes(desc.Shape{int64(k), 256, 256})
}

var quiet = compcache.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func TestStressConcurrentUse(t *testing.T) {
	c, err := compcache.NewCacheFromTypes(compcache.MatchExact, compcache.AgingLRUK, 32,
		compcache.WithKTimes(1), compcache.WithMetrics(true), quiet)
	require.NoError(t, err)

	wg := &sync.WaitGroup{}
	for w := 0; w < runtime.GOMAXPROCS(0); w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			keys := sim.NewUniform(seed, 128)
			for i := 0; i < 2000; i++ {
				k, _ := keys()
				d := request(k)
				if c.FindCache(d) == compcache.InvalidItemID {
					c.AddCache(d)
				}
				if i%8 == 0 {
					c.DoAging()
				}
			}
		}(int64(w))
	}
	wg.Wait()

	seen := make(map[compcache.ItemID]struct{})
	c.State().Range(func(_ compcache.HashKey, info compcache.CacheInfo) bool {
		_, dup := seen[info.ItemID()]
		require.False(t, dup)
		seen[info.ItemID()] = struct{}{}
		return true
	})
	require.Equal(t, c.Len(), len(seen))

	for len(c.DoAging()) > 0 {
	}
	require.LessOrEqual(t, c.Len(), 32)
	t.Logf("metrics: %s", c.Metrics)
}

func TestStressHitRatio(t *testing.T) {
	keys := sim.Collection(sim.NewZipfian(1, 1.0001, 1, 1000), 20000)

	run := func(at compcache.AgingPolicyType) float64 {
		c, err := compcache.NewCacheFromTypes(compcache.MatchExact, at, 100,
			compcache.WithMetrics(true), quiet)
		require.NoError(t, err)
		for _, k := range keys {
			d := request(k)
			if c.FindCache(d) == compcache.InvalidItemID {
				c.AddCache(d)
			}
			c.DoAging()
		}
		return c.Metrics.Ratio()
	}

	lru, lruk := run(compcache.AgingLRU), run(compcache.AgingLRUK)
	t.Logf("lru: %.2f, lru-k: %.2f", lru, lruk)
	require.Greater(t, lru, 0.0)
	require.Greater(t, lruk, 0.0)
}
