/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache_test

import (
	"fmt"

	"github.com/dgraph-io/compcache"
	"github.com/dgraph-io/compcache/desc"
)

func ExampleCache() {
	cfg, err := compcache.ParseConfig("aging=lru; depth=2")
	if err != nil {
		panic(err)
	}
	c, err := compcache.NewCacheFromConfig(cfg)
	if err != nil {
		panic(err)
	}

	kernels := make(map[compcache.ItemID]string)
	compile := func(d *desc.Shapes) string {
		id := c.FindCache(d)
		if id != compcache.InvalidItemID {
			return kernels[id]
		}
		id = c.AddCache(d)
		kernels[id] = fmt.Sprintf("kernel%v", d.Shapes())
		return kernels[id]
	}

	fmt.Println(compile(desc.NewShapes(desc.Shape{1, 128})))
	fmt.Println(compile(desc.NewShapes(desc.Shape{1, 128})))
	fmt.Println(compile(desc.NewShapes(desc.Shape{8, 128})))
	fmt.Println(compile(desc.NewShapes(desc.Shape{16, 128})))
	fmt.Println(compile(desc.NewShapes(desc.Shape{32, 128})))

	// The first kernel was not touched for more than two adds.
	for _, id := range c.DoAging() {
		fmt.Println("evicted", kernels[id])
		delete(kernels, id)
	}
	// Output:
	// kernel[[1 128]]
	// kernel[[1 128]]
	// kernel[[8 128]]
	// kernel[[16 128]]
	// kernel[[32 128]]
	// evicted kernel[[1 128]]
}
