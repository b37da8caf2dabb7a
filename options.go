/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache

import "log/slog"

type options struct {
	logger       *slog.Logger
	metrics      bool
	registry     *Registry
	kTimes       uint64
	historyLimit int
}

// Option configures a Cache.
type Option func(*options)

// WithLogger sets the logger used by the cache and its policies.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics turns metrics collection on or off.
func WithMetrics(enabled bool) Option {
	return func(o *options) {
		o.metrics = enabled
	}
}

// WithRegistry resolves policy types through r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithKTimes sets how many appearances an LRU-K aging policy requires before
// admitting a descriptor. It has no effect on other aging policies.
func WithKTimes(k uint64) Option {
	return func(o *options) {
		o.kTimes = k
	}
}

// WithHistoryLimit bounds the appearance history of an LRU-K aging policy to
// limit distinct hashes. It has no effect on other aging policies.
func WithHistoryLimit(limit int) Option {
	return func(o *options) {
		o.historyLimit = limit
	}
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	return o
}
