/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package compcache

import "sync"

// MatchPolicyCreator builds a fresh MatchPolicy.
type MatchPolicyCreator func() MatchPolicy

// AgingPolicyCreator builds a fresh AgingPolicy.
type AgingPolicyCreator func() AgingPolicy

// Registry maps policy types to the functions creating them. Registering a
// type twice replaces the earlier creator.
type Registry struct {
	mu    sync.RWMutex
	match map[MatchPolicyType]MatchPolicyCreator
	aging map[AgingPolicyType]AgingPolicyCreator
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		match: make(map[MatchPolicyType]MatchPolicyCreator),
		aging: make(map[AgingPolicyType]AgingPolicyCreator),
	}
}

// RegisterBuiltins registers the policies shipped with this package:
// MatchExact, AgingLRU and AgingLRUK.
func RegisterBuiltins(r *Registry) {
	r.RegisterMatchPolicy(MatchExact, func() MatchPolicy {
		return NewExactMatch()
	})
	r.RegisterAgingPolicy(AgingLRU, func() AgingPolicy {
		return NewLRU(defaultAgingDepth)
	})
	r.RegisterAgingPolicy(AgingLRUK, func() AgingPolicy {
		return NewLRUK(defaultAgingDepth, defaultKTimes)
	})
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process wide registry, creating it with the
// builtin policies on first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		RegisterBuiltins(defaultRegistry)
	})
	return defaultRegistry
}

// RegisterMatchPolicy registers fn under t in the default registry.
func RegisterMatchPolicy(t MatchPolicyType, fn MatchPolicyCreator) {
	DefaultRegistry().RegisterMatchPolicy(t, fn)
}

// RegisterAgingPolicy registers fn under t in the default registry.
func RegisterAgingPolicy(t AgingPolicyType, fn AgingPolicyCreator) {
	DefaultRegistry().RegisterAgingPolicy(t, fn)
}

func (r *Registry) RegisterMatchPolicy(t MatchPolicyType, fn MatchPolicyCreator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.match[t] = fn
}

func (r *Registry) RegisterAgingPolicy(t AgingPolicyType, fn AgingPolicyCreator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aging[t] = fn
}

// MatchPolicy returns a new instance of the policy registered under t, or nil.
func (r *Registry) MatchPolicy(t MatchPolicyType) MatchPolicy {
	r.mu.RLock()
	fn, ok := r.match[t]
	r.mu.RUnlock()
	if !ok || fn == nil {
		return nil
	}
	return fn()
}

// AgingPolicy returns a new instance of the policy registered under t, or nil.
func (r *Registry) AgingPolicy(t AgingPolicyType) AgingPolicy {
	r.mu.RLock()
	fn, ok := r.aging[t]
	r.mu.RUnlock()
	if !ok || fn == nil {
		return nil
	}
	return fn()
}
