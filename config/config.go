/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"slices"

	"dirpx.dev/postnl/apis"
)

const (
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// Entity fields are at most a pointer or a slice of pointers deep.
	DefaultMaxUnwrap = 8
	// DefaultMaxDepth represents the default for MaxDepth.
	// Carrier payloads nest a handful of levels; 32 leaves ample headroom.
	DefaultMaxDepth = 32
)

// DefaultScopeOrder is the resolver search order: general entities, message
// entities, request entities, response entities, protocol envelopes.
func DefaultScopeOrder() []apis.Scope {
	return []apis.Scope{
		apis.ScopeEntity,
		apis.ScopeMessage,
		apis.ScopeRequest,
		apis.ScopeResponse,
		apis.ScopeSOAP,
	}
}

// DefaultIrregularPlurals lists collection tags pluralized with "es".
func DefaultIrregularPlurals() []string {
	return []string{"OldStatuses", "Statuses", "Addresses"}
}

// DefaultFlatTypes lists tags whose list value is one nested entity.
func DefaultFlatTypes() []string {
	return []string{"Customer", "OpeningHours", "Customs"}
}

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if len(cfg.ScopeOrder) == 0 {
		cfg.ScopeOrder = DefaultScopeOrder()
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxUnwrap:        DefaultMaxUnwrap,
		MaxDepth:         DefaultMaxDepth,
		ScopeOrder:       DefaultScopeOrder(),
		IrregularPlurals: DefaultIrregularPlurals(),
		FlatTypes:        DefaultFlatTypes(),
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}

// WithScopeOrder replaces the resolver search order.
// Duplicate scopes are dropped, keeping the first occurrence.
func WithScopeOrder(order ...apis.Scope) Option {
	return func(c *apis.Config) {
		out := make([]apis.Scope, 0, len(order))
		for _, sc := range order {
			if !slices.Contains(out, sc) {
				out = append(out, sc)
			}
		}
		c.ScopeOrder = out
	}
}

// WithIrregularPlurals replaces the irregular plural table.
func WithIrregularPlurals(tags ...string) Option {
	return func(c *apis.Config) {
		c.IrregularPlurals = slices.Clone(tags)
	}
}

// WithFlatTypes replaces the flat type table.
func WithFlatTypes(tags ...string) Option {
	return func(c *apis.Config) {
		c.FlatTypes = slices.Clone(tags)
	}
}
