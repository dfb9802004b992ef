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

package builder

import (
	"fmt"

	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/config"
	"dirpx.dev/postnl/registry"
	"dirpx.dev/postnl/resolver"
	"dirpx.dev/postnl/strategy"
)

// New creates an apis.Builder whose registries are filled by catalogs,
// in order.
func New(catalogs ...apis.Catalog) apis.Builder {
	return &builder{catalogs: catalogs}
}

// builder holds the catalogs every built registry starts from.
type builder struct {
	catalogs []apis.Catalog
}

// BuildRegistry builds a new apis.Registry for cfg and registers the
// builder's catalogs, then the catalogs carried by ext (an apis.Catalog or
// []apis.Catalog), then every kind of prev not already present.
//
// A catalog that fails to register is a programming error and panics.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry, ext any) apis.Registry {
	nreg := registry.New(cfg)
	for _, c := range append(append([]apis.Catalog(nil), b.catalogs...), extCatalogs(ext)...) {
		if c == nil {
			continue
		}
		if err := c(nreg); err != nil {
			panic(fmt.Errorf("builder: catalog: %w", err))
		}
	}
	if prev != nil {
		for _, k := range prev.Entries() {
			_ = nreg.Register(k)
		}
	}
	return nreg
}

// BuildResolver builds an apis.Resolver over reg that searches the scopes of
// cfg.ScopeOrder in order (config.DefaultScopeOrder when empty).
func (b *builder) BuildResolver(cfg apis.Config, reg apis.Registry, _ apis.Resolver, _ any) apis.Resolver {
	order := cfg.ScopeOrder
	if len(order) == 0 {
		order = config.DefaultScopeOrder()
	}
	strats := make([]apis.Strategy, 0, len(order))
	for _, scope := range order {
		strats = append(strats, strategy.NewScopeStrategy(reg, scope))
	}
	return resolver.New(strats...)
}

func extCatalogs(ext any) []apis.Catalog {
	switch v := ext.(type) {
	case apis.Catalog:
		return []apis.Catalog{v}
	case func(apis.Registry) error:
		return []apis.Catalog{v}
	case []apis.Catalog:
		return v
	default:
		return nil
	}
}
