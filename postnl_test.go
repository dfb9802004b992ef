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

package postnl_test

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"dirpx.dev/postnl"
	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/config"
	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/properties"
	"dirpx.dev/postnl/registry"
	"dirpx.dev/postnl/resolver"
	"dirpx.dev/postnl/service"
)

type countingBuilder struct {
	apis.Builder
	regs atomic.Int32
	ress atomic.Int32
}

func newCountingBuilder() *countingBuilder {
	return &countingBuilder{Builder: postnl.DefaultBuilder()}
}

func (b *countingBuilder) BuildRegistry(cfg apis.Config, prev apis.Registry, ext any) apis.Registry {
	b.regs.Add(1)
	return b.Builder.BuildRegistry(cfg, prev, ext)
}

func (b *countingBuilder) BuildResolver(cfg apis.Config, reg apis.Registry, prev apis.Resolver, ext any) apis.Resolver {
	b.ress.Add(1)
	return b.Builder.BuildResolver(cfg, reg, prev, ext)
}

type Parcel struct {
	entity.Base
	Weight *int
}

func parcelCatalog(reg apis.Registry) error {
	return entity.RegisterAll(reg, entity.Define[Parcel](apis.ScopeEntity, properties.Domain("Weight")))
}

// reset installs a fresh snapshot built by b and restores the defaults
// when the test ends.
func reset(t *testing.T, b apis.Builder) {
	t.Helper()
	cfg := config.DefaultConfig()
	postnl.SetAll(&cfg, nil, nil, nil, b)
	t.Cleanup(func() {
		cfg := config.DefaultConfig()
		postnl.SetAll(&cfg, nil, nil, nil, postnl.DefaultBuilder())
	})
}

func TestDefaults(t *testing.T) {
	reset(t, postnl.DefaultBuilder())

	for name, scope := range map[string]apis.Scope{
		"Shipment":        apis.ScopeEntity,
		"Message":         apis.ScopeMessage,
		"GenerateBarcode": apis.ScopeRequest,
		"MergedLabel":     apis.ScopeResponse,
		"Fault":           apis.ScopeSOAP,
	} {
		k, ok := postnl.Resolve(name)
		if !ok {
			t.Fatalf("Resolve(%q) not found", name)
		}
		if k.Scope != scope {
			t.Fatalf("Resolve(%q).Scope = %v, want %v", name, k.Scope, scope)
		}
	}
	if postnl.IsRegistryPinned() || postnl.IsResolverPinned() {
		t.Fatalf("fresh snapshot is pinned")
	}
}

func TestGlobalCodec(t *testing.T) {
	reset(t, postnl.DefaultBuilder())

	b := entity.NewBarcode("3S", "DEVC", "000000000-999999999")
	entity.SetService(b, service.Barcode)
	v, err := postnl.ToJSONValue(b)
	if err != nil {
		t.Fatalf("ToJSONValue: %v", err)
	}
	back, err := postnl.FromJSONValue(v)
	if err != nil {
		t.Fatalf("FromJSONValue: %v", err)
	}
	got, ok := back.(*entity.Barcode)
	if !ok {
		t.Fatalf("FromJSONValue = %T, want *entity.Barcode", back)
	}
	if entity.Deref(got.Serie) != "000000000-999999999" {
		t.Fatalf("Serie = %q, want %q", entity.Deref(got.Serie), "000000000-999999999")
	}

	nodes, err := postnl.ToXMLValue(b)
	if err != nil {
		t.Fatalf("ToXMLValue: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("len(ToXMLValue) = %d, want 3", len(nodes))
	}
}

func TestSetConfig_RebuildsUnpinned(t *testing.T) {
	b := newCountingBuilder()
	reset(t, b)
	regs, ress := b.regs.Load(), b.ress.Load()

	cfg := config.NewConfig(config.WithScopeOrder(apis.ScopeEntity))
	postnl.SetConfig(cfg)

	if got := b.regs.Load() - regs; got != 1 {
		t.Fatalf("registry builds = %d, want 1", got)
	}
	if got := b.ress.Load() - ress; got != 1 {
		t.Fatalf("resolver builds = %d, want 1", got)
	}
	if _, ok := postnl.Resolve("GenerateBarcode"); ok {
		t.Fatalf("Resolve(GenerateBarcode) found outside the configured scopes")
	}
	if got := postnl.Config().ScopeOrder; len(got) != 1 {
		t.Fatalf("ScopeOrder = %v, want [entity]", got)
	}
}

func TestSetRegistry_PinsRegistry(t *testing.T) {
	b := newCountingBuilder()
	reset(t, b)

	reg := registry.New(config.DefaultConfig())
	if err := parcelCatalog(reg); err != nil {
		t.Fatalf("catalog: %v", err)
	}
	ress := b.ress.Load()
	postnl.SetRegistry(reg)

	if !postnl.IsRegistryPinned() {
		t.Fatalf("registry not pinned")
	}
	if postnl.Registry() != reg {
		t.Fatalf("Registry() is not the installed registry")
	}
	if got := b.ress.Load() - ress; got != 1 {
		t.Fatalf("resolver builds = %d, want 1", got)
	}
	if _, ok := postnl.Resolve("Parcel"); !ok {
		t.Fatalf("Resolve(Parcel) not found")
	}
	if _, ok := postnl.Resolve("Shipment"); ok {
		t.Fatalf("Resolve(Shipment) found in a registry without it")
	}

	regs := b.regs.Load()
	postnl.SetConfig(config.DefaultConfig())
	if b.regs.Load() != regs {
		t.Fatalf("pinned registry was rebuilt")
	}
	if postnl.Registry() != reg {
		t.Fatalf("pinned registry replaced")
	}

	postnl.SetRegistry(nil)
	if postnl.Registry() != reg {
		t.Fatalf("SetRegistry(nil) replaced the registry")
	}
}

func TestSetResolver_PinsResolver(t *testing.T) {
	b := newCountingBuilder()
	reset(t, b)

	res := resolver.New()
	postnl.SetResolver(res)
	if !postnl.IsResolverPinned() {
		t.Fatalf("resolver not pinned")
	}

	ress := b.ress.Load()
	postnl.SetConfig(config.DefaultConfig())
	if b.ress.Load() != ress {
		t.Fatalf("pinned resolver was rebuilt")
	}
	if _, ok := postnl.Resolve("Shipment"); ok {
		t.Fatalf("empty resolver resolved Shipment")
	}

	postnl.UnpinResolver()
	postnl.SetConfig(config.DefaultConfig())
	if _, ok := postnl.Resolve("Shipment"); !ok {
		t.Fatalf("Resolve(Shipment) not found after unpin")
	}
}

func TestPinRegistry(t *testing.T) {
	b := newCountingBuilder()
	reset(t, b)

	postnl.PinRegistry()
	reg := postnl.Registry()
	postnl.SetExt(apis.Catalog(parcelCatalog))
	if postnl.Registry() != reg {
		t.Fatalf("pinned registry replaced by SetExt")
	}

	postnl.UnpinRegistry()
	postnl.SetExt(apis.Catalog(parcelCatalog))
	if _, ok := postnl.Resolve("Parcel"); !ok {
		t.Fatalf("Resolve(Parcel) not found after unpin")
	}
}

func TestSetExt_PassesCatalog(t *testing.T) {
	reset(t, postnl.DefaultBuilder())

	postnl.SetExt([]apis.Catalog{parcelCatalog})
	ext, ok := postnl.ExtAs[[]apis.Catalog]()
	if !ok || len(ext) != 1 {
		t.Fatalf("ExtAs = %v, %v, want one catalog", ext, ok)
	}
	if _, ok := postnl.Resolve("Parcel"); !ok {
		t.Fatalf("Resolve(Parcel) not found")
	}
	if _, ok := postnl.Resolve("Shipment"); !ok {
		t.Fatalf("Resolve(Shipment) lost after SetExt")
	}
	if _, ok := postnl.ExtAs[string](); ok {
		t.Fatalf("ExtAs[string] ok for a catalog slice")
	}
}

func TestRegister(t *testing.T) {
	reset(t, postnl.DefaultBuilder())

	if err := postnl.Register(entity.Define[Parcel](apis.ScopeEntity, properties.Domain("Weight"))); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, ok := postnl.Resolve("Parcel"); !ok {
		t.Fatalf("Resolve(Parcel) not found")
	}
}

func TestSetBuilder(t *testing.T) {
	reset(t, postnl.DefaultBuilder())

	b := newCountingBuilder()
	postnl.SetBuilder(b)
	if postnl.Builder() != apis.Builder(b) {
		t.Fatalf("Builder() is not the installed builder")
	}
	if b.regs.Load() != 1 || b.ress.Load() != 1 {
		t.Fatalf("builds = %d/%d, want 1/1", b.regs.Load(), b.ress.Load())
	}
	postnl.SetBuilder(nil)
	if postnl.Builder() != apis.Builder(b) {
		t.Fatalf("SetBuilder(nil) replaced the builder")
	}
}

func TestResolve_ConcurrentWithSetConfig(t *testing.T) {
	reset(t, postnl.DefaultBuilder())

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	stop := make(chan struct{})
	var misses atomic.Int64
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if _, ok := postnl.Resolve("Shipment"); !ok {
					misses.Add(1)
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		postnl.SetConfig(config.NewConfig(config.WithMaxDepth(16 + i)))
	}
	close(stop)
	wg.Wait()

	if got := misses.Load(); got != 0 {
		t.Fatalf("misses = %d, want 0", got)
	}
}
