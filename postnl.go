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

package postnl

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"

	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/builder"
	"dirpx.dev/postnl/codec"
	"dirpx.dev/postnl/config"
	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/entity/message"
	"dirpx.dev/postnl/entity/request"
	"dirpx.dev/postnl/entity/response"
	"dirpx.dev/postnl/entity/soap"
	"dirpx.dev/postnl/wire"
)

func init() {
	b := DefaultBuilder()
	s := &state{cfg: config.DefaultConfig(), bld: b, log: logr.Discard()}
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil, nil)
	s.codec = codec.New(s.reg, s.res, s.cfg, codec.WithLogger(s.log))
	st.Store(s)
}

var (
	// ErrNilRegistry is raised when a builder returns a nil registry.
	ErrNilRegistry = errors.New("postnl: builder returned nil registry")
	// ErrNilResolver is raised when a builder returns a nil resolver.
	ErrNilResolver = errors.New("postnl: builder returned nil resolver")
)

// DefaultBuilder returns a builder loaded with the complete entity catalog
// of all five scopes.
func DefaultBuilder() apis.Builder {
	return builder.New(entity.Register, message.Register, request.Register, response.Register, soap.Register)
}

// Resolve looks name up in the global resolver.
func Resolve(name string) (apis.Kind, bool) {
	return st.Load().res.Resolve(name)
}

// Register adds kinds to the global registry.
func Register(kinds ...apis.Kind) error {
	return entity.RegisterAll(st.Load().reg, kinds...)
}

// Codec returns the codec bound to the current snapshot.
func Codec() *codec.Codec {
	return st.Load().codec
}

// ToJSONValue serializes e with the global codec.
func ToJSONValue(e apis.Entity) (any, error) {
	return Codec().ToJSONValue(e)
}

// FromJSONValue deserializes v with the global codec.
func FromJSONValue(v any) (any, error) {
	return Codec().FromJSONValue(v)
}

// ToXMLValue serializes e with the global codec.
func ToXMLValue(e apis.Entity) ([]wire.Node, error) {
	return Codec().ToXMLValue(e)
}

// FromXMLValue deserializes v with the global codec.
func FromXMLValue(v any) (any, error) {
	return Codec().FromXMLValue(v)
}

// SetAll replaces every component of the global state at once. Nil
// arguments keep the current component, except ext which is always
// replaced. Registry and resolver passed explicitly are pinned.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	update(true, func(next *state) {
		if cfg != nil {
			next.cfg = *cfg
		}
		if bld != nil {
			next.bld = bld
		}
		next.ext = ext
		next.reg, next.preg = reg, reg != nil
		next.res, next.pres = res, res != nil
	})
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the global configuration and rebuilds every unpinned
// component.
func SetConfig(cfg apis.Config) {
	update(true, func(next *state) { next.cfg = cfg })
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs and pins reg. The resolver is rebuilt over it unless
// pinned. A nil reg is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	update(false, func(next *state) { next.reg, next.preg = reg, true })
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs and pins res. A nil res is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(false, func(next *state) { next.res, next.pres = res, true })
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder replaces the builder and rebuilds every unpinned component.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(true, func(next *state) { next.bld = b })
}

// SetExt replaces the extension value handed to the builder (extra
// catalogs) and rebuilds every unpinned component.
func SetExt[T any](ext T) {
	update(true, func(next *state) { next.ext = ext })
}

// ExtAs returns the extension value as T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// SetLogger sets the logger of the global codec.
func SetLogger(l logr.Logger) {
	update(false, func(next *state) { next.log = l })
}

// IsRegistryPinned reports whether rebuilds keep the current registry.
func IsRegistryPinned() bool { return st.Load().preg }

// PinRegistry makes rebuilds keep the current registry.
func PinRegistry() { update(false, func(next *state) { next.preg = true }) }

// UnpinRegistry lets the next rebuild replace the registry.
func UnpinRegistry() { update(false, func(next *state) { next.preg = false }) }

// IsResolverPinned reports whether rebuilds keep the current resolver.
func IsResolverPinned() bool { return st.Load().pres }

// PinResolver makes rebuilds keep the current resolver.
func PinResolver() { update(false, func(next *state) { next.pres = true }) }

// UnpinResolver lets the next rebuild replace the resolver.
func UnpinResolver() { update(false, func(next *state) { next.pres = false }) }

// update copies the current snapshot, applies fn and publishes the result.
// With rebuild set, unpinned components are rebuilt by the builder; a
// registry change alone rebuilds an unpinned resolver.
func update(rebuild bool, fn func(next *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	fn(&next)

	if next.reg == nil || (rebuild && !next.preg) {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
	}
	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil || (!next.pres && (rebuild || next.reg != old.reg)) {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, next.ext)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}

	next.codec = codec.New(next.reg, next.res, next.cfg, codec.WithLogger(next.log))
	st.Store(&next)
}

// buildMu serializes writers so a partially built snapshot is never
// published.
var buildMu sync.Mutex

var st atomic.Pointer[state]

// state is an immutable snapshot; writers publish a new one through update.
type state struct {
	cfg   apis.Config
	ext   any
	reg   apis.Registry
	res   apis.Resolver
	bld   apis.Builder
	codec *codec.Codec
	log   logr.Logger
	// preg and pres keep reg and res across rebuilds.
	preg bool
	pres bool
}
