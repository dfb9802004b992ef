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

package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/containerd/errdefs"

	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/config"
	"dirpx.dev/postnl/service"
	uref "dirpx.dev/postnl/utils/reflect"
)

var (
	// ErrNilType is returned when a kind has no Go type.
	ErrNilType = errors.New("registry: nil reflect.Type provided")
	// ErrEmptyName is returned when a kind has no short name.
	ErrEmptyName = errors.New("registry: empty name provided")
	// ErrNilFactory is returned when a kind has no New function.
	ErrNilFactory = errors.New("registry: nil factory provided")
	// ErrNotEntity is returned when the pointer to a kind's type does not
	// implement apis.Entity.
	ErrNotEntity = errors.New("registry: type does not implement apis.Entity")
	// ErrUnknownField is returned when a property table names a field the
	// type does not have.
	ErrUnknownField = errors.New("registry: property names an unknown field")
	// ErrConflictingRegistration indicates an attempt to register a
	// different type under a taken (scope, name), or a type under a
	// second name.
	ErrConflictingRegistration = errors.New("registry: conflicting kind registration")
)

var entityType = reflect.TypeFor[apis.Entity]()

// New constructs a Registry that normalizes types according to cfg.
// Only MaxUnwrap is used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

type nameKey struct {
	scope apis.Scope
	name  string
}

// registry is the Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu serializes writers and guards count.
	mu sync.Mutex
	// byName maps (scope, name) to the registered kind.
	byName sync.Map // map[nameKey]apis.Kind
	// byType maps the entity struct type to the registered kind.
	byType sync.Map // map[reflect.Type]apis.Kind
	// count tracks the number of registered kinds.
	count int
}

// Register adds k. It is idempotent for the same (scope, name, type).
func (r *registry) Register(k apis.Kind) error {
	if err := r.validate(&k); err != nil {
		return err
	}
	key := nameKey{scope: k.Scope, name: k.Name}

	// Fast read path: idempotency / conflict check without locking.
	if done, err := r.check(key, k); done || err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if done, err := r.check(key, k); done || err != nil {
		return err
	}

	r.byName.Store(key, k)
	r.byType.Store(k.Type, k)
	r.count++
	return nil
}

// check reports whether k is already registered. A clash with a different
// registration is returned as an error.
func (r *registry) check(key nameKey, k apis.Kind) (bool, error) {
	if v, ok := r.byName.Load(key); ok {
		if v.(apis.Kind).Type == k.Type {
			return true, nil
		}
		return false, fmt.Errorf("%w: %s is %v, not %v: %w",
			ErrConflictingRegistration, k.QualifiedName(), v.(apis.Kind).Type, k.Type, errdefs.ErrConflict)
	}
	if v, ok := r.byType.Load(k.Type); ok {
		return false, fmt.Errorf("%w: %v is already %s: %w",
			ErrConflictingRegistration, k.Type, v.(apis.Kind).QualifiedName(), errdefs.ErrConflict)
	}
	return false, nil
}

func (r *registry) validate(k *apis.Kind) error {
	if k.Type == nil {
		return fmt.Errorf("%w: %w", ErrNilType, errdefs.ErrInvalidArgument)
	}
	if k.Name == "" {
		return fmt.Errorf("%w: %w", ErrEmptyName, errdefs.ErrInvalidArgument)
	}
	if k.New == nil {
		return fmt.Errorf("%w: %s: %w", ErrNilFactory, k.Name, errdefs.ErrInvalidArgument)
	}
	t, err := uref.Normalize(k.Type, r.cfg)
	if err != nil {
		return fmt.Errorf("registry: %s: %w: %w", k.Name, err, errdefs.ErrInvalidArgument)
	}
	if !reflect.PointerTo(t).Implements(entityType) {
		return fmt.Errorf("%w: %v: %w", ErrNotEntity, t, errdefs.ErrInvalidArgument)
	}
	k.Type = t
	for svc, props := range k.Properties {
		for _, p := range props {
			if _, ok := uref.FieldByWireName(t, p.Field); !ok {
				return fmt.Errorf("%w: %s.%s (service %s): %w",
					ErrUnknownField, k.Name, p.Field, svc, errdefs.ErrInvalidArgument)
			}
		}
	}
	return nil
}

// Lookup returns the kind registered as name within scope.
func (r *registry) Lookup(scope apis.Scope, name string) (apis.Kind, bool) {
	if v, ok := r.byName.Load(nameKey{scope: scope, name: name}); ok {
		return v.(apis.Kind), true
	}
	return apis.Kind{}, false
}

// LookupType returns the kind registered for t.
func (r *registry) LookupType(t reflect.Type) (apis.Kind, bool) {
	if t == nil {
		return apis.Kind{}, false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return apis.Kind{}, false
	}
	if v, ok := r.byType.Load(nt); ok {
		return v.(apis.Kind), true
	}
	return apis.Kind{}, false
}

// FieldsFor returns the ordered properties of t under svc.
func (r *registry) FieldsFor(t reflect.Type, svc service.Service) ([]apis.Property, bool) {
	k, ok := r.LookupType(t)
	if !ok {
		return nil, false
	}
	return k.Fields(svc)
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Kind {
	entries := make([]apis.Kind, 0, r.Count())
	r.byName.Range(func(_, value any) bool {
		entries = append(entries, value.(apis.Kind))
		return true
	})
	return entries
}

// Count returns the number of registered kinds.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered kinds.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName = sync.Map{}
	r.byType = sync.Map{}
	r.count = 0
}
