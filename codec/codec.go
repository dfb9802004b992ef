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

// Package codec converts entities to and from the generic wire values of
// package wire.
//
// The serializer emits, for the entity's current service, the fields its
// kind lists for that service, in order, skipping absent ones. The
// deserializer is the permissive inverse: it resolves short type names
// through an apis.Resolver and falls back to the raw value whenever a name
// or shape is not recognized.
package codec

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-logr/logr"

	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/config"
)

var (
	// ErrMissingServiceContext is returned when an entity is serialized
	// without a service context its kind knows.
	ErrMissingServiceContext = errors.New("codec: service not set before serialization")
	// ErrUnregisteredKind is returned when an entity's type has no kind.
	ErrUnregisteredKind = errors.New("codec: entity type is not registered")
	// ErrTooDeep is returned when entities nest deeper than Config.MaxDepth.
	ErrTooDeep = errors.New("codec: nesting exceeds maximum depth")
)

// Codec is safe for concurrent use once built.
type Codec struct {
	reg       apis.Registry
	res       apis.Resolver
	cfg       apis.Config
	log       logr.Logger
	irregular map[string]bool
	flat      map[string]bool
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger decode decisions are reported to.
func WithLogger(l logr.Logger) Option {
	return func(c *Codec) {
		c.log = l
	}
}

// New returns a Codec over reg and res.
func New(reg apis.Registry, res apis.Resolver, cfg apis.Config, opts ...Option) *Codec {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	c := &Codec{
		reg:       reg,
		res:       res,
		cfg:       cfg,
		log:       logr.Discard(),
		irregular: set(cfg.IrregularPlurals),
		flat:      set(cfg.FlatTypes),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the registry c serializes with.
func (c *Codec) Registry() apis.Registry { return c.reg }

// Resolver returns the resolver c deserializes with.
func (c *Codec) Resolver() apis.Resolver { return c.res }

func set(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[s] = true
	}
	return m
}

// singular returns the name to resolve a collection tag under, or "" when
// tag has no singular form. Irregular plurals only apply when irregular is
// set.
func (c *Codec) singular(tag string, irregular bool) string {
	switch {
	case irregular && c.irregular[tag] && len(tag) > 2:
		return tag[:len(tag)-2]
	case strings.HasSuffix(tag, "s") && len(tag) > 1:
		return tag[:len(tag)-1]
	default:
		return ""
	}
}

// resolveTag resolves tag as a type name, retrying with its singular form.
// It returns the kind and the name that resolved.
func (c *Codec) resolveTag(tag string, irregular bool) (apis.Kind, string, bool) {
	if k, ok := c.res.Resolve(tag); ok {
		return k, tag, true
	}
	if s := c.singular(tag, irregular); s != "" {
		if k, ok := c.res.Resolve(s); ok {
			return k, s, true
		}
	}
	return apis.Kind{}, tag, false
}

// itemKind returns the registered kind of the entity type t points to.
func (c *Codec) itemKind(t reflect.Type) (apis.Kind, bool) {
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return apis.Kind{}, false
	}
	return c.reg.LookupType(t)
}
