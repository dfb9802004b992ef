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

package entity

import (
	"reflect"

	"dirpx.dev/postnl/apis"
	uref "dirpx.dev/postnl/utils/reflect"
)

// New returns a zero-valued *T with a fresh identity. It is the factory
// used when building entities from wire data; no field is initialized.
func New[T any, PT interface {
	*T
	apis.Entity
}]() PT {
	e := PT(new(T))
	e.SetEntityID(NewID())
	return e
}

// Define describes T as a kind of scope with the given property table.
// The kind's short name is the Go type name of T.
func Define[T any, PT interface {
	*T
	apis.Entity
}](scope apis.Scope, props apis.PropertySet) apis.Kind {
	typ := reflect.TypeFor[T]()
	return apis.Kind{
		Name:       uref.TypeName(typ),
		Scope:      scope,
		Type:       typ,
		New:        func() apis.Entity { return New[T, PT]() },
		Properties: props,
	}
}

// RegisterAll registers kinds in order and stops at the first error.
func RegisterAll(reg apis.Registry, kinds ...apis.Kind) error {
	for _, k := range kinds {
		if err := reg.Register(k); err != nil {
			return err
		}
	}
	return nil
}
