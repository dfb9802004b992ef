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

package apis

import (
	"reflect"

	"dirpx.dev/postnl/service"
)

// Registry is the property registry: a static table of entity kinds keyed
// by (scope, short name) and by Go type.
// Implementations must be safe for concurrent reads.
type Registry interface {
	// Register adds k. Re-registering an identical kind is a no-op;
	// a different kind under the same scope and name is a conflict.
	Register(k Kind) error
	// Lookup returns the kind registered as name within scope.
	Lookup(scope Scope, name string) (Kind, bool)
	// LookupType returns the kind registered for t (pointers are unwrapped).
	LookupType(t reflect.Type) (Kind, bool)
	// FieldsFor returns the ordered properties of t under svc.
	// ok is false when t is unknown or svc is not configured for it.
	FieldsFor(t reflect.Type, svc service.Service) (props []Property, ok bool)
	// Entries returns a snapshot of all kinds (order is unspecified).
	Entries() []Kind
	// Count returns the number of registered kinds.
	Count() int
	// Reset clears all registered kinds.
	Reset()
}
