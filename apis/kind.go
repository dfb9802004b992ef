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

// Property is one wire field of an entity: its wire name and the XML
// namespace it is emitted under ("" for none).
type Property struct {
	Field     string
	Namespace string
}

// PropertySet maps a service context to the ordered fields emitted under it.
// Order is the wire schema order.
type PropertySet map[service.Service][]Property

// Kind describes one registered entity type.
type Kind struct {
	// Name is the short wire name, e.g. "Shipment".
	Name string
	// Scope is the logical namespace the kind lives in.
	Scope Scope
	// Type is the entity struct type (not a pointer).
	Type reflect.Type
	// New returns a zero-valued instance with a fresh identity.
	New func() Entity
	// Properties is the per-service field table.
	Properties PropertySet
}

// QualifiedName returns "<scope>.<Name>".
func (k Kind) QualifiedName() string {
	return k.Scope.String() + "." + k.Name
}

// Fields returns the ordered properties for svc and whether svc is
// configured for this kind.
func (k Kind) Fields(svc service.Service) ([]Property, bool) {
	props, ok := k.Properties[svc]
	return props, ok
}

// Catalog registers a group of kinds.
type Catalog func(reg Registry) error
