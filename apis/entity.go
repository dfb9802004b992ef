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

import "dirpx.dev/postnl/service"

// Identifier is implemented by values with a stable opaque identity.
type Identifier interface {
	// EntityID returns the identity assigned at construction.
	EntityID() string
}

// Entity is a typed record that can be moved between Go and the wire.
//
// Implementations keep their identity and service context outside of the
// wire fields; both are managed through the methods below and never appear
// in serialized output.
type Entity interface {
	Identifier
	// SetEntityID replaces the identity. Used by factories only.
	SetEntityID(id string)
	// CurrentService returns the active service context.
	CurrentService() service.Service
	// SetCurrentService assigns the active service context.
	SetCurrentService(svc service.Service)
}

// JSONShaper lets an entity rewrite its emitted JSON fields after the
// generic selection has run. Used for carrier payloads whose JSON shape
// differs from the field layout.
type JSONShaper interface {
	ShapeJSON(fields map[string]any) map[string]any
}
