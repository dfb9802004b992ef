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
	"github.com/google/uuid"

	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/service"
)

// Base carries the identity and service context of an entity. Embed it
// by value in every entity struct; it never appears on the wire.
type Base struct {
	id      string
	service service.Service
}

// Ensure *Base implements apis.Entity.
var _ apis.Entity = (*Base)(nil)

// NewID returns a fresh entity identity.
func NewID() string {
	return uuid.NewString()
}

// NewBase returns a Base with a fresh identity and no service context.
func NewBase() Base {
	return Base{id: NewID()}
}

// EntityID returns the identity assigned at construction.
func (b *Base) EntityID() string { return b.id }

// SetEntityID replaces the identity.
func (b *Base) SetEntityID(id string) { b.id = id }

// CurrentService returns the active service context.
func (b *Base) CurrentService() service.Service { return b.service }

// SetCurrentService assigns the active service context.
func (b *Base) SetCurrentService(svc service.Service) { b.service = svc }
