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

package entity_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/containerd/errdefs"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/entity/response"
	"dirpx.dev/postnl/service"
)

func TestNewAssignsIdentity(t *testing.T) {
	a := entity.New[entity.Address]()
	b := entity.New[entity.Address]()
	assert.Assert(t, a.EntityID() != "")
	assert.Assert(t, a.EntityID() != b.EntityID())
	assert.Equal(t, a.CurrentService(), service.None)
	assert.Assert(t, is.Nil(a.City))
}

func TestGetSet(t *testing.T) {
	a := entity.New[entity.Address]()

	assert.NilError(t, entity.Set(a, "City", "Hoofddorp"))
	assert.Equal(t, *(entity.Get(a, "City").(*string)), "Hoofddorp")
	assert.Equal(t, *a.City, "Hoofddorp")

	// Unknown properties are ignored on set and read back as nil.
	assert.NilError(t, entity.Set(a, "Planet", "Mars"))
	assert.Assert(t, entity.Get(a, "Planet") == nil)

	// Unset properties read back as nil.
	assert.Assert(t, entity.Get(a, "Street") == nil)

	// Setting nil clears.
	assert.NilError(t, entity.Set(a, "City", nil))
	assert.Assert(t, is.Nil(a.City))
}

func TestSetConvertsScalars(t *testing.T) {
	d := entity.New[entity.Dimension]()
	assert.NilError(t, entity.Set(d, "Weight", "2000"))
	assert.Equal(t, *d.Weight, 2000)

	c := entity.New[entity.Customs]()
	assert.NilError(t, entity.Set(c, "Invoice", "true"))
	assert.Equal(t, *c.Invoice, true)
}

func TestSetterArity(t *testing.T) {
	a := entity.New[entity.Address]()
	err := entity.Set(a, "City")
	assert.Assert(t, errors.Is(err, entity.ErrSetterArity))
	assert.Assert(t, errdefs.IsInvalidArgument(err))

	_, err = entity.Call(a, "setCity")
	assert.Assert(t, errors.Is(err, entity.ErrSetterArity))
}

func TestIdentityAndServiceRemaps(t *testing.T) {
	a := entity.New[entity.Address]()

	assert.NilError(t, entity.Set(a, "Id", "fixed-id"))
	assert.Equal(t, a.EntityID(), "fixed-id")
	assert.Equal(t, entity.Get(a, "Id"), any("fixed-id"))

	assert.NilError(t, entity.Set(a, "CurrentService", "Barcode"))
	assert.Equal(t, a.CurrentService(), service.Barcode)
	assert.NilError(t, entity.Set(a, "CurrentService", service.Labelling))
	assert.Equal(t, entity.Get(a, "CurrentService"), any(service.Labelling))

	err := entity.Set(a, "CurrentService", "Teleport")
	assert.Assert(t, errdefs.IsInvalidArgument(err))
	err = entity.Set(a, "Id", 42)
	assert.Assert(t, errdefs.IsInvalidArgument(err))
}

func TestReasonNoTimeframesRemap(t *testing.T) {
	r := entity.New[response.ResponseTimeframes]()
	reasons := []*entity.ReasonNoTimeframe{entity.New[entity.ReasonNoTimeframe]()}

	_, err := entity.Call(r, "setReasonNotimeframes", reasons)
	assert.NilError(t, err)
	assert.Equal(t, len(r.ReasonNoTimeframes), 1)

	got, err := entity.Call(r, "getReasonNotimeframes")
	assert.NilError(t, err)
	assert.Equal(t, len(got.([]*entity.ReasonNoTimeframe)), 1)
}

func TestCall(t *testing.T) {
	b := entity.New[entity.Barcode]()

	out, err := entity.Call(b, "setType", "3S")
	assert.NilError(t, err)
	assert.Equal(t, out, any(b))

	v, err := entity.Call(b, "getType")
	assert.NilError(t, err)
	assert.Equal(t, *(v.(*string)), "3S")

	for _, name := range []string{"", "ge", "fooType", "Type"} {
		_, err := entity.Call(b, name)
		assert.Assert(t, errors.Is(err, entity.ErrInvalidAccessor), "method %q", name)
	}
}

func TestFieldType(t *testing.T) {
	s := entity.New[entity.Shipment]()

	typ, ok := entity.FieldType(s, "Addresses")
	assert.Assert(t, ok)
	assert.Equal(t, typ, reflect.TypeFor[[]*entity.Address]())

	_, ok = entity.FieldType(s, "Nope")
	assert.Assert(t, !ok)
}
