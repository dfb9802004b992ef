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
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/containerd/errdefs"

	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/service"
	uref "dirpx.dev/postnl/utils/reflect"
)

var (
	// ErrSetterArity is returned when a setter is invoked without a value.
	ErrSetterArity = errors.New("entity: value is missing")
	// ErrInvalidAccessor is returned by Call for names that are neither a
	// getter nor a setter.
	ErrInvalidAccessor = errors.New("entity: not a valid get or set method")
)

// IDName is the property that carries the entity identity.
const IDName = "Id"

// Accessor names that do not map one to one onto a wire field.
const (
	idName             = IDName
	currentServiceName = "CurrentService"
	legacyReasonName   = "ReasonNotimeframes"
	reasonName         = "ReasonNoTimeframes"
)

// fieldName applies the accessor remaps for wire fields.
func fieldName(name string) string {
	if name == legacyReasonName {
		return reasonName
	}
	return name
}

// field returns the settable field of e named name (after remapping).
func field(e apis.Entity, name string) (reflect.Value, bool) {
	v := reflect.ValueOf(e)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	f, ok := uref.FieldByWireName(v.Type(), fieldName(name))
	if !ok {
		return reflect.Value{}, false
	}
	return v.Elem().FieldByIndex(f.Index), true
}

// FieldType returns the Go type of the field a setter named name would
// write, or false when e has no such field.
func FieldType(e apis.Entity, name string) (reflect.Type, bool) {
	fv, ok := field(e, name)
	if !ok {
		return nil, false
	}
	return fv.Type(), true
}

// Get returns the value of the property name of e, or nil when the
// property is unset or unknown. "Id" and "CurrentService" return the
// identity and the service context.
func Get(e apis.Entity, name string) any {
	switch name {
	case idName:
		return e.EntityID()
	case currentServiceName:
		return e.CurrentService()
	}
	fv, ok := field(e, name)
	if !ok || uref.IsAbsent(fv) {
		return nil
	}
	return fv.Interface()
}

// Set assigns the first of values to the property name of e. Unknown
// properties are ignored. Calling Set without a value fails with
// ErrSetterArity.
func Set(e apis.Entity, name string, values ...any) error {
	if len(values) < 1 {
		return fmt.Errorf("%w: set%s: %w", ErrSetterArity, name, errdefs.ErrInvalidArgument)
	}
	value := values[0]

	switch name {
	case idName:
		id, ok := value.(string)
		if !ok {
			return fmt.Errorf("entity: set%s: want string, got %T: %w", name, value, errdefs.ErrInvalidArgument)
		}
		e.SetEntityID(id)
		return nil
	case currentServiceName:
		svc, err := toService(value)
		if err != nil {
			return fmt.Errorf("entity: set%s: %w: %w", name, err, errdefs.ErrInvalidArgument)
		}
		e.SetCurrentService(svc)
		return nil
	}

	fv, ok := field(e, name)
	if !ok {
		return nil
	}
	if err := uref.Assign(fv, value); err != nil {
		return fmt.Errorf("entity: set%s: %w", name, err)
	}
	return nil
}

// Call dispatches a "getX" or "setX" accessor by name.
// Setters return e so calls can be chained.
func Call(e apis.Entity, method string, args ...any) (any, error) {
	if len(method) < 3 {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidAccessor, method, errdefs.ErrInvalidArgument)
	}
	prefix, name := method[:3], method[3:]
	switch prefix {
	case "get":
		return Get(e, name), nil
	case "set":
		if err := Set(e, name, args...); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidAccessor, method, errdefs.ErrInvalidArgument)
	}
}

func toService(v any) (service.Service, error) {
	switch s := v.(type) {
	case service.Service:
		return s, nil
	case string:
		if strings.TrimSpace(s) == "" {
			return service.None, nil
		}
		return service.Parse(s)
	default:
		return service.None, fmt.Errorf("want service.Service or string, got %T", v)
	}
}
