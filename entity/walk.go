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
	"dirpx.dev/postnl/service"
)

// SetService assigns svc to e and to every entity nested in its fields.
// API operations call it before serializing a request.
func SetService(e apis.Entity, svc service.Service) {
	if e == nil {
		return
	}
	Walk(e, func(child apis.Entity) {
		child.SetCurrentService(svc)
	})
}

// Walk calls fn for e and then, depth first in field order, for every
// non-nil entity reachable through its exported fields.
func Walk(e apis.Entity, fn func(apis.Entity)) {
	v := reflect.ValueOf(e)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return
	}
	fn(e)
	walkValue(v, fn)
}

func walkValue(v reflect.Value, fn func(apis.Entity)) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		walkField(v.Field(i), fn)
	}
}

func walkField(fv reflect.Value, fn func(apis.Entity)) {
	switch fv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if fv.IsNil() {
			return
		}
		if child, ok := fv.Interface().(apis.Entity); ok {
			Walk(child, fn)
		}
	case reflect.Slice, reflect.Array:
		for j := 0; j < fv.Len(); j++ {
			walkField(fv.Index(j), fn)
		}
	}
}

// Clone returns a deep copy of e in which every reachable entity is a new
// instance with a fresh identity. Scalar leaves are shared.
func Clone[T apis.Entity](e T) T {
	v := reflect.ValueOf(e)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return e
	}
	return cloneEntity(v).Interface().(T)
}

func cloneEntity(v reflect.Value) reflect.Value {
	out := reflect.New(v.Elem().Type())
	out.Elem().Set(v.Elem())
	s := out.Elem()
	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		if c, ok := cloneField(s.Field(i)); ok {
			s.Field(i).Set(c)
		}
	}
	out.Interface().(apis.Entity).SetEntityID(NewID())
	return out
}

func cloneField(fv reflect.Value) (reflect.Value, bool) {
	switch fv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if fv.IsNil() {
			return reflect.Value{}, false
		}
		child, ok := fv.Interface().(apis.Entity)
		if !ok {
			return reflect.Value{}, false
		}
		cv := reflect.ValueOf(child)
		if cv.Kind() != reflect.Pointer || cv.IsNil() || cv.Elem().Kind() != reflect.Struct {
			return reflect.Value{}, false
		}
		return cloneEntity(cv), true
	case reflect.Slice:
		if fv.IsNil() {
			return reflect.Value{}, false
		}
		out := reflect.MakeSlice(fv.Type(), fv.Len(), fv.Len())
		reflect.Copy(out, fv)
		for j := 0; j < out.Len(); j++ {
			if c, ok := cloneField(out.Index(j)); ok {
				out.Index(j).Set(c)
			}
		}
		return out, true
	}
	return reflect.Value{}, false
}
