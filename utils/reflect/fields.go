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

package reflect

import (
	"reflect"
	"sync"
)

// TagName is the struct tag that overrides a field's wire name.
const TagName = "wire"

// fieldCache memoizes wire field tables per struct type.
var fieldCache sync.Map // key: reflect.Type, val: map[string]int

// WireName returns the wire name of f: the "wire" tag when present,
// the Go field name otherwise.
func WireName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup(TagName); ok && tag != "" && tag != "-" {
		return tag
	}
	return f.Name
}

// wireFields returns wire name -> field index for the exported,
// non-embedded fields of struct t.
func wireFields(t reflect.Type) map[string]int {
	if v, ok := fieldCache.Load(t); ok {
		return v.(map[string]int)
	}
	m := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous || !f.IsExported() || f.Tag.Get(TagName) == "-" {
			continue
		}
		m[WireName(f)] = i
	}
	v, _ := fieldCache.LoadOrStore(t, m)
	return v.(map[string]int)
}

// FieldByWireName returns the field of struct t whose wire name is name.
func FieldByWireName(t reflect.Type, name string) (reflect.StructField, bool) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	i, ok := wireFields(t)[name]
	if !ok {
		return reflect.StructField{}, false
	}
	return t.Field(i), true
}

// IsAbsent reports whether v holds no value: an invalid value, a nil
// pointer, slice, map or interface, or the zero value of any other kind.
func IsAbsent(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}
