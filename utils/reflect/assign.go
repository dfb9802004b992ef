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
	"errors"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

var (
	// ErrReflectNotSettable is returned when the destination cannot be set.
	ErrReflectNotSettable = errors.New("reflect: destination is not settable")
	// ErrReflectIncompatible is returned when a value cannot be converted
	// to the destination type.
	ErrReflectIncompatible = errors.New("reflect: incompatible value")
)

// Assign stores src into dst, converting where the shapes allow it:
//
//   - nil clears dst;
//   - assignable values are stored as is;
//   - pointers are allocated (string -> *string) or dereferenced;
//   - slices are converted element by element, all or nothing;
//   - scalars are converted weakly ("2000" -> int, 12.0 -> int, 1 -> "1").
//
// Anything else fails with ErrReflectIncompatible and leaves dst untouched.
func Assign(dst reflect.Value, src any) error {
	if !dst.CanSet() {
		return ErrReflectNotSettable
	}
	if src == nil {
		dst.SetZero()
		return nil
	}
	return assign(dst, reflect.ValueOf(src))
}

func assign(dst, sv reflect.Value) error {
	if sv.Kind() == reflect.Interface {
		if sv.IsNil() {
			dst.SetZero()
			return nil
		}
		sv = sv.Elem()
	}
	if sv.Type().AssignableTo(dst.Type()) {
		dst.Set(sv)
		return nil
	}
	if sv.Kind() == reflect.Pointer {
		if sv.IsNil() {
			dst.SetZero()
			return nil
		}
		if dst.Kind() != reflect.Pointer || !sv.Type().Elem().AssignableTo(dst.Type().Elem()) {
			sv = sv.Elem()
		}
	}

	switch dst.Kind() {
	case reflect.Interface:
		if sv.Type().Implements(dst.Type()) {
			dst.Set(sv)
			return nil
		}
	case reflect.Pointer:
		elem := reflect.New(dst.Type().Elem())
		if err := assign(elem.Elem(), sv); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	case reflect.Slice:
		if sv.Kind() != reflect.Slice && sv.Kind() != reflect.Array {
			break
		}
		out := reflect.MakeSlice(dst.Type(), sv.Len(), sv.Len())
		for i := 0; i < sv.Len(); i++ {
			if err := assign(out.Index(i), sv.Index(i)); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		dst.Set(out)
		return nil
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if !isScalar(sv.Kind()) {
			break
		}
		tmp := reflect.New(dst.Type())
		if err := mapstructure.WeakDecode(sv.Interface(), tmp.Interface()); err != nil {
			return fmt.Errorf("%w: %v", ErrReflectIncompatible, err)
		}
		dst.Set(tmp.Elem())
		return nil
	}
	return fmt.Errorf("%w: %s into %s", ErrReflectIncompatible, sv.Type(), dst.Type())
}

func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
