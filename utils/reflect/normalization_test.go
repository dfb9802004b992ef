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

package reflect_test

import (
	"errors"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/postnl/apis"
	uref "dirpx.dev/postnl/utils/reflect"
)

// Local test types.
type A struct{}
type G[T any] struct{}
type Named int

func cfg(maxUnwrap int) apis.Config {
	return apis.Config{MaxUnwrap: maxUnwrap}
}

func TestNormalize_Containers(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
	}{
		{"plain", reflect.TypeOf(A{})},
		{"ptr", reflect.TypeOf(&A{})},
		{"slice", reflect.TypeOf([]A{})},
		{"slice of ptr", reflect.TypeOf([]*A{})},
		{"array", reflect.TypeOf([2]A{})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, cfg(8))
			if err != nil {
				t.Fatalf("Normalize(%v) returned error: %v", tc.typ, err)
			}
			if got != reflect.TypeOf(A{}) {
				t.Fatalf("Normalize(%v) = %v, want A", tc.typ, got)
			}
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	if _, err := uref.Normalize(nil, cfg(8)); !errors.Is(err, uref.ErrReflectNilType) {
		t.Fatalf("nil: want ErrReflectNilType, got %v", err)
	}
	if _, err := uref.Normalize(reflect.TypeOf(struct{}{}), cfg(8)); !errors.Is(err, uref.ErrReflectTypeNotNamed) {
		t.Fatalf("anonymous: want ErrReflectTypeNotNamed, got %v", err)
	}
	if _, err := uref.Normalize(reflect.TypeOf(Named(0)), cfg(8)); !errors.Is(err, uref.ErrReflectNotStruct) {
		t.Fatalf("named int: want ErrReflectNotStruct, got %v", err)
	}
}

func TestNormalize_MaxUnwrapLimit(t *testing.T) {
	typ := reflect.TypeOf([]**A{})
	if _, err := uref.Normalize(typ, cfg(1)); err == nil {
		t.Fatalf("MaxUnwrap=1: want error for []**A")
	}
	if _, err := uref.Normalize(typ, cfg(3)); err != nil {
		t.Fatalf("MaxUnwrap=3: unexpected error: %v", err)
	}
	// Non-positive falls back to the default.
	if _, err := uref.Normalize(typ, cfg(0)); err != nil {
		t.Fatalf("MaxUnwrap=0: unexpected error: %v", err)
	}
}

func TestTypeName(t *testing.T) {
	if got := uref.TypeName(reflect.TypeOf(&A{})); got != "A" {
		t.Fatalf("TypeName(*A) = %q, want A", got)
	}
	if got := uref.TypeName(reflect.TypeOf(G[int]{})); got != "G" {
		t.Fatalf("TypeName(G[int]) = %q, want G", got)
	}
	if got := uref.TypeName(nil); got != "" {
		t.Fatalf("TypeName(nil) = %q, want empty", got)
	}
}

func TestNormalize_Concurrent(t *testing.T) {
	types := []reflect.Type{reflect.TypeOf(A{}), reflect.TypeOf(&A{}), reflect.TypeOf([]*A{})}
	workers := runtime.GOMAXPROCS(0) * 4

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if _, err := uref.Normalize(types[i%len(types)], cfg(8)); err != nil {
					t.Errorf("Normalize: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
