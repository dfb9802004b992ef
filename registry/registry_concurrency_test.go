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

package registry_test

import (
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/config"
	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/registry"
)

// A few named entity types to register concurrently.
type T0 struct{ entity.Base }
type T1 struct{ entity.Base }
type T2 struct{ entity.Base }
type T3 struct{ entity.Base }
type T4 struct{ entity.Base }
type T5 struct{ entity.Base }

func kinds() []apis.Kind {
	return []apis.Kind{
		entity.Define[T0](apis.ScopeEntity, nil),
		entity.Define[T1](apis.ScopeEntity, nil),
		entity.Define[T2](apis.ScopeMessage, nil),
		entity.Define[T3](apis.ScopeRequest, nil),
		entity.Define[T4](apis.ScopeResponse, nil),
		entity.Define[T5](apis.ScopeSOAP, nil),
	}
}

// TestConcurrentRegisterAndLookup verifies that Register/Lookup/Entries/Count
// are race-free and consistent under concurrent use.
func TestConcurrentRegisterAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	ks := kinds()

	for _, k := range ks {
		if err := reg.Register(k); err != nil {
			t.Fatalf("register %s: %v", k.Name, err)
		}
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				k := ks[i%len(ks)]
				if got, ok := reg.Lookup(k.Scope, k.Name); !ok || got.Type != k.Type {
					t.Errorf("lookup failed for %s: ok=%v", k.QualifiedName(), ok)
					return
				}
				if _, ok := reg.LookupType(k.Type); !ok {
					t.Errorf("type lookup failed for %v", k.Type)
					return
				}
				_ = reg.Count()
				_ = reg.Entries()
			}
		}()
	}

	// Writers (idempotent re-register)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				_ = reg.Register(ks[(i+id)%len(ks)])
			}
		}(w)
	}

	wg.Wait()

	if reg.Count() != len(ks) {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), len(ks))
	}
	got := map[string]bool{}
	for _, k := range reg.Entries() {
		got[k.QualifiedName()] = true
	}
	for _, k := range ks {
		if !got[k.QualifiedName()] {
			t.Fatalf("entry missing for %s", k.QualifiedName())
		}
	}
}

// TestResetSnapshot ensures Reset is safe and Entries returns a stable snapshot.
func TestResetSnapshot(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	for _, k := range kinds()[:2] {
		_ = reg.Register(k)
	}

	snap := reg.Entries()
	reg.Reset()

	if reg.Count() != 0 {
		t.Fatalf("count after reset: got %d want 0", reg.Count())
	}
	if len(snap) != 2 {
		t.Fatalf("snapshot length changed unexpectedly: %d", len(snap))
	}
	if snap[0].Name == "" || snap[1].Name == "" {
		t.Fatalf("snapshot contents invalid after reset")
	}
}

var _ apis.Registry = registry.New(config.DefaultConfig())
