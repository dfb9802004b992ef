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

package strategy_test

import (
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/config"
	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/registry"
	"dirpx.dev/postnl/strategy"
)

// Local test types.
type Label struct{ entity.Base }
type Envelope struct{ entity.Base }

func newRegistry(t *testing.T) apis.Registry {
	t.Helper()
	reg := registry.New(config.DefaultConfig())
	for _, k := range []apis.Kind{
		entity.Define[Label](apis.ScopeEntity, nil),
		entity.Define[Envelope](apis.ScopeSOAP, nil),
	} {
		if err := reg.Register(k); err != nil {
			t.Fatalf("Register(%s): %v", k.Name, err)
		}
	}
	return reg
}

func TestScopeStrategy(t *testing.T) {
	reg := newRegistry(t)

	cases := []struct {
		name  string
		scope apis.Scope
		short string
		want  bool
	}{
		{"hit", apis.ScopeEntity, "Label", true},
		{"other scope", apis.ScopeSOAP, "Label", false},
		{"soap hit", apis.ScopeSOAP, "Envelope", true},
		{"miss", apis.ScopeEntity, "Labels", false},
		{"empty", apis.ScopeEntity, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := strategy.NewScopeStrategy(reg, tc.scope)
			k, ok := s.TryResolve(tc.short)
			if ok != tc.want {
				t.Fatalf("TryResolve(%q) ok = %v, want %v", tc.short, ok, tc.want)
			}
			if ok && (k.Name != tc.short || k.Scope != tc.scope) {
				t.Fatalf("TryResolve(%q) = %s, want %s.%s", tc.short, k.QualifiedName(), tc.scope, tc.short)
			}
		})
	}
}

func TestScopeStrategy_NilRegistry(t *testing.T) {
	s := strategy.NewScopeStrategy(nil, apis.ScopeEntity)
	if _, ok := s.TryResolve("Label"); ok {
		t.Fatalf("TryResolve with nil registry: ok = true, want false")
	}
}

// A small concurrency smoke test to ensure ScopeStrategy + real registry behave well.
func TestScopeStrategy_Concurrent(t *testing.T) {
	reg := newRegistry(t)
	s := strategy.NewScopeStrategy(reg, apis.ScopeEntity)

	workers := runtime.GOMAXPROCS(0) * 4
	iters := 2000

	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan string, workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				if k, ok := s.TryResolve("Label"); !ok || k.Name != "Label" {
					errCh <- k.Name
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for got := range errCh {
		t.Fatalf("concurrent TryResolve mismatch: got %q", got)
	}
}
