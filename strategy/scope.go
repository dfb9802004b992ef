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

package strategy

import (
	"dirpx.dev/postnl/apis"
)

// NewScopeStrategy creates an apis.Strategy that looks names up in one
// scope of reg.
func NewScopeStrategy(reg apis.Registry, scope apis.Scope) apis.Strategy {
	return &scopeStrategy{reg: reg, scope: scope}
}

// scopeStrategy consults a provided apis.Registry for a single scope.
type scopeStrategy struct {
	reg   apis.Registry
	scope apis.Scope
}

// Ensure scopeStrategy implements apis.Strategy.
var _ apis.Strategy = (*scopeStrategy)(nil)

// TryResolve looks name up in the strategy's scope.
func (s *scopeStrategy) TryResolve(name string) (apis.Kind, bool) {
	if name == "" || s.reg == nil {
		return apis.Kind{}, false
	}
	return s.reg.Lookup(s.scope, name)
}
