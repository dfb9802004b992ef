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

package apis

import (
	"fmt"
	"strings"
)

// Scope is a logical namespace of the entity catalog. Short wire names are
// resolved by searching scopes in a fixed order.
type Scope int

const (
	// ScopeEntity holds general data entities (Address, Shipment, ...).
	ScopeEntity Scope = iota
	// ScopeMessage holds message headers.
	ScopeMessage
	// ScopeRequest holds request envelopes.
	ScopeRequest
	// ScopeResponse holds response envelopes.
	ScopeResponse
	// ScopeSOAP holds protocol envelope entities.
	ScopeSOAP
)

// String returns the lower-case token of sc.
func (sc Scope) String() string {
	switch sc {
	case ScopeEntity:
		return "entity"
	case ScopeMessage:
		return "message"
	case ScopeRequest:
		return "request"
	case ScopeResponse:
		return "response"
	case ScopeSOAP:
		return "soap"
	default:
		return fmt.Sprintf("unknown(%d)", sc)
	}
}

// ParseScope converts a token produced by String back into a Scope.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entity":
		return ScopeEntity, nil
	case "message":
		return ScopeMessage, nil
	case "request":
		return ScopeRequest, nil
	case "response":
		return ScopeResponse, nil
	case "soap":
		return ScopeSOAP, nil
	default:
		return ScopeEntity, fmt.Errorf("apis: unknown scope %q", s)
	}
}
