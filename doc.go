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

// Package postnl is a client toolkit for the PostNL carrier API.
//
// At its core sits a generic entity model. Every domain object (Shipment,
// Address, request and response envelopes, SOAP headers) is a plain struct
// embedding entity.Base, registered under a short wire name in one of five
// scopes: entity, message, request, response and soap. The codec turns
// those structs into generic JSON values (map[string]any) and XML element
// trees (wire.Node) and back, driven entirely by the registry:
//
//   - Which fields are emitted, in which order and under which XML
//     namespace depends on the service context ("Barcode", "Confirming",
//     ...) the entity was bound to with entity.SetService.
//   - On the way in, a wire tag is resolved to a kind by searching the
//     scopes in order. Collection tags fall back to their singular form
//     ("Warnings" -> "Warning", and in XML "Addresses" -> "Address").
//
// # Global state
//
// The package keeps a process-wide snapshot of config, registry, resolver,
// builder and codec. Reads are lock-free atomic loads:
//
//	v, err := postnl.ToJSONValue(shipment)
//	k, ok := postnl.Resolve("Shipment")
//
// Writers (SetConfig, SetBuilder, SetExt, SetRegistry, SetResolver,
// SetLogger, SetAll) take a build mutex, assemble a new snapshot and swap
// it in. A registry or resolver installed with SetRegistry or SetResolver
// is pinned: later rebuilds keep it until UnpinRegistry or UnpinResolver.
//
// Extra kinds are added through SetExt with an apis.Catalog (or a slice of
// them), which the builder runs on every rebuild, or once with Register.
//
// # Talking to the carrier
//
// Package client wraps the REST and SOAP endpoints on top of the codec and
// package dispatch, which runs batches of independent requests
// concurrently. cmd/postnl is a small command line front end.
package postnl
