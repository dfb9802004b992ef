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

// Package properties builds per-service property tables for entity kinds.
//
// Carrier entities list the same fields for every service they take part
// in and differ only in the XML namespace those fields are emitted under.
// The helpers below expand a field list into an apis.PropertySet covering
// the Standard services. Shipping is opted into per kind.
package properties

import (
	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/service"
)

// Standard returns the services every kind takes part in: all of them
// except Shipping.
func Standard() []service.Service {
	out := make([]service.Service, 0, len(service.All()))
	for _, svc := range service.All() {
		if svc != service.Shipping {
			out = append(out, svc)
		}
	}
	return out
}

// Domain maps the standard services to fields in each service's domain
// namespace.
func Domain(fields ...string) apis.PropertySet {
	return build(Standard(), fields, service.Service.DomainNamespace)
}

// DomainWithShipping is Domain extended to the Shipping service.
func DomainWithShipping(fields ...string) apis.PropertySet {
	return build(service.All(), fields, service.Service.DomainNamespace)
}

// Services maps the standard services to fields in each service's
// operations namespace. Request envelopes use it for their top-level fields.
func Services(fields ...string) apis.PropertySet {
	return build(Standard(), fields, service.Service.ServicesNamespace)
}

// Fixed maps the standard services to fields in the single namespace ns.
func Fixed(ns string, fields ...string) apis.PropertySet {
	return build(Standard(), fields, func(service.Service) string { return ns })
}

// Plain maps the standard services to fields without a namespace.
func Plain(fields ...string) apis.PropertySet {
	return Fixed("", fields...)
}

// Only restricts set to the listed services.
func Only(set apis.PropertySet, svcs ...service.Service) apis.PropertySet {
	out := make(apis.PropertySet, len(svcs))
	for _, svc := range svcs {
		if props, ok := set[svc]; ok {
			out[svc] = props
		}
	}
	return out
}

// Merge concatenates sets per service, in argument order.
func Merge(sets ...apis.PropertySet) apis.PropertySet {
	out := make(apis.PropertySet)
	for _, set := range sets {
		for svc, props := range set {
			out[svc] = append(out[svc], props...)
		}
	}
	return out
}

func build(svcs []service.Service, fields []string, ns func(service.Service) string) apis.PropertySet {
	out := make(apis.PropertySet, len(svcs))
	for _, svc := range svcs {
		props := make([]apis.Property, len(fields))
		for i, f := range fields {
			props[i] = apis.Property{Field: f, Namespace: ns(svc)}
		}
		out[svc] = props
	}
	return out
}
