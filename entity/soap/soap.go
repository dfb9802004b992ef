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

// Package soap defines the protocol envelope entities of the SOAP API.
package soap

import (
	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/properties"
)

// XML namespaces of the SOAP envelope and of WS-Security headers.
const (
	EnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	SecurityNamespace = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
)

// tokenUsername is the fixed user name of a UsernameToken; the carrier
// only checks the password.
const tokenUsername = "devc_!R4xc8p9"

// Security is the WS-Security header carrying the API credentials.
type Security struct {
	entity.Base
	UsernameToken *UsernameToken
}

// UsernameToken holds the credentials of a Security header.
type UsernameToken struct {
	entity.Base
	Username *string
	Password *string
}

// NewSecurity returns a Security header carrying apiKey as the password.
func NewSecurity(apiKey string) *Security {
	tok := entity.New[UsernameToken]()
	tok.Username = entity.String(tokenUsername)
	tok.Password = entity.String(apiKey)
	s := entity.New[Security]()
	s.UsernameToken = tok
	return s
}

// Fault is a SOAP 1.1 fault body.
type Fault struct {
	entity.Base
	FaultCode   *string `wire:"faultcode"`
	FaultString *string `wire:"faultstring"`
	Detail      *string `wire:"detail"`
}

// Register adds the envelope kinds to reg.
func Register(reg apis.Registry) error {
	return entity.RegisterAll(reg,
		entity.Define[Security](apis.ScopeSOAP, properties.Fixed(SecurityNamespace, "UsernameToken")),
		entity.Define[UsernameToken](apis.ScopeSOAP, properties.Fixed(SecurityNamespace, "Username", "Password")),
		entity.Define[Fault](apis.ScopeSOAP, properties.Plain("faultcode", "faultstring", "detail")),
	)
}
