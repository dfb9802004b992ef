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

package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/entity/soap"
	"dirpx.dev/postnl/service"
	"dirpx.dev/postnl/wire"
)

// soapAction returns the SOAPAction header of operation op of svc.
func soapAction(svc service.Service, op string) string {
	return fmt.Sprintf("%sI%s/%s", svc.ServicesNamespace(), svc.WebService(), op)
}

// newSOAPRequest wraps body, bound to svc, in an envelope carrying the
// client credentials and posts it to path.
func (c *Client) newSOAPRequest(ctx context.Context, path string, svc service.Service, op string, body apis.Entity) (*http.Request, error) {
	cd := c.Codec()
	sec := soap.NewSecurity(c.apiKey)
	entity.SetService(sec, svc)
	entity.SetService(body, svc)

	header, err := cd.XMLElement(sec, soap.SecurityNamespace)
	if err != nil {
		return nil, err
	}
	payload, err := cd.XMLElement(body, svc.ServicesNamespace())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := wire.NewWriter(&buf, map[string]string{
		soap.EnvelopeNamespace:  "soap",
		soap.SecurityNamespace:  "wsse",
		svc.ServicesNamespace(): "services",
		svc.DomainNamespace():   "domain",
		wire.ArraysNamespace:    "arr",
	})
	w.StartElement(wire.Clark(soap.EnvelopeNamespace, "Envelope"))
	w.WriteNodes(
		wire.Node{Name: wire.Clark(soap.EnvelopeNamespace, "Header"), Value: []wire.Node{header}},
		wire.Node{Name: wire.Clark(soap.EnvelopeNamespace, "Body"), Value: []wire.Node{payload}},
	)
	w.EndElement()
	if err := w.Flush(); err != nil {
		return nil, err
	}

	hdr := http.Header{}
	hdr.Set("Content-Type", "text/xml;charset=UTF-8")
	hdr.Set("Accept", "text/xml")
	hdr.Set("SOAPAction", `"`+soapAction(svc, op)+`"`)
	return c.newRequest(ctx, http.MethodPost, path, nil, &buf, hdr)
}

// readSOAP parses the envelope in the body of resp, closes it and returns
// the first element of the SOAP body.
func readSOAP(resp *http.Response) (wire.Node, error) {
	defer ensureReaderClosed(resp)
	env, err := wire.ParseXML(resp.Body)
	if err != nil {
		return wire.Node{}, invalidResponse("parse envelope: %v", err)
	}
	body, ok := env.Find("Body")
	if !ok || len(body.Children()) == 0 {
		return wire.Node{}, invalidResponse("envelope without body")
	}
	first := body.Children()[0]
	if wire.LocalName(first.Name) == "Fault" {
		code, msg := "", ""
		if f, ok := first.Find("faultcode"); ok {
			code = f.Text()
		}
		if f, ok := first.Find("faultstring"); ok {
			msg = f.Text()
		}
		return wire.Node{}, &CarrierError{StatusCode: resp.StatusCode, Code: code, Message: msg}
	}
	return first, nil
}
