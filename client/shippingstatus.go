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
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/containerd/errdefs"

	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/entity/request"
	"dirpx.dev/postnl/entity/response"
)

const (
	signaturePath = "/shipment/v2/status/signature/"
	statusPath    = "/shipment/v2/status/barcode/"
)

func shipmentBarcode(op string, s *entity.Shipment) (string, error) {
	if s == nil || entity.Deref(s.Barcode) == "" {
		return "", fmt.Errorf("client: %s: missing barcode: %w", op, errdefs.ErrInvalidArgument)
	}
	return *s.Barcode, nil
}

func (c *Client) buildSignatureRequest(ctx context.Context, r *request.GetSignature) (*http.Request, error) {
	if r == nil {
		return nil, fmt.Errorf("client: signature: nil request: %w", errdefs.ErrInvalidArgument)
	}
	barcode, err := shipmentBarcode("signature", r.Shipment)
	if err != nil {
		return nil, err
	}
	return c.newRequest(ctx, http.MethodGet, signaturePath+url.PathEscape(barcode), nil, nil, nil)
}

func (c *Client) processSignatureResponse(resp *http.Response) (*response.GetSignatureResponseSignature, error) {
	m, err := readJSON(resp)
	if err != nil {
		return nil, err
	}
	raw, ok := m["Signature"]
	if !ok {
		return nil, invalidResponse("no Signature")
	}
	return decodeOne[*response.GetSignatureResponseSignature](c.Codec(), "GetSignatureResponseSignature", raw)
}

// GetSignature fetches the delivery signature of the shipment of r.
func (c *Client) GetSignature(ctx context.Context, r *request.GetSignature) (*response.GetSignatureResponseSignature, error) {
	req, err := c.buildSignatureRequest(ctx, r)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return c.processSignatureResponse(resp)
}

// GetSignatures fetches signatures concurrently. Results are keyed by the
// entity id of each request.
func (c *Client) GetSignatures(ctx context.Context, rs []*request.GetSignature) map[string]Result[*response.GetSignatureResponseSignature] {
	return runBatch(ctx, c, batchKeys(rs),
		func(i int) (*http.Request, error) { return c.buildSignatureRequest(ctx, rs[i]) },
		c.processSignatureResponse,
	)
}

// GetCurrentStatus fetches the current status of the shipment of r.
func (c *Client) GetCurrentStatus(ctx context.Context, r *request.CurrentStatus) (*response.CurrentStatusResponse, error) {
	if r == nil {
		return nil, fmt.Errorf("client: status: nil request: %w", errdefs.ErrInvalidArgument)
	}
	barcode, err := shipmentBarcode("status", r.Shipment)
	if err != nil {
		return nil, err
	}
	q := url.Values{"detail": {"false"}, "language": {"NL"}}
	req, err := c.newRequest(ctx, http.MethodGet, statusPath+url.PathEscape(barcode), q, nil, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	m, err := readJSON(resp)
	if err != nil {
		return nil, err
	}
	cs, ok := m["CurrentStatus"].(map[string]any)
	if !ok {
		return nil, invalidResponse("no CurrentStatus")
	}

	cd := c.Codec()
	out := entity.New[response.CurrentStatusResponse]()
	if out.Shipments, err = decodeAll[*response.CurrentStatusResponseShipment](cd, "CurrentStatusResponseShipment", cs["Shipment"]); err != nil {
		return nil, err
	}
	if out.Warnings, err = decodeAll[*entity.Warning](cd, "Warning", cs["Warnings"]); err != nil {
		return nil, err
	}
	if len(out.Shipments) == 0 {
		return nil, invalidResponse("no shipment in CurrentStatus")
	}
	return out, nil
}
