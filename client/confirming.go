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
	"strconv"

	"github.com/containerd/errdefs"

	"dirpx.dev/postnl/entity/message"
	"dirpx.dev/postnl/entity/request"
	"dirpx.dev/postnl/entity/response"
	"dirpx.dev/postnl/service"
)

const confirmPath = "/shipment/v1_10/confirm"

func (c *Client) buildConfirmRequest(ctx context.Context, r *request.Confirming) (*http.Request, error) {
	if r == nil || len(r.Shipments) == 0 {
		return nil, fmt.Errorf("client: confirm: no shipments: %w", errdefs.ErrInvalidArgument)
	}
	cp := *r
	cp.Customer = c.customerOr(r.Customer)
	if cp.Customer == nil {
		return nil, fmt.Errorf("client: confirm: no customer configured: %w", errdefs.ErrFailedPrecondition)
	}
	if cp.Message == nil {
		cp.Message = message.New()
	}
	body, err := requestFields(c.Codec(), &cp, service.Confirming)
	if err != nil {
		return nil, err
	}
	return c.newJSONRequest(ctx, http.MethodPost, confirmPath, nil, body)
}

func (c *Client) processConfirmResponse(resp *http.Response) ([]*response.ConfirmingResponseShipment, error) {
	m, err := readJSON(resp)
	if err != nil {
		return nil, err
	}
	raw, ok := m["ConfirmingResponseShipments"]
	if !ok {
		return nil, invalidResponse("no ConfirmingResponseShipments")
	}
	return decodeAll[*response.ConfirmingResponseShipment](c.Codec(), "ConfirmingResponseShipment", raw)
}

// ConfirmShipment confirms the shipments of r, whose labels were printed
// without confirmation. The customer of r defaults to the configured one.
func (c *Client) ConfirmShipment(ctx context.Context, r *request.Confirming) ([]*response.ConfirmingResponseShipment, error) {
	req, err := c.buildConfirmRequest(ctx, r)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return c.processConfirmResponse(resp)
}

// ConfirmShipments sends the confirmations concurrently. Results are keyed
// by the entity id of each request.
func (c *Client) ConfirmShipments(ctx context.Context, rs []*request.Confirming) map[string]Result[[]*response.ConfirmingResponseShipment] {
	return runBatch(ctx, c, batchKeys(rs),
		func(i int) (*http.Request, error) { return c.buildConfirmRequest(ctx, rs[i]) },
		c.processConfirmResponse,
	)
}

// batchKeys returns the entity ids of rs; nil entries get a positional key.
func batchKeys[T any, PT interface {
	*T
	EntityID() string
}](rs []PT) []string {
	keys := make([]string, len(rs))
	for i, r := range rs {
		if r != nil {
			keys[i] = r.EntityID()
		} else {
			keys[i] = "#" + strconv.Itoa(i)
		}
	}
	return keys
}
