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

	"github.com/containerd/errdefs"

	"dirpx.dev/postnl/entity/request"
	"dirpx.dev/postnl/entity/response"
	"dirpx.dev/postnl/service"
)

const deliveryDatePath = "/shipment/v2_2/calculate/date/delivery"

// GetDeliveryDate calculates the delivery date of a shipment sent on the
// shipping date of r.
func (c *Client) GetDeliveryDate(ctx context.Context, r *request.GetDeliveryDate) (*response.GetDeliveryDateResponse, error) {
	if r == nil || r.CalculateDeliveryDate == nil {
		return nil, fmt.Errorf("client: delivery date: missing CalculateDeliveryDate: %w", errdefs.ErrInvalidArgument)
	}
	params, err := requestFields(c.Codec(), r.CalculateDeliveryDate, service.DeliveryDate)
	if err != nil {
		return nil, err
	}
	q, err := query(params)
	if err != nil {
		return nil, err
	}
	if q.Get("CountryCode") == "" {
		q.Set("CountryCode", "NL")
	}

	req, err := c.newRequest(ctx, http.MethodGet, deliveryDatePath, q, nil, nil)
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
	if _, ok := m["DeliveryDate"]; !ok {
		return nil, invalidResponse("no DeliveryDate")
	}
	return decodeOne[*response.GetDeliveryDateResponse](c.Codec(), "GetDeliveryDateResponse", m)
}
