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
	"strconv"

	"github.com/containerd/errdefs"

	"dirpx.dev/postnl/entity/message"
	"dirpx.dev/postnl/entity/request"
	"dirpx.dev/postnl/entity/response"
	"dirpx.dev/postnl/service"
)

const labelPath = "/shipment/v2_2/label"

func (c *Client) buildLabelRequest(ctx context.Context, r *request.GenerateLabel, confirm bool) (*http.Request, error) {
	if r == nil || len(r.Shipments) == 0 {
		return nil, fmt.Errorf("client: generate label: no shipments: %w", errdefs.ErrInvalidArgument)
	}
	cp := *r
	cp.Customer = c.customerOr(r.Customer)
	if cp.Customer == nil {
		return nil, fmt.Errorf("client: generate label: no customer configured: %w", errdefs.ErrFailedPrecondition)
	}
	if cp.Message == nil {
		cp.Message = message.NewLabelling("")
	}
	body, err := requestFields(c.Codec(), &cp, service.Labelling)
	if err != nil {
		return nil, err
	}
	q := url.Values{"confirm": {strconv.FormatBool(confirm)}}
	return c.newJSONRequest(ctx, http.MethodPost, labelPath, q, body)
}

func (c *Client) processLabelResponse(resp *http.Response) (*response.GenerateLabelResponse, error) {
	m, err := readJSON(resp)
	if err != nil {
		return nil, err
	}
	if _, ok := m["ResponseShipments"]; !ok {
		return nil, invalidResponse("no ResponseShipments")
	}
	return decodeOne[*response.GenerateLabelResponse](c.Codec(), "GenerateLabelResponse", m)
}

// GenerateLabel requests the labels of the shipments of r. With confirm
// set the shipments are confirmed in the same call.
func (c *Client) GenerateLabel(ctx context.Context, r *request.GenerateLabel, confirm bool) (*response.GenerateLabelResponse, error) {
	req, err := c.buildLabelRequest(ctx, r, confirm)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return c.processLabelResponse(resp)
}

// GenerateLabels requests labels concurrently. Results are keyed by the
// entity id of each request.
func (c *Client) GenerateLabels(ctx context.Context, rs []*request.GenerateLabel, confirm bool) map[string]Result[*response.GenerateLabelResponse] {
	return runBatch(ctx, c, batchKeys(rs),
		func(i int) (*http.Request, error) { return c.buildLabelRequest(ctx, rs[i], confirm) },
		c.processLabelResponse,
	)
}
