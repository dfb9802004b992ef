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

	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/entity/request"
	"dirpx.dev/postnl/entity/response"
)

const timeframesPath = "/shipment/v2_1/calculate/timeframes"

func timeframeQuery(tf *entity.Timeframe) url.Values {
	q := url.Values{}
	set := func(key string, v *string) {
		if s := entity.Deref(v); s != "" {
			q.Set(key, s)
		}
	}
	q.Set("AllowSundaySorting", strconv.FormatBool(entity.Deref(tf.SundaySorting)))
	set("StartDate", tf.StartDate)
	set("EndDate", tf.EndDate)
	set("PostalCode", tf.PostalCode)
	set("HouseNumber", tf.HouseNr)
	set("HouseNrExt", tf.HouseNrExt)
	set("City", tf.City)
	set("Street", tf.Street)
	set("CountryCode", tf.CountryCode)
	set("TimeframeRange", tf.TimeframeRange)
	if tf.Interval != nil {
		q.Set("Interval", strconv.Itoa(*tf.Interval))
	}
	for _, o := range tf.Options {
		q.Add("Options", o)
	}
	if q.Get("CountryCode") == "" {
		q.Set("CountryCode", "NL")
	}
	return q
}

// GetTimeframes lists the delivery timeframes for the first Timeframe
// query of r.
func (c *Client) GetTimeframes(ctx context.Context, r *request.GetTimeframes) (*response.ResponseTimeframes, error) {
	if r == nil || len(r.Timeframe) == 0 || r.Timeframe[0] == nil {
		return nil, fmt.Errorf("client: timeframes: missing Timeframe: %w", errdefs.ErrInvalidArgument)
	}
	req, err := c.newRequest(ctx, http.MethodGet, timeframesPath, timeframeQuery(r.Timeframe[0]), nil, nil)
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
	_, hasTimeframes := m["Timeframes"]
	_, hasReasons := m["ReasonNotimeframes"]
	if !hasTimeframes && !hasReasons {
		return nil, invalidResponse("no Timeframes")
	}
	return decodeOne[*response.ResponseTimeframes](c.Codec(), "ResponseTimeframes", m)
}
