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
	"net/http"
)

// runBatch builds one request per key, sends them through a dispatcher and
// processes every response. Build failures and transport errors end up in
// the result of their key.
func runBatch[T any](ctx context.Context, c *Client, keys []string, build func(i int) (*http.Request, error), process func(*http.Response) (T, error)) map[string]Result[T] {
	out := make(map[string]Result[T], len(keys))
	d := c.dispatcher()
	for i, key := range keys {
		req, err := build(i)
		if err != nil {
			out[key] = failed[T](err)
			continue
		}
		d.Submit(key, req)
	}
	if d.Len() == 0 {
		return out
	}

	cd := c.Codec()
	done := d.ExecuteAll(ctx)
	for key, res := range done {
		if res.Err != nil {
			out[key] = failed[T](res.Err)
			continue
		}
		if err := checkResponseErr(cd, res.Response); err != nil {
			ensureReaderClosed(res.Response)
			out[key] = failed[T](err)
			continue
		}
		v, err := process(res.Response)
		if err != nil {
			out[key] = failed[T](err)
			continue
		}
		out[key] = succeeded(v)
	}
	c.log.V(0).Info("batch executed", "requests", len(keys), "sent", len(done))
	return out
}
