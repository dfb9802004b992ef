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

package fakecarrier_test

import (
	"io"
	"net/http"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"dirpx.dev/postnl/internal/fakecarrier"
	"dirpx.dev/postnl/wire"
)

func get(t *testing.T, url, apiKey string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	assert.NilError(t, err)
	req.Header.Set("apikey", apiKey)
	resp, err := http.DefaultClient.Do(req)
	assert.NilError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	assert.NilError(t, err)
	return resp.StatusCode, body
}

func TestBarcode(t *testing.T) {
	fake, srv := fakecarrier.Start(t, "k")
	url := srv.URL + "/shipment/v1_1/barcode?CustomerCode=DEVC&CustomerNumber=1&Type=3S&Serie=0-9"

	status, body := get(t, url, "k")
	assert.Equal(t, status, http.StatusOK)
	v, err := wire.Unmarshal(body)
	assert.NilError(t, err)
	assert.DeepEqual(t, v, map[string]any{"Barcode": "3SDEVC000000001"})
	assert.Check(t, is.Len(fake.Requests(), 1))

	status, _ = get(t, srv.URL+"/shipment/v1_1/barcode?Type=3S", "k")
	assert.Equal(t, status, http.StatusBadRequest)
}

func TestAuthenticate(t *testing.T) {
	_, srv := fakecarrier.Start(t, "k")

	status, body := get(t, srv.URL+"/shipment/v2/status/signature/3S1", "nope")
	assert.Equal(t, status, http.StatusUnauthorized)
	assert.Check(t, is.Contains(string(body), "steps.oauth.v2.FailedToResolveAPIKey"))
}

func TestDownAndForget(t *testing.T) {
	fake, srv := fakecarrier.Start(t, "k")

	fake.SetDown(true)
	status, body := get(t, srv.URL+"/shipment/v2/status/signature/3S1", "k")
	assert.Equal(t, status, http.StatusOK)
	assert.Check(t, is.Len(body, 0))

	fake.SetDown(false)
	fake.Forget("3S1")
	status, _ = get(t, srv.URL+"/shipment/v2/status/signature/3S1", "k")
	assert.Equal(t, status, http.StatusNotFound)
}
