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

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/containerd/errdefs"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"

	"dirpx.dev/postnl/internal/fakecarrier"
)

const testAPIKey = "cli-key"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"POSTNL_CONFIG", "POSTNL_API_KEY", "POSTNL_SANDBOX", "POSTNL_MODE",
		"POSTNL_CUSTOMER_CODE", "POSTNL_CUSTOMER_NUMBER",
	} {
		t.Setenv(k, "")
	}
}

// run executes the command line against the fake carrier at url.
func run(t *testing.T, url string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand(newPostnlCli(&out, &errOut))
	cmd.SetArgs(append([]string{"--base-url", url, "--api-key", testAPIKey}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func setup(t *testing.T) (*fakecarrier.Server, string) {
	t.Helper()
	clearEnv(t)
	t.Setenv("POSTNL_CUSTOMER_CODE", "DEVC")
	t.Setenv("POSTNL_CUSTOMER_NUMBER", "11223344")
	fake, srv := fakecarrier.Start(t, testAPIKey)
	return fake, srv.URL
}

func TestBarcodeGenerate(t *testing.T) {
	fake, url := setup(t)

	out, _, err := run(t, url, "barcode", "generate")
	assert.NilError(t, err)
	assert.Equal(t, out, "The generated 3S barcode is: 3SDEVC000000001\n")

	out, _, err = run(t, url, "barcode", "generate", "2s")
	assert.NilError(t, err)
	assert.Equal(t, out, "The generated 2S barcode is: 2SDEVC000000002\n")
	reqs := fake.Requests()
	assert.Equal(t, reqs[len(reqs)-1].Query.Get("Serie"), "0000000-9999999")
}

func TestBarcodeGenerate_SOAP(t *testing.T) {
	fake, url := setup(t)

	out, _, err := run(t, url, "--mode", "soap", "barcode", "generate")
	assert.NilError(t, err)
	assert.Equal(t, out, "The generated 3S barcode is: 3SDEVC000000001\n")
	assert.Check(t, fake.Requests()[0].IsSOAP())
}

func TestBarcodeCountry(t *testing.T) {
	_, url := setup(t)

	out, _, err := run(t, url, "barcode", "country", "be")
	assert.NilError(t, err)
	assert.Equal(t, out, "The generated barcode for BE: 3SDEVC000000001\n")

	_, _, err = run(t, url, "barcode", "country", "US")
	assert.Check(t, errdefs.IsFailedPrecondition(err), "got %v", err)
}

func TestBarcodeBatch(t *testing.T) {
	_, url := setup(t)

	out, _, err := run(t, url, "barcode", "batch", "--country", "NL,DE", "--amount", "2,1")
	assert.NilError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Assert(t, is.Len(lines, 3), out)
	assert.Check(t, strings.HasPrefix(lines[0], "Country"))
	assert.Check(t, strings.HasPrefix(lines[1], "DE "))
	assert.Check(t, is.Equal(strings.Count(lines[1], "3SDEVC"), 1))
	assert.Check(t, strings.HasPrefix(lines[2], "NL "))
	assert.Check(t, is.Equal(strings.Count(lines[2], "3SDEVC"), 2))
}

func TestBarcodeBatch_MismatchedFlags(t *testing.T) {
	fake, url := setup(t)

	_, _, err := run(t, url, "barcode", "batch", "--country", "NL,DE", "--amount", "2")
	assert.Check(t, is.ErrorContains(err, "must match"))
	assert.Check(t, is.Len(fake.Requests(), 0))
}

func TestSignature(t *testing.T) {
	fake, url := setup(t)

	out, _, err := run(t, url, "signature", "3SDEVC000000001")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "3SDEVC000000001"))
	assert.Check(t, is.Contains(out, "30-06-2024 14:21:00"))

	fake.Forget("3SDEVC000000002")
	_, _, err = run(t, url, "signature", "3SDEVC000000002")
	assert.Check(t, errdefs.IsNotFound(err), "got %v", err)
}

func TestStatus(t *testing.T) {
	_, url := setup(t)

	out, _, err := run(t, url, "status", "3SDEVC000000001")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "Zending afgeleverd"))
}

func TestConfigFile(t *testing.T) {
	_, url := setup(t)
	clearEnv(t)
	f := fs.NewFile(t, "postnl", fs.WithContent(`
customer {
  number = "11223344"
  code   = "ABCD"
}
`))

	out, _, err := run(t, url, "--config", f.Path(), "barcode", "generate")
	assert.NilError(t, err)
	assert.Equal(t, out, "The generated 3S barcode is: 3SABCD000000001\n")
}

func TestMissingAPIKey(t *testing.T) {
	clearEnv(t)
	var out, errOut bytes.Buffer
	cmd := newRootCommand(newPostnlCli(&out, &errOut))
	cmd.SetArgs([]string{"--base-url", "http://127.0.0.1:1", "signature", "3SDEVC000000001"})
	err := cmd.Execute()
	assert.Check(t, is.ErrorContains(err, "no API key"))
}

func TestVerboseLogs(t *testing.T) {
	_, url := setup(t)

	_, logs, err := run(t, url, "-vv", "barcode", "generate")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(logs, "client ready"))
}
