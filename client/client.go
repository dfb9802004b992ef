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

// Package client talks to the PostNL carrier API.
//
// A Client is created with New and configured through Opt values:
//
//	cli, err := client.New(
//		client.WithAPIKey(os.Getenv("POSTNL_API_KEY")),
//		client.WithSandbox(true),
//		client.WithCustomer(entity.NewCustomer("11223344", "DEVC")),
//	)
//	barcode, err := cli.GenerateBarcodeByCountryCode(ctx, "NL")
//
// Requests and responses are entities of dirpx.dev/postnl/entity,
// serialized by the codec. REST is the default transport; WithMode(ModeSOAP)
// switches the barcode operations to SOAP envelopes.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"dirpx.dev/postnl"
	"dirpx.dev/postnl/codec"
	"dirpx.dev/postnl/dispatch"
	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/wire"
)

// Base URLs of the carrier API.
const (
	LiveURL    = "https://api.postnl.nl"
	SandboxURL = "https://api-sandbox.postnl.nl"
)

// DefaultUserAgent is sent when no WithUserAgent option is given.
const DefaultUserAgent = "postnl-go"

// Mode selects the wire protocol of the operations that support both.
type Mode int

const (
	// ModeREST sends JSON over the REST endpoints.
	ModeREST Mode = iota
	// ModeSOAP sends SOAP envelopes.
	ModeSOAP
)

func (m Mode) String() string {
	switch m {
	case ModeREST:
		return "rest"
	case ModeSOAP:
		return "soap"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "rest" or "soap", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rest", "":
		return ModeREST, nil
	case "soap":
		return ModeSOAP, nil
	}
	return ModeREST, fmt.Errorf("client: unknown mode %q: %w", s, errdefs.ErrInvalidArgument)
}

// GlobalPack holds the barcode type and range used for destinations
// outside the 3S country list.
type GlobalPack struct {
	Type  string
	Range string
}

// Client is a carrier API client. It is safe for concurrent use.
type Client struct {
	baseURL     *url.URL
	sandbox     bool
	apiKey      string
	customer    *entity.Customer
	globalPack  GlobalPack
	mode        Mode
	userAgent   string
	client      *http.Client
	codec       *codec.Codec
	log         logr.Logger
	concurrency int
	limiter     *rate.Limiter
	traceOpts   []otelhttp.Option
}

// New returns a Client configured by opts. Without options it targets the
// live API over REST.
func New(opts ...Opt) (*Client, error) {
	c := &Client{
		userAgent:   DefaultUserAgent,
		client:      &http.Client{},
		log:         logr.Discard(),
		concurrency: dispatch.DefaultConcurrency,
	}
	for _, op := range opts {
		if op == nil {
			continue
		}
		if err := op(c); err != nil {
			return nil, err
		}
	}
	if c.baseURL == nil {
		base := LiveURL
		if c.sandbox {
			base = SandboxURL
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, err
		}
		c.baseURL = u
	}

	hc := *c.client
	transport := hc.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	hc.Transport = otelhttp.NewTransport(transport, c.traceOpts...)
	c.client = &hc
	return c, nil
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// Mode returns the configured wire protocol.
func (c *Client) Mode() Mode { return c.mode }

// Customer returns the configured customer, or nil.
func (c *Client) Customer() *entity.Customer { return c.customer }

// Codec returns the codec used for (de)serialization: the one set with
// WithCodec, or the process-wide codec.
func (c *Client) Codec() *codec.Codec {
	if c.codec != nil {
		return c.codec
	}
	return postnl.Codec()
}

func (c *Client) dispatcher() *dispatch.Dispatcher {
	return dispatch.New(c.client,
		dispatch.WithConcurrency(c.concurrency),
		dispatch.WithLimiter(c.limiter),
		dispatch.WithLogger(c.log),
	)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, headers http.Header) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range headers {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}
	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	b, err := wire.Marshal(body)
	if err != nil {
		return nil, err
	}
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json;charset=UTF-8")
	return c.newRequest(ctx, method, path, query, bytes.NewReader(b), hdr)
}

// do sends req and returns the response of a successful request. Error
// responses are turned into a *CarrierError and their body is closed.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	c.log.V(2).Info("request", "method", req.Method, "url", req.URL.String())
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w: %w", req.Method, req.URL.Path, err, errdefs.ErrUnavailable)
	}
	c.log.V(2).Info("response", "url", req.URL.String(), "status", resp.StatusCode)
	if err := checkResponseErr(c.Codec(), resp); err != nil {
		ensureReaderClosed(resp)
		return nil, err
	}
	return resp, nil
}

// ensureReaderClosed drains and closes the body of resp.
func ensureReaderClosed(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.CopyN(io.Discard, resp.Body, 512)
	_ = resp.Body.Close()
}

// readJSON decodes the JSON object in the body of resp and closes it.
func readJSON(resp *http.Response) (map[string]any, error) {
	defer ensureReaderClosed(resp)
	v, err := wire.Decode(resp.Body)
	if err != nil {
		return nil, invalidResponse("decode body: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalidResponse("body is %T, want object", v)
	}
	return m, nil
}
