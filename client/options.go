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
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"dirpx.dev/postnl/codec"
	"dirpx.dev/postnl/entity"
)

// Opt is a configuration option to initialize a Client.
type Opt func(*Client) error

// WithAPIKey sets the key sent in the apikey header and as the SOAP
// UsernameToken password.
func WithAPIKey(key string) Opt {
	return func(c *Client) error {
		c.apiKey = key
		return nil
	}
}

// WithSandbox targets the sandbox API instead of the live one. It has no
// effect when WithBaseURL is given.
func WithSandbox(sandbox bool) Opt {
	return func(c *Client) error {
		c.sandbox = sandbox
		return nil
	}
}

// WithBaseURL overrides the API root, e.g. to point at a test server.
func WithBaseURL(base string) Opt {
	return func(c *Client) error {
		u, err := url.Parse(base)
		if err != nil {
			return fmt.Errorf("client: base url: %w: %w", err, errdefs.ErrInvalidArgument)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("client: base url %q: missing scheme or host: %w", base, errdefs.ErrInvalidArgument)
		}
		c.baseURL = u
		return nil
	}
}

// WithHTTPClient sets the HTTP client requests go through. Its transport
// is wrapped for tracing; the client itself is not modified.
func WithHTTPClient(hc *http.Client) Opt {
	return func(c *Client) error {
		if hc != nil {
			c.client = hc
		}
		return nil
	}
}

// WithCustomer sets the customer whose account requests are made for.
func WithCustomer(customer *entity.Customer) Opt {
	return func(c *Client) error {
		c.customer = customer
		return nil
	}
}

// WithGlobalPack sets the barcode type and range used for destinations
// outside the 3S country list.
func WithGlobalPack(typ, rng string) Opt {
	return func(c *Client) error {
		c.globalPack = GlobalPack{Type: strings.TrimSpace(typ), Range: strings.TrimSpace(rng)}
		return nil
	}
}

// WithMode selects REST or SOAP.
func WithMode(m Mode) Opt {
	return func(c *Client) error {
		if m != ModeREST && m != ModeSOAP {
			return fmt.Errorf("client: %v: %w", m, errdefs.ErrInvalidArgument)
		}
		c.mode = m
		return nil
	}
}

// WithConcurrency bounds the number of batch requests in flight.
func WithConcurrency(n int) Opt {
	return func(c *Client) error {
		if n < 1 {
			return fmt.Errorf("client: concurrency %d: %w", n, errdefs.ErrInvalidArgument)
		}
		c.concurrency = n
		return nil
	}
}

// WithRateLimit paces all requests of the client to perSecond requests per
// second with the given burst. perSecond <= 0 disables pacing.
func WithRateLimit(perSecond float64, burst int) Opt {
	return func(c *Client) error {
		if perSecond <= 0 {
			c.limiter = nil
			return nil
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		return nil
	}
}

// WithLogger sets the client logger.
func WithLogger(l logr.Logger) Opt {
	return func(c *Client) error {
		c.log = l
		return nil
	}
}

// WithCodec sets the codec instead of the process-wide one.
func WithCodec(cd *codec.Codec) Opt {
	return func(c *Client) error {
		c.codec = cd
		return nil
	}
}

// WithUserAgent sets the User-Agent header. An empty ua sends none.
func WithUserAgent(ua string) Opt {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// WithTraceProvider sets the trace provider of the instrumented transport.
func WithTraceProvider(provider trace.TracerProvider) Opt {
	return WithTraceOptions(otelhttp.WithTracerProvider(provider))
}

// WithTraceOptions adds options of the instrumented transport.
func WithTraceOptions(opts ...otelhttp.Option) Opt {
	return func(c *Client) error {
		c.traceOpts = append(c.traceOpts, opts...)
		return nil
	}
}
