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

// Package dispatch batches independent HTTP requests and issues them
// concurrently, correlating every response with the key it was queued
// under.
package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"dirpx.dev/postnl/apis"
)

// DefaultConcurrency is the number of requests in flight when no
// WithConcurrency option is given.
const DefaultConcurrency = 4

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithConcurrency bounds the number of requests in flight. n < 1 selects
// DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(d *Dispatcher) {
		if n < 1 {
			n = DefaultConcurrency
		}
		d.concurrency = n
	}
}

// WithLimiter paces outgoing requests with l.
func WithLimiter(l *rate.Limiter) Option {
	return func(d *Dispatcher) { d.limiter = l }
}

// WithLogger sets the logger used for per-request diagnostics.
func WithLogger(l logr.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// Dispatcher implements apis.Dispatcher over an *http.Client.
type Dispatcher struct {
	client      *http.Client
	concurrency int
	limiter     *rate.Limiter
	log         logr.Logger

	mu    sync.Mutex
	queue map[string]*http.Request
	order []string
}

var _ apis.Dispatcher = (*Dispatcher)(nil)

// New returns an empty Dispatcher sending through client
// (http.DefaultClient when nil).
func New(client *http.Client, opts ...Option) *Dispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	d := &Dispatcher{
		client:      client,
		concurrency: DefaultConcurrency,
		log:         logr.Discard(),
		queue:       make(map[string]*http.Request),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Submit queues req under key. A request already queued under key is
// replaced.
func (d *Dispatcher) Submit(key string, req *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.queue[key]; !ok {
		d.order = append(d.order, key)
	}
	d.queue[key] = req
}

// Len returns the number of queued requests.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

func (d *Dispatcher) drain() ([]string, map[string]*http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	keys, queue := d.order, d.queue
	d.order, d.queue = nil, make(map[string]*http.Request)
	return keys, queue
}

// ExecuteAll sends every queued request and waits for all of them. The
// result map has one entry per queued key; a failing request does not
// affect the others. Response bodies are read in full, so callers may read
// them after ctx is done. The queue is empty afterwards.
func (d *Dispatcher) ExecuteAll(ctx context.Context) map[string]apis.DispatchResult {
	keys, queue := d.drain()
	results := make(map[string]apis.DispatchResult, len(keys))
	if len(keys) == 0 {
		return results
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(d.concurrency)
	for _, key := range keys {
		req := queue[key]
		g.Go(func() error {
			res := d.do(ctx, key, req)
			mu.Lock()
			results[key] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (d *Dispatcher) do(ctx context.Context, key string, req *http.Request) apis.DispatchResult {
	if req == nil {
		return apis.DispatchResult{Err: fmt.Errorf("dispatch: %s: nil request", key)}
	}
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return apis.DispatchResult{Err: fmt.Errorf("dispatch: %s: %w", key, err)}
		}
	}

	resp, err := d.client.Do(req.WithContext(ctx))
	if err != nil {
		d.log.Info("request failed", "key", key, "url", req.URL.String(), "error", err.Error())
		return apis.DispatchResult{Err: fmt.Errorf("dispatch: %s: %w", key, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apis.DispatchResult{Err: fmt.Errorf("dispatch: %s: read body: %w", key, err)}
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	d.log.V(2).Info("request done", "key", key, "status", resp.StatusCode, "bytes", len(body))
	return apis.DispatchResult{Response: resp}
}
