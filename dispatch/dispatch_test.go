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

package dispatch_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"golang.org/x/time/rate"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"dirpx.dev/postnl/dispatch"
)

func echoServer(t *testing.T, inflight, peak *int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(inflight, 1)
		defer atomic.AddInt64(inflight, -1)
		for {
			p := atomic.LoadInt64(peak)
			if n <= p || atomic.CompareAndSwapInt64(peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		if r.URL.Query().Get("fail") != "" {
			http.Error(w, "bad", http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, r.URL.Query().Get("v"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	assert.NilError(t, err)
	return req
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	assert.NilError(t, err)
	return string(b)
}

func TestSubmitOverwrites(t *testing.T) {
	var inflight, peak int64
	srv := echoServer(t, &inflight, &peak)
	d := dispatch.New(srv.Client())

	d.Submit("a", get(t, srv.URL+"?v=first"))
	d.Submit("b", get(t, srv.URL+"?v=b"))
	d.Submit("a", get(t, srv.URL+"?v=second"))
	assert.Equal(t, d.Len(), 2)

	res := d.ExecuteAll(context.Background())
	assert.Assert(t, is.Len(res, 2))
	assert.NilError(t, res["a"].Err)
	assert.Equal(t, body(t, res["a"].Response), "second")
	assert.Equal(t, body(t, res["b"].Response), "b")
	assert.Equal(t, d.Len(), 0)
}

func TestExecuteAll_Empty(t *testing.T) {
	d := dispatch.New(nil)
	res := d.ExecuteAll(context.Background())
	assert.Assert(t, is.Len(res, 0))
}

func TestExecuteAll_PartialFailure(t *testing.T) {
	var inflight, peak int64
	srv := echoServer(t, &inflight, &peak)
	d := dispatch.New(srv.Client())

	d.Submit("ok", get(t, srv.URL+"?v=1"))
	d.Submit("bad", get(t, srv.URL+"?fail=1"))
	d.Submit("down", get(t, "http://127.0.0.1:1/"))
	d.Submit("nil", nil)

	res := d.ExecuteAll(context.Background())
	assert.Assert(t, is.Len(res, 4))
	assert.Equal(t, res["ok"].Response.StatusCode, http.StatusOK)
	assert.Equal(t, res["bad"].Response.StatusCode, http.StatusBadRequest)
	assert.Assert(t, res["down"].Err != nil)
	assert.Assert(t, res["down"].Response == nil)
	assert.ErrorContains(t, res["nil"].Err, "nil request")
}

func TestExecuteAll_Concurrency(t *testing.T) {
	var inflight, peak int64
	srv := echoServer(t, &inflight, &peak)
	d := dispatch.New(srv.Client(), dispatch.WithConcurrency(2))

	for i := 0; i < 10; i++ {
		d.Submit(strconv.Itoa(i), get(t, srv.URL+"?v="+strconv.Itoa(i)))
	}
	res := d.ExecuteAll(context.Background())
	assert.Assert(t, is.Len(res, 10))
	for i := 0; i < 10; i++ {
		assert.Equal(t, body(t, res[strconv.Itoa(i)].Response), strconv.Itoa(i))
	}
	assert.Assert(t, atomic.LoadInt64(&peak) <= 2, "peak %d", peak)
}

func TestExecuteAll_LimiterCanceled(t *testing.T) {
	var inflight, peak int64
	srv := echoServer(t, &inflight, &peak)
	d := dispatch.New(srv.Client(), dispatch.WithLimiter(rate.NewLimiter(rate.Every(time.Hour), 1)))

	d.Submit("a", get(t, srv.URL+"?v=a"))
	d.Submit("b", get(t, srv.URL+"?v=b"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	res := d.ExecuteAll(ctx)
	assert.Assert(t, is.Len(res, 2))

	var failed int
	for _, r := range res {
		if r.Err != nil {
			failed++
		}
	}
	assert.Equal(t, failed, 1)
}

func TestExecuteAll_LogLevels(t *testing.T) {
	var inflight, peak int64
	srv := echoServer(t, &inflight, &peak)

	var (
		mu    sync.Mutex
		lines []string
	)
	log := funcr.New(func(prefix, args string) {
		mu.Lock()
		lines = append(lines, args)
		mu.Unlock()
	}, funcr.Options{Verbosity: 0})

	d := dispatch.New(srv.Client(), dispatch.WithLogger(log))
	d.Submit("ok", get(t, srv.URL+"?v=1"))
	d.Submit("down", get(t, "http://127.0.0.1:1/"))
	d.ExecuteAll(context.Background())

	joined := strings.Join(lines, "\n")
	assert.Check(t, is.Contains(joined, `"msg"="request failed"`))
	assert.Check(t, is.Contains(joined, `"key"="down"`))
	assert.Check(t, !strings.Contains(joined, "request done"), joined)
}
