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

package apis

import (
	"context"
	"net/http"
)

// DispatchResult is the outcome of one queued request. Exactly one of
// Response and Err is set.
type DispatchResult struct {
	Response *http.Response
	Err      error
}

// Dispatcher batches independent requests under caller-chosen keys.
type Dispatcher interface {
	// Submit queues req under key, replacing any request already queued
	// under the same key.
	Submit(key string, req *http.Request)
	// Len returns the number of queued requests.
	Len() int
	// ExecuteAll issues every queued request and returns one result per key.
	// The queue is empty afterwards.
	ExecuteAll(ctx context.Context) map[string]DispatchResult
}
