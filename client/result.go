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

// Result is the outcome of one request of a batch.
type Result[T any] struct {
	Value T
	Err   error
}

func succeeded[T any](v T) Result[T] { return Result[T]{Value: v} }

func failed[T any](err error) Result[T] { return Result[T]{Err: err} }
