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
	"net/url"
	"sort"
	"strconv"

	"github.com/containerd/errdefs"

	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/codec"
	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/service"
)

// requestFields serializes e bound to svc and returns its field object, the
// shape REST request bodies take.
func requestFields(cd *codec.Codec, e apis.Entity, svc service.Service) (map[string]any, error) {
	entity.SetService(e, svc)
	v, err := cd.ToJSONValue(e)
	if err != nil {
		return nil, err
	}
	for _, inner := range v.(map[string]any) {
		if m, ok := inner.(map[string]any); ok {
			return m, nil
		}
	}
	return map[string]any{}, nil
}

// decodeOne deserializes the field object raw as an entity of kind.
func decodeOne[T apis.Entity](cd *codec.Codec, kind string, raw any) (T, error) {
	var zero T
	if m, isMap := raw.(map[string]any); isMap && len(m) == 1 {
		if inner, wrapped := m[kind]; wrapped {
			raw = inner
		}
	}
	if _, isMap := raw.(map[string]any); !isMap {
		return zero, invalidResponse("%s: got %T, want object", kind, raw)
	}
	v, err := cd.FromJSONValue(map[string]any{kind: raw})
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, invalidResponse("%s: decoded %T", kind, v)
	}
	return t, nil
}

// decodeAll deserializes raw as entities of kind. raw is a field object or
// a list of them, optionally wrapped as {kind: ...}. A nil raw yields no
// entities.
func decodeAll[T apis.Entity](cd *codec.Codec, kind string, raw any) ([]T, error) {
	if m, isMap := raw.(map[string]any); isMap && len(m) == 1 {
		if inner, wrapped := m[kind]; wrapped {
			raw = inner
		}
	}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]T, 0, len(v))
		for _, item := range v {
			t, err := decodeOne[T](cd, kind, item)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		return out, nil
	default:
		t, err := decodeOne[T](cd, kind, v)
		if err != nil {
			return nil, err
		}
		return []T{t}, nil
	}
}

// query renders a field object as URL query parameters. Lists repeat the
// parameter; nested objects are rejected.
func query(m map[string]any) (url.Values, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	q := url.Values{}
	for _, k := range keys {
		switch v := m[k].(type) {
		case []any:
			for _, item := range v {
				s, err := queryValue(k, item)
				if err != nil {
					return nil, err
				}
				q.Add(k, s)
			}
		default:
			s, err := queryValue(k, v)
			if err != nil {
				return nil, err
			}
			q.Set(k, s)
		}
	}
	return q, nil
}

func queryValue(key string, v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("client: query parameter %s: unsupported %T: %w", key, v, errdefs.ErrInvalidArgument)
}
