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
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/containerd/errdefs"

	"dirpx.dev/postnl/codec"
	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/entity/soap"
	"dirpx.dev/postnl/wire"
)

// ErrInvalidResponse is returned when a successful response does not carry
// the expected payload. It is categorized as errdefs.ErrUnavailable: the
// carrier answers 200 with an empty body when its backend is down.
var ErrInvalidResponse = errors.New("client: invalid API response")

func invalidResponse(format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidResponse, fmt.Sprintf(format, args...), errdefs.ErrUnavailable)
}

// maxErrorBody caps the bytes read from an error response.
const maxErrorBody = 1 << 20

// CarrierError is an error reported by the carrier API.
type CarrierError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Code is the carrier error code, if any.
	Code string
	// Message is the carrier error message, or the response body.
	Message string
}

func (e *CarrierError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "client: carrier returned %d", e.StatusCode)
	if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap returns the errdefs category of the status code.
func (e *CarrierError) Unwrap() error {
	return httpErrorCategory(e.StatusCode)
}

func httpErrorCategory(statusCode int) error {
	switch statusCode {
	case http.StatusBadRequest:
		return errdefs.ErrInvalidArgument
	case http.StatusUnauthorized:
		return errdefs.ErrUnauthenticated
	case http.StatusForbidden:
		return errdefs.ErrPermissionDenied
	case http.StatusNotFound:
		return errdefs.ErrNotFound
	case http.StatusConflict:
		return errdefs.ErrConflict
	case http.StatusPreconditionFailed:
		return errdefs.ErrFailedPrecondition
	case http.StatusTooManyRequests:
		return errdefs.ErrResourceExhausted
	case http.StatusNotImplemented:
		return errdefs.ErrNotImplemented
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return errdefs.ErrUnavailable
	}
	if statusCode >= 500 {
		return errdefs.ErrInternal
	}
	return errdefs.ErrUnknown
}

// checkResponseErr returns nil for 2xx and 3xx responses. Otherwise it reads
// up to 1 MiB of the body and returns a *CarrierError built from the
// carrier fault it carries: a JSON "fault" object, a JSON "Errors" list or
// a SOAP Fault.
func checkResponseErr(cd *codec.Codec, resp *http.Response) error {
	if resp == nil {
		return nil
	}
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	cerr := &CarrierError{StatusCode: resp.StatusCode}
	if resp.Body == nil {
		cerr.Message = http.StatusText(resp.StatusCode)
		return cerr
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("client: read error response: %w", err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		cerr.Message = http.StatusText(resp.StatusCode)
		return cerr
	}

	switch body[0] {
	case '{', '[':
		if v, err := wire.Unmarshal(body); err == nil {
			cerr.Code, cerr.Message = jsonFault(v)
		}
	case '<':
		if n, err := wire.ParseXML(bytes.NewReader(body)); err == nil {
			cerr.Code, cerr.Message = soapFault(cd, n)
		}
	}
	if cerr.Message == "" {
		cerr.Message = string(body)
	}
	return cerr
}

// jsonFault extracts the code and message of a JSON error body.
func jsonFault(v any) (code, msg string) {
	m, ok := v.(map[string]any)
	if !ok {
		if list, ok := v.([]any); ok {
			return errorList(list)
		}
		return "", ""
	}
	if f, ok := m["fault"].(map[string]any); ok {
		msg, _ = f["faultstring"].(string)
		if d, ok := f["detail"].(map[string]any); ok {
			code, _ = d["errorcode"].(string)
		}
		return code, msg
	}
	for _, key := range []string{"Errors", "Error"} {
		switch e := m[key].(type) {
		case []any:
			return errorList(e)
		case map[string]any:
			return errorList([]any{e})
		}
	}
	return "", ""
}

// errorList joins the descriptions of carrier error items. The code is the
// one of the first item.
func errorList(items []any) (code, msg string) {
	var msgs []string
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if code == "" {
			code = scalarString(m["Code"], m["ErrorNumber"])
		}
		if s := scalarString(m["Description"], m["ErrorMsg"], m["Message"]); s != "" {
			msgs = append(msgs, s)
		}
	}
	return code, strings.Join(msgs, "; ")
}

func scalarString(values ...any) string {
	for _, v := range values {
		switch x := v.(type) {
		case string:
			if x != "" {
				return x
			}
		case float64:
			return fmt.Sprint(x)
		}
	}
	return ""
}

// soapFault extracts the code and message of a SOAP fault envelope. A
// carrier exception message in the fault detail wins over faultstring.
func soapFault(cd *codec.Codec, envelope wire.Node) (code, msg string) {
	n, ok := envelope.Path("Body", "Fault")
	if !ok {
		return "", ""
	}
	v, err := cd.FromXMLValue(n)
	if err != nil {
		return "", ""
	}
	f, ok := v.(*soap.Fault)
	if !ok {
		return "", ""
	}
	code, msg = entity.Deref(f.FaultCode), entity.Deref(f.FaultString)
	if detail, ok := n.Find("detail"); ok {
		if m, ok := findDeep(detail, "ErrorMsg"); ok && m.Text() != "" {
			msg = m.Text()
		}
	}
	return code, msg
}

func findDeep(n wire.Node, local string) (wire.Node, bool) {
	for _, c := range n.Children() {
		if wire.LocalName(c.Name) == local {
			return c, true
		}
		if found, ok := findDeep(c, local); ok {
			return found, true
		}
	}
	return wire.Node{}, false
}
