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

// Package fakecarrier is an in-process stand-in for the carrier API. It
// serves the REST and SOAP routes the client uses with canned but
// request-dependent answers and records every request it receives.
package fakecarrier

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"dirpx.dev/postnl/entity/message"
	"dirpx.dev/postnl/entity/soap"
	"dirpx.dev/postnl/service"
	"dirpx.dev/postnl/wire"
)

// Request is a request received by the Server.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Server is a fake carrier API.
type Server struct {
	apiKey string
	router *mux.Router

	mu       sync.Mutex
	seq      int
	down     bool
	requests []Request
	unknown  map[string]bool
}

// New returns a Server accepting apiKey.
func New(apiKey string) *Server {
	s := &Server{apiKey: apiKey, unknown: map[string]bool{}}
	r := mux.NewRouter()
	r.Use(s.record)

	r.HandleFunc("/shipment/v1_1/barcode/soap.asmx", s.soapBarcode).Methods(http.MethodPost)

	api := r.PathPrefix("/shipment").Subrouter()
	api.Use(s.authenticate, s.outage)
	api.HandleFunc("/v1_1/barcode", s.barcode).Methods(http.MethodGet)
	api.HandleFunc("/v1_10/confirm", s.confirm).Methods(http.MethodPost)
	api.HandleFunc("/v2_2/label", s.label).Methods(http.MethodPost)
	api.HandleFunc("/v2_2/calculate/date/delivery", s.deliveryDate).Methods(http.MethodGet)
	api.HandleFunc("/v2_1/calculate/timeframes", s.timeframes).Methods(http.MethodGet)
	api.HandleFunc("/v2/status/signature/{barcode}", s.signature).Methods(http.MethodGet)
	api.HandleFunc("/v2/status/barcode/{barcode}", s.status).Methods(http.MethodGet)
	s.router = r
	return s
}

// Start serves s on a test server closed when t ends.
func Start(t interface {
	Helper()
	Cleanup(func())
}, apiKey string) (*Server, *httptest.Server) {
	t.Helper()
	s := New(apiKey)
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return s, srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetDown makes every REST route answer 200 with an empty body, the way
// the carrier behaves when its backend is unavailable.
func (s *Server) SetDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

// Forget makes barcode unknown to the signature and status routes.
func (s *Server) Forget(barcode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unknown[barcode] = true
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != s.apiKey {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"fault": map[string]any{
					"faultstring": "Invalid ApiKey",
					"detail":      map[string]any{"errorcode": "steps.oauth.v2.FailedToResolveAPIKey"},
				},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) outage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		down := s.down
		s.mu.Unlock()
		if down {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

func (s *Server) known(barcode string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.unknown[barcode]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = wire.Encode(w, v)
}

func writeErrors(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, map[string]any{
		"Errors": []any{map[string]any{"Code": code, "Description": description}},
	})
}

func (s *Server) newBarcode(typ, customerCode string) string {
	return fmt.Sprintf("%s%s%09d", typ, customerCode, s.next())
}

func (s *Server) barcode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	for _, key := range []string{"CustomerCode", "CustomerNumber", "Type", "Serie"} {
		if q.Get(key) == "" {
			writeErrors(w, http.StatusBadRequest, "1", "Missing parameter "+key)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"Barcode": s.newBarcode(q.Get("Type"), q.Get("CustomerCode"))})
}

func (s *Server) soapBarcode(w http.ResponseWriter, r *http.Request) {
	env, err := wire.ParseXML(r.Body)
	if err != nil {
		writeFault(w, "s:Client", "Malformed envelope")
		return
	}
	pass, _ := env.Path("Header", "Security", "UsernameToken", "Password")
	if pass.Text() != s.apiKey {
		writeFault(w, "s:Client", "Invalid ApiKey")
		return
	}
	gb, ok := env.Path("Body", "GenerateBarcode")
	if !ok {
		writeFault(w, "s:Client", "Unknown operation")
		return
	}
	typ, _ := gb.Path("Barcode", "Type")
	code, _ := gb.Path("Customer", "CustomerCode")
	if typ.Text() == "" || code.Text() == "" {
		writeFault(w, "s:Client", "Check Barcode and Customer")
		return
	}

	ns := service.Barcode.ServicesNamespace()
	var buf bytes.Buffer
	out := wire.NewWriter(&buf, map[string]string{soap.EnvelopeNamespace: "s"})
	out.WriteNodes(wire.Node{Name: wire.Clark(soap.EnvelopeNamespace, "Envelope"), Value: []wire.Node{
		{Name: wire.Clark(soap.EnvelopeNamespace, "Body"), Value: []wire.Node{
			{Name: wire.Clark(ns, "GenerateBarcodeResponse"), Value: []wire.Node{
				{Name: wire.Clark(ns, "Barcode"), Value: s.newBarcode(typ.Text(), code.Text())},
			}},
		}},
	}})
	if err := out.Flush(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func writeFault(w http.ResponseWriter, code, msg string) {
	var buf bytes.Buffer
	out := wire.NewWriter(&buf, map[string]string{soap.EnvelopeNamespace: "s"})
	out.WriteNodes(wire.Node{Name: wire.Clark(soap.EnvelopeNamespace, "Envelope"), Value: []wire.Node{
		{Name: wire.Clark(soap.EnvelopeNamespace, "Body"), Value: []wire.Node{
			{Name: wire.Clark(soap.EnvelopeNamespace, "Fault"), Value: []wire.Node{
				{Name: "faultcode", Value: code},
				{Name: "faultstring", Value: msg},
			}},
		}},
	}})
	_ = out.Flush()
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(buf.Bytes())
}

// shipments returns the shipment objects of a JSON request body.
func shipments(r *http.Request) ([]map[string]any, error) {
	v, err := wire.Decode(r.Body)
	if err != nil {
		return nil, err
	}
	body, _ := v.(map[string]any)
	if _, ok := body["Customer"].(map[string]any); !ok {
		return nil, fmt.Errorf("missing Customer")
	}
	list, _ := body["Shipments"].([]any)
	out := make([]map[string]any, 0, len(list))
	for _, it := range list {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("missing Shipments")
	}
	return out, nil
}

func (s *Server) confirm(w http.ResponseWriter, r *http.Request) {
	list, err := shipments(r)
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "2", err.Error())
		return
	}
	items := make([]any, 0, len(list))
	for _, sh := range list {
		barcode, _ := sh["Barcode"].(string)
		if barcode == "" {
			writeErrors(w, http.StatusBadRequest, "3", "Shipment without Barcode")
			return
		}
		items = append(items, map[string]any{"Barcode": barcode, "Warnings": nil})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ConfirmingResponseShipments": map[string]any{"ConfirmingResponseShipment": items},
	})
}

func (s *Server) label(w http.ResponseWriter, r *http.Request) {
	list, err := shipments(r)
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "2", err.Error())
		return
	}
	out := make([]any, 0, len(list))
	for _, sh := range list {
		barcode, _ := sh["Barcode"].(string)
		out = append(out, map[string]any{
			"Barcode":             barcode,
			"ProductCodeDelivery": sh["ProductCodeDelivery"],
			"Labels": map[string]any{"Label": []any{map[string]any{
				"Content":    "JVBERi0xLjQK",
				"Labeltype":  "Label",
				"OutputType": "PDF",
			}}},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"MergedLabels": []any{}, "ResponseShipments": out})
}

func (s *Server) deliveryDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	shipped, err := time.Parse(message.TimeStampLayout, q.Get("ShippingDate"))
	if err != nil || q.Get("PostalCode") == "" {
		writeErrors(w, http.StatusBadRequest, "4", "Invalid ShippingDate or PostalCode")
		return
	}
	delivery := shipped.AddDate(0, 0, 1)
	if delivery.Weekday() == time.Sunday {
		delivery = delivery.AddDate(0, 0, 1)
	}
	options := q["Options"]
	if len(options) == 0 {
		options = []string{"Daytime"}
	}
	items := make([]any, len(options))
	for i, o := range options {
		items[i] = o
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"DeliveryDate": delivery.Format("02-01-2006"),
		"Options":      map[string]any{"string": items},
	})
}

func (s *Server) timeframes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("StartDate") == "" || q.Get("PostalCode") == "" {
		writeErrors(w, http.StatusBadRequest, "5", "Missing StartDate or PostalCode")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"Timeframes": map[string]any{"Timeframe": []any{map[string]any{
			"Date": q.Get("StartDate"),
			"Timeframes": map[string]any{"TimeframeTimeFrame": []any{map[string]any{
				"From":    "14:00:00",
				"To":      "16:30:00",
				"Options": map[string]any{"string": []any{"Daytime"}},
			}}},
		}}},
		"ReasonNotimeframes": map[string]any{"ReasonNoTimeframe": []any{map[string]any{
			"Code":        "05",
			"Date":        q.Get("EndDate"),
			"Description": "Geen avondlevering",
			"Options":     map[string]any{"string": []any{"Evening"}},
		}}},
	})
}

func (s *Server) signature(w http.ResponseWriter, r *http.Request) {
	barcode := mux.Vars(r)["barcode"]
	if !s.known(barcode) {
		writeErrors(w, http.StatusNotFound, "6", "No signature for "+barcode)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"Signature": map[string]any{
		"Barcode":        barcode,
		"SignatureDate":  "30-06-2024 14:21:00",
		"SignatureImage": "iVBORw0KGgo=",
	}})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	barcode := mux.Vars(r)["barcode"]
	if !s.known(barcode) {
		writeErrors(w, http.StatusNotFound, "7", "No shipment with barcode "+barcode)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"CurrentStatus": map[string]any{
		"Shipment": map[string]any{
			"Barcode": barcode,
			"Addresses": []any{map[string]any{
				"AddressType": "01",
				"City":        "Hoofddorp",
				"Countrycode": "NL",
			}},
			"ProductCode": "003085",
			"Status": map[string]any{
				"StatusCode":        "7",
				"StatusDescription": "Zending afgeleverd",
				"TimeStamp":         "30-06-2024 14:21:00",
			},
		},
		"Warnings": []any{},
	}})
}

// IsSOAP reports whether req carried a SOAP envelope.
func (r Request) IsSOAP() bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "text/xml")
}
