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

package service_test

import (
	"testing"

	"dirpx.dev/postnl/service"
)

func TestServiceString(t *testing.T) {
	tests := []struct {
		name string
		svc  service.Service
		want string
	}{
		{"None", service.None, "None"},
		{"Barcode", service.Barcode, "Barcode"},
		{"Confirming", service.Confirming, "Confirming"},
		{"ShippingStatus", service.ShippingStatus, "ShippingStatus"},
		{"Shipping", service.Shipping, "Shipping"},
		{"Unknown", service.Service(42), "Unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.svc.String(); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseValid(t *testing.T) {
	tests := []struct {
		input string
		want  service.Service
	}{
		{"Barcode", service.Barcode},
		{"barcode", service.Barcode},
		{"  Labelling  ", service.Labelling},
		{"deliverydate", service.DeliveryDate},
		{"TIMEFRAME", service.Timeframe},
		{"none", service.None},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := service.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v, want nil", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "Barcodes", "soap"} {
		got, err := service.Parse(input)
		if err == nil {
			t.Fatalf("Parse(%q) error = nil, want non-nil", input)
		}
		if got != service.None {
			t.Fatalf("Parse(%q) = %v, want None on error", input, got)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustParse did not panic on invalid input")
		}
	}()
	_ = service.MustParse("bogus")
}

func TestTextRoundTrip(t *testing.T) {
	for _, svc := range service.All() {
		text, err := svc.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", svc, err)
		}
		var got service.Service
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if got != svc {
			t.Fatalf("round trip = %v, want %v", got, svc)
		}
	}

	if _, err := service.Service(99).MarshalText(); err == nil {
		t.Fatalf("MarshalText(99) error = nil, want non-nil")
	}
}

func TestNamespaces(t *testing.T) {
	if got, want := service.Barcode.DomainNamespace(), "http://postnl.nl/cif/domain/BarcodeWebService/"; got != want {
		t.Fatalf("DomainNamespace() = %q, want %q", got, want)
	}
	if got, want := service.Confirming.ServicesNamespace(), "http://postnl.nl/cif/services/ConfirmingWebService/"; got != want {
		t.Fatalf("ServicesNamespace() = %q, want %q", got, want)
	}
	if got := service.None.DomainNamespace(); got != "" {
		t.Fatalf("None.DomainNamespace() = %q, want empty", got)
	}
}
