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

package service

import (
	"fmt"
	"strings"
)

// Service names the carrier API a request belongs to.
//
// # Overview
//
// Every entity carries a current Service. The Service selects which fields
// of the entity are emitted on the wire and under which XML namespace, so an
// entity must have one assigned before it can be serialized. The zero value,
// None, means "no context configured".
//
// # Values
//
//   - None           - no context; serialization fails.
//   - Barcode        - barcode generation.
//   - Confirming     - shipment confirmation.
//   - Labelling      - label generation.
//   - ShippingStatus - shipment status and signatures.
//   - DeliveryDate   - delivery and shipping date calculation.
//   - Location       - pickup location lookup.
//   - Timeframe      - delivery timeframe lookup.
//   - Shipping       - combined shipment API.
//
// # Contract
//
//   - The string forms returned by String are stable; they double as the
//     keys of property tables and of configuration files.
//   - Service values are plain integers and safe to share between
//     goroutines.
type Service int

const (
	// None is the zero value: no service context configured.
	None Service = iota
	// Barcode selects the barcode web service.
	Barcode
	// Confirming selects the confirming web service.
	Confirming
	// Labelling selects the labelling web service.
	Labelling
	// ShippingStatus selects the shipping status web service.
	ShippingStatus
	// DeliveryDate selects the delivery date web service.
	DeliveryDate
	// Location selects the location web service.
	Location
	// Timeframe selects the timeframe web service.
	Timeframe
	// Shipping selects the shipping web service.
	Shipping
)

// namespaceBase is the common prefix of every carrier XML namespace.
const namespaceBase = "http://postnl.nl/cif/"

// All returns every Service except None, in declaration order.
func All() []Service {
	return []Service{Barcode, Confirming, Labelling, ShippingStatus, DeliveryDate, Location, Timeframe, Shipping}
}

// String returns the canonical token of s, or "Unknown(<n>)" for values
// outside the enumeration.
func (s Service) String() string {
	switch s {
	case None:
		return "None"
	case Barcode:
		return "Barcode"
	case Confirming:
		return "Confirming"
	case Labelling:
		return "Labelling"
	case ShippingStatus:
		return "ShippingStatus"
	case DeliveryDate:
		return "DeliveryDate"
	case Location:
		return "Location"
	case Timeframe:
		return "Timeframe"
	case Shipping:
		return "Shipping"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Valid reports whether s is a known Service other than None.
func (s Service) Valid() bool {
	return s > None && s <= Shipping
}

// WebService returns the carrier's web service name for s,
// e.g. "BarcodeWebService". It returns "" for None and unknown values.
func (s Service) WebService() string {
	if !s.Valid() {
		return ""
	}
	return s.String() + "WebService"
}

// DomainNamespace returns the XML namespace of the data types of s.
func (s Service) DomainNamespace() string {
	if !s.Valid() {
		return ""
	}
	return namespaceBase + "domain/" + s.WebService() + "/"
}

// ServicesNamespace returns the XML namespace of the operations of s.
func (s Service) ServicesNamespace() string {
	if !s.Valid() {
		return ""
	}
	return namespaceBase + "services/" + s.WebService() + "/"
}

// Parse converts a token into a Service. Matching is case-insensitive and
// ignores surrounding whitespace. On failure it returns None and an error.
func Parse(s string) (Service, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return None, fmt.Errorf("service: empty service")
	}

	switch strings.ToUpper(trimmed) {
	case "NONE":
		return None, nil
	case "BARCODE":
		return Barcode, nil
	case "CONFIRMING":
		return Confirming, nil
	case "LABELLING":
		return Labelling, nil
	case "SHIPPINGSTATUS":
		return ShippingStatus, nil
	case "DELIVERYDATE":
		return DeliveryDate, nil
	case "LOCATION":
		return Location, nil
	case "TIMEFRAME":
		return Timeframe, nil
	case "SHIPPING":
		return Shipping, nil
	default:
		return None, fmt.Errorf("service: unknown service %q", s)
	}
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Service {
	svc, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return svc
}

// MarshalText implements encoding.TextMarshaler.
func (s Service) MarshalText() ([]byte, error) {
	if s != None && !s.Valid() {
		return nil, fmt.Errorf("service: cannot marshal unknown service %d", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Service) UnmarshalText(text []byte) error {
	value, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = value
	return nil
}
