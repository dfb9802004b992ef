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

// Package request defines the request envelopes of the carrier API.
//
// Envelope fields live in the operations namespace of the active service;
// the entities they carry use the domain namespace.
package request

import (
	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/entity/message"
	"dirpx.dev/postnl/properties"
	"dirpx.dev/postnl/service"
)

// GenerateBarcode asks for one barcode from a serie.
type GenerateBarcode struct {
	entity.Base
	Message  *message.Message
	Customer *entity.Customer
	Barcode  *entity.Barcode
}

// NewGenerateBarcode returns a GenerateBarcode with a fresh message header.
func NewGenerateBarcode(barcode *entity.Barcode, customer *entity.Customer) *GenerateBarcode {
	r := entity.New[GenerateBarcode]()
	r.Message, r.Customer, r.Barcode = message.New(), customer, barcode
	return r
}

// Confirming confirms shipments whose labels were printed locally.
type Confirming struct {
	entity.Base
	Customer  *entity.Customer
	Message   *message.Message
	Shipments []*entity.Shipment
}

// NewConfirming returns a Confirming request with a fresh message header.
func NewConfirming(customer *entity.Customer, shipments ...*entity.Shipment) *Confirming {
	r := entity.New[Confirming]()
	r.Customer, r.Message, r.Shipments = customer, message.New(), shipments
	return r
}

// GenerateLabel asks for the labels of one or more shipments.
type GenerateLabel struct {
	entity.Base
	Customer  *entity.Customer
	Message   *message.LabellingMessage
	Shipments []*entity.Shipment
}

// NewGenerateLabel returns a GenerateLabel request printing to printertype.
func NewGenerateLabel(customer *entity.Customer, printertype string, shipments ...*entity.Shipment) *GenerateLabel {
	r := entity.New[GenerateLabel]()
	r.Customer, r.Message, r.Shipments = customer, message.NewLabelling(printertype), shipments
	return r
}

// CalculateDeliveryDate holds the query of a delivery date calculation.
// Its fields are sent as REST query parameters.
type CalculateDeliveryDate struct {
	entity.Base
	ShippingDate      *string
	ShippingDuration  *int
	CutOffTime        *string
	PostalCode        *string
	CountryCode       *string
	OriginCountryCode *string
	City              *string
	Street            *string
	HouseNumber       *int
	HouseNrExt        *string
	Options           []string

	CutOffTimeMonday    *string
	AvailableMonday     *bool
	CutOffTimeTuesday   *string
	AvailableTuesday    *bool
	CutOffTimeWednesday *string
	AvailableWednesday  *bool
	CutOffTimeThursday  *string
	AvailableThursday   *bool
	CutOffTimeFriday    *string
	AvailableFriday     *bool
	CutOffTimeSaturday  *string
	AvailableSaturday   *bool
	CutOffTimeSunday    *string
	AvailableSunday     *bool
}

var calculateDeliveryDateFields = []string{
	"ShippingDate", "ShippingDuration", "CutOffTime", "PostalCode", "CountryCode",
	"OriginCountryCode", "City", "Street", "HouseNumber", "HouseNrExt", "Options",
	"CutOffTimeMonday", "AvailableMonday", "CutOffTimeTuesday", "AvailableTuesday",
	"CutOffTimeWednesday", "AvailableWednesday", "CutOffTimeThursday", "AvailableThursday",
	"CutOffTimeFriday", "AvailableFriday", "CutOffTimeSaturday", "AvailableSaturday",
	"CutOffTimeSunday", "AvailableSunday",
}

// GetDeliveryDate wraps a delivery date query.
type GetDeliveryDate struct {
	entity.Base
	CalculateDeliveryDate *CalculateDeliveryDate
	Message               *message.Message
}

// GetSignature asks for the signature of a delivered shipment.
type GetSignature struct {
	entity.Base
	Customer *entity.Customer
	Message  *message.Message
	Shipment *entity.Shipment
}

// NewGetSignature returns a signature request for barcode.
func NewGetSignature(barcode string) *GetSignature {
	s := entity.New[entity.Shipment]()
	s.Barcode = entity.String(barcode)
	r := entity.New[GetSignature]()
	r.Message, r.Shipment = message.New(), s
	return r
}

// CurrentStatus asks for the current status of a shipment.
type CurrentStatus struct {
	entity.Base
	Customer *entity.Customer
	Message  *message.Message
	Shipment *entity.Shipment
}

// NewCurrentStatus returns a status request for barcode.
func NewCurrentStatus(barcode string) *CurrentStatus {
	s := entity.New[entity.Shipment]()
	s.Barcode = entity.String(barcode)
	r := entity.New[CurrentStatus]()
	r.Message, r.Shipment = message.New(), s
	return r
}

// GetTimeframes asks for the delivery timeframes around a date.
type GetTimeframes struct {
	entity.Base
	Message   *message.Message
	Timeframe []*entity.Timeframe
}

// Register adds the request kinds to reg.
func Register(reg apis.Registry) error {
	return entity.RegisterAll(reg,
		entity.Define[GenerateBarcode](apis.ScopeRequest,
			properties.Only(properties.Services("Message", "Customer", "Barcode"), service.Barcode)),
		entity.Define[Confirming](apis.ScopeRequest, properties.Services("Customer", "Message", "Shipments")),
		entity.Define[GenerateLabel](apis.ScopeRequest, properties.Services("Customer", "Message", "Shipments")),
		entity.Define[CalculateDeliveryDate](apis.ScopeRequest, properties.Plain(calculateDeliveryDateFields...)),
		entity.Define[GetDeliveryDate](apis.ScopeRequest, properties.Services("CalculateDeliveryDate", "Message")),
		entity.Define[GetSignature](apis.ScopeRequest, properties.Services("Customer", "Message", "Shipment")),
		entity.Define[CurrentStatus](apis.ScopeRequest, properties.Services("Customer", "Message", "Shipment")),
		entity.Define[GetTimeframes](apis.ScopeRequest, properties.Services("Message", "Timeframe")),
	)
}
