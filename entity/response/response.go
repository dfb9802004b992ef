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

// Package response defines the response envelopes returned by the carrier.
package response

import (
	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/properties"
)

// GenerateBarcodeResponse carries one generated barcode.
type GenerateBarcodeResponse struct {
	entity.Base
	Barcode *string
}

// ConfirmingResponseShipment is the confirmation result of one shipment.
type ConfirmingResponseShipment struct {
	entity.Base
	Barcode  *string
	Warnings []*entity.Warning
}

// MergedLabel is a label document covering several barcodes.
type MergedLabel struct {
	entity.Base
	Barcodes []string
	Labels   []*entity.Label
}

// ResponseShipment is the label result of one shipment.
type ResponseShipment struct {
	entity.Base
	Barcode             *string
	DownPartnerBarcode  *string
	DownPartnerID       *string
	DownPartnerLocation *string
	Labels              []*entity.Label
	ProductCodeDelivery *string
	Warnings            []*entity.Warning
}

// GenerateLabelResponse carries the labels of a GenerateLabel request.
type GenerateLabelResponse struct {
	entity.Base
	MergedLabels      []*MergedLabel
	ResponseShipments []*ResponseShipment
}

// GetDeliveryDateResponse carries a calculated delivery date.
type GetDeliveryDateResponse struct {
	entity.Base
	DeliveryDate *string
	Options      []string
}

// GetSignatureResponseSignature is a recorded delivery signature.
type GetSignatureResponseSignature struct {
	entity.Base
	Barcode        *string
	SignatureDate  *string
	SignatureImage *string
}

// ResponseTimeframes carries the available delivery timeframes and the
// reasons some dates have none.
type ResponseTimeframes struct {
	entity.Base
	ReasonNoTimeframes []*entity.ReasonNoTimeframe
	Timeframes         []*entity.Timeframe
}

var _ apis.JSONShaper = (*ResponseTimeframes)(nil)

// ShapeJSON wraps both collections in their item name. ReasonNoTimeframes
// is emitted under the carrier's legacy key "ReasonNotimeframes".
func (r *ResponseTimeframes) ShapeJSON(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch k {
		case "ReasonNoTimeframes":
			out["ReasonNotimeframes"] = map[string]any{"ReasonNoTimeframe": v}
		case "Timeframes":
			out[k] = map[string]any{"Timeframe": v}
		default:
			out[k] = v
		}
	}
	return out
}

// CurrentStatusResponseShipment is the status of one shipment.
type CurrentStatusResponseShipment struct {
	entity.Base
	Addresses          []*entity.Address
	Amounts            []*entity.Amount
	Barcode            *string
	DeliveryDate       *string
	Dimension          *entity.Dimension
	Expectation        *entity.Expectation
	Groups             []*entity.Group
	OldStatuses        []*entity.OldStatus
	ProductCode        *string
	ProductDescription *string
	ProductOptions     []*entity.ProductOption
	Reference          *string
	Status             *entity.Status
	Warnings           []*entity.Warning
}

// CurrentStatusResponse carries the status of the requested shipments.
type CurrentStatusResponse struct {
	entity.Base
	Shipments []*CurrentStatusResponseShipment
	Warnings  []*entity.Warning
}

// CompleteStatusResponseShipment is a shipment with its full status history.
type CompleteStatusResponseShipment struct {
	entity.Base
	Addresses   []*entity.Address
	Barcode     *string
	Expectation *entity.Expectation
	OldStatuses []*entity.OldStatus
	Statuses    []*entity.Status
}

// Register adds the response kinds to reg.
func Register(reg apis.Registry) error {
	return entity.RegisterAll(reg,
		entity.Define[GenerateBarcodeResponse](apis.ScopeResponse, properties.Domain("Barcode")),
		entity.Define[ConfirmingResponseShipment](apis.ScopeResponse, properties.Domain("Barcode", "Warnings")),
		entity.Define[MergedLabel](apis.ScopeResponse, properties.Domain("Barcodes", "Labels")),
		entity.Define[ResponseShipment](apis.ScopeResponse, properties.Domain(
			"Barcode", "DownPartnerBarcode", "DownPartnerID", "DownPartnerLocation",
			"Labels", "ProductCodeDelivery", "Warnings",
		)),
		entity.Define[GenerateLabelResponse](apis.ScopeResponse, properties.Domain("MergedLabels", "ResponseShipments")),
		entity.Define[GetDeliveryDateResponse](apis.ScopeResponse, properties.Domain("DeliveryDate", "Options")),
		entity.Define[GetSignatureResponseSignature](apis.ScopeResponse, properties.Domain(
			"Barcode", "SignatureDate", "SignatureImage",
		)),
		entity.Define[ResponseTimeframes](apis.ScopeResponse, properties.Domain("ReasonNoTimeframes", "Timeframes")),
		entity.Define[CurrentStatusResponseShipment](apis.ScopeResponse, properties.Domain(
			"Addresses", "Amounts", "Barcode", "DeliveryDate", "Dimension", "Expectation",
			"Groups", "OldStatuses", "ProductCode", "ProductDescription", "ProductOptions",
			"Reference", "Status", "Warnings",
		)),
		entity.Define[CurrentStatusResponse](apis.ScopeResponse, properties.Domain("Shipments", "Warnings")),
		entity.Define[CompleteStatusResponseShipment](apis.ScopeResponse, properties.Domain(
			"Addresses", "Barcode", "Expectation", "OldStatuses", "Statuses",
		)),
	)
}
