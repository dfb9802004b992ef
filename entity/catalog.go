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

package entity

import (
	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/properties"
)

// Register adds the general data entities to reg. It is an apis.Catalog.
func Register(reg apis.Registry) error {
	return RegisterAll(reg,
		Define[Address](apis.ScopeEntity, properties.Domain(
			"AddressType", "Area", "Buildingname", "City", "CompanyName", "Countrycode",
			"Department", "Doorcode", "FirstName", "Floor", "HouseNr", "HouseNrExt",
			"Name", "Region", "Remark", "Street", "StreetHouseNrExt", "Zipcode",
		)),
		Define[Amount](apis.ScopeEntity, properties.Domain(
			"AccountName", "AmountType", "BIC", "Currency", "IBAN",
			"Reference", "TransactionNumber", "Value",
		)),
		Define[Barcode](apis.ScopeEntity, properties.Domain("Type", "Range", "Serie")),
		Define[Contact](apis.ScopeEntity, properties.Domain("ContactType", "Email", "SMSNr", "TelNr")),
		Define[Content](apis.ScopeEntity, properties.Domain(
			"CountryOfOrigin", "Description", "HSTariffNr", "Quantity", "Value", "Weight",
		)),
		Define[Customer](apis.ScopeEntity, properties.Domain(
			"Address", "CollectionLocation", "ContactPerson", "CustomerCode",
			"CustomerNumber", "Email", "Name",
		)),
		Define[Customs](apis.ScopeEntity, properties.Domain(
			"Certificate", "CertificateNr", "Content", "Currency", "HandleAsNonDeliverable",
			"Invoice", "InvoiceNr", "License", "LicenseNr", "ShipmentType",
		)),
		Define[Dimension](apis.ScopeEntity, properties.Domain("Height", "Length", "Volume", "Weight", "Width")),
		Define[Expectation](apis.ScopeEntity, properties.Domain("ETAFrom", "ETATo")),
		Define[Group](apis.ScopeEntity, properties.Domain("GroupCount", "GroupSequence", "GroupType", "MainBarcode")),
		Define[Label](apis.ScopeEntity, properties.Domain("Content", "Contenttype", "Labeltype")),
		Define[OpeningHours](apis.ScopeEntity, properties.Domain(
			"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
		)),
		Define[ProductOption](apis.ScopeEntity, properties.Domain("Characteristic", "Option")),
		Define[ReasonNoTimeframe](apis.ScopeEntity, properties.Domain(
			"Code", "Date", "Description", "From", "Options", "To",
		)),
		Define[Shipment](apis.ScopeEntity, properties.Domain(
			"Addresses", "Amounts", "Barcode", "CollectionTimeStampEnd", "CollectionTimeStampStart",
			"Contacts", "Content", "CostCenter", "CustomerOrderNumber", "Customs",
			"DeliveryAddress", "DeliveryDate", "Dimension", "DownPartnerBarcode",
			"DownPartnerID", "DownPartnerLocation", "Groups", "IDExpiration", "IDNumber",
			"IDType", "ProductCodeCollect", "ProductCodeDelivery", "ProductOptions",
			"ReceiverDateOfBirth", "Reference", "ReferenceCollect", "Remark",
			"ReturnBarcode", "ReturnReference",
		)),
		Define[Status](apis.ScopeEntity, properties.Domain(
			"PhaseCode", "PhaseDescription", "StatusCode", "StatusDescription", "TimeStamp",
		)),
		Define[OldStatus](apis.ScopeEntity, properties.Domain(
			"Code", "Description", "PhaseCode", "PhaseDescription", "TimeStamp",
		)),
		Define[Timeframe](apis.ScopeEntity, properties.Domain(
			"City", "CountryCode", "Date", "EndDate", "From", "HouseNr", "HouseNrExt",
			"Interval", "Options", "PostalCode", "StartDate", "Street", "SundaySorting",
			"TimeframeRange", "Timeframes", "To",
		)),
		Define[TimeframeTimeFrame](apis.ScopeEntity, properties.Domain("From", "Options", "To")),
		Define[Warning](apis.ScopeEntity, properties.Domain("Code", "Description")),
	)
}
