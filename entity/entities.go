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

// Address is a postal address.
type Address struct {
	Base
	AddressType      *string
	Area             *string
	Buildingname     *string
	City             *string
	CompanyName      *string
	Countrycode      *string
	Department       *string
	Doorcode         *string
	FirstName        *string
	Floor            *string
	HouseNr          *string
	HouseNrExt       *string
	Name             *string
	Region           *string
	Remark           *string
	Street           *string
	StreetHouseNrExt *string
	Zipcode          *string
}

// Amount is a monetary amount attached to a shipment (COD, insured value).
type Amount struct {
	Base
	AccountName       *string
	AmountType        *string
	BIC               *string
	Currency          *string
	IBAN              *string
	Reference         *string
	TransactionNumber *string
	Value             *string
}

// Barcode selects the barcode type, customer range and serie to draw from.
type Barcode struct {
	Base
	Type  *string
	Range *string
	Serie *string
}

// NewBarcode returns a Barcode request part.
func NewBarcode(typ, rng, serie string) *Barcode {
	b := New[Barcode]()
	b.Type, b.Range, b.Serie = String(typ), String(rng), String(serie)
	return b
}

// Contact is a way to reach the receiver.
type Contact struct {
	Base
	ContactType *string
	Email       *string
	SMSNr       *string
	TelNr       *string
}

// Content is one line of a customs declaration.
type Content struct {
	Base
	CountryOfOrigin *string
	Description     *string
	HSTariffNr      *string
	Quantity        *int
	Value           *string
	Weight          *int
}

// Customer identifies the sender account.
type Customer struct {
	Base
	Address            *Address
	CollectionLocation *string
	ContactPerson      *string
	CustomerCode       *string
	CustomerNumber     *string
	Email              *string
	Name               *string
}

// NewCustomer returns a Customer with the account number and code set.
func NewCustomer(number, code string) *Customer {
	c := New[Customer]()
	c.CustomerNumber, c.CustomerCode = String(number), String(code)
	return c
}

// Customs is the customs declaration of a non-EU shipment.
type Customs struct {
	Base
	Certificate            *bool
	CertificateNr          *string
	Content                []*Content
	Currency               *string
	HandleAsNonDeliverable *bool
	Invoice                *bool
	InvoiceNr              *string
	License                *bool
	LicenseNr              *string
	ShipmentType           *string
}

// Dimension holds the physical size of a parcel (grams, millimetres).
type Dimension struct {
	Base
	Height *int
	Length *int
	Volume *int
	Weight *int
	Width  *int
}

// Expectation is an expected delivery window.
type Expectation struct {
	Base
	ETAFrom *string
	ETATo   *string
}

// Group ties parcels of a multi-collo shipment together.
type Group struct {
	Base
	GroupCount    *int
	GroupSequence *int
	GroupType     *string
	MainBarcode   *string
}

// Label is a printable label.
type Label struct {
	Base
	Content     *string
	Contenttype *string
	Labeltype   *string
}

// OpeningHours lists the opening hours of a location per weekday.
type OpeningHours struct {
	Base
	Monday    *string
	Tuesday   *string
	Wednesday *string
	Thursday  *string
	Friday    *string
	Saturday  *string
	Sunday    *string
}

// ProductOption is a characteristic/option pair of a product code.
type ProductOption struct {
	Base
	Characteristic *string
	Option         *string
}

// ReasonNoTimeframe explains why no timeframe is available on a date.
type ReasonNoTimeframe struct {
	Base
	Code        *string
	Date        *string
	Description *string
	From        *string
	Options     []string
	To          *string
}

// Shipment is a single parcel together with its delivery instructions.
type Shipment struct {
	Base
	Addresses                []*Address
	Amounts                  []*Amount
	Barcode                  *string
	CollectionTimeStampEnd   *string
	CollectionTimeStampStart *string
	Contacts                 []*Contact
	Content                  *string
	CostCenter               *string
	CustomerOrderNumber      *string
	Customs                  *Customs
	DeliveryAddress          *string
	DeliveryDate             *string
	Dimension                *Dimension
	DownPartnerBarcode       *string
	DownPartnerID            *string
	DownPartnerLocation      *string
	Groups                   []*Group
	IDExpiration             *string
	IDNumber                 *string
	IDType                   *string
	ProductCodeCollect       *string
	ProductCodeDelivery      *string
	ProductOptions           []*ProductOption
	ReceiverDateOfBirth      *string
	Reference                *string
	ReferenceCollect         *string
	Remark                   *string
	ReturnBarcode            *string
	ReturnReference          *string
}

// Status is the current status of a shipment.
type Status struct {
	Base
	PhaseCode         *string
	PhaseDescription  *string
	StatusCode        *string
	StatusDescription *string
	TimeStamp         *string
}

// OldStatus is a past status of a shipment.
type OldStatus struct {
	Base
	Code             *string
	Description      *string
	PhaseCode        *string
	PhaseDescription *string
	TimeStamp        *string
}

// Timeframe is a delivery timeframe query or result for one date.
type Timeframe struct {
	Base
	City           *string
	CountryCode    *string
	Date           *string
	EndDate        *string
	From           *string
	HouseNr        *string
	HouseNrExt     *string
	Interval       *int
	Options        []string
	PostalCode     *string
	StartDate      *string
	Street         *string
	SundaySorting  *bool
	TimeframeRange *string
	Timeframes     []*TimeframeTimeFrame
	To             *string
}

// TimeframeTimeFrame is one slot within a Timeframe.
type TimeframeTimeFrame struct {
	Base
	From    *string
	Options []string
	To      *string
}

// Warning is a non-fatal remark returned by the carrier.
type Warning struct {
	Base
	Code        *string
	Description *string
}
