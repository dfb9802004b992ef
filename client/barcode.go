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
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/containerd/errdefs"

	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/entity/request"
	"dirpx.dev/postnl/entity/response"
	"dirpx.dev/postnl/service"
)

const (
	barcodePath     = "/shipment/v1_1/barcode"
	barcodeSOAPPath = "/shipment/v1_1/barcode/soap.asmx"
)

// threeSCountries are the destinations served with 3S barcodes. Every
// other destination needs a GlobalPack barcode.
var threeSCountries = map[string]bool{
	"AT": true, "BE": true, "BG": true, "CZ": true, "CY": true, "DK": true,
	"EE": true, "FI": true, "FR": true, "DE": true, "GB": true, "GR": true,
	"HU": true, "IE": true, "IT": true, "LV": true, "LT": true, "LU": true,
	"NL": true, "PL": true, "PT": true, "RO": true, "SK": true, "SI": true,
	"ES": true, "SE": true, "MC": true, "AL": true, "AD": true, "BA": true,
	"IC": true, "FO": true, "GI": true, "GL": true, "GG": true, "JE": true,
	"HR": true, "LI": true, "MK": true, "MD": true, "ME": true, "NO": true,
	"UA": true, "SM": true, "RS": true, "CH": true, "TR": true, "VA": true,
	"BY": true,
}

// IsThreeSCountry reports whether iso is served with 3S barcodes.
func IsThreeSCountry(iso string) bool {
	return threeSCountries[strings.ToUpper(strings.TrimSpace(iso))]
}

// BarcodeSerie returns the serie to draw a barcode of type typ and range
// rng from. international selects the 3S series for destinations outside
// the Netherlands.
func BarcodeSerie(typ, rng string, international bool) (string, error) {
	switch typ {
	case "2S":
		return "0000000-9999999", nil
	case "3S":
		if international {
			switch len(rng) {
			case 4:
				return "0000000-9999999", nil
			case 3:
				return "10000000-20000000", nil
			case 1:
				return "5210500000-5210600000", nil
			default:
				return "", fmt.Errorf("client: no 3S serie for range %q: %w", rng, errdefs.ErrInvalidArgument)
			}
		}
		if len(rng) == 4 {
			return "987000000-987600000", nil
		}
		return "0000000-9999999", nil
	default:
		return "0000-9999", nil
	}
}

// customerOr returns a private copy of cust, or of the configured customer
// when cust is nil. Requests bind their service context to the copy.
func (c *Client) customerOr(cust *entity.Customer) *entity.Customer {
	if cust == nil {
		cust = c.customer
	}
	if cust == nil {
		return nil
	}
	return entity.Clone(cust)
}

func (c *Client) buildBarcodeRequest(ctx context.Context, r *request.GenerateBarcode) (*http.Request, error) {
	if r == nil || r.Barcode == nil {
		return nil, fmt.Errorf("client: generate barcode: missing barcode: %w", errdefs.ErrInvalidArgument)
	}
	cust := c.customerOr(r.Customer)
	if cust == nil {
		return nil, fmt.Errorf("client: generate barcode: no customer configured: %w", errdefs.ErrFailedPrecondition)
	}

	if c.mode == ModeSOAP {
		cp := *r
		cp.Customer = cust
		return c.newSOAPRequest(ctx, barcodeSOAPPath, service.Barcode, "GenerateBarcode", &cp)
	}

	q := url.Values{}
	q.Set("CustomerCode", entity.Deref(cust.CustomerCode))
	q.Set("CustomerNumber", entity.Deref(cust.CustomerNumber))
	q.Set("Type", entity.Deref(r.Barcode.Type))
	q.Set("Serie", entity.Deref(r.Barcode.Serie))
	return c.newRequest(ctx, http.MethodGet, barcodePath, q, nil, nil)
}

func (c *Client) processBarcodeResponse(resp *http.Response) (string, error) {
	var (
		v   any
		err error
	)
	if c.mode == ModeSOAP {
		n, rerr := readSOAP(resp)
		if rerr != nil {
			return "", rerr
		}
		v, err = c.Codec().FromXMLValue(n)
	} else {
		m, rerr := readJSON(resp)
		if rerr != nil {
			return "", rerr
		}
		v, err = c.Codec().FromJSONValue(map[string]any{"GenerateBarcodeResponse": m})
	}
	if err != nil {
		return "", err
	}
	r, ok := v.(*response.GenerateBarcodeResponse)
	if !ok || entity.Deref(r.Barcode) == "" {
		return "", invalidResponse("no barcode in response")
	}
	return *r.Barcode, nil
}

// GenerateBarcode draws one barcode. The customer of r defaults to the
// configured one.
func (c *Client) GenerateBarcode(ctx context.Context, r *request.GenerateBarcode) (string, error) {
	req, err := c.buildBarcodeRequest(ctx, r)
	if err != nil {
		return "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	return c.processBarcodeResponse(resp)
}

// GenerateBarcodes draws one barcode per request concurrently. Results are
// keyed by the entity id of each request.
func (c *Client) GenerateBarcodes(ctx context.Context, rs []*request.GenerateBarcode) map[string]Result[string] {
	return runBatch(ctx, c, batchKeys(rs),
		func(i int) (*http.Request, error) { return c.buildBarcodeRequest(ctx, rs[i]) },
		c.processBarcodeResponse,
	)
}

// barcodeParams returns the type, range and serie of a barcode for a
// shipment to iso.
func (c *Client) barcodeParams(iso string) (typ, rng, serie string, err error) {
	iso = strings.ToUpper(strings.TrimSpace(iso))
	if iso == "" {
		return "", "", "", fmt.Errorf("client: empty country code: %w", errdefs.ErrInvalidArgument)
	}
	if threeSCountries[iso] {
		if c.customer == nil || entity.Deref(c.customer.CustomerCode) == "" {
			return "", "", "", fmt.Errorf("client: no customer code configured: %w", errdefs.ErrFailedPrecondition)
		}
		typ, rng = "3S", *c.customer.CustomerCode
	} else {
		if c.globalPack.Type == "" || c.globalPack.Range == "" {
			return "", "", "", fmt.Errorf("client: %s needs a GlobalPack barcode, none configured: %w", iso, errdefs.ErrFailedPrecondition)
		}
		typ, rng = c.globalPack.Type, c.globalPack.Range
	}
	serie, err = BarcodeSerie(typ, rng, iso != "NL")
	return typ, rng, serie, err
}

// GenerateBarcodeByCountryCode draws a barcode suited for a shipment to the
// country iso.
func (c *Client) GenerateBarcodeByCountryCode(ctx context.Context, iso string) (string, error) {
	typ, rng, serie, err := c.barcodeParams(iso)
	if err != nil {
		return "", err
	}
	return c.GenerateBarcode(ctx, request.NewGenerateBarcode(entity.NewBarcode(typ, rng, serie), c.customer))
}

// GenerateBarcodesByCountryCodes draws amounts[iso] barcodes per country.
// Barcodes drawn before a failure are returned along with the joined
// errors.
func (c *Client) GenerateBarcodesByCountryCodes(ctx context.Context, amounts map[string]int) (map[string][]string, error) {
	isos := make([]string, 0, len(amounts))
	for iso := range amounts {
		isos = append(isos, iso)
	}
	sort.Strings(isos)

	var (
		rs     []*request.GenerateBarcode
		owner  = map[string]string{}
		errs   []error
		result = make(map[string][]string, len(isos))
	)
	for _, iso := range isos {
		n := amounts[iso]
		if n < 0 {
			errs = append(errs, fmt.Errorf("client: %s: negative amount %d: %w", iso, n, errdefs.ErrInvalidArgument))
			continue
		}
		result[iso] = []string{}
		typ, rng, serie, err := c.barcodeParams(iso)
		if err != nil {
			errs = append(errs, fmt.Errorf("client: %s: %w", iso, err))
			continue
		}
		for i := 0; i < n; i++ {
			r := request.NewGenerateBarcode(entity.NewBarcode(typ, rng, serie), c.customer)
			owner[r.EntityID()] = iso
			rs = append(rs, r)
		}
	}

	res := c.GenerateBarcodes(ctx, rs)
	for _, r := range rs {
		out := res[r.EntityID()]
		iso := owner[r.EntityID()]
		if out.Err != nil {
			errs = append(errs, fmt.Errorf("client: %s: %w", iso, out.Err))
			continue
		}
		result[iso] = append(result[iso], out.Value)
	}
	return result, errors.Join(errs...)
}
