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

package client_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/containerd/errdefs"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"dirpx.dev/postnl/client"
	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/entity/request"
	"dirpx.dev/postnl/service"
	"dirpx.dev/postnl/wire"
)

func newShipment(barcode string) *entity.Shipment {
	s := entity.New[entity.Shipment]()
	if barcode != "" {
		s.Barcode = entity.String(barcode)
	}
	s.ProductCodeDelivery = entity.String("3085")
	return s
}

func TestConfirmShipment(t *testing.T) {
	cli, fake := newTestClient(t)

	out, err := cli.ConfirmShipment(context.Background(),
		request.NewConfirming(nil, newShipment("3SDEVC000000001"), newShipment("3SDEVC000000002")))
	assert.NilError(t, err)
	assert.Assert(t, is.Len(out, 2))
	assert.Equal(t, entity.Deref(out[0].Barcode), "3SDEVC000000001")
	assert.Equal(t, entity.Deref(out[1].Barcode), "3SDEVC000000002")

	req := lastRequest(t, fake)
	assert.Equal(t, req.Path, "/shipment/v1_10/confirm")
	assert.Equal(t, req.Header.Get("Content-Type"), "application/json;charset=UTF-8")
	v, err := wire.Unmarshal(req.Body)
	assert.NilError(t, err)
	body := v.(map[string]any)
	assert.Equal(t, body["Customer"].(map[string]any)["CustomerCode"], "DEVC")
	assert.Check(t, body["Message"] != nil)
	assert.Check(t, is.Len(body["Shipments"].([]any), 2))
}

func TestConfirmShipment_CarrierRejects(t *testing.T) {
	cli, _ := newTestClient(t)

	_, err := cli.ConfirmShipment(context.Background(), request.NewConfirming(nil, newShipment("")))
	var cerr *client.CarrierError
	assert.Assert(t, errors.As(err, &cerr), "got %v", err)
	assert.Equal(t, cerr.Code, "3")
	assert.Equal(t, cerr.Message, "Shipment without Barcode")
	assert.Check(t, errdefs.IsInvalidArgument(err))
}

func TestConfirmShipment_NoShipments(t *testing.T) {
	cli, fake := newTestClient(t)

	_, err := cli.ConfirmShipment(context.Background(), request.NewConfirming(nil))
	assert.Check(t, errdefs.IsInvalidArgument(err), "got %v", err)
	assert.Check(t, is.Len(fake.Requests(), 0))
}

func TestConfirmShipments(t *testing.T) {
	cli, _ := newTestClient(t)

	rs := []*request.Confirming{
		request.NewConfirming(nil, newShipment("3SDEVC000000001")),
		request.NewConfirming(nil, newShipment("")),
	}
	res := cli.ConfirmShipments(context.Background(), rs)
	assert.Assert(t, is.Len(res, 2))

	ok := res[rs[0].EntityID()]
	assert.NilError(t, ok.Err)
	assert.Equal(t, entity.Deref(ok.Value[0].Barcode), "3SDEVC000000001")
	assert.Check(t, errdefs.IsInvalidArgument(res[rs[1].EntityID()].Err))
}

func TestGenerateLabel(t *testing.T) {
	cli, fake := newTestClient(t)

	out, err := cli.GenerateLabel(context.Background(),
		request.NewGenerateLabel(nil, "GraphicFile|PDF", newShipment("3SDEVC000000001")), true)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(out.ResponseShipments, 1))
	sh := out.ResponseShipments[0]
	assert.Equal(t, entity.Deref(sh.Barcode), "3SDEVC000000001")
	assert.Equal(t, entity.Deref(sh.ProductCodeDelivery), "3085")
	assert.Assert(t, is.Len(sh.Labels, 1))
	assert.Equal(t, entity.Deref(sh.Labels[0].Labeltype), "Label")
	assert.Equal(t, entity.Deref(sh.Labels[0].Content), "JVBERi0xLjQK")

	req := lastRequest(t, fake)
	assert.Equal(t, req.Path, "/shipment/v2_2/label")
	assert.Equal(t, req.Query.Get("confirm"), "true")
}

func TestGenerateLabels(t *testing.T) {
	cli, fake := newTestClient(t)

	rs := []*request.GenerateLabel{
		request.NewGenerateLabel(nil, "GraphicFile|PDF", newShipment("3SDEVC000000001")),
		request.NewGenerateLabel(nil, "GraphicFile|PDF", newShipment("3SDEVC000000002")),
	}
	res := cli.GenerateLabels(context.Background(), rs, false)
	for _, r := range rs {
		out := res[r.EntityID()]
		assert.NilError(t, out.Err)
		assert.Check(t, is.Equal(entity.Deref(out.Value.ResponseShipments[0].Barcode), entity.Deref(r.Shipments[0].Barcode)))
	}
	for _, req := range fake.Requests() {
		assert.Check(t, is.Equal(req.Query.Get("confirm"), "false"))
	}
}

func TestGetDeliveryDate(t *testing.T) {
	cli, fake := newTestClient(t)

	cdd := entity.New[request.CalculateDeliveryDate]()
	cdd.ShippingDate = entity.String("29-06-2024 14:00:00")
	cdd.ShippingDuration = entity.Int(1)
	cdd.PostalCode = entity.String("2132WT")
	cdd.Options = []string{"Daytime", "Evening"}
	r := entity.New[request.GetDeliveryDate]()
	r.CalculateDeliveryDate = cdd

	out, err := cli.GetDeliveryDate(context.Background(), r)
	assert.NilError(t, err)
	assert.Equal(t, entity.Deref(out.DeliveryDate), "01-07-2024")
	assert.DeepEqual(t, out.Options, []string{"Daytime", "Evening"})

	req := lastRequest(t, fake)
	assert.Equal(t, req.Query.Get("CountryCode"), "NL")
	assert.Equal(t, req.Query.Get("ShippingDuration"), "1")
	assert.DeepEqual(t, req.Query["Options"], []string{"Daytime", "Evening"})
}

func TestGetDeliveryDate_Missing(t *testing.T) {
	cli, _ := newTestClient(t)

	_, err := cli.GetDeliveryDate(context.Background(), entity.New[request.GetDeliveryDate]())
	assert.Check(t, errdefs.IsInvalidArgument(err), "got %v", err)
}

func TestGetSignature(t *testing.T) {
	cli, fake := newTestClient(t)

	out, err := cli.GetSignature(context.Background(), request.NewGetSignature("3SDEVC000000001"))
	assert.NilError(t, err)
	assert.Equal(t, entity.Deref(out.Barcode), "3SDEVC000000001")
	assert.Equal(t, entity.Deref(out.SignatureImage), "iVBORw0KGgo=")
	assert.Equal(t, lastRequest(t, fake).Path, "/shipment/v2/status/signature/3SDEVC000000001")

	fake.Forget("3SDEVC000000009")
	_, err = cli.GetSignature(context.Background(), request.NewGetSignature("3SDEVC000000009"))
	assert.Check(t, errdefs.IsNotFound(err), "got %v", err)
}

func TestGetSignatures(t *testing.T) {
	cli, fake := newTestClient(t)
	fake.Forget("3SDEVC000000002")

	rs := []*request.GetSignature{
		request.NewGetSignature("3SDEVC000000001"),
		request.NewGetSignature("3SDEVC000000002"),
	}
	res := cli.GetSignatures(context.Background(), rs)
	assert.NilError(t, res[rs[0].EntityID()].Err)
	assert.Check(t, errdefs.IsNotFound(res[rs[1].EntityID()].Err))
}

func TestGetCurrentStatus(t *testing.T) {
	cli, fake := newTestClient(t)

	out, err := cli.GetCurrentStatus(context.Background(), request.NewCurrentStatus("3SDEVC000000001"))
	assert.NilError(t, err)
	assert.Assert(t, is.Len(out.Shipments, 1))
	sh := out.Shipments[0]
	assert.Equal(t, entity.Deref(sh.Barcode), "3SDEVC000000001")
	assert.Equal(t, entity.Deref(sh.Status.StatusCode), "7")
	assert.Assert(t, is.Len(sh.Addresses, 1))
	assert.Equal(t, entity.Deref(sh.Addresses[0].City), "Hoofddorp")
	assert.Check(t, is.Len(out.Warnings, 0))

	req := lastRequest(t, fake)
	assert.Equal(t, req.Path, "/shipment/v2/status/barcode/3SDEVC000000001")
	assert.Equal(t, req.Query.Get("detail"), "false")
	assert.Equal(t, req.Query.Get("language"), "NL")

	_, err = cli.GetCurrentStatus(context.Background(), request.NewCurrentStatus(""))
	assert.Check(t, errdefs.IsInvalidArgument(err), "got %v", err)
}

func TestGetTimeframes(t *testing.T) {
	cli, fake := newTestClient(t)

	tf := entity.New[entity.Timeframe]()
	tf.StartDate = entity.String("30-06-2024")
	tf.EndDate = entity.String("02-07-2024")
	tf.PostalCode = entity.String("2132WT")
	tf.HouseNr = entity.String("42")
	tf.Options = []string{"Daytime", "Evening"}
	r := entity.New[request.GetTimeframes]()
	r.Timeframe = []*entity.Timeframe{tf}

	out, err := cli.GetTimeframes(context.Background(), r)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(out.Timeframes, 1))
	day := out.Timeframes[0]
	assert.Equal(t, entity.Deref(day.Date), "30-06-2024")
	assert.Assert(t, is.Len(day.Timeframes, 1))
	assert.Equal(t, entity.Deref(day.Timeframes[0].From), "14:00:00")
	assert.DeepEqual(t, day.Timeframes[0].Options, []string{"Daytime"})
	assert.Assert(t, is.Len(out.ReasonNoTimeframes, 1))
	assert.Equal(t, entity.Deref(out.ReasonNoTimeframes[0].Code), "05")
	assert.DeepEqual(t, out.ReasonNoTimeframes[0].Options, []string{"Evening"})

	req := lastRequest(t, fake)
	assert.Equal(t, req.Query.Get("AllowSundaySorting"), "false")
	assert.Equal(t, req.Query.Get("HouseNumber"), "42")
	assert.Equal(t, req.Query.Get("CountryCode"), "NL")
	assert.DeepEqual(t, req.Query["Options"], []string{"Daytime", "Evening"})
}

func TestConcurrentRequestsShareCustomer(t *testing.T) {
	cli, _ := newTestClient(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := cli.ConfirmShipment(ctx, request.NewConfirming(nil, newShipment("3SDEVC000000001")))
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := cli.GenerateLabel(ctx, request.NewGenerateLabel(nil, "", newShipment("3SDEVC000000002")), false)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NilError(t, err)
	}
	assert.Equal(t, cli.Customer().CurrentService(), service.None)
}
