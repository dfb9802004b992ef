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

package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dirpx.dev/postnl/client"
	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/entity/request"
)

func newBarcodeCommand(cli *postnlCli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "barcode",
		Short: "Generate shipment barcodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newBarcodeGenerateCommand(cli),
		newBarcodeCountryCommand(cli),
		newBarcodeBatchCommand(cli),
	)
	return cmd
}

type generateOptions struct {
	typ   string
	rng   string
	serie string
}

func newBarcodeGenerateCommand(cli *postnlCli) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [TYPE]",
		Short: "Generate one barcode of TYPE (default 3S)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.typ = "3S"
			if len(args) > 0 {
				opts.typ = strings.ToUpper(args[0])
			}
			return runBarcodeGenerate(cmd, cli, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.rng, "range", "", "Barcode range (default: the customer code)")
	flags.StringVar(&opts.serie, "serie", "", "Barcode serie (default: derived from type and range)")
	return cmd
}

func runBarcodeGenerate(cmd *cobra.Command, cli *postnlCli, opts generateOptions) error {
	c, err := cli.Client(cmd)
	if err != nil {
		return err
	}
	rng := opts.rng
	if rng == "" && c.Customer() != nil {
		rng = entity.Deref(c.Customer().CustomerCode)
	}
	if rng == "" {
		return errors.New("no barcode range: configure a customer code or pass --range")
	}
	serie := opts.serie
	if serie == "" {
		if serie, err = client.BarcodeSerie(opts.typ, rng, false); err != nil {
			return err
		}
	}

	barcode, err := c.GenerateBarcode(cmd.Context(),
		request.NewGenerateBarcode(entity.NewBarcode(opts.typ, rng, serie), nil))
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.Out(), "The generated %s barcode is: %s\n", opts.typ, barcode)
	return nil
}

func newBarcodeCountryCommand(cli *postnlCli) *cobra.Command {
	return &cobra.Command{
		Use:   "country COUNTRY",
		Short: "Generate a barcode for a shipment to COUNTRY (ISO 3166-1 alpha-2)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cli.Client(cmd)
			if err != nil {
				return err
			}
			country := strings.ToUpper(args[0])
			barcode, err := c.GenerateBarcodeByCountryCode(cmd.Context(), country)
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.Out(), "The generated barcode for %s: %s\n", country, barcode)
			return nil
		},
	}
}

type batchOptions struct {
	countries []string
	amounts   []int
}

func newBarcodeBatchCommand(cli *postnlCli) *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "batch --country NL,DE --amount 3,5",
		Short: "Generate barcodes for several countries at once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBarcodeBatch(cmd, cli, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.countries, "country", nil, "Destination countries")
	flags.IntSliceVar(&opts.amounts, "amount", nil, "Number of barcodes per country, in --country order")
	_ = cmd.MarkFlagRequired("country")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func runBarcodeBatch(cmd *cobra.Command, cli *postnlCli, opts batchOptions) error {
	if len(opts.countries) != len(opts.amounts) {
		return fmt.Errorf("got %d countries and %d amounts, they must match", len(opts.countries), len(opts.amounts))
	}
	amounts := make(map[string]int, len(opts.countries))
	for i, country := range opts.countries {
		amounts[strings.ToUpper(strings.TrimSpace(country))] += opts.amounts[i]
	}

	c, err := cli.Client(cmd)
	if err != nil {
		return err
	}
	barcodes, err := c.GenerateBarcodesByCountryCodes(cmd.Context(), amounts)

	countries := make([]string, 0, len(barcodes))
	for country := range barcodes {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	w := tabwriter.NewWriter(cli.Out(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Country\tBarcode(s)")
	for _, country := range countries {
		fmt.Fprintf(w, "%s\t%s\n", country, strings.Join(barcodes[country], ", "))
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}
