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
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/entity/request"
)

func newSignatureCommand(cli *postnlCli) *cobra.Command {
	return &cobra.Command{
		Use:   "signature BARCODE",
		Short: "Show the delivery signature of a shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cli.Client(cmd)
			if err != nil {
				return err
			}
			sig, err := c.GetSignature(cmd.Context(), request.NewGetSignature(args[0]))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cli.Out(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Barcode:\t%s\n", entity.Deref(sig.Barcode))
			fmt.Fprintf(w, "Signed:\t%s\n", entity.Deref(sig.SignatureDate))
			fmt.Fprintf(w, "Image:\t%d bytes (base64)\n", len(entity.Deref(sig.SignatureImage)))
			return w.Flush()
		},
	}
}

func newStatusCommand(cli *postnlCli) *cobra.Command {
	return &cobra.Command{
		Use:   "status BARCODE",
		Short: "Show the current status of a shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cli.Client(cmd)
			if err != nil {
				return err
			}
			st, err := c.GetCurrentStatus(cmd.Context(), request.NewCurrentStatus(args[0]))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cli.Out(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "Barcode\tStatus\tDescription\tTime")
			for _, sh := range st.Shipments {
				var code, desc, at string
				if sh.Status != nil {
					code = entity.Deref(sh.Status.StatusCode)
					desc = entity.Deref(sh.Status.StatusDescription)
					at = entity.Deref(sh.Status.TimeStamp)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", entity.Deref(sh.Barcode), code, desc, at)
			}
			for _, warn := range st.Warnings {
				fmt.Fprintf(w, "warning %s:\t%s\n", entity.Deref(warn.Code), entity.Deref(warn.Description))
			}
			return w.Flush()
		},
	}
}
