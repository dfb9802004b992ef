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
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/postnl/client"
	"dirpx.dev/postnl/internal/clientconfig"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configFile string
	apiKey     string
	sandbox    bool
	mode       string
	baseURL    string
	verbosity  int
}

func (o *globalOptions) install(flags *pflag.FlagSet) {
	flags.StringVar(&o.configFile, "config", os.Getenv("POSTNL_CONFIG"), "Path to an HCL configuration file")
	flags.StringVar(&o.apiKey, "api-key", "", "API key (overrides "+clientconfig.EnvAPIKey+")")
	flags.BoolVar(&o.sandbox, "sandbox", false, "Use the sandbox environment")
	flags.StringVar(&o.mode, "mode", "", `Transport, "rest" or "soap"`)
	flags.StringVar(&o.baseURL, "base-url", "", "Override the API base URL")
	flags.CountVarP(&o.verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
}

// postnlCli holds the streams and lazily built client of one invocation.
type postnlCli struct {
	out  io.Writer
	err  io.Writer
	opts globalOptions

	log    logr.Logger
	client *client.Client
}

func newPostnlCli(out, err io.Writer) *postnlCli {
	return &postnlCli{out: out, err: err, log: logr.Discard()}
}

func (cli *postnlCli) Out() io.Writer { return cli.out }

func (cli *postnlCli) Err() io.Writer { return cli.err }

// setup builds the logger once the flags are parsed.
func (cli *postnlCli) setup() {
	level := zap.NewAtomicLevelAt(zapcore.WarnLevel - zapcore.Level(cli.opts.verbosity))
	enc := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(cli.err), level)
	cli.log = zapr.NewLogger(zap.New(core)).WithName("postnl")
}

// Client returns the API client, loading the configuration on first use.
// Flags set on the command line win over the file and the environment.
func (cli *postnlCli) Client(cmd *cobra.Command) (*client.Client, error) {
	if cli.client != nil {
		return cli.client, nil
	}
	cfg, err := clientconfig.Load(cli.opts.configFile, nil)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.APIKey = cli.opts.apiKey
	}
	if flags.Changed("sandbox") {
		cfg.Sandbox = cli.opts.sandbox
	}
	if flags.Changed("mode") {
		cfg.Mode = cli.opts.mode
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = cli.opts.baseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key: set %s, api_key in the configuration file or --api-key", clientconfig.EnvAPIKey)
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, client.WithLogger(cli.log.WithName("client")))
	c, err := client.New(opts...)
	if err != nil {
		return nil, err
	}
	cli.log.V(1).Info("client ready", "url", c.BaseURL(), "mode", c.Mode().String())
	cli.client = c
	return c, nil
}

func newRootCommand(cli *postnlCli) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "postnl",
		Short:         "Generate barcodes and track shipments with the PostNL API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetOut(cli.Out())
	cmd.SetErr(cli.Err())
	cli.opts.install(cmd.PersistentFlags())

	cmd.AddCommand(
		newBarcodeCommand(cli),
		newSignatureCommand(cli),
		newStatusCommand(cli),
	)
	return cmd
}
