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

// Package clientconfig loads the settings of the postnl command from an HCL
// file and the environment.
//
// A configuration file looks like:
//
//	api_key = env.POSTNL_API_KEY
//	sandbox = true
//	mode    = "soap"
//
//	customer {
//	  number = "11223344"
//	  code   = "DEVC"
//	}
//
//	globalpack {
//	  type  = "CD"
//	  range = "1234"
//	}
//
// Environment variables override the file when set and not empty, and unset
// values fall back to Defaults.
package clientconfig

import (
	"fmt"
	"os"
	"strconv"

	"dario.cat/mergo"
	"github.com/containerd/errdefs"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"dirpx.dev/postnl/client"
	"dirpx.dev/postnl/entity"
)

// Environment variables read by Load.
const (
	EnvAPIKey         = "POSTNL_API_KEY"
	EnvSandbox        = "POSTNL_SANDBOX"
	EnvCustomerCode   = "POSTNL_CUSTOMER_CODE"
	EnvCustomerNumber = "POSTNL_CUSTOMER_NUMBER"
	EnvMode           = "POSTNL_MODE"
)

// Config holds the client settings of the command.
type Config struct {
	APIKey      string      `hcl:"api_key,optional"`
	Sandbox     bool        `hcl:"sandbox,optional"`
	BaseURL     string      `hcl:"base_url,optional"`
	Mode        string      `hcl:"mode,optional"`
	Concurrency int         `hcl:"concurrency,optional"`
	RateLimit   float64     `hcl:"rate_limit,optional"`
	RateBurst   int         `hcl:"rate_burst,optional"`
	Customer    *Customer   `hcl:"customer,block"`
	GlobalPack  *GlobalPack `hcl:"globalpack,block"`
}

// Customer identifies the carrier account.
type Customer struct {
	Number             string `hcl:"number,optional"`
	Code               string `hcl:"code,optional"`
	CollectionLocation string `hcl:"collection_location,optional"`
}

// GlobalPack is the barcode type and range used outside the 3S countries.
type GlobalPack struct {
	Type  string `hcl:"type"`
	Range string `hcl:"range"`
}

// Defaults returns the settings used for anything left unset.
func Defaults() Config {
	return Config{
		Mode:        client.ModeREST.String(),
		Concurrency: 4,
		RateBurst:   1,
	}
}

// LookupFunc reports the value of an environment variable.
type LookupFunc func(key string) (string, bool)

// Load reads the file at path, when path is not empty, applies the
// environment overrides found through lookup and fills the rest from
// Defaults. A nil lookup reads the process environment.
func Load(path string, lookup LookupFunc) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg := &Config{}
	if path != "" {
		if err := decodeFile(path, cfg, lookup); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := mergo.Merge(cfg, Defaults()); err != nil {
		return nil, fmt.Errorf("clientconfig: defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config, lookup LookupFunc) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("clientconfig: failed to parse %s: %w: %w", path, diags, errdefs.ErrInvalidArgument)
	}
	diags = gohcl.DecodeBody(file.Body, evalContext(file.Body, lookup), cfg)
	if diags.HasErrors() {
		return fmt.Errorf("clientconfig: failed to decode %s: %w: %w", path, diags, errdefs.ErrInvalidArgument)
	}
	return nil
}

// evalContext exposes, as attributes of the env object, the variables body
// refers to that lookup can resolve.
func evalContext(body hcl.Body, lookup LookupFunc) *hcl.EvalContext {
	vars := map[string]cty.Value{}
	if sb, ok := body.(*hclsyntax.Body); ok {
		hclsyntax.VisitAll(sb, func(n hclsyntax.Node) hcl.Diagnostics {
			if name, ok := envName(n); ok {
				if v, found := lookup(name); found {
					vars[name] = cty.StringVal(v)
				}
			}
			return nil
		})
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

// envName returns NAME for the expressions env.NAME and env["NAME"].
func envName(n hclsyntax.Node) (string, bool) {
	expr, ok := n.(*hclsyntax.ScopeTraversalExpr)
	if !ok || len(expr.Traversal) < 2 || expr.Traversal.RootName() != "env" {
		return "", false
	}
	switch step := expr.Traversal[1].(type) {
	case hcl.TraverseAttr:
		return step.Name, true
	case hcl.TraverseIndex:
		if step.Key.Type() == cty.String && step.Key.IsKnown() && !step.Key.IsNull() {
			return step.Key.AsString(), true
		}
	}
	return "", false
}

func applyEnv(cfg *Config, lookup LookupFunc) error {
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		cfg.APIKey = v
	}
	if v, ok := lookup(EnvSandbox); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("clientconfig: %s=%q: %w", EnvSandbox, v, errdefs.ErrInvalidArgument)
		}
		cfg.Sandbox = b
	}
	if v, ok := lookup(EnvMode); ok && v != "" {
		cfg.Mode = v
	}
	if v, ok := lookup(EnvCustomerCode); ok && v != "" {
		cfg.customer().Code = v
	}
	if v, ok := lookup(EnvCustomerNumber); ok && v != "" {
		cfg.customer().Number = v
	}
	return nil
}

func (c *Config) customer() *Customer {
	if c.Customer == nil {
		c.Customer = &Customer{}
	}
	return c.Customer
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	if _, err := client.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("clientconfig: concurrency %d: %w", c.Concurrency, errdefs.ErrInvalidArgument)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("clientconfig: rate_limit %v: %w", c.RateLimit, errdefs.ErrInvalidArgument)
	}
	return nil
}

// Options converts c into client options.
func (c *Config) Options() ([]client.Opt, error) {
	mode, err := client.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	opts := []client.Opt{
		client.WithAPIKey(c.APIKey),
		client.WithSandbox(c.Sandbox),
		client.WithMode(mode),
		client.WithConcurrency(c.Concurrency),
		client.WithRateLimit(c.RateLimit, c.RateBurst),
	}
	if c.BaseURL != "" {
		opts = append(opts, client.WithBaseURL(c.BaseURL))
	}
	if cu := c.Customer; cu != nil && (cu.Number != "" || cu.Code != "") {
		customer := entity.NewCustomer(cu.Number, cu.Code)
		if cu.CollectionLocation != "" {
			customer.CollectionLocation = entity.String(cu.CollectionLocation)
		}
		opts = append(opts, client.WithCustomer(customer))
	}
	if gp := c.GlobalPack; gp != nil {
		opts = append(opts, client.WithGlobalPack(gp.Type, gp.Range))
	}
	return opts, nil
}
