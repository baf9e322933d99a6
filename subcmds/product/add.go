// Copyright (c) 2025 BVK Chaitanya

package product

import (
	"context"
	"flag"
	"fmt"

	"github.com/pricemon/pricemon/api"
	"github.com/pricemon/pricemon/cli"
	"github.com/pricemon/pricemon/subcmds/cmdutil"
	"github.com/shopspring/decimal"
)

type Add struct {
	cmdutil.ClientFlags

	name string

	targetPrice string
}

func (c *Add) Synopsis() string {
	return "Adds a product to the monitored list"
}

func (c *Add) CommandHelp() string {
	return `

Command "add" adds a product page url to the monitored product list. The
product is checked on every sweep and an alert is sent when its price drops
to or below the target price.

  $ pricemon product add -name "Headphones" -target-price 49.99 https://www.example.com/dp/B0TEST

`
}

func (c *Add) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("add", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	fset.StringVar(&c.name, "name", "", "name for the product")
	fset.StringVar(&c.targetPrice, "target-price", "", "target price for alerts")
	return fset, cli.CmdFunc(c.run)
}

func (c *Add) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("command takes exactly one argument (product url)")
	}
	if len(c.name) == 0 {
		return fmt.Errorf("flag -name is required")
	}
	target, err := decimal.NewFromString(c.targetPrice)
	if err != nil {
		return fmt.Errorf("could not parse -target-price value %q: %w", c.targetPrice, err)
	}

	req := &api.ProductAddRequest{
		Name:        c.name,
		URL:         args[0],
		TargetPrice: target,
	}
	if err := req.Check(); err != nil {
		return err
	}
	resp, err := cmdutil.Post[api.ProductAddResponse](ctx, &c.ClientFlags, api.ProductAddPath, req)
	if err != nil {
		return err
	}
	fmt.Printf("added product %d (%d total)\n", resp.Index, resp.TotalProducts)
	return nil
}
