// Copyright (c) 2025 BVK Chaitanya

package product

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/pricemon/pricemon/api"
	"github.com/pricemon/pricemon/cli"
	"github.com/pricemon/pricemon/subcmds/cmdutil"
	"github.com/shopspring/decimal"
)

type Update struct {
	cmdutil.ClientFlags

	name string

	url string

	targetPrice string
}

func (c *Update) Synopsis() string {
	return "Updates fields of a monitored product"
}

func (c *Update) CommandHelp() string {
	return `

Command "update" changes one or more fields of the product at the given
index. Fields without a flag keep their current values.

  $ pricemon product update -target-price 44.99 0

`
}

func (c *Update) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("update", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	fset.StringVar(&c.name, "name", "", "new name for the product")
	fset.StringVar(&c.url, "url", "", "new page url for the product")
	fset.StringVar(&c.targetPrice, "target-price", "", "new target price for the product")
	return fset, cli.CmdFunc(c.run)
}

func (c *Update) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("command takes exactly one argument (product index)")
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("could not parse product index %q: %w", args[0], err)
	}

	req := &api.ProductUpdateRequest{Index: index}
	if len(c.name) != 0 {
		req.Name = &c.name
	}
	if len(c.url) != 0 {
		req.URL = &c.url
	}
	if len(c.targetPrice) != 0 {
		target, err := decimal.NewFromString(c.targetPrice)
		if err != nil {
			return fmt.Errorf("could not parse -target-price value %q: %w", c.targetPrice, err)
		}
		req.TargetPrice = &target
	}
	if err := req.Check(); err != nil {
		return err
	}

	resp, err := cmdutil.Post[api.ProductUpdateResponse](ctx, &c.ClientFlags, api.ProductUpdatePath, req)
	if err != nil {
		return err
	}
	fmt.Printf("updated product %d: %s at $%s\n", index, resp.Product.Name, resp.Product.TargetPrice)
	return nil
}
