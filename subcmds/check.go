// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pricemon/pricemon/api"
	"github.com/pricemon/pricemon/cli"
	"github.com/pricemon/pricemon/subcmds/cmdutil"
)

type Check struct {
	cmdutil.ClientFlags
}

func (c *Check) Synopsis() string {
	return "Checks all product prices once, right now"
}

func (c *Check) CommandHelp() string {
	return `

Command "check" runs one sweep over all configured products immediately,
independent of the periodic schedule. Prices found are recorded in the price
history and alerts are sent for products at or below their target price.

`
}

func (c *Check) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("check", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return fset, cli.CmdFunc(c.run)
}

func (c *Check) run(ctx context.Context, args []string) error {
	resp, err := cmdutil.Post[api.MonitorCheckNowResponse](ctx, &c.ClientFlags, api.MonitorCheckNowPath, &api.MonitorCheckNowRequest{})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "Name\tPrice\tTarget\tMet\tError\n")
	for _, r := range resp.Results {
		price := "-"
		if r.CurrentPrice != nil {
			price = "$" + r.CurrentPrice.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t$%s\t%t\t%s\n", r.Name, price, r.TargetPrice, r.PriceMet, r.Error)
	}
	return nil
}
