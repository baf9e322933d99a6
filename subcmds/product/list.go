// Copyright (c) 2025 BVK Chaitanya

package product

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

type List struct {
	cmdutil.ClientFlags
}

func (c *List) Synopsis() string {
	return "Prints the monitored product list"
}

func (c *List) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("list", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return fset, cli.CmdFunc(c.run)
}

func (c *List) run(ctx context.Context, args []string) error {
	resp, err := cmdutil.Post[api.ProductListResponse](ctx, &c.ClientFlags, api.ProductListPath, &api.ProductListRequest{})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "Index\tName\tTarget\tURL\n")
	for i, p := range resp.Products {
		fmt.Fprintf(tw, "%d\t%s\t$%s\t%s\n", i, p.Name, p.TargetPrice, p.URL)
	}
	return nil
}
