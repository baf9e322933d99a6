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
)

type Delete struct {
	cmdutil.ClientFlags
}

func (c *Delete) Synopsis() string {
	return "Removes a product from the monitored list"
}

func (c *Delete) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("delete", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return fset, cli.CmdFunc(c.run)
}

func (c *Delete) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("command takes exactly one argument (product index)")
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("could not parse product index %q: %w", args[0], err)
	}

	req := &api.ProductDeleteRequest{Index: index}
	resp, err := cmdutil.Post[api.ProductDeleteResponse](ctx, &c.ClientFlags, api.ProductDeletePath, req)
	if err != nil {
		return err
	}
	fmt.Printf("deleted product %d (%d remaining)\n", index, resp.TotalProducts)
	return nil
}
