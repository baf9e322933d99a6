// Copyright (c) 2025 BVK Chaitanya

package config

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/pricemon/pricemon/api"
	"github.com/pricemon/pricemon/cli"
	"github.com/pricemon/pricemon/subcmds/cmdutil"
)

type Get struct {
	cmdutil.ClientFlags
}

func (c *Get) Synopsis() string {
	return "Prints the current monitor configuration"
}

func (c *Get) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("get", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return fset, cli.CmdFunc(c.run)
}

func (c *Get) run(ctx context.Context, args []string) error {
	resp, err := cmdutil.Post[api.ConfigGetResponse](ctx, &c.ClientFlags, api.ConfigGetPath, &api.ConfigGetRequest{})
	if err != nil {
		return err
	}
	js, err := json.MarshalIndent(resp.Config, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", js)
	return nil
}
