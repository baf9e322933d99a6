// Copyright (c) 2025 BVK Chaitanya

package config

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/pricemon/pricemon/api"
	"github.com/pricemon/pricemon/cli"
	"github.com/pricemon/pricemon/subcmds/cmdutil"
)

type SetInterval struct {
	cmdutil.ClientFlags
}

func (c *SetInterval) Synopsis() string {
	return "Updates the price check interval"
}

func (c *SetInterval) CommandHelp() string {
	return `

Command "set-interval" updates the periodic check interval to the given
number of minutes. A running monitor picks the new interval up at its next
sweep without a restart.

  $ pricemon config set-interval 120

`
}

func (c *SetInterval) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("set-interval", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return fset, cli.CmdFunc(c.run)
}

func (c *SetInterval) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("command takes exactly one argument (minutes)")
	}
	minutes, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("could not parse minutes value %q: %w", args[0], err)
	}

	req := &api.ConfigUpdateRequest{CheckIntervalMinutes: &minutes}
	resp, err := cmdutil.Post[api.ConfigUpdateResponse](ctx, &c.ClientFlags, api.ConfigUpdatePath, req)
	if err != nil {
		return err
	}
	fmt.Printf("check interval is now %d minutes\n", resp.Config.CheckIntervalMinutes)
	return nil
}
