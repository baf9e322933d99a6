// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"flag"
	"fmt"

	"github.com/pricemon/pricemon/api"
	"github.com/pricemon/pricemon/cli"
	"github.com/pricemon/pricemon/subcmds/cmdutil"
)

type Stop struct {
	cmdutil.ClientFlags
}

func (c *Stop) Synopsis() string {
	return "Stops the periodic price checks"
}

func (c *Stop) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("stop", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return fset, cli.CmdFunc(c.run)
}

func (c *Stop) run(ctx context.Context, args []string) error {
	resp, err := cmdutil.Post[api.MonitorStopResponse](ctx, &c.ClientFlags, api.MonitorStopPath, &api.MonitorStopRequest{})
	if err != nil {
		return err
	}
	fmt.Println(resp.State)
	return nil
}
