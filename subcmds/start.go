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

type Start struct {
	cmdutil.ClientFlags
}

func (c *Start) Synopsis() string {
	return "Starts the periodic price checks"
}

func (c *Start) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("start", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return fset, cli.CmdFunc(c.run)
}

func (c *Start) run(ctx context.Context, args []string) error {
	resp, err := cmdutil.Post[api.MonitorStartResponse](ctx, &c.ClientFlags, api.MonitorStartPath, &api.MonitorStartRequest{})
	if err != nil {
		return err
	}
	fmt.Println(resp.State)
	return nil
}
