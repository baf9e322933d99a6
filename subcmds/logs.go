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

type Logs struct {
	cmdutil.ClientFlags

	numLines int
}

func (c *Logs) Synopsis() string {
	return "Prints most recent daemon log lines"
}

func (c *Logs) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("logs", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	fset.IntVar(&c.numLines, "n", 100, "number of most recent log lines")
	return fset, cli.CmdFunc(c.run)
}

func (c *Logs) run(ctx context.Context, args []string) error {
	req := &api.LogsGetRequest{NumLines: c.numLines}
	resp, err := cmdutil.Post[api.LogsGetResponse](ctx, &c.ClientFlags, api.LogsGetPath, req)
	if err != nil {
		return err
	}
	for _, line := range resp.Lines {
		fmt.Println(line)
	}
	return nil
}
