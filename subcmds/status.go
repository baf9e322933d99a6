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

type Status struct {
	cmdutil.ClientFlags
}

func (c *Status) Synopsis() string {
	return "Prints a summary of the price monitor state"
}

func (c *Status) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("status", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return fset, cli.CmdFunc(c.run)
}

func (c *Status) run(ctx context.Context, args []string) error {
	resp, err := cmdutil.Post[api.StatusResponse](ctx, &c.ClientFlags, api.StatusPath, &api.StatusRequest{})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	state := "STOPPED"
	if resp.IsRunning {
		state = "RUNNING"
	}
	fmt.Fprintf(tw, "Monitor:\t%s\n", state)
	if resp.LastCheck != nil {
		fmt.Fprintf(tw, "Last Check:\t%s\n", resp.LastCheck.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(tw, "Products:\t%d\n", resp.TotalProducts)
	fmt.Fprintf(tw, "Check Interval:\t%d minutes\n", resp.CheckIntervalMinutes)
	fmt.Fprintf(tw, "Server PID:\t%d\n", resp.ServerPID)
	fmt.Fprintf(tw, "Server Uptime:\t%s\n", resp.ServerUptime)
	if resp.ServerMemoryRSS != 0 {
		fmt.Fprintf(tw, "Server Memory:\t%d MiB\n", resp.ServerMemoryRSS/1024/1024)
	}
	return nil
}
