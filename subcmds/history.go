// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/pricemon/pricemon/api"
	"github.com/pricemon/pricemon/cli"
	"github.com/pricemon/pricemon/subcmds/cmdutil"
)

type History struct {
	cmdutil.ClientFlags

	url string

	limit int
}

func (c *History) Synopsis() string {
	return "Prints recorded price history"
}

func (c *History) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("history", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	fset.StringVar(&c.url, "url", "", "limit the output to one product url")
	fset.IntVar(&c.limit, "limit", 0, "max number of most recent entries per url (0 means all)")
	return fset, cli.CmdFunc(c.run)
}

func (c *History) run(ctx context.Context, args []string) error {
	req := &api.HistoryGetRequest{
		URL:   c.url,
		Limit: c.limit,
	}
	resp, err := cmdutil.Post[api.HistoryGetResponse](ctx, &c.ClientFlags, api.HistoryGetPath, req)
	if err != nil {
		return err
	}

	urls := make([]string, 0, len(resp.History))
	for u := range resp.History {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	for _, u := range urls {
		fmt.Fprintf(tw, "%s\n", u)
		for _, p := range resp.History[u] {
			fmt.Fprintf(tw, "\t%s\t$%s\n", p.Timestamp.Format("2006-01-02 15:04:05"), p.Price)
		}
	}
	return nil
}
