// Copyright (c) 2025 BVK Chaitanya

package main

import (
	"context"
	"log"
	"os"

	"github.com/pricemon/pricemon/cli"
	"github.com/pricemon/pricemon/envfile"
	"github.com/pricemon/pricemon/subcmds"
	configcmd "github.com/pricemon/pricemon/subcmds/config"
	"github.com/pricemon/pricemon/subcmds/product"
)

func main() {
	// SMTP_* and PRICEMON_* variables can come from an env file.
	if err := envfile.UpdateEnv(".env", envfile.SearchCurrentDir(true)); err != nil {
		log.Printf("could not load .env file (ignored): %v", err)
	}

	productCmds := []cli.Command{
		new(product.Add),
		new(product.List),
		new(product.Update),
		new(product.Delete),
	}

	configCmds := []cli.Command{
		new(configcmd.Get),
		new(configcmd.SetInterval),
	}

	cmds := []cli.Command{
		new(subcmds.Run),
		new(subcmds.Setup),
		new(subcmds.Status),
		new(subcmds.Start),
		new(subcmds.Stop),
		new(subcmds.Check),
		new(subcmds.History),
		new(subcmds.Logs),
		cli.CommandGroup("product", "Manage monitored products", productCmds...),
		cli.CommandGroup("config", "View/update monitor configuration", configCmds...),
	}
	if err := cli.Run(context.Background(), cmds, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
