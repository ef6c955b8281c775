/*
 * dvrouted distance-vector routing daemon.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 */

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"dvrouted"
	"dvrouted/dvlog"
)

func main() {
	app := cli.NewApp()
	app.Name = "dvrouted"
	app.Usage = "distance-vector routing daemon"
	app.ArgsUsage = "<node-name>"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "node-file",
			Value: "../src/node.config",
			Usage: "path to the node-address table",
		},
		cli.StringFlag{
			Name:  "cost-file",
			Value: "../src/neighbor.config",
			Usage: "path to the adjacency-cost table",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "verbose logging, including full table dumps",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) != 1 || len(args[0]) != 1 {
		cli.ShowAppHelp(ctx)
		os.Exit(1)
	}
	localName := args[0][0]

	level := logrus.InfoLevel
	if ctx.Bool("debug") {
		level = logrus.DebugLevel
	}
	log := dvlog.New(level, ctx.Bool("debug"))

	router, err := dvrouted.New(dvrouted.Options{
		LocalName:    localName,
		NodeFile:     ctx.String("node-file"),
		CostFile:     ctx.String("cost-file"),
		Log:          log,
		ReportWriter: os.Stdout,
	})
	if err != nil {
		log.Error("startup failed", "error", err.Error())
		os.Exit(1)
	}

	router.Run()
	return nil
}
