// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "asyncldb-cli"
	app.Usage = "inspect and modify an asyncldb database"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: "*configuration `FILE`",
		},
		cli.BoolFlag{
			Name:  "hex, x",
			Usage: " keys and values are hex encoded",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "version",
			Usage:  "show tool and engine version",
			Action: runVersion,
		},
		{
			Name:      "get",
			Usage:     "read one value",
			ArgsUsage: "key",
			Action:    runGet,
		},
		{
			Name:      "put",
			Usage:     "store one key/value pair",
			ArgsUsage: "key value",
			Action:    runPut,
		},
		{
			Name:      "delete",
			Usage:     "remove one key",
			ArgsUsage: "key",
			Action:    runDelete,
		},
		{
			Name:      "batch",
			Usage:     "apply put/del lines from stdin as one atomic write",
			ArgsUsage: "< operations-file",
			Action:    runBatch,
		},
		{
			Name:   "dump",
			Usage:  "list all keys and values in order",
			Action: runDump,
		},
		{
			Name:   "destroy",
			Usage:  "remove the database files",
			Action: runDestroy,
		},
		{
			Name:   "repair",
			Usage:  "recover a damaged database",
			Action: runRepair,
		},
	}

	if err := app.Run(os.Args); err != nil {
		exitwithstatus.Message("%s: error: %s", app.Name, err)
	}
}
