// Copyright (c) 2025  The ModTrad Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/go-enjin/be/pkg/log"
	bePath "github.com/go-enjin/be/pkg/path"

	"github.com/rimworld-latam/modtrad/commands/translations"
	"github.com/rimworld-latam/modtrad/pkg/globals"
	"github.com/rimworld-latam/modtrad/pkg/io"
	"github.com/rimworld-latam/modtrad/pkg/system"
)

func main() {
	basename := bePath.Base(os.Args[0])
	log.Config.AppName = basename
	log.Config.DisableTimestamp = true
	log.Config.LoggingFormat = log.FormatText
	log.Config.Apply()
	app := &cli.App{
		Name:    basename,
		Usage:   "RimWorld translation mod pack utility",
		Version: globals.DisplayVersion,
		Action: func(ctx *cli.Context) (err error) {
			cli.ShowAppHelpAndExit(ctx, 1)
			return
		},
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
	}
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Printf("%s %s\n", basename, c.App.Version)
	}
	var err error
	if err = system.Manager().
		AddCommand(translations.New()).
		Setup(app); err == nil {
		err = app.Run(os.Args)
		system.Manager().Shutdown()
	}
	if err != nil {
		io.StderrF("error: %v - %v\n", os.Args, err)
		os.Exit(1)
	}
}
