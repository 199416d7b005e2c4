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

package translations

import (
	"github.com/urfave/cli/v2"

	"github.com/rimworld-latam/modtrad/pkg/profiling"
	"github.com/rimworld-latam/modtrad/pkg/system"
)

func (c *Command) makeMonitorCommand(app *cli.App) (cmd *cli.Command) {
	cmd = &cli.Command{
		Name:      "monitor",
		Category:  system.GeneralCategory,
		Usage:     "full-screen view of translation mod pack compiles",
		UsageText: app.Name + " monitor [options]",
		Action:    c.actionMonitor,
		Flags: []cli.Flag{
			makeConfigPathFlag(),
			makeSourceFlag(),
			makeDestFlag(),
			makeLanguageFlag(),
			&cli.BoolFlag{
				Name:  "strip-comments",
				Usage: "rewrite xml files without comments, tags sorted",
			},
			&cli.BoolFlag{
				Name:  "keep-names",
				Usage: "preserve original file names instead of [Mod]_ prefixing",
			},
			&cli.PathFlag{
				Name:   "tty-path",
				Usage:  "specify the TTY path for go-curses",
				Value:  "/dev/tty",
				Hidden: true,
			},
		},
	}
	return
}

func (c *Command) actionMonitor(ctx *cli.Context) (err error) {
	profiling.Start()
	defer profiling.Stop()

	if err = c.Prepare(ctx); err != nil {
		return
	}

	config := c.runtimeConfig(ctx)

	var m *Monitor
	if m, err = NewMonitor(c, config, ctx.Path("tty-path")); err != nil {
		return
	}
	err = m.Run(ctx)
	return
}
