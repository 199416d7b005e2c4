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
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"

	beIo "github.com/rimworld-latam/modtrad/pkg/io"
	"github.com/rimworld-latam/modtrad/pkg/system"
)

func (c *Command) makeConfigCommand(app *cli.App) (cmd *cli.Command) {
	cmd = &cli.Command{
		Name:      "config",
		Category:  system.GeneralCategory,
		Usage:     "print the effective " + ConfigFileName + " settings",
		UsageText: app.Name + " config [options]",
		Action:    c.actionConfig,
		Flags: []cli.Flag{
			makeConfigPathFlag(),
			&cli.PathFlag{
				Name:  "init-default",
				Usage: "write a commented default " + ConfigFileName + " to the given path",
			},
		},
		Subcommands: []*cli.Command{
			{
				Name:      "test",
				Usage:     "validate the " + ConfigFileName + " file and settings",
				UsageText: app.Name + " config test [options]",
				Action:    c.actionConfigTest,
				Flags: []cli.Flag{
					makeConfigPathFlag(),
				},
			},
		},
	}
	return
}

func (c *Command) actionConfig(ctx *cli.Context) (err error) {
	if err = c.Prepare(ctx); err != nil {
		return
	}

	if path := ctx.Path("init-default"); path != "" {
		if err = WriteDefaultConfig(path); err != nil {
			return
		}
		beIo.StdoutF("wrote: %v\n", path)
		return
	}

	if c.config.Source != "" {
		beIo.StdoutF("# %v\n", c.config.Source)
	} else {
		beIo.StdoutF("# built-in defaults (no %v found)\n", ConfigFileName)
	}
	var buf strings.Builder
	if err = toml.NewEncoder(&buf).Encode(c.config.Clone()); err != nil {
		return
	}
	beIo.StdoutF("%v", buf.String())
	return
}

func (c *Command) actionConfigTest(ctx *cli.Context) (err error) {
	if err = c.Prepare(ctx); err != nil {
		return
	}
	if c.config.Source == "" {
		beIo.StdoutF("no %v file found, defaults in effect\n", ConfigFileName)
		return
	}
	// Prepare already loaded and validated, a reload proves the file parses
	if err = c.config.Reload(); err != nil {
		return
	}
	beIo.StdoutF("%v is valid\n", c.config.Source)
	return
}
