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
	"fmt"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	beIo "github.com/rimworld-latam/modtrad/pkg/io"
	"github.com/rimworld-latam/modtrad/pkg/system"
)

func (c *Command) makeMetadataCommand(app *cli.App) (cmd *cli.Command) {
	cmd = &cli.Command{
		Name:      "metadata",
		Category:  system.GeneralCategory,
		Usage:     "extract mod metadata from a Steam Workshop content directory",
		UsageText: app.Name + " metadata --workshop <path> --dest <path>",
		Description: "Scans the numeric mod id folders of a Steam Workshop content" +
			" directory (.../steamapps/workshop/content/294100), reads each" +
			" About.xml and writes a trimmed ModMetadata tree plus a mods.json" +
			" index at the destination.",
		Action: c.actionMetadata,
		Flags: []cli.Flag{
			makeConfigPathFlag(),
			makeDestFlag(),
			&cli.PathFlag{
				Name:    "workshop",
				Aliases: []string{"w"},
				Usage:   "specify the workshop content directory to scan",
				EnvVars: []string{system.EnvPrefix + "_WORKSHOP"},
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the extraction summary as json",
			},
		},
	}
	return
}

func (c *Command) actionMetadata(ctx *cli.Context) (err error) {
	if err = c.Prepare(ctx); err != nil {
		return
	}

	workshop := ctx.Path("workshop")
	if workshop == "" && ctx.NArg() > 0 {
		workshop = ctx.Args().First()
	}
	if workshop == "" {
		err = fmt.Errorf("no workshop directory given, use --workshop")
		return
	}

	config := c.runtimeConfig(ctx)
	if config.DestRoot == "" {
		err = ErrNoDestination
		return
	}

	quiet := ctx.Bool("json")
	var summary *MetadataSummary
	if summary, err = ExtractMetadata(workshop, config.DestRoot, c.makeCliNotifier(quiet)); err != nil {
		return
	}

	if quiet {
		var data []byte
		if data, err = json.MarshalIndent(summary, "", "\t"); err != nil {
			return
		}
		beIo.StdoutF("%v\n", string(data))
		return
	}

	beIo.StdoutF("mods processed: %d\n", summary.Processed)
	beIo.StdoutF("mods skipped (no About.xml): %d\n", summary.Skipped)
	if len(summary.Errors) > 0 {
		beIo.StdoutF("errors: %d\n", len(summary.Errors))
	}
	beIo.StdoutF("output: %v\n", summary.OutputPath)
	return
}
