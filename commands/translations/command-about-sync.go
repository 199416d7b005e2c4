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

func (c *Command) makeAboutSyncCommand(app *cli.App) (cmd *cli.Command) {
	cmd = &cli.Command{
		Name:      "about-sync",
		Category:  system.GeneralCategory,
		Usage:     "rewrite the destination About.xml forceLoadAfter list",
		UsageText: app.Name + " about-sync [options]",
		Description: "Gathers the packageId of every source mod that ships a Steam" +
			" workshop PublishedFileId.txt and rewrites the forceLoadAfter" +
			" element of the destination mod's About.xml with the sorted," +
			" de-duplicated list.",
		Action: c.actionAboutSync,
		Flags: []cli.Flag{
			makeConfigPathFlag(),
			makeSourceFlag(),
			makeDestFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the sync result as json",
			},
		},
	}
	return
}

func (c *Command) actionAboutSync(ctx *cli.Context) (err error) {
	if err = c.Prepare(ctx); err != nil {
		return
	}

	config := c.runtimeConfig(ctx)
	if config.SourceRoot == "" {
		err = fmt.Errorf("no source root given, use --source or %v", ConfigFileName)
		return
	}
	if config.DestRoot == "" {
		err = ErrNoDestination
		return
	}

	var result *AboutSyncResult
	if result, err = SyncAboutFile(config.SourceRoot, config.DestRoot, nil); err != nil {
		return
	}

	if ctx.Bool("json") {
		var data []byte
		if data, err = json.MarshalIndent(result, "", "\t"); err != nil {
			return
		}
		beIo.StdoutF("%v\n", string(data))
		return
	}

	beIo.StdoutF("updated: %v\n", result.AboutFile)
	for _, packageId := range result.LoadAfter {
		beIo.StdoutF(" - %v\n", packageId)
	}
	if len(result.Skipped) > 0 {
		beIo.StdoutF("skipped (no workshop metadata): %d mods\n", len(result.Skipped))
	}
	return
}
