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

func (c *Command) makeLanguagesCommand(app *cli.App) (cmd *cli.Command) {
	cmd = &cli.Command{
		Name:      "languages",
		Category:  system.GeneralCategory,
		Usage:     "list candidate language folders found under the source root",
		UsageText: app.Name + " languages [options]",
		Action:    c.actionLanguages,
		Flags: []cli.Flag{
			makeConfigPathFlag(),
			makeSourceFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the candidate list as json",
			},
		},
	}
	return
}

func (c *Command) actionLanguages(ctx *cli.Context) (err error) {
	if err = c.Prepare(ctx); err != nil {
		return
	}

	config := c.runtimeConfig(ctx)
	if config.SourceRoot == "" {
		err = fmt.Errorf("no source root given, use --source or %v", ConfigFileName)
		return
	}

	var candidates []*LanguageCandidate
	if candidates, err = DetectLanguages(config.SourceRoot); err != nil {
		return
	}

	if ctx.Bool("json") {
		var data []byte
		if data, err = json.MarshalIndent(candidates, "", "\t"); err != nil {
			return
		}
		beIo.StdoutF("%v\n", string(data))
		return
	}

	if len(candidates) == 0 {
		beIo.StdoutF("no language folders detected under: %v\n", config.SourceRoot)
		return
	}
	for _, candidate := range candidates {
		beIo.StdoutF(
			"%v\t(%d mods, %d xml files)\n",
			candidate.Name, candidate.Mods, candidate.XmlFiles,
		)
	}
	return
}
