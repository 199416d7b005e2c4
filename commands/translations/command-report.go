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
	"path/filepath"

	"github.com/urfave/cli/v2"

	beIo "github.com/rimworld-latam/modtrad/pkg/io"
	"github.com/rimworld-latam/modtrad/pkg/run"
	"github.com/rimworld-latam/modtrad/pkg/system"
)

func (c *Command) makeReportCommand(app *cli.App) (cmd *cli.Command) {
	cmd = &cli.Command{
		Name:      "report",
		Category:  system.GeneralCategory,
		Usage:     "write a timestamped report of the mods carrying translations",
		UsageText: app.Name + " report [options]",
		Action:    c.actionReport,
		Flags: []cli.Flag{
			makeConfigPathFlag(),
			makeSourceFlag(),
			makeDestFlag(),
			makeLanguageFlag(),
			&cli.StringFlag{
				Name:  "title",
				Usage: "override the configured report title",
			},
			&cli.StringFlag{
				Name:  "extra-text",
				Usage: "override the configured report extra text",
			},
			&cli.PathFlag{
				Name:  "directory",
				Usage: "override the configured report directory",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "open the report folder in the system file browser",
			},
		},
	}
	return
}

func (c *Command) actionReport(ctx *cli.Context) (err error) {
	if err = c.Prepare(ctx); err != nil {
		return
	}

	config := c.runtimeConfig(ctx)
	if config.Language == "" {
		err = ErrNoLanguage
		return
	}
	if config.DestRoot == "" {
		err = ErrNoDestination
		return
	}

	if v := ctx.String("title"); v != "" {
		config.Report.Title = v
	}
	if v := ctx.String("extra-text"); v != "" {
		config.Report.ExtraText = v
	}
	if v := ctx.Path("directory"); v != "" {
		config.Report.Directory = v
	}

	compiler := NewCompiler(config)
	var found []string
	if found, _, err = compiler.SelectMods(); err != nil {
		return
	}

	var reportFile string
	if reportFile, err = WriteReport(config.DestRoot, found, config.Report); err != nil {
		return
	}
	beIo.StdoutF("report written: %v\n", reportFile)

	if ctx.Bool("open") {
		if ee := run.OpenFolder(filepath.Dir(reportFile)); ee != nil {
			beIo.StderrF("error opening report folder: %v\n", ee)
		}
	}
	return
}
