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
	"time"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	beIo "github.com/rimworld-latam/modtrad/pkg/io"
	"github.com/rimworld-latam/modtrad/pkg/system"
)

func (c *Command) makeExtractCommand(app *cli.App) (cmd *cli.Command) {
	cmd = &cli.Command{
		Name:      "extract",
		Category:  system.GeneralCategory,
		Usage:     "generate translation template xml files from a mod's Defs and Keyed content",
		UsageText: app.Name + " extract --mod <path> [options]",
		Description: "Walks the mod's Defs folders and English Keyed folders and writes" +
			" TODO-annotated translation skeletons under" +
			" <mod>/" + TemplatesDirName + "/<language>, one entry per translatable" +
			" value with the English original alongside as a comment. Re-running" +
			" keeps translated values and retires entries the mod no longer has;" +
			" --archive pre-fills TODO entries from earlier translations.",
		Action: c.actionExtract,
		Flags: []cli.Flag{
			makeConfigPathFlag(),
			makeLanguageFlag(),
			&cli.PathFlag{
				Name:    "mod",
				Aliases: []string{"m"},
				Usage:   "specify the mod folder to extract from",
				EnvVars: []string{system.EnvPrefix + "_MOD"},
			},
			&cli.PathFlag{
				Name:    "archive",
				Usage:   "specify a folder of earlier translations to pre-fill from",
				EnvVars: []string{system.EnvPrefix + "_ARCHIVE"},
			},
			&cli.StringFlag{
				Name:  "target-version",
				Usage: "limit extraction to one version folder (All, Base or e.g. 1.5)",
				Value: VersionAll,
			},
			&cli.BoolFlag{
				Name:  "merge-versions",
				Usage: "redirect every version's output into the target version folder",
			},
			&cli.BoolFlag{
				Name:  "simplify-mods",
				Usage: "flatten bundled Mods/<name> sub-folders into the output root",
			},
			&cli.BoolFlag{
				Name:  "clean",
				Usage: "remove the template output folder before extracting",
			},
			&cli.BoolFlag{
				Name:  "no-readme",
				Usage: "skip writing the " + ReadmeFileName + " install instructions",
			},
			&cli.BoolFlag{
				Name:  "no-about",
				Usage: "skip writing the minimal About metadata folder",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the extraction summary as json",
			},
		},
	}
	return
}

func (c *Command) actionExtract(ctx *cli.Context) (err error) {
	if err = c.Prepare(ctx); err != nil {
		return
	}

	mod := ctx.Path("mod")
	if mod == "" && ctx.NArg() > 0 {
		mod = ctx.Args().First()
	}
	if mod == "" {
		err = fmt.Errorf("no mod folder given, use --mod")
		return
	}

	config := c.runtimeConfig(ctx)
	quiet := ctx.Bool("json")

	extractor := NewExtractor(config)
	extractor.ModPath = mod
	extractor.ArchiveRoot = ctx.Path("archive")
	extractor.TargetVersion = ctx.String("target-version")
	extractor.MergeVersions = ctx.Bool("merge-versions")
	extractor.SimplifyMods = ctx.Bool("simplify-mods")
	extractor.Clean = ctx.Bool("clean")
	extractor.Readme = !ctx.Bool("no-readme")
	extractor.CreateAbout = !ctx.Bool("no-about")
	extractor.Notify = c.makeCliNotifier(quiet)

	var summary *ExtractSummary
	if summary, err = extractor.Extract(); err != nil {
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

	beIo.StdoutF("files generated: %d\n", len(summary.Generated))
	beIo.StdoutF("files updated: %d\n", len(summary.Updated))
	beIo.StdoutF("output: %v\n", summary.OutputPath)
	beIo.StdoutF("duration: %v\n", summary.Duration.Round(time.Millisecond))
	return
}
