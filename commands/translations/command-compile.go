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

	"github.com/urfave/cli/v2"

	beIo "github.com/rimworld-latam/modtrad/pkg/io"
	"github.com/rimworld-latam/modtrad/pkg/system"
)

func makeSourceFlag() (flag cli.Flag) {
	flag = &cli.PathFlag{
		Name:    "source",
		Aliases: []string{"s"},
		Usage:   "specify the folder holding one sub-folder per translated mod",
		EnvVars: []string{system.EnvPrefix + "_SOURCE"},
	}
	return
}

func makeDestFlag() (flag cli.Flag) {
	flag = &cli.PathFlag{
		Name:    "dest",
		Aliases: []string{"d"},
		Usage:   "specify the root of the translation mod pack being assembled",
		EnvVars: []string{system.EnvPrefix + "_DEST"},
	}
	return
}

func makeLanguageFlag() (flag cli.Flag) {
	flag = &cli.StringFlag{
		Name:    "language",
		Aliases: []string{"l"},
		Usage:   "specify the per-mod language folder name to aggregate",
		EnvVars: []string{system.EnvPrefix + "_LANGUAGE"},
	}
	return
}

func (c *Command) makeCompileCommand(app *cli.App) (cmd *cli.Command) {
	cmd = &cli.Command{
		Name:      "compile",
		Category:  system.GeneralCategory,
		Usage:     "aggregate per-mod translation folders into one language folder",
		UsageText: app.Name + " compile [options]",
		Action:    c.actionCompile,
		Flags: []cli.Flag{
			makeConfigPathFlag(),
			makeSourceFlag(),
			makeDestFlag(),
			makeLanguageFlag(),
			&cli.BoolFlag{
				Name:  "clean",
				Usage: "remove the destination language folder before compiling",
			},
			&cli.BoolFlag{
				Name:  "strip-comments",
				Usage: "rewrite xml files without comments, tags sorted",
			},
			&cli.BoolFlag{
				Name:  "keep-names",
				Usage: "preserve original file names instead of [Mod]_ prefixing",
			},
			&cli.BoolFlag{
				Name:  "pack",
				Usage: "tar the compiled language folder and remove it",
			},
			&cli.BoolFlag{
				Name:  "update-about",
				Usage: "rewrite the destination About.xml forceLoadAfter list",
			},
			&cli.BoolFlag{
				Name:  "report",
				Usage: "write a processed mods report after compiling",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the run summary as json",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "specify the number of concurrent mod workers",
				Value: 0,
			},
		},
	}
	return
}

// runtimeConfig layers the command line flags over the loaded configuration
func (c *Command) runtimeConfig(ctx *cli.Context) (config *Config) {
	config = c.config.Clone()
	if v := ctx.Path("source"); v != "" {
		config.SourceRoot = v
	}
	if v := ctx.Path("dest"); v != "" {
		config.DestRoot = v
	}
	if v := ctx.String("language"); v != "" {
		config.Language = v
	}
	if ctx.Bool("clean") {
		config.Options.Clean = true
	}
	if ctx.Bool("strip-comments") {
		config.Options.StripComments = true
	}
	if ctx.Bool("keep-names") {
		config.Options.KeepNames = true
	}
	if ctx.Bool("pack") {
		config.Options.Pack = true
	}
	if ctx.Bool("update-about") {
		config.Options.UpdateAbout = true
	}
	if v := ctx.Int("workers"); v > 0 {
		if v > MaxWorkers {
			v = MaxWorkers
		}
		config.Options.Workers = v
	}
	return
}

func (c *Command) makeCliNotifier(quiet bool) (notify *Notifier) {
	notify = &Notifier{
		Warn: func(format string, argv ...interface{}) {
			beIo.StderrF(format, argv...)
		},
	}
	if !quiet {
		notify.Log = func(format string, argv ...interface{}) {
			beIo.StdoutF(format, argv...)
		}
	}
	return
}

func (c *Command) actionCompile(ctx *cli.Context) (err error) {
	if err = c.Prepare(ctx); err != nil {
		return
	}

	config := c.runtimeConfig(ctx)
	quiet := ctx.Bool("json")
	notify := c.makeCliNotifier(quiet)

	compiler := NewCompiler(config)
	compiler.Notify = notify

	var summary *Summary
	if summary, err = compiler.Compile(); err != nil {
		return
	}

	if config.Options.UpdateAbout {
		// only mods this run actually processed may enter forceLoadAfter
		processed := summary.Processed
		if processed == nil {
			processed = []string{}
		}
		var result *AboutSyncResult
		if result, err = SyncAboutFile(config.SourceRoot, config.DestRoot, processed); err != nil {
			notify.warn("about-sync error: %v\n", err)
			err = nil
		} else {
			notify.log("updated %v (%d entries)\n", result.AboutFile, len(result.LoadAfter))
		}
	}

	if ctx.Bool("report") {
		var reportFile string
		if reportFile, err = WriteReport(config.DestRoot, summary.Processed, config.Report); err != nil {
			notify.warn("report error: %v\n", err)
			err = nil
		} else {
			notify.log("report written: %v\n", reportFile)
		}
	}

	if config.Options.Pack {
		var tarFile string
		if tarFile, err = PackLanguage(compiler.LanguagesPath(), compiler.OutputName(), notify); err != nil {
			err = fmt.Errorf("packing error: %v", err)
			return
		}
		summary.OutputPath = tarFile
	}

	if quiet {
		var data []byte
		if data, err = summary.MarshalIndentJSON(); err != nil {
			return
		}
		beIo.StdoutF("%v\n", string(data))
		return
	}
	beIo.StdoutF("%v", summary.String())
	return
}
