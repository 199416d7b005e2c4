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
	"path/filepath"

	"github.com/urfave/cli/v2"

	beIo "github.com/rimworld-latam/modtrad/pkg/io"
	"github.com/rimworld-latam/modtrad/pkg/system"
)

func (c *Command) makePackCommand(app *cli.App) (cmd *cli.Command) {
	cmd = &cli.Command{
		Name:      "pack",
		Category:  system.GeneralCategory,
		Usage:     "tar a compiled language folder and remove it",
		UsageText: app.Name + " pack [options]",
		Action:    c.actionPack,
		Flags: []cli.Flag{
			makeConfigPathFlag(),
			makeDestFlag(),
			makeLanguageFlag(),
		},
	}
	return
}

func (c *Command) actionPack(ctx *cli.Context) (err error) {
	if err = c.Prepare(ctx); err != nil {
		return
	}

	config := c.runtimeConfig(ctx)
	if config.DestRoot == "" {
		err = ErrNoDestination
		return
	}
	if config.Language == "" {
		err = ErrNoLanguage
		return
	}

	basePath := filepath.Join(config.DestRoot, LanguagesDirName)
	name := NormalizeLanguage(config.Language)

	var tarFile string
	if tarFile, err = PackLanguage(basePath, name, c.makeCliNotifier(false)); err != nil {
		err = fmt.Errorf("packing error: %v", err)
		return
	}
	beIo.StdoutF("packed: %v\n", tarFile)
	return
}
