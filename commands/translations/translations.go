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
	"os"

	"github.com/urfave/cli/v2"

	bePath "github.com/go-enjin/be/pkg/path"

	beIo "github.com/rimworld-latam/modtrad/pkg/io"
	"github.com/rimworld-latam/modtrad/pkg/system"
)

const (
	Name           = "translations"
	ConfigFileName = "modtrad.toml"
)

func DefaultConfigLocations() (locations []string) {
	locations = append(locations, "./"+ConfigFileName)
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, home+"/.config/modtrad/"+ConfigFileName)
	}
	return
}

type Command struct {
	system.CCommand

	config *Config
}

func New() (s *Command) {
	s = new(Command)
	s.Init(s)
	return
}

func (c *Command) Init(this interface{}) {
	c.CCommand.Init(this)
	c.TagName = Name
	return
}

func (c *Command) ExtraCommands(app *cli.App) (commands []*cli.Command) {
	commands = append(
		commands,
		c.makeCompileCommand(app),
		c.makeExtractCommand(app),
		c.makeLanguagesCommand(app),
		c.makePackCommand(app),
		c.makeAboutSyncCommand(app),
		c.makeMetadataCommand(app),
		c.makeReportCommand(app),
		c.makeConfigCommand(app),
		c.makeMonitorCommand(app),
	)
	return
}

func makeConfigPathFlag() (flag cli.Flag) {
	flag = &cli.PathFlag{
		Name:    "config",
		Usage:   "specify path to " + ConfigFileName,
		EnvVars: []string{system.EnvPrefix + "_CONFIG_PATH"},
	}
	return
}

func (c *Command) findConfig(ctx *cli.Context) (config *Config, err error) {
	var path string
	if path = ctx.Path("config"); path == "" {
		for _, check := range DefaultConfigLocations() {
			if bePath.IsFile(check) {
				path = check
				break
			}
		}
	} else if !bePath.IsFile(path) {
		err = fmt.Errorf("not a file: %v", path)
		return
	}
	if path == "" {
		// no config file present, flags alone drive the run
		config = DefaultConfig()
		return
	}
	if path, err = bePath.Abs(path); err != nil {
		return
	}
	config, err = LoadConfig(path)
	return
}

func (c *Command) Prepare(ctx *cli.Context) (err error) {
	if err = c.CCommand.Prepare(ctx); err != nil {
		return
	}
	if c.config, err = c.findConfig(ctx); err != nil {
		return
	}
	if beIo.LogFile == "" && c.config.LogFile != "" {
		beIo.LogFile = c.config.LogFile
	}
	return
}
