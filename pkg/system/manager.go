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

package system

import (
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/rimworld-latam/modtrad/pkg/io"
)

const (
	EnvPrefix       = "MODTRAD"
	GeneralCategory = "general"
)

var BinName = io.BinName

var _manager *SystemsManager

type SystemsManager struct {
	commands []Command
}

func Manager() (m *SystemsManager) {
	if _manager == nil {
		_manager = new(SystemsManager)
		_manager.commands = make([]Command, 0)
	}
	m = _manager
	return
}

func (m *SystemsManager) AddCommand(c Command) *SystemsManager {
	for _, known := range m.commands {
		if known.Name() == c.Name() {
			return m
		}
	}
	m.commands = append(m.commands, c)
	return m
}

func (m *SystemsManager) Shutdown() {
	io.Shutdown()
}

func (m *SystemsManager) Setup(app *cli.App) (err error) {
	app.HideHelpCommand = true
	app.UsageText = "\n\t" + BinName + " command [command options]\n"

	app.Flags = append(app.Flags,
		&cli.PathFlag{
			Name:    "log-file",
			Usage:   "also append all command output to the given file",
			EnvVars: []string{EnvPrefix + "_LOG_FILE"},
		},
		&cli.StringFlag{
			Name:   "custom-indent",
			Usage:  "prefix all command output with the given string",
			Hidden: true,
		},
	)

	for _, c := range m.commands {
		if err = c.Setup(app); err != nil {
			return
		}
		app.Commands = append(app.Commands, c.ExtraCommands(app)...)
	}

	sort.Slice(app.Commands, func(i, j int) (less bool) {
		less = app.Commands[i].Name < app.Commands[j].Name
		return
	})
	return
}
