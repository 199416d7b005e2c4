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
	"github.com/urfave/cli/v2"

	"github.com/go-enjin/be/pkg/context"

	"github.com/rimworld-latam/modtrad/pkg/io"
)

var _ Command = (*CCommand)(nil)

// Command is one registered modtrad command group; the translations group
// contributes all of the compile, extract and reporting commands through
// ExtraCommands.
type Command interface {
	Init(this interface{})
	Name() (name string)
	This() (self Command)
	Setup(app *cli.App) (err error)
	Prepare(ctx *cli.Context) (err error)
	ExtraCommands(app *cli.App) (commands []*cli.Command)
}

// CCommand is the concrete base for command groups to embed; Prepare wires
// the shared --log-file and --custom-indent output settings so every command
// logs the same way.
type CCommand struct {
	_this interface{}

	TagName string

	App *cli.App
	Ctx context.Context
}

func (c *CCommand) Init(this interface{}) {
	c._this = this
	c.Ctx = context.New()
}

func (c *CCommand) Name() (name string) {
	name = c.TagName
	return
}

func (c *CCommand) Context() (ctx context.Context) {
	ctx = c.Ctx.Copy()
	return
}

func (c *CCommand) This() (self Command) {
	if v, ok := c._this.(Command); ok {
		self = v
		return
	}
	self = c
	return
}

func (c *CCommand) Setup(app *cli.App) (err error) {
	c.Ctx = context.New()
	c.App = app
	return
}

func (c *CCommand) Prepare(ctx *cli.Context) (err error) {
	_ = io.SetupCustomIndent(ctx)
	if err = io.SetupLogFile(ctx); err != nil {
		return
	}
	return
}

func (c *CCommand) ExtraCommands(app *cli.App) (commands []*cli.Command) {
	return
}
