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
	"sync"

	"github.com/BurntSushi/toml"

	bePath "github.com/go-enjin/be/pkg/path"
)

var (
	DefaultWorkers     = 4
	MaxWorkers         = 8
	DefaultReportTitle = "Processed mods report"

	// LanguagesDirName is the folder RimWorld expects translation packs under
	LanguagesDirName = "Languages"
)

type Config struct {
	SourceRoot string `toml:"source-root,omitempty"`
	DestRoot   string `toml:"dest-root,omitempty"`
	Language   string `toml:"language,omitempty"`

	LogFile string `toml:"log-file,omitempty"`

	Options OptionsConfig `toml:"options,omitempty"`
	Report  ReportConfig  `toml:"report,omitempty"`

	Source string `toml:"-"`

	sync.RWMutex `toml:"-"`
}

type OptionsConfig struct {
	Clean         bool `toml:"clean,omitempty"`
	StripComments bool `toml:"strip-comments,omitempty"`
	KeepNames     bool `toml:"keep-names,omitempty"`
	Pack          bool `toml:"pack,omitempty"`
	UpdateAbout   bool `toml:"update-about,omitempty"`
	Workers       int  `toml:"workers,omitempty"`
}

type ReportConfig struct {
	Title        string `toml:"title,omitempty"`
	ExtraText    string `toml:"extra-text,omitempty"`
	IncludeCount bool   `toml:"include-count"`
	IncludeMods  bool   `toml:"include-mods"`
	Directory    string `toml:"directory,omitempty"`
}

func DefaultConfig() (config *Config) {
	config = &Config{}
	config.Options.Workers = DefaultWorkers
	config.Report.Title = DefaultReportTitle
	config.Report.IncludeCount = true
	config.Report.IncludeMods = true
	return
}

func LoadConfig(modtradConfig string) (config *Config, err error) {

	if modtradConfig == "" {
		err = fmt.Errorf("missing --config")
		return
	} else if !bePath.IsFile(modtradConfig) {
		err = fmt.Errorf("not a file: %v", modtradConfig)
		return
	} else if modtradConfig, err = bePath.Abs(modtradConfig); err != nil {
		return
	}

	cfg := DefaultConfig()
	if _, err = toml.DecodeFile(modtradConfig, cfg); err != nil {
		return
	}

	if cfg.SourceRoot != "" {
		if cfg.SourceRoot, err = bePath.Abs(cfg.SourceRoot); err != nil {
			return
		}
	}
	if cfg.DestRoot != "" {
		if cfg.DestRoot, err = bePath.Abs(cfg.DestRoot); err != nil {
			return
		}
	}

	if cfg.Options.Workers <= 0 {
		cfg.Options.Workers = DefaultWorkers
	} else if cfg.Options.Workers > MaxWorkers {
		cfg.Options.Workers = MaxWorkers
	}

	if cfg.Report.Title == "" {
		cfg.Report.Title = DefaultReportTitle
	}

	cfg.Source = modtradConfig
	config = cfg
	return
}

// Clone returns a detached copy of the settings, safe to modify without
// affecting the loaded configuration
func (c *Config) Clone() (cloned *Config) {
	c.RLock()
	defer c.RUnlock()
	cloned = &Config{
		SourceRoot: c.SourceRoot,
		DestRoot:   c.DestRoot,
		Language:   c.Language,
		LogFile:    c.LogFile,
		Options:    c.Options,
		Report:     c.Report,
		Source:     c.Source,
	}
	return
}

func (c *Config) Reload() (err error) {
	if c.Source == "" {
		return
	}
	var cfg *Config
	if cfg, err = LoadConfig(c.Source); err != nil {
		return
	}
	c.Lock()
	defer c.Unlock()
	c.SourceRoot = cfg.SourceRoot
	c.DestRoot = cfg.DestRoot
	c.Language = cfg.Language
	c.LogFile = cfg.LogFile
	c.Options = cfg.Options
	c.Report = cfg.Report
	return
}

func (c *Config) Save(path string) (err error) {
	var fh *os.File
	if fh, err = os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644); err != nil {
		return
	}
	defer fh.Close()
	err = toml.NewEncoder(fh).Encode(c)
	return
}

var defaultConfigFileContents = `# modtrad configuration
#
# source-root is the folder holding one sub-folder per translated mod,
# dest-root is the root of the translation mod pack being assembled and
# language is the name of the per-mod language folder to aggregate, for
# example: "SpanishLatin" or "Spanish (Español(Castellano))"

#source-root = "/path/to/translated-mods"
#dest-root = "/path/to/mod-pack"
#language = "SpanishLatin"

#log-file = ""

[options]
#clean = false
#strip-comments = false
#keep-names = false
#pack = false
#update-about = false
#workers = 4

[report]
title = "Processed mods report"
include-count = true
include-mods = true
#extra-text = ""
#directory = ""
`

func WriteDefaultConfig(path string) (err error) {
	if bePath.Exists(path) {
		err = fmt.Errorf("refusing to overwrite: %v", path)
		return
	}
	err = os.WriteFile(path, []byte(defaultConfigFileContents), 0644)
	return
}
