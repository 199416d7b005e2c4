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
	"sort"
	"strings"

	"github.com/fvbommel/sortorder"

	bePath "github.com/go-enjin/be/pkg/path"
)

// mod sub-folders that are never language packs
var ignoredModFolders = map[string]bool{
	"about": true, "defs": true, "assemblies": true, "patches": true,
	"textures": true, "sounds": true, "common": true, "ideasshared": true,
	"licenses": true, "source": true, "src": true, "docs": true,
	"examples": true, ".git": true, ".vs": true,
	"1.0": true, "1.1": true, "1.2": true, "1.3": true, "1.4": true, "1.5": true,
}

// LanguageCandidate is one possible language folder found under a source
// root, with the number of xml files seen across all mods carrying it.
type LanguageCandidate struct {
	Name     string `json:"name"`
	Mods     int    `json:"mods"`
	XmlFiles int    `json:"xml-files"`
}

// NormalizeLanguage strips a trailing parenthesized native name from a
// language folder name, e.g. "Spanish (Español(Castellano))" gives
// "Spanish". When the usual " (" marker is absent, trailing balanced
// parenthesized segments are trimmed instead.
func NormalizeLanguage(name string) (normalized string) {
	name = strings.TrimSpace(name)
	if cut := strings.Index(name, " ("); cut != -1 {
		normalized = strings.TrimSpace(name[:cut])
		return
	}
	s := name
	for {
		openIdx := strings.LastIndex(s, "(")
		closeIdx := strings.LastIndex(s, ")")
		if openIdx != -1 && closeIdx != -1 && closeIdx > openIdx {
			s = strings.TrimRight(s[:openIdx], " ")
		} else {
			break
		}
	}
	normalized = strings.TrimSpace(s)
	return
}

// DetectLanguages scans every mod directory under sourceRoot for candidate
// language folders, in natural sort order.
func DetectLanguages(sourceRoot string) (candidates []*LanguageCandidate, err error) {
	if !bePath.IsDir(sourceRoot) {
		err = fmt.Errorf("%w: %v", ErrSourceNotFound, sourceRoot)
		return
	}

	var mods []string
	if mods, err = bePath.ListDirs(sourceRoot); err != nil {
		err = fmt.Errorf("error listing mods: %v - %v", sourceRoot, err)
		return
	}

	lookup := make(map[string]*LanguageCandidate)
	for _, modPath := range mods {
		var subs []string
		if subs, err = bePath.ListDirs(modPath); err != nil {
			// unreadable mod folders are not fatal
			err = nil
			continue
		}
		for _, sub := range subs {
			name := bePath.Base(sub)
			if ignoredModFolders[strings.ToLower(name)] {
				continue
			}
			candidate, ok := lookup[name]
			if !ok {
				candidate = &LanguageCandidate{Name: name}
				lookup[name] = candidate
			}
			candidate.Mods += 1
			if files, ee := listXmlFiles(sub); ee == nil {
				candidate.XmlFiles += len(files)
			}
		}
	}

	var names []string
	for name := range lookup {
		names = append(names, name)
	}
	sort.Sort(sortorder.Natural(names))
	for _, name := range names {
		candidates = append(candidates, lookup[name])
	}
	return
}

// LanguagePathFor is a convenience joining a mod and language folder name
func LanguagePathFor(sourceRoot, mod, language string) (path string) {
	path = filepath.Join(sourceRoot, mod, language)
	return
}
