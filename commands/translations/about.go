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
	"path/filepath"
	"sort"
	"strings"

	"github.com/fvbommel/sortorder"

	bePath "github.com/go-enjin/be/pkg/path"
)

// AboutSyncResult reports one forceLoadAfter rewrite pass.
type AboutSyncResult struct {
	AboutFile string   `json:"about-file"`
	LoadAfter []string `json:"load-after"`
	Skipped   []string `json:"skipped"`
}

// SyncAboutFile rewrites the destination mod's About.xml so that its
// forceLoadAfter list names the packageId of every source mod carrying a
// Steam workshop PublishedFileId.txt marker. When processed is non-nil only
// the named mods are considered, which is how a compile run keeps mods it
// skipped out of the list; nil means every source sub-directory (the
// standalone about-sync command). Mods without the marker, or without a
// readable packageId, are skipped.
func SyncAboutFile(sourceRoot, destRoot string, processed []string) (result *AboutSyncResult, err error) {
	var aboutFile string
	if aboutFile = FindAboutFile(destRoot); aboutFile == "" {
		err = fmt.Errorf("About.xml not found under: %v", destRoot)
		return
	}

	var mods []string
	if processed != nil {
		for _, name := range processed {
			mods = append(mods, filepath.Join(sourceRoot, name))
		}
	} else if mods, err = bePath.ListDirs(sourceRoot); err != nil {
		err = fmt.Errorf("error listing source mods: %v", err)
		return
	}

	result = &AboutSyncResult{AboutFile: aboutFile}
	unique := make(map[string]bool)
	for _, modPath := range mods {
		name := bePath.Base(modPath)
		if !HasPublishedFileId(modPath) {
			result.Skipped = append(result.Skipped, name)
			continue
		}
		if packageId := ReadModPackageId(modPath); packageId != "" {
			unique[packageId] = true
		} else {
			result.Skipped = append(result.Skipped, name)
		}
	}

	for packageId := range unique {
		result.LoadAfter = append(result.LoadAfter, packageId)
	}
	sort.Strings(result.LoadAfter)
	sort.Sort(sortorder.Natural(result.Skipped))

	err = UpdateForceLoadAfter(aboutFile, result.LoadAfter)
	return
}

// FindAboutFile looks for an About/About.xml file under the given path,
// checking the parent directory as well so that a Languages destination
// nested inside the mod still resolves, tolerating filename case drift
func FindAboutFile(path string) (found string) {
	for _, base := range []string{path, bePath.Dir(path)} {
		aboutDir := filepath.Join(base, "About")
		if !bePath.IsDir(aboutDir) {
			continue
		}
		if primary := filepath.Join(aboutDir, "About.xml"); bePath.IsFile(primary) {
			found = primary
			return
		}
		if files, ee := bePath.ListFiles(aboutDir); ee == nil {
			for _, file := range files {
				if strings.ToLower(bePath.Base(file)) == "about.xml" {
					found = file
					return
				}
			}
		}
	}
	return
}

// HasPublishedFileId reports whether the mod carries the Steam workshop
// PublishedFileId.txt marker, in the About folder or at the mod root.
func HasPublishedFileId(modPath string) (present bool) {
	present = bePath.IsFile(filepath.Join(modPath, "About", "PublishedFileId.txt")) ||
		bePath.IsFile(filepath.Join(modPath, "PublishedFileId.txt"))
	return
}

// ReadModPackageId returns the lowercased packageId declared by the mod's
// About metadata, or an empty string when none can be read. When more than
// one About*.xml file is present the shortest filename wins.
func ReadModPackageId(modPath string) (packageId string) {
	aboutDir := filepath.Join(modPath, "About")
	if !bePath.IsDir(aboutDir) {
		return
	}
	files, err := bePath.ListFiles(aboutDir)
	if err != nil {
		return
	}
	var candidates []string
	for _, file := range files {
		name := strings.ToLower(bePath.Base(file))
		if strings.HasPrefix(name, "about") && strings.HasSuffix(name, ".xml") {
			candidates = append(candidates, file)
		}
	}
	sort.Slice(candidates, func(i, j int) (less bool) {
		a, b := bePath.Base(candidates[i]), bePath.Base(candidates[j])
		if len(a) == len(b) {
			less = a < b
		} else {
			less = len(a) < len(b)
		}
		return
	})
	for _, file := range candidates {
		raw, ee := bePath.ReadFile(file)
		if ee != nil {
			continue
		}
		root, ee := parseDocument([]byte(normalizeDocument(raw)))
		if ee != nil {
			continue
		}
		if node := root.Child("packageId"); node != nil {
			if id := strings.TrimSpace(node.Text); id != "" {
				packageId = strings.ToLower(id)
				return
			}
		}
	}
	return
}

// UpdateForceLoadAfter replaces (or creates) the forceLoadAfter list within
// the given About.xml, one li entry per package id, preserving the order of
// the other metadata elements, and rewrites the file indented.
func UpdateForceLoadAfter(aboutFile string, packageIds []string) (err error) {
	var raw []byte
	if raw, err = bePath.ReadFile(aboutFile); err != nil {
		err = fmt.Errorf("error reading %v: %v", aboutFile, err)
		return
	}

	var root *xmlNode
	if root, err = parseDocument([]byte(normalizeDocument(raw))); err != nil {
		err = fmt.Errorf("error parsing %v: %v", aboutFile, err)
		return
	}

	items := make([]*xmlNode, len(packageIds))
	for idx, packageId := range packageIds {
		items[idx] = &xmlNode{Name: "li", Text: packageId}
	}

	if node := root.Child("forceLoadAfter"); node != nil {
		node.Children = items
		node.Text = ""
	} else {
		root.Children = append(root.Children, &xmlNode{
			Name:     "forceLoadAfter",
			Children: items,
		})
	}

	err = os.WriteFile(aboutFile, renderDocument(root), 0640)
	return
}
