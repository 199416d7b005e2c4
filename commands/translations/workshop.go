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
	"regexp"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	bePath "github.com/go-enjin/be/pkg/path"
)

const MetadataDirName = "ModMetadata"

var rxInvalidPathChars = regexp.MustCompile(`[<>"/\\|?*]`)

// ModMetadata is one extracted Steam Workshop mod entry.
type ModMetadata struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Author    string `json:"author"`
	PackageId string `json:"package-id"`
	Folder    string `json:"folder"`
}

// MetadataSummary reports one extraction pass over a workshop content
// directory.
type MetadataSummary struct {
	OutputPath string        `json:"output-path"`
	Mods       []ModMetadata `json:"mods"`
	Processed  int           `json:"processed"`
	Skipped    int           `json:"skipped"`
	Errors     []string      `json:"errors,omitempty"`
}

// ExtractMetadata scans a Steam Workshop content directory for numeric mod
// id folders, reads each mod's About.xml and writes a trimmed metadata tree
// under destRoot/ModMetadata, one folder per mod named after the sanitized
// mod name, each holding an About_<id>.xml and a PublishedFileId.txt. A
// mods.json index of everything extracted is written alongside.
func ExtractMetadata(workshopRoot, destRoot string, notify *Notifier) (summary *MetadataSummary, err error) {
	if !bePath.IsDir(workshopRoot) {
		err = fmt.Errorf("workshop directory not found: %v", workshopRoot)
		return
	}

	var dirs []string
	if dirs, err = bePath.ListDirs(workshopRoot); err != nil {
		err = fmt.Errorf("error listing workshop directory: %v", err)
		return
	}

	var modIds []string
	for _, dir := range dirs {
		if name := bePath.Base(dir); isNumeric(name) {
			modIds = append(modIds, name)
		}
	}
	if len(modIds) == 0 {
		err = fmt.Errorf("no workshop mod folders (numeric ids) found in: %v", workshopRoot)
		return
	}
	sort.Strings(modIds)

	outputRoot := filepath.Join(destRoot, MetadataDirName)
	if err = bePath.Mkdir(outputRoot); err != nil {
		err = fmt.Errorf("error making %v directory: %v", MetadataDirName, err)
		return
	}

	summary = &MetadataSummary{OutputPath: outputRoot}
	for idx, modId := range modIds {
		meta, ee := extractModMetadata(workshopRoot, outputRoot, modId)
		if ee != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%v: %v", modId, ee))
			notify.warn("error processing %v: %v", modId, ee)
		} else if meta == nil {
			summary.Skipped += 1
		} else {
			summary.Mods = append(summary.Mods, *meta)
			summary.Processed += 1
			notify.log("extracted: %v (%v)", meta.Name, modId)
		}
		notify.progress(idx+1, len(modIds))
	}

	var index []byte
	if index, err = json.MarshalIndent(summary.Mods, "", "  "); err != nil {
		err = fmt.Errorf("error encoding mods.json: %v", err)
		return
	}
	err = os.WriteFile(filepath.Join(outputRoot, "mods.json"), index, 0640)
	return
}

// extractModMetadata handles one workshop id folder, returning nil metadata
// (and nil error) when the folder has no About.xml to read
func extractModMetadata(workshopRoot, outputRoot, modId string) (meta *ModMetadata, err error) {
	aboutFile := filepath.Join(workshopRoot, modId, "About", "About.xml")
	if !bePath.IsFile(aboutFile) {
		aboutFile = filepath.Join(workshopRoot, modId, "About", "about.xml")
		if !bePath.IsFile(aboutFile) {
			return
		}
	}

	var raw []byte
	if raw, err = bePath.ReadFile(aboutFile); err != nil {
		return
	}
	var root *xmlNode
	if root, err = parseDocument([]byte(normalizeDocument(raw))); err != nil {
		return
	}

	meta = &ModMetadata{
		Id:        modId,
		Name:      childTextOr(root, "name", "Unknown Mod "+modId),
		Author:    childTextOr(root, "author", "Unknown"),
		PackageId: childTextOr(root, "packageId", "Unknown.PackageId"),
	}
	meta.Folder = SanitizeModName(meta.Name)

	aboutDir := filepath.Join(outputRoot, meta.Folder, "About")
	if err = bePath.Mkdir(aboutDir); err != nil {
		meta = nil
		return
	}
	if err = os.WriteFile(filepath.Join(aboutDir, "PublishedFileId.txt"), []byte(modId), 0640); err != nil {
		meta = nil
		return
	}

	contents := renderAboutMetadata(meta.Name, meta.Author, meta.PackageId, modId)
	if err = os.WriteFile(filepath.Join(aboutDir, "About_"+modId+".xml"), []byte(contents), 0640); err != nil {
		meta = nil
	}
	return
}

// renderAboutMetadata builds the trimmed About.xml content shared by the
// metadata and template extractors, tab indented the way translators ship it
func renderAboutMetadata(name, author, packageId, publishedId string) (contents string) {
	contents = "<ModMetaData>\n" +
		"\t<name>" + escapeXmlText(name) + "</name>\n" +
		"\t<author>" + escapeXmlText(author) + "</author>\n" +
		"\t<packageId>" + escapeXmlText(packageId) + "</packageId>\n"
	if publishedId != "" {
		contents += "\t<!-- PublishedFileId: " + publishedId + " -->\n"
	}
	contents += "</ModMetaData>"
	return
}

// SanitizeModName reduces a mod's display name to something usable as a
// directory name on any platform: colons removed, other reserved characters
// replaced with underscores, trailing dots dropped.
func SanitizeModName(name string) (cleaned string) {
	cleaned = strings.ReplaceAll(name, ":", "")
	cleaned = rxInvalidPathChars.ReplaceAllString(cleaned, "_")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimRight(cleaned, ".")
	if cleaned == "" {
		cleaned = "Unnamed_Mod"
	}
	return
}

func childTextOr(node *xmlNode, name, fallback string) (text string) {
	if child := node.Child(name); child != nil {
		if text = strings.TrimSpace(child.Text); text != "" {
			return
		}
	}
	text = fallback
	return
}

func isNumeric(name string) (numeric bool) {
	if name == "" {
		return
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return
		}
	}
	numeric = true
	return
}
