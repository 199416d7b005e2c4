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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	bePath "github.com/go-enjin/be/pkg/path"
)

const (
	TemplatesDirName = "TranslationTemplates"
	ReadmeFileName   = "INSTALL.txt"

	VersionAll  = "All"
	VersionBase = "Base"
)

var ErrModNotFound = errors.New("mod path not found")

var rxVersionDir = regexp.MustCompile(`^\d+\.\d+$`)

// DefaultTranslatableTags are the def fields worth offering to a translator;
// matching is by case-insensitive substring so labelFemale, helpTextShort and
// similar variants are caught too.
var DefaultTranslatableTags = []string{
	"label", "description", "jobString", "reportString", "pawnLabel",
	"graphLabel", "verb", "gerund", "deathMessage", "skillLabel",
	"labelNoun", "labelShort", "labelPlural", "adjective", "text",
	"rejectionMessage", "helpText", "labelShortAdj", "flavorText",
	"title", "titleShort", "baseDesc", "titleFemale", "titleShortFemale",
	"letterLabel", "letterText", "extraOutcomeDesc",
	"customLabel", "chargeNoun", "endMessage",
}

// DefaultBlacklistedTags are technical fields that would otherwise match the
// translatable list by substring.
var DefaultBlacklistedTags = []string{
	"verbClass", "commandTexture", "commandLabelKey", "texPath", "iconPath",
}

var defFieldRank = map[string]int{
	"label":        1,
	"description":  2,
	"title":        3,
	"titleShort":   4,
	"baseDesc":     5,
	"deathMessage": 6,
	"endMessage":   7,
}

// Extractor walks one mod's Defs and English Keyed files and writes
// translation template xml skeletons under ModPath/TranslationTemplates.
// Every translatable value becomes a TODO entry annotated with the English
// original; when ArchiveRoot points at a folder of earlier translations the
// TODO values are pre-filled from there.
//
// TargetVersion filters version sub-folders ("Base" keeps only root content,
// "1.5" keeps that version, "All" or empty keeps everything); MergeVersions
// instead redirects every version's output into the target folder. Re-running
// over an existing output preserves translated values and retires entries
// that no longer exist in the mod.
type Extractor struct {
	ModPath     string
	Language    string
	ArchiveRoot string

	TargetVersion string
	MergeVersions bool
	SimplifyMods  bool
	Clean         bool
	Readme        bool
	CreateAbout   bool

	TranslatableTags []string
	BlacklistedTags  []string

	Notify *Notifier

	archive map[string]string
}

func NewExtractor(config *Config) (x *Extractor) {
	x = &Extractor{
		Language:         config.Language,
		TargetVersion:    VersionAll,
		Readme:           true,
		CreateAbout:      true,
		TranslatableTags: DefaultTranslatableTags,
		BlacklistedTags:  DefaultBlacklistedTags,
	}
	return
}

// ExtractSummary reports one template extraction pass.
type ExtractSummary struct {
	OutputPath string   `json:"output-path"`
	Files      int      `json:"files"`
	Generated  []string `json:"generated,omitempty"`
	Updated    []string `json:"updated,omitempty"`

	Duration time.Duration `json:"duration"`
}

type templateEntry struct {
	Key   string
	Value string

	defName string
	field   string
}

func (x *Extractor) OutputPath() (path string) {
	path = filepath.Join(x.ModPath, TemplatesDirName, x.Language)
	return
}

func (x *Extractor) Extract() (summary *ExtractSummary, err error) {
	start := time.Now()

	if x.Language == "" {
		err = ErrNoLanguage
		return
	}
	if !bePath.IsDir(x.ModPath) {
		err = fmt.Errorf("%w: %v", ErrModNotFound, x.ModPath)
		return
	}

	outputRoot := x.OutputPath()
	if x.Clean && bePath.IsDir(outputRoot) {
		x.Notify.log("cleaning output: %v\n", outputRoot)
		if err = os.RemoveAll(outputRoot); err != nil {
			err = fmt.Errorf("error cleaning output: %v - %v", outputRoot, err)
			return
		}
	}

	archiveLang := x.findArchiveLanguage()
	x.archive = make(map[string]string)
	if archiveLang != "" {
		if x.archive, err = x.loadTranslationIndex(archiveLang); err != nil {
			return
		}
		x.Notify.log("reference translations indexed: %d\n", len(x.archive))
	}

	summary = &ExtractSummary{OutputPath: outputRoot}

	var defsDirs []string
	if defsDirs, err = collectModDirs(x.ModPath, func(path string) (matched bool) {
		matched = strings.ToLower(filepath.Base(path)) == "defs"
		return
	}); err != nil {
		return
	}
	for _, defsPath := range defsDirs {
		rel := relOrDot(x.ModPath, filepath.Dir(defsPath))
		outputRel, ok := x.redirectVersion(rel)
		if !ok {
			continue
		}
		targetBase := filepath.Join(outputRoot, outputRel, "DefInjected")
		var archiveBase string
		if archiveLang != "" {
			archiveBase = filepath.Join(archiveLang, outputRel, "DefInjected")
		}
		var files []string
		if files, err = listXmlFiles(defsPath); err != nil {
			err = fmt.Errorf("error walking %v: %v", defsPath, err)
			return
		}
		for _, file := range files {
			generated, updated := x.processDefFile(file, targetBase, archiveBase)
			summary.Generated = append(summary.Generated, generated...)
			summary.Updated = append(summary.Updated, updated...)
		}
	}

	// only English sources make usable templates
	var keyedDirs []string
	if keyedDirs, err = collectModDirs(x.ModPath, func(path string) (matched bool) {
		matched = strings.ToLower(filepath.Base(path)) == "keyed" &&
			strings.Contains(strings.ToLower(filepath.Base(filepath.Dir(path))), "english")
		return
	}); err != nil {
		return
	}
	for _, keyedPath := range keyedDirs {
		rel := relOrDot(x.ModPath, filepath.Dir(filepath.Dir(filepath.Dir(keyedPath))))
		outputRel, ok := x.redirectVersion(rel)
		if !ok {
			continue
		}
		targetBase := filepath.Join(outputRoot, outputRel, "Keyed")
		var archiveBase string
		if archiveLang != "" {
			archiveBase = filepath.Join(archiveLang, outputRel, "Keyed")
		}
		var files []string
		if files, err = listXmlFiles(keyedPath); err != nil {
			err = fmt.Errorf("error walking %v: %v", keyedPath, err)
			return
		}
		for _, file := range files {
			generated, updated := x.processKeyedFile(file, targetBase, archiveBase)
			summary.Generated = append(summary.Generated, generated...)
			summary.Updated = append(summary.Updated, updated...)
		}
	}

	summary.Files = len(summary.Generated) + len(summary.Updated)
	if summary.Files == 0 {
		x.Notify.warn("no Defs or English Keyed files found in %v\n", x.ModPath)
	} else {
		if x.Readme {
			x.writeReadme(outputRoot)
		}
		if x.CreateAbout {
			x.writeMinimalAbout(filepath.Dir(outputRoot))
		}
	}
	summary.Duration = time.Since(start)
	return
}

// findArchiveLanguage locates this mod's reference translations within the
// archive: a folder named after the mod, holding (directly or under a
// Languages folder) a directory whose name starts with the language
func (x *Extractor) findArchiveLanguage() (found string) {
	if x.ArchiveRoot == "" || !bePath.IsDir(x.ArchiveRoot) {
		return
	}
	candidate := filepath.Join(x.ArchiveRoot, bePath.Base(x.ModPath))
	if !bePath.IsDir(candidate) {
		return
	}
	searchDirs := []string{candidate}
	if languages := filepath.Join(candidate, "Languages"); bePath.IsDir(languages) {
		searchDirs = append(searchDirs, languages)
	}
	prefix := strings.ToLower(x.Language)
	for _, dir := range searchDirs {
		if subs, err := bePath.ListDirs(dir); err == nil {
			for _, sub := range subs {
				if strings.HasPrefix(strings.ToLower(bePath.Base(sub)), prefix) {
					found = sub
					return
				}
			}
		}
	}
	x.Notify.warn("mod found in archive but not the %q language\n", x.Language)
	return
}

// loadTranslationIndex builds a tag to translated-text index from every xml
// file below root, skipping empty and still-TODO values
func (x *Extractor) loadTranslationIndex(root string) (index map[string]string, err error) {
	index = make(map[string]string)
	var files []string
	if files, err = listXmlFiles(root); err != nil {
		err = fmt.Errorf("error walking %v: %v", root, err)
		return
	}
	for _, file := range files {
		for key, value := range loadReferenceFile(file) {
			index[key] = value
		}
	}
	return
}

func loadReferenceFile(file string) (values map[string]string) {
	values = make(map[string]string)
	_, all := loadTemplateFile(file)
	for key, value := range all {
		if strings.ToUpper(value) != "TODO" {
			values[key] = value
		}
	}
	return
}

// loadTemplateFile reads the direct children of an xml document root as a
// key to text mapping, in document order; unreadable files yield nothing
func loadTemplateFile(file string) (keys []string, values map[string]string) {
	values = make(map[string]string)
	if !bePath.IsFile(file) {
		return
	}
	raw, err := bePath.ReadFile(file)
	if err != nil {
		return
	}
	root, err := parseDocument([]byte(normalizeDocument(raw)))
	if err != nil {
		return
	}
	for _, child := range root.Children {
		if text := strings.TrimSpace(child.Text); text != "" && len(child.Children) == 0 {
			if _, present := values[child.Name]; !present {
				keys = append(keys, child.Name)
			}
			values[child.Name] = text
		}
	}
	return
}

// redirectVersion maps a source path (relative to the mod root) to its
// output location, or reports the path filtered out by TargetVersion
func (x *Extractor) redirectVersion(rel string) (out string, ok bool) {
	out, ok = rel, true
	target := x.TargetVersion
	if target != "" && target != VersionAll {
		if x.MergeVersions {
			prefix := "."
			if target != VersionBase {
				prefix = target
			}
			parts := strings.Split(rel, string(filepath.Separator))
			if rel == "." {
				out = prefix
			} else if rxVersionDir.MatchString(parts[0]) {
				out = filepath.Join(append([]string{prefix}, parts[1:]...)...)
			} else {
				out = filepath.Join(prefix, rel)
			}
		} else if target == VersionBase {
			if rel != "." {
				ok = false
				return
			}
		} else if rel != target {
			ok = false
			return
		}
	}
	if x.SimplifyMods {
		out = stripModsSegments(out)
	}
	return
}

// stripModsSegments removes the first "Mods/<name>" pair from a relative
// path, flattening bundled sub-mod layouts into the output root
func stripModsSegments(rel string) (out string) {
	out = rel
	if rel == "." {
		return
	}
	parts := strings.Split(rel, string(filepath.Separator))
	for idx, part := range parts {
		if strings.ToLower(part) == "mods" {
			if len(parts) > idx+1 {
				remains := append(append([]string{}, parts[:idx]...), parts[idx+2:]...)
				if len(remains) == 0 {
					out = "."
				} else {
					out = filepath.Join(remains...)
				}
			}
			return
		}
	}
	return
}

// processDefFile extracts the translatable entries of every named def in one
// Defs xml file, grouped by def type; files that fail to parse are skipped
func (x *Extractor) processDefFile(file, targetBase, archiveBase string) (generated, updated []string) {
	raw, err := bePath.ReadFile(file)
	if err != nil {
		x.Notify.warn("error reading %v: %v\n", file, err)
		return
	}
	root, err := parseDocument([]byte(normalizeDocument(raw)))
	if err != nil {
		x.Notify.warn("error parsing %v: %v\n", file, err)
		return
	}

	var types []string
	byType := make(map[string][]templateEntry)
	for _, defNode := range root.Children {
		nameNode := defNode.Child("defName")
		if nameNode == nil {
			continue
		}
		defName := strings.TrimSpace(nameNode.Text)
		if defName == "" {
			continue
		}
		if _, present := byType[defNode.Name]; !present {
			types = append(types, defNode.Name)
		}
		entries := byType[defNode.Name]
		x.extractEntries(defNode, defName, &entries)
		byType[defNode.Name] = entries
	}

	name := filepath.Base(file)
	for _, defType := range types {
		if len(byType[defType]) == 0 {
			continue
		}
		g, u := x.saveDefTemplates(defType, byType[defType], name, targetBase, archiveBase)
		generated = append(generated, g...)
		updated = append(updated, u...)
	}
	return
}

// extractEntries walks one def node depth-first collecting translatable leaf
// values keyed by their dotted path; list items are keyed by customLabel or
// def reference when present, positional index otherwise, with a numeric
// suffix disambiguating duplicates
func (x *Extractor) extractEntries(node *xmlNode, currentPath string, results *[]templateEntry) {
	nameCounts := make(map[string]int)
	liNames := make([]string, len(node.Children))
	for idx, child := range node.Children {
		if child.Name == "li" {
			if name := listItemName(child); name != "" {
				nameCounts[name] += 1
				liNames[idx] = name
			}
		}
	}

	nameIndices := make(map[string]int)
	liIndex := 0
	for idx, child := range node.Children {
		if child.Name == "defName" {
			continue
		}
		var part string
		if child.Name == "li" {
			if name := liNames[idx]; name != "" {
				if nameCounts[name] > 1 {
					part = name + "-" + strconv.Itoa(nameIndices[name])
					nameIndices[name] += 1
				} else {
					part = name
				}
			} else {
				part = strconv.Itoa(liIndex)
			}
			liIndex += 1
		} else {
			part = child.Name
		}

		newPath := currentPath + "." + part
		// rulesStrings items are grammar lines, translatable despite the
		// anonymous li tag
		isRulesList := node.Name == "rulesStrings" && child.Name == "li"

		if text := strings.TrimSpace(child.Text); text != "" && len(child.Children) == 0 {
			if !x.blacklisted(child.Name) && (isRulesList || x.translatable(child.Name)) {
				*results = append(*results, templateEntry{Key: newPath, Value: text})
			}
		}

		x.extractEntries(child, newPath, results)
	}
}

func listItemName(node *xmlNode) (name string) {
	if custom := node.Child("customLabel"); custom != nil {
		if text := strings.TrimSpace(custom.Text); text != "" {
			text = strings.ReplaceAll(text, " ", "_")
			var b strings.Builder
			for _, r := range text {
				if r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) {
					b.WriteRune(r)
				}
			}
			name = b.String()
			return
		}
	}
	if def := node.Child("def"); def != nil {
		name = strings.TrimSpace(def.Text)
	}
	return
}

func (x *Extractor) translatable(tag string) (matched bool) {
	tags := x.TranslatableTags
	if len(tags) == 0 {
		tags = DefaultTranslatableTags
	}
	lower := strings.ToLower(tag)
	for _, t := range tags {
		if strings.Contains(lower, strings.ToLower(t)) {
			matched = true
			return
		}
	}
	return
}

func (x *Extractor) blacklisted(tag string) (matched bool) {
	tags := x.BlacklistedTags
	if len(tags) == 0 {
		tags = DefaultBlacklistedTags
	}
	lower := strings.ToLower(tag)
	for _, t := range tags {
		if strings.Contains(lower, strings.ToLower(t)) {
			matched = true
			return
		}
	}
	return
}

// saveDefTemplates writes one DefInjected template file for one def type,
// preserving already-translated values from a previous run and pre-filling
// TODO entries from the archive
func (x *Extractor) saveDefTemplates(defType string, entries []templateEntry, filename, targetBase, archiveBase string) (generated, updated []string) {
	local := make(map[string]string)
	if archiveBase != "" {
		if localFile := filepath.Join(archiveBase, defType, filename); bePath.IsFile(localFile) {
			local = loadReferenceFile(localFile)
		}
	}

	// backstories publish baseDesc as description
	isBackstory := strings.Contains(defType, "Backstory")
	for idx := range entries {
		entry := &entries[idx]
		if pos := strings.Index(entry.Key, "."); pos >= 0 {
			entry.defName, entry.field = entry.Key[:pos], entry.Key[pos+1:]
		} else {
			entry.defName = entry.Key
		}
		if isBackstory && entry.field == "baseDesc" {
			entry.field = "description"
			entry.Key = entry.defName + "." + entry.field
		}
	}
	sort.SliceStable(entries, func(i, j int) (less bool) {
		if entries[i].defName == entries[j].defName {
			less = fieldRank(entries[i].field) < fieldRank(entries[j].field)
		} else {
			less = entries[i].defName < entries[j].defName
		}
		return
	})

	outputDir := filepath.Join(targetBase, defType)
	if err := bePath.Mkdir(outputDir); err != nil {
		x.Notify.warn("error making %v: %v\n", outputDir, err)
		return
	}
	outputFile := filepath.Join(outputDir, filename)
	existingKeys, existing := loadTemplateFile(outputFile)

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<LanguageData>\n  \n")
	used := make(map[string]bool)
	lastDef := ""
	for _, entry := range entries {
		used[entry.Key] = true
		if lastDef != "" && entry.defName != lastDef {
			b.WriteString("\n")
		}
		value := existing[entry.Key]
		if value == "" || value == "TODO" {
			value = x.lookupReference(entry.Key, local)
		}
		b.WriteString("  <!-- EN: " + commentSafe(entry.Value) + " -->\n")
		b.WriteString("  <" + entry.Key + ">" + escapeXmlText(value) + "</" + entry.Key + ">\n")
		lastDef = entry.defName
	}
	writeRetiredEntries(&b, existingKeys, existing, used)
	b.WriteString("  \n</LanguageData>")

	if err := os.WriteFile(outputFile, []byte(b.String()), 0640); err != nil {
		x.Notify.warn("error writing %v: %v\n", outputFile, err)
		return
	}
	label := defType + "/" + filename
	if len(existing) > 0 {
		updated = append(updated, label)
		x.Notify.log("updated: %v\n", label)
	} else {
		generated = append(generated, label)
		x.Notify.log("generated: %v\n", label)
	}
	return
}

// lookupReference resolves a still-untranslated key against the archive:
// the local mirror file wins over the global index, then historic field
// renames (baseDesc/description, title/label) are tried both ways
func (x *Extractor) lookupReference(key string, local map[string]string) (value string) {
	if v, ok := local[key]; ok {
		value = v
		return
	}
	if v, ok := x.archive[key]; ok {
		value = v
		return
	}
	for _, pair := range [][2]string{
		{".baseDesc", ".description"},
		{".description", ".baseDesc"},
		{".title", ".label"},
		{".label", ".title"},
	} {
		if strings.HasSuffix(key, pair[0]) {
			swapped := strings.TrimSuffix(key, pair[0]) + pair[1]
			if v, ok := x.archive[swapped]; ok {
				value = v
				return
			}
		}
	}
	value = "TODO"
	return
}

// processKeyedFile mirrors one English Keyed file as a template, every key
// preserved verbatim
func (x *Extractor) processKeyedFile(file, targetBase, archiveBase string) (generated, updated []string) {
	raw, err := bePath.ReadFile(file)
	if err != nil {
		x.Notify.warn("error reading %v: %v\n", file, err)
		return
	}
	root, err := parseDocument([]byte(normalizeDocument(raw)))
	if err != nil {
		x.Notify.warn("error parsing %v: %v\n", file, err)
		return
	}

	var entries []templateEntry
	for _, child := range root.Children {
		if text := strings.TrimSpace(child.Text); text != "" && len(child.Children) == 0 {
			entries = append(entries, templateEntry{Key: child.Name, Value: text})
		}
	}
	if len(entries) == 0 {
		return
	}

	if err = bePath.Mkdir(targetBase); err != nil {
		x.Notify.warn("error making %v: %v\n", targetBase, err)
		return
	}

	local := make(map[string]string)
	filename := filepath.Base(file)
	if archiveBase != "" {
		if localFile := filepath.Join(archiveBase, filename); bePath.IsFile(localFile) {
			local = loadReferenceFile(localFile)
		}
	}

	outputFile := filepath.Join(targetBase, filename)
	existingKeys, existing := loadTemplateFile(outputFile)

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<LanguageData>\n")
	used := make(map[string]bool)
	for _, entry := range entries {
		used[entry.Key] = true
		value := existing[entry.Key]
		if value == "" || value == "TODO" {
			if v, ok := local[entry.Key]; ok {
				value = v
			} else if v, ok := x.archive[entry.Key]; ok {
				value = v
			} else {
				value = "TODO"
			}
		}
		b.WriteString("\n  <!-- EN: " + commentSafe(entry.Value) + " -->\n")
		b.WriteString("  <" + entry.Key + ">" + escapeXmlText(value) + "</" + entry.Key + ">\n")
	}
	writeRetiredEntries(&b, existingKeys, existing, used)
	b.WriteString("\n</LanguageData>\n")

	if err = os.WriteFile(outputFile, []byte(b.String()), 0640); err != nil {
		x.Notify.warn("error writing %v: %v\n", outputFile, err)
		return
	}
	if len(existing) > 0 {
		updated = append(updated, filename)
		x.Notify.log("updated: %v\n", filename)
	} else {
		generated = append(generated, filename)
		x.Notify.log("generated: %v\n", filename)
	}
	return
}

// writeRetiredEntries appends keys no longer present in the mod, commented
// out under the INUTILIZADO marker the translator community expects
func writeRetiredEntries(b *strings.Builder, keys []string, values map[string]string, used map[string]bool) {
	wrote := false
	for _, key := range keys {
		if used[key] {
			continue
		}
		if !wrote {
			b.WriteString("\n  <!-- INUTILIZADO -->\n")
			wrote = true
		}
		b.WriteString("  <!-- <" + key + ">" + commentSafe(values[key]) + "</" + key + "> -->\n")
	}
}

// commentSafe keeps a value from terminating the xml comment it rides in
func commentSafe(value string) (safe string) {
	safe = strings.ReplaceAll(value, "--", "- -")
	return
}

func (x *Extractor) writeReadme(outputRoot string) {
	lines := []string{
		"=== HOW TO INSTALL THIS TRANSLATION ===",
		"",
		"1. Open the original mod folder.",
		"2. Enter the 'Languages' folder, creating it if missing.",
		"3. Inside, create a folder named '" + x.Language + "'.",
		"4. Copy the full contents of this folder (DefInjected, Keyed, any version folders) in there.",
		"",
	}
	readmeFile := filepath.Join(outputRoot, ReadmeFileName)
	if err := os.WriteFile(readmeFile, []byte(strings.Join(lines, "\n")), 0640); err != nil {
		x.Notify.warn("error writing %v: %v\n", readmeFile, err)
		return
	}
	x.Notify.log("generated: %v\n", ReadmeFileName)
}

// writeMinimalAbout publishes a trimmed About folder next to the language
// output so the templates can ship as a standalone translation mod
func (x *Extractor) writeMinimalAbout(baseDir string) {
	aboutFile := FindAboutFile(x.ModPath)
	if aboutFile == "" {
		x.Notify.warn("no About.xml found in %v, skipping metadata\n", x.ModPath)
		return
	}
	raw, err := bePath.ReadFile(aboutFile)
	if err != nil {
		x.Notify.warn("error reading %v: %v\n", aboutFile, err)
		return
	}
	root, err := parseDocument([]byte(normalizeDocument(raw)))
	if err != nil {
		x.Notify.warn("error parsing %v: %v\n", aboutFile, err)
		return
	}
	packageId := childTextOr(root, "packageId", "")
	if packageId == "" {
		x.Notify.warn("%v has no usable packageId, skipping metadata\n", aboutFile)
		return
	}
	name := childTextOr(root, "name", bePath.Base(x.ModPath))
	author := childTextOr(root, "author", "Unknown")

	var publishedId, markerFile string
	for _, check := range []string{
		filepath.Join(x.ModPath, "PublishedFileId.txt"),
		filepath.Join(x.ModPath, "About", "PublishedFileId.txt"),
	} {
		if bePath.IsFile(check) {
			if contents, ee := bePath.ReadFile(check); ee == nil {
				if id := strings.TrimSpace(string(contents)); id != "" {
					publishedId, markerFile = id, check
					break
				}
			}
		}
	}

	aboutDir := filepath.Join(baseDir, "About")
	if err = bePath.Mkdir(aboutDir); err != nil {
		x.Notify.warn("error making %v: %v\n", aboutDir, err)
		return
	}
	filename := "About.xml"
	if publishedId != "" {
		filename = "About_" + publishedId + ".xml"
	}
	contents := renderAboutMetadata(name, author, packageId, publishedId)
	if err = os.WriteFile(filepath.Join(aboutDir, filename), []byte(contents), 0640); err != nil {
		x.Notify.warn("error writing About/%v: %v\n", filename, err)
		return
	}
	if markerFile != "" {
		if _, ee := bePath.CopyFile(markerFile, filepath.Join(aboutDir, "PublishedFileId.txt")); ee == nil {
			x.Notify.log("copied: PublishedFileId.txt\n")
		}
	}
	x.Notify.log("generated: About/%v with packageId %q\n", filename, packageId)
}

func fieldRank(field string) (rank int) {
	var ok bool
	if rank, ok = defFieldRank[field]; !ok {
		rank = 99
	}
	return
}

// collectModDirs gathers matching directories below the mod root, skipping
// the template output tree, sorted so versions process in order
func collectModDirs(root string, match func(path string) bool) (dirs []string, err error) {
	err = filepath.Walk(root, func(path string, info os.FileInfo, werr error) (e error) {
		if werr != nil {
			e = werr
			return
		}
		if !info.IsDir() {
			return
		}
		if info.Name() == TemplatesDirName {
			e = filepath.SkipDir
			return
		}
		if match(path) {
			dirs = append(dirs, path)
		}
		return
	})
	sort.Strings(dirs)
	return
}

func relOrDot(base, path string) (rel string) {
	var err error
	if rel, err = filepath.Rel(base, path); err != nil || strings.HasPrefix(rel, "..") {
		rel = "."
	}
	return
}
