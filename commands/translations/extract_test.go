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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeTestExtractor(mod string) (x *Extractor) {
	config := DefaultConfig()
	config.Language = "SpanishLatin"
	x = NewExtractor(config)
	x.ModPath = mod
	x.Readme = false
	x.CreateAbout = false
	return
}

func TestExtractDefTemplates(t *testing.T) {
	mod := t.TempDir()
	writeTestFile(t, filepath.Join(mod, "Defs", "Things.xml"),
		`<Defs>
  <ThingDef>
    <defName>Zebra</defName>
    <description>striped animal</description>
    <label>zebra</label>
    <texPath>Things/Zebra</texPath>
    <marketValue>100</marketValue>
  </ThingDef>
  <ThingDef>
    <defName>Apple</defName>
    <label>apple</label>
  </ThingDef>
  <ThingDef>
    <description>no name, skipped</description>
  </ThingDef>
</Defs>`)

	summary, err := makeTestExtractor(mod).Extract()
	require.NoError(t, err)
	require.Equal(t, 1, summary.Files)
	require.Equal(t, []string{"ThingDef/Things.xml"}, summary.Generated)

	contents, err := os.ReadFile(filepath.Join(
		mod, TemplatesDirName, "SpanishLatin", "DefInjected", "ThingDef", "Things.xml"))
	require.NoError(t, err)
	text := string(contents)

	require.Contains(t, text, "<!-- EN: zebra -->")
	require.Contains(t, text, "<Zebra.label>TODO</Zebra.label>")
	require.Contains(t, text, "<Apple.label>TODO</Apple.label>")
	// defs sort by name, label comes before description within a def
	require.Less(t, strings.Index(text, "Apple.label"), strings.Index(text, "Zebra.label"))
	require.Less(t, strings.Index(text, "Zebra.label"), strings.Index(text, "Zebra.description"))
	// technical fields never enter the template
	require.NotContains(t, text, "texPath")
	require.NotContains(t, text, "marketValue")
}

func TestExtractListItems(t *testing.T) {
	mod := t.TempDir()
	writeTestFile(t, filepath.Join(mod, "Defs", "Rules.xml"),
		`<Defs>
  <RulePackDef>
    <defName>Pack</defName>
    <rulesStrings>
      <li>event->a thing happened</li>
      <li>event->another thing</li>
    </rulesStrings>
    <stages>
      <li>
        <customLabel>early stage</customLabel>
        <label>early</label>
      </li>
      <li>
        <label>late</label>
      </li>
    </stages>
  </RulePackDef>
</Defs>`)

	_, err := makeTestExtractor(mod).Extract()
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(
		mod, TemplatesDirName, "SpanishLatin", "DefInjected", "RulePackDef", "Rules.xml"))
	require.NoError(t, err)
	text := string(contents)

	// anonymous rulesStrings items are indexed, named stages use customLabel
	require.Contains(t, text, "<Pack.rulesStrings.0>")
	require.Contains(t, text, "<Pack.rulesStrings.1>")
	require.Contains(t, text, "<Pack.stages.early_stage.label>")
	require.Contains(t, text, "<Pack.stages.1.label>")
	require.Contains(t, text, "<Pack.stages.early_stage.customLabel>")
}

func TestExtractKeyedTemplates(t *testing.T) {
	mod := t.TempDir()
	writeTestFile(t, filepath.Join(mod, "Languages", "English", "Keyed", "Gameplay.xml"),
		"<LanguageData><Greeting>Hello there</Greeting><Farewell>Bye</Farewell></LanguageData>")
	// non-English keyed sources are not templates
	writeTestFile(t, filepath.Join(mod, "Languages", "French", "Keyed", "Gameplay.xml"),
		"<LanguageData><Greeting>Bonjour</Greeting></LanguageData>")

	summary, err := makeTestExtractor(mod).Extract()
	require.NoError(t, err)
	require.Equal(t, []string{"Gameplay.xml"}, summary.Generated)

	contents, err := os.ReadFile(filepath.Join(
		mod, TemplatesDirName, "SpanishLatin", "Keyed", "Gameplay.xml"))
	require.NoError(t, err)
	text := string(contents)
	require.Contains(t, text, "<!-- EN: Hello there -->")
	require.Contains(t, text, "<Greeting>TODO</Greeting>")
	require.Contains(t, text, "<Farewell>TODO</Farewell>")
	require.NotContains(t, text, "Bonjour")
}

func TestExtractPreservesTranslations(t *testing.T) {
	mod := t.TempDir()
	defsFile := filepath.Join(mod, "Defs", "Things.xml")
	writeTestFile(t, defsFile,
		`<Defs><ThingDef><defName>Apple</defName><label>apple</label><description>a fruit</description></ThingDef></Defs>`)

	_, err := makeTestExtractor(mod).Extract()
	require.NoError(t, err)

	// translate one entry by hand, then shrink the def
	outputFile := filepath.Join(
		mod, TemplatesDirName, "SpanishLatin", "DefInjected", "ThingDef", "Things.xml")
	contents, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	translated := strings.Replace(string(contents),
		"<Apple.label>TODO</Apple.label>", "<Apple.label>manzana</Apple.label>", 1)
	require.NoError(t, os.WriteFile(outputFile, []byte(translated), 0640))
	writeTestFile(t, defsFile,
		`<Defs><ThingDef><defName>Apple</defName><label>apple</label></ThingDef></Defs>`)

	summary, err := makeTestExtractor(mod).Extract()
	require.NoError(t, err)
	require.Equal(t, []string{"ThingDef/Things.xml"}, summary.Updated)

	contents, err = os.ReadFile(outputFile)
	require.NoError(t, err)
	text := string(contents)
	require.Contains(t, text, "<Apple.label>manzana</Apple.label>")
	require.Contains(t, text, "INUTILIZADO")
	require.Contains(t, text, "<!-- <Apple.description>TODO</Apple.description> -->")
}

func TestExtractArchivePrefill(t *testing.T) {
	root := t.TempDir()
	mod := filepath.Join(root, "CoolMod")
	writeTestFile(t, filepath.Join(mod, "Languages", "English", "Keyed", "Gameplay.xml"),
		"<LanguageData><Greeting>Hello</Greeting><Farewell>Bye</Farewell></LanguageData>")

	archive := t.TempDir()
	writeTestFile(t,
		filepath.Join(archive, "CoolMod", "Languages", "SpanishLatin", "Keyed", "Old.xml"),
		"<LanguageData><Greeting>Hola</Greeting><Farewell>TODO</Farewell></LanguageData>")

	extractor := makeTestExtractor(mod)
	extractor.ArchiveRoot = archive
	_, err := extractor.Extract()
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(
		mod, TemplatesDirName, "SpanishLatin", "Keyed", "Gameplay.xml"))
	require.NoError(t, err)
	text := string(contents)
	require.Contains(t, text, "<Greeting>Hola</Greeting>")
	// TODO values in the archive never pre-fill
	require.Contains(t, text, "<Farewell>TODO</Farewell>")
}

func TestExtractVersionFilter(t *testing.T) {
	mod := t.TempDir()
	writeTestFile(t, filepath.Join(mod, "Defs", "Base.xml"),
		`<Defs><ThingDef><defName>Old</defName><label>old</label></ThingDef></Defs>`)
	writeTestFile(t, filepath.Join(mod, "1.5", "Defs", "New.xml"),
		`<Defs><ThingDef><defName>New</defName><label>new</label></ThingDef></Defs>`)

	extractor := makeTestExtractor(mod)
	extractor.TargetVersion = "1.5"
	_, err := extractor.Extract()
	require.NoError(t, err)

	output := filepath.Join(mod, TemplatesDirName, "SpanishLatin")
	require.FileExists(t, filepath.Join(output, "1.5", "DefInjected", "ThingDef", "New.xml"))
	require.NoFileExists(t, filepath.Join(output, "DefInjected", "ThingDef", "Base.xml"))
}

func TestExtractMergeVersions(t *testing.T) {
	mod := t.TempDir()
	writeTestFile(t, filepath.Join(mod, "Defs", "Base.xml"),
		`<Defs><ThingDef><defName>Old</defName><label>old</label></ThingDef></Defs>`)
	writeTestFile(t, filepath.Join(mod, "1.4", "Defs", "New.xml"),
		`<Defs><ThingDef><defName>New</defName><label>new</label></ThingDef></Defs>`)

	extractor := makeTestExtractor(mod)
	extractor.TargetVersion = "1.5"
	extractor.MergeVersions = true
	_, err := extractor.Extract()
	require.NoError(t, err)

	merged := filepath.Join(mod, TemplatesDirName, "SpanishLatin", "1.5", "DefInjected", "ThingDef")
	require.FileExists(t, filepath.Join(merged, "Base.xml"))
	require.FileExists(t, filepath.Join(merged, "New.xml"))
}

func TestExtractBackstoryRename(t *testing.T) {
	mod := t.TempDir()
	writeTestFile(t, filepath.Join(mod, "Defs", "Stories.xml"),
		`<Defs><BackstoryDef><defName>Farmer</defName><title>farmer</title><baseDesc>grew up farming</baseDesc></BackstoryDef></Defs>`)

	_, err := makeTestExtractor(mod).Extract()
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(
		mod, TemplatesDirName, "SpanishLatin", "DefInjected", "BackstoryDef", "Stories.xml"))
	require.NoError(t, err)
	text := string(contents)
	require.Contains(t, text, "<Farmer.description>TODO</Farmer.description>")
	require.NotContains(t, text, "Farmer.baseDesc")
}

func TestExtractReadmeAndAbout(t *testing.T) {
	mod := t.TempDir()
	writeTestFile(t, filepath.Join(mod, "Defs", "Things.xml"),
		`<Defs><ThingDef><defName>Apple</defName><label>apple</label></ThingDef></Defs>`)
	writeTestFile(t, filepath.Join(mod, "About", "About.xml"),
		"<ModMetaData><name>Cool Mod</name><author>Someone</author><packageId>Someone.CoolMod</packageId></ModMetaData>")
	writeTestFile(t, filepath.Join(mod, "About", "PublishedFileId.txt"), "12345")

	extractor := makeTestExtractor(mod)
	extractor.Readme = true
	extractor.CreateAbout = true
	_, err := extractor.Extract()
	require.NoError(t, err)

	output := filepath.Join(mod, TemplatesDirName, "SpanishLatin")
	require.FileExists(t, filepath.Join(output, ReadmeFileName))

	aboutFile := filepath.Join(mod, TemplatesDirName, "About", "About_12345.xml")
	require.FileExists(t, aboutFile)
	contents, err := os.ReadFile(aboutFile)
	require.NoError(t, err)
	text := string(contents)
	require.Contains(t, text, "<packageId>Someone.CoolMod</packageId>")
	require.Contains(t, text, "<!-- PublishedFileId: 12345 -->")
	require.FileExists(t, filepath.Join(mod, TemplatesDirName, "About", "PublishedFileId.txt"))
}

func TestExtractValidation(t *testing.T) {
	extractor := makeTestExtractor(filepath.Join(t.TempDir(), "nope"))
	_, err := extractor.Extract()
	require.ErrorIs(t, err, ErrModNotFound)

	extractor = makeTestExtractor(t.TempDir())
	extractor.Language = ""
	_, err = extractor.Extract()
	require.ErrorIs(t, err, ErrNoLanguage)
}

func TestStripModsSegments(t *testing.T) {
	sep := string(filepath.Separator)
	require.Equal(t, ".", stripModsSegments("."))
	require.Equal(t, ".", stripModsSegments(strings.Join([]string{"Mods", "Inner"}, sep)))
	require.Equal(t, "1.5", stripModsSegments(strings.Join([]string{"1.5", "Mods", "Inner"}, sep)))
	require.Equal(t,
		filepath.Join("1.5", "Extra"),
		stripModsSegments(strings.Join([]string{"1.5", "Mods", "Inner", "Extra"}, sep)))
	// a trailing Mods folder with nothing below it stays put
	require.Equal(t, "Mods", stripModsSegments("Mods"))
}
