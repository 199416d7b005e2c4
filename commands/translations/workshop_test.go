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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeModName(t *testing.T) {
	for _, tt := range []struct {
		input  string
		expect string
	}{
		{"Vanilla Expanded: Core", "Vanilla Expanded Core"},
		{"What? A <Mod>", "What_ A _Mod_"},
		{"Trailing Dots...", "Trailing Dots"},
		{"a/b\\c|d", "a_b_c_d"},
		{"", "Unnamed_Mod"},
		{":::", "Unnamed_Mod"},
	} {
		require.Equal(t, tt.expect, SanitizeModName(tt.input), "input: %q", tt.input)
	}
}

func TestExtractMetadata(t *testing.T) {
	workshop, dest := t.TempDir(), t.TempDir()

	writeTestFile(t, filepath.Join(workshop, "111222", "About", "About.xml"),
		"<ModMetaData><name>Cool: Mod</name><author>Somebody</author><packageId>Some.Body.CoolMod</packageId></ModMetaData>")
	// lowercase about.xml variant
	writeTestFile(t, filepath.Join(workshop, "333444", "About", "about.xml"),
		"<ModMetaData><name>Other</name></ModMetaData>")
	// numeric folder without About.xml is skipped
	writeTestFile(t, filepath.Join(workshop, "555666", "Textures", "x.png"), "png")
	// non-numeric folders are never scanned
	writeTestFile(t, filepath.Join(workshop, "NotAMod", "About", "About.xml"), "<ModMetaData />")

	summary, err := ExtractMetadata(workshop, dest, nil)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Processed)
	require.Equal(t, 1, summary.Skipped)
	require.Empty(t, summary.Errors)

	outputRoot := filepath.Join(dest, MetadataDirName)
	require.Equal(t, outputRoot, summary.OutputPath)

	aboutDir := filepath.Join(outputRoot, "Cool Mod", "About")
	contents, err := os.ReadFile(filepath.Join(aboutDir, "About_111222.xml"))
	require.NoError(t, err)
	text := string(contents)
	require.Contains(t, text, "<name>Cool: Mod</name>")
	require.Contains(t, text, "<packageId>Some.Body.CoolMod</packageId>")
	require.Contains(t, text, "<!-- PublishedFileId: 111222 -->")

	marker, err := os.ReadFile(filepath.Join(aboutDir, "PublishedFileId.txt"))
	require.NoError(t, err)
	require.Equal(t, "111222", string(marker))

	// missing name and author fall back to placeholders
	other, err := os.ReadFile(filepath.Join(outputRoot, "Other", "About", "About_333444.xml"))
	require.NoError(t, err)
	require.Contains(t, string(other), "<author>Unknown</author>")
	require.Contains(t, string(other), "<packageId>Unknown.PackageId</packageId>")

	require.FileExists(t, filepath.Join(outputRoot, "mods.json"))
}

func TestExtractMetadataEmpty(t *testing.T) {
	workshop := t.TempDir()
	writeTestFile(t, filepath.Join(workshop, "NotNumeric", "About", "About.xml"), "<ModMetaData />")

	_, err := ExtractMetadata(workshop, t.TempDir(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no workshop mod folders")
}
