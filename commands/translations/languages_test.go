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

func TestNormalizeLanguage(t *testing.T) {
	for _, tt := range []struct {
		input  string
		expect string
	}{
		{"Spanish (Español(Castellano))", "Spanish"},
		{"SpanishLatin (Español(Latinoamérica))", "SpanishLatin"},
		{"French (Français)", "French"},
		{"SpanishLatin", "SpanishLatin"},
		{"German(Deutsch)", "German"},
		{"  Polish  ", "Polish"},
		{"", ""},
	} {
		require.Equal(t, tt.expect, NormalizeLanguage(tt.input), "input: %q", tt.input)
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0640))
}

func TestDetectLanguages(t *testing.T) {
	source := t.TempDir()

	writeTestFile(t, filepath.Join(source, "ModA", "SpanishLatin", "Keyed", "One.xml"), "<LanguageData />")
	writeTestFile(t, filepath.Join(source, "ModA", "French", "Keyed", "Two.xml"), "<LanguageData />")
	writeTestFile(t, filepath.Join(source, "ModB", "SpanishLatin", "DefInjected", "Three.xml"), "<LanguageData />")
	// ignored folders never count as languages
	writeTestFile(t, filepath.Join(source, "ModB", "Defs", "Nope.xml"), "<Defs />")
	writeTestFile(t, filepath.Join(source, "ModB", "About", "About.xml"), "<ModMetaData />")
	writeTestFile(t, filepath.Join(source, "ModC", "1.4", "Patches", "Nah.xml"), "<Patch />")

	candidates, err := DetectLanguages(source)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	require.Equal(t, "French", candidates[0].Name)
	require.Equal(t, 1, candidates[0].Mods)
	require.Equal(t, 1, candidates[0].XmlFiles)

	require.Equal(t, "SpanishLatin", candidates[1].Name)
	require.Equal(t, 2, candidates[1].Mods)
	require.Equal(t, 2, candidates[1].XmlFiles)
}

func TestDetectLanguagesMissingSource(t *testing.T) {
	_, err := DetectLanguages(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, ErrSourceNotFound)
}
