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

func makeCompileFixture(t *testing.T) (source, dest string) {
	t.Helper()
	source, dest = t.TempDir(), t.TempDir()
	writeTestFile(t,
		filepath.Join(source, "ModA", "SpanishLatin", "Keyed", "Greetings.xml"),
		"<LanguageData><Hello>hola</Hello></LanguageData>")
	writeTestFile(t,
		filepath.Join(source, "ModA", "SpanishLatin", "DefInjected", "Things.xml"),
		"<LanguageData><Thing.label>cosa</Thing.label></LanguageData>")
	writeTestFile(t,
		filepath.Join(source, "ModB", "SpanishLatin", "Keyed", "Farewell.xml"),
		"<LanguageData><Bye>adios</Bye></LanguageData>")
	// ModC carries no SpanishLatin folder at all
	writeTestFile(t,
		filepath.Join(source, "ModC", "French", "Keyed", "Nope.xml"),
		"<LanguageData />")
	return
}

func makeTestCompiler(source, dest string) (c *Compiler) {
	config := DefaultConfig()
	config.SourceRoot = source
	config.DestRoot = dest
	config.Language = "SpanishLatin"
	c = NewCompiler(config)
	return
}

func TestCompilePrefixed(t *testing.T) {
	source, dest := makeCompileFixture(t)
	compiler := makeTestCompiler(source, dest)

	summary, err := compiler.Compile()
	require.NoError(t, err)
	require.NotNil(t, summary)

	require.Equal(t, 3, summary.ModsFound)
	require.Equal(t, []string{"ModA", "ModB"}, summary.Processed)
	require.Equal(t, []string{"ModC"}, summary.Skipped)
	require.Equal(t, 3, summary.Copied)
	require.Equal(t, 0, summary.Collisions)

	output := filepath.Join(dest, "Languages", "SpanishLatin")
	require.Equal(t, output, summary.OutputPath)
	require.FileExists(t, filepath.Join(output, "Keyed", "[ModA]_Greetings.xml"))
	require.FileExists(t, filepath.Join(output, "DefInjected", "[ModA]_Things.xml"))
	require.FileExists(t, filepath.Join(output, "Keyed", "[ModB]_Farewell.xml"))
}

func TestCompileNormalizesLanguageName(t *testing.T) {
	source, dest := t.TempDir(), t.TempDir()
	writeTestFile(t,
		filepath.Join(source, "ModA", "Spanish (Español(Castellano))", "Keyed", "One.xml"),
		"<LanguageData><K>v</K></LanguageData>")

	compiler := makeTestCompiler(source, dest)
	compiler.Language = "Spanish (Español(Castellano))"

	summary, err := compiler.Compile()
	require.NoError(t, err)
	require.Equal(t, "Spanish", summary.Language)
	require.FileExists(t,
		filepath.Join(dest, "Languages", "Spanish", "Keyed", "[ModA]_One.xml"))
}

func TestCompileKeepNamesLastWins(t *testing.T) {
	source, dest := t.TempDir(), t.TempDir()
	writeTestFile(t,
		filepath.Join(source, "ModA", "SpanishLatin", "Keyed", "Same.xml"),
		"<LanguageData><K>first</K></LanguageData>")
	writeTestFile(t,
		filepath.Join(source, "ModB", "SpanishLatin", "Keyed", "Same.xml"),
		"<LanguageData><K>second</K></LanguageData>")

	compiler := makeTestCompiler(source, dest)
	compiler.KeepNames = true

	summary, err := compiler.Compile()
	require.NoError(t, err)
	require.Equal(t, 1, summary.Collisions)
	require.Len(t, summary.Warnings, 1)
	require.Contains(t, summary.Warnings[0], "ModB overwrites")

	contents, err := os.ReadFile(
		filepath.Join(dest, "Languages", "SpanishLatin", "Keyed", "Same.xml"))
	require.NoError(t, err)
	require.Contains(t, string(contents), "second")
}

func TestCompileStripComments(t *testing.T) {
	source, dest := t.TempDir(), t.TempDir()
	writeTestFile(t,
		filepath.Join(source, "ModA", "SpanishLatin", "Keyed", "One.xml"),
		"<LanguageData><!-- nope --><B>b</B><A>a</A></LanguageData>")
	// malformed files are copied verbatim, never lost
	writeTestFile(t,
		filepath.Join(source, "ModA", "SpanishLatin", "Keyed", "Bad.xml"),
		"<LanguageData><A>broken</LanguageData>")

	compiler := makeTestCompiler(source, dest)
	compiler.StripComments = true

	summary, err := compiler.Compile()
	require.NoError(t, err)
	require.Equal(t, 2, summary.Copied)
	require.Len(t, summary.Cleaned, 1)
	require.Len(t, summary.Warnings, 1)

	output := filepath.Join(dest, "Languages", "SpanishLatin", "Keyed")
	cleaned, err := os.ReadFile(filepath.Join(output, "[ModA]_One.xml"))
	require.NoError(t, err)
	require.NotContains(t, string(cleaned), "nope")
	require.Less(t,
		strings.Index(string(cleaned), "<A>"),
		strings.Index(string(cleaned), "<B>"),
	)

	verbatim, err := os.ReadFile(filepath.Join(output, "[ModA]_Bad.xml"))
	require.NoError(t, err)
	require.Equal(t, "<LanguageData><A>broken</LanguageData>", string(verbatim))
}

func TestCompileKeepNamesStripTransfersWholeTree(t *testing.T) {
	source, dest := t.TempDir(), t.TempDir()
	writeTestFile(t,
		filepath.Join(source, "ModA", "SpanishLatin", "Keyed", "One.xml"),
		"<LanguageData><!-- nope --><K>v</K></LanguageData>")
	// both naming modes transfer non-xml files, only xml gets rewritten
	writeTestFile(t,
		filepath.Join(source, "ModA", "SpanishLatin", "LoadFolders.txt"),
		"notes")

	compiler := makeTestCompiler(source, dest)
	compiler.KeepNames = true
	compiler.StripComments = true

	summary, err := compiler.Compile()
	require.NoError(t, err)
	require.Equal(t, 2, summary.Copied)

	output := filepath.Join(dest, "Languages", "SpanishLatin")
	cleaned, err := os.ReadFile(filepath.Join(output, "Keyed", "One.xml"))
	require.NoError(t, err)
	require.NotContains(t, string(cleaned), "nope")

	verbatim, err := os.ReadFile(filepath.Join(output, "LoadFolders.txt"))
	require.NoError(t, err)
	require.Equal(t, "notes", string(verbatim))
}

func TestCompileRunId(t *testing.T) {
	source, dest := makeCompileFixture(t)
	first, err := makeTestCompiler(source, dest).Compile()
	require.NoError(t, err)
	require.NotEmpty(t, first.RunId)
	second, err := makeTestCompiler(source, dest).Compile()
	require.NoError(t, err)
	require.NotEqual(t, first.RunId, second.RunId)
}

func TestCompileClean(t *testing.T) {
	source, dest := makeCompileFixture(t)
	output := filepath.Join(dest, "Languages", "SpanishLatin")
	writeTestFile(t, filepath.Join(output, "Keyed", "[Stale]_Old.xml"), "<LanguageData />")

	compiler := makeTestCompiler(source, dest)
	compiler.Clean = true

	_, err := compiler.Compile()
	require.NoError(t, err)
	require.NoFileExists(t, filepath.Join(output, "Keyed", "[Stale]_Old.xml"))
	require.FileExists(t, filepath.Join(output, "Keyed", "[ModA]_Greetings.xml"))
}

func TestCompileIdempotent(t *testing.T) {
	source, dest := makeCompileFixture(t)

	first, err := makeTestCompiler(source, dest).Compile()
	require.NoError(t, err)
	second, err := makeTestCompiler(source, dest).Compile()
	require.NoError(t, err)

	require.Equal(t, first.Processed, second.Processed)
	require.Equal(t, first.Copied, second.Copied)
}

func TestCompileValidation(t *testing.T) {
	compiler := makeTestCompiler(t.TempDir(), t.TempDir())
	compiler.Language = ""
	_, err := compiler.Compile()
	require.ErrorIs(t, err, ErrNoLanguage)

	compiler = makeTestCompiler(t.TempDir(), t.TempDir())
	compiler.DestRoot = ""
	_, err = compiler.Compile()
	require.ErrorIs(t, err, ErrNoDestination)

	compiler = makeTestCompiler(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	_, err = compiler.Compile()
	require.ErrorIs(t, err, ErrSourceNotFound)
}
