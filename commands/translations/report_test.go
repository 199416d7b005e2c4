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

func TestWriteReport(t *testing.T) {
	dest := t.TempDir()
	cfg := ReportConfig{
		Title:        "My Report",
		ExtraText:    "pack build notes",
		IncludeCount: true,
		IncludeMods:  true,
	}

	reportFile, err := WriteReport(dest, []string{"ModB", "Mod10", "Mod2"}, cfg)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(filepath.Base(reportFile), "my_report_"))
	require.Equal(t, filepath.Join(dest, ReportsDirName), filepath.Dir(reportFile))

	contents, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	text := string(contents)
	require.Contains(t, text, "My Report - ")
	require.Contains(t, text, strings.Repeat("=", 50))
	require.Contains(t, text, "pack build notes")
	require.Contains(t, text, "Total mods found: 3")
	// natural sort order, not lexicographic
	require.Less(t, strings.Index(text, "- Mod2"), strings.Index(text, "- Mod10"))
	require.Less(t, strings.Index(text, "- Mod10"), strings.Index(text, "- ModB"))
}

func TestWriteReportCustomDirectory(t *testing.T) {
	dest, custom := t.TempDir(), t.TempDir()
	cfg := ReportConfig{Directory: custom, IncludeMods: true}

	reportFile, err := WriteReport(dest, []string{"ModA"}, cfg)
	require.NoError(t, err)
	require.Equal(t, custom, filepath.Dir(reportFile))
	// an unset title falls back to the default
	require.True(t, strings.HasPrefix(filepath.Base(reportFile), "processed_mods_report_"))
}

func TestWriteReportNoMods(t *testing.T) {
	_, err := WriteReport(t.TempDir(), nil, ReportConfig{})
	require.Error(t, err)
}
