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
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackLanguage(t *testing.T) {
	base := t.TempDir()
	writeTestFile(t, filepath.Join(base, "Spanish", "Keyed", "One.xml"),
		"<LanguageData><K>v</K></LanguageData>")
	writeTestFile(t, filepath.Join(base, "Spanish", "DefInjected", "Two.xml"),
		"<LanguageData />")

	tarFile, err := PackLanguage(base, "Spanish", nil)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "Spanish.tar"), tarFile)
	require.NoDirExists(t, filepath.Join(base, "Spanish"))

	fh, err := os.Open(tarFile)
	require.NoError(t, err)
	defer fh.Close()

	found := make(map[string]string)
	tr := tar.NewReader(fh)
	for {
		header, ee := tr.Next()
		if ee == io.EOF {
			break
		}
		require.NoError(t, ee)
		if header.Typeflag == tar.TypeReg {
			data, ee := io.ReadAll(tr)
			require.NoError(t, ee)
			found[header.Name] = string(data)
		}
	}

	require.Contains(t, found, "Spanish/Keyed/One.xml")
	require.Contains(t, found, "Spanish/DefInjected/Two.xml")
	require.Contains(t, found["Spanish/Keyed/One.xml"], "<K>v</K>")
}

func TestPackLanguageMissing(t *testing.T) {
	_, err := PackLanguage(t.TempDir(), "Nope", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "language folder not found")
}
