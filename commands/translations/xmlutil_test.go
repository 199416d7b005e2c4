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
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"
)

func TestCleanDocumentSortsAndStripsComments(t *testing.T) {
	input := `<?xml version="1.0" encoding="utf-8"?>
<LanguageData>
  <!-- translated by somebody -->
  <Zebra.label>cebra</Zebra.label>
  <Apple.label>manzana &amp; pera</Apple.label>
</LanguageData>`

	out, err := CleanDocument([]byte(input))
	require.NoError(t, err)

	text := string(out)
	require.True(t, strings.HasPrefix(text, "<?xml"))
	require.NotContains(t, text, "translated by somebody")
	require.Contains(t, text, "<Apple.label>manzana &amp; pera</Apple.label>")
	require.Less(t,
		strings.Index(text, "Apple.label"),
		strings.Index(text, "Zebra.label"),
	)
}

func TestCleanDocumentEscapesGameMarkup(t *testing.T) {
	input := `<LanguageData>
  <Thing.description>a <b>bold</b> and <i>italic</i> thing</Thing.description>
</LanguageData>`

	out, err := CleanDocument([]byte(input))
	require.NoError(t, err)
	require.Contains(t, string(out),
		"a &lt;b&gt;bold&lt;/b&gt; and &lt;i&gt;italic&lt;/i&gt; thing")
}

func TestCleanDocumentUtf8Bom(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("<Root><A>x</A></Root>")...)
	out, err := CleanDocument(input)
	require.NoError(t, err)
	require.Contains(t, string(out), "<A>x</A>")
}

func TestCleanDocumentUtf16(t *testing.T) {
	raw := []byte{0xFF, 0xFE}
	for _, code := range utf16.Encode([]rune("<Root><A>niño</A></Root>")) {
		raw = append(raw, byte(code), byte(code>>8))
	}
	out, err := CleanDocument(raw)
	require.NoError(t, err)
	require.Contains(t, string(out), "<A>niño</A>")
}

func TestCleanDocumentUtf16NoBom(t *testing.T) {
	var raw []byte
	for _, code := range utf16.Encode([]rune("<Root><A>niño</A></Root>")) {
		raw = append(raw, byte(code), byte(code>>8))
	}
	out, err := CleanDocument(raw)
	require.NoError(t, err)
	require.Contains(t, string(out), "<A>niño</A>")
}

func TestCleanDocumentUtf16TruncatedTail(t *testing.T) {
	raw := []byte{0xFF, 0xFE}
	for _, code := range utf16.Encode([]rune("<Root><A>x</A></Root>")) {
		raw = append(raw, byte(code), byte(code>>8))
	}
	// a lone trailing byte decodes to the replacement rune, the document
	// itself still parses
	raw = append(raw, 0x41)
	out, err := CleanDocument(raw)
	require.NoError(t, err)
	require.Contains(t, string(out), "<A>x</A>")
}

func TestCleanDocumentMalformed(t *testing.T) {
	_, err := CleanDocument([]byte("<Root><A>unterminated</Root>"))
	require.Error(t, err)

	_, err = CleanDocument([]byte("  "))
	require.Error(t, err)
}

func TestCleanDocumentSelfClosing(t *testing.T) {
	out, err := CleanDocument([]byte("<Root><Empty></Empty></Root>"))
	require.NoError(t, err)
	require.Contains(t, string(out), "<Empty />")
}
