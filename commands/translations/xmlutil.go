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
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-enjin/golang-org-x-text/encoding/unicode"
	"github.com/go-enjin/golang-org-x-text/transform"
)

// RimWorld string values embed display markup that is not well-formed xml,
// matching tags are escaped to entity form before parsing
var rxRimWorldMarkup = regexp.MustCompile(`(?i)<(/?(?:color|size|b|i)(?:\s+[^>]*?)?)>`)

type xmlNode struct {
	Name     string
	Attrs    []xml.Attr
	Text     string
	Children []*xmlNode
}

func (n *xmlNode) Child(name string) (child *xmlNode) {
	for _, c := range n.Children {
		if c.Name == name {
			child = c
			return
		}
	}
	return
}

// CleanDocument rewrites one translation xml document: byte-order marks and
// the xml declaration are dropped, RimWorld inline markup is escaped,
// comments are removed, the root's children are sorted by tag name and the
// document is re-emitted indented.
func CleanDocument(raw []byte) (out []byte, err error) {
	content := normalizeDocument(raw)
	content = rxRimWorldMarkup.ReplaceAllString(content, "&lt;${1}&gt;")

	var root *xmlNode
	if root, err = parseDocument([]byte(content)); err != nil {
		return
	}

	sort.SliceStable(root.Children, func(i, j int) (less bool) {
		less = root.Children[i].Name < root.Children[j].Name
		return
	})

	out = renderDocument(root)
	return
}

// normalizeDocument decodes utf-16 input, strips byte-order marks and drops
// any leading xml declaration
func normalizeDocument(raw []byte) (content string) {
	switch {
	case len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE:
		content = decodeUtf16(raw, unicode.LittleEndian)
	case len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF:
		content = decodeUtf16(raw, unicode.BigEndian)
	case utf8.Valid(raw) && !bytes.Contains(raw, []byte{0x00}):
		content = string(bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))
	default:
		// workshop uploads include bom-less utf-16 files, little-endian
		// being the only variant seen in the wild; nul bytes never occur
		// in utf-8 xml so they mark the ascii-only utf-16 case
		content = decodeUtf16(raw, unicode.LittleEndian)
	}
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "<?xml") {
		if idx := strings.Index(content, "?>"); idx != -1 {
			content = strings.TrimSpace(content[idx+2:])
		}
	}
	return
}

func decodeUtf16(raw []byte, endianness unicode.Endianness) (content string) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	if decoded, _, err := transform.Bytes(decoder, raw); err == nil {
		content = string(decoded)
	} else {
		content = string(raw)
	}
	return
}

// parseDocument builds a simple element tree, dropping comments, processing
// instructions and directives; mixed content is not preserved
func parseDocument(raw []byte) (root *xmlNode, err error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.Entity = xml.HTMLEntity

	var stack []*xmlNode
	for {
		var token xml.Token
		if token, err = decoder.Token(); err != nil {
			if err == io.EOF {
				err = nil
				break
			}
			return
		}
		switch t := token.(type) {
		case xml.StartElement:
			node := &xmlNode{
				Name:  t.Name.Local,
				Attrs: t.Copy().Attr,
			}
			if len(stack) == 0 {
				if root != nil {
					err = fmt.Errorf("multiple root elements")
					return
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		err = fmt.Errorf("empty document")
	}
	return
}

func renderDocument(root *xmlNode) (out []byte) {
	buf := bytes.NewBufferString(xml.Header)
	renderNode(buf, root, 0)
	out = buf.Bytes()
	return
}

func renderNode(buf *bytes.Buffer, node *xmlNode, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent + "<" + node.Name)
	for _, attr := range node.Attrs {
		buf.WriteString(" " + attr.Name.Local + `="` + escapeXmlAttr(attr.Value) + `"`)
	}
	if len(node.Children) > 0 {
		buf.WriteString(">\n")
		for _, child := range node.Children {
			renderNode(buf, child, depth+1)
		}
		buf.WriteString(indent + "</" + node.Name + ">\n")
		return
	}
	if text := strings.TrimSpace(node.Text); text != "" {
		buf.WriteString(">" + escapeXmlText(text) + "</" + node.Name + ">\n")
		return
	}
	buf.WriteString(" />\n")
}

var (
	xmlTextEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	xmlAttrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
)

func escapeXmlText(text string) (escaped string) {
	escaped = xmlTextEscaper.Replace(text)
	return
}

func escapeXmlAttr(value string) (escaped string) {
	escaped = xmlAttrEscaper.Replace(value)
	return
}
