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
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
)

// Summary reports the outcome of one compile run. RunId is assigned when
// the run starts and ties log lines and json output to the same invocation.
type Summary struct {
	RunId      string   `json:"run-id"`
	Language   string   `json:"language"`
	OutputPath string   `json:"output-path"`
	ModsFound  int      `json:"mods-found"`
	Processed  []string `json:"mods-processed"`
	Skipped    []string `json:"mods-skipped"`
	Copied     int      `json:"files-copied"`
	Bytes      int64    `json:"bytes-copied"`
	Collisions int      `json:"collisions"`
	Cleaned    []string `json:"files-cleaned,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`

	Duration time.Duration `json:"duration"`
}

func (s *Summary) String() (out string) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("mods processed: %v/%v\n", len(s.Processed), s.ModsFound))
	b.WriteString(fmt.Sprintf("mods skipped: %v\n", len(s.Skipped)))
	b.WriteString(fmt.Sprintf(
		"files copied: %v (%v)\n",
		humanize.Comma(int64(s.Copied)),
		humanize.Bytes(uint64(s.Bytes)),
	))
	if s.Collisions > 0 {
		b.WriteString(fmt.Sprintf("collisions (last mod wins): %v\n", s.Collisions))
	}
	b.WriteString(fmt.Sprintf("output: %v\n", s.OutputPath))
	b.WriteString(fmt.Sprintf("duration: %v\n", s.Duration.Round(time.Millisecond)))
	if s.RunId != "" {
		b.WriteString(fmt.Sprintf("run id: %v\n", s.RunId))
	}
	out = b.String()
	return
}

func (s *Summary) MarshalIndentJSON() (data []byte, err error) {
	data, err = json.MarshalIndent(s, "", "\t")
	return
}
