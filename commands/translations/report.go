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
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fvbommel/sortorder"
	"github.com/go-git/go-git/v5"
	"github.com/iancoleman/strcase"

	bePath "github.com/go-enjin/be/pkg/path"
)

const ReportsDirName = "Reports"

// WriteReport emits a timestamped plain-text report of the mods processed by
// the last compile pass, into the configured report directory or a Reports
// folder at the destination root. When the destination lives inside a git
// work tree the current HEAD revision is stamped into the header.
func WriteReport(destRoot string, mods []string, cfg ReportConfig) (reportFile string, err error) {
	if len(mods) == 0 {
		err = fmt.Errorf("no processed mods to report")
		return
	}

	directory := cfg.Directory
	if directory == "" {
		directory = filepath.Join(destRoot, ReportsDirName)
	}
	if err = bePath.Mkdir(directory); err != nil {
		err = fmt.Errorf("error making report directory: %v", err)
		return
	}

	title := cfg.Title
	if title == "" {
		title = DefaultReportTitle
	}

	now := time.Now()
	name := strcase.ToSnake(title) + "_" + now.Format("2006-01-02_15-04-05") + ".txt"
	reportFile = filepath.Join(directory, name)

	var buf strings.Builder
	buf.WriteString(title + " - " + now.Format("2006-01-02 15:04:05") + "\n")
	buf.WriteString(strings.Repeat("=", 50) + "\n")
	if revision := sourceRevision(destRoot); revision != "" {
		buf.WriteString("Source revision: " + revision + "\n")
	}
	if cfg.ExtraText != "" {
		buf.WriteString("\n" + cfg.ExtraText + "\n\n")
	}
	if cfg.IncludeCount {
		buf.WriteString(fmt.Sprintf("Total mods found: %d\n\n", len(mods)))
	}
	if cfg.IncludeMods {
		sorted := append([]string{}, mods...)
		sort.Sort(sortorder.Natural(sorted))
		buf.WriteString("Mod list:\n")
		for _, mod := range sorted {
			buf.WriteString("- " + mod + "\n")
		}
	}

	if err = os.WriteFile(reportFile, []byte(buf.String()), 0640); err != nil {
		reportFile = ""
	}
	return
}

// sourceRevision returns the short HEAD hash of the git work tree enclosing
// the given path, or an empty string when there is none
func sourceRevision(path string) (revision string) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return
	}
	head, err := repo.Head()
	if err != nil {
		return
	}
	revision = head.Hash().String()[:10]
	return
}
