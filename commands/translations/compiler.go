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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fvbommel/sortorder"
	"github.com/gofrs/uuid"
	cp "github.com/otiai10/copy"

	bePath "github.com/go-enjin/be/pkg/path"
)

var (
	ErrSourceNotFound = errors.New("source root not found")
	ErrNoLanguage     = errors.New("no language folder selected")
	ErrNoDestination  = errors.New("no destination root selected")
)

// Notifier receives progress events while a compile run is underway. Any of
// the fields may be nil.
type Notifier struct {
	Log      func(format string, argv ...interface{})
	Warn     func(format string, argv ...interface{})
	Progress func(done, total int)
	Copied   func(files int)
}

func (n *Notifier) log(format string, argv ...interface{}) {
	if n != nil && n.Log != nil {
		n.Log(format, argv...)
	}
}

func (n *Notifier) warn(format string, argv ...interface{}) {
	if n != nil && n.Warn != nil {
		n.Warn(format, argv...)
	}
}

func (n *Notifier) progress(done, total int) {
	if n != nil && n.Progress != nil {
		n.Progress(done, total)
	}
}

func (n *Notifier) copied(files int) {
	if n != nil && n.Copied != nil {
		n.Copied(files)
	}
}

// Compiler aggregates the translation folders of every mod under SourceRoot
// into one language folder at DestRoot/Languages.
//
// Mods are always visited in natural sort order of their directory names so
// that path collisions resolve the same way on every run: the last mod in
// that order wins. With KeepNames unset each copied file is renamed with a
// "[Mod]_" prefix (no cross-mod collisions are possible) and mods are
// processed by a small worker pool; with KeepNames set the relative paths
// are preserved and mods are processed one at a time.
type Compiler struct {
	SourceRoot string
	DestRoot   string
	Language   string

	Clean         bool
	StripComments bool
	KeepNames     bool
	Workers       int

	Notify *Notifier

	mu      sync.Mutex
	summary *Summary
	seen    map[string]string
}

func NewCompiler(config *Config) (c *Compiler) {
	c = &Compiler{
		SourceRoot:    config.SourceRoot,
		DestRoot:      config.DestRoot,
		Language:      config.Language,
		Clean:         config.Options.Clean,
		StripComments: config.Options.StripComments,
		KeepNames:     config.Options.KeepNames,
		Workers:       config.Options.Workers,
	}
	return
}

// OutputName is the normalized destination folder name, see NormalizeLanguage
func (c *Compiler) OutputName() (name string) {
	name = NormalizeLanguage(c.Language)
	return
}

func (c *Compiler) LanguagesPath() (path string) {
	path = filepath.Join(c.DestRoot, LanguagesDirName)
	return
}

func (c *Compiler) OutputPath() (path string) {
	path = filepath.Join(c.LanguagesPath(), c.OutputName())
	return
}

func (c *Compiler) Compile() (summary *Summary, err error) {
	start := time.Now()

	if c.Language == "" {
		err = ErrNoLanguage
		return
	}
	if c.DestRoot == "" {
		err = ErrNoDestination
		return
	}
	if !bePath.IsDir(c.SourceRoot) {
		err = fmt.Errorf("%w: %v", ErrSourceNotFound, c.SourceRoot)
		return
	}

	var found, missing []string
	if found, missing, err = c.SelectMods(); err != nil {
		return
	}

	var runId string
	if unique, ee := uuid.NewV4(); ee == nil {
		runId = unique.String()
	}

	c.mu.Lock()
	c.summary = &Summary{
		RunId:      runId,
		Language:   c.OutputName(),
		OutputPath: c.OutputPath(),
		ModsFound:  len(found) + len(missing),
		Skipped:    missing,
	}
	c.seen = make(map[string]string)
	c.mu.Unlock()

	for _, mod := range missing {
		c.Notify.warn("no %q folder in %v, skipping\n", c.Language, mod)
	}

	if len(found) == 0 {
		c.Notify.log("no mods with translations found under %v\n", c.SourceRoot)
		summary = c.finish(start)
		return
	}

	if c.Clean {
		if bePath.IsDir(c.OutputPath()) {
			c.Notify.log("cleaning destination: %v\n", c.OutputPath())
			if err = os.RemoveAll(c.OutputPath()); err != nil {
				err = fmt.Errorf("error cleaning destination: %v - %v", c.OutputPath(), err)
				return
			}
		}
	}

	if err = bePath.Mkdir(c.OutputPath()); err != nil {
		err = fmt.Errorf("error making destination: %v - %v", c.OutputPath(), err)
		return
	}

	if c.KeepNames {
		err = c.compileSequential(found)
	} else {
		err = c.compileParallel(found)
	}
	if err != nil {
		return
	}

	summary = c.finish(start)
	return
}

func (c *Compiler) finish(start time.Time) (summary *Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sort.Sort(sortorder.Natural(c.summary.Processed))
	c.summary.Duration = time.Since(start)
	summary = c.summary
	return
}

// SelectMods lists the immediate sub-directories of SourceRoot in natural
// sort order, split into those that have the configured language folder and
// those that do not
func (c *Compiler) SelectMods() (found, missing []string, err error) {
	var dirs []string
	if dirs, err = bePath.ListDirs(c.SourceRoot); err != nil {
		err = fmt.Errorf("error listing mods: %v - %v", c.SourceRoot, err)
		return
	}
	var names []string
	for _, dir := range dirs {
		names = append(names, bePath.Base(dir))
	}
	sort.Sort(sortorder.Natural(names))
	for _, name := range names {
		if bePath.IsDir(filepath.Join(c.SourceRoot, name, c.Language)) {
			found = append(found, name)
		} else {
			missing = append(missing, name)
		}
	}
	return
}

func (c *Compiler) compileParallel(mods []string) (err error) {
	workers := c.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(mods) {
		workers = len(mods)
	}

	jobs := make(chan string)
	errs := make(chan error, len(mods))
	var wg sync.WaitGroup
	var done int
	var doneMu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for mod := range jobs {
				if ee := c.processMod(mod); ee != nil {
					errs <- ee
				}
				doneMu.Lock()
				done += 1
				count := done
				doneMu.Unlock()
				c.Notify.progress(count, len(mods))
			}
		}()
	}

	for _, mod := range mods {
		jobs <- mod
	}
	close(jobs)
	wg.Wait()
	close(errs)

	for ee := range errs {
		if err == nil {
			err = ee
		} else {
			err = fmt.Errorf("%v; %v", err, ee)
		}
	}
	return
}

func (c *Compiler) compileSequential(mods []string) (err error) {
	for idx, mod := range mods {
		if err = c.mergeMod(mod); err != nil {
			return
		}
		c.Notify.progress(idx+1, len(mods))
	}
	return
}

// processMod copies one mod's language folder with "[Mod]_" file prefixing,
// xml files only, safe to call from concurrent workers
func (c *Compiler) processMod(mod string) (err error) {
	langPath := filepath.Join(c.SourceRoot, mod, c.Language)

	var files []string
	if files, err = listXmlFiles(langPath); err != nil {
		err = fmt.Errorf("error walking %v: %v", langPath, err)
		return
	}

	if len(files) == 0 {
		c.Notify.warn("no xml files in %v, skipping\n", mod)
		c.mu.Lock()
		c.summary.Skipped = append(c.summary.Skipped, mod)
		c.mu.Unlock()
		return
	}

	for _, file := range files {
		var rel string
		if rel, err = filepath.Rel(langPath, file); err != nil {
			return
		}
		relDir := filepath.Dir(rel)
		name := strings.TrimSuffix(filepath.Base(rel), ".xml")
		destDir := filepath.Join(c.OutputPath(), relDir)
		if err = bePath.Mkdir(destDir); err != nil {
			err = fmt.Errorf("error making destination: %v - %v", destDir, err)
			return
		}
		dest := filepath.Join(destDir, "["+mod+"]_"+name+".xml")
		if err = c.transferFile(file, dest); err != nil {
			return
		}
	}

	c.mu.Lock()
	c.summary.Processed = append(c.summary.Processed, mod)
	c.mu.Unlock()
	c.Notify.log("--- mod processed %q ---\n", mod)
	return
}

// mergeMod copies one mod's language folder preserving relative file names,
// with deterministic last-wins overwrites; not safe for concurrent use
func (c *Compiler) mergeMod(mod string) (err error) {
	langPath := filepath.Join(c.SourceRoot, mod, c.Language)

	if c.StripComments {
		// per-file pass, otherwise the cleanup never runs; the whole tree
		// transfers either way, only xml files are rewritten
		var files []string
		if files, err = listModFiles(langPath); err != nil {
			err = fmt.Errorf("error walking %v: %v", langPath, err)
			return
		}
		for _, file := range files {
			var rel string
			if rel, err = filepath.Rel(langPath, file); err != nil {
				return
			}
			c.trackCollision(rel, mod)
			dest := filepath.Join(c.OutputPath(), rel)
			if err = bePath.Mkdir(filepath.Dir(dest)); err != nil {
				return
			}
			if err = c.transferFile(file, dest); err != nil {
				return
			}
		}
	} else {
		var count int
		var size int64
		if count, size, err = c.trackTree(langPath, mod); err != nil {
			return
		}
		options := cp.Options{
			OnDirExists: func(src, dest string) cp.DirExistsAction {
				return cp.Merge
			},
		}
		if err = cp.Copy(langPath, c.OutputPath(), options); err != nil {
			err = fmt.Errorf("error merging %v: %v", langPath, err)
			return
		}
		c.mu.Lock()
		c.summary.Copied += count
		c.summary.Bytes += size
		copied := c.summary.Copied
		c.mu.Unlock()
		c.Notify.copied(copied)
	}

	c.mu.Lock()
	c.summary.Processed = append(c.summary.Processed, mod)
	c.mu.Unlock()
	c.Notify.log("--- mod processed %q ---\n", mod)
	return
}

// trackTree records every file below the given root for collision counting,
// returning the file count and total byte size
func (c *Compiler) trackTree(root, mod string) (count int, size int64, err error) {
	err = filepath.Walk(root, func(path string, info os.FileInfo, werr error) (e error) {
		if werr != nil {
			e = werr
			return
		}
		if info.IsDir() {
			return
		}
		var rel string
		if rel, e = filepath.Rel(root, path); e != nil {
			return
		}
		c.trackCollision(rel, mod)
		count += 1
		size += info.Size()
		return
	})
	return
}

func (c *Compiler) trackCollision(rel, mod string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if previous, ok := c.seen[rel]; ok && previous != mod {
		c.summary.Collisions += 1
		c.summary.Warnings = append(
			c.summary.Warnings,
			fmt.Sprintf("%v overwrites %v from %v", mod, rel, previous),
		)
	}
	c.seen[rel] = mod
}

// transferFile copies src to dest, applying the xml cleanup pass to xml
// files when StripComments is set; documents that fail to parse are copied
// verbatim
func (c *Compiler) transferFile(src, dest string) (err error) {
	cleaned := false
	if c.StripComments && strings.HasSuffix(strings.ToLower(src), ".xml") {
		var raw, out []byte
		if raw, err = bePath.ReadFile(src); err != nil {
			err = fmt.Errorf("error reading file: %v - %v", src, err)
			return
		}
		if out, err = CleanDocument(raw); err != nil {
			c.Notify.warn("malformed xml in %v, copying as-is: %v\n", src, err)
			c.mu.Lock()
			c.summary.Warnings = append(
				c.summary.Warnings,
				fmt.Sprintf("malformed xml: %v (%v)", src, err),
			)
			c.mu.Unlock()
			err = nil
		} else {
			if err = os.WriteFile(dest, out, 0644); err != nil {
				err = fmt.Errorf("error writing file: %v - %v", dest, err)
				return
			}
			cleaned = true
			c.mu.Lock()
			c.summary.Cleaned = append(c.summary.Cleaned, dest)
			c.mu.Unlock()
		}
	}
	if !cleaned {
		if _, err = bePath.CopyFile(src, dest); err != nil {
			err = fmt.Errorf("error copying file: %v - %v", src, err)
			return
		}
	}

	var size int64
	if info, ee := os.Stat(dest); ee == nil {
		size = info.Size()
	}
	c.mu.Lock()
	c.summary.Copied += 1
	c.summary.Bytes += size
	copied := c.summary.Copied
	c.mu.Unlock()
	c.Notify.copied(copied)
	return
}

func listXmlFiles(root string) (files []string, err error) {
	err = filepath.Walk(root, func(path string, info os.FileInfo, werr error) (e error) {
		if werr != nil {
			e = werr
			return
		}
		if !info.IsDir() && strings.HasSuffix(strings.ToLower(info.Name()), ".xml") {
			files = append(files, path)
		}
		return
	})
	sort.Strings(files)
	return
}

func listModFiles(root string) (files []string, err error) {
	err = filepath.Walk(root, func(path string, info os.FileInfo, werr error) (e error) {
		if werr != nil {
			e = werr
			return
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return
	})
	sort.Strings(files)
	return
}
