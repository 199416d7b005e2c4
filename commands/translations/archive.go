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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	bePath "github.com/go-enjin/be/pkg/path"
)

// PackLanguage archives the named language folder under basePath into a
// sibling <name>.tar and removes the folder once the archive is written.
// Archive entries are rooted at the folder name so that extraction restores
// the same layout. A folder that cannot be removed after packing is a
// warning, not a failure.
func PackLanguage(basePath, name string, notify *Notifier) (tarFile string, err error) {
	folder := filepath.Join(basePath, name)
	if !bePath.IsDir(folder) {
		err = fmt.Errorf("language folder not found: %v", folder)
		return
	}

	notify.log("packing %v...", name)
	tarFile = filepath.Join(basePath, name+".tar")
	if err = writeTarArchive(tarFile, basePath, name); err != nil {
		tarFile = ""
		return
	}
	notify.log("archive created: %v", tarFile)

	if ee := os.RemoveAll(folder); ee != nil {
		notify.warn("unable to remove packed folder %v: %v", folder, ee)
	}
	return
}

func writeTarArchive(tarFile, basePath, name string) (err error) {
	var fh *os.File
	if fh, err = os.OpenFile(tarFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0640); err != nil {
		err = fmt.Errorf("error creating archive: %v", err)
		return
	}
	defer fh.Close()

	tw := tar.NewWriter(fh)
	defer tw.Close()

	folder := filepath.Join(basePath, name)
	var entries []string
	if err = filepath.Walk(folder, func(path string, info os.FileInfo, walkErr error) (e error) {
		if walkErr != nil {
			e = walkErr
			return
		}
		entries = append(entries, path)
		return
	}); err != nil {
		return
	}
	sort.Strings(entries)

	for _, path := range entries {
		var info os.FileInfo
		if info, err = os.Stat(path); err != nil {
			return
		}
		var rel string
		if rel, err = filepath.Rel(basePath, path); err != nil {
			return
		}
		var header *tar.Header
		if header, err = tar.FileInfoHeader(info, ""); err != nil {
			return
		}
		header.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			header.Name += "/"
		}
		if err = tw.WriteHeader(header); err != nil {
			return
		}
		if info.IsDir() {
			continue
		}
		if err = copyFileInto(tw, path); err != nil {
			return
		}
	}

	if err = tw.Close(); err != nil {
		err = fmt.Errorf("error finalizing archive: %v", err)
	}
	return
}

func copyFileInto(tw *tar.Writer, path string) (err error) {
	var fh *os.File
	if fh, err = os.Open(path); err != nil {
		return
	}
	defer fh.Close()
	if _, err = io.Copy(tw, fh); err != nil {
		err = fmt.Errorf("error archiving %v: %v", path, err)
	}
	return
}
