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

package run

import (
	"fmt"
	"runtime"

	"github.com/go-enjin/be/pkg/cli/run"
	bePath "github.com/go-enjin/be/pkg/path"
)

// folderOpener is the platform's detached file browser launcher
func folderOpener() (name string) {
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name = "explorer"
	default:
		name = "xdg-open"
	}
	return
}

// OpenFolder launches the platform file browser on the given directory,
// backgrounded so the caller never blocks on the browser process
func OpenFolder(path string) (err error) {
	if !bePath.IsDir(path) {
		err = fmt.Errorf("not a directory: %v", path)
		return
	}
	_, err = run.BackgroundWith(&run.Options{
		Path: path,
		Name: folderOpener(),
		Argv: []string{path},
	})
	return
}
