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

package basepath

import (
	"fmt"
	"os"

	"github.com/go-enjin/be/pkg/hash/sha"
	"github.com/go-enjin/be/pkg/path"
)

func WhichBin() (modtradBinPath string) {
	if modtradBinPath = os.Getenv("MODTRAD_BIN"); modtradBinPath != "" {
		return
	}
	modtradBinPath = path.Which(os.Args[0])
	return
}

func BinCheck() (absPath, buildBinHash string, err error) {
	if absPath = path.Which(os.Args[0]); absPath == "" {
		err = fmt.Errorf("could not find self: %v", os.Args[0])
		return
	}
	if buildBinHash, err = sha.FileHash10(absPath); err != nil {
		err = fmt.Errorf("modtrad sha256 error %v: %v", absPath, err)
		return
	}
	return
}
