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

package io

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
)

var (
	CustomIndent = ""
	BinName      = filepath.Base(os.Args[0])
	LogFile      string
)

func SetupLogFile(ctx *cli.Context) (err error) {
	if logFile := ctx.Path("log-file"); logFile != "" {
		if LogFile, err = filepath.Abs(logFile); err != nil {
			err = fmt.Errorf("invalid log file path: %v - %v", logFile, err)
		}
	}
	return
}

func SetupCustomIndent(ctx *cli.Context) (err error) {
	if customIndent := ctx.String("custom-indent"); customIndent != "" {
		CustomIndent = customIndent
	}
	return
}

func NotifyF(tag, format string, argv ...interface{}) {
	format = strings.TrimSpace(format)
	msg := fmt.Sprintf(fmt.Sprintf("%v\n", strings.TrimSpace(format)), argv...)
	stdout(CustomIndent + "# " + tag + ": " + msg)
}

func StdoutF(format string, argv ...interface{}) {
	stdout(CustomIndent+format, argv...)
}

func StderrF(format string, argv ...interface{}) {
	stderr(CustomIndent+format, argv...)
}

func FatalF(format string, argv ...interface{}) {
	stderr(CustomIndent+format, argv...)
	os.Exit(1)
}

// ErrorF wraps fmt.Errorf and also issues a NotifyF with the error message
func ErrorF(format string, argv ...interface{}) (err error) {
	err = fmt.Errorf(strings.TrimSpace(format), argv...)
	NotifyF("error", err.Error())
	return
}

func STDOUT(format string, argv ...interface{}) {
	_, _ = fmt.Fprintf(os.Stdout, format, argv...)
}

func STDERR(format string, argv ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, format, argv...)
}

func Shutdown() {
	LogFile = ""
}

func stdout(format string, argv ...interface{}) {
	if LogFile == "" {
		_, _ = fmt.Fprintf(os.Stdout, format, argv...)
		return
	}
	var err error
	var fh *os.File
	if fh, err = os.OpenFile(LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644); err != nil {
		_, _ = fmt.Fprintf(os.Stdout, "[stdout] "+format, argv...)
		return
	}
	_, _ = fh.WriteString(fmt.Sprintf(format, argv...))
	_ = fh.Close()
	return
}

func stderr(format string, argv ...interface{}) {
	if LogFile == "" {
		_, _ = fmt.Fprintf(os.Stderr, format, argv...)
		return
	}
	var err error
	var fh *os.File
	if fh, err = os.OpenFile(LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[stderr] "+format, argv...)
		return
	}
	_, _ = fh.WriteString(fmt.Sprintf("ERR "+format, argv...))
	_ = fh.Close()
	return
}

func AppendF(logfile, format string, argv ...interface{}) {
	format = strings.TrimSpace(format)
	var err error
	var fh *os.File
	if fh, err = os.OpenFile(logfile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644); err != nil {
		_, _ = fmt.Fprintf(os.Stdout, "ERR "+format+"\n", argv...)
		return
	}
	_, _ = fh.WriteString(fmt.Sprintf(format+"\n", argv...))
	_ = fh.Close()
}
