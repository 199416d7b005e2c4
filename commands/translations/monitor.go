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
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-curses/cdk"
	cenums "github.com/go-curses/cdk/lib/enums"
	cstrings "github.com/go-curses/cdk/lib/strings"
	"github.com/go-curses/ctk"
	"github.com/go-curses/ctk/lib/enums"
	"github.com/urfave/cli/v2"

	"github.com/rimworld-latam/modtrad/pkg/globals"
	beIo "github.com/rimworld-latam/modtrad/pkg/io"
)

//go:embed monitor.accelmap
var monitorAccelmap string

const monitorActivityLines = 8

// Build Configuration Flags
// setting these will enable command line flags and their corresponding features
// use `go build -v -ldflags="-X 'github.com/rimworld-latam/modtrad/commands/translations.IncludeLogFullPaths=false'"`
var (
	IncludeProfiling          = "false"
	IncludeLogFile            = "true"
	IncludeLogFormat          = "false"
	IncludeLogFullPaths       = "false"
	IncludeLogLevel           = "true"
	IncludeLogLevels          = "false"
	IncludeLogTimestamps      = "false"
	IncludeLogTimestampFormat = "false"
	IncludeLogOutput          = "true"
)

func init() {
	cdk.Build.Profiling = cstrings.IsTrue(IncludeProfiling)
	cdk.Build.LogFile = cstrings.IsTrue(IncludeLogFile)
	cdk.Build.LogFormat = cstrings.IsTrue(IncludeLogFormat)
	cdk.Build.LogFullPaths = cstrings.IsTrue(IncludeLogFullPaths)
	cdk.Build.LogLevel = cstrings.IsTrue(IncludeLogLevel)
	cdk.Build.LogLevels = cstrings.IsTrue(IncludeLogLevels)
	cdk.Build.LogTimestamps = cstrings.IsTrue(IncludeLogTimestamps)
	cdk.Build.LogTimestampFormat = cstrings.IsTrue(IncludeLogTimestampFormat)
	cdk.Build.LogOutput = cstrings.IsTrue(IncludeLogOutput)
}

// Monitor is the full-screen terminal surface over the compile engine:
// configured paths up top, live run counters in the middle, an activity
// tail at the bottom; ctrl+r starts a compile, ctrl+q quits.
type Monitor struct {
	cliCmd *Command
	config *Config
	ctkApp ctk.Application

	display   cdk.Display
	window    ctk.Window
	errDialog ctk.Dialog

	cfgFrame       ctk.Frame
	cfgLabelSource ctk.Label
	cfgValueSource ctk.Label
	cfgLabelDest   ctk.Label
	cfgValueDest   ctk.Label
	cfgLabelLang   ctk.Label
	cfgValueLang   ctk.Label

	runFrame       ctk.Frame
	runLabelMods   ctk.Label
	runValueMods   ctk.Label
	runLabelFiles  ctk.Label
	runValueFiles  ctk.Label
	runLabelIssues ctk.Label
	runValueIssues ctk.Label

	actFrame ctk.Frame
	actLabel ctk.Label

	errLabel    ctk.Label
	statusLabel ctk.Label

	started  bool
	running  bool
	modsDone int
	modsAll  int
	copied   int
	skipped  int
	warned   int
	bytes    int64
	activity []string

	sync.RWMutex
}

func NewMonitor(cmd *Command, config *Config, ttyPath string) (m *Monitor, err error) {
	app := ctk.NewApplication(
		"modtrad",
		"ModTrad monitor",
		"live view of translation mod pack compiles",
		globals.BuildVersion,
		"monitor",
		fmt.Sprintf("modtrad monitor - %v", globals.DisplayVersion),
		ttyPath,
	)
	m = &Monitor{
		cliCmd: cmd,
		config: config,
		ctkApp: app,
	}
	app.Connect(cdk.SignalStartup, "monitor-startup-handler", m.startup)
	app.Connect(cdk.SignalShutdown, "monitor-quit-handler", m.shutdown)
	return
}

func (m *Monitor) Run(ctx *cli.Context) (err error) {
	err = m.ctkApp.Run(ctx.Args().Slice())
	return
}

func (m *Monitor) quitAction(argv ...interface{}) (handled bool) {
	m.window.LogDebug("quit-accelerator called (ctrl+q)")
	m.display.RequestQuit()
	handled = true
	return
}

func (m *Monitor) compileAction(argv ...interface{}) (handled bool) {
	handled = true
	m.Lock()
	if m.running {
		m.Unlock()
		m.showError("a compile is already running")
		return
	}
	m.running = true
	m.modsDone = 0
	m.modsAll = 0
	m.copied = 0
	m.skipped = 0
	m.warned = 0
	m.bytes = 0
	m.activity = nil
	m.Unlock()
	go m.runCompile()
	return
}

func (m *Monitor) runCompile() {
	m.appendActivity("compile started")

	compiler := NewCompiler(m.config.Clone())
	compiler.Notify = &Notifier{
		Log: func(format string, argv ...interface{}) {
			m.appendActivity(strings.TrimSpace(fmt.Sprintf(format, argv...)))
		},
		Warn: func(format string, argv ...interface{}) {
			m.Lock()
			m.warned += 1
			m.Unlock()
			m.appendActivity(strings.TrimSpace(fmt.Sprintf(format, argv...)))
		},
		Progress: func(done, total int) {
			m.Lock()
			m.modsDone = done
			m.modsAll = total
			m.Unlock()
			m.update()
		},
		Copied: func(files int) {
			m.Lock()
			m.copied = files
			m.Unlock()
			m.update()
		},
	}

	summary, err := compiler.Compile()

	m.Lock()
	m.running = false
	m.Unlock()

	if err != nil {
		m.appendActivity(fmt.Sprintf("compile error: %v", err))
		m.showError("compile error: %v", err)
		return
	}

	m.Lock()
	m.modsDone = len(summary.Processed)
	m.modsAll = summary.ModsFound
	m.copied = summary.Copied
	m.skipped = len(summary.Skipped)
	m.warned = len(summary.Warnings)
	m.bytes = summary.Bytes
	m.Unlock()
	m.appendActivity(fmt.Sprintf(
		"compile finished in %v (%v copied)",
		summary.Duration.Round(time.Millisecond),
		humanize.Bytes(uint64(summary.Bytes)),
	))
}

func (m *Monitor) appendActivity(line string) {
	if line == "" {
		return
	}
	m.Lock()
	m.activity = append(m.activity, line)
	if len(m.activity) > monitorActivityLines {
		m.activity = m.activity[len(m.activity)-monitorActivityLines:]
	}
	m.Unlock()
	m.update()
}

func (m *Monitor) showErrorWindow(text string) {
	if m.errDialog != nil {
		if label, ok := m.errDialog.GetContentArea().GetChildren()[0].(ctk.Label); ok {
			_ = label.SetMarkup(text)
		}
		m.errDialog.Resize()
		m.display.RequestDraw()
		m.display.RequestShow()
		return
	}
	m.errDialog = ctk.NewDialogWithButtons(
		"modtrad monitor", nil, enums.DialogModal,
	)
	vbox := m.errDialog.GetContentArea()
	label := ctk.NewLabel(text)
	label.SetJustify(cenums.JUSTIFY_CENTER)
	label.SetLineWrapMode(cenums.WRAP_WORD)
	label.SetLineWrap(true)
	label.Show()
	vbox.PackStart(label, true, true, 1)
	m.errDialog.Show()
	m.display.RequestDraw()
	m.display.RequestShow()
}

func (m *Monitor) hideErrorWindow() {
	if m.errDialog != nil {
		m.errDialog.Hide()
		m.errDialog.Destroy()
		m.errDialog = nil
		m.display.RequestDraw()
		m.display.RequestShow()
	}
}

func (m *Monitor) displayResizeHandler(data []interface{}, argv ...interface{}) cenums.EventFlag {
	if s := m.display.Screen(); s != nil {
		w, h := s.Size()
		if w < 80 || h < 24 {
			text := "\n\nmodtrad monitor requires at least an 80x24 sized terminal"
			text += "\n\n"
			text += fmt.Sprintf("this terminal is %dx%d", w, h)
			m.showErrorWindow(text)
		} else {
			m.hideErrorWindow()
		}
	}
	return cenums.EVENT_PASS
}

func (m *Monitor) startup(data []interface{}, argv ...interface{}) cenums.EventFlag {
	if app, d, _, _, _, ok := ctk.ArgvApplicationSignalStartup(argv...); ok {

		d.CaptureCtrlC()
		m.display = d

		m.display.Connect(cdk.SignalEventResize, "display-resize-handler", m.displayResizeHandler)

		m.window = ctk.NewWindowWithTitle("")
		m.window.SetBorderWidth(0)
		m.window.SetDecorated(false)
		m.window.SetSensitive(true)

		accelMap := ctk.GetAccelMap()
		accelMap.LoadFromString(monitorAccelmap)

		ag := ctk.NewAccelGroup()
		ag.ConnectByPath("<Monitor-Window>/File/Quit", "quit-accel", m.quitAction)
		ag.AccelConnect(cdk.KeySmallQ, cdk.ModCtrl, enums.ACCEL_VISIBLE, "quit-accel-ctrl-q", m.quitAction)
		ag.ConnectByPath("<Monitor-Window>/Run/Compile", "compile-accel", m.compileAction)
		ag.AccelConnect(cdk.KeySmallR, cdk.ModCtrl, enums.ACCEL_VISIBLE, "compile-accel-ctrl-r", m.compileAction)
		m.window.AddAccelGroup(ag)

		windowVBox := m.window.GetVBox()
		windowVBox.SetHomogeneous(false)

		contentVBox := ctk.NewVBox(false, 0)
		contentVBox.Show()
		windowVBox.PackStart(contentVBox, true, true, 0)

		rigLabel := func(text string) (l ctk.Label) {
			l, _ = ctk.NewLabelWithMarkup(text)
			l.SetLineWrap(false)
			l.SetLineWrapMode(cenums.WRAP_NONE)
			l.SetJustify(cenums.JUSTIFY_NONE)
			return
		}

		/* CONFIGURATION SECTION */

		m.cfgFrame = ctk.NewFrame("Settings")
		m.cfgFrame.SetLabelAlign(0.0, 0.5)
		m.cfgFrame.SetSizeRequest(-1, 5)
		m.cfgFrame.Show()
		cfgHBox := ctk.NewHBox(false, 1)
		cfgHBox.Show()

		cfgVBoxLabels := ctk.NewVBox(false, 0)
		cfgVBoxLabels.Show()
		cfgVBoxValues := ctk.NewVBox(false, 0)
		cfgVBoxValues.Show()

		m.cfgLabelSource = rigLabel("Source:")
		m.cfgLabelSource.SetSizeRequest(12, 1)
		m.cfgLabelSource.Show()
		cfgVBoxLabels.PackStart(m.cfgLabelSource, false, false, 0)
		m.cfgValueSource = rigLabel("")
		m.cfgValueSource.SetSizeRequest(-1, 1)
		m.cfgValueSource.Show()
		cfgVBoxValues.PackEnd(m.cfgValueSource, false, false, 0)

		m.cfgLabelDest = rigLabel("Dest:")
		m.cfgLabelDest.SetSizeRequest(12, 1)
		m.cfgLabelDest.Show()
		cfgVBoxLabels.PackStart(m.cfgLabelDest, false, false, 0)
		m.cfgValueDest = rigLabel("")
		m.cfgValueDest.SetSizeRequest(-1, 1)
		m.cfgValueDest.Show()
		cfgVBoxValues.PackEnd(m.cfgValueDest, false, false, 0)

		m.cfgLabelLang = rigLabel("Language:")
		m.cfgLabelLang.SetSizeRequest(12, 1)
		m.cfgLabelLang.Show()
		cfgVBoxLabels.PackStart(m.cfgLabelLang, false, false, 0)
		m.cfgValueLang = rigLabel("")
		m.cfgValueLang.SetSizeRequest(-1, 1)
		m.cfgValueLang.Show()
		cfgVBoxValues.PackEnd(m.cfgValueLang, false, false, 0)

		m.cfgFrame.Add(cfgHBox)
		cfgHBox.PackStart(cfgVBoxLabels, true, true, 0)
		cfgHBox.PackStart(cfgVBoxValues, true, true, 0)
		contentVBox.PackStart(m.cfgFrame, false, true, 0)

		/* RUN SECTION */

		m.runFrame = ctk.NewFrame("Compile")
		m.runFrame.SetLabelAlign(0.0, 0.5)
		m.runFrame.SetSizeRequest(-1, 5)
		m.runFrame.Show()
		runHBox := ctk.NewHBox(false, 1)
		runHBox.Show()

		runVBoxLabels := ctk.NewVBox(false, 0)
		runVBoxLabels.Show()
		runVBoxValues := ctk.NewVBox(false, 0)
		runVBoxValues.Show()

		m.runLabelMods = rigLabel("Mods:")
		m.runLabelMods.SetSizeRequest(12, 1)
		m.runLabelMods.Show()
		runVBoxLabels.PackStart(m.runLabelMods, false, false, 0)
		m.runValueMods = rigLabel("")
		m.runValueMods.SetSizeRequest(-1, 1)
		m.runValueMods.Show()
		runVBoxValues.PackEnd(m.runValueMods, false, false, 0)

		m.runLabelFiles = rigLabel("Files:")
		m.runLabelFiles.SetSizeRequest(12, 1)
		m.runLabelFiles.Show()
		runVBoxLabels.PackStart(m.runLabelFiles, false, false, 0)
		m.runValueFiles = rigLabel("")
		m.runValueFiles.SetSizeRequest(-1, 1)
		m.runValueFiles.Show()
		runVBoxValues.PackEnd(m.runValueFiles, false, false, 0)

		m.runLabelIssues = rigLabel("Issues:")
		m.runLabelIssues.SetSizeRequest(12, 1)
		m.runLabelIssues.Show()
		runVBoxLabels.PackStart(m.runLabelIssues, false, false, 0)
		m.runValueIssues = rigLabel("")
		m.runValueIssues.SetSizeRequest(-1, 1)
		m.runValueIssues.Show()
		runVBoxValues.PackEnd(m.runValueIssues, false, false, 0)

		m.runFrame.Add(runHBox)
		runHBox.PackStart(runVBoxLabels, true, true, 0)
		runHBox.PackStart(runVBoxValues, true, true, 0)
		contentVBox.PackStart(m.runFrame, false, true, 0)

		/* ACTIVITY SECTION */

		m.actFrame = ctk.NewFrame("Activity")
		m.actFrame.SetLabelAlign(0.0, 0.5)
		m.actFrame.Show()
		m.actLabel = rigLabel("")
		m.actLabel.SetSizeRequest(-1, 3)
		m.actLabel.SetUseMarkup(true)
		m.actLabel.Show()
		m.actFrame.Add(m.actLabel)
		contentVBox.PackStart(m.actFrame, true, true, 0)

		m.errLabel = rigLabel("")
		m.errLabel.Hide()
		windowVBox.PackStart(m.errLabel, false, false, 0)

		m.statusLabel = rigLabel("modtrad monitor - " + globals.DisplayVersion + " - ctrl+r compiles, ctrl+q quits")
		m.statusLabel.SetLineWrap(true)
		m.statusLabel.SetLineWrapMode(cenums.WRAP_WORD)
		m.statusLabel.SetVisible(true)
		m.statusLabel.SetJustify(cenums.JUSTIFY_CENTER)
		m.statusLabel.Show()
		windowVBox.PackStart(m.statusLabel, false, false, 0)

		m.window.GrabFocus()
		m.window.ShowAll()
		m.errLabel.Hide()
		m.Lock()
		m.started = true
		m.Unlock()
		m.update()
		app.NotifyStartupComplete()
		return cenums.EVENT_PASS
	}
	return cenums.EVENT_STOP
}

func (m *Monitor) showError(format string, argv ...interface{}) {
	message := fmt.Sprintf(format, argv...)
	m.Lock()
	_ = m.errLabel.SetMarkup(message)
	m.errLabel.Show()
	m.window.GetVBox().Resize()
	m.display.RequestDraw()
	m.display.RequestShow()
	m.Unlock()
	go func() {
		<-time.After(4 * time.Second)
		m.Lock()
		if m.errLabel.IsVisible() {
			_ = m.errLabel.SetMarkup("")
			m.errLabel.Hide()
		}
		m.Unlock()
	}()
}

func (m *Monitor) shutdown(_ []interface{}, _ ...interface{}) cenums.EventFlag {
	beIo.STDOUT("modtrad monitor has ended.\n")
	return cenums.EVENT_PASS
}

func (m *Monitor) update() {
	m.RLock()
	if !m.started {
		m.RUnlock()
		return
	}
	m.RUnlock()
	m.window.LockDraw()
	m.refresh()
	m.window.UnlockDraw()
	m.display.RequestDraw()
	m.display.RequestShow()
}

func (m *Monitor) refresh() {
	m.RLock()
	defer m.RUnlock()

	orUnset := func(value string) (text string) {
		if text = value; text == "" {
			text = `<span foreground="red">(unset)</span>`
		}
		return
	}
	_ = m.cfgValueSource.SetMarkup(orUnset(m.config.SourceRoot))
	_ = m.cfgValueDest.SetMarkup(orUnset(m.config.DestRoot))
	_ = m.cfgValueLang.SetMarkup(orUnset(m.config.Language))

	state := "idle"
	if m.running {
		state = `<span foreground="yellow">running</span>`
	}
	_ = m.runValueMods.SetMarkup(fmt.Sprintf("%d/%d (%s)", m.modsDone, m.modsAll, state))
	_ = m.runValueFiles.SetMarkup(fmt.Sprintf(
		"%s copied (%s)",
		humanize.Comma(int64(m.copied)),
		humanize.Bytes(uint64(m.bytes)),
	))
	issues := fmt.Sprintf("%d skipped, %d warnings", m.skipped, m.warned)
	if m.warned > 0 {
		issues = `<span foreground="yellow">` + issues + `</span>`
	}
	_ = m.runValueIssues.SetMarkup(issues)

	_ = m.actLabel.SetMarkup(strings.Join(m.activity, "\n"))
}
