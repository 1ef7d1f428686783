//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package jslint runs a JavaScript checker on the current document and
// shows the results in a panel below the editor.
//
// The Controller is either enabled or disabled. While enabled it listens for
// the current document changing and for the current document being saved,
// and checks the document each time. Checks only run on files whose
// extension is on the allow-list; other documents hide the panel. The
// enabled state and the panel height are stored as preferences under the
// client id "jslint".
package jslint

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/timburks/gottlint/commander"
	"github.com/timburks/gottlint/events"
	"github.com/timburks/gottlint/lint"
	"github.com/timburks/gottlint/logging"
	"github.com/timburks/gottlint/panel"
	"github.com/timburks/gottlint/prefs"
	gott "github.com/timburks/gottlint/types"
)

const (
	ClientID    = "jslint"
	CommandID   = "jslint.toggle"
	CommandName = "JSLint"

	prefEnabled = "enabled"
	prefHeight  = "height"
)

// DocumentSource gives access to the document being edited.
type DocumentSource interface {
	CurrentDocument() gott.Document
}

// EditorControl is the part of the editor the controller drives.
type EditorControl interface {
	SetCursorPos(row, col int)
	Focus()
	Resize()
}

// CommandRegistry is where the controller installs its toggle command,
// its command line verb and its pane.
type CommandRegistry interface {
	Register(name string, id string, fn func()) *commander.Command
	AddExCommand(name string, fn commander.ExCommand)
	AddPane(p commander.Pane)
}

type Options struct {
	Docs       DocumentSource
	Editor     EditorControl
	Commands   CommandRegistry
	Bus        *events.Bus
	Prefs      *prefs.Store
	Checker    lint.Checker
	Extensions []string
	// Report receives errors from checks started by document events.
	Report func(error)
}

// The Controller owns the enabled state, the document listeners and the
// results panel.
type Controller struct {
	docs       DocumentSource
	editor     EditorControl
	bus        *events.Bus
	checker    lint.Checker
	extensions []string
	report     func(error)
	storage    *prefs.Storage
	command    *commander.Command
	panel      *panel.Panel
	enabled    bool
	disposers  []events.Disposer
	resize     *Resize // drag started on the toolbar, nil otherwise
	logger     zerolog.Logger
}

// New builds a controller, registers its command and restores the stored
// enabled state and panel height. Restoring the enabled state runs a check.
func New(opts Options) (*Controller, error) {
	if opts.Docs == nil || opts.Editor == nil || opts.Commands == nil || opts.Bus == nil || opts.Checker == nil {
		return nil, errors.New("jslint: documents, editor, commands, bus and checker are required")
	}
	store := opts.Prefs
	if store == nil {
		var err error
		if store, err = prefs.Open(""); err != nil {
			return nil, err
		}
	}
	c := &Controller{
		docs:       opts.Docs,
		editor:     opts.Editor,
		bus:        opts.Bus,
		checker:    opts.Checker,
		extensions: opts.Extensions,
		report:     opts.Report,
		panel:      panel.New(CommandName),
		logger:     logging.Component("jslint"),
	}
	if len(c.extensions) == 0 {
		c.extensions = []string{".js", ".htm", ".html"}
	}
	c.storage = store.Storage(ClientID, map[string]any{
		prefEnabled: true,
		prefHeight:  panel.DefaultHeight,
	})
	c.command = opts.Commands.Register(CommandName, CommandID, c.toggleCommand)
	opts.Commands.AddExCommand("jslint", c.exCommand)
	opts.Commands.AddPane(c)
	setCurrent(c)

	c.setHeight(c.storage.Int(prefHeight))

	// Force a transition so the listeners and the command state match the
	// stored value.
	enabled := c.storage.Bool(prefEnabled)
	c.enabled = !enabled
	if err := c.SetEnabled(enabled); err != nil {
		c.logger.Warn().Err(err).Msg("initial check failed")
	}
	return c, nil
}

func (c *Controller) Panel() *panel.Panel {
	return c.panel
}

func (c *Controller) Enabled() bool {
	return c.enabled
}

// SetEnabled moves the controller to the enabled or disabled state. Setting
// the current state does nothing. Each transition updates the listeners,
// the command's checked state and the stored preference, then runs a check.
func (c *Controller) SetEnabled(enabled bool) error {
	if enabled == c.enabled {
		return nil
	}
	c.enabled = enabled

	if enabled {
		c.disposers = append(c.disposers,
			c.bus.SubscribeCurrentDocumentChanged(func(events.CurrentDocumentChangedPayload) {
				c.runFromEvent()
			}),
			c.bus.SubscribeDocumentSaved(func(p events.DocumentSavedPayload) {
				if doc := c.docs.CurrentDocument(); doc != nil && doc.Path() == p.Path {
					c.runFromEvent()
				}
			}),
		)
	} else {
		for _, dispose := range c.disposers {
			dispose()
		}
		c.disposers = nil
	}
	c.command.SetChecked(enabled)
	c.logger.Info().Bool("enabled", enabled).Msg("state changed")

	var errs []error
	if err := c.storage.Set(prefEnabled, enabled); err != nil {
		errs = append(errs, fmt.Errorf("save jslint preference: %w", err))
	}
	errs = append(errs, c.Run())
	return errors.Join(errs...)
}

func (c *Controller) Toggle() error {
	return c.SetEnabled(!c.enabled)
}

func (c *Controller) toggleCommand() {
	if err := c.Toggle(); err != nil {
		c.reportError(err)
	}
}

func (c *Controller) runFromEvent() {
	if err := c.Run(); err != nil {
		c.reportError(err)
	}
}

func (c *Controller) reportError(err error) {
	if c.report != nil {
		c.report(err)
	}
}

// Run checks the current document. When the controller is disabled, or the
// document's extension is not on the allow-list, the panel and the success
// indicator are hidden instead. Whitespace-only lines reach the checker as
// empty lines.
func (c *Controller) Run() error {
	var path, text string
	if doc := c.docs.CurrentDocument(); doc != nil {
		path = doc.Path()
		text = doc.Text()
	}
	if !c.enabled || !lint.Applies(path, c.extensions) {
		c.panel.HideAll()
		c.editor.Resize()
		return nil
	}

	start := time.Now()
	result, err := c.checker.Check(path, lint.Normalize(text))
	lintTime := time.Since(start)
	if err != nil {
		c.panel.HideAll()
		c.editor.Resize()
		c.logger.Error().Err(err).Str("path", path).Msg("check failed")
		return fmt.Errorf("jslint: %w", err)
	}

	start = time.Now()
	c.panel.Show(result)
	c.editor.Resize()
	c.logger.Debug().
		Str("path", path).
		Int("errors", c.panel.Len()).
		Dur("lint", lintTime).
		Dur("render", time.Since(start)).
		Msg("check complete")
	return nil
}

// SelectError selects row i of the panel, moves the editor cursor to the
// error's position and gives the editor focus. Indexes outside the rows
// are ignored.
func (c *Controller) SelectError(i int) {
	record := c.panel.Select(i)
	if record == nil {
		return
	}
	c.editor.SetCursorPos(record.Line-1, record.Column-1)
	c.panel.SetFocused(false)
	c.editor.Focus()
}

// setHeight clamps and stores the panel height and lays out the editor.
func (c *Controller) setHeight(height int) {
	height = c.panel.SetHeight(height)
	if err := c.storage.Set(prefHeight, height); err != nil {
		c.logger.Warn().Err(err).Msg("save panel height")
	}
	c.editor.Resize()
}
