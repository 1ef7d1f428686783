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

package jslint

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/steelseries/golisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timburks/gottlint/commander"
	"github.com/timburks/gottlint/editor"
	"github.com/timburks/gottlint/events"
	"github.com/timburks/gottlint/lint"
	"github.com/timburks/gottlint/panel"
	"github.com/timburks/gottlint/prefs"
	gott "github.com/timburks/gottlint/types"
)

type fakeDoc struct {
	path string
	text string
}

func (d *fakeDoc) Path() string { return d.path }
func (d *fakeDoc) Text() string { return d.text }

type fakeDocs struct {
	doc *fakeDoc
}

func (s *fakeDocs) CurrentDocument() gott.Document {
	if s.doc == nil {
		return nil
	}
	return s.doc
}

type fakeEditor struct {
	cursor  gott.Point
	focused bool
	resized int
}

func (e *fakeEditor) SetCursorPos(row, col int) {
	e.cursor = gott.Point{Row: row, Col: col}
}

func (e *fakeEditor) Focus() { e.focused = true }

func (e *fakeEditor) Resize() { e.resized++ }

type call struct {
	filename string
	text     string
}

type fakeChecker struct {
	calls  []call
	result *lint.Result
	err    error
}

func (c *fakeChecker) Check(filename string, text string) (*lint.Result, error) {
	c.calls = append(c.calls, call{filename, text})
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

func twoErrors() *lint.Result {
	return &lint.Result{Errors: []*lint.ErrorRecord{
		{Line: 3, Column: 7, Message: "Expected ';'", Evidence: "var a = 1"},
		nil,
		{Line: 10, Column: 1, Message: "Unexpected 'debugger'", Evidence: "debugger;"},
	}}
}

type fixture struct {
	docs     *fakeDocs
	editor   *fakeEditor
	checker  *fakeChecker
	bus      *events.Bus
	store    *prefs.Store
	commands *commander.Commander
	reported []error
	c        *Controller
}

func newFixture(t *testing.T, setup func(f *fixture)) *fixture {
	t.Helper()
	store, err := prefs.Open(filepath.Join(t.TempDir(), "preferences.yaml"))
	require.NoError(t, err)
	f := &fixture{
		docs:     &fakeDocs{doc: &fakeDoc{path: "app.js", text: "var a = 1;\n"}},
		editor:   &fakeEditor{},
		checker:  &fakeChecker{result: &lint.Result{}},
		bus:      events.New(),
		store:    store,
		commands: commander.NewCommander(editor.NewEditor(nil)),
	}
	if setup != nil {
		setup(f)
	}
	f.c, err = New(Options{
		Docs:     f.docs,
		Editor:   f.editor,
		Commands: f.commands,
		Bus:      f.bus,
		Prefs:    f.store,
		Checker:  f.checker,
		Report:   func(err error) { f.reported = append(f.reported, err) },
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) subscribers() int {
	return f.bus.Subscribers(events.EventCurrentDocumentChanged) + f.bus.Subscribers(events.EventDocumentSaved)
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNew_EnabledByDefault(t *testing.T) {
	f := newFixture(t, nil)

	assert.True(t, f.c.Enabled())
	cmd := f.commands.Command(CommandID)
	require.NotNil(t, cmd)
	assert.Equal(t, CommandName, cmd.Name)
	assert.True(t, cmd.Checked())
	assert.Equal(t, 2, f.subscribers())
	assert.Len(t, f.checker.calls, 1, "startup runs a check")
	assert.True(t, f.c.Panel().SuccessVisible())
	assert.Equal(t, panel.DefaultHeight, f.c.Panel().Height())
}

func TestNew_RestoresDisabledState(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		require.NoError(t, f.store.Storage(ClientID, nil).Set("enabled", false))
		require.NoError(t, f.store.Storage(ClientID, nil).Set("height", 2))
	})

	assert.False(t, f.c.Enabled())
	assert.False(t, f.commands.Command(CommandID).Checked())
	assert.Equal(t, 0, f.subscribers())
	assert.Empty(t, f.checker.calls)
	assert.False(t, f.c.Panel().Visible())
	assert.False(t, f.c.Panel().SuccessVisible())
	assert.Equal(t, panel.MinHeight, f.c.Panel().Height())
	assert.Equal(t, panel.MinHeight, f.store.Storage(ClientID, nil).Int("height"))
}

func TestRun_ShowsErrors(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.checker.result = twoErrors() })

	p := f.c.Panel()
	assert.True(t, p.Visible())
	assert.False(t, p.SuccessVisible())
	assert.Equal(t, 2, p.Len())

	f.checker.result = &lint.Result{}
	require.NoError(t, f.c.Run())
	assert.False(t, p.Visible())
	assert.True(t, p.SuccessVisible())
}

func TestRun_NormalizesWhitespaceLines(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.docs.doc.text = "var a;\n  \t \nvar b;\n \n"
	})
	require.Len(t, f.checker.calls, 1)
	assert.Equal(t, call{"app.js", "var a;\n\nvar b;\n\n"}, f.checker.calls[0])
}

func TestRun_SkipsOtherExtensions(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.checker.result = twoErrors() })
	require.True(t, f.c.Panel().Visible())

	for _, path := range []string{"notes.txt", "style.css", "", "Makefile"} {
		f.docs.doc.path = path
		require.NoError(t, f.c.Run())
		assert.False(t, f.c.Panel().Visible(), path)
		assert.False(t, f.c.Panel().SuccessVisible(), path)
	}
	assert.Len(t, f.checker.calls, 1)

	for _, path := range []string{"INDEX.HTML", "page.htm", "x.Js"} {
		f.docs.doc.path = path
		require.NoError(t, f.c.Run())
		assert.True(t, f.c.Panel().Visible(), path)
	}
}

func TestRun_NoDocument(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.docs.doc = nil })
	assert.Empty(t, f.checker.calls)
	assert.False(t, f.c.Panel().Visible())
	assert.False(t, f.c.Panel().SuccessVisible())
}

func TestRun_CheckerFailure(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.checker.result = twoErrors() })
	f.checker.err = errors.New("JSLINT timed out")

	err := f.c.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSLINT timed out")
	assert.False(t, f.c.Panel().Visible())
	assert.False(t, f.c.Panel().SuccessVisible())

	f.bus.PublishCurrentDocumentChanged(events.CurrentDocumentChangedPayload{Path: "app.js"})
	require.Len(t, f.reported, 1)
	assert.ErrorIs(t, f.reported[0], f.checker.err)
}

func TestSelectError(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.checker.result = twoErrors() })

	f.c.SelectError(1)
	assert.Equal(t, gott.Point{Row: 9, Col: 0}, f.editor.cursor)
	assert.True(t, f.editor.focused)
	assert.Equal(t, 1, f.c.Panel().Selected())

	f.c.SelectError(0)
	assert.Equal(t, gott.Point{Row: 2, Col: 6}, f.editor.cursor)
	assert.Equal(t, 0, f.c.Panel().Selected())

	f.editor.focused = false
	f.c.SelectError(5)
	assert.Equal(t, gott.Point{Row: 2, Col: 6}, f.editor.cursor)
	assert.False(t, f.editor.focused)
}

func TestSetEnabled_Idempotent(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.c.SetEnabled(true))
	require.NoError(t, f.c.SetEnabled(true))
	assert.Equal(t, 2, f.subscribers())
	assert.Len(t, f.checker.calls, 1)

	require.NoError(t, f.c.SetEnabled(false))
	require.NoError(t, f.c.SetEnabled(false))
	assert.Equal(t, 0, f.subscribers())
}

func TestSetEnabled_DetachesAndReattaches(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.checker.result = twoErrors() })

	require.NoError(t, f.c.SetEnabled(false))
	assert.False(t, f.commands.Command(CommandID).Checked())
	assert.False(t, f.c.Panel().Visible())

	f.bus.PublishCurrentDocumentChanged(events.CurrentDocumentChangedPayload{Path: "app.js"})
	f.bus.PublishDocumentSaved(events.DocumentSavedPayload{Path: "app.js"})
	assert.Len(t, f.checker.calls, 1, "no checks while disabled")
	assert.False(t, f.c.Panel().Visible())

	require.NoError(t, f.c.SetEnabled(true))
	assert.Len(t, f.checker.calls, 2, "enabling checks immediately")
	assert.True(t, f.c.Panel().Visible())

	f.bus.PublishCurrentDocumentChanged(events.CurrentDocumentChangedPayload{Path: "app.js"})
	assert.Len(t, f.checker.calls, 3)
}

func TestDocumentSaved_OnlyCurrent(t *testing.T) {
	f := newFixture(t, nil)
	f.bus.PublishDocumentSaved(events.DocumentSavedPayload{Path: "other.js"})
	assert.Len(t, f.checker.calls, 1)
	f.bus.PublishDocumentSaved(events.DocumentSavedPayload{Path: "app.js"})
	assert.Len(t, f.checker.calls, 2)
}

func TestToggleCommandPersists(t *testing.T) {
	f := newFixture(t, nil)
	f.commands.Command(CommandID).Execute()
	assert.False(t, f.c.Enabled())

	reopened, err := prefs.Open(f.store.Path())
	require.NoError(t, err)
	assert.False(t, reopened.Storage(ClientID, nil).Bool("enabled"))

	require.NoError(t, f.c.Toggle())
	reopened, err = prefs.Open(f.store.Path())
	require.NoError(t, err)
	assert.True(t, reopened.Storage(ClientID, nil).Bool("enabled"))
}

func TestResize(t *testing.T) {
	f := newFixture(t, nil)
	resized := f.editor.resized

	r := f.c.BeginResize(20)
	r.Move(18)
	r.Move(15)
	assert.Equal(t, panel.DefaultHeight, f.c.Panel().Height(), "moves wait for a frame")

	f.c.Frame()
	assert.Equal(t, panel.DefaultHeight+5, f.c.Panel().Height())
	assert.Equal(t, resized+1, f.editor.resized)
	f.c.Frame()
	assert.Equal(t, resized+1, f.editor.resized, "nothing pending")

	r.Move(40)
	f.c.Frame()
	assert.Equal(t, panel.MinHeight, f.c.Panel().Height())

	reopened, err := prefs.Open(f.store.Path())
	require.NoError(t, err)
	assert.Equal(t, panel.MinHeight, reopened.Storage(ClientID, nil).Int("height"))

	r.Move(10)
	r.End()
	assert.Equal(t, panel.DefaultHeight+10, f.c.Panel().Height(), "end applies the last move")

	r.Move(0)
	r.Frame()
	f.c.Frame()
	assert.Equal(t, panel.DefaultHeight+10, f.c.Panel().Height())
}

func TestResize_NewSessionEndsOld(t *testing.T) {
	f := newFixture(t, nil)
	old := f.c.BeginResize(10)
	next := f.c.BeginResize(10)
	old.Move(0)
	f.c.Frame()
	assert.Equal(t, panel.DefaultHeight, f.c.Panel().Height())
	next.Move(9)
	f.c.Frame()
	assert.Equal(t, panel.DefaultHeight+1, f.c.Panel().Height())
}

func TestResize_LimitedToScreen(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.checker.result = twoErrors() })
	p := f.c.Panel()
	p.SetHeight(30)
	p.SetMaxHeight(10)
	p.Layout(gott.Rect{Origin: gott.Point{Row: 12}, Size: gott.Size{Rows: 10, Cols: 80}})

	r := f.c.BeginResize(12)
	r.Move(0)
	f.c.Frame()
	assert.Equal(t, 10, p.Height(), "dragging past the top stops at the screen")

	reopened, err := prefs.Open(f.store.Path())
	require.NoError(t, err)
	assert.Equal(t, 10, reopened.Storage(ClientID, nil).Int("height"))

	r.Move(14)
	r.End()
	assert.Equal(t, 8, p.Height(), "dragging down shrinks the panel at once")
}

func layoutPanel(f *fixture) {
	f.c.Panel().Layout(gott.Rect{Origin: gott.Point{Row: 20, Col: 0}, Size: gott.Size{Rows: 8, Cols: 80}})
}

func TestMouse(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.checker.result = twoErrors() })
	layoutPanel(f)

	assert.False(t, f.c.HandleMouse(&gott.Event{Type: gott.EventMouse, Mouse: gott.MouseLeft, X: 3, Y: 5}))

	assert.True(t, f.c.HandleMouse(&gott.Event{Type: gott.EventMouse, Mouse: gott.MouseLeft, X: 3, Y: 22}))
	assert.Equal(t, gott.Point{Row: 9, Col: 0}, f.editor.cursor)

	// drag the toolbar up three rows
	assert.True(t, f.c.HandleMouse(&gott.Event{Type: gott.EventMouse, Mouse: gott.MouseLeft, X: 3, Y: 20}))
	assert.True(t, f.c.HandleMouse(&gott.Event{Type: gott.EventMouse, Mouse: gott.MouseLeft, Motion: true, X: 3, Y: 17}))
	f.c.Frame()
	assert.Equal(t, panel.DefaultHeight+3, f.c.Panel().Height())
	assert.True(t, f.c.HandleMouse(&gott.Event{Type: gott.EventMouse, Mouse: gott.MouseRelease, X: 3, Y: 17}))
	assert.Nil(t, f.c.resize)

	assert.True(t, f.c.HandleMouse(&gott.Event{Type: gott.EventMouse, Mouse: gott.MouseWheelDown, X: 3, Y: 23}))
}

func TestKeys(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.checker.result = twoErrors() })
	layoutPanel(f)

	require.True(t, f.c.TakeFocus())
	assert.True(t, f.c.Panel().Focused())
	assert.True(t, f.c.HandleKey(&gott.Event{Type: gott.EventKey, Ch: 'j'}))
	assert.Equal(t, 1, f.c.Panel().Highlight())
	assert.True(t, f.c.HandleKey(&gott.Event{Type: gott.EventKey, Key: gott.KeyEnter}))
	assert.Equal(t, gott.Point{Row: 9, Col: 0}, f.editor.cursor)
	assert.False(t, f.c.Panel().Focused())

	require.True(t, f.c.TakeFocus())
	assert.False(t, f.c.HandleKey(&gott.Event{Type: gott.EventKey, Key: gott.KeyEsc}))
	assert.False(t, f.c.Panel().Focused())

	f.checker.result = &lint.Result{}
	require.NoError(t, f.c.Run())
	assert.False(t, f.c.TakeFocus(), "nothing to focus on a clean result")
}

func TestExCommand(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.checker.result = twoErrors() })

	msg, err := f.commands.Execute("jslint off")
	require.NoError(t, err)
	assert.Equal(t, "JSLint disabled", msg)

	msg, err = f.commands.Execute("jslint")
	require.NoError(t, err)
	assert.Equal(t, "JSLint enabled", msg)

	msg, err = f.commands.Execute("jslint run")
	require.NoError(t, err)
	assert.Equal(t, "JSLint: 2 problems", msg)

	msg, err = f.commands.Execute("jslint goto 2")
	require.NoError(t, err)
	assert.Equal(t, "Unexpected 'debugger'", msg)
	assert.Equal(t, gott.Point{Row: 9, Col: 0}, f.editor.cursor)

	_, err = f.commands.Execute("jslint goto 3")
	assert.Error(t, err)
	_, err = f.commands.Execute("jslint sideways")
	assert.Error(t, err)
}

func TestLispPrimitives(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.checker.result = twoErrors() })

	v, err := golisp.ParseAndEval("(jslint-enabled)")
	require.NoError(t, err)
	assert.True(t, golisp.BooleanValue(v))

	v, err = golisp.ParseAndEval("(jslint-run)")
	require.NoError(t, err)
	assert.Equal(t, int64(2), golisp.IntegerValue(v))

	_, err = golisp.ParseAndEval("(jslint-toggle)")
	require.NoError(t, err)
	assert.False(t, f.c.Enabled())

	_, err = golisp.ParseAndEval("(jslint-enable #t)")
	require.NoError(t, err)
	assert.True(t, f.c.Enabled())
}

func TestEditorDrivesChecks(t *testing.T) {
	dir := t.TempDir()
	line := `var s = "ééé"; var x = ; var y = 1;`
	script := filepath.Join(dir, "app.js")
	require.NoError(t, os.WriteFile(script, []byte(line+"\n"), 0o644))

	store, err := prefs.Open(filepath.Join(dir, "preferences.yaml"))
	require.NoError(t, err)
	bus := events.New()
	e := editor.NewEditor(bus)
	cmds := commander.NewCommander(e)
	c, err := New(Options{
		Docs:     e,
		Editor:   e,
		Commands: cmds,
		Bus:      bus,
		Prefs:    store,
		Checker:  lint.NewParserChecker(),
	})
	require.NoError(t, err)
	assert.False(t, c.Panel().Visible(), "the scratch buffer is not checked")
	assert.False(t, c.Panel().SuccessVisible())

	// reading a file makes it current
	require.NoError(t, e.ReadFile(script))
	require.True(t, c.Panel().Visible())
	require.GreaterOrEqual(t, c.Panel().Len(), 1)

	e.Blur()
	c.SelectError(0)
	cursor := e.GetCursor()
	assert.Equal(t, 0, cursor.Row)
	assert.Equal(t, ';', []rune(line)[cursor.Col])
	assert.Equal(t, 23, cursor.Col)
	assert.True(t, e.IsFocused())

	// fix the error and save it
	e.BeginInsert(gott.InsertAtCursor)
	e.InsertChar('1')
	_, err = cmds.Execute("w")
	require.NoError(t, err)
	assert.False(t, c.Panel().Visible())
	assert.True(t, c.Panel().SuccessVisible())

	// switching to a file that is not checked hides everything
	require.NoError(t, e.ReadFile(filepath.Join(dir, "notes.txt")))
	assert.False(t, c.Panel().Visible())
	assert.False(t, c.Panel().SuccessVisible())

	_, err = cmds.Execute("buffer 0")
	require.NoError(t, err)
	assert.True(t, c.Panel().SuccessVisible())

	// once disabled, document changes leave the panel alone
	require.NoError(t, c.SetEnabled(false))
	_, err = cmds.Execute("buffer 1")
	require.NoError(t, err)
	_, err = cmds.Execute("buffer 0")
	require.NoError(t, err)
	assert.False(t, c.Panel().Visible())
	assert.False(t, c.Panel().SuccessVisible())
}
