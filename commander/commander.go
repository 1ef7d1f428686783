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

package commander

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/timburks/gottlint/logging"
	gott "github.com/timburks/gottlint/types"
)

// lastLine is past the end of any buffer; cursor moves clamp it.
const lastLine = 1 << 30

// The Commander converts user input into commands for the Editor.
type Commander struct {
	editor     gott.Editor
	mode       int    // editor mode
	debug      bool   // debug mode displays information about events (key codes, etc)
	editKeys   string // edit key sequences in progress
	command    string // command as it is being typed on the command line
	searchText string // text for searches as it is being typed
	lispText   string // lisp command as it is being typed
	message    string // status message
	multiplier string // multiplier string as it is being entered

	commands   []*Command
	exCommands map[string]ExCommand
	panes      []Pane
	active     Pane // pane with keyboard focus in ModePanel
	logger     zerolog.Logger
}

func NewCommander(e gott.Editor) *Commander {
	c := &Commander{
		editor:     e,
		mode:       gott.ModeEdit,
		exCommands: map[string]ExCommand{},
		logger:     logging.Component("commander"),
	}
	setCurrent(c)
	return c
}

func (c *Commander) GetMode() int {
	return c.mode
}

func (c *Commander) SetMode(m int) {
	c.mode = m
}

func (c *Commander) IsRunning() bool {
	return c.mode != gott.ModeQuit
}

func (c *Commander) ProcessEvent(event *gott.Event) error {
	if c.debug {
		c.message = fmt.Sprintf("event=%+v", event)
	}
	switch event.Type {
	case gott.EventKey:
		return c.ProcessKey(event)
	case gott.EventMouse:
		return c.ProcessMouse(event)
	case gott.EventResize:
		return c.ProcessResize(event)
	default:
		return nil
	}
}

func (c *Commander) ProcessResize(event *gott.Event) error {
	return nil
}

// ProcessMouse offers the event to each pane in turn. A click that no pane
// takes returns focus to the editor.
func (c *Commander) ProcessMouse(event *gott.Event) error {
	for _, p := range c.panes {
		if p.HandleMouse(event) {
			if c.mode == gott.ModePanel && c.editor.IsFocused() {
				c.focusEditor()
			}
			return nil
		}
	}
	if event.Mouse == gott.MouseLeft && !event.Motion && c.mode == gott.ModePanel {
		c.focusEditor()
	}
	return nil
}

func (c *Commander) ProcessKey(event *gott.Event) error {
	var err error
	switch c.mode {
	case gott.ModeEdit:
		err = c.ProcessKeyEditMode(event)
	case gott.ModeInsert:
		err = c.ProcessKeyInsertMode(event)
	case gott.ModeCommand:
		err = c.ProcessKeyCommandMode(event)
	case gott.ModeSearchForward:
		err = c.ProcessKeySearchMode(event)
	case gott.ModeLisp:
		err = c.ProcessKeyLispMode(event)
	case gott.ModePanel:
		err = c.ProcessKeyPanelMode(event)
	}
	return err
}

func (c *Commander) ProcessKeyEditMode(event *gott.Event) error {
	e := c.editor

	key := event.Key
	ch := event.Ch

	// multikey commands have highest precedence
	if len(c.editKeys) > 0 {
		switch c.editKeys {
		case "d":
			if ch == 'd' {
				e.DeleteRowsAtCursor(c.Multiplier())
			}
		case "g":
			if ch == 'g' {
				e.MoveCursorToLine(1)
			}
		}
		c.editKeys = ""
		return nil
	}
	if key != 0 {
		switch key {
		case gott.KeyEsc:
			c.multiplier = ""
		case gott.KeyCtrlB, gott.KeyPgup:
			e.PageUp(c.Multiplier())
		case gott.KeyCtrlF, gott.KeyPgdn:
			e.PageDown(c.Multiplier())
		case gott.KeyCtrlA, gott.KeyHome:
			e.MoveToBeginningOfLine()
		case gott.KeyCtrlE, gott.KeyEnd:
			e.MoveToEndOfLine()
		case gott.KeyCtrlL:
			c.focusPane()
		case gott.KeyArrowUp:
			e.MoveCursor(gott.MoveUp, c.Multiplier())
		case gott.KeyArrowDown:
			e.MoveCursor(gott.MoveDown, c.Multiplier())
		case gott.KeyArrowLeft:
			e.MoveCursor(gott.MoveLeft, c.Multiplier())
		case gott.KeyArrowRight:
			e.MoveCursor(gott.MoveRight, c.Multiplier())
		}
	}
	if ch != 0 {
		switch ch {
		//
		// command multipliers are saved until a command uses them
		//
		case '1', '2', '3', '4', '5', '6', '7', '8', '9':
			c.multiplier += string(ch)
		case '0':
			if c.multiplier == "" {
				e.MoveToBeginningOfLine()
			} else {
				c.multiplier += "0"
			}
		//
		// commands go to the message bar
		//
		case ':':
			c.mode = gott.ModeCommand
			c.command = ""
		//
		// search queries go to the message bar
		//
		case '/':
			c.mode = gott.ModeSearchForward
			c.searchText = ""
		case 'n': // repeat the last search
			e.PerformSearchForward(c.searchText)
		//
		// lisp commands go to the message bar
		//
		case '(':
			c.mode = gott.ModeLisp
			c.lispText = "("
		//
		// cursor movement
		//
		case 'h':
			e.MoveCursor(gott.MoveLeft, c.Multiplier())
		case 'j':
			e.MoveCursor(gott.MoveDown, c.Multiplier())
		case 'k':
			e.MoveCursor(gott.MoveUp, c.Multiplier())
		case 'l':
			e.MoveCursor(gott.MoveRight, c.Multiplier())
		case '$':
			e.MoveToEndOfLine()
		case 'G':
			if c.multiplier == "" {
				e.MoveCursorToLine(lastLine)
			} else {
				e.MoveCursorToLine(c.Multiplier())
			}
		//
		// inserts switch to insert mode
		//
		case 'i':
			c.beginInsert(gott.InsertAtCursor)
		case 'a':
			c.beginInsert(gott.InsertAfterCursor)
		case 'I':
			c.beginInsert(gott.InsertAtStartOfLine)
		case 'A':
			c.beginInsert(gott.InsertAfterEndOfLine)
		case 'o':
			c.beginInsert(gott.InsertAtNewLineBelowCursor)
		case 'O':
			c.beginInsert(gott.InsertAtNewLineAboveCursor)
		case 'x':
			e.DeleteCharactersAtCursor(c.Multiplier())
		//
		// a few keys open multi-key commands
		//
		case 'd':
			c.editKeys = "d"
		case 'g':
			c.editKeys = "g"
		}
	}
	return nil
}

func (c *Commander) beginInsert(position int) {
	c.multiplier = ""
	c.editor.BeginInsert(position)
	c.mode = gott.ModeInsert
}

func (c *Commander) ProcessKeyInsertMode(event *gott.Event) error {
	e := c.editor

	key := event.Key
	ch := event.Ch
	if key != 0 {
		switch key {
		case gott.KeyEsc: // end an insert
			c.mode = gott.ModeEdit
			e.KeepCursorInRow()
		case gott.KeyBackspace2:
			e.BackspaceChar()
		case gott.KeyTab:
			e.InsertChar(' ')
			for e.GetCursor().Col%4 != 0 {
				e.InsertChar(' ')
			}
		case gott.KeyEnter:
			e.InsertChar('\n')
		case gott.KeySpace:
			e.InsertChar(' ')
		}
	}
	if ch != 0 {
		e.InsertChar(ch)
	}
	return nil
}

func (c *Commander) ProcessKeyCommandMode(event *gott.Event) error {
	key := event.Key
	ch := event.Ch
	if key != 0 {
		switch key {
		case gott.KeyEsc:
			c.mode = gott.ModeEdit
		case gott.KeyEnter:
			c.PerformCommand()
		case gott.KeyBackspace2:
			if len(c.command) > 0 {
				c.command = c.command[0 : len(c.command)-1]
			}
		case gott.KeySpace:
			c.command += " "
		}
	}
	if ch != 0 {
		c.command += string(ch)
	}
	return nil
}

func (c *Commander) ProcessKeySearchMode(event *gott.Event) error {
	key := event.Key
	ch := event.Ch
	if key != 0 {
		switch key {
		case gott.KeyEsc:
			c.mode = gott.ModeEdit
		case gott.KeyEnter:
			c.editor.PerformSearchForward(c.searchText)
			c.mode = gott.ModeEdit
		case gott.KeyBackspace2:
			if len(c.searchText) > 0 {
				c.searchText = c.searchText[0 : len(c.searchText)-1]
			}
		case gott.KeySpace:
			c.searchText += " "
		}
	}
	if ch != 0 {
		c.searchText += string(ch)
	}
	return nil
}

func (c *Commander) ProcessKeyLispMode(event *gott.Event) error {
	key := event.Key
	ch := event.Ch
	if key != 0 {
		switch key {
		case gott.KeyEsc:
			c.mode = gott.ModeEdit
		case gott.KeyEnter:
			c.mode = gott.ModeEdit
			c.message = c.ParseEval(c.lispText)
		case gott.KeyBackspace2:
			if len(c.lispText) > 0 {
				c.lispText = c.lispText[0 : len(c.lispText)-1]
			}
		case gott.KeySpace:
			c.lispText += " "
		}
	}
	if ch != 0 {
		c.lispText += string(ch)
	}
	return nil
}

// ProcessKeyPanelMode sends keys to the focused pane until it gives focus
// back or moves it to the editor.
func (c *Commander) ProcessKeyPanelMode(event *gott.Event) error {
	if c.active == nil {
		c.focusEditor()
		return nil
	}
	if !c.active.HandleKey(event) || c.editor.IsFocused() {
		c.focusEditor()
	}
	return nil
}

func (c *Commander) focusPane() {
	for _, p := range c.panes {
		if p.TakeFocus() {
			c.active = p
			c.mode = gott.ModePanel
			c.editor.Blur()
			return
		}
	}
}

func (c *Commander) focusEditor() {
	c.active = nil
	c.mode = gott.ModeEdit
	c.editor.Focus()
}

// PerformCommand runs the command line that was typed after ':'.
func (c *Commander) PerformCommand() {
	line := strings.TrimSpace(c.command)
	c.command = ""
	c.mode = gott.ModeEdit
	msg, err := c.Execute(line)
	if err != nil {
		c.logger.Error().Err(err).Str("command", line).Msg("command failed")
		c.message = err.Error()
		return
	}
	c.message = msg
}

// Execute runs one command line and returns the message to display.
func (c *Commander) Execute(line string) (string, error) {
	e := c.editor

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}
	if i, err := strconv.Atoi(parts[0]); err == nil {
		e.MoveCursorToLine(i)
		return "", nil
	}
	args := parts[1:]
	switch parts[0] {
	case "q":
		c.mode = gott.ModeQuit
	case "r":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: r FILE")
		}
		if err := e.ReadFile(args[0]); err != nil {
			return "", err
		}
		return fmt.Sprintf("%q read", args[0]), nil
	case "debug":
		if len(args) == 1 {
			switch args[0] {
			case "on":
				c.debug = true
			case "off":
				c.debug = false
			}
		}
	case "w", "wq":
		var filename string
		if len(args) == 1 {
			filename = args[0]
		}
		if err := e.WriteFile(filename); err != nil {
			return "", err
		}
		if parts[0] == "wq" {
			c.mode = gott.ModeQuit
		}
		return fmt.Sprintf("%q written", e.GetFileName()), nil
	case "$":
		e.MoveCursorToLine(lastLine)
	case "buffer":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: buffer N")
		}
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return "", fmt.Errorf("buffer: %w", err)
		}
		if err := e.SelectBuffer(number); err != nil {
			return "", err
		}
	case "buffers":
		return e.ListBuffers(), nil
	case "commands":
		return c.listCommands(), nil
	case "exec":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: exec COMMAND-ID")
		}
		cmd := c.Command(args[0])
		if cmd == nil {
			return "", fmt.Errorf("no command %q", args[0])
		}
		cmd.Execute()
	default:
		fn, ok := c.exCommands[parts[0]]
		if !ok {
			return "", fmt.Errorf("unknown command %q", parts[0])
		}
		return fn(args)
	}
	return "", nil
}

func (c *Commander) Multiplier() int {
	if c.multiplier == "" {
		return 1
	}
	i, err := strconv.Atoi(c.multiplier)
	c.multiplier = ""
	if err != nil || i < 1 {
		return 1
	}
	return i
}

func (c *Commander) GetSearchText() string {
	return c.searchText
}

func (c *Commander) GetLispText() string {
	return c.lispText
}

func (c *Commander) GetCommand() string {
	return c.command
}

func (c *Commander) GetMessage() string {
	return c.message
}

func (c *Commander) SetMessage(message string) {
	c.message = message
}
