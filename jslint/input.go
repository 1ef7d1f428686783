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
	"fmt"
	"strconv"

	"github.com/timburks/gottlint/commander"
	gott "github.com/timburks/gottlint/types"
)

var _ commander.Pane = (*Controller)(nil)

const wheelRows = 3

// TakeFocus gives the panel keyboard focus when it has rows to show.
func (c *Controller) TakeFocus() bool {
	if !c.panel.Visible() || c.panel.Len() == 0 {
		return false
	}
	c.panel.SetFocused(true)
	return true
}

// HandleKey moves the highlight through the rows. Enter jumps to the
// highlighted error and Esc returns to the editor.
func (c *Controller) HandleKey(event *gott.Event) bool {
	if !c.panel.Visible() {
		return false
	}
	switch {
	case event.Key == gott.KeyEsc:
		c.panel.SetFocused(false)
		return false
	case event.Key == gott.KeyEnter:
		c.SelectError(c.panel.Highlight())
	case event.Key == gott.KeyArrowDown || event.Ch == 'j':
		c.panel.MoveHighlight(1)
	case event.Key == gott.KeyArrowUp || event.Ch == 'k':
		c.panel.MoveHighlight(-1)
	case event.Key == gott.KeyPgdn:
		c.panel.MoveHighlight(max(c.panel.Rect().Size.Rows-1, 1))
	case event.Key == gott.KeyPgup:
		c.panel.MoveHighlight(-max(c.panel.Rect().Size.Rows-1, 1))
	}
	return true
}

// HandleMouse handles clicks on rows, drags of the toolbar and the wheel
// over the panel.
func (c *Controller) HandleMouse(event *gott.Event) bool {
	if r := c.resize; r != nil {
		switch {
		case event.Mouse == gott.MouseRelease:
			r.End()
		case event.Motion || event.Mouse == gott.MouseLeft:
			r.Move(event.Y)
		}
		return true
	}
	pt := gott.Point{Row: event.Y, Col: event.X}
	if !c.panel.Visible() || !c.panel.Rect().Contains(pt) {
		return false
	}
	switch event.Mouse {
	case gott.MouseWheelUp:
		c.panel.Scroll(-wheelRows)
	case gott.MouseWheelDown:
		c.panel.Scroll(wheelRows)
	case gott.MouseLeft:
		if event.Motion {
			return true
		}
		if c.panel.OnToolbar(pt) {
			c.BeginResize(event.Y)
		} else if i, ok := c.panel.RowAt(pt); ok {
			c.SelectError(i)
		}
	}
	return true
}

// exCommand handles ":jslint [on|off|run|goto N]". With no argument it
// toggles.
func (c *Controller) exCommand(args []string) (string, error) {
	if len(args) == 0 {
		if err := c.Toggle(); err != nil {
			return "", err
		}
		return c.status(), nil
	}
	switch args[0] {
	case "on", "off":
		if err := c.SetEnabled(args[0] == "on"); err != nil {
			return "", err
		}
		return c.status(), nil
	case "run":
		if err := c.Run(); err != nil {
			return "", err
		}
		return c.summary(), nil
	case "goto":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: jslint goto N")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > c.panel.Len() {
			return "", fmt.Errorf("jslint: no error %s", args[1])
		}
		c.SelectError(n - 1)
		return c.panel.Row(n - 1).Message, nil
	}
	return "", fmt.Errorf("usage: jslint [on|off|run|goto N]")
}

func (c *Controller) status() string {
	if c.enabled {
		return "JSLint enabled"
	}
	return "JSLint disabled"
}

func (c *Controller) summary() string {
	switch {
	case c.panel.SuccessVisible():
		return "JSLint: no problems"
	case c.panel.Visible():
		return fmt.Sprintf("JSLint: %d problems", c.panel.Len())
	}
	return c.status()
}
