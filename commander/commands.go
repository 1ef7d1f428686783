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
	"strings"

	gott "github.com/timburks/gottlint/types"
)

// A Command is a named action that features register with the commander.
// A command can carry a checked state, shown when commands are listed.
type Command struct {
	Name    string
	ID      string
	fn      func()
	checked bool
}

func (cmd *Command) Execute() {
	cmd.fn()
}

func (cmd *Command) SetChecked(checked bool) {
	cmd.checked = checked
}

func (cmd *Command) Checked() bool {
	return cmd.checked
}

// An ExCommand handles a command line whose first word it was registered
// under. It returns the message to show.
type ExCommand func(args []string) (string, error)

// A Pane is an area of the screen outside the editing window that can take
// keyboard focus and receive mouse events.
type Pane interface {
	// TakeFocus is called on Ctrl-L and reports whether the pane took focus.
	TakeFocus() bool
	// HandleKey receives keys while the pane has focus. Returning false
	// gives focus back to the editor.
	HandleKey(event *gott.Event) bool
	// HandleMouse reports whether the pane consumed the event.
	HandleMouse(event *gott.Event) bool
}

// Register adds a command, replacing any command with the same id.
func (c *Commander) Register(name string, id string, fn func()) *Command {
	cmd := &Command{Name: name, ID: id, fn: fn}
	for i, existing := range c.commands {
		if existing.ID == id {
			c.commands[i] = cmd
			return cmd
		}
	}
	c.commands = append(c.commands, cmd)
	return cmd
}

// Command returns the command registered under id, or nil.
func (c *Commander) Command(id string) *Command {
	for _, cmd := range c.commands {
		if cmd.ID == id {
			return cmd
		}
	}
	return nil
}

func (c *Commander) Commands() []*Command {
	return c.commands
}

// AddExCommand makes fn available on the command line as name.
func (c *Commander) AddExCommand(name string, fn ExCommand) {
	c.exCommands[name] = fn
}

// AddPane adds a pane. Panes receive mouse events in the order they were added.
func (c *Commander) AddPane(p Pane) {
	c.panes = append(c.panes, p)
}

func (c *Commander) listCommands() string {
	var parts []string
	for _, cmd := range c.commands {
		mark := "[ ]"
		if cmd.checked {
			mark = "[x]"
		}
		parts = append(parts, fmt.Sprintf("%s %s (%s)", mark, cmd.Name, cmd.ID))
	}
	return strings.Join(parts, " ")
}
