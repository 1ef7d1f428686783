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

package screen

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"github.com/timburks/gottlint/commander"
	"github.com/timburks/gottlint/editor"
	"github.com/timburks/gottlint/panel"
	gott "github.com/timburks/gottlint/types"
)

// minEditorRows is the editing area that stays visible however tall the
// panel is.
const minEditorRows = 1

// A Layout divides the terminal into the editing area, the window info
// bar, the results panel and the message bar, from top to bottom.
type Layout struct {
	Editor     gott.Rect
	InfoRow    int
	Panel      gott.Rect
	PanelMax   int // most rows a panel can take at this size
	MessageRow int
}

// ComputeLayout lays out a terminal of the given size. A visible panel
// takes panelHeight rows, less when the terminal is too short.
func ComputeLayout(size gott.Size, panelVisible bool, panelHeight int) Layout {
	panelMax := max(size.Rows-2-minEditorRows, 0)
	rows := 0
	if panelVisible {
		rows = min(panelHeight, panelMax)
	}
	editorRows := max(size.Rows-2-rows, 0)
	return Layout{
		Editor:     gott.Rect{Size: gott.Size{Rows: editorRows, Cols: size.Cols}},
		InfoRow:    editorRows,
		Panel:      gott.Rect{Origin: gott.Point{Row: editorRows + 1}, Size: gott.Size{Rows: rows, Cols: size.Cols}},
		PanelMax:   panelMax,
		MessageRow: size.Rows - 1,
	}
}

// The Screen draws the state of the editor, the commander and the results
// panel with termbox.
type Screen struct {
	size      gott.Size // screen size
	layout    Layout
	editor    *editor.Editor
	commander *commander.Commander
	panel     *panel.Panel
}

func NewScreen(e *editor.Editor, c *commander.Commander, p *panel.Panel) (*Screen, error) {
	// Open the terminal.
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	termbox.SetOutputMode(termbox.Output256)
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)
	s := &Screen{editor: e, commander: c, panel: p}
	e.SetLayout(s.layoutEditor)
	return s, nil
}

func (s *Screen) Close() {
	termbox.Close()
}

// layoutEditor recomputes the layout, places the panel and returns the
// editing area.
func (s *Screen) layoutEditor() gott.Rect {
	s.size.Cols, s.size.Rows = termbox.Size()
	s.layout = ComputeLayout(s.size, s.panel.Visible(), s.panel.Height())
	s.panel.SetMaxHeight(s.layout.PanelMax)
	s.panel.Layout(s.layout.Panel)
	return s.layout.Editor
}

func (s *Screen) Render() {
	termbox.Clear(termbox.ColorWhite, termbox.ColorBlack)
	s.editor.Resize()
	s.editor.Render(s)
	s.panel.Render(s)
	s.renderBar(s.layout.InfoRow, infoBarText(s.editor, s.panel, s.size.Cols), true)
	s.renderMessageBar()
	if !s.editor.IsFocused() {
		s.HideCursor()
	}
	termbox.Flush()
}

func (s *Screen) SetCell(col int, row int, c rune, color gott.Color) {
	termbox.SetCell(col, row, c, termbox.Attribute(color), termbox.Attribute(gott.ColorBlack))
}

func (s *Screen) SetCellReversed(col int, row int, c rune, color gott.Color) {
	termbox.SetCell(col, row, c, termbox.Attribute(color), termbox.Attribute(gott.ColorWhite))
}

func (s *Screen) SetCursor(position gott.Point) {
	termbox.SetCursor(position.Col, position.Row)
}

func (s *Screen) HideCursor() {
	termbox.HideCursor()
}

// infoBarText describes the current buffer, the lint status and the cursor
// line, padded to width.
func infoBarText(e *editor.Editor, p *panel.Panel, width int) string {
	b := e.CurrentBuffer()
	name := b.GetFileName()
	if name == "" {
		name = "(scratch)"
	}
	text := fmt.Sprintf(" [%d] %s", b.Number(), name)
	switch {
	case p.SuccessVisible():
		text += "  JSLint ✓"
	case p.Visible():
		text += fmt.Sprintf("  JSLint: %d", p.Len())
	}
	finalText := fmt.Sprintf(" %d/%d ", e.GetCursor().Row+1, b.GetRowCount())
	if pad := width - runewidth.StringWidth(text) - runewidth.StringWidth(finalText); pad > 0 {
		text += fmt.Sprintf("%*s", pad, "")
	}
	return text + finalText
}

func (s *Screen) renderMessageBar() {
	c := s.commander
	var line string
	switch c.GetMode() {
	case gott.ModeCommand:
		line = ":" + c.GetCommand()
	case gott.ModeSearchForward:
		line = "/" + c.GetSearchText()
	case gott.ModeLisp:
		line = c.GetLispText()
	default:
		line = c.GetMessage()
	}
	s.renderBar(s.layout.MessageRow, line, false)
	switch c.GetMode() {
	case gott.ModeCommand, gott.ModeSearchForward, gott.ModeLisp:
		s.SetCursor(gott.Point{Row: s.layout.MessageRow, Col: min(runewidth.StringWidth(line), s.size.Cols-1)})
	}
}

func (s *Screen) renderBar(row int, text string, reversed bool) {
	x := 0
	for _, ch := range text {
		w := max(runewidth.RuneWidth(ch), 1)
		if x+w > s.size.Cols {
			break
		}
		if reversed {
			s.SetCellReversed(x, row, ch, gott.ColorBlack)
		} else {
			s.SetCell(x, row, ch, gott.ColorWhite)
		}
		x += w
	}
}

func (s *Screen) GetNextEvent() *gott.Event {
	event := termbox.PollEvent()
	if event.Type == termbox.EventResize {
		termbox.Flush()
	}
	return translate(event)
}

func translate(event termbox.Event) *gott.Event {
	switch event.Type {
	case termbox.EventKey:
		return &gott.Event{Type: gott.EventKey, Key: key(event.Key), Ch: event.Ch}
	case termbox.EventMouse:
		return &gott.Event{
			Type:   gott.EventMouse,
			Mouse:  mouse(event.Key),
			Motion: event.Mod&termbox.ModMotion != 0,
			X:      event.MouseX,
			Y:      event.MouseY,
		}
	case termbox.EventResize:
		return &gott.Event{Type: gott.EventResize, X: event.Width, Y: event.Height}
	case termbox.EventError:
		return &gott.Event{Type: gott.EventError}
	default:
		return &gott.Event{Type: gott.EventNone}
	}
}

func mouse(k termbox.Key) gott.MouseButton {
	switch k {
	case termbox.MouseLeft:
		return gott.MouseLeft
	case termbox.MouseRelease:
		return gott.MouseRelease
	case termbox.MouseWheelUp:
		return gott.MouseWheelUp
	case termbox.MouseWheelDown:
		return gott.MouseWheelDown
	default:
		return gott.MouseNone
	}
}

func key(k termbox.Key) gott.Key {
	switch k {
	case termbox.KeyArrowDown:
		return gott.KeyArrowDown
	case termbox.KeyArrowLeft:
		return gott.KeyArrowLeft
	case termbox.KeyArrowRight:
		return gott.KeyArrowRight
	case termbox.KeyArrowUp:
		return gott.KeyArrowUp
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		return gott.KeyBackspace2
	case termbox.KeyCtrlA:
		return gott.KeyCtrlA
	case termbox.KeyCtrlB:
		return gott.KeyCtrlB
	case termbox.KeyCtrlC:
		return gott.KeyCtrlC
	case termbox.KeyCtrlD:
		return gott.KeyCtrlD
	case termbox.KeyCtrlE:
		return gott.KeyCtrlE
	case termbox.KeyCtrlF:
		return gott.KeyCtrlF
	case termbox.KeyCtrlG:
		return gott.KeyCtrlG
	case termbox.KeyCtrlL:
		return gott.KeyCtrlL
	case termbox.KeyCtrlN:
		return gott.KeyCtrlN
	case termbox.KeyCtrlP:
		return gott.KeyCtrlP
	case termbox.KeyCtrlU:
		return gott.KeyCtrlU
	case termbox.KeyEnd:
		return gott.KeyEnd
	case termbox.KeyEnter:
		return gott.KeyEnter
	case termbox.KeyEsc:
		return gott.KeyEsc
	case termbox.KeyHome:
		return gott.KeyHome
	case termbox.KeyPgdn:
		return gott.KeyPgdn
	case termbox.KeyPgup:
		return gott.KeyPgup
	case termbox.KeySpace:
		return gott.KeySpace
	case termbox.KeyTab:
		return gott.KeyTab
	default:
		return gott.KeyUnsupported
	}
}
