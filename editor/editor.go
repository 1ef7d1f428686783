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

package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/timburks/gottlint/events"
	"github.com/timburks/gottlint/logging"
	gott "github.com/timburks/gottlint/types"
)

var _ gott.Editor = (*Editor)(nil)

// The Editor manages the editing of text in a set of buffers, one of which
// is current and shown in the editing area.
type Editor struct {
	windows    []*Window
	window     *Window          // current window
	area       gott.Rect        // editing area
	layout     func() gott.Rect // computes the editing area
	bus        *events.Bus
	focused    bool
	nextNumber int
	logger     zerolog.Logger
}

// NewEditor returns an editor with one empty buffer. Document events are
// published on bus when it is not nil.
func NewEditor(bus *events.Bus) *Editor {
	e := &Editor{bus: bus, focused: true, logger: logging.Component("editor")}
	e.window = e.newWindow()
	return e
}

func (e *Editor) newWindow() *Window {
	w := NewWindow(NewBuffer(e.nextNumber))
	e.nextNumber++
	e.windows = append(e.windows, w)
	return w
}

func (e *Editor) buffer() *Buffer {
	return e.window.buffer
}

// CurrentBuffer returns the buffer shown in the editing area.
func (e *Editor) CurrentBuffer() *Buffer {
	return e.window.buffer
}

// CurrentDocument returns the current buffer as a document.
func (e *Editor) CurrentDocument() gott.Document {
	if e.window == nil {
		return nil
	}
	return e.window.buffer
}

// ReadFile loads path into a buffer and makes it current. A file that does
// not exist yet opens as an empty buffer with that name.
func (e *Editor) ReadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	w := e.window
	if w.buffer.fileName != "" || len(w.buffer.Bytes()) > 0 {
		w = e.newWindow()
	}
	w.buffer.LoadBytes(b)
	w.buffer.SetFileName(path)
	w.cursor = gott.Point{}
	w.offset = gott.Size{}
	e.window = w
	e.logger.Debug().Str("path", path).Int("buffer", w.buffer.number).Msg("file read")
	e.publishCurrentChanged()
	return nil
}

// WriteFile saves the current buffer. An empty path writes to the buffer's
// own file name.
func (e *Editor) WriteFile(path string) error {
	b := e.buffer()
	if path == "" {
		path = b.fileName
	}
	if path == "" {
		return errors.New("no file name")
	}
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if b.fileName == "" {
		b.SetFileName(path)
	}
	e.logger.Debug().Str("path", path).Msg("file written")
	if e.bus != nil {
		e.bus.PublishDocumentSaved(events.DocumentSavedPayload{Path: path})
	}
	return nil
}

func (e *Editor) publishCurrentChanged() {
	if e.bus != nil {
		e.bus.PublishCurrentDocumentChanged(events.CurrentDocumentChangedPayload{Path: e.buffer().fileName})
	}
}

func (e *Editor) GetFileName() string {
	return e.buffer().fileName
}

func (e *Editor) Bytes() []byte {
	return e.buffer().Bytes()
}

// SelectBuffer makes the buffer with the given number current.
func (e *Editor) SelectBuffer(number int) error {
	for _, w := range e.windows {
		if w.buffer.number == number {
			if w != e.window {
				e.window = w
				e.publishCurrentChanged()
			}
			return nil
		}
	}
	return fmt.Errorf("no buffer %d", number)
}

// ListBuffers describes every buffer, marking the current one.
func (e *Editor) ListBuffers() string {
	var parts []string
	for _, w := range e.windows {
		name := w.buffer.fileName
		if name == "" {
			name = "(scratch)"
		}
		mark := ""
		if w == e.window {
			mark = "*"
		}
		parts = append(parts, fmt.Sprintf("[%d]%s %s", w.buffer.number, mark, name))
	}
	return strings.Join(parts, " ")
}

// Focus gives the editor keyboard focus.
func (e *Editor) Focus() {
	e.focused = true
}

func (e *Editor) Blur() {
	e.focused = false
}

func (e *Editor) IsFocused() bool {
	return e.focused
}

// SetLayout installs the function that computes the editing area.
func (e *Editor) SetLayout(layout func() gott.Rect) {
	e.layout = layout
}

// Resize recomputes the editing area and keeps the cursor visible.
func (e *Editor) Resize() {
	if e.layout != nil {
		e.area = e.layout()
	}
	e.window.adjustDisplayOffsetForScrolling(e.area.Size)
}

func (e *Editor) Area() gott.Rect {
	return e.area
}

// Render draws the current window into the editing area.
func (e *Editor) Render(display gott.Display) {
	e.window.Render(display, e.area)
	if e.focused {
		e.window.ShowCursor(display, e.area)
	}
}

// cursor movement

func (e *Editor) GetCursor() gott.Point {
	return e.window.cursor
}

func (e *Editor) SetCursor(cursor gott.Point) {
	e.window.cursor = cursor
}

// SetCursorPos moves the cursor to (row, col), clamped to the buffer.
func (e *Editor) SetCursorPos(row, col int) {
	b := e.buffer()
	row = clipToRange(row, 0, b.GetRowCount()-1)
	col = clipToRange(col, 0, b.GetRowLength(row)-1)
	e.window.cursor = gott.Point{Row: row, Col: col}
}

func (e *Editor) MoveCursor(direction int, multiplier int) {
	for i := 0; i < multiplier; i++ {
		e.moveCursor(direction)
	}
}

func (e *Editor) moveCursor(direction int) {
	b := e.buffer()
	cursor := &e.window.cursor
	switch direction {
	case gott.MoveLeft:
		if cursor.Col > 0 {
			cursor.Col--
		}
	case gott.MoveRight:
		if cursor.Row < b.GetRowCount() {
			if cursor.Col < b.GetRowLength(cursor.Row)-1 {
				cursor.Col++
			}
		}
	case gott.MoveUp:
		if cursor.Row > 0 {
			cursor.Row--
		}
	case gott.MoveDown:
		if cursor.Row < b.GetRowCount()-1 {
			cursor.Row++
		}
	}
	// don't go past the end of the current line
	if cursor.Row < b.GetRowCount() {
		rowLength := b.GetRowLength(cursor.Row)
		if cursor.Col > rowLength-1 {
			cursor.Col = max(rowLength-1, 0)
		}
	}
}

// MoveCursorToLine moves to the start of a 1-based line.
func (e *Editor) MoveCursorToLine(line int) {
	row := clipToRange(line-1, 0, e.buffer().GetRowCount()-1)
	e.window.cursor = gott.Point{Row: row, Col: 0}
}

func (e *Editor) MoveToBeginningOfLine() {
	e.window.cursor.Col = 0
}

func (e *Editor) MoveToEndOfLine() {
	cursor := &e.window.cursor
	cursor.Col = max(e.buffer().GetRowLength(cursor.Row)-1, 0)
}

func (e *Editor) PageUp(multiplier int) {
	// move to the top of the screen
	e.window.cursor.Row = e.window.offset.Rows
	// move up by a page
	e.MoveCursor(gott.MoveUp, e.area.Size.Rows*multiplier)
}

func (e *Editor) PageDown(multiplier int) {
	// move to the bottom of the screen
	e.window.cursor.Row = e.window.offset.Rows + e.area.Size.Rows - 1
	// move down by a page
	e.MoveCursor(gott.MoveDown, e.area.Size.Rows*multiplier)
}

func (e *Editor) KeepCursorInRow() {
	b := e.buffer()
	cursor := &e.window.cursor
	if b.GetRowCount() == 0 {
		cursor.Row = 0
		cursor.Col = 0
		return
	}
	cursor.Row = clipToRange(cursor.Row, 0, b.GetRowCount()-1)
	cursor.Col = clipToRange(cursor.Col, 0, b.GetRowLength(cursor.Row)-1)
}

// editing

// BeginInsert positions the cursor for an insert at position.
func (e *Editor) BeginInsert(position int) {
	b := e.buffer()
	cursor := &e.window.cursor
	if b.GetRowCount() == 0 {
		b.appendBlankRow()
	}
	cursor.Row = clipToRange(cursor.Row, 0, b.GetRowCount()-1)
	switch position {
	case gott.InsertAtCursor:
	case gott.InsertAfterCursor:
		cursor.Col = clipToRange(cursor.Col+1, 0, b.GetRowLength(cursor.Row))
	case gott.InsertAtStartOfLine:
		cursor.Col = 0
	case gott.InsertAfterEndOfLine:
		cursor.Col = b.GetRowLength(cursor.Row)
	case gott.InsertAtNewLineBelowCursor:
		b.insertRow(cursor.Row+1, NewRow(""))
		cursor.Row++
		cursor.Col = 0
	case gott.InsertAtNewLineAboveCursor:
		b.insertRow(cursor.Row, NewRow(""))
		cursor.Col = 0
	}
}

func (e *Editor) InsertChar(c rune) {
	b := e.buffer()
	cursor := &e.window.cursor
	// if the cursor is past the number of rows, add a row
	for cursor.Row >= b.GetRowCount() {
		b.appendBlankRow()
	}
	if c == '\n' {
		b.insertRow(cursor.Row+1, b.rows[cursor.Row].Split(cursor.Col))
		cursor.Row++
		cursor.Col = 0
		return
	}
	b.InsertCharacter(cursor.Row, cursor.Col, c)
	cursor.Col++
}

// BackspaceChar deletes the character before the cursor, joining rows at
// the start of a line, and returns it.
func (e *Editor) BackspaceChar() rune {
	b := e.buffer()
	cursor := &e.window.cursor
	if cursor.Row >= b.GetRowCount() {
		return 0
	}
	if cursor.Col > 0 {
		b.highlighted = false
		c := b.rows[cursor.Row].DeleteChar(cursor.Col - 1)
		cursor.Col--
		return c
	}
	if cursor.Row > 0 {
		col := b.GetRowLength(cursor.Row - 1)
		b.rows[cursor.Row-1].Join(b.rows[cursor.Row])
		b.DeleteRow(cursor.Row)
		cursor.Row--
		cursor.Col = col
		return '\n'
	}
	return 0
}

func (e *Editor) DeleteCharactersAtCursor(multiplier int) string {
	cursor := &e.window.cursor
	deleted := e.buffer().DeleteCharacters(cursor.Row, cursor.Col, multiplier, false)
	e.KeepCursorInRow()
	return deleted
}

func (e *Editor) DeleteRowsAtCursor(multiplier int) string {
	b := e.buffer()
	cursor := &e.window.cursor
	var deleted []string
	for i := 0; i < multiplier && cursor.Row < b.GetRowCount(); i++ {
		deleted = append(deleted, b.rows[cursor.Row].String())
		b.DeleteRow(cursor.Row)
	}
	e.KeepCursorInRow()
	return strings.Join(deleted, "\n")
}

// PerformSearchForward moves the cursor to the next occurrence of text,
// wrapping at the end of the buffer.
func (e *Editor) PerformSearchForward(text string) {
	b := e.buffer()
	if b.GetRowCount() == 0 || text == "" {
		return
	}
	cursor := &e.window.cursor
	row := cursor.Row
	col := cursor.Col + 1
	for {
		s := b.TextAfter(row, col)
		if i := strings.Index(s, text); i != -1 {
			// found it
			cursor.Row = row
			cursor.Col = col + len([]rune(s[:i]))
			return
		}
		col = 0
		row++
		if row == b.GetRowCount() {
			row = 0
		}
		if row == cursor.Row {
			break
		}
	}
}
