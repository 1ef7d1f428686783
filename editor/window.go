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
	"github.com/mattn/go-runewidth"

	gott "github.com/timburks/gottlint/types"
)

// A Window is a view of a buffer.
type Window struct {
	buffer *Buffer
	cursor gott.Point // cursor position in the buffer
	offset gott.Size  // display offset
}

func NewWindow(buffer *Buffer) *Window {
	return &Window{buffer: buffer}
}

func (w *Window) GetBuffer() *Buffer {
	return w.buffer
}

// Render draws the visible rows of the buffer into area.
func (w *Window) Render(display gott.Display, area gott.Rect) {
	w.adjustDisplayOffsetForScrolling(area.Size)

	b := w.buffer
	b.highlight()

	for i := 0; i < area.Size.Rows; i++ {
		y := area.Origin.Row + i
		r := i + w.offset.Rows
		if r >= len(b.rows) {
			display.SetCell(area.Origin.Col, y, '~', gott.ColorBlue)
			continue
		}
		row := b.rows[r]
		x := 0
		for j := w.offset.Cols; j < row.Length(); j++ {
			c := row.Text[j]
			width := max(runewidth.RuneWidth(c), 1)
			if x+width > area.Size.Cols {
				break
			}
			display.SetCell(area.Origin.Col+x, y, c, row.Colors[j])
			x += width
		}
	}
}

// ShowCursor places the display cursor over the buffer cursor.
func (w *Window) ShowCursor(display gott.Display, area gott.Rect) {
	col := 0
	if w.cursor.Row < len(w.buffer.rows) {
		row := w.buffer.rows[w.cursor.Row]
		for j := w.offset.Cols; j < w.cursor.Col && j < row.Length(); j++ {
			col += max(runewidth.RuneWidth(row.Text[j]), 1)
		}
	}
	display.SetCursor(gott.Point{
		Row: area.Origin.Row + w.cursor.Row - w.offset.Rows,
		Col: area.Origin.Col + col,
	})
}

// Recompute the display offset to keep the cursor onscreen.
func (w *Window) adjustDisplayOffsetForScrolling(size gott.Size) {
	if w.cursor.Row < w.offset.Rows {
		// scroll up
		w.offset.Rows = w.cursor.Row
	}
	if size.Rows > 0 && w.cursor.Row-w.offset.Rows >= size.Rows {
		// scroll down
		w.offset.Rows = w.cursor.Row - size.Rows + 1
	}
	if w.cursor.Col < w.offset.Cols {
		// scroll left
		w.offset.Cols = w.cursor.Col
	}
	if size.Cols > 0 && w.cursor.Col-w.offset.Cols >= size.Cols {
		// scroll right
		w.offset.Cols = w.cursor.Col - size.Cols + 1
	}
}
