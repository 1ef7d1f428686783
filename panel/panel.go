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

// Package panel draws lint results below the editing window. The panel
// holds one row per error record; when a check is clean it hides itself and
// raises a success indicator that the screen draws in the info bar.
package panel

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/timburks/gottlint/lint"
	gott "github.com/timburks/gottlint/types"
)

const (
	MinHeight     = 4 // rows, including the toolbar
	DefaultHeight = 8
	ToolbarHeight = 1
)

// Clamp returns height raised to MinHeight.
func Clamp(height int) int {
	if height < MinHeight {
		return MinHeight
	}
	return height
}

// A Panel is the results view of one lint client.
type Panel struct {
	title     string
	rows      []*lint.ErrorRecord
	selected  int // index of the selected row, -1 for none
	highlight int // keyboard cursor while the panel has focus
	offset    int // index of the first visible row
	visible   bool
	success   bool
	focused   bool
	height    int
	maxHeight int       // tallest panel the screen can show, 0 if unknown
	rect      gott.Rect // area of the last layout
}

func New(title string) *Panel {
	return &Panel{title: title, selected: -1, height: DefaultHeight}
}

// Show replaces the rows with the records of result. A clean result hides
// the panel and shows the success indicator.
func (p *Panel) Show(result *lint.Result) {
	p.rows = p.rows[:0]
	p.selected = -1
	p.highlight = 0
	p.offset = 0

	if result.Clean() {
		p.visible = false
		p.success = true
		p.focused = false
		return
	}
	p.rows = append(p.rows, result.Records()...)
	p.visible = true
	p.success = false
}

// HideAll hides both the panel and the success indicator.
func (p *Panel) HideAll() {
	p.visible = false
	p.success = false
	p.focused = false
}

func (p *Panel) Visible() bool {
	return p.visible
}

func (p *Panel) SuccessVisible() bool {
	return p.success
}

func (p *Panel) Len() int {
	return len(p.rows)
}

// Row returns the record shown in row i, or nil.
func (p *Panel) Row(i int) *lint.ErrorRecord {
	if i < 0 || i >= len(p.rows) {
		return nil
	}
	return p.rows[i]
}

// Select makes row i the only selected row and returns its record. An
// index outside the rows changes nothing and returns nil.
func (p *Panel) Select(i int) *lint.ErrorRecord {
	record := p.Row(i)
	if record == nil {
		return nil
	}
	p.selected = i
	p.highlight = i
	p.keepVisible(i)
	return record
}

// Selected returns the index of the selected row, or -1.
func (p *Panel) Selected() int {
	return p.selected
}

func (p *Panel) Highlight() int {
	return p.highlight
}

// MoveHighlight moves the keyboard cursor by delta rows.
func (p *Panel) MoveHighlight(delta int) {
	if len(p.rows) == 0 {
		return
	}
	p.highlight = clip(p.highlight+delta, 0, len(p.rows)-1)
	p.keepVisible(p.highlight)
}

func (p *Panel) SetFocused(focused bool) {
	p.focused = focused && p.visible
}

func (p *Panel) Focused() bool {
	return p.focused
}

func (p *Panel) Height() int {
	return p.height
}

// SetHeight stores height, raised to MinHeight and lowered to the maximum
// height when one is set, and returns the stored value.
func (p *Panel) SetHeight(height int) int {
	if p.maxHeight > 0 && height > p.maxHeight {
		height = p.maxHeight
	}
	p.height = Clamp(height)
	return p.height
}

// SetMaxHeight sets the tallest height SetHeight stores. Zero removes the
// limit. The current height is left alone until the next SetHeight.
func (p *Panel) SetMaxHeight(height int) {
	p.maxHeight = max(height, 0)
}

func (p *Panel) MaxHeight() int {
	return p.maxHeight
}

// Scroll moves the visible window by delta rows.
func (p *Panel) Scroll(delta int) {
	p.offset = clip(p.offset+delta, 0, max(len(p.rows)-p.bodyRows(), 0))
}

// Layout places the panel. Rendering and hit testing use this area.
func (p *Panel) Layout(r gott.Rect) {
	p.rect = r
	p.Scroll(0)
}

func (p *Panel) Rect() gott.Rect {
	return p.rect
}

// OnToolbar reports whether pt is on the toolbar, which is also the resize handle.
func (p *Panel) OnToolbar(pt gott.Point) bool {
	return p.visible && pt.Row == p.rect.Origin.Row &&
		pt.Col >= p.rect.Origin.Col && pt.Col < p.rect.Origin.Col+p.rect.Size.Cols
}

// RowAt returns the index of the row drawn at pt.
func (p *Panel) RowAt(pt gott.Point) (int, bool) {
	if !p.visible || !p.rect.Contains(pt) {
		return 0, false
	}
	i := pt.Row - p.rect.Origin.Row - ToolbarHeight + p.offset
	if pt.Row-p.rect.Origin.Row < ToolbarHeight || i >= len(p.rows) {
		return 0, false
	}
	return i, true
}

func (p *Panel) bodyRows() int {
	return max(p.rect.Size.Rows-ToolbarHeight, 0)
}

func (p *Panel) keepVisible(i int) {
	body := p.bodyRows()
	if body == 0 {
		return
	}
	if i < p.offset {
		p.offset = i
	}
	if i >= p.offset+body {
		p.offset = i - body + 1
	}
}

// Render draws the toolbar and the visible rows into the layout area.
func (p *Panel) Render(d gott.Display) {
	if !p.visible || p.rect.Size.Rows == 0 {
		return
	}
	origin := p.rect.Origin
	width := p.rect.Size.Cols

	toolbar := fmt.Sprintf(" %s  %d problem", p.title, len(p.rows))
	if len(p.rows) != 1 {
		toolbar += "s"
	}
	drawText(d, origin.Col, origin.Row, pad(toolbar, width), gott.ColorBlack, true)

	for r := 0; r < p.bodyRows(); r++ {
		i := p.offset + r
		y := origin.Row + ToolbarHeight + r
		if i >= len(p.rows) {
			drawText(d, origin.Col, y, strings.Repeat(" ", width), gott.ColorWhite, false)
			continue
		}
		color := gott.ColorWhite
		if i == p.selected {
			color = gott.ColorBlack
		}
		drawText(d, origin.Col, y, pad(p.formatRow(i, width), width), color, i == p.selected)
	}
}

// formatRow lays out a row as line number, message and evidence.
func (p *Panel) formatRow(i int, width int) string {
	record := p.rows[i]
	marker := " "
	if p.focused && i == p.highlight {
		marker = ">"
	}
	line := fmt.Sprintf("%s%5d  ", marker, record.Line)
	messageWidth := max((width-len(line))/2, 20)
	message := runewidth.Truncate(record.Message, messageWidth-2, "…")
	text := line + pad(message, messageWidth) + strings.TrimSpace(record.Evidence)
	return runewidth.Truncate(text, width, "…")
}

func drawText(d gott.Display, col int, row int, text string, color gott.Color, reversed bool) {
	for _, c := range text {
		if reversed {
			d.SetCellReversed(col, row, c, color)
		} else {
			d.SetCell(col, row, c, color)
		}
		col += max(runewidth.RuneWidth(c), 1)
	}
}

func pad(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func clip(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
