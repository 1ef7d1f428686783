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
	"path/filepath"
	"strings"
)

// A Buffer holds the rows of one document.
type Buffer struct {
	number      int
	fileName    string
	rows        []*Row
	language    string
	highlighted bool
}

func NewBuffer(number int) *Buffer {
	return &Buffer{number: number, rows: make([]*Row, 0)}
}

func (b *Buffer) Number() int {
	return b.number
}

func (b *Buffer) GetFileName() string {
	return b.fileName
}

func (b *Buffer) SetFileName(name string) {
	b.fileName = name
	switch strings.ToLower(filepath.Ext(name)) {
	case ".js", ".mjs", ".cjs":
		b.language = "js"
	default:
		b.language = "txt"
	}
	b.highlighted = false
}

// Path is the file name of the buffer; Text is its contents.
func (b *Buffer) Path() string {
	return b.fileName
}

func (b *Buffer) Text() string {
	return string(b.Bytes())
}

func (b *Buffer) LoadBytes(bytes []byte) {
	lines := strings.Split(string(bytes), "\n")
	b.rows = make([]*Row, 0, len(lines))
	for _, line := range lines {
		b.rows = append(b.rows, NewRow(line))
	}
	b.highlighted = false
}

func (b *Buffer) Bytes() []byte {
	var s strings.Builder
	for i, row := range b.rows {
		if i > 0 {
			s.WriteByte('\n')
		}
		s.WriteString(string(row.Text))
	}
	return []byte(s.String())
}

func (b *Buffer) GetRowCount() int {
	return len(b.rows)
}

func (b *Buffer) GetRowLength(i int) int {
	if i < 0 || i >= len(b.rows) {
		return 0
	}
	return b.rows[i].Length()
}

func (b *Buffer) TextAfter(row, col int) string {
	if row < 0 || row >= len(b.rows) {
		return ""
	}
	return b.rows[row].TextAfter(col)
}

func (b *Buffer) appendBlankRow() {
	b.rows = append(b.rows, NewRow(""))
}

func (b *Buffer) insertRow(i int, row *Row) {
	b.rows = append(b.rows, nil)
	copy(b.rows[i+1:], b.rows[i:])
	b.rows[i] = row
	b.highlighted = false
}

func (b *Buffer) InsertCharacter(row, col int, c rune) {
	b.highlighted = false
	if row < len(b.rows) {
		b.rows[row].InsertChar(col, c)
	}
}

func (b *Buffer) DeleteRow(row int) {
	b.highlighted = false
	if row >= 0 && row < len(b.rows) {
		b.rows = append(b.rows[:row], b.rows[row+1:]...)
	}
}

// DeleteCharacters removes up to count characters at (row, col). When
// joinLines is set, deleting past the end of the row joins the next row.
func (b *Buffer) DeleteCharacters(row int, col int, count int, joinLines bool) string {
	b.highlighted = false
	var deleted strings.Builder
	if row < 0 || row >= len(b.rows) {
		return ""
	}
	for i := 0; i < count; i++ {
		if col < b.rows[row].Length() {
			deleted.WriteRune(b.rows[row].DeleteChar(col))
		} else if joinLines && row < len(b.rows)-1 {
			b.rows[row].Join(b.rows[row+1])
			b.DeleteRow(row + 1)
			deleted.WriteByte('\n')
		}
	}
	return deleted.String()
}

func (b *Buffer) highlight() {
	if b.highlighted {
		return
	}
	if b.language == "js" {
		javaScript.Highlight(b)
	}
	b.highlighted = true
}
