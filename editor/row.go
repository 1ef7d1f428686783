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
	"strings"

	gott "github.com/timburks/gottlint/types"
)

// A Row is one line of a buffer with a color per character.
type Row struct {
	Text   []rune
	Colors []gott.Color
}

func NewRow(text string) *Row {
	r := &Row{}
	r.setText([]rune(strings.ReplaceAll(text, "\t", "        ")))
	return r
}

func (r *Row) setText(text []rune) {
	r.Text = text
	r.Colors = make([]gott.Color, len(text))
	for j := range r.Colors {
		r.Colors[j] = gott.ColorWhite
	}
}

func (r *Row) Length() int {
	return len(r.Text)
}

func (r *Row) String() string {
	return string(r.Text)
}

func (r *Row) InsertChar(col int, c rune) {
	col = clipToRange(col, 0, len(r.Text))
	line := make([]rune, 0, len(r.Text)+1)
	line = append(line, r.Text[:col]...)
	line = append(line, c)
	line = append(line, r.Text[col:]...)
	r.setText(line)
}

func (r *Row) DeleteChar(col int) rune {
	if len(r.Text) == 0 {
		return 0
	}
	col = clipToRange(col, 0, len(r.Text)-1)
	c := r.Text[col]
	line := make([]rune, 0, len(r.Text)-1)
	line = append(line, r.Text[:col]...)
	r.setText(append(line, r.Text[col+1:]...))
	return c
}

// Split truncates the row at col and returns the remainder as a new row.
func (r *Row) Split(col int) *Row {
	if col >= len(r.Text) {
		return NewRow("")
	}
	after := string(r.Text[col:])
	r.setText(r.Text[:col])
	return NewRow(after)
}

func (r *Row) Join(other *Row) {
	line := make([]rune, 0, len(r.Text)+len(other.Text))
	line = append(line, r.Text...)
	r.setText(append(line, other.Text...))
}

func (r *Row) TextAfter(col int) string {
	if col < 0 || col >= len(r.Text) {
		return ""
	}
	return string(r.Text[col:])
}

func clipToRange(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
