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
package types

// Editor modes
const (
	ModeEdit          = 0
	ModeInsert        = 1
	ModeCommand       = 2
	ModeSearchForward = 3
	ModeLisp          = 4
	ModePanel         = 5
	ModeQuit          = 9999
)

// Move directions
const (
	MoveUp    = 0
	MoveDown  = 1
	MoveRight = 2
	MoveLeft  = 3
)

// Insert positions
const (
	InsertAtCursor             = 0
	InsertAfterCursor          = 1
	InsertAtStartOfLine        = 2
	InsertAfterEndOfLine       = 3
	InsertAtNewLineBelowCursor = 4
	InsertAtNewLineAboveCursor = 5
)

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}

type Rect struct {
	Origin Point
	Size   Size
}

// Contains reports whether p falls inside r.
func (r Rect) Contains(p Point) bool {
	return p.Row >= r.Origin.Row && p.Row < r.Origin.Row+r.Size.Rows &&
		p.Col >= r.Origin.Col && p.Col < r.Origin.Col+r.Size.Cols
}

// Colors are indices into the 256-color terminal palette.
type Color int

const (
	ColorBlack   Color = 0x01
	ColorRed     Color = 0x02
	ColorGreen   Color = 0x03
	ColorYellow  Color = 0x04
	ColorBlue    Color = 0x05
	ColorMagenta Color = 0x06
	ColorCyan    Color = 0x07
	ColorWhite   Color = 0xff
)

// A Display is a grid of cells that can be drawn by windows and panels.
type Display interface {
	SetCell(col int, row int, c rune, color Color)
	SetCellReversed(col int, row int, c rune, color Color)
	SetCursor(position Point)
	HideCursor()
}

// Event types
const (
	EventKey    = 0
	EventResize = 1
	EventMouse  = 2
	EventError  = 3
	EventNone   = 4
)

type Key int

const (
	KeyUnsupported Key = iota
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyBackspace2
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlL
	KeyCtrlN
	KeyCtrlP
	KeyCtrlU
	KeyEnd
	KeyEnter
	KeyEsc
	KeyHome
	KeyPgdn
	KeyPgup
	KeySpace
	KeyTab
)

type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseRelease
	MouseWheelUp
	MouseWheelDown
)

// An Event is a key press, mouse action or terminal resize.
type Event struct {
	Type   int
	Key    Key
	Ch     rune
	Mouse  MouseButton
	Motion bool // mouse moved with a button held down
	X      int
	Y      int
}

// The Editor is the interface the commander uses to edit documents.
type Editor interface {
	GetCursor() Point
	SetCursor(cursor Point)
	MoveCursor(direction int, multiplier int)
	MoveCursorToLine(line int)
	MoveToBeginningOfLine()
	MoveToEndOfLine()
	PageUp(multiplier int)
	PageDown(multiplier int)
	KeepCursorInRow()

	BeginInsert(position int)
	InsertChar(c rune)
	BackspaceChar() rune
	DeleteCharactersAtCursor(multiplier int) string
	DeleteRowsAtCursor(multiplier int) string
	PerformSearchForward(text string)

	ReadFile(path string) error
	WriteFile(path string) error
	GetFileName() string
	Bytes() []byte
	SelectBuffer(number int) error
	ListBuffers() string

	Focus()
	Blur()
	IsFocused() bool
}

// A Document is the text of an open file.
type Document interface {
	Text() string
	Path() string
}
