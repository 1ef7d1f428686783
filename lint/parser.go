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
package lint

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dop251/goja/parser"
)

// ParserChecker reports the syntax errors found by the goja parser.
type ParserChecker struct{}

func NewParserChecker() *ParserChecker {
	return &ParserChecker{}
}

func (c *ParserChecker) Check(filename string, text string) (*Result, error) {
	lines := strings.Split(text, "\n")
	result := &Result{}

	if !isHTML(filename) {
		result.Errors = c.checkSource(text, ScriptBlock{Line: 1, Col: 1}, lines)
		return result, nil
	}

	blocks, err := ExtractScripts(text)
	if err != nil {
		return nil, fmt.Errorf("extract scripts from %s: %w", filename, err)
	}
	for _, block := range blocks {
		result.Errors = append(result.Errors, c.checkSource(block.Text, block, lines)...)
	}
	return result, nil
}

// checkSource parses src, which starts at block's position in the document
// whose lines are given, and returns records in document coordinates.
func (c *ParserChecker) checkSource(src string, block ScriptBlock, lines []string) []*ErrorRecord {
	_, err := parser.ParseFile(nil, "", src, 0)
	if err == nil {
		return nil
	}

	var list parser.ErrorList
	if !errors.As(err, &list) {
		var single *parser.Error
		if !errors.As(err, &single) {
			return []*ErrorRecord{{Line: block.Line, Column: block.Col, Message: err.Error()}}
		}
		list = parser.ErrorList{single}
	}

	srcLines := strings.Split(src, "\n")
	records := make([]*ErrorRecord, 0, len(list))
	for _, e := range list {
		if e == nil {
			continue
		}
		line := block.Line + e.Position.Line - 1
		col := e.Position.Column
		if e.Position.Line >= 1 && e.Position.Line <= len(srcLines) {
			col = runeColumn(srcLines[e.Position.Line-1], col)
		}
		if e.Position.Line == 1 {
			col += block.Col - 1
		}
		records = append(records, &ErrorRecord{
			Line:     line,
			Column:   col,
			Message:  e.Message,
			Evidence: sourceLine(lines, line),
		})
	}
	return records
}

// runeColumn converts a 1-based byte column in line to a 1-based rune
// column, which is what the editor cursor counts.
func runeColumn(line string, col int) int {
	if col < 1 {
		return col
	}
	return utf8.RuneCountInString(line[:min(col-1, len(line))]) + 1
}
