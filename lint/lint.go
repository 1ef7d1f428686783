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

// Package lint runs JavaScript syntax checkers over source text.
//
// A Checker is a black box: it receives the text of a document and reports
// an ordered list of ErrorRecords. Two checkers are provided. ParserChecker
// reports syntax errors found by the goja parser and understands inline
// scripts in HTML documents. ScriptChecker loads a JSLint-compatible
// script into a goja runtime and calls it the way JSLint expects to be
// called.
package lint

import (
	"path/filepath"
	"strings"
	"unicode"
)

// An ErrorRecord is one problem reported by a checker.
type ErrorRecord struct {
	Line     int    // 1-based
	Column   int    // 1-based, 0 if unknown
	Message  string
	Evidence string // offending source text, if any
}

// A Result holds the records of a single check. Entries may be nil when a
// checker reports malformed records; consumers skip them.
type Result struct {
	Errors []*ErrorRecord
}

// Clean reports whether the check found nothing.
func (r *Result) Clean() bool {
	return r == nil || len(r.Errors) == 0
}

// Records returns the non-nil records in order.
func (r *Result) Records() []*ErrorRecord {
	if r == nil {
		return nil
	}
	records := make([]*ErrorRecord, 0, len(r.Errors))
	for _, e := range r.Errors {
		if e != nil {
			records = append(records, e)
		}
	}
	return records
}

// A Checker checks the text of the named file.
type Checker interface {
	Check(filename string, text string) (*Result, error)
}

// Normalize replaces every line that contains only whitespace with an
// empty line. Lines are separated by "\n".
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.IndexFunc(line, isNotSpace) == -1 {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

// isNotSpace matches the JavaScript \S class, which also counts the byte
// order mark as space.
func isNotSpace(r rune) bool {
	return !unicode.IsSpace(r) && r != '\ufeff'
}

// Applies reports whether a file with the given name is checked, comparing
// its extension against extensions without regard to case.
func Applies(filename string, extensions []string) bool {
	ext := filepath.Ext(filename)
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func isHTML(filename string) bool {
	return Applies(filename, []string{".htm", ".html"})
}

// sourceLine returns the 1-based line of text, or "" if there is none.
func sourceLine(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[line-1], "\r")
}
