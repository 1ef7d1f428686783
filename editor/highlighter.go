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
	"regexp"
	"unicode"
	"unicode/utf8"

	gott "github.com/timburks/gottlint/types"
)

const (
	colorKeyword     gott.Color = 0x70
	colorNumber      gott.Color = 0x83
	colorPunctuation gott.Color = 0x71
	colorString      gott.Color = 0xe0
	colorComment     gott.Color = 0xf8
)

var javaScript = NewJavaScriptHighlighter()

// JavaScriptHighlighter colors rows of JavaScript source. Each row is
// colored on its own; block comments that span rows are not tracked.
type JavaScriptHighlighter struct {
	punctuationPattern  *regexp.Regexp
	commentPattern      *regexp.Regexp
	quotedStringPattern *regexp.Regexp
	keywordPattern      *regexp.Regexp
	numberPattern       *regexp.Regexp
}

func NewJavaScriptHighlighter() *JavaScriptHighlighter {
	h := &JavaScriptHighlighter{}
	h.punctuationPattern = regexp.MustCompile(`[(),:=\[\]{}+\-*<>;!&|?.]`)
	h.commentPattern = regexp.MustCompile(`//.*$|/\*.*?(\*/|$)`)
	h.quotedStringPattern = regexp.MustCompile(`"(\\.|[^"\\])*"|'(\\.|[^'\\])*'|` + "`[^`]*`")
	h.keywordPattern = regexp.MustCompile(`break|case|catch|class|const|continue|debugger|default|delete|do|else|export|extends|finally|for|function|if|import|in|instanceof|let|new|return|super|switch|this|throw|try|typeof|var|void|while|with|yield|null|undefined|true|false`)
	h.keywordPattern.Longest()
	h.numberPattern = regexp.MustCompile(`0[xX][0-9a-fA-F]+|([0-9]+(\.[0-9]*)?)|(([0-9]*\.)?[0-9]+)`)
	return h
}

func (h *JavaScriptHighlighter) Highlight(b *Buffer) {
	for _, r := range b.rows {
		for j := range r.Colors {
			r.Colors[j] = gott.ColorWhite
		}
		line := string(r.Text)
		for _, m := range h.keywordPattern.FindAllStringIndex(line, -1) {
			if !checkalphanum(line, m[0], m[1]) {
				paint(r, line, m, colorKeyword)
			}
		}
		for _, m := range h.numberPattern.FindAllStringIndex(line, -1) {
			if !checkalphanum(line, m[0], m[1]) {
				paint(r, line, m, colorNumber)
			}
		}
		for _, m := range h.punctuationPattern.FindAllStringIndex(line, -1) {
			paint(r, line, m, colorPunctuation)
		}
		for _, m := range h.quotedStringPattern.FindAllStringIndex(line, -1) {
			paint(r, line, m, colorString)
		}
		for _, m := range h.commentPattern.FindAllStringIndex(line, -1) {
			paint(r, line, m, colorComment)
		}
	}
}

// paint colors the characters of row r covered by the byte range m of line.
func paint(r *Row, line string, m []int, color gott.Color) {
	start := utf8.RuneCountInString(line[:m[0]])
	end := start + utf8.RuneCountInString(line[m[0]:m[1]])
	for k := start; k < end && k < len(r.Colors); k++ {
		r.Colors[k] = color
	}
}

// checkalphanum reports whether the match [start,end) touches a letter or
// digit, which means it is part of a longer identifier.
func checkalphanum(line string, start, end int) bool {
	if start > 0 {
		c, _ := utf8.DecodeLastRuneInString(line[:start])
		if isIdentifierRune(c) {
			return true
		}
	}
	if end < len(line) {
		c, _ := utf8.DecodeRuneInString(line[end:])
		if isIdentifierRune(c) {
			return true
		}
	}
	return false
}

func isIdentifierRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '$'
}
