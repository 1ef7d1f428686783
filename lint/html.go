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
	"io"
	"strings"

	"golang.org/x/net/html"
)

// A ScriptBlock is the body of an inline <script> element.
type ScriptBlock struct {
	Text string
	Line int // 1-based line of the first character of Text
	Col  int // 1-based column of the first character of Text
}

// ExtractScripts returns the inline JavaScript blocks of an HTML document.
// Scripts that load a src or declare a non-JavaScript type are skipped.
func ExtractScripts(doc string) ([]ScriptBlock, error) {
	var blocks []ScriptBlock

	z := html.NewTokenizer(strings.NewReader(doc))
	line, col := 1, 1
	inScript := false

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return blocks, nil
			}
			return nil, z.Err()
		}

		raw := string(z.Raw())
		startLine, startCol := line, col
		for _, r := range raw {
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}

		switch tt {
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			inScript = string(name) == "script" && isJavaScriptTag(z, hasAttr)
		case html.EndTagToken, html.SelfClosingTagToken:
			inScript = false
		case html.TextToken:
			if inScript {
				blocks = append(blocks, ScriptBlock{Text: raw, Line: startLine, Col: startCol})
			}
		}
	}
}

func isJavaScriptTag(z *html.Tokenizer, hasAttr bool) bool {
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		switch string(key) {
		case "src":
			return false
		case "type":
			switch strings.ToLower(strings.TrimSpace(string(val))) {
			case "", "text/javascript", "application/javascript",
				"text/ecmascript", "application/ecmascript":
			default:
				return false
			}
		}
	}
	return true
}
