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
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserChecker_Clean(t *testing.T) {
	c := NewParserChecker()

	result, err := c.Check("app.js", "var a = 1;\nfunction f(x) {\n    return x * 2;\n}\n")
	require.NoError(t, err)
	assert.True(t, result.Clean())
}

func TestParserChecker_SyntaxError(t *testing.T) {
	c := NewParserChecker()

	result, err := c.Check("app.js", "var a = 1;\nvar b = ;\n")
	require.NoError(t, err)
	require.False(t, result.Clean())

	first := result.Errors[0]
	assert.Equal(t, 2, first.Line)
	assert.Greater(t, first.Column, 0)
	assert.NotEmpty(t, first.Message)
	assert.Equal(t, "var b = ;", first.Evidence)
}

// lastSemicolon returns the 1-based rune column of the last ';' in line.
func lastSemicolon(line string) int {
	return utf8.RuneCountInString(line[:strings.LastIndex(line, ";")]) + 1
}

func TestParserChecker_ColumnsCountRunes(t *testing.T) {
	line := `var s = "ééé"; var x = ;`
	c := NewParserChecker()

	result, err := c.Check("app.js", "var a = 1;\n"+line+"\n")
	require.NoError(t, err)
	require.False(t, result.Clean())

	first := result.Errors[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, 24, first.Column)
	assert.Equal(t, lastSemicolon(line), first.Column)
	assert.Equal(t, ';', []rune(line)[first.Column-1])
}

func TestParserChecker_HTMLColumnsCountRunes(t *testing.T) {
	line := `<p>é</p><script>var s = "é"; var x = ;</script>`
	c := NewParserChecker()

	result, err := c.Check("index.html", "<html>\n"+line+"\n</html>\n")
	require.NoError(t, err)
	require.False(t, result.Clean())

	first := result.Errors[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, lastSemicolon(line), first.Column)
	assert.Equal(t, ';', []rune(line)[first.Column-1])
}

func TestRuneColumn(t *testing.T) {
	assert.Equal(t, 1, runeColumn("", 1))
	assert.Equal(t, 4, runeColumn("abc;", 4))
	assert.Equal(t, 3, runeColumn("éé;", 5))
	assert.Equal(t, 4, runeColumn("abc", 10), "past the end counts the whole line")
	assert.Equal(t, 0, runeColumn("abc", 0))
}

func TestParserChecker_HTML(t *testing.T) {
	doc := `<html>
<head>
<script>
var ok = 1;
</script>
<script src="vendor.js"></script>
<script type="text/template">{{ not javascript }</script>
<script>
var broken = ;
</script>
</head>
</html>
`
	c := NewParserChecker()

	result, err := c.Check("index.html", doc)
	require.NoError(t, err)
	require.False(t, result.Clean())

	first := result.Errors[0]
	assert.Equal(t, 9, first.Line)
	assert.Equal(t, "var broken = ;", first.Evidence)
}

func TestParserChecker_HTMLWithoutScripts(t *testing.T) {
	c := NewParserChecker()

	result, err := c.Check("about.htm", "<p>no scripts here</p>")
	require.NoError(t, err)
	assert.True(t, result.Clean())
}

func TestExtractScripts(t *testing.T) {
	doc := "<html>\n<body>\n<script>\nvar ok = 1;\n</script>  <script type=\"module\">x</script>\n" +
		"<SCRIPT TYPE=\"text/javascript\">go();</SCRIPT>\n</body>\n</html>"

	blocks, err := ExtractScripts(doc)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	assert.Equal(t, ScriptBlock{Text: "\nvar ok = 1;\n", Line: 3, Col: 9}, blocks[0])
	assert.Equal(t, ScriptBlock{Text: "go();", Line: 6, Col: 32}, blocks[1])
}
