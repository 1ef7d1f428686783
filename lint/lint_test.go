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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "untouched", in: "var a = 1;\nvar b = 2;", want: "var a = 1;\nvar b = 2;"},
		{name: "spaces", in: "a;\n    \nb;", want: "a;\n\nb;"},
		{name: "tabs and spaces", in: "a;\n\t \t\nb;", want: "a;\n\nb;"},
		{name: "carriage return", in: "a;\r\n  \r\nb;", want: "a;\r\n\nb;"},
		{name: "trailing blank", in: "a;\n   ", want: "a;\n"},
		{name: "indented code kept", in: "  a;\n\tb;", want: "  a;\n\tb;"},
		{name: "empty", in: "", want: ""},
		{name: "byte order mark", in: "\ufeff\nx", want: "\nx"},
		{name: "byte order mark and spaces", in: "a;\n \ufeff \u00a0\nb;", want: "a;\n\nb;"},
		{name: "byte order mark before code", in: "\ufeffa;", want: "\ufeffa;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestApplies(t *testing.T) {
	exts := []string{".js", ".htm", ".html"}

	assert.True(t, Applies("app.js", exts))
	assert.True(t, Applies("/src/INDEX.HTML", exts))
	assert.True(t, Applies("page.Htm", exts))
	assert.False(t, Applies("main.go", exts))
	assert.False(t, Applies("app.json", exts))
	assert.False(t, Applies("js", exts))
	assert.False(t, Applies("", exts))
}

func TestResult(t *testing.T) {
	var nilResult *Result
	assert.True(t, nilResult.Clean())
	assert.Empty(t, nilResult.Records())

	assert.True(t, (&Result{}).Clean())

	a := &ErrorRecord{Line: 1, Message: "a"}
	b := &ErrorRecord{Line: 2, Message: "b"}
	r := &Result{Errors: []*ErrorRecord{a, nil, b, nil}}
	assert.False(t, r.Clean())
	assert.Equal(t, []*ErrorRecord{a, b}, r.Records())
}
