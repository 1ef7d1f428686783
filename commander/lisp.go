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

package commander

import (
	"errors"
	"fmt"

	"github.com/steelseries/golisp"
)

// current is the commander that the editor primitives act on. golisp keeps
// primitives in a single global table.
var current *Commander

func setCurrent(c *Commander) {
	current = c
}

func init() {
	golisp.MakePrimitiveFunction("current-file", "0", currentFileImpl)
	golisp.MakePrimitiveFunction("goto-line", "1", gotoLineImpl)
	golisp.MakePrimitiveFunction("message", "1", messageImpl)
	golisp.MakePrimitiveFunction("exec", "1", execImpl)
}

func currentFileImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if current == nil {
		return nil, errors.New("current-file: no editor")
	}
	return golisp.StringWithValue(current.editor.GetFileName()), nil
}

func gotoLineImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if current == nil {
		return nil, errors.New("goto-line: no editor")
	}
	val := golisp.Car(args)
	if !golisp.IntegerP(val) {
		return nil, errors.New("goto-line requires an integer argument")
	}
	current.editor.MoveCursorToLine(int(golisp.IntegerValue(val)))
	return val, nil
}

func messageImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if current == nil {
		return nil, errors.New("message: no editor")
	}
	val := golisp.Car(args)
	if golisp.StringP(val) {
		current.message = golisp.StringValue(val)
	} else {
		current.message = golisp.String(val)
	}
	return val, nil
}

func execImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if current == nil {
		return nil, errors.New("exec: no editor")
	}
	val := golisp.Car(args)
	if !golisp.StringP(val) {
		return nil, errors.New("exec requires a command id string")
	}
	cmd := current.Command(golisp.StringValue(val))
	if cmd == nil {
		return nil, fmt.Errorf("exec: no command %q", golisp.StringValue(val))
	}
	cmd.Execute()
	return golisp.BooleanWithValue(cmd.Checked()), nil
}

// ParseEval evaluates a lisp expression and returns its printed value or
// the error.
func (c *Commander) ParseEval(command string) string {
	setCurrent(c)
	value, err := golisp.ParseAndEval(command)
	if err != nil {
		c.logger.Warn().Err(err).Str("expr", command).Msg("lisp error")
		return err.Error()
	}
	c.logger.Debug().Str("expr", command).Str("value", golisp.String(value)).Msg("lisp eval")
	return golisp.String(value)
}
