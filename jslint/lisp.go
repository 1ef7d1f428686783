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

package jslint

import (
	"errors"

	"github.com/steelseries/golisp"
)

// current is the controller the lisp primitives act on.
var current *Controller

func setCurrent(c *Controller) {
	current = c
}

func init() {
	golisp.MakePrimitiveFunction("jslint-toggle", "0", toggleImpl)
	golisp.MakePrimitiveFunction("jslint-enabled", "0", enabledImpl)
	golisp.MakePrimitiveFunction("jslint-enable", "1", enableImpl)
	golisp.MakePrimitiveFunction("jslint-run", "0", runImpl)
}

var errNoController = errors.New("jslint is not loaded")

func toggleImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if current == nil {
		return nil, errNoController
	}
	if err := current.Toggle(); err != nil {
		return nil, err
	}
	return golisp.BooleanWithValue(current.Enabled()), nil
}

func enabledImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if current == nil {
		return nil, errNoController
	}
	return golisp.BooleanWithValue(current.Enabled()), nil
}

func enableImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if current == nil {
		return nil, errNoController
	}
	if err := current.SetEnabled(golisp.BooleanValue(golisp.Car(args))); err != nil {
		return nil, err
	}
	return golisp.BooleanWithValue(current.Enabled()), nil
}

// runImpl checks the current document and returns the number of problems.
func runImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if current == nil {
		return nil, errNoController
	}
	if err := current.Run(); err != nil {
		return nil, err
	}
	return golisp.IntegerWithValue(int64(current.panel.Len())), nil
}
