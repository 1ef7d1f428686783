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
	"math"
	"os"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// ScriptChecker runs a JSLint-compatible script. The script must define a
// global function that is called as fn(source, null), returns true when the
// source is clean and otherwise leaves its findings in fn.errors as objects
// with line, character, reason and evidence fields.
type ScriptChecker struct {
	vm       *goja.Runtime
	fn       goja.Callable
	lint     *goja.Object
	function string
	timeout  time.Duration
}

// LoadScriptChecker reads the script at path and prepares a checker that
// calls function.
func LoadScriptChecker(path string, function string, timeout time.Duration) (*ScriptChecker, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checker script: %w", err)
	}
	return NewScriptChecker(path, string(src), function, timeout)
}

// NewScriptChecker evaluates src and prepares a checker that calls function.
func NewScriptChecker(name string, src string, function string, timeout time.Duration) (*ScriptChecker, error) {
	vm := goja.New()
	if _, err := vm.RunScript(name, src); err != nil {
		return nil, fmt.Errorf("load checker script %s: %w", name, err)
	}

	v := vm.Get(function)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, fmt.Errorf("checker script %s does not define %s", name, function)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("checker script %s: %s is not a function", name, function)
	}

	return &ScriptChecker{
		vm:       vm,
		fn:       fn,
		lint:     v.ToObject(vm),
		function: function,
		timeout:  timeout,
	}, nil
}

func (c *ScriptChecker) Check(filename string, text string) (*Result, error) {
	var (
		mu   sync.Mutex
		done bool
	)
	if c.timeout > 0 {
		timer := time.AfterFunc(c.timeout, func() {
			mu.Lock()
			defer mu.Unlock()
			if !done {
				c.vm.Interrupt("timeout")
			}
		})
		defer timer.Stop()
	}

	ret, err := c.fn(goja.Undefined(), c.vm.ToValue(text), goja.Null())

	mu.Lock()
	done = true
	mu.Unlock()
	c.vm.ClearInterrupt()

	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return nil, fmt.Errorf("%s timed out after %s on %s", c.function, c.timeout, filename)
		}
		return nil, fmt.Errorf("%s failed on %s: %w", c.function, filename, err)
	}

	if ret.ToBoolean() {
		return &Result{}, nil
	}
	return c.collect(), nil
}

// collect converts fn.errors into a Result. Entries that are not objects
// become nil records.
func (c *ScriptChecker) collect() *Result {
	result := &Result{}

	v := c.lint.Get("errors")
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return result
	}
	items, ok := v.Export().([]interface{})
	if !ok {
		return result
	}

	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			result.Errors = append(result.Errors, nil)
			continue
		}
		result.Errors = append(result.Errors, &ErrorRecord{
			Line:     exportedInt(m["line"]),
			Column:   exportedInt(m["character"]),
			Message:  exportedString(m["reason"]),
			Evidence: exportedString(m["evidence"]),
		})
	}
	return result
}

func exportedInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int(n)
	default:
		return 0
	}
}

func exportedString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}
