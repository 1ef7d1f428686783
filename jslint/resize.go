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

// A Resize is one drag of the panel toolbar. Pointer moves only record the
// requested height; Frame applies it, so a burst of moves between two frames
// costs one relayout.
type Resize struct {
	c           *Controller
	startY      int
	startHeight int
	newHeight   int
	pending     bool
	ended       bool
}

// BeginResize starts a drag at pointer row y. The drag starts from the
// rows the panel has on screen, which can be fewer than its stored height.
func (c *Controller) BeginResize(y int) *Resize {
	if c.resize != nil {
		c.resize.End()
	}
	start := c.panel.Height()
	if rows := c.panel.Rect().Size.Rows; rows > 0 && rows < start {
		start = rows
	}
	r := &Resize{c: c, startY: y, startHeight: start}
	r.newHeight = r.startHeight
	c.resize = r
	return r
}

// Move records the pointer at row y. Moving up grows the panel.
func (r *Resize) Move(y int) {
	if r.ended {
		return
	}
	r.newHeight = r.startHeight + (r.startY - y)
	r.pending = true
}

// Frame applies the most recent height, if one is pending.
func (r *Resize) Frame() {
	if r.ended || !r.pending {
		return
	}
	r.pending = false
	r.c.setHeight(r.newHeight)
}

// End applies any pending height and finishes the drag.
func (r *Resize) End() {
	r.Frame()
	r.ended = true
	if r.c.resize == r {
		r.c.resize = nil
	}
}

// Frame advances the drag in progress. The main loop calls it once per
// iteration.
func (c *Controller) Frame() {
	if c.resize != nil {
		c.resize.Frame()
	}
}
