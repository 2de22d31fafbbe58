// Copyright © 2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package wavefront

import "sync"

const componentBaseSize = 64

var componentGrowSlice = make([]*row, componentBaseSize)

// component is one of the M/I/D matrices: a list of rows indexed by
// score s. A nil entry means no row has been opened for that score yet.
type component struct {
	rows []*row
}

var componentPool = sync.Pool{New: func() interface{} {
	return &component{rows: make([]*row, componentBaseSize)}
}}

func newComponent() *component {
	c := componentPool.Get().(*component)
	c.rows = c.rows[:componentBaseSize]
	for i := range c.rows {
		c.rows[i] = nil
	}
	return c
}

func recycleComponent(c *component) {
	if c == nil {
		return
	}
	for i, r := range c.rows {
		if r != nil {
			recycleRow(r)
			c.rows[i] = nil
		}
	}
	componentPool.Put(c)
}

func (c *component) grow(need int) {
	for need >= len(c.rows) {
		c.rows = append(c.rows, componentGrowSlice...)
	}
}

func (c *component) hasScore(s int) bool {
	return s >= 0 && s < len(c.rows) && c.rows[s] != nil
}

func (c *component) rowAt(s int) *row {
	if s < 0 || s >= len(c.rows) || c.rows[s] == nil {
		return nil
	}
	return c.rows[s]
}

func (c *component) set(s int, k int, offset uint32, bt uint32) {
	c.grow(s)
	r := c.rows[s]
	if r == nil {
		r = newRow()
		c.rows[s] = r
	}
	r.set(k, offset, bt)
}

func (c *component) get(s int, k int) (uint32, uint32, bool) {
	r := c.rowAt(s)
	if r == nil {
		return 0, 0, false
	}
	return r.get(k)
}
