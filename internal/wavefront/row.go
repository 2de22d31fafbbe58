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

import (
	"math"
	"sync"
)

// rowBaseSize is the base length of a row's offset slice.
const rowBaseSize = 256

var rowGrowSlice = make([]uint32, rowBaseSize)

// row holds, for one (component, score) pair, the furthest-reaching
// offset for every diagonal k currently in play, zig-zag indexed exactly
// as the base WFA implementation does it:
//
//	index: 0,  1,  2,  3,  4,  5,  6
//	k:     0, -1,  1, -2,  2, -3,  3
//
// A zero entry means "no offset recorded for that k".
type row struct {
	lo, hi  int
	offsets []uint32
}

var rowPool = sync.Pool{New: func() interface{} {
	return &row{offsets: make([]uint32, rowBaseSize)}
}}

func newRow() *row {
	r := rowPool.Get().(*row)
	r.lo = math.MaxInt
	r.hi = math.MinInt
	r.offsets = r.offsets[:rowBaseSize]
	clear(r.offsets)
	return r
}

func recycleRow(r *row) {
	if r != nil {
		rowPool.Put(r)
	}
}

func k2i(k int) int {
	if k >= 0 {
		return k << 1
	}
	return ((-k) << 1) - 1
}

func (r *row) grow(need int) {
	for need >= len(r.offsets) {
		r.offsets = append(r.offsets, rowGrowSlice...)
	}
}

func (r *row) set(k int, offset uint32, bt uint32) {
	i := k2i(k)
	r.grow(i)
	r.offsets[i] = packOffset(offset, bt)
	r.lo = min(r.lo, k)
	r.hi = max(r.hi, k)
}

func (r *row) increase(k int, delta uint32) {
	i := k2i(k)
	r.grow(i)
	r.offsets[i] += delta << btBits
}

// get returns the offset and backtrace tag recorded for k, or ok=false.
func (r *row) get(k int) (offset uint32, bt uint32, ok bool) {
	if k < r.lo || k > r.hi {
		return 0, 0, false
	}
	packed := r.offsets[k2i(k)]
	if packed == 0 {
		return 0, 0, false
	}
	offset, bt = unpackOffset(packed)
	return offset, bt, true
}
