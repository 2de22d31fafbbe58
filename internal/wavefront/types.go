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

// Package wavefront implements a dropout wave-front alignment: a
// gap-affine, O(ns)-ish edit-distance search that tracks the furthest
// reachable offset per diagonal k at every score s, and aborts as soon as
// s exceeds a caller-supplied budget instead of searching to completion.
// It only ever aligns in the forward direction; a caller wanting the
// "hind" (leftward) extension passes already-reversed slices.
package wavefront

// backtrace type, packed into the low bits of every stored offset exactly
// as the base WFA implementation packs its own five-way tag.
const (
	btInsertOpen uint32 = iota + 1
	btInsertExt
	btDeleteOpen
	btDeleteExt
	btMismatch
	btMatch // seed offset at s=0, not reached by any edit
)

const btBits uint32 = 3
const btMask uint32 = (1 << btBits) - 1

func packOffset(offset uint32, bt uint32) uint32 {
	return offset<<btBits | bt
}

func unpackOffset(packed uint32) (offset uint32, bt uint32) {
	return packed >> btBits, packed & btMask
}
