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
	"encoding/binary"
	"math/bits"
)

var be = binary.BigEndian

// consecutiveMatches returns how many consecutive bytes ref[h:] and
// qry[v:] share before the first mismatch or the end of either slice. It
// compares 8 bytes at a time via a XOR-and-count-leading-zero-bytes
// trick, falling back to a byte-wise tail once fewer than 8 bytes remain
// on either side.
func consecutiveMatches(ref, qry []byte, v, h int) int {
	lenQ, lenR := len(qry), len(ref)
	n := 0
	for v+8 <= lenQ && h+8 <= lenR {
		q8, r8 := be.Uint64(qry[v:v+8]), be.Uint64(ref[h:h+8])
		if q8 == r8 {
			v += 8
			h += 8
			n += 8
			continue
		}
		n += bits.LeadingZeros64(q8^r8) >> 3
		return n
	}
	for v < lenQ && h < lenR && qry[v] == ref[h] {
		v++
		h++
		n++
	}
	return n
}
