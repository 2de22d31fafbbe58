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

package memory

import "bytes"

// Index is a brute-force FMIndex over a fixed joined sequence: Locate
// scans linearly rather than walking a suffix structure. Fine for the
// small fixtures this package targets; never built on the scale a real
// FM-index handles.
type Index struct {
	joined []byte
}

// NewIndex builds an Index over a Provider's current joined sequence.
// The Provider must not be modified afterward — the Index keeps no
// independent copy.
func NewIndex(p *Provider) *Index {
	joined, _, _ := p.JoinedSequence()
	return &Index{joined: joined}
}

// Locate implements sigalign.FMIndex.
func (idx *Index) Locate(pattern []byte) ([]uint64, error) {
	if len(pattern) == 0 {
		return nil, nil
	}
	var hits []uint64
	start := 0
	for {
		i := bytes.Index(idx.joined[start:], pattern)
		if i < 0 {
			break
		}
		hits = append(hits, uint64(start+i))
		start += i + 1
		if start >= len(idx.joined) {
			break
		}
	}
	return hits, nil
}
