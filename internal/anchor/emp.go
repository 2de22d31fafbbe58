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

package anchor

import "github.com/sigalign-go/sigalign/internal/opseq"

// estimateFlanks fills both of an Empty anchor's Estimations from the
// pattern-existence bitmap and moves it to Estimated. existence[i] is
// true iff pattern block i had at least one exact hit anywhere in the
// reference. refLen and qryLen are the full record/query lengths.
func estimateFlanks(a *Anchor, refLen, qryLen, patternSize uint64, existence []bool, minPenalty opseq.MinPenaltyForPattern) {
	blockIndex := int(a.QueryPosition / patternSize)

	// left flank: scan backward from just before the anchor.
	leftBlockLen := min64(a.RecordPosition, a.QueryPosition)
	leftQuot := int(leftBlockLen / patternSize)
	leftOdd, leftEven := countMissedRuns(existence, blockIndex-leftQuot+1, blockIndex+1, true, minPenalty)
	a.LeftEstimate = Estimation{
		Penalty: leftOdd + leftEven,
		Length:  leftBlockLen + runCount(existence, blockIndex-leftQuot+1, blockIndex+1, true),
	}

	// right flank: scan forward from just after the anchor.
	hindBlockIndex := blockIndex + int(a.Size/patternSize)
	refBlockLen := refLen - (a.RecordPosition + a.Size)
	qryBlockLen := qryLen - (a.QueryPosition + a.Size)
	rightBlockLen := min64(refBlockLen, qryBlockLen)
	rightQuot := int(rightBlockLen / patternSize)
	rightOdd, rightEven := countMissedRuns(existence, hindBlockIndex+1, hindBlockIndex+rightQuot+1, false, minPenalty)
	a.RightEstimate = Estimation{
		Penalty: rightOdd + rightEven,
		Length:  rightBlockLen + runCount(existence, hindBlockIndex+1, hindBlockIndex+rightQuot+1, false),
	}

	a.State = Estimated
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// countMissedRuns walks existence[lo:hi] (reversed when reverse is true)
// and returns the odd/even penalty contribution of alternating runs of
// consecutive missed (false) blocks, exactly as EmpKmer.odd/.even weight
// odd- and even-length runs differently.
func countMissedRuns(existence []bool, lo, hi int, reverse bool, mp opseq.MinPenaltyForPattern) (odd, even uint64) {
	lo, hi = clampRange(lo, hi, len(existence))
	if lo >= hi {
		return 0, 0
	}
	var oddCount, evenCount uint64
	previousOdd := false
	visit := func(exist bool) {
		if !exist {
			if previousOdd {
				evenCount++
				previousOdd = false
			} else {
				oddCount++
				previousOdd = true
			}
		} else {
			previousOdd = false
		}
	}
	if reverse {
		for i := hi - 1; i >= lo; i-- {
			visit(existence[i])
		}
	} else {
		for i := lo; i < hi; i++ {
			visit(existence[i])
		}
	}
	return oddCount * mp.Odd, evenCount * mp.Even
}

// runCount returns how many blocks in the same scan were missed, i.e.
// the block-count term added to Estimation.Length alongside block_len.
func runCount(existence []bool, lo, hi int, reverse bool) uint64 {
	lo, hi = clampRange(lo, hi, len(existence))
	if lo >= hi {
		return 0
	}
	var n uint64
	for i := lo; i < hi; i++ {
		if !existence[i] {
			n++
		}
	}
	_ = reverse // direction doesn't change the count, only the run parity above
	return n
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > n {
		lo = n
	}
	if hi < 0 {
		hi = 0
	}
	return lo, hi
}
