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

import (
	"testing"

	"github.com/sigalign-go/sigalign/internal/opseq"
)

func TestEstimateFlanksAllPatternsFound(t *testing.T) {
	existence := []bool{true, true, true, true} // 4 blocks of size 4 => query/ref len 16
	minPenalty := opseq.MinPenaltyForPattern{Odd: 4, Even: 2}

	a := &Anchor{RecordPosition: 8, QueryPosition: 8, Size: 4}
	estimateFlanks(a, 16, 16, 4, existence, minPenalty)

	if a.State != Estimated {
		t.Fatalf("expected State == Estimated, got %v", a.State)
	}
	if a.LeftEstimate != (Estimation{Penalty: 0, Length: 8}) {
		t.Fatalf("LeftEstimate = %+v, want {0 8}", a.LeftEstimate)
	}
	if a.RightEstimate != (Estimation{Penalty: 0, Length: 4}) {
		t.Fatalf("RightEstimate = %+v, want {0 4}", a.RightEstimate)
	}
}

func TestEstimateFlanksOneMissedBlock(t *testing.T) {
	// block 1 (query bytes [4,8)) was never found anywhere in the reference.
	existence := []bool{true, false, true, true}
	minPenalty := opseq.MinPenaltyForPattern{Odd: 1, Even: 1}

	a := &Anchor{RecordPosition: 8, QueryPosition: 8, Size: 4}
	estimateFlanks(a, 16, 16, 4, existence, minPenalty)

	if a.LeftEstimate.Penalty != 1 {
		t.Fatalf("LeftEstimate.Penalty = %d, want 1 (one odd-length missed run)", a.LeftEstimate.Penalty)
	}
	if a.LeftEstimate.Length != 9 {
		t.Fatalf("LeftEstimate.Length = %d, want 9 (8 block bytes + 1 missed block)", a.LeftEstimate.Length)
	}
}

func TestCountMissedRunsAlternatesOddEven(t *testing.T) {
	// two consecutive misses: first counts odd, second counts even.
	existence := []bool{false, false}
	mp := opseq.MinPenaltyForPattern{Odd: 3, Even: 5}
	odd, even := countMissedRuns(existence, 0, 2, false, mp)
	if odd != 3 || even != 5 {
		t.Fatalf("countMissedRuns = (%d,%d), want (3,5)", odd, even)
	}
}

func TestClampRangeHandlesOutOfBounds(t *testing.T) {
	lo, hi := clampRange(-5, 100, 4)
	if lo != 0 || hi != 4 {
		t.Fatalf("clampRange = (%d,%d), want (0,4)", lo, hi)
	}
	lo, hi = clampRange(10, 20, 4)
	if lo != 4 || hi != 4 {
		t.Fatalf("clampRange past the end = (%d,%d), want (4,4)", lo, hi)
	}
}
