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

func TestLinkableRejectsOverlap(t *testing.T) {
	a := &Anchor{RecordPosition: 0, QueryPosition: 0, Size: 10}
	b := &Anchor{RecordPosition: 5, QueryPosition: 12, Size: 4}
	p := opseq.Penalties{Mismatch: 4, GapOpen: 6, GapExt: 2}
	cutoff := opseq.Cutoff{MinLength: 1, MaxPenaltyPer: 1}
	if linkable(a, b, 4, p, cutoff) {
		t.Fatalf("expected overlapping record ranges to be unlinkable")
	}
}

func TestLinkableRejectsGapTooLarge(t *testing.T) {
	a := &Anchor{RecordPosition: 0, QueryPosition: 0, Size: 4}
	b := &Anchor{RecordPosition: 100, QueryPosition: 100, Size: 4}
	p := opseq.Penalties{Mismatch: 4, GapOpen: 6, GapExt: 2}
	cutoff := opseq.Cutoff{MinLength: 1, MaxPenaltyPer: 1}
	if linkable(a, b, 4, p, cutoff) {
		t.Fatalf("expected a gap far beyond patternSize*PatternIndexGapForCheckpoints to be unlinkable")
	}
}

func TestLinkableAcceptsAdjacentNoGap(t *testing.T) {
	a := &Anchor{RecordPosition: 0, QueryPosition: 0, Size: 4}
	b := &Anchor{RecordPosition: 4, QueryPosition: 4, Size: 4}
	p := opseq.Penalties{Mismatch: 4, GapOpen: 6, GapExt: 2}
	cutoff := opseq.Cutoff{MinLength: 1, MaxPenaltyPer: 1}
	if !linkable(a, b, 4, p, cutoff) {
		t.Fatalf("expected two directly adjacent anchors under a lenient cutoff to be linkable")
	}
}
