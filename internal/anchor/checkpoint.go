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

// PatternIndexGapForCheckpoints bounds how far apart (in query bytes,
// scaled by pattern size) two anchors may sit and still be considered
// for linking. Keeping it small is what keeps checkpoint wiring
// O(anchors) in practice instead of O(anchors^2).
const PatternIndexGapForCheckpoints = 3

// linkable reports whether b could follow a within one alignment: no
// overlap, a query gap small enough to be worth considering, and a
// lower-bound total penalty that still satisfies the cutoff.
func linkable(a, b *Anchor, patternSize uint64, p opseq.Penalties, cutoff opseq.Cutoff) bool {
	if b.RecordPosition < a.RecordPosition+a.Size || b.QueryPosition < a.QueryPosition+a.Size {
		return false
	}

	refGap := b.RecordPosition - (a.RecordPosition + a.Size)
	qryGap := b.QueryPosition - (a.QueryPosition + a.Size)

	maxGap := patternSize * PatternIndexGapForCheckpoints
	if qryGap > maxGap {
		return false
	}

	var indelPenalty uint64
	if refGap != qryGap {
		diff := refGap - qryGap
		if qryGap > refGap {
			diff = qryGap - refGap
		}
		indelPenalty = p.GapOpen + diff*p.GapExt
	}

	gapLen := refGap
	if qryGap > gapLen {
		gapLen = qryGap
	}

	penalty := a.LeftEstimate.Penalty + indelPenalty + b.RightEstimate.Penalty
	length := a.LeftEstimate.Length + a.Size + gapLen + b.Size + b.RightEstimate.Length

	return cutoff.Passes(penalty, length)
}
