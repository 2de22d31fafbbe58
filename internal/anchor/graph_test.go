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
	"github.com/sigalign-go/sigalign/internal/pattern"
)

func TestGraphFullQuerySeedAlignsWithZeroPenalty(t *testing.T) {
	query := []byte("ACGTACGT")
	record := []byte("ACGTACGT")
	seeds := []pattern.Seed{{QueryPosition: 0, RecordPosition: 0, Size: 8}}
	existence := []bool{true, true}

	penalties := opseq.Penalties{Mismatch: 4, GapOpen: 6, GapExt: 2}
	cutoff := opseq.Cutoff{MinLength: 1, MaxPenaltyPer: 1}
	minPenalty := opseq.MinPenaltyForPattern{Odd: 4, Even: 2}

	g := New(0, uint64(len(record)), uint64(len(query)), 4, seeds, penalties, cutoff, minPenalty, false)
	g.EstimateAndPrune(existence)
	g.Extend(query, record)

	results := g.Results()
	if len(results) != 1 {
		t.Fatalf("expected exactly one alignment, got %d", len(results))
	}
	got := results[0]
	if got.Penalty != 0 {
		t.Fatalf("expected zero penalty for an identical pair, got %d", got.Penalty)
	}
	if got.Length != uint64(len(query)) {
		t.Fatalf("expected length %d, got %d", len(query), got.Length)
	}
	if got.Position.RecordStart != 0 || got.Position.RecordEnd != uint64(len(record)) {
		t.Fatalf("expected full-record coverage, got %+v", got.Position)
	}
	for _, op := range got.Operations {
		if op.Kind != opseq.Match {
			t.Fatalf("expected every operation to be a Match, got %v", op)
		}
	}
}

func TestEstimateAndPruneDropsUnreachableAnchor(t *testing.T) {
	// a seed at the query's start, followed only by missed pattern blocks
	// and held to an impossibly strict cutoff, should be dropped before
	// extension ever runs.
	seeds := []pattern.Seed{{QueryPosition: 0, RecordPosition: 0, Size: 4}}
	existence := []bool{false, false, false, false, false}

	penalties := opseq.Penalties{Mismatch: 4, GapOpen: 6, GapExt: 2}
	cutoff := opseq.Cutoff{MinLength: 1, MaxPenaltyPer: 0.001}
	minPenalty := opseq.MinPenaltyForPattern{Odd: 4, Even: 2}

	g := New(0, 40, 40, 4, seeds, penalties, cutoff, minPenalty, false)
	g.EstimateAndPrune(existence)

	if g.Anchors[0].State != Dropped {
		t.Fatalf("expected the lone anchor to be pruned, got state %v", g.Anchors[0].State)
	}
}
