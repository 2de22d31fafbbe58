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
	"testing"

	"github.com/sigalign-go/sigalign/internal/opseq"
)

var testPenalties = opseq.Penalties{Mismatch: 4, GapOpen: 6, GapExt: 2}

func TestAlignIdentical(t *testing.T) {
	ref := []byte("ACGTACGT")
	qry := []byte("ACGTACGT")
	f := Align(ref, qry, testPenalties, 10)
	defer Recycle(f)

	if !f.Reached {
		t.Fatalf("expected Reached, got Dropped at score %d", f.Score)
	}
	if f.Score != 0 {
		t.Fatalf("expected score 0 for identical sequences, got %d", f.Score)
	}

	ops := Backtrace(f)
	matches := 0
	for _, op := range ops {
		if op.Kind != opseq.Match {
			t.Fatalf("unexpected operation on identical sequences: %v", op)
		}
		matches++
	}
	if matches != len(ref) {
		t.Fatalf("expected %d matches, got %d", len(ref), matches)
	}
}

func TestAlignSingleMismatch(t *testing.T) {
	ref := []byte("ACGAACGT")
	qry := []byte("ACGTACGT")
	f := Align(ref, qry, testPenalties, 10)
	defer Recycle(f)

	if !f.Reached {
		t.Fatalf("expected Reached, got Dropped at score %d", f.Score)
	}
	if f.Score != int(testPenalties.Mismatch) {
		t.Fatalf("expected score %d, got %d", testPenalties.Mismatch, f.Score)
	}

	ops := Backtrace(f)
	var matches, substs int
	for _, op := range ops {
		switch op.Kind {
		case opseq.Match:
			matches++
		case opseq.Subst:
			substs++
		default:
			t.Fatalf("unexpected operation: %v", op)
		}
	}
	if substs != 1 {
		t.Fatalf("expected exactly one substitution, got %d", substs)
	}
	if matches != len(ref)-1 {
		t.Fatalf("expected %d matches, got %d", len(ref)-1, matches)
	}
}

func TestAlignDropsOutWithinBudget(t *testing.T) {
	ref := []byte("AAAA")
	qry := []byte("TTTT")
	f := Align(ref, qry, testPenalties, 0)
	defer Recycle(f)

	if f.Reached {
		t.Fatalf("expected Dropped, got Reached at score %d", f.Score)
	}
	if !f.Dropped {
		t.Fatalf("expected Dropped to be set")
	}
	if f.Score != 0 {
		t.Fatalf("expected Score to equal the exhausted budget (0), got %d", f.Score)
	}
}

func TestConsecutiveMatches(t *testing.T) {
	ref := []byte("ACGTACGTAAAA")
	qry := []byte("ACGTACGTTTTT")
	if n := consecutiveMatches(ref, qry, 0, 0); n != 8 {
		t.Fatalf("expected 8 consecutive matches, got %d", n)
	}
	if n := consecutiveMatches(ref, qry, 8, 8); n != 0 {
		t.Fatalf("expected 0 consecutive matches at the divergence point, got %d", n)
	}
}

func TestCaptureAndAlignSeeded(t *testing.T) {
	// A search dropped at score 0 over completely mismatched sequences can
	// be captured and resumed against a fresh, unrelated pair: AlignSeeded
	// replays the captured cells (here the single M cell at k=0, offset 0)
	// without re-validating them, then extends them against the new
	// ref/qry, so an identical pair is reached at the captured score.
	dropped := Align([]byte("AAAA"), []byte("TTTT"), testPenalties, 0)
	seed := Capture(dropped)
	Recycle(dropped)

	f := AlignSeeded(seed, []byte("AAAA"), []byte("AAAA"), testPenalties, 10)
	defer Recycle(f)
	if !f.Reached || f.Score != 0 {
		t.Fatalf("expected the seeded front to reach at score 0, got reached=%v score=%d", f.Reached, f.Score)
	}
}

func TestRowSetGetRoundTrip(t *testing.T) {
	r := newRow()
	defer recycleRow(r)

	r.set(0, 5, btMatch)
	r.set(-3, 7, btMismatch)
	r.set(3, 9, btInsertOpen)

	if off, bt, ok := r.get(0); !ok || off != 5 || bt != btMatch {
		t.Fatalf("k=0: got (%d,%d,%v)", off, bt, ok)
	}
	if off, bt, ok := r.get(-3); !ok || off != 7 || bt != btMismatch {
		t.Fatalf("k=-3: got (%d,%d,%v)", off, bt, ok)
	}
	if _, _, ok := r.get(100); ok {
		t.Fatalf("expected k=100 to be unset")
	}
}

func TestComponentRowAtNegativeScoreIsSafe(t *testing.T) {
	c := newComponent()
	defer recycleComponent(c)

	if r := c.rowAt(-1); r != nil {
		t.Fatalf("expected nil row for a negative score, got %v", r)
	}
	if r := c.rowAt(1000); r != nil {
		t.Fatalf("expected nil row for a score past the grown range, got %v", r)
	}
}
