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
	"sync"

	"github.com/sigalign-go/sigalign/internal/opseq"
)

// Front is one dropout wave-front search: the M/I/D matrices built up
// score by score until either a sequence end is reached (Reached) or the
// score exceeds the caller's budget (Dropped). It is always obtained from
// Align or AlignSeeded and must be returned via Recycle once its
// Operations/Frontier have been extracted.
type Front struct {
	M, I, D *component

	p opseq.Penalties

	refLen, qryLen int

	Reached bool // a sequence boundary was reached within budget
	Dropped bool // budget was exhausted first
	Score   int  // score at which it stopped, either way
	EndK    int  // diagonal the stop happened on, valid when Reached
}

var frontPool = sync.Pool{New: func() interface{} { return &Front{} }}

func newFront() *Front {
	f := frontPool.Get().(*Front)
	f.M, f.I, f.D = newComponent(), newComponent(), newComponent()
	f.Reached, f.Dropped = false, false
	f.Score, f.EndK = 0, 0
	return f
}

// Recycle returns a Front's storage to the pool. Callers must not touch
// the Front afterward.
func Recycle(f *Front) {
	if f == nil {
		return
	}
	recycleComponent(f.M)
	recycleComponent(f.I)
	recycleComponent(f.D)
	f.M, f.I, f.D = nil, nil, nil
	frontPool.Put(f)
}

// Frontier is a snapshot of one score's M/I/D rows, captured from a
// dropped-out Front so a later, unrelated Front can resume the search
// from the same shape instead of starting from score 0. It owns its own
// storage (not pooled) since its lifetime can outlive the Front it was
// cut from.
type Frontier struct {
	score  int
	mCells map[int]cell
	iCells map[int]cell
	dCells map[int]cell
}

type cell struct {
	offset uint32
	bt     uint32
}

// Capture snapshots f's state at its current Score. The Front f remains
// usable (and must still be recycled) after this call.
func Capture(f *Front) *Frontier {
	fr := &Frontier{
		score:  f.Score,
		mCells: snapshotRow(f.M.rowAt(f.Score)),
		iCells: snapshotRow(f.I.rowAt(f.Score)),
		dCells: snapshotRow(f.D.rowAt(f.Score)),
	}
	return fr
}

func snapshotRow(r *row) map[int]cell {
	out := map[int]cell{}
	if r == nil {
		return out
	}
	for k := r.lo; k <= r.hi; k++ {
		if offset, bt, ok := r.get(k); ok {
			out[k] = cell{offset: offset, bt: bt}
		}
	}
	return out
}

// Align runs a bounded dropout wave-front search extending ref and qry
// forward from (0, 0). It stops as soon as either sequence is exhausted
// (Front.Reached) or the score exceeds sparePenalty (Front.Dropped).
func Align(ref, qry []byte, p opseq.Penalties, sparePenalty uint64) *Front {
	f := newFront()
	f.p = p
	f.refLen, f.qryLen = len(ref), len(qry)
	f.M.set(0, 0, 0, btMatch)
	extendRow(f.M.rowAt(0), ref, qry)
	if checkReached(f, 0) {
		return f
	}
	return run(f, ref, qry, sparePenalty, 1)
}

// AlignSeeded resumes a search from a previously captured Frontier, on a
// (likely different) ref/qry pair anchored so that the frontier's offsets
// still make sense as a starting shape. The caller is responsible for
// aligning coordinate systems; this only replays the cell values.
func AlignSeeded(seed *Frontier, ref, qry []byte, p opseq.Penalties, sparePenalty uint64) *Front {
	f := newFront()
	f.p = p
	f.refLen, f.qryLen = len(ref), len(qry)
	seedComponent(f.M, seed.score, seed.mCells)
	seedComponent(f.I, seed.score, seed.iCells)
	seedComponent(f.D, seed.score, seed.dCells)
	if r := f.M.rowAt(seed.score); r != nil {
		extendRow(r, ref, qry)
	}
	if checkReached(f, seed.score) {
		return f
	}
	return run(f, ref, qry, sparePenalty, seed.score+1)
}

func seedComponent(c *component, score int, cells map[int]cell) {
	for k, cl := range cells {
		c.set(score, k, cl.offset, cl.bt)
	}
}

// run drives the score recurrence starting at score s0 until Reached or
// the budget at sparePenalty is exceeded.
func run(f *Front, ref, qry []byte, sparePenalty uint64, s0 int) *Front {
	for s := s0; uint64(s) <= sparePenalty; s++ {
		next(f, s)
		if r := f.M.rowAt(s); r != nil {
			extendRow(r, ref, qry)
		}
		if checkReached(f, s) {
			return f
		}
	}
	f.Dropped = true
	f.Score = int(sparePenalty)
	return f
}

// extendRow walks every diagonal currently open in r and pushes its
// offset as far as ref/qry agree.
func extendRow(r *row, ref, qry []byte) {
	if r == nil {
		return
	}
	for k := r.hi; k >= r.lo; k-- {
		offset, bt, ok := r.get(k)
		if !ok {
			continue
		}
		h := int(offset)
		v := h - k
		if v < 0 || v > len(qry) || h > len(ref) {
			continue
		}
		n := consecutiveMatches(ref, qry, v, h)
		if n > 0 {
			r.increase(k, uint32(n))
		}
		_ = bt
	}
}

// checkReached records whether any M offset at score s has run off the
// end of ref or qry, which for a one-directional flank extension is the
// DWFA stopping condition.
func checkReached(f *Front, s int) bool {
	r := f.M.rowAt(s)
	if r == nil {
		return false
	}
	for k := r.lo; k <= r.hi; k++ {
		offset, _, ok := r.get(k)
		if !ok {
			continue
		}
		h := int(offset)
		v := h - k
		if h >= f.refLen || v >= f.qryLen {
			f.Reached = true
			f.Score = s
			f.EndK = k
			return true
		}
	}
	return false
}

// next fills M/I/D at score s from the gap-affine recurrence:
//
//	I[s][k] = max(M[s-o-e][k-1], I[s-e][k-1]) + 1
//	D[s][k] = max(M[s-o-e][k+1], D[s-e][k+1])
//	M[s][k] = max(M[s-x][k]+1, I[s][k], D[s][k])
func next(f *Front, s int) {
	p := f.p
	lo, hi := krange(f, s)
	for k := lo; k <= hi; k++ {
		// insertion: open from M[s-o-e][k-1], extend from I[s-e][k-1].
		vOpenI, _, fromM := f.M.get(s-int(p.GapOpen+p.GapExt), k-1)
		vExtI, _, fromI := f.I.get(s-int(p.GapExt), k-1)
		var isk uint32
		var haveI bool
		var btI uint32
		switch {
		case fromM && fromI:
			haveI = true
			if vOpenI >= vExtI {
				isk, btI = vOpenI+1, btInsertOpen
			} else {
				isk, btI = vExtI+1, btInsertExt
			}
		case fromM:
			isk, btI, haveI = vOpenI+1, btInsertOpen, true
		case fromI:
			isk, btI, haveI = vExtI+1, btInsertExt, true
		}
		if haveI {
			f.I.set(s, k, isk, btI)
		}

		// deletion: open from M[s-o-e][k+1], extend from D[s-e][k+1].
		vOpenD, _, fromM2 := f.M.get(s-int(p.GapOpen+p.GapExt), k+1)
		vExtD, _, fromD := f.D.get(s-int(p.GapExt), k+1)
		var dsk uint32
		var haveD bool
		var btD uint32
		switch {
		case fromM2 && fromD:
			haveD = true
			if vOpenD >= vExtD {
				dsk, btD = vOpenD, btDeleteOpen
			} else {
				dsk, btD = vExtD, btDeleteExt
			}
		case fromM2:
			dsk, btD, haveD = vOpenD, btDeleteOpen, true
		case fromD:
			dsk, btD, haveD = vExtD, btDeleteExt, true
		}
		if haveD {
			f.D.set(s, k, dsk, btD)
		}

		// match: prefer mismatch on a tie, same as the base implementation.
		vMis, _, okMis := f.M.get(s-int(p.Mismatch), k)
		msk, haveM, btM := uint32(0), false, uint32(0)
		if okMis {
			msk, haveM, btM = vMis+1, true, btMismatch
		}
		if haveI && isk >= msk {
			if !haveM || isk > msk {
				msk, btM = isk, btInsertExt
			}
			haveM = true
		}
		if haveD && dsk >= msk {
			if !haveM || dsk > msk {
				msk, btM = dsk, btDeleteExt
			}
			haveM = true
		}
		if haveM {
			f.M.set(s, k, msk, btM)
		}
	}
}

// krange bounds the diagonals worth computing at score s: never past
// what either sequence can still reach, and one wider than the previous
// relevant rows on each side to let I/D open a new diagonal.
func krange(f *Front, s int) (int, int) {
	lo, hi := 0, 0
	have := false
	widen := func(r *row, extra int) {
		if r == nil {
			return
		}
		if !have {
			lo, hi = r.lo-extra, r.hi+extra
			have = true
			return
		}
		lo = min(lo, r.lo-extra)
		hi = max(hi, r.hi+extra)
	}
	widen(f.M.rowAt(s-int(f.p.Mismatch)), 0)
	widen(f.M.rowAt(s-int(f.p.GapOpen+f.p.GapExt)), 1)
	widen(f.I.rowAt(s-int(f.p.GapExt)), 1)
	widen(f.D.rowAt(s-int(f.p.GapExt)), 1)
	if !have {
		return 1, 0 // empty range
	}
	if lo < -(f.qryLen) {
		lo = -f.qryLen
	}
	if hi > f.refLen {
		hi = f.refLen
	}
	return lo, hi
}
