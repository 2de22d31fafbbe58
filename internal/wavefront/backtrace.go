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

import "github.com/sigalign-go/sigalign/internal/opseq"

// matrix names which of M/I/D a backtrace cursor currently sits in.
type matrix int

const (
	matM matrix = iota
	matI
	matD
)

// Backtrace walks a Reached Front from (Score, EndK) back to (0, 0) and
// returns the operation path in reference/query order. It does not
// recycle f; the caller still owns that.
func Backtrace(f *Front) []opseq.Operation {
	if !f.Reached {
		return nil
	}

	var ops []opseq.Operation // built tail-first, reversed at the end

	s, k := f.Score, f.EndK
	h, _, ok := f.M.get(s, k)
	if !ok {
		return nil
	}
	v := int(h) - k
	cur := matM

	// the sequence that ran out first leaves a clipped tail on the other.
	if int(h) < f.refLen {
		ops = append(ops, opseq.Operation{Kind: opseq.RefClip, Len: uint64(f.refLen - int(h))})
	} else if v < f.qryLen {
		ops = append(ops, opseq.Operation{Kind: opseq.QueryClip, Len: uint64(f.qryLen - v)})
	}

	hh := int(h)
	for hh > 0 && v > 0 {
		switch cur {
		case matM:
			_, bt, _ := f.M.get(s, k)
			switch bt {
			case btMatch:
				for hh > 0 && v > 0 {
					ops = append(ops, opseq.Operation{Kind: opseq.Match})
					hh--
					v--
				}
			case btMismatch:
				src, _, _ := f.M.get(s-int(f.p.Mismatch), k)
				emitMatches(&ops, hh, int(src)+1)
				ops = append(ops, opseq.Operation{Kind: opseq.Subst})
				s -= int(f.p.Mismatch)
				hh = int(src)
				v = hh - k
			case btInsertExt:
				src, _, _ := f.I.get(s, k)
				emitMatches(&ops, hh, int(src))
				hh = int(src)
				v = hh - k
				cur = matI
			case btDeleteExt:
				src, _, _ := f.D.get(s, k)
				emitMatches(&ops, hh, int(src))
				hh = int(src)
				v = hh - k
				cur = matD
			default:
				// unreachable for a well-formed front; stop rather than loop.
				hh, v = 0, 0
			}
		case matI:
			// an I step moves from k-1 to k with offset+1: one reference
			// byte and no query byte, which opseq calls a Deletion.
			_, bt, _ := f.I.get(s, k)
			ops = append(ops, opseq.Operation{Kind: opseq.Deletion})
			if bt == btInsertOpen {
				s -= int(f.p.GapOpen + f.p.GapExt)
				cur = matM
			} else {
				s -= int(f.p.GapExt)
			}
			k--
			src, _, _ := f.vAt(cur, s, k)
			hh = int(src)
			v = hh - k
		case matD:
			// a D step moves from k+1 to k at the same offset: one query
			// byte and no reference byte, which opseq calls an Insertion.
			_, bt, _ := f.D.get(s, k)
			ops = append(ops, opseq.Operation{Kind: opseq.Insertion})
			if bt == btDeleteOpen {
				s -= int(f.p.GapOpen + f.p.GapExt)
				cur = matM
			} else {
				s -= int(f.p.GapExt)
			}
			k++
			src, _, _ := f.vAt(cur, s, k)
			hh = int(src)
			v = hh - k
		}
	}

	reverse(ops)
	return ops
}

func (f *Front) vAt(m matrix, s, k int) (uint32, uint32, bool) {
	switch m {
	case matI:
		return f.I.get(s, k)
	case matD:
		return f.D.get(s, k)
	default:
		return f.M.get(s, k)
	}
}

func emitMatches(ops *[]opseq.Operation, from, to int) {
	for i := from; i > to; i-- {
		*ops = append(*ops, opseq.Operation{Kind: opseq.Match})
	}
}

func reverse(ops []opseq.Operation) {
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
}
