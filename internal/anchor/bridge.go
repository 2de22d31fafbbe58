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

// bridgeInf stands in for "unreachable" in the bridge DP below. Kept well
// clear of uint64 overflow so two of them can be added without wrapping.
const bridgeInf = ^uint64(0) / 4

// bridgeFrom tags which matrix a bridge cell's optimum came from. It is
// reused for both "which matrix am I resolving" and "which matrix fed me"
// during backtrace, since a cell's predecessor is always unambiguous given
// its own matrix.
type bridgeFrom uint8

const (
	bridgeDiag bridgeFrom = iota // M: substitution/match, or an I/D gap opening from M
	bridgeUp                     // D: a deletion, consuming one ref byte
	bridgeLeft                   // I: an insertion, consuming one query byte
)

type bridgeCell struct {
	m, i, d             uint64
	mFrom, iFrom, dFrom bridgeFrom
}

// bridgeAlign computes a full, start-to-end gap-affine alignment between
// two short byte spans — the gap a checkpoint says can close two anchors
// into one flank. Unlike the dropout wave-front search, it never stops
// early: both spans are fully consumed, since this is a splice between two
// already-anchored points rather than an open flank toward a free end.
// Quadratic in the span lengths, which checkpoint wiring keeps small.
func bridgeAlign(ref, qry []byte, p opseq.Penalties) ([]opseq.Operation, uint64) {
	n, m := len(ref), len(qry)
	grid := make([][]bridgeCell, n+1)
	for r := range grid {
		grid[r] = make([]bridgeCell, m+1)
	}

	grid[0][0] = bridgeCell{m: 0, i: bridgeInf, d: bridgeInf}
	for c := 1; c <= m; c++ {
		grid[0][c].d = bridgeInf
		grid[0][c].i, grid[0][c].iFrom = bridgeInsertStep(grid[0][c-1].m, grid[0][c-1].i, p)
		grid[0][c].m, grid[0][c].mFrom = grid[0][c].i, bridgeLeft
	}
	for r := 1; r <= n; r++ {
		grid[r][0].i = bridgeInf
		grid[r][0].d, grid[r][0].dFrom = bridgeDeleteStep(grid[r-1][0].m, grid[r-1][0].d, p)
		grid[r][0].m, grid[r][0].mFrom = grid[r][0].d, bridgeUp
	}

	for r := 1; r <= n; r++ {
		for c := 1; c <= m; c++ {
			cell := &grid[r][c]
			cell.i, cell.iFrom = bridgeInsertStep(grid[r][c-1].m, grid[r][c-1].i, p)
			cell.d, cell.dFrom = bridgeDeleteStep(grid[r-1][c].m, grid[r-1][c].d, p)

			sub := uint64(0)
			if ref[r-1] != qry[c-1] {
				sub = p.Mismatch
			}
			best, from := bridgeAdd(grid[r-1][c-1].m, sub), bridgeDiag
			if cell.i < best {
				best, from = cell.i, bridgeLeft
			}
			if cell.d < best {
				best, from = cell.d, bridgeUp
			}
			cell.m, cell.mFrom = best, from
		}
	}

	penalty, state := grid[n][m].m, bridgeDiag
	if grid[n][m].i < penalty {
		penalty, state = grid[n][m].i, bridgeLeft
	}
	if grid[n][m].d < penalty {
		penalty, state = grid[n][m].d, bridgeUp
	}

	var ops []opseq.Operation
	r, c := n, m
	for r > 0 || c > 0 {
		switch state {
		case bridgeDiag:
			if ref[r-1] == qry[c-1] {
				ops = append(ops, opseq.Operation{Kind: opseq.Match})
			} else {
				ops = append(ops, opseq.Operation{Kind: opseq.Subst})
			}
			state = grid[r][c].mFrom
			r--
			c--
		case bridgeUp:
			ops = append(ops, opseq.Operation{Kind: opseq.Deletion})
			state = grid[r][c].dFrom
			r--
		case bridgeLeft:
			ops = append(ops, opseq.Operation{Kind: opseq.Insertion})
			state = grid[r][c].iFrom
			c--
		}
	}
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops, penalty
}

// bridgeInsertStep picks the cheaper of opening a fresh insertion from an M
// cell or extending an already-open I cell.
func bridgeInsertStep(mPrev, iPrev uint64, p opseq.Penalties) (uint64, bridgeFrom) {
	open := bridgeAdd(mPrev, p.GapOpen+p.GapExt)
	ext := bridgeAdd(iPrev, p.GapExt)
	if open <= ext {
		return open, bridgeDiag
	}
	return ext, bridgeLeft
}

// bridgeDeleteStep picks the cheaper of opening a fresh deletion from an M
// cell or extending an already-open D cell.
func bridgeDeleteStep(mPrev, dPrev uint64, p opseq.Penalties) (uint64, bridgeFrom) {
	open := bridgeAdd(mPrev, p.GapOpen+p.GapExt)
	ext := bridgeAdd(dPrev, p.GapExt)
	if open <= ext {
		return open, bridgeDiag
	}
	return ext, bridgeUp
}

func bridgeAdd(base, delta uint64) uint64 {
	if base >= bridgeInf {
		return bridgeInf
	}
	return base + delta
}
