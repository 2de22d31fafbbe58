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

package sigalign

import (
	"math"

	"github.com/sigalign-go/sigalign/internal/opseq"
)

// PrecisionScale multiplies a penalty-per-length ratio before it is stored
// as an integer, so every cutoff comparison downstream is integer-exact.
const PrecisionScale uint64 = 10000

// Penalties are the gap-affine costs used throughout the core. Match is
// always free.
type Penalties struct {
	Mismatch uint64 // x
	GapOpen  uint64 // o
	GapExt   uint64 // e
}

// DefaultPenalties mirrors the costs used in sigalign's own examples.
var DefaultPenalties = Penalties{
	Mismatch: 4,
	GapOpen:  6,
	GapExt:   2,
}

// toOpseq strips validation and hands the raw numbers to internal packages.
func (p Penalties) toOpseq() opseq.Penalties {
	return opseq.Penalties{Mismatch: p.Mismatch, GapOpen: p.GapOpen, GapExt: p.GapExt}
}

func (p Penalties) validate() error {
	if p.Mismatch < 1 {
		return invalidParameterf("mismatch penalty must be >= 1, got %d", p.Mismatch)
	}
	if p.GapExt < 1 {
		return invalidParameterf("gap extend penalty must be >= 1, got %d", p.GapExt)
	}
	// GapOpen >= 0 always holds for an unsigned field.
	return nil
}

// Cutoff bounds which alignments are worth reporting.
type Cutoff struct {
	MinLength     uint64  // L_min
	MaxPenaltyPer float64 // p_max, a ratio in (0, 1]
}

// toOpseq strips validation and hands the raw numbers to internal packages.
func (c Cutoff) toOpseq() opseq.Cutoff {
	return opseq.Cutoff{MinLength: c.MinLength, MaxPenaltyPer: c.MaxPenaltyPer}
}

func (c Cutoff) validate() error {
	if c.MaxPenaltyPer <= 0 || c.MaxPenaltyPer > 1 {
		return invalidParameterf("penalty-per-length cutoff must be in (0, 1], got %v", c.MaxPenaltyPer)
	}
	return nil
}

// scaled returns p_max expressed in PrecisionScale units, rounded down so
// comparisons against it are conservative (never admit an alignment the
// float cutoff would have rejected).
func (c Cutoff) scaled() uint64 {
	return uint64(c.MaxPenaltyPer * float64(PrecisionScale))
}

// passes reports whether a (penalty, length) pair satisfies the cutoff,
// using PrecisionScale-exact integer arithmetic as required by spec section 8.
func (c Cutoff) passes(penalty, length uint64) bool {
	if length < c.MinLength {
		return false
	}
	if length == 0 {
		return penalty == 0
	}
	return penalty*PrecisionScale/length <= c.scaled()
}

// MinPenaltyForPattern holds the two provable per-pattern-block penalty
// floors used by EMP estimation: the minimum penalty a run of consecutive
// missed k-mer blocks must cost, split by whether the run length is odd or
// even. Ported from EmpKmer::new in the original implementation.
type MinPenaltyForPattern struct {
	Odd  uint64
	Even uint64
}

// toOpseq hands the raw numbers to internal packages.
func (m MinPenaltyForPattern) toOpseq() opseq.MinPenaltyForPattern {
	return opseq.MinPenaltyForPattern{Odd: m.Odd, Even: m.Even}
}

// DeriveMinPenaltyForPattern computes the odd/even penalty floor for a
// single missed pattern block, given the alignment's penalties. A missed
// block must cost at least one mismatch, or a single-base indel, whichever
// is cheaper — and an even-length run of misses can sometimes be covered
// by one gap instead of two, which is why odd and even differ.
func DeriveMinPenaltyForPattern(p Penalties) MinPenaltyForPattern {
	var odd, even uint64
	if p.Mismatch <= p.GapOpen+p.GapExt {
		odd = p.Mismatch
		if p.Mismatch*2 <= p.GapOpen+p.GapExt*2 {
			even = p.Mismatch
		} else {
			even = p.GapOpen + p.GapExt*2 - p.Mismatch
		}
	} else {
		odd = p.GapOpen + p.GapExt
		even = p.GapExt
	}
	return MinPenaltyForPattern{Odd: odd, Even: even}
}

// DerivePatternSize returns the smallest k such that no alignment
// satisfying the cutoff can hide k consecutive query bytes without an
// exact k-mer match landing somewhere in it. Ported from
// Aligner::kmer_calculation in the original implementation: it searches
// increasing run lengths i until the guaranteed minimum penalty of i
// missed pattern blocks exceeds what the cutoff would tolerate over the
// longest span those blocks could cover.
func DerivePatternSize(cutoff Cutoff, minPenalty MinPenaltyForPattern) (uint64, error) {
	if cutoff.MinLength+2 == 0 {
		return 0, invalidParameterf("minimum length too small to derive a pattern size")
	}
	const maxIterations = 1 << 20
	for i := uint64(1); i < maxIterations; i++ {
		patternSize := math.Ceil(float64(cutoff.MinLength+2)/float64(2*i) - 1)
		if patternSize < 1 {
			patternSize = 1
		}
		lhs := float64(i * (minPenalty.Odd + minPenalty.Even))
		rhs := cutoff.MaxPenaltyPer * 2 * (float64(i+1)*patternSize - 1)
		if lhs > rhs {
			size := uint64(patternSize)
			if size == 0 {
				return 0, invalidParameterf("derived pattern size rounded to 0")
			}
			return size, nil
		}
	}
	return 0, invalidParameterf("pattern size derivation did not converge")
}
