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

// Package opseq holds the alignment operation and result vocabulary shared
// by internal/wavefront, internal/anchor and the root sigalign package. It
// exists purely to break the import cycle that would otherwise form: the
// root package depends on internal/anchor which depends on
// internal/wavefront, so none of those three can be where the shared
// result type lives without the others importing "up".
package opseq

import "fmt"

// Kind tags one element of an alignment path.
type Kind uint8

const (
	Match Kind = iota
	Subst
	Insertion
	Deletion
	RefClip   // residual, unaligned reference tail/head; carries Len
	QueryClip // residual, unaligned query tail/head; carries Len
)

func (k Kind) String() string {
	switch k {
	case Match:
		return "Match"
	case Subst:
		return "Subst"
	case Insertion:
		return "Insertion"
	case Deletion:
		return "Deletion"
	case RefClip:
		return "RefClip"
	case QueryClip:
		return "QueryClip"
	default:
		return "Unknown"
	}
}

// Operation is one step (or, for the two clip kinds, one run) of an
// alignment path.
type Operation struct {
	Kind Kind
	Len  uint64 // only meaningful for RefClip / QueryClip
}

func (op Operation) String() string {
	if op.Kind == RefClip || op.Kind == QueryClip {
		return fmt.Sprintf("%s(%d)", op.Kind, op.Len)
	}
	return op.Kind.String()
}

// Position is the half-open [start, end) range, in both reference and
// query coordinates, covered by one reported alignment.
type Position struct {
	RecordStart, RecordEnd uint64
	QueryStart, QueryEnd   uint64
}

// Alignment is one reported alignment within a single record.
type Alignment struct {
	Position   Position
	Penalty    uint64
	Length     uint64
	Operations []Operation
}

// RecordResult groups every reported alignment for one record.
type RecordResult struct {
	RecordIndex int
	Alignments  []Alignment
}

// Result is the per-record map of alignments one query produced.
type Result struct {
	Records []RecordResult
}

// IsEmpty reports whether the query produced no alignments anywhere.
func (r Result) IsEmpty() bool {
	return len(r.Records) == 0
}

// PrecisionScale multiplies a penalty-per-length ratio before it is stored
// as an integer, so every cutoff comparison downstream is integer-exact.
const PrecisionScale uint64 = 10000

// Penalties are the gap-affine costs used throughout the core. Match is
// always free. It is the plain-data twin of sigalign.Penalties: the root
// package owns validation, this package just needs the numbers to flow
// down into internal/wavefront and internal/anchor without an import
// cycle back up to the root.
type Penalties struct {
	Mismatch uint64
	GapOpen  uint64
	GapExt   uint64
}

// Cutoff bounds which alignments are worth reporting. Plain-data twin of
// sigalign.Cutoff; see Penalties for why it lives here too.
type Cutoff struct {
	MinLength     uint64
	MaxPenaltyPer float64
}

// Scaled returns MaxPenaltyPer expressed in PrecisionScale units, rounded
// down so comparisons against it are conservative.
func (c Cutoff) Scaled() uint64 {
	return uint64(c.MaxPenaltyPer * float64(PrecisionScale))
}

// Passes reports whether a (penalty, length) pair satisfies the cutoff.
func (c Cutoff) Passes(penalty, length uint64) bool {
	if length < c.MinLength {
		return false
	}
	if length == 0 {
		return penalty == 0
	}
	return penalty*PrecisionScale/length <= c.Scaled()
}

// MinPenaltyForPattern holds the odd/even per-pattern-block penalty floor
// used by EMP estimation. Plain-data twin of sigalign.MinPenaltyForPattern.
type MinPenaltyForPattern struct {
	Odd  uint64
	Even uint64
}
