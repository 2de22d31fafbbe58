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

import "github.com/sigalign-go/sigalign/internal/opseq"

// These are aliases, not copies: internal/wavefront and internal/anchor
// build opseq.Operation/opseq.Result values directly, and an Aligner hands
// them back to callers under the root package's names without a
// conversion pass.

// OperationKind tags one element of an alignment path.
type OperationKind = opseq.Kind

const (
	Match     = opseq.Match
	Subst     = opseq.Subst
	Insertion = opseq.Insertion
	Deletion  = opseq.Deletion
	RefClip   = opseq.RefClip
	QueryClip = opseq.QueryClip
)

// Operation is one step (or, for the two clip kinds, one run) of an
// alignment path. Only RefClip and QueryClip carry a length; all other
// kinds represent a single base/column and are repeated in the slice.
type Operation = opseq.Operation

// AlignmentPosition is the half-open [start, end) range, in both reference
// and query coordinates, covered by one reported alignment.
type AlignmentPosition = opseq.Position

// AnchorAlignmentResult is one reported alignment within a single record.
type AnchorAlignmentResult = opseq.Alignment

// RecordAlignmentResult groups every reported alignment for one record.
type RecordAlignmentResult = opseq.RecordResult

// AlignmentResult is the per-record map of alignments a single query
// produced against a Reference. An empty result (no records) means either
// the query was shorter than the derived pattern size, or no k-mer of the
// query occurred anywhere in the reference — both are success, not error,
// per spec section 7.
type AlignmentResult = opseq.Result
