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

// Package anchor builds the per-record anchor graph: seeds from the
// pattern locator become Anchor values, flank penalties are estimated as
// provable lower bounds, unreachable anchors are pruned, checkpoints are
// wired between anchors that could belong to one alignment, and the
// surviving anchors are extended with a dropout wave-front search into a
// final, deduplicated set of alignments.
package anchor

import "github.com/sigalign-go/sigalign/internal/opseq"

// State is an Anchor's position in its lifecycle. Transitions only ever
// move forward: Empty -> Estimated -> Exact, with Dropped reachable from
// either Estimated or Exact once the cutoff can no longer be met.
type State int

const (
	Empty State = iota
	Estimated
	Exact
	Dropped
)

// Estimation is a (penalty, length) lower bound for one flank.
type Estimation struct {
	Penalty uint64
	Length  uint64
}

// ExtensionKind tells whether an Extension was computed directly by its
// owning anchor or borrowed from another anchor's already-computed flank.
type ExtensionKind int

const (
	ExtensionNone ExtensionKind = iota
	ExtensionOwn
	ExtensionRef
)

// Extension is one flank's resolved alignment. Penalty/Length/Operations
// are always populated, whether the flank was computed directly by its
// own DWFA search (Own) or spliced together from a checkpoint-linked
// neighbor's already-computed flank plus a short bridge across the gap
// between the two anchors (Ref). RefAnchor names that neighbor, so
// buildClosures can union the two into one reported alignment instead of
// counting them as separate results.
type Extension struct {
	Kind ExtensionKind

	Penalty    uint64
	Length     uint64
	Operations []opseq.Operation

	RefAnchor int // only meaningful when Kind == ExtensionRef
}

// Checkpoint records a potential crossing between two anchors, found
// while wiring the graph, consulted during extension to decide whether a
// flank can be satisfied by referencing another anchor instead of
// re-running DWFA.
type Checkpoint struct {
	AnchorIndex int
}

// Anchor is one exact k-mer match between query and reference, plus the
// bookkeeping needed to extend it into a full alignment.
type Anchor struct {
	RecordPosition uint64
	QueryPosition  uint64
	Size           uint64

	State State

	LeftEstimate  Estimation
	RightEstimate Estimation

	LeftExtension  Extension // toward position 0 ("hind" pass, ascending index)
	RightExtension Extension // toward the sequence end ("fore" pass, descending index)

	LeftCheckpoints  []Checkpoint
	RightCheckpoints []Checkpoint
}

// TotalPenalty returns the summed penalty across both flanks plus the
// anchor's own (free) seed. Only meaningful once State is Exact.
func (a *Anchor) TotalPenalty() uint64 {
	return a.LeftExtension.Penalty + a.RightExtension.Penalty
}

// TotalLength returns the summed alignment length across both flanks
// plus the seed itself. Only meaningful once State is Exact.
func (a *Anchor) TotalLength() uint64 {
	return a.LeftExtension.Length + a.Size + a.RightExtension.Length
}
