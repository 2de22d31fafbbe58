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
	"sort"

	"github.com/sigalign-go/sigalign/internal/opseq"
	"github.com/sigalign-go/sigalign/internal/pattern"
	"github.com/sigalign-go/sigalign/internal/wavefront"
)

// Graph is the full anchor set for one (record, query) pair: built from
// pattern seeds, pruned by estimation, extended by DWFA, and finally
// reduced to a deduplicated alignment list.
type Graph struct {
	RecordIndex int
	RefLen      uint64
	QryLen      uint64

	PatternSize          uint64
	Penalties            opseq.Penalties
	Cutoff               opseq.Cutoff
	MinPenaltyForPattern opseq.MinPenaltyForPattern

	MinimizePenalty bool

	Anchors []*Anchor
}

// New builds a Graph's anchors directly from one record's pattern seeds.
// Impeccable-extension merging has already happened in the locator; each
// seed becomes exactly one Empty anchor.
func New(recordIndex int, refLen, qryLen, patternSize uint64, seeds []pattern.Seed,
	penalties opseq.Penalties, cutoff opseq.Cutoff, minPenalty opseq.MinPenaltyForPattern,
	minimizePenalty bool) *Graph {

	g := &Graph{
		RecordIndex:          recordIndex,
		RefLen:               refLen,
		QryLen:               qryLen,
		PatternSize:          patternSize,
		Penalties:            penalties,
		Cutoff:               cutoff,
		MinPenaltyForPattern: minPenalty,
		MinimizePenalty:      minimizePenalty,
		Anchors:              make([]*Anchor, 0, len(seeds)),
	}
	for _, s := range seeds {
		g.Anchors = append(g.Anchors, &Anchor{
			RecordPosition: s.RecordPosition,
			QueryPosition:  s.QueryPosition,
			Size:           s.Size,
			State:          Empty,
		})
	}
	return g
}

// EstimateAndPrune fills every anchor's flank Estimations from the
// pattern-existence bitmap, then drops anchors whose lower-bound penalty
// already fails the cutoff. Dropped anchors stay in the slice so later
// indices remain stable.
func (g *Graph) EstimateAndPrune(existence []bool) {
	for _, a := range g.Anchors {
		estimateFlanks(a, g.RefLen, g.QryLen, g.PatternSize, existence, g.MinPenaltyForPattern)
		total := a.LeftEstimate.Penalty + a.RightEstimate.Penalty
		length := a.LeftEstimate.Length + a.Size + a.RightEstimate.Length
		if !g.Cutoff.Passes(total, length) {
			a.State = Dropped
		}
	}
	g.wireCheckpoints()
}

// wireCheckpoints links every surviving ordered pair (A, B) within the
// query-position-sorted anchor order that passes the linkability test.
// Anchors are already produced in ascending query-position order by the
// locator, so a simple forward scan bounded by the gap constant keeps
// this close to linear in practice.
func (g *Graph) wireCheckpoints() {
	for i, a := range g.Anchors {
		if a.State == Dropped {
			continue
		}
		for j := i + 1; j < len(g.Anchors); j++ {
			b := g.Anchors[j]
			if b.State == Dropped {
				continue
			}
			if b.QueryPosition < a.QueryPosition+a.Size {
				continue
			}
			if b.QueryPosition-(a.QueryPosition+a.Size) > g.PatternSize*PatternIndexGapForCheckpoints {
				break // anchors are query-position sorted; gap only grows from here
			}
			if linkable(a, b, g.PatternSize, g.Penalties, g.Cutoff) {
				a.RightCheckpoints = append(a.RightCheckpoints, Checkpoint{AnchorIndex: j})
				b.LeftCheckpoints = append(b.LeftCheckpoints, Checkpoint{AnchorIndex: i})
			}
		}
	}
}

// sparePenalty derives the exact remaining budget a flank's DWFA may
// spend: enough that, combined with the other flank's already-known (or
// estimated) cost, the whole alignment could still satisfy the cutoff.
func sparePenalty(cutoff opseq.Cutoff, size, otherLength, otherPenalty uint64) uint64 {
	budget := cutoff.MaxPenaltyPer*float64(cutoff.MinLength+size+otherLength) - float64(otherPenalty)
	if budget < 0 {
		return 0
	}
	return uint64(budget)
}

// Extend runs DWFA for every surviving anchor: left flanks first in
// ascending index order, then right flanks in descending order, since a
// right flank's spare-penalty budget depends on its anchor's now-exact
// left cost. See the package doc and the component design notes this
// mirrors for why the ordering cannot be relaxed.
//
// Before falling back to a fresh DWFA search, each flank first checks
// whether a checkpoint-linked neighbor already has the answer: that
// neighbor's own flank, once a short bridge across the gap between the
// two anchors is accounted for, is byte-for-byte the same flank this
// anchor would otherwise reconstruct from scratch. Reusing it instead of
// re-running DWFA to the sequence end is what keeps two anchors that
// settle on the same ultimate alignment from both surviving as distinct
// results; see buildClosures.
func (g *Graph) Extend(queryBytes []byte, refBytes []byte) {
	for i, a := range g.Anchors {
		if a.State == Dropped {
			continue
		}
		if ext, ok := g.leftCheckpointExtension(i, refBytes, queryBytes); ok {
			a.LeftExtension = ext
			continue
		}
		budget := sparePenalty(g.Cutoff, a.Size, a.RightEstimate.Length, a.RightEstimate.Penalty)
		refFlank := reversed(refBytes[:a.RecordPosition])
		qryFlank := reversed(queryBytes[:a.QueryPosition])
		front := wavefront.Align(refFlank, qryFlank, g.Penalties, budget)
		if front.Reached {
			ops := wavefront.Backtrace(front)
			reverseOperations(ops)
			a.LeftExtension = Extension{Kind: ExtensionOwn, Penalty: uint64(front.Score), Length: alignedCount(ops), Operations: ops}
		} else {
			a.State = Dropped
		}
		wavefront.Recycle(front)
	}

	for i := len(g.Anchors) - 1; i >= 0; i-- {
		a := g.Anchors[i]
		if a.State == Dropped {
			continue
		}
		if ext, ok := g.rightCheckpointExtension(i, refBytes, queryBytes); ok {
			a.RightExtension = ext
			a.State = Exact
			continue
		}
		budget := sparePenalty(g.Cutoff, a.Size, a.LeftExtension.Length, a.LeftExtension.Penalty)
		refFlank := refBytes[a.RecordPosition+a.Size:]
		qryFlank := queryBytes[a.QueryPosition+a.Size:]
		front := wavefront.Align(refFlank, qryFlank, g.Penalties, budget)
		if front.Reached {
			ops := wavefront.Backtrace(front)
			a.RightExtension = Extension{Kind: ExtensionOwn, Penalty: uint64(front.Score), Length: alignedCount(ops), Operations: ops}
			a.State = Exact
		} else {
			a.State = Dropped
		}
		wavefront.Recycle(front)
	}
}

// leftCheckpointExtension looks for the cheapest usable checkpoint behind
// anchor i: an earlier anchor whose LeftExtension (already resolved, since
// the ascending pass reaches it first) can be extended forward by a short
// bridge across the gap, reconstructing this anchor's left flank without
// an independent DWFA search.
func (g *Graph) leftCheckpointExtension(i int, refBytes, queryBytes []byte) (Extension, bool) {
	b := g.Anchors[i]
	budget := sparePenalty(g.Cutoff, b.Size, b.RightEstimate.Length, b.RightEstimate.Penalty)

	var best *Extension
	for _, cp := range b.LeftCheckpoints {
		a := g.Anchors[cp.AnchorIndex]
		if a.State == Dropped {
			continue
		}
		bridgeOps, bridgePenalty := bridgeAlign(
			refBytes[a.RecordPosition+a.Size:b.RecordPosition],
			queryBytes[a.QueryPosition+a.Size:b.QueryPosition],
			g.Penalties,
		)
		penalty := a.LeftExtension.Penalty + bridgePenalty
		if penalty > budget {
			continue
		}
		if best != nil && penalty >= best.Penalty {
			continue
		}
		ops := make([]opseq.Operation, 0, len(a.LeftExtension.Operations)+int(a.Size)+len(bridgeOps))
		ops = append(ops, a.LeftExtension.Operations...)
		ops = append(ops, matchRun(a.Size)...)
		ops = append(ops, bridgeOps...)
		ext := Extension{
			Kind:       ExtensionRef,
			Penalty:    penalty,
			Length:     a.LeftExtension.Length + a.Size + alignedCount(bridgeOps),
			Operations: ops,
			RefAnchor:  cp.AnchorIndex,
		}
		best = &ext
	}
	if best == nil {
		return Extension{}, false
	}
	return *best, true
}

// rightCheckpointExtension is leftCheckpointExtension's mirror for the
// descending pass: a later anchor's RightExtension, already resolved,
// extended backward across the gap to cover this anchor's right flank.
func (g *Graph) rightCheckpointExtension(i int, refBytes, queryBytes []byte) (Extension, bool) {
	a := g.Anchors[i]
	budget := sparePenalty(g.Cutoff, a.Size, a.LeftExtension.Length, a.LeftExtension.Penalty)

	var best *Extension
	for _, cp := range a.RightCheckpoints {
		b := g.Anchors[cp.AnchorIndex]
		if b.State != Exact {
			continue
		}
		bridgeOps, bridgePenalty := bridgeAlign(
			refBytes[a.RecordPosition+a.Size:b.RecordPosition],
			queryBytes[a.QueryPosition+a.Size:b.QueryPosition],
			g.Penalties,
		)
		penalty := bridgePenalty + b.RightExtension.Penalty
		if penalty > budget {
			continue
		}
		if best != nil && penalty >= best.Penalty {
			continue
		}
		ops := make([]opseq.Operation, 0, len(bridgeOps)+int(b.Size)+len(b.RightExtension.Operations))
		ops = append(ops, bridgeOps...)
		ops = append(ops, matchRun(b.Size)...)
		ops = append(ops, b.RightExtension.Operations...)
		ext := Extension{
			Kind:       ExtensionRef,
			Penalty:    penalty,
			Length:     alignedCount(bridgeOps) + b.Size + b.RightExtension.Length,
			Operations: ops,
			RefAnchor:  cp.AnchorIndex,
		}
		best = &ext
	}
	if best == nil {
		return Extension{}, false
	}
	return *best, true
}

func matchRun(n uint64) []opseq.Operation {
	ops := make([]opseq.Operation, n)
	for i := range ops {
		ops[i] = opseq.Operation{Kind: opseq.Match}
	}
	return ops
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

func reverseOperations(ops []opseq.Operation) {
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
}

// consumed sums how many reference and query bytes a path of operations
// accounts for, ignoring clip runs (they mark unaligned residue).
func consumed(ops []opseq.Operation) (refLen, qryLen uint64) {
	for _, op := range ops {
		switch op.Kind {
		case opseq.Match, opseq.Subst:
			refLen++
			qryLen++
		case opseq.Insertion:
			qryLen++
		case opseq.Deletion:
			refLen++
		}
	}
	return refLen, qryLen
}

// alignedCount is the number of aligned columns (Match/Subst/Insertion/
// Deletion), excluding clip runs — the "length" EMP estimation and the
// cutoff both reason about.
func alignedCount(ops []opseq.Operation) uint64 {
	var n uint64
	for _, op := range ops {
		if op.Kind != opseq.RefClip && op.Kind != opseq.QueryClip {
			n++
		}
	}
	return n
}

// Results finalizes every Exact anchor into a reported Alignment:
// re-checks the cutoff now that flank costs are exact, optionally keeps
// only minimum-penalty anchors, deduplicates by connected-closure symbol,
// and assembles the full operation path for each survivor.
func (g *Graph) Results() []opseq.Alignment {
	var minPenalty uint64
	haveMin := false
	for _, a := range g.Anchors {
		if a.State != Exact {
			continue
		}
		total := a.TotalPenalty()
		length := a.TotalLength()
		if !g.Cutoff.Passes(total, length) {
			a.State = Dropped
			continue
		}
		if !haveMin || total < minPenalty {
			minPenalty, haveMin = total, true
		}
	}

	closures := buildClosures(g.Anchors)
	seen := map[string]bool{}

	var out []opseq.Alignment
	for i, a := range g.Anchors {
		if a.State != Exact {
			continue
		}
		if g.MinimizePenalty && a.TotalPenalty() != minPenalty {
			continue
		}
		key := closureKey(closures[i])
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, assemble(a))
	}
	return out
}

func assemble(a *Anchor) opseq.Alignment {
	ops := make([]opseq.Operation, 0, len(a.LeftExtension.Operations)+int(a.Size)+len(a.RightExtension.Operations))
	ops = append(ops, a.LeftExtension.Operations...)
	for i := uint64(0); i < a.Size; i++ {
		ops = append(ops, opseq.Operation{Kind: opseq.Match})
	}
	ops = append(ops, a.RightExtension.Operations...)

	leftRefLen, leftQryLen := consumed(a.LeftExtension.Operations)
	rightRefLen, rightQryLen := consumed(a.RightExtension.Operations)

	return opseq.Alignment{
		Position: opseq.Position{
			RecordStart: a.RecordPosition - leftRefLen,
			RecordEnd:   a.RecordPosition + a.Size + rightRefLen,
			QueryStart:  a.QueryPosition - leftQryLen,
			QueryEnd:    a.QueryPosition + a.Size + rightQryLen,
		},
		Penalty:    a.TotalPenalty(),
		Length:     a.TotalLength(),
		Operations: ops,
	}
}

// buildClosures computes each anchor's connected-component closure over
// the Ref-extension graph (an anchor referencing, or referenced by,
// another belongs to the same closure) and returns one sorted slice of
// indices per anchor.
func buildClosures(anchors []*Anchor) [][]int {
	n := len(anchors)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(x, y int) {
		rx, ry := find(x), find(y)
		if rx != ry {
			parent[rx] = ry
		}
	}
	for i, a := range anchors {
		if a.LeftExtension.Kind == ExtensionRef {
			union(i, a.LeftExtension.RefAnchor)
		}
		if a.RightExtension.Kind == ExtensionRef {
			union(i, a.RightExtension.RefAnchor)
		}
	}
	groups := map[int][]int{}
	for i := range anchors {
		r := find(i)
		groups[r] = append(groups[r], i)
	}
	closures := make([][]int, n)
	for i := range anchors {
		closures[i] = groups[find(i)]
	}
	return closures
}

func closureKey(indices []int) string {
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	key := make([]byte, 0, len(sorted)*4)
	for _, idx := range sorted {
		key = append(key, byte(idx>>24), byte(idx>>16), byte(idx>>8), byte(idx))
	}
	return string(key)
}
