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
	"github.com/sigalign-go/sigalign/internal/anchor"
	"github.com/sigalign-go/sigalign/internal/opseq"
	"github.com/sigalign-go/sigalign/internal/pattern"
)

// Aligner is the entry point for both alignment modes. A single Aligner
// is single-threaded and synchronous — the way to parallelize across
// queries is one Aligner per goroutine, all sharing one read-only
// Reference. Construct with New; the zero value is not usable.
type Aligner struct {
	penalties  Penalties
	cutoff     Cutoff
	minPenalty MinPenaltyForPattern
	pattern    uint64

	// MinimizePenalty keeps only the lowest-penalty alignment(s) per
	// record instead of every alignment that satisfies the cutoff.
	MinimizePenalty bool
}

// Option configures an Aligner at construction time.
type Option func(*Aligner)

// WithMinimumPenalty toggles minimum-penalty-only result filtering.
func WithMinimumPenalty(enabled bool) Option {
	return func(a *Aligner) { a.MinimizePenalty = enabled }
}

// New validates penalties and cutoff, derives the pattern size that
// guarantees an exact k-mer match inside any alignment the cutoff would
// accept, and returns a ready-to-use Aligner. It never returns a
// partially constructed Aligner alongside a non-nil error.
func New(penalties Penalties, cutoff Cutoff, opts ...Option) (*Aligner, error) {
	if err := penalties.validate(); err != nil {
		return nil, err
	}
	if err := cutoff.validate(); err != nil {
		return nil, err
	}
	minPenalty := DeriveMinPenaltyForPattern(penalties)
	patternSize, err := DerivePatternSize(cutoff, minPenalty)
	if err != nil {
		return nil, err
	}

	a := &Aligner{
		penalties:  penalties,
		cutoff:     cutoff,
		minPenalty: minPenalty,
		pattern:    patternSize,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// PatternSize returns the k-mer size this Aligner derived at
// construction.
func (a *Aligner) PatternSize() uint64 { return a.pattern }

// SemiGlobalAlignment requires the full query to participate in every
// reported alignment: no unaligned query residue is tolerated at either
// end, though the reference may still be clipped. Any anchor whose best
// extension still leaves a leading or trailing QueryClip is dropped here
// rather than reported.
func (a *Aligner) SemiGlobalAlignment(ref *Reference, query []byte) (AlignmentResult, error) {
	return a.run(ref, query, true)
}

// LocalAlignment reports the best-aligned subregion of the query against
// each record, without requiring the whole query to participate.
func (a *Aligner) LocalAlignment(ref *Reference, query []byte) (AlignmentResult, error) {
	return a.run(ref, query, false)
}

func (a *Aligner) run(ref *Reference, query []byte, requireFullQuery bool) (AlignmentResult, error) {
	if uint64(len(query)) < a.pattern {
		return AlignmentResult{}, nil // EmptyQuery: success, not an error
	}

	located, err := pattern.Locate(ref.Index, ref.Sequences, query, a.pattern)
	if err != nil {
		return AlignmentResult{}, wrapReferenceFault(err, "locating patterns")
	}
	if len(located.Records) == 0 {
		return AlignmentResult{}, nil // NoAnchor: success, not an error
	}

	var buf []byte
	var records []RecordAlignmentResult
	for _, rs := range located.Records {
		refLen, err := ref.Sequences.RecordLength(rs.RecordIndex)
		if err != nil {
			return AlignmentResult{}, wrapReferenceFault(err, "reading record length")
		}
		refBytes, err := ref.Sequences.FillBuffer(rs.RecordIndex, &buf)
		if err != nil {
			return AlignmentResult{}, wrapReferenceFault(err, "reading record bytes")
		}
		refBytesCopy := append([]byte(nil), refBytes...)

		g := anchor.New(rs.RecordIndex, refLen, uint64(len(query)), a.pattern, rs.Seeds,
			a.penalties.toOpseq(), a.cutoff.toOpseq(), a.minPenalty.toOpseq(),
			a.MinimizePenalty)
		g.EstimateAndPrune(located.Existence)
		g.Extend(query, refBytesCopy)

		alignments := g.Results()
		if requireFullQuery {
			alignments = dropClippedQueryEnds(alignments)
		}
		if len(alignments) == 0 {
			continue
		}
		records = append(records, RecordAlignmentResult{RecordIndex: rs.RecordIndex, Alignments: alignments})
	}

	return AlignmentResult{Records: records}, nil
}

// dropClippedQueryEnds removes any alignment that leaves unaligned query
// residue at its leading or trailing end, which a semi-global search must
// never report regardless of how cheaply DWFA found it.
func dropClippedQueryEnds(alignments []AnchorAlignmentResult) []AnchorAlignmentResult {
	out := alignments[:0]
	for _, al := range alignments {
		if len(al.Operations) == 0 {
			continue
		}
		if al.Operations[0].Kind == opseq.QueryClip || al.Operations[len(al.Operations)-1].Kind == opseq.QueryClip {
			continue
		}
		out = append(out, al)
	}
	return out
}
