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

package sigalign_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigalign-go/sigalign"
	"github.com/sigalign-go/sigalign/reference/memory"
)

func newReference(records map[string]string) *sigalign.Reference {
	p := memory.NewProvider()
	for label, seq := range records {
		p.AddRecord(label, []byte(seq))
	}
	return &sigalign.Reference{Sequences: p, Index: memory.NewIndex(p)}
}

func TestNewRejectsInvalidPenalties(t *testing.T) {
	_, err := sigalign.New(sigalign.Penalties{Mismatch: 0, GapOpen: 6, GapExt: 2}, sigalign.Cutoff{MinLength: 50, MaxPenaltyPer: 0.3})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigalign.ErrParameterInvalid)
}

func TestNewRejectsInvalidCutoff(t *testing.T) {
	_, err := sigalign.New(sigalign.DefaultPenalties, sigalign.Cutoff{MinLength: 50, MaxPenaltyPer: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigalign.ErrParameterInvalid)
}

func TestSemiGlobalAlignmentFindsIdenticalSequence(t *testing.T) {
	query := "ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGT"
	ref := newReference(map[string]string{"record-0": query})

	aligner, err := sigalign.New(sigalign.DefaultPenalties, sigalign.Cutoff{MinLength: 10, MaxPenaltyPer: 0.3})
	require.NoError(t, err)

	result, err := aligner.SemiGlobalAlignment(ref, []byte(query))
	require.NoError(t, err)
	require.False(t, result.IsEmpty())

	require.Len(t, result.Records[0].Alignments, 1)
	alignment := result.Records[0].Alignments[0]
	assert.Zero(t, alignment.Penalty)
	assert.EqualValues(t, len(query), alignment.Length)
}

// TestDuplicateAnchorsCollapseToOneAlignment pins the checkpoint-mediated
// splice in internal/anchor's Extend: "AAAA" and "GGGG" sit on either side
// of a "CCCC" gap and, left unlinked, each independently reconstructs the
// same whole-query alignment through the gap. Only one may survive.
func TestDuplicateAnchorsCollapseToOneAlignment(t *testing.T) {
	ref := newReference(map[string]string{"record-0": "AAAACCCCGGGG"})
	query := "AAAAGGGG"

	aligner, err := sigalign.New(sigalign.DefaultPenalties, sigalign.Cutoff{MinLength: 6, MaxPenaltyPer: 0.7})
	require.NoError(t, err)

	result, err := aligner.SemiGlobalAlignment(ref, []byte(query))
	require.NoError(t, err)
	require.False(t, result.IsEmpty())
	require.Len(t, result.Records, 1)
	require.Len(t, result.Records[0].Alignments, 1)

	alignment := result.Records[0].Alignments[0]
	assert.EqualValues(t, len(query), alignment.Length)
	assert.LessOrEqual(t, float64(alignment.Penalty), sigalign.Cutoff{MinLength: 6, MaxPenaltyPer: 0.7}.MaxPenaltyPer*float64(alignment.Length))
}

func TestRunReturnsEmptyResultWhenQueryShorterThanPatternSize(t *testing.T) {
	ref := newReference(map[string]string{"record-0": "ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGT"})
	aligner, err := sigalign.New(sigalign.DefaultPenalties, sigalign.Cutoff{MinLength: 50, MaxPenaltyPer: 0.3})
	require.NoError(t, err)

	result, err := aligner.SemiGlobalAlignment(ref, []byte("AC"))
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
}
