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

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sigalign-go/sigalign"
)

// addPenaltyFlags registers the penalty/cutoff flags shared by align and
// bench, mirroring the teacher benchmark's flat, no-subcommand flag set.
func addPenaltyFlags(c *cobra.Command) {
	c.Flags().Uint64P("mismatch", "x", sigalign.DefaultPenalties.Mismatch, "mismatch penalty")
	c.Flags().Uint64P("gap-open", "o", sigalign.DefaultPenalties.GapOpen, "gap open penalty")
	c.Flags().Uint64P("gap-extend", "e", sigalign.DefaultPenalties.GapExt, "gap extend penalty")
	c.Flags().Uint64P("min-length", "l", 50, "minimum alignment length")
	c.Flags().Float64P("max-penalty", "p", 0.3, "maximum penalty-per-length ratio, in (0, 1]")
	c.Flags().Bool("local", false, "report local alignments instead of semi-global")
	c.Flags().Bool("minimize-penalty", false, "keep only the minimum-penalty alignment(s) per record")
}

func alignerFromFlags(c *cobra.Command) (*sigalign.Aligner, error) {
	mismatch, _ := c.Flags().GetUint64("mismatch")
	gapOpen, _ := c.Flags().GetUint64("gap-open")
	gapExt, _ := c.Flags().GetUint64("gap-extend")
	minLength, _ := c.Flags().GetUint64("min-length")
	maxPenalty, _ := c.Flags().GetFloat64("max-penalty")
	minimize, _ := c.Flags().GetBool("minimize-penalty")

	penalties := sigalign.Penalties{Mismatch: mismatch, GapOpen: gapOpen, GapExt: gapExt}
	cutoff := sigalign.Cutoff{MinLength: minLength, MaxPenaltyPer: maxPenalty}

	return sigalign.New(penalties, cutoff,
		sigalign.WithMinimumPenalty(minimize),
	)
}
