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
	"fmt"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/sigalign-go/sigalign"
	"github.com/sigalign-go/sigalign/reference/memory"
)

func init() {
	addPenaltyFlags(benchCmd)
	benchCmd.Flags().BoolP("no-output", "N", false, "do not print per-pair results, just the summary")
	rootCmd.AddCommand(benchCmd)
}

// benchCmd mirrors the teacher's benchmark/wfa-go.go: same -p/-m-style CPU
// profiling wrapper, same "time the whole run, optionally suppress
// per-record output" shape, pointed at the Aligner facade instead of
// wfa.Aligner directly.
var benchCmd = &cobra.Command{
	Use:   "bench <pairs-file>",
	Short: "Benchmark alignment throughput over a pairs file, with optional CPU profiling",
	Args:  cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()

		aligner, err := alignerFromFlags(c)
		checkError(err)
		local, _ := c.Flags().GetBool("local")
		noOutput, _ := c.Flags().GetBool("no-output")

		pairs, err := readPairs(args[0])
		checkError(err)

		start := time.Now()
		aligned := 0
		for i, pr := range pairs {
			provider := memory.NewProvider()
			provider.AddRecord(fmt.Sprintf("record-%d", i), []byte(pr.record))
			ref := &sigalign.Reference{Sequences: provider, Index: memory.NewIndex(provider)}

			var result sigalign.AlignmentResult
			if local {
				result, err = aligner.LocalAlignment(ref, []byte(pr.query))
			} else {
				result, err = aligner.SemiGlobalAlignment(ref, []byte(pr.query))
			}
			checkError(err)
			if !result.IsEmpty() {
				aligned++
			}
			if !noOutput {
				fmt.Printf("pair %d: aligned=%v\n", i, !result.IsEmpty())
			}
		}
		elapsed := time.Since(start)

		fmt.Printf("pairs: %d, aligned: %d, elapsed: %s, pairs/s: %.1f\n",
			len(pairs), aligned, elapsed, float64(len(pairs))/elapsed.Seconds())
	},
}
