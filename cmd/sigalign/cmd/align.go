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
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sigalign-go/sigalign"
	"github.com/sigalign-go/sigalign/reference/memory"
)

func init() {
	addPenaltyFlags(alignCmd)
	rootCmd.AddCommand(alignCmd)
}

var alignCmd = &cobra.Command{
	Use:   "align <pairs-file>",
	Short: "Align query/record pairs from a file and print the results",
	Long: `Reads successive '>query' / '<record' line pairs, the same two-line
format the teacher's own WFA benchmark tool reads, and prints every
alignment sigalign reports for each pair.`,
	Args: cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		aligner, err := alignerFromFlags(c)
		checkError(err)
		local, _ := c.Flags().GetBool("local")

		pairs, err := readPairs(args[0])
		checkError(err)

		out := bufio.NewWriter(os.Stdout)
		defer out.Flush()

		for i, pr := range pairs {
			provider := memory.NewProvider()
			provider.AddRecord(fmt.Sprintf("record-%d", i), []byte(pr.record))
			index := memory.NewIndex(provider)
			ref := &sigalign.Reference{Sequences: provider, Index: index}

			var result sigalign.AlignmentResult
			if local {
				result, err = aligner.LocalAlignment(ref, []byte(pr.query))
			} else {
				result, err = aligner.SemiGlobalAlignment(ref, []byte(pr.query))
			}
			checkError(err)

			fmt.Fprintf(out, "pair %d\n", i)
			if result.IsEmpty() {
				fmt.Fprintln(out, "  no alignment")
				continue
			}
			for _, rec := range result.Records {
				for _, a := range rec.Alignments {
					fmt.Fprintf(out, "  record[%d..%d) query[%d..%d) penalty=%d length=%d\n",
						a.Position.RecordStart, a.Position.RecordEnd,
						a.Position.QueryStart, a.Position.QueryEnd,
						a.Penalty, a.Length)
					fmt.Fprintf(out, "  %v\n", a.Operations)
				}
			}
		}
	},
}
