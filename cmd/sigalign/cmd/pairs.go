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

	"github.com/pkg/errors"
)

// pair is one query/record line pair from an input file, in the same
// `>query` / `<record` two-line format the teacher's benchmark CLI reads.
type pair struct {
	query  string
	record string
}

func readPairs(path string) ([]pair, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading input file %s", path)
	}
	defer fh.Close()

	var pairs []pair
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		q := scanner.Text()
		if !scanner.Scan() {
			break
		}
		r := scanner.Text()
		if len(q) < 1 || len(r) < 1 {
			return nil, fmt.Errorf("malformed input file %s: expected '>query' then '<record' lines", path)
		}
		pairs = append(pairs, pair{query: q[1:], record: r[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading input file %s", path)
	}
	return pairs, nil
}
