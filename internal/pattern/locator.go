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

// Package pattern partitions a query into fixed-size k-mers, locates
// every exact occurrence via an FM-index, and merges adjacent hits that
// extend each other into single wider anchors.
package pattern

import "sort"

// FMIndex is the capability this package needs to find exact k-mer
// occurrences. Any sigalign.FMIndex value satisfies this without either
// package importing the other.
type FMIndex interface {
	Locate(pattern []byte) ([]uint64, error)
}

// Boundaries is the capability this package needs to map a joined-
// sequence offset back to a record. Any sigalign.SequenceProvider value
// satisfies this.
type Boundaries interface {
	JoinedSequence() ([]byte, []uint64, error)
}

// Seed is one surviving k-mer (or impeccable-extension-merged run of
// k-mers) anchored at a query/record position pair.
type Seed struct {
	QueryPosition  uint64
	RecordPosition uint64
	Size           uint64
}

// RecordSeeds groups every seed found in one record, in ascending query
// position order (the order the scan naturally produces them).
type RecordSeeds struct {
	RecordIndex int
	Seeds       []Seed
}

// Result is everything the anchor graph needs to bootstrap: the per-
// record seed lists and the pattern-existence bitmap EMP estimation
// consumes.
type Result struct {
	Records   []RecordSeeds
	Existence []bool
}

// Locate scans query at stride patternSize, looks up every pattern via
// index, and merges consecutive hits that abut exactly (impeccable
// extension) into single wider seeds. A pattern with no surviving hit in
// any record still clears its existence bit to false.
func Locate(index FMIndex, bounds Boundaries, query []byte, patternSize uint64) (Result, error) {
	var res Result
	if patternSize == 0 || uint64(len(query)) < patternSize {
		return res, nil
	}

	_, boundaries, err := bounds.JoinedSequence()
	if err != nil {
		return res, err
	}

	numPatterns := uint64(len(query)) / patternSize
	res.Existence = make([]bool, numPatterns)

	perRecord := map[int][]Seed{}
	order := []int{}

	search := &boundarySearch{boundaries: boundaries}

	for i := uint64(0); i < numPatterns; i++ {
		qpos := i * patternSize
		pat := query[qpos : qpos+patternSize]

		positions, err := index.Locate(pat)
		if err != nil {
			return Result{}, err
		}
		if len(positions) == 0 {
			continue
		}

		for _, p := range positions {
			recIdx, recPos, ok := search.locate(p, patternSize)
			if !ok {
				continue // k-mer straddles a record boundary; not a valid seed
			}
			res.Existence[i] = true
			seeds, seen := perRecord[recIdx]
			if !seen {
				order = append(order, recIdx)
			}
			merged := false
			for idx := range seeds {
				if seeds[idx].RecordPosition+seeds[idx].Size == recPos &&
					seeds[idx].QueryPosition+seeds[idx].Size == qpos {
					seeds[idx].Size += patternSize
					merged = true
					break
				}
			}
			if !merged {
				seeds = append(seeds, Seed{QueryPosition: qpos, RecordPosition: recPos, Size: patternSize})
			}
			perRecord[recIdx] = seeds
		}
	}

	sort.Ints(order)
	res.Records = make([]RecordSeeds, 0, len(order))
	for _, recIdx := range order {
		seeds := perRecord[recIdx]
		sort.Slice(seeds, func(i, j int) bool { return seeds[i].QueryPosition < seeds[j].QueryPosition })
		res.Records = append(res.Records, RecordSeeds{RecordIndex: recIdx, Seeds: seeds})
	}
	return res, nil
}

// boundarySearch locates which record a joined-sequence offset falls in,
// reusing the previous answer as the next call's lower bound: callers
// scan positions in roughly increasing order, so this amortizes to a
// near-constant walk instead of a fresh binary search every time.
type boundarySearch struct {
	boundaries []uint64
	prevMid    int
}

func (s *boundarySearch) locate(pos, size uint64) (recordIndex int, recordPosition uint64, ok bool) {
	n := len(s.boundaries) - 1
	if n <= 0 {
		return 0, 0, false
	}
	lo, hi := 0, n-1
	if s.prevMid >= lo && s.prevMid <= hi && s.boundaries[s.prevMid] <= pos {
		lo = s.prevMid
	}
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.boundaries[mid] <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	s.prevMid = lo

	start, end := s.boundaries[lo], s.boundaries[lo+1]
	if pos < start || pos+size > end {
		return 0, 0, false
	}
	return lo, pos - start, true
}
