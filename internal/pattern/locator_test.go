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

package pattern

import (
	"bytes"
	"testing"
)

// bruteIndex is a minimal FMIndex double: linear scan over one joined
// sequence, good enough for these small fixtures.
type bruteIndex struct {
	joined []byte
}

func (b *bruteIndex) Locate(p []byte) ([]uint64, error) {
	var hits []uint64
	start := 0
	for {
		i := bytes.Index(b.joined[start:], p)
		if i < 0 {
			break
		}
		hits = append(hits, uint64(start+i))
		start += i + 1
		if start >= len(b.joined) {
			break
		}
	}
	return hits, nil
}

type fixedBounds struct {
	joined     []byte
	boundaries []uint64
}

func (f *fixedBounds) JoinedSequence() ([]byte, []uint64, error) {
	return f.joined, f.boundaries, nil
}

func TestLocateMergesAdjacentPatterns(t *testing.T) {
	// one 16-byte record, query identical to it: every 4-byte pattern hits
	// exactly once and abuts the next, so Locate should merge all four
	// into a single 16-byte seed.
	record := []byte("ACGTTGCAGGCCAATT")
	bounds := &fixedBounds{joined: record, boundaries: []uint64{0, uint64(len(record))}}
	idx := &bruteIndex{joined: record}

	result, err := Locate(idx, bounds, record, 4)
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if len(result.Existence) != 4 {
		t.Fatalf("expected 4 pattern blocks, got %d", len(result.Existence))
	}
	for i, ok := range result.Existence {
		if !ok {
			t.Fatalf("expected pattern block %d to be found", i)
		}
	}
	if len(result.Records) != 1 {
		t.Fatalf("expected exactly one record with seeds, got %d", len(result.Records))
	}
	seeds := result.Records[0].Seeds
	if len(seeds) != 1 {
		t.Fatalf("expected the four adjacent 4-byte hits to merge into one seed, got %d seeds: %+v", len(seeds), seeds)
	}
	if seeds[0].Size != uint64(len(record)) {
		t.Fatalf("expected merged seed to span the whole record, got size %d", seeds[0].Size)
	}
}

func TestLocateSkipsPatternsStraddlingBoundaries(t *testing.T) {
	recA := []byte("ACGT")
	recB := []byte("TTTT")
	joined := append(append([]byte{}, recA...), recB...)
	bounds := &fixedBounds{joined: joined, boundaries: []uint64{0, uint64(len(recA)), uint64(len(joined))}}
	idx := &bruteIndex{joined: joined}

	// this 4-byte pattern straddles the recA/recB boundary (starts at
	// offset 2) and must not produce a seed in either record.
	query := []byte("GTTT")
	result, err := Locate(idx, bounds, query, 4)
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if len(result.Records) != 0 {
		t.Fatalf("expected no valid seeds from a boundary-straddling hit, got %+v", result.Records)
	}
}

func TestLocateNoHitsClearsExistence(t *testing.T) {
	record := []byte("AAAAAAAA")
	bounds := &fixedBounds{joined: record, boundaries: []uint64{0, uint64(len(record))}}
	idx := &bruteIndex{joined: record}

	query := []byte("TTTTTTTT")
	result, err := Locate(idx, bounds, query, 4)
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	for i, ok := range result.Existence {
		if ok {
			t.Fatalf("expected pattern block %d to be absent", i)
		}
	}
	if len(result.Records) != 0 {
		t.Fatalf("expected no seeds, got %+v", result.Records)
	}
}
