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

// SequenceProvider is the capability the core consumes to fetch record
// bytes and the joined sequence an FMIndex was built over. Implementations
// are free to back it with an in-memory slice, a memory-mapped FASTA, or
// anything else — the core only ever calls these four methods and never
// retains a reference past the call that produced it.
type SequenceProvider interface {
	// TotalRecordCount returns how many records the reference holds.
	TotalRecordCount() int
	// RecordLength returns the length, in bytes, of record i.
	RecordLength(i int) (uint64, error)
	// FillBuffer copies record i's bytes into buf, growing it if needed,
	// and returns the slice of buf holding exactly that record.
	FillBuffer(i int, buf *[]byte) ([]byte, error)
	// JoinedSequence returns the concatenation of every record in index
	// order, plus the monotone boundary positions (length len()+1, with
	// boundaries[0] == 0 and boundaries[len] == total joined length) an
	// FMIndex was built over.
	JoinedSequence() ([]byte, []uint64, error)
}

// FMIndex is the capability the core consumes to locate exact pattern
// occurrences. It is built externally over a SequenceProvider's joined
// sequence; the core treats it as opaque.
type FMIndex interface {
	// Locate returns every start offset, in the joined sequence, where
	// pattern occurs exactly. Order is not guaranteed.
	Locate(pattern []byte) ([]uint64, error)
}

// Reference bundles the two capabilities the core needs. A Reference value
// is meant to be shared, read-only, across any number of concurrently
// running Aligner instances — the core itself never mutates it.
type Reference struct {
	Sequences SequenceProvider
	Index     FMIndex
}
