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

// Package memory is a test/demo SequenceProvider and FMIndex: every
// record lives in one joined byte slice in RAM, and pattern lookup is a
// brute-force scan of that slice. It exists so the core and its tests
// have something to run end to end without depending on a real,
// production-grade FM-index — swap in one of those for anything beyond
// small fixtures and examples.
package memory

import (
	"github.com/pkg/errors"
)

// Provider is an in-memory SequenceProvider built by repeated calls to
// AddRecord. It satisfies github.com/sigalign-go/sigalign.SequenceProvider.
type Provider struct {
	joined     []byte
	boundaries []uint64
	labels     []string
}

// NewProvider returns an empty Provider; call AddRecord to populate it.
func NewProvider() *Provider {
	return &Provider{boundaries: []uint64{0}}
}

// AddRecord appends one record's sequence and label.
func (p *Provider) AddRecord(label string, sequence []byte) {
	p.joined = append(p.joined, sequence...)
	p.boundaries = append(p.boundaries, uint64(len(p.joined)))
	p.labels = append(p.labels, label)
}

// TotalRecordCount implements sigalign.SequenceProvider.
func (p *Provider) TotalRecordCount() int {
	return len(p.labels)
}

// Label returns the label given to AddRecord for record i.
func (p *Provider) Label(i int) (string, error) {
	if i < 0 || i >= len(p.labels) {
		return "", errors.Errorf("memory: record index %d out of range", i)
	}
	return p.labels[i], nil
}

// RecordLength implements sigalign.SequenceProvider.
func (p *Provider) RecordLength(i int) (uint64, error) {
	if i < 0 || i >= len(p.labels) {
		return 0, errors.Errorf("memory: record index %d out of range", i)
	}
	return p.boundaries[i+1] - p.boundaries[i], nil
}

// FillBuffer implements sigalign.SequenceProvider.
func (p *Provider) FillBuffer(i int, buf *[]byte) ([]byte, error) {
	if i < 0 || i >= len(p.labels) {
		return nil, errors.Errorf("memory: record index %d out of range", i)
	}
	start, end := p.boundaries[i], p.boundaries[i+1]
	n := int(end - start)
	if cap(*buf) < n {
		*buf = make([]byte, n)
	}
	*buf = (*buf)[:n]
	copy(*buf, p.joined[start:end])
	return *buf, nil
}

// JoinedSequence implements sigalign.SequenceProvider.
func (p *Provider) JoinedSequence() ([]byte, []uint64, error) {
	return p.joined, p.boundaries, nil
}
